package pipeline

import (
	"maps"
	"slices"
	"strings"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/series"
)

// Load resolves the family for the input series file and reads its part
// definitions. An explicit family name in the options wins over filename
// detection. When the options name specific parts, only those are kept,
// in file order; naming a part the file does not define is an error.
func Load(opts Options) (*series.Family, []series.PartSpec, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, nil, err
	}

	family, err := resolveFamily(opts)
	if err != nil {
		return nil, nil, err
	}

	specs, err := family.Load(opts.Input)
	if err != nil {
		return nil, nil, err
	}
	if len(specs) == 0 {
		return nil, nil, kfperrors.New(kfperrors.ErrCodeInvalidSeries,
			"%s defines no parts", opts.Input)
	}

	if len(opts.Parts) > 0 {
		specs, err = filterParts(specs, opts.Parts, opts.Input)
		if err != nil {
			return nil, nil, err
		}
	}

	return family, specs, nil
}

func resolveFamily(opts Options) (*series.Family, error) {
	if opts.Family != "" {
		return series.FindFamily(opts.Family)
	}
	return series.Detect(opts.Input)
}

// filterParts keeps the named parts in file order. Every requested name
// must exist in the file.
func filterParts(specs []series.PartSpec, names []string, input string) ([]series.PartSpec, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	kept := make([]series.PartSpec, 0, len(names))
	for _, s := range specs {
		if want[s.Name] {
			kept = append(kept, s)
			delete(want, s.Name)
		}
	}

	if len(want) > 0 {
		missing := slices.Sorted(maps.Keys(want))
		return nil, kfperrors.New(kfperrors.ErrCodePartNotFound,
			"part not found in %s: %s", input, strings.Join(missing, ", "))
	}
	return kept, nil
}
