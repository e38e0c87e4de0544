package pipeline

import (
	"github.com/google/uuid"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/series"
)

// BuildPart turns one loaded part definition into a footprint tree. A
// seed override in the options replaces the name-derived identifier
// seed, which keeps node identifiers stable across part renames.
func BuildPart(family *series.Family, spec series.PartSpec, opts Options) (*footprint.Footprint, error) {
	fp, err := family.Build(spec)
	if err != nil {
		return nil, err
	}

	if opts.Seed != "" {
		seed, err := uuid.Parse(opts.Seed)
		if err != nil {
			return nil, kfperrors.Wrap(kfperrors.ErrCodeInvalidInput, err, "seed %q", opts.Seed)
		}
		fp.SetSeed(seed)
	}

	return fp, nil
}
