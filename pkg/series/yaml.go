package series

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// DefaultsKey is the reserved top-level key whose values are merged
// into every part definition in the file.
const DefaultsKey = "defaults"

// =============================================================================
// Part Specs
// =============================================================================

// PartSpec is one named part definition from a series file, with the
// file's defaults already merged in.
type PartSpec struct {
	// Family is the name of the family that loaded the definition.
	Family string

	// Name is the part and footprint name.
	Name string

	node *yaml.Node
}

// Decode unmarshals the merged definition into v.
func (s PartSpec) Decode(v any) error {
	if s.node == nil {
		return kfperrors.New(kfperrors.ErrCodeInvalidSeries, "part %s has no definition", s.Name)
	}
	if err := s.node.Decode(v); err != nil {
		return kfperrors.Wrap(kfperrors.ErrCodeParse, err, "part %s", s.Name)
	}
	return nil
}

// Canonical returns a stable byte form of the merged definition for
// content hashing. Two definitions with the same effective values
// produce the same bytes regardless of key order in the file.
func (s PartSpec) Canonical() ([]byte, error) {
	if s.node == nil {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidSeries, "part %s has no definition", s.Name)
	}
	var v any
	if err := s.node.Decode(&v); err != nil {
		return nil, kfperrors.Wrap(kfperrors.ErrCodeParse, err, "part %s", s.Name)
	}
	// encoding/json writes map keys sorted, which makes the bytes stable.
	data, err := json.Marshal(v)
	if err != nil {
		return nil, kfperrors.Wrap(kfperrors.ErrCodeSerialize, err, "part %s", s.Name)
	}
	return data, nil
}

// =============================================================================
// Loading
// =============================================================================

func loadSpecs(f *Family, path string) ([]PartSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kfperrors.Wrap(kfperrors.ErrCodeIO, err, "read series file")
	}
	base := filepath.Base(path)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, kfperrors.Wrap(kfperrors.ErrCodeParse, err, "parse %s", base)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, kfperrors.New(kfperrors.ErrCodeParse,
			"%s: top level must be a mapping of part names", base)
	}

	params := make(map[string]bool, len(f.Params))
	for _, p := range f.Params {
		params[p] = true
	}
	errs := &kfperrors.FieldErrors{Code: kfperrors.ErrCodeInvalidSeries}

	// First pass: pull out the defaults block.
	var defaults *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value != DefaultsKey {
			continue
		}
		if value.Kind != yaml.MappingNode {
			return nil, kfperrors.New(kfperrors.ErrCodeInvalidSeries,
				"%s line %d: defaults must be a mapping", base, value.Line)
		}
		checkKeys(errs, base, DefaultsKey, value, params)
		defaults = value
	}

	// Second pass: build the parts in file order. Decoding into a node
	// preserves duplicate mapping keys, so catch them here.
	var specs []PartSpec
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value == DefaultsKey {
			continue
		}
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			errs.Add("parts", "%s line %d: part names must be plain strings", base, key.Line)
			continue
		}
		if err := kfperrors.ValidatePartName(key.Value); err != nil {
			errs.Add(key.Value, "%s line %d: %s", base, key.Line, kfperrors.UserMessage(err))
			continue
		}
		if seen[key.Value] {
			errs.Add(key.Value, "%s line %d: part %q already defined", base, key.Line, key.Value)
			continue
		}
		seen[key.Value] = true
		if value.Kind != yaml.MappingNode {
			errs.Add(key.Value, "%s line %d: part %q must be a mapping", base, value.Line, key.Value)
			continue
		}
		checkKeys(errs, base, key.Value, value, params)
		mergeDefaults(value, defaults)
		specs = append(specs, PartSpec{Family: f.Name, Name: key.Value, node: value})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return specs, nil
}

// checkKeys records every key of the mapping that the family does not
// accept, with its position in the file.
func checkKeys(errs *kfperrors.FieldErrors, base, part string, mapping *yaml.Node, params map[string]bool) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if !params[key.Value] {
			errs.Add(part, "%s line %d: unknown key %q", base, key.Line, key.Value)
		}
	}
}

// mergeDefaults appends each defaults entry the part does not set
// itself. The merge is shallow: a part that sets a key replaces the
// default entirely.
func mergeDefaults(part, defaults *yaml.Node) {
	if defaults == nil {
		return
	}
	have := make(map[string]bool, len(part.Content)/2)
	for i := 0; i+1 < len(part.Content); i += 2 {
		have[part.Content[i].Value] = true
	}
	for i := 0; i+1 < len(defaults.Content); i += 2 {
		if key := defaults.Content[i]; !have[key.Value] {
			part.Content = append(part.Content, key, defaults.Content[i+1])
		}
	}
}

// =============================================================================
// Dimension Pairs
// =============================================================================

// Pair is a two-axis dimension. In YAML it is written either as a
// two-element list or as a single number applied to both axes.
type Pair struct {
	X float64
	Y float64
}

// UnmarshalYAML accepts both the scalar and the list form.
func (p *Pair) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: expected a number, got %q", node.Line, node.Value)
		}
		p.X, p.Y = v, v
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return fmt.Errorf("line %d: expected a list of numbers", node.Line)
		}
		if len(vs) != 2 {
			return fmt.Errorf("line %d: expected two values, got %d", node.Line, len(vs))
		}
		p.X, p.Y = vs[0], vs[1]
		return nil
	}
	return fmt.Errorf("line %d: expected a number or an [x, y] list", node.Line)
}

// Vec returns the pair as a geometry vector.
func (p Pair) Vec() geometry.Vec { return geometry.V(p.X, p.Y) }

// IsZero reports whether the pair was left unset.
func (p Pair) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Positive reports whether both axes are positive.
func (p Pair) Positive() bool { return p.X > 0 && p.Y > 0 }
