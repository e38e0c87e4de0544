// Package series builds complete footprints from parameterized part
// definitions.
//
// # Overview
//
// A series file is a YAML mapping of part names to dimension parameters.
// Each file belongs to a family: a package style like two-terminal chip
// or dual-inline that knows how to turn one set of parameters into a
// full footprint tree with pads, fabrication outline, silkscreen,
// courtyard and text fields.
//
// # Definition Files
//
// The reserved top-level key "defaults" supplies values merged into
// every part in the file; a part's own keys win over the defaults:
//
//	defaults:
//	  courtyard: 0.25
//	  tags: [resistor]
//	R_0402_1005Metric:
//	  body_size: [1.0, 0.5]
//	  pad_size: [0.59, 0.64]
//	  pad_pitch: 0.93
//
// Keys a family does not understand are rejected with their line
// number, so a typo in a series file fails loudly instead of silently
// producing a wrong footprint.
//
// # Usage
//
//	family, err := series.Detect("chip_resistor.yaml")
//	specs, err := family.Load("chip_resistor.yaml")
//	for _, spec := range specs {
//	    fp, err := family.Build(spec)
//	    // serialize fp
//	}
package series

import (
	"math"
	"path/filepath"
	"strings"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
	"github.com/matzehuels/kicadfp/pkg/kicadmod"
)

// =============================================================================
// Shared Defaults
// =============================================================================

// Drawing clearances shared by all families, in millimetres.
const (
	// DefaultCourtyardOffset is the courtyard clearance around the body
	// and pads when a definition does not set one.
	DefaultCourtyardOffset = 0.25

	// DefaultSilkFabOffset is the silkscreen centerline offset from the
	// fabrication outline.
	DefaultSilkFabOffset = 0.1

	// DefaultSilkPadClearance is the minimum gap between silkscreen ink
	// and pad copper.
	DefaultSilkPadClearance = 0.2

	// CourtyardGrid is the grid courtyard corners are rounded onto.
	CourtyardGrid = 0.01

	// DefaultTextGap is the gap between text and the courtyard edge.
	DefaultTextGap = 0.2
)

// =============================================================================
// Family
// =============================================================================

// Family describes one package style. The exported function fields are
// the API: Supports drives file detection, Build turns a loaded part
// definition into a footprint tree.
type Family struct {
	// Name identifies the family on the command line.
	Name string

	// Description is a one-line summary for listings.
	Description string

	// Params lists the definition keys the family accepts. Loading
	// rejects any other key.
	Params []string

	// Supports reports whether this family handles the given series
	// file, judged by its base name.
	Supports func(filename string) bool

	// Build turns one part definition into a footprint tree.
	Build func(spec PartSpec) (*footprint.Footprint, error)
}

// Load reads a series file and returns its part definitions in file
// order, with the file's defaults merged into each part.
func (f *Family) Load(path string) ([]PartSpec, error) {
	return loadSpecs(f, path)
}

// Families returns the supported package families.
func Families() []*Family {
	return []*Family{Chip, Dip}
}

// FamilyNames returns the family names in registry order.
func FamilyNames() []string {
	fams := Families()
	names := make([]string, len(fams))
	for i, f := range fams {
		names[i] = f.Name
	}
	return names
}

// FindFamily returns the family with the given name.
func FindFamily(name string) (*Family, error) {
	for _, f := range Families() {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, kfperrors.New(kfperrors.ErrCodeFamilyNotFound,
		"unknown family %q (available: %s)", name, strings.Join(FamilyNames(), ", "))
}

// Detect returns the family responsible for the given series file,
// judged by its base name. The first matching family wins.
func Detect(path string) (*Family, error) {
	name := filepath.Base(path)
	for _, f := range Families() {
		if f.Supports(name) {
			return f, nil
		}
	}
	return nil, kfperrors.New(kfperrors.ErrCodeFamilyNotFound,
		"no family recognizes %q (available: %s)", name, strings.Join(FamilyNames(), ", "))
}

// =============================================================================
// Shared Build Helpers
// =============================================================================

// gridUp rounds v up onto the courtyard grid. Values within tolerance
// of a grid line stay put instead of jumping a full step.
func gridUp(v float64) float64 {
	steps := v / CourtyardGrid
	if rounded := math.Round(steps); math.Abs(steps-rounded) < geometry.Tol {
		return rounded * CourtyardGrid
	}
	return math.Ceil(steps) * CourtyardGrid
}

// gridDown rounds v down onto the courtyard grid, with the same
// tolerance snap as gridUp.
func gridDown(v float64) float64 {
	steps := v / CourtyardGrid
	if rounded := math.Round(steps); math.Abs(steps-rounded) < geometry.Tol {
		return rounded * CourtyardGrid
	}
	return math.Floor(steps) * CourtyardGrid
}

// gridBBox expands a bounding box outward onto the courtyard grid.
func gridBBox(b geometry.BBox) geometry.BBox {
	return geometry.BBox{
		Min: geometry.V(gridDown(b.Min.X), gridDown(b.Min.Y)),
		Max: geometry.V(gridUp(b.Max.X), gridUp(b.Max.Y)),
	}
}

// silkClearance is the pad keepout margin for silkscreen centerlines:
// the ink clearance plus half the stroke the layer will be drawn with.
func silkClearance() float64 {
	return DefaultSilkPadClearance + kicadmod.LayerDefaultWidth(footprint.LayerFSilkS)/2
}

// padKeepouts returns the silkscreen keepout regions around the given
// pads.
func padKeepouts(pads []*footprint.Pad, clearance float64) []geometry.Shape {
	out := make([]geometry.Shape, len(pads))
	for i, p := range pads {
		b := p.BBox().Inflate(clearance)
		out[i] = geometry.NewRect(b.Min, b.Max)
	}
	return out
}

// fabBevel returns the pin-1 bevel length for a body of the given size:
// a quarter of the smaller dimension, capped at one millimetre.
func fabBevel(size geometry.Vec) float64 {
	return math.Min(1.0, math.Min(size.X, size.Y)/4)
}

// bevelOutline returns the closed fabrication outline of the body with
// the pin-1 corner cut. The bevel sits on the corner nearest min.
func bevelOutline(b geometry.BBox, bevel float64) []geometry.Vec {
	return []geometry.Vec{
		geometry.V(b.Min.X+bevel, b.Min.Y),
		geometry.V(b.Max.X, b.Min.Y),
		geometry.V(b.Max.X, b.Max.Y),
		geometry.V(b.Min.X, b.Max.Y),
		geometry.V(b.Min.X, b.Min.Y+bevel),
	}
}

// addTextFields appends the reference and value fields outside the
// courtyard and the self-referencing fab text centered on the body.
func addTextFields(fp *footprint.Footprint, body, courtyard geometry.BBox) error {
	cx := body.Center().X
	offset := footprint.DefaultTextSize/2 + DefaultTextGap

	ref := footprint.NewReference(geometry.V(cx, courtyard.Min.Y-offset))
	val := footprint.NewValue(fp.Name, geometry.V(cx, courtyard.Max.Y+offset))

	fabRef := footprint.NewText("${REFERENCE}", body.Center(), footprint.LayerFFab)
	size := clamp(0.6*math.Min(body.Size().X, body.Size().Y), 0.25, 1.0)
	fabRef.Size = geometry.V(size, size)
	fabRef.Thickness = 0.15 * size

	return fp.Extend(ref, val, fabRef)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// buildDescription joins the part description and datasheet link into
// the footprint description field.
func buildDescription(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
