package series

import (
	"math"
	"strings"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// Chip is the two-terminal surface-mount family: chip resistors,
// capacitors and inductors, plus polarized molded packages.
var Chip = &Family{
	Name:        "chip",
	Description: "Two-terminal SMD chip packages (0402, 0603, molded, ...)",
	Params: []string{
		"body_size", "pad_size", "pad_pitch", "courtyard", "polarized",
		"description", "tags", "datasheet", "model",
	},
	Supports: func(filename string) bool {
		return strings.Contains(strings.ToLower(filename), "chip")
	},
	Build: buildChip,
}

type chipParams struct {
	BodySize    Pair     `yaml:"body_size"`
	PadSize     Pair     `yaml:"pad_size"`
	PadPitch    float64  `yaml:"pad_pitch"`
	Courtyard   float64  `yaml:"courtyard"`
	Polarized   bool     `yaml:"polarized"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Datasheet   string   `yaml:"datasheet"`
	Model       string   `yaml:"model"`
}

func (p *chipParams) validate() error {
	errs := &kfperrors.FieldErrors{Code: kfperrors.ErrCodeInvalidSeries}
	if !p.BodySize.Positive() {
		errs.Add("body_size", "body size must be positive, got %v x %v", p.BodySize.X, p.BodySize.Y)
	}
	if !p.PadSize.Positive() {
		errs.Add("pad_size", "pad size must be positive, got %v x %v", p.PadSize.X, p.PadSize.Y)
	}
	if p.PadPitch <= 0 {
		errs.Add("pad_pitch", "pad pitch must be positive, got %v", p.PadPitch)
	} else if p.PadPitch <= p.PadSize.X {
		errs.Add("pad_pitch", "pitch %v leaves no gap between %v wide pads", p.PadPitch, p.PadSize.X)
	}
	if p.Courtyard < 0 {
		errs.Add("courtyard", "courtyard offset must not be negative, got %v", p.Courtyard)
	}
	if p.Courtyard == 0 {
		p.Courtyard = DefaultCourtyardOffset
	}
	return errs.Err()
}

func buildChip(spec PartSpec) (*footprint.Footprint, error) {
	var p chipParams
	if err := spec.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	fp, err := footprint.New(spec.Name, footprint.TypeSMD)
	if err != nil {
		return nil, err
	}
	fp.Description = buildDescription(p.Description, p.Datasheet, "generated with kicadfp")
	fp.Tags = p.Tags

	// Pads 1 and 2 on either side of the origin.
	proto, err := footprint.NewPad(footprint.Pad{
		Type:        footprint.PadTypeSMD,
		Shape:       footprint.PadShapeRoundRect,
		Size:        p.PadSize.Vec(),
		RoundRadius: footprint.DefaultRoundRadius,
		Layers:      footprint.LayersSMD,
	})
	if err != nil {
		return nil, err
	}
	pads, err := footprint.NewPadArray(footprint.PadArray{
		Prototype: proto,
		Start:     geometry.V(-p.PadPitch/2, 0),
		Pitch:     geometry.V(p.PadPitch, 0),
		Count:     2,
	})
	if err != nil {
		return nil, err
	}
	if err := fp.Append(pads); err != nil {
		return nil, err
	}

	// Fabrication outline. Polarized parts get the pin-1 corner cut.
	body := geometry.RectAt(geometry.Vec{}, p.BodySize.Vec()).BBox()
	if p.Polarized {
		fab := footprint.NewPolygon(bevelOutline(body, fabBevel(p.BodySize.Vec())), footprint.LayerFFab)
		fab.Filled = false
		if err := fp.Append(fab); err != nil {
			return nil, err
		}
	} else {
		rect := footprint.RectLine(body.Min, body.Max, geometry.Vec{},
			footprint.DrawAttrs{Layer: footprint.LayerFFab})
		if err := fp.Append(rect); err != nil {
			return nil, err
		}
	}

	// Silkscreen: a line above and below the body, pushed out far
	// enough to clear the pads. Polarized parts extend both lines past
	// pad 1 and close them into a bracket marking the positive side.
	silkY := math.Max(p.BodySize.Y/2+DefaultSilkFabOffset, p.PadSize.Y/2+silkClearance())
	left := -p.BodySize.X / 2
	if p.Polarized {
		left = -(p.PadPitch/2 + p.PadSize.X/2 + silkClearance())
	}
	top := footprint.NewLine(geometry.V(left, -silkY), geometry.V(p.BodySize.X/2, -silkY), footprint.LayerFSilkS)
	bottom := footprint.NewLine(geometry.V(left, silkY), geometry.V(p.BodySize.X/2, silkY), footprint.LayerFSilkS)
	if err := fp.Extend(top, bottom); err != nil {
		return nil, err
	}
	if p.Polarized {
		bar := footprint.NewLine(geometry.V(left, -silkY), geometry.V(left, silkY), footprint.LayerFSilkS)
		if err := fp.Append(bar); err != nil {
			return nil, err
		}
	}

	// Courtyard around pads and body, rounded outward onto the grid.
	// The polarity bracket may poke past it; markers are exempt.
	cyX := gridUp(p.PadPitch/2 + p.PadSize.X/2 + p.Courtyard)
	cyY := gridUp(math.Max(p.PadSize.Y, p.BodySize.Y)/2 + p.Courtyard)
	courtyard := geometry.BBox{Min: geometry.V(-cyX, -cyY), Max: geometry.V(cyX, cyY)}
	cy := footprint.RectLine(courtyard.Min, courtyard.Max, geometry.Vec{},
		footprint.DrawAttrs{Layer: footprint.LayerFCrtYd})
	if err := fp.Append(cy); err != nil {
		return nil, err
	}

	if err := addTextFields(fp, body, courtyard); err != nil {
		return nil, err
	}
	if p.Model != "" {
		if err := fp.Append(footprint.NewModel(p.Model)); err != nil {
			return nil, err
		}
	}
	return fp, nil
}
