package series

import (
	"strings"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// Dip is the through-hole dual-inline family. Pin 1 sits at the
// origin, its column runs down the left side and the numbering comes
// back up the right side.
var Dip = &Family{
	Name:        "dip",
	Description: "Through-hole dual-inline packages (DIP-4 to DIP-64)",
	Params: []string{
		"pins", "pitch", "row_spacing", "body_size", "drill", "pad_size",
		"courtyard", "description", "tags", "datasheet", "model",
	},
	Supports: func(filename string) bool {
		return strings.Contains(strings.ToLower(filename), "dip")
	},
	Build: buildDip,
}

// Dual-inline conventions, in millimetres.
const (
	DefaultDipPitch      = 2.54
	DefaultDipRowSpacing = 7.62
	DefaultDipDrill      = 0.8

	// dipNotchRadius is the half circle marking pin 1 on the top edge.
	dipNotchRadius = 0.5
)

// DefaultDipPadSize is the pad size applied when a definition does not
// set one. The long axis spans the row direction.
var DefaultDipPadSize = Pair{X: 2.4, Y: 1.6}

type dipParams struct {
	Pins        int      `yaml:"pins"`
	Pitch       float64  `yaml:"pitch"`
	RowSpacing  float64  `yaml:"row_spacing"`
	BodySize    Pair     `yaml:"body_size"`
	Drill       float64  `yaml:"drill"`
	PadSize     Pair     `yaml:"pad_size"`
	Courtyard   float64  `yaml:"courtyard"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Datasheet   string   `yaml:"datasheet"`
	Model       string   `yaml:"model"`
}

func (p *dipParams) validate() error {
	errs := &kfperrors.FieldErrors{Code: kfperrors.ErrCodeInvalidSeries}
	if p.Pins < 4 || p.Pins%2 != 0 {
		errs.Add("pins", "pin count must be an even number of at least 4, got %d", p.Pins)
	}
	if p.Pitch == 0 {
		p.Pitch = DefaultDipPitch
	}
	if p.Pitch <= 0 {
		errs.Add("pitch", "pitch must be positive, got %v", p.Pitch)
	}
	if p.RowSpacing == 0 {
		p.RowSpacing = DefaultDipRowSpacing
	}
	if p.RowSpacing <= 0 {
		errs.Add("row_spacing", "row spacing must be positive, got %v", p.RowSpacing)
	}
	if !p.BodySize.Positive() {
		errs.Add("body_size", "body size must be positive, got %v x %v", p.BodySize.X, p.BodySize.Y)
	}
	if p.Drill == 0 {
		p.Drill = DefaultDipDrill
	}
	if p.Drill <= 0 {
		errs.Add("drill", "drill must be positive, got %v", p.Drill)
	}
	if p.PadSize.IsZero() {
		p.PadSize = DefaultDipPadSize
	}
	if !p.PadSize.Positive() {
		errs.Add("pad_size", "pad size must be positive, got %v x %v", p.PadSize.X, p.PadSize.Y)
	} else if p.Drill > 0 && (p.PadSize.X <= p.Drill || p.PadSize.Y <= p.Drill) {
		errs.Add("pad_size", "pad %v x %v does not cover the %v drill", p.PadSize.X, p.PadSize.Y, p.Drill)
	}
	if p.Courtyard < 0 {
		errs.Add("courtyard", "courtyard offset must not be negative, got %v", p.Courtyard)
	}
	if p.Courtyard == 0 {
		p.Courtyard = DefaultCourtyardOffset
	}
	return errs.Err()
}

func buildDip(spec PartSpec) (*footprint.Footprint, error) {
	var p dipParams
	if err := spec.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	fp, err := footprint.New(spec.Name, footprint.TypeTHT)
	if err != nil {
		return nil, err
	}
	fp.Description = buildDescription(p.Description, p.Datasheet, "generated with kicadfp")
	fp.Tags = p.Tags

	// Oval pads with a rectangular pad 1. The left column counts down
	// from the origin, the right column counts back up.
	rows := p.Pins / 2
	proto, err := footprint.NewPad(footprint.Pad{
		Type:   footprint.PadTypeTHT,
		Shape:  footprint.PadShapeOval,
		Size:   p.PadSize.Vec(),
		Drill:  footprint.DrillRound(p.Drill),
		Layers: footprint.LayersTHT,
	})
	if err != nil {
		return nil, err
	}
	left, err := footprint.NewPadArray(footprint.PadArray{
		Prototype: proto,
		Start:     geometry.Vec{},
		Pitch:     geometry.V(0, p.Pitch),
		Count:     rows,
		Customize: func(index int, pad *footprint.Pad) {
			if index == 0 {
				pad.Shape = footprint.PadShapeRect
			}
		},
	})
	if err != nil {
		return nil, err
	}
	right, err := footprint.NewPadArray(footprint.PadArray{
		Prototype:   proto,
		Start:       geometry.V(p.RowSpacing, float64(rows-1)*p.Pitch),
		Pitch:       geometry.V(0, -p.Pitch),
		Count:       rows,
		FirstNumber: rows + 1,
	})
	if err != nil {
		return nil, err
	}
	if err := fp.Extend(left, right); err != nil {
		return nil, err
	}

	// Fabrication outline with the pin-1 corner cut.
	center := geometry.V(p.RowSpacing/2, float64(rows-1)*p.Pitch/2)
	bodyRect := geometry.RectAt(center, p.BodySize.Vec())
	body := bodyRect.BBox()
	fab := footprint.NewPolygon(bevelOutline(body, fabBevel(p.BodySize.Vec())), footprint.LayerFFab)
	fab.Filled = false
	if err := fp.Append(fab); err != nil {
		return nil, err
	}

	// Silkscreen: the body outline pushed out by the fab offset, with
	// everything too close to a pad removed. The side edges come back
	// as short dashes between the pads. A half circle notch on the top
	// edge marks pin 1.
	silkOutline, err := geometry.Inflate(bodyRect, DefaultSilkFabOffset)
	if err != nil {
		return nil, err
	}
	pads := append(left.Pads(), right.Pads()...)
	notchCenter := geometry.V(center.X, body.Min.Y-DefaultSilkFabOffset)
	regions := padKeepouts(pads, silkClearance())
	regions = append(regions, geometry.Circle{Center: notchCenter, Radius: dipNotchRadius})
	silk, err := footprint.KeepoutNodes(silkOutline,
		footprint.DrawAttrs{Layer: footprint.LayerFSilkS}, regions...)
	if err != nil {
		return nil, err
	}
	if err := fp.Extend(silk...); err != nil {
		return nil, err
	}
	notch := footprint.NewArc(notchCenter, notchCenter.Add(geometry.V(-dipNotchRadius, 0)), 180, footprint.LayerFSilkS)
	if err := fp.Append(notch); err != nil {
		return nil, err
	}

	// Courtyard around body and pads, rounded outward onto the grid.
	box := body
	for _, pad := range pads {
		box = box.Union(pad.BBox())
	}
	courtyard := gridBBox(box.Inflate(p.Courtyard))
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
