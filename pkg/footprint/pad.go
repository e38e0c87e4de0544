package footprint

import (
	"math"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// =============================================================================
// Pad Enums
// =============================================================================

// PadType selects the electrical and mechanical class of a pad.
type PadType string

const (
	PadTypeTHT     PadType = "thru_hole"
	PadTypeSMD     PadType = "smd"
	PadTypeConnect PadType = "connect"
	PadTypeNPTH    PadType = "np_thru_hole"
)

// ValidPadTypes is the set of accepted pad types.
var ValidPadTypes = map[PadType]bool{
	PadTypeTHT:     true,
	PadTypeSMD:     true,
	PadTypeConnect: true,
	PadTypeNPTH:    true,
}

// PadShape selects the copper outline of a pad.
type PadShape string

const (
	PadShapeCircle    PadShape = "circle"
	PadShapeOval      PadShape = "oval"
	PadShapeRect      PadShape = "rect"
	PadShapeRoundRect PadShape = "roundrect"
	PadShapeTrapezoid PadShape = "trapezoid"
	PadShapeCustom    PadShape = "custom"
)

// ValidPadShapes is the set of accepted pad shapes.
var ValidPadShapes = map[PadShape]bool{
	PadShapeCircle:    true,
	PadShapeOval:      true,
	PadShapeRect:      true,
	PadShapeRoundRect: true,
	PadShapeTrapezoid: true,
	PadShapeCustom:    true,
}

// ValidAnchorShapes is the set of anchor shapes accepted for custom
// pads.
var ValidAnchorShapes = map[PadShape]bool{
	PadShapeCircle: true,
	PadShapeRect:   true,
}

// FabProperty marks a pad's fabrication role.
type FabProperty string

const (
	FabPropertyNone           FabProperty = ""
	FabPropertyBGA            FabProperty = "bga"
	FabPropertyFiducialGlobal FabProperty = "fiducial_global"
	FabPropertyFiducialLocal  FabProperty = "fiducial_local"
	FabPropertyTestPoint      FabProperty = "testpoint"
	FabPropertyHeatsink       FabProperty = "heatsink"
	FabPropertyCastellated    FabProperty = "castellated"
)

// ValidFabProperties is the set of accepted fabrication properties.
var ValidFabProperties = map[FabProperty]bool{
	FabPropertyNone:           true,
	FabPropertyBGA:            true,
	FabPropertyFiducialGlobal: true,
	FabPropertyFiducialLocal:  true,
	FabPropertyTestPoint:      true,
	FabPropertyHeatsink:       true,
	FabPropertyCastellated:    true,
}

// ZoneConnection selects how copper zones connect to a pad. The zero
// value inherits the enclosing scope's setting and is omitted from the
// output.
type ZoneConnection int

const (
	ZoneConnectionInherit ZoneConnection = iota
	ZoneConnectionNone
	ZoneConnectionThermalRelief
	ZoneConnectionSolid
)

// FileValue returns the integer written to the board file. Only valid
// for non-inherit connections.
func (z ZoneConnection) FileValue() int { return int(z) - 1 }

// UnconnectedLayerMode selects what happens to pad copper on layers
// without a connection.
type UnconnectedLayerMode int

const (
	UnconnectedKeepAll UnconnectedLayerMode = iota
	UnconnectedRemoveAll
	UnconnectedRemoveExceptEnds
)

// ShapeInZone selects how a custom pad's outline interacts with zone
// fills.
type ShapeInZone string

const (
	ShapeInZoneOutline    ShapeInZone = "outline"
	ShapeInZoneConvexHull ShapeInZone = "convexhull"
)

// ValidShapeInZone is the set of accepted zone outline modes.
var ValidShapeInZone = map[ShapeInZone]bool{
	ShapeInZoneOutline:    true,
	ShapeInZoneConvexHull: true,
}

// =============================================================================
// Drill
// =============================================================================

// Drill describes a pad's hole. Equal axes make a round hole, unequal
// axes an oval slot. Offset shifts the copper relative to the hole.
type Drill struct {
	Size   geometry.Vec
	Offset geometry.Vec
}

// DrillRound builds a round drill of the given diameter.
func DrillRound(diameter float64) *Drill {
	return &Drill{Size: geometry.V(diameter, diameter)}
}

// DrillOval builds an oval slot drill.
func DrillOval(x, y float64) *Drill {
	return &Drill{Size: geometry.V(x, y)}
}

// IsOval reports whether the drill is a slot rather than a round hole.
func (d *Drill) IsOval() bool {
	return math.Abs(d.Size.X-d.Size.Y) > geometry.Tol
}

func (d *Drill) copy() *Drill {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// =============================================================================
// Pad
// =============================================================================

// Pad is a copper pad or hole. Construct pads through [NewPad], which
// validates the combination of type, shape, drill and layers and
// resolves corner rounding; mutate copies through [Pad.CopyWith].
type Pad struct {
	BaseNode

	// Number is the pad name. Empty is valid and sorts first;
	// mechanical holes are typically unnumbered.
	Number string
	Type   PadType
	Shape  PadShape

	At       geometry.Vec
	Size     geometry.Vec
	Rotation float64
	Drill    *Drill
	Layers   []string

	// Corner rounding for roundrect pads.
	RoundRadius    RoundRadius
	Chamfer        ChamferSize
	ChamferCorners ChamferCorners

	SolderMaskMargin       float64
	SolderPasteMargin      float64
	SolderPasteMarginRatio float64
	Clearance              float64

	ZoneConnection     ZoneConnection
	ThermalBridgeWidth float64
	// ThermalBridgeAngle zero means the shape default: 45 degrees for
	// circle-anchored pads, 90 for everything else.
	ThermalBridgeAngle float64
	ThermalGap         float64

	UnconnectedLayerMode UnconnectedLayerMode
	FabProperty          FabProperty

	// Custom shape fields, only meaningful for PadShapeCustom.
	Primitives  []Node
	AnchorShape PadShape
	ShapeInZone ShapeInZone

	// Resolved at construction from the handlers and pad size.
	radiusRatio  float64
	chamferRatio float64
}

// NewPad validates the given pad definition and returns the usable
// node. All field problems are reported together.
func NewPad(p Pad) (*Pad, error) {
	errs := &kfperrors.FieldErrors{Code: kfperrors.ErrCodeInvalidPad}

	if !ValidPadTypes[p.Type] {
		errs.Add("type", "invalid pad type %q", p.Type)
	}
	if !ValidPadShapes[p.Shape] {
		errs.Add("shape", "invalid pad shape %q", p.Shape)
	}
	if p.Size.X <= 0 || p.Size.Y <= 0 {
		errs.Add("size", "pad size must be positive, got %v x %v", p.Size.X, p.Size.Y)
	}
	if len(p.Layers) == 0 {
		errs.Add("layers", "pad needs at least one layer")
	}
	for _, l := range p.Layers {
		if l == "" {
			errs.Add("layers", "layer names must not be empty")
			break
		}
	}
	if math.Abs(p.SolderPasteMarginRatio) > 1 {
		errs.Add("solder_paste_margin_ratio", "ratio %v outside [-1, 1]", p.SolderPasteMarginRatio)
	}

	switch p.Type {
	case PadTypeTHT, PadTypeNPTH:
		if p.Drill == nil {
			errs.Add("drill", "drill required for %s pads", p.Type)
		} else if p.Drill.Size.X <= 0 || p.Drill.Size.Y <= 0 {
			errs.Add("drill", "drill size must be positive, got %v x %v", p.Drill.Size.X, p.Drill.Size.Y)
		}
	case PadTypeSMD, PadTypeConnect:
		if p.Drill != nil {
			errs.Add("drill", "%s pads cannot have a drill", p.Type)
		}
	}

	// An oval with equal axes is a circle.
	if p.Shape == PadShapeOval && math.Abs(p.Size.X-p.Size.Y) < geometry.Tol {
		p.Shape = PadShapeCircle
	}

	if p.Shape == PadShapeRoundRect && p.Size.X > 0 && p.Size.Y > 0 {
		if !p.RoundRadius.Requested() && !p.ChamferCorners.Any() {
			errs.Add("round_radius", "roundrect pads need a round radius or chamfered corners")
		}
		shortest := math.Min(p.Size.X, p.Size.Y)
		ratio, err := p.RoundRadius.ratioFor(shortest)
		if err != nil {
			errs.Add("round_radius", "%s", kfperrors.UserMessage(err))
		}
		p.radiusRatio = ratio

		chamfer := p.Chamfer
		if p.ChamferCorners.Any() && !chamfer.Requested() {
			chamfer.Ratio = DefaultChamferRatio
		}
		cratio, err := chamfer.ratioFor(shortest)
		if err != nil {
			errs.Add("chamfer", "%s", kfperrors.UserMessage(err))
		}
		p.chamferRatio = cratio
	}

	if p.Shape == PadShapeCustom {
		if p.AnchorShape == "" {
			p.AnchorShape = PadShapeCircle
		}
		if !ValidAnchorShapes[p.AnchorShape] {
			errs.Add("anchor_shape", "invalid anchor shape %q", p.AnchorShape)
		}
		if p.ShapeInZone == "" {
			p.ShapeInZone = ShapeInZoneOutline
		}
		if !ValidShapeInZone[p.ShapeInZone] {
			errs.Add("shape_in_zone", "invalid zone outline mode %q", p.ShapeInZone)
		}
		if len(p.Primitives) == 0 {
			errs.Add("primitives", "custom pads need at least one primitive")
		}
		for _, prim := range p.Primitives {
			switch prim.(type) {
			case *Line, *Arc, *Circle, *Rect, *Polygon, *CompoundPolygon:
			case nil:
				errs.Add("primitives", "primitives must not be nil")
			default:
				errs.Add("primitives", "unsupported primitive kind %s", prim.Kind())
			}
		}
	}

	if !ValidFabProperties[p.FabProperty] {
		errs.Add("fab_property", "invalid fabrication property %q", p.FabProperty)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	pad := p
	pad.BaseNode = BaseNode{}
	pad.Layers = append([]string(nil), p.Layers...)
	pad.Drill = p.Drill.copy()
	pad.Primitives = make([]Node, len(p.Primitives))
	for i, prim := range p.Primitives {
		pad.Primitives[i] = prim.Copy()
	}
	pad.bind(&pad, "Pad")
	return &pad, nil
}

// MustNewPad is NewPad for static definitions; it panics on invalid
// input.
func MustNewPad(p Pad) *Pad {
	pad, err := NewPad(p)
	if err != nil {
		panic(err)
	}
	return pad
}

// CopyWith duplicates the pad, applies the mutation and revalidates.
// The usual overrides are position, number and shape.
func (p *Pad) CopyWith(mutate func(*Pad)) (*Pad, error) {
	clone := *p
	clone.Layers = append([]string(nil), p.Layers...)
	clone.Drill = p.Drill.copy()
	clone.Primitives = make([]Node, len(p.Primitives))
	for i, prim := range p.Primitives {
		clone.Primitives[i] = prim.Copy()
	}
	if mutate != nil {
		mutate(&clone)
	}
	out, err := NewPad(clone)
	if err != nil {
		return nil, err
	}
	out.SetSeed(p.Seed())
	out.SetUniqueID(p.UniqueID())
	return out, nil
}

// =============================================================================
// Pad Accessors
// =============================================================================

// EffectiveShape returns the shape written to the file. A roundrect
// without any effective rounding or chamfer decays to a plain rect.
func (p *Pad) EffectiveShape() PadShape {
	if p.Shape == PadShapeRoundRect && p.radiusRatio == 0 && !p.ChamferCorners.Any() {
		return PadShapeRect
	}
	return p.Shape
}

// RadiusRatio returns the resolved roundrect radius ratio.
func (p *Pad) RadiusRatio() float64 { return p.radiusRatio }

// ChamferRatio returns the resolved chamfer ratio.
func (p *Pad) ChamferRatio() float64 { return p.chamferRatio }

// RoundRadiusMM returns the corner radius in millimetres. For custom
// pads this is half the widest primitive stroke.
func (p *Pad) RoundRadiusMM() float64 {
	if p.Shape == PadShapeCustom {
		max := 0.0
		for _, prim := range p.Primitives {
			if d, ok := prim.(Drawable); ok {
				if w := d.Attrs().Width / 2; w > max {
					max = w
				}
			}
		}
		return max
	}
	return p.radiusRatio * math.Min(p.Size.X, p.Size.Y)
}

// ThermalAngle returns the effective thermal bridge angle: the explicit
// value when set, otherwise 45 degrees for circle-anchored pads and 90
// for everything else.
func (p *Pad) ThermalAngle() float64 {
	if p.ThermalBridgeAngle != 0 {
		return p.ThermalBridgeAngle
	}
	if p.Shape == PadShapeCircle ||
		(p.Shape == PadShapeCustom && p.AnchorShape == PadShapeCircle) {
		return 45
	}
	return 90
}

// =============================================================================
// Pad Operations
// =============================================================================

// Translate moves the pad by d.
func (p *Pad) Translate(d geometry.Vec) {
	p.At = p.At.Add(d)
}

// Rotate rotates the pad about the given point. The pad's own angle
// follows so the copper keeps its orientation relative to the rest of
// the footprint.
func (p *Pad) Rotate(angleDeg float64, about geometry.Vec) {
	p.At = p.At.Rotate(angleDeg, about)
	p.Rotation += angleDeg
}

// BBox returns the pad's bounding box. Custom pads take the union of
// the anchor and all primitives.
func (p *Pad) BBox() geometry.BBox {
	half := p.Size.Scale(0.5)
	switch p.Shape {
	case PadShapeCircle:
		return geometry.BBox{Min: p.At.Sub(half), Max: p.At.Add(half)}
	case PadShapeCustom:
		b := geometry.RectAt(p.At, p.Size).BBox()
		for _, prim := range p.Primitives {
			d, ok := prim.(Drawable)
			if !ok {
				continue
			}
			abs := d.Shape().Rotate(p.Rotation, geometry.Vec{}).Translate(p.At)
			b = b.Union(abs.BBox())
		}
		return b
	default:
		return geometry.RectAt(p.At, p.Size).Rotate(p.Rotation, p.At).BBox()
	}
}

func (p *Pad) contentID() *identity {
	id := newIdentity(p.kind).
		str("number", p.Number).
		str("type", string(p.Type)).
		str("shape", string(p.Shape)).
		vec("at", p.At).
		vec("size", p.Size).
		float("rotation", p.Rotation).
		strs("layers", p.Layers).
		float("radius_ratio", p.radiusRatio).
		float("chamfer_ratio", p.chamferRatio).
		flag("chamfer_tl", p.ChamferCorners.TopLeft).
		flag("chamfer_tr", p.ChamferCorners.TopRight).
		flag("chamfer_br", p.ChamferCorners.BottomRight).
		flag("chamfer_bl", p.ChamferCorners.BottomLeft).
		float("solder_mask_margin", p.SolderMaskMargin).
		float("solder_paste_margin", p.SolderPasteMargin).
		float("solder_paste_margin_ratio", p.SolderPasteMarginRatio).
		float("clearance", p.Clearance).
		num("zone_connection", int(p.ZoneConnection)).
		float("thermal_bridge_width", p.ThermalBridgeWidth).
		float("thermal_bridge_angle", p.ThermalBridgeAngle).
		float("thermal_gap", p.ThermalGap).
		num("unconnected_layer_mode", int(p.UnconnectedLayerMode)).
		str("fab_property", string(p.FabProperty)).
		str("anchor_shape", string(p.AnchorShape)).
		str("shape_in_zone", string(p.ShapeInZone))
	if p.Drill != nil {
		id.vec("drill", p.Drill.Size).vec("drill_offset", p.Drill.Offset)
	}
	hashes := make([]string, len(p.Primitives))
	for i, prim := range p.Primitives {
		hashes[i] = prim.ContentHash()
	}
	return id.strs("primitives", hashes)
}

// Copy returns a deep copy with the parent cleared.
func (p *Pad) Copy() Node {
	clone, err := p.CopyWith(nil)
	if err != nil {
		// The source pad was already validated.
		panic(err)
	}
	p.copyInto(clone)
	return clone
}
