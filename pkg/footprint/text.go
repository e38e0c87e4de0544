package footprint

import "github.com/matzehuels/kicadfp/pkg/geometry"

// =============================================================================
// Text Defaults
// =============================================================================

const (
	// DefaultTextSize is the font size, in millimetres, applied to new
	// text and property nodes.
	DefaultTextSize = 1.0

	// DefaultTextThickness is the font stroke thickness applied to new
	// text and property nodes.
	DefaultTextThickness = 0.15
)

// Canonical property names. Reference and Value are required in every
// footprint and are emitted before all other children.
const (
	PropertyReference   = "Reference"
	PropertyValue       = "Value"
	PropertyDatasheet   = "Datasheet"
	PropertyDescription = "Description"
	PropertyFootprint   = "Footprint"
)

// =============================================================================
// Text
// =============================================================================

// Text draws free user text (fp_text user).
type Text struct {
	BaseNode

	Content   string
	At        geometry.Vec
	Rotation  float64
	Layer     string
	Size      geometry.Vec
	Thickness float64

	// Justify holds extra justification tokens (left, right, top,
	// bottom). Mirror is tracked separately and emitted first.
	Justify  []string
	Mirror   bool
	Hide     bool
	Knockout bool
}

// NewText creates user text at the given position with the default
// font.
func NewText(content string, at geometry.Vec, layer string) *Text {
	t := &Text{
		Content:   content,
		At:        at,
		Layer:     layer,
		Size:      geometry.V(DefaultTextSize, DefaultTextSize),
		Thickness: DefaultTextThickness,
	}
	t.bind(t, "Text")
	return t
}

func (t *Text) contentID() *identity {
	return newIdentity(t.kind).
		str("text", t.Content).
		vec("at", t.At).
		float("rotation", t.Rotation).
		str("layer", t.Layer).
		vec("size", t.Size).
		float("thickness", t.Thickness).
		strs("justify", t.Justify).
		flag("mirror", t.Mirror).
		flag("hide", t.Hide).
		flag("knockout", t.Knockout)
}

// Translate moves the text by d.
func (t *Text) Translate(d geometry.Vec) {
	t.At = t.At.Add(d)
}

// Rotate rotates the text about the given point. The stored text angle
// follows the position so the glyphs keep their orientation relative to
// the rest of the drawing.
func (t *Text) Rotate(angleDeg float64, about geometry.Vec) {
	t.At = t.At.Rotate(angleDeg, about)
	t.Rotation += angleDeg
}

// BBox returns a coarse bounding box estimated from the glyph count.
func (t *Text) BBox() geometry.BBox {
	half := geometry.V(float64(len(t.Content))*t.Size.X/2, t.Size.Y/2)
	return geometry.BBox{Min: t.At.Sub(half), Max: t.At.Add(half)}
}

// Copy returns a deep copy with the parent cleared.
func (t *Text) Copy() Node {
	c := NewText(t.Content, t.At, t.Layer)
	c.Rotation = t.Rotation
	c.Size = t.Size
	c.Thickness = t.Thickness
	c.Justify = append([]string(nil), t.Justify...)
	c.Mirror, c.Hide, c.Knockout = t.Mirror, t.Hide, t.Knockout
	t.copyInto(c)
	return c
}

// =============================================================================
// Property
// =============================================================================

// Property is a named footprint field (property "Name" "value"). The
// Reference and Value properties are mandatory in the board format;
// further fields like Datasheet are optional.
type Property struct {
	BaseNode

	Name      string
	Value     string
	At        geometry.Vec
	Rotation  float64
	Layer     string
	Size      geometry.Vec
	Thickness float64

	Justify []string
	Mirror  bool
	Hide    bool
}

// NewProperty creates a named field with the default font.
func NewProperty(name, value string, at geometry.Vec, layer string) *Property {
	p := &Property{
		Name:      name,
		Value:     value,
		At:        at,
		Layer:     layer,
		Size:      geometry.V(DefaultTextSize, DefaultTextSize),
		Thickness: DefaultTextThickness,
	}
	p.bind(p, "Property")
	return p
}

// NewReference creates the Reference field at its conventional position
// above the body on the front silkscreen.
func NewReference(at geometry.Vec) *Property {
	return NewProperty(PropertyReference, "REF**", at, LayerFSilkS)
}

// NewValue creates the Value field on the front fab layer.
func NewValue(value string, at geometry.Vec) *Property {
	return NewProperty(PropertyValue, value, at, LayerFFab)
}

func (p *Property) contentID() *identity {
	return newIdentity(p.kind).
		str("name", p.Name).
		str("text", p.Value).
		vec("at", p.At).
		float("rotation", p.Rotation).
		str("layer", p.Layer).
		vec("size", p.Size).
		float("thickness", p.Thickness).
		strs("justify", p.Justify).
		flag("mirror", p.Mirror).
		flag("hide", p.Hide)
}

// Translate moves the field by d.
func (p *Property) Translate(d geometry.Vec) {
	p.At = p.At.Add(d)
}

// Rotate rotates the field about the given point.
func (p *Property) Rotate(angleDeg float64, about geometry.Vec) {
	p.At = p.At.Rotate(angleDeg, about)
	p.Rotation += angleDeg
}

// Copy returns a deep copy with the parent cleared.
func (p *Property) Copy() Node {
	c := NewProperty(p.Name, p.Value, p.At, p.Layer)
	c.Rotation = p.Rotation
	c.Size = p.Size
	c.Thickness = p.Thickness
	c.Justify = append([]string(nil), p.Justify...)
	c.Mirror, c.Hide = p.Mirror, p.Hide
	p.copyInto(c)
	return c
}
