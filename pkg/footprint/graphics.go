package footprint

import (
	"strconv"

	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// =============================================================================
// Drawing Attributes
// =============================================================================

// LineStyle selects the stroke pattern of a graphic outline.
type LineStyle string

// Stroke patterns accepted by the board format.
const (
	StyleSolid      LineStyle = "solid"
	StyleDash       LineStyle = "dash"
	StyleDot        LineStyle = "dot"
	StyleDashDot    LineStyle = "dash_dot"
	StyleDashDotDot LineStyle = "dash_dot_dot"
)

// ValidLineStyles is the set of supported stroke patterns.
var ValidLineStyles = map[LineStyle]bool{
	StyleSolid:      true,
	StyleDash:       true,
	StyleDot:        true,
	StyleDashDot:    true,
	StyleDashDotDot: true,
}

// DrawAttrs bundles the drawing attributes shared by the graphic nodes.
// A Width of zero selects the layer default at serialization time.
type DrawAttrs struct {
	Layer  string
	Width  float64
	Style  LineStyle
	Filled bool
}

func (a DrawAttrs) style() LineStyle {
	if a.Style == "" {
		return StyleSolid
	}
	return a.Style
}

// =============================================================================
// Line
// =============================================================================

// Line draws a straight graphic segment (fp_line).
type Line struct {
	BaseNode
	geometry.Line

	Layer string
	// Width of zero selects the layer default at serialization.
	Width float64
	Style LineStyle
}

// NewLine creates a line between two points on the given layer.
func NewLine(start, end geometry.Vec, layer string) *Line {
	l := &Line{
		Line:  geometry.Line{Start: start, End: end},
		Layer: layer,
		Style: StyleSolid,
	}
	l.bind(l, "Line")
	return l
}

func (l *Line) contentID() *identity {
	return newIdentity(l.kind).
		str("layer", l.Layer).
		float("width", l.Width).
		str("style", string(l.Attrs().style())).
		vec("start", l.Start).
		vec("end", l.End)
}

// Shape returns the underlying geometry.
func (l *Line) Shape() geometry.Shape { return l.Line }

// Attrs returns the drawing attributes.
func (l *Line) Attrs() DrawAttrs {
	return DrawAttrs{Layer: l.Layer, Width: l.Width, Style: l.Style}
}

// Translate moves the line by d.
func (l *Line) Translate(d geometry.Vec) {
	l.Line = l.Line.Translate(d).(geometry.Line)
}

// Rotate rotates the line about the given point.
func (l *Line) Rotate(angleDeg float64, about geometry.Vec) {
	l.Line = l.Line.Rotate(angleDeg, about).(geometry.Line)
}

// Copy returns a deep copy with the parent cleared.
func (l *Line) Copy() Node {
	c := NewLine(l.Start, l.End, l.Layer)
	c.Width, c.Style = l.Width, l.Style
	l.copyInto(c)
	return c
}

// =============================================================================
// Arc
// =============================================================================

// Arc draws a circular arc (fp_arc). Positive sweeps turn
// counterclockwise on screen.
type Arc struct {
	BaseNode
	geometry.Arc

	Layer string
	Width float64
	Style LineStyle
}

// NewArc creates an arc from its center, start point and sweep angle in
// degrees.
func NewArc(center, start geometry.Vec, sweepDeg float64, layer string) *Arc {
	a := &Arc{
		Arc:   geometry.NewArc(center, start, sweepDeg),
		Layer: layer,
		Style: StyleSolid,
	}
	a.bind(a, "Arc")
	return a
}

// NewArcThreePoints creates the arc through three points. Collinear
// points are rejected.
func NewArcThreePoints(start, mid, end geometry.Vec, layer string) (*Arc, error) {
	g, err := geometry.ArcThreePoints(start, mid, end)
	if err != nil {
		return nil, err
	}
	a := &Arc{Arc: g, Layer: layer, Style: StyleSolid}
	a.bind(a, "Arc")
	return a, nil
}

func (a *Arc) contentID() *identity {
	return newIdentity(a.kind).
		str("layer", a.Layer).
		float("width", a.Width).
		str("style", string(a.Attrs().style())).
		vec("center", a.Center).
		vec("start", a.Start).
		float("angle", float64(a.Angle))
}

// Shape returns the underlying geometry.
func (a *Arc) Shape() geometry.Shape { return a.Arc }

// Attrs returns the drawing attributes.
func (a *Arc) Attrs() DrawAttrs {
	return DrawAttrs{Layer: a.Layer, Width: a.Width, Style: a.Style}
}

// Translate moves the arc by d.
func (a *Arc) Translate(d geometry.Vec) {
	a.Arc = a.Arc.Translate(d).(geometry.Arc)
}

// Rotate rotates the arc about the given point.
func (a *Arc) Rotate(angleDeg float64, about geometry.Vec) {
	a.Arc = a.Arc.Rotate(angleDeg, about).(geometry.Arc)
}

// Copy returns a deep copy with the parent cleared.
func (a *Arc) Copy() Node {
	c := NewArc(a.Center, a.Start, float64(a.Angle), a.Layer)
	c.Width, c.Style = a.Width, a.Style
	a.copyInto(c)
	return c
}

// =============================================================================
// Circle
// =============================================================================

// Circle draws a full circle (fp_circle).
type Circle struct {
	BaseNode
	geometry.Circle

	Layer  string
	Width  float64
	Style  LineStyle
	Filled bool
}

// NewCircle creates a circle outline on the given layer.
func NewCircle(center geometry.Vec, radius float64, layer string) *Circle {
	c := &Circle{
		Circle: geometry.Circle{Center: center, Radius: radius},
		Layer:  layer,
		Style:  StyleSolid,
	}
	c.bind(c, "Circle")
	return c
}

func (c *Circle) contentID() *identity {
	return newIdentity(c.kind).
		str("layer", c.Layer).
		float("width", c.Width).
		str("style", string(c.Attrs().style())).
		flag("fill", c.Filled).
		vec("center", c.Center).
		float("radius", c.Radius)
}

// Shape returns the underlying geometry.
func (c *Circle) Shape() geometry.Shape { return c.Circle }

// Attrs returns the drawing attributes.
func (c *Circle) Attrs() DrawAttrs {
	return DrawAttrs{Layer: c.Layer, Width: c.Width, Style: c.Style, Filled: c.Filled}
}

// Translate moves the circle by d.
func (c *Circle) Translate(d geometry.Vec) {
	c.Circle = c.Circle.Translate(d).(geometry.Circle)
}

// Rotate rotates the circle about the given point.
func (c *Circle) Rotate(angleDeg float64, about geometry.Vec) {
	c.Circle = c.Circle.Rotate(angleDeg, about).(geometry.Circle)
}

// Copy returns a deep copy with the parent cleared.
func (c *Circle) Copy() Node {
	cp := NewCircle(c.Center, c.Radius, c.Layer)
	cp.Width, cp.Style, cp.Filled = c.Width, c.Style, c.Filled
	c.copyInto(cp)
	return cp
}

// =============================================================================
// Rect
// =============================================================================

// Rect draws an axis-aligned rectangle (fp_rect). The corners are
// normalized at construction. The board format only represents
// axis-aligned rectangles; rotate via a [Polygon] when an arbitrary
// angle is needed.
type Rect struct {
	BaseNode
	geometry.Rect

	Layer  string
	Width  float64
	Style  LineStyle
	Filled bool
}

// NewRect creates a rectangle from two opposite corners given in any
// order.
func NewRect(c1, c2 geometry.Vec, layer string) *Rect {
	r := &Rect{
		Rect:  geometry.NewRect(c1, c2),
		Layer: layer,
		Style: StyleSolid,
	}
	r.bind(r, "Rect")
	return r
}

func (r *Rect) contentID() *identity {
	return newIdentity(r.kind).
		str("layer", r.Layer).
		float("width", r.Width).
		str("style", string(r.Attrs().style())).
		flag("fill", r.Filled).
		vec("min", r.Min).
		vec("max", r.Max)
}

// Shape returns the underlying geometry.
func (r *Rect) Shape() geometry.Shape { return r.Rect }

// Attrs returns the drawing attributes.
func (r *Rect) Attrs() DrawAttrs {
	return DrawAttrs{Layer: r.Layer, Width: r.Width, Style: r.Style, Filled: r.Filled}
}

// Translate moves the rectangle by d.
func (r *Rect) Translate(d geometry.Vec) {
	r.Rect = r.Rect.Translate(d).(geometry.Rect)
}

// Copy returns a deep copy with the parent cleared.
func (r *Rect) Copy() Node {
	c := NewRect(r.Min, r.Max, r.Layer)
	c.Width, c.Style, c.Filled = r.Width, r.Style, r.Filled
	r.copyInto(c)
	return c
}

// =============================================================================
// Polygon
// =============================================================================

// Polygon draws a closed filled or outlined polygon (fp_poly). The
// outline is implicitly closed; a duplicated closing point is dropped
// at construction.
type Polygon struct {
	BaseNode
	geometry.Polygon

	Layer  string
	Width  float64
	Style  LineStyle
	Filled bool
}

// NewPolygon creates a filled polygon from its outline points.
func NewPolygon(points []geometry.Vec, layer string) *Polygon {
	pts := make([]geometry.Vec, len(points))
	copy(pts, points)
	if len(pts) > 1 && pts[0].IsCloseTo(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	p := &Polygon{
		Polygon: geometry.Polygon{Points: pts},
		Layer:   layer,
		Style:   StyleSolid,
		Filled:  true,
	}
	p.bind(p, "Polygon")
	return p
}

func (p *Polygon) contentID() *identity {
	return newIdentity(p.kind).
		str("layer", p.Layer).
		float("width", p.Width).
		str("style", string(p.Attrs().style())).
		flag("fill", p.Filled).
		vecs("points", p.Points)
}

// Shape returns the underlying geometry.
func (p *Polygon) Shape() geometry.Shape { return p.Polygon }

// Attrs returns the drawing attributes.
func (p *Polygon) Attrs() DrawAttrs {
	return DrawAttrs{Layer: p.Layer, Width: p.Width, Style: p.Style, Filled: p.Filled}
}

// Translate moves the polygon by d.
func (p *Polygon) Translate(d geometry.Vec) {
	p.Polygon = p.Polygon.Translate(d).(geometry.Polygon)
}

// Rotate rotates the polygon about the given point.
func (p *Polygon) Rotate(angleDeg float64, about geometry.Vec) {
	p.Polygon = p.Polygon.Rotate(angleDeg, about).(geometry.Polygon)
}

// Copy returns a deep copy with the parent cleared.
func (p *Polygon) Copy() Node {
	c := NewPolygon(p.Points, p.Layer)
	c.Width, c.Style, c.Filled = p.Width, p.Style, p.Filled
	p.copyInto(c)
	return c
}

// =============================================================================
// Compound Polygon
// =============================================================================

// CompoundPolygon draws several closed outlines as one logical shape.
// It serializes as one fp_poly per outline sharing the same attributes
// and identity, or as custom pad primitives when used inside a pad.
type CompoundPolygon struct {
	BaseNode
	geometry.CompoundPolygon

	Layer  string
	Width  float64
	Style  LineStyle
	Filled bool
}

// NewCompoundPolygon creates a filled compound polygon from its
// outlines.
func NewCompoundPolygon(outlines []geometry.Polygon, layer string) *CompoundPolygon {
	out := make([]geometry.Polygon, len(outlines))
	copy(out, outlines)
	c := &CompoundPolygon{
		CompoundPolygon: geometry.CompoundPolygon{Outlines: out},
		Layer:           layer,
		Style:           StyleSolid,
		Filled:          true,
	}
	c.bind(c, "CompoundPolygon")
	return c
}

func (c *CompoundPolygon) contentID() *identity {
	id := newIdentity(c.kind).
		str("layer", c.Layer).
		float("width", c.Width).
		str("style", string(c.Attrs().style())).
		flag("fill", c.Filled).
		num("outlines", len(c.Outlines))
	for i, o := range c.Outlines {
		id.vecs("outline"+strconv.Itoa(i), o.Points)
	}
	return id
}

// Shape returns the underlying geometry.
func (c *CompoundPolygon) Shape() geometry.Shape { return c.CompoundPolygon }

// Attrs returns the drawing attributes.
func (c *CompoundPolygon) Attrs() DrawAttrs {
	return DrawAttrs{Layer: c.Layer, Width: c.Width, Style: c.Style, Filled: c.Filled}
}

// Translate moves all outlines by d.
func (c *CompoundPolygon) Translate(d geometry.Vec) {
	c.CompoundPolygon = c.CompoundPolygon.Translate(d).(geometry.CompoundPolygon)
}

// Rotate rotates all outlines about the given point.
func (c *CompoundPolygon) Rotate(angleDeg float64, about geometry.Vec) {
	c.CompoundPolygon = c.CompoundPolygon.Rotate(angleDeg, about).(geometry.CompoundPolygon)
}

// Copy returns a deep copy with the parent cleared.
func (c *CompoundPolygon) Copy() Node {
	cp := NewCompoundPolygon(c.Outlines, c.Layer)
	cp.Width, cp.Style, cp.Filled = c.Width, c.Style, c.Filled
	c.copyInto(cp)
	return cp
}
