package footprint

import (
	"math"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// Drawable is implemented by nodes that carry a geometric shape with
// drawing attributes: [Line], [Arc], [Circle], [Rect], [Polygon] and
// [CompoundPolygon].
type Drawable interface {
	Node
	Shape() geometry.Shape
	Attrs() DrawAttrs
}

// FromShape wraps a geometric shape in the matching drawable node.
func FromShape(s geometry.Shape, attrs DrawAttrs) (Node, error) {
	switch t := s.(type) {
	case geometry.Line:
		n := NewLine(t.Start, t.End, attrs.Layer)
		n.Width = attrs.Width
		n.Style = attrs.style()
		return n, nil
	case geometry.Arc:
		n := NewArc(t.Center, t.Start, float64(t.Angle), attrs.Layer)
		n.Width = attrs.Width
		n.Style = attrs.style()
		return n, nil
	case geometry.Circle:
		n := NewCircle(t.Center, t.Radius, attrs.Layer)
		n.Width = attrs.Width
		n.Style = attrs.style()
		n.Filled = attrs.Filled
		return n, nil
	case geometry.Rect:
		n := NewRect(t.Min, t.Max, attrs.Layer)
		n.Width = attrs.Width
		n.Style = attrs.style()
		n.Filled = attrs.Filled
		return n, nil
	case geometry.Polygon:
		n := NewPolygon(t.Points, attrs.Layer)
		n.Width = attrs.Width
		n.Style = attrs.style()
		n.Filled = attrs.Filled
		return n, nil
	case geometry.CompoundPolygon:
		n := NewCompoundPolygon(t.Outlines, attrs.Layer)
		n.Width = attrs.Width
		n.Style = attrs.style()
		n.Filled = attrs.Filled
		return n, nil
	}
	return nil, kfperrors.New(kfperrors.ErrCodeInvalidShape, "no drawable node for shape %T", s)
}

// FromShapes wraps each shape in the matching drawable node.
func FromShapes(shapes []geometry.Shape, attrs DrawAttrs) ([]Node, error) {
	out := make([]Node, 0, len(shapes))
	for _, s := range shapes {
		n, err := FromShape(s, attrs)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// CutNodes splits a shape at its intersections with the cutter outline
// and wraps the fragments in drawable nodes.
func CutNodes(s, cutter geometry.Shape, attrs DrawAttrs) ([]Node, error) {
	return FromShapes(geometry.Cut(s, cutter), attrs)
}

// KeepoutNodes drops the parts of a shape inside the given closed
// regions and wraps the survivors in drawable nodes. A shape entirely
// inside a region yields no nodes.
func KeepoutNodes(s geometry.Shape, attrs DrawAttrs, regions ...geometry.Shape) ([]Node, error) {
	kept, err := geometry.KeepoutAll(s, regions...)
	if err != nil {
		return nil, err
	}
	return FromShapes(kept, attrs)
}

// InflatedNode grows a closed shape outward by d and wraps the result
// in a drawable node.
func InflatedNode(s geometry.Shape, d float64, attrs DrawAttrs) (Node, error) {
	grown, err := geometry.Inflate(s, d)
	if err != nil {
		return nil, err
	}
	return FromShape(grown, attrs)
}

// =============================================================================
// Composite Outlines
// =============================================================================

// Cross builds the two lines of a centered cross. Crosses drawn as
// lines give the board editor an exact snap point, which text glyphs do
// not.
func Cross(center, size geometry.Vec, angleDeg float64, attrs DrawAttrs) []Node {
	pts := []geometry.Vec{
		{X: -size.X / 2}, {X: size.X / 2},
		{Y: -size.Y / 2}, {Y: size.Y / 2},
	}
	for i, p := range pts {
		pts[i] = p.Rotate(angleDeg, geometry.Vec{}).Add(center)
	}
	h := NewLine(pts[0], pts[1], attrs.Layer)
	v := NewLine(pts[2], pts[3], attrs.Layer)
	h.Width, h.Style = attrs.Width, attrs.style()
	v.Width, v.Style = attrs.Width, attrs.style()
	return []Node{h, v}
}

// Stadium builds the outline of a stadium: a rectangle capped with
// semicircular ends around the two centers. Coinciding centers collapse
// to a circle.
func Stadium(c1, c2 geometry.Vec, radius float64, attrs DrawAttrs) ([]Node, error) {
	if radius <= 0 {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidShape, "stadium radius must be positive, got %v", radius)
	}
	if c1.IsCloseTo(c2) {
		n, err := FromShape(geometry.Circle{Center: c1, Radius: radius}, attrs)
		if err != nil {
			return nil, err
		}
		return []Node{n}, nil
	}

	axis := c2.Sub(c1).Unit()
	perp := geometry.Vec{X: axis.Y, Y: -axis.X}.Scale(radius)
	capDir := axis.Scale(radius)

	end1, err := geometry.ArcThreePoints(c1.Add(perp), c1.Sub(capDir), c1.Sub(perp))
	if err != nil {
		return nil, err
	}
	end2, err := geometry.ArcThreePoints(c2.Sub(perp), c2.Add(capDir), c2.Add(perp))
	if err != nil {
		return nil, err
	}

	return FromShapes([]geometry.Shape{
		end1,
		geometry.Line{Start: c1.Sub(perp), End: c2.Sub(perp)},
		end2,
		geometry.Line{Start: c2.Add(perp), End: c1.Add(perp)},
	}, attrs)
}

// StadiumInRect builds the stadium inscribed in the given rectangle,
// with the semicircles on the shorter sides.
func StadiumInRect(r geometry.Rect, attrs DrawAttrs) ([]Node, error) {
	size := r.Size()
	center := r.Center()
	if size.X > size.Y {
		radius := size.Y / 2
		return Stadium(
			geometry.V(r.Min.X+radius, center.Y),
			geometry.V(r.Max.X-radius, center.Y),
			radius, attrs,
		)
	}
	radius := size.X / 2
	return Stadium(
		geometry.V(center.X, r.Min.Y+radius),
		geometry.V(center.X, r.Max.Y-radius),
		radius, attrs,
	)
}

// RoundRectOutline builds the outline of a rectangle with rounded
// corners: four lines and four quarter arcs, clockwise from the top
// edge. A zero radius yields a plain rectangle node.
func RoundRectOutline(r geometry.Rect, radius float64, attrs DrawAttrs) ([]Node, error) {
	size := r.Size()
	if radius < 0 {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidShape, "corner radius must not be negative, got %v", radius)
	}
	if 2*radius > math.Min(size.X, size.Y)+geometry.Tol {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidShape,
			"corner radius %v too large for %v x %v outline", radius, size.X, size.Y)
	}
	if radius == 0 {
		n, err := FromShape(r, attrs)
		if err != nil {
			return nil, err
		}
		return []Node{n}, nil
	}

	min, max := r.Min, r.Max
	shapes := []geometry.Shape{
		geometry.Line{Start: geometry.V(min.X+radius, min.Y), End: geometry.V(max.X-radius, min.Y)},
		geometry.NewArc(geometry.V(max.X-radius, min.Y+radius), geometry.V(max.X-radius, min.Y), -90),
		geometry.Line{Start: geometry.V(max.X, min.Y+radius), End: geometry.V(max.X, max.Y-radius)},
		geometry.NewArc(geometry.V(max.X-radius, max.Y-radius), geometry.V(max.X, max.Y-radius), -90),
		geometry.Line{Start: geometry.V(max.X-radius, max.Y), End: geometry.V(min.X+radius, max.Y)},
		geometry.NewArc(geometry.V(min.X+radius, max.Y-radius), geometry.V(min.X+radius, max.Y), -90),
		geometry.Line{Start: geometry.V(min.X, max.Y-radius), End: geometry.V(min.X, min.Y+radius)},
		geometry.NewArc(geometry.V(min.X+radius, min.Y+radius), geometry.V(min.X, min.Y+radius), -90),
	}

	// Caps meeting on a side leave zero length edges behind.
	kept := shapes[:0]
	for _, s := range shapes {
		if l, ok := s.(geometry.Line); ok && l.Start.IsCloseTo(l.End) {
			continue
		}
		kept = append(kept, s)
	}
	return FromShapes(kept, attrs)
}
