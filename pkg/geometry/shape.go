package geometry

import "errors"

// Sentinel errors for geometric operations.
var (
	// ErrDegenerate is returned when an operation would produce or was
	// given a degenerate shape (zero length, zero radius, collinear arc
	// points).
	ErrDegenerate = errors.New("degenerate shape")

	// ErrNotClosed is returned when an open shape is used where a closed
	// region is required.
	ErrNotClosed = errors.New("shape is not a closed region")

	// ErrCannotInflate is returned when a shape kind does not support
	// inflation.
	ErrCannotInflate = errors.New("shape cannot be inflated")
)

// Shape is a 2D primitive that can be repositioned and measured.
// Implementations are immutable values; Translate and Rotate return new
// shapes.
type Shape interface {
	// Translate returns the shape moved by d.
	Translate(d Vec) Shape

	// Rotate returns the shape rotated by angleDeg degrees about the
	// given point. Positive angles rotate counterclockwise on screen.
	Rotate(angleDeg float64, about Vec) Shape

	// BBox returns the axis-aligned bounding box of the shape.
	BBox() BBox
}

// Closed reports whether s encloses an area. Closed shapes can act as
// keepout regions and be inflated.
func Closed(s Shape) bool {
	switch s.(type) {
	case Circle, Rect, Polygon, CompoundPolygon:
		return true
	}
	return false
}

// boundarySegments returns the straight boundary pieces of rectilinear
// closed shapes. Curved boundaries (circles) are handled separately by
// the intersection routines.
func boundarySegments(s Shape) []Line {
	switch t := s.(type) {
	case Rect:
		c := t.Corners()
		return []Line{
			{Start: c[0], End: c[1]},
			{Start: c[1], End: c[2]},
			{Start: c[2], End: c[3]},
			{Start: c[3], End: c[0]},
		}
	case Polygon:
		return t.Segments()
	case CompoundPolygon:
		var segs []Line
		for _, outline := range t.Outlines {
			segs = append(segs, outline.Segments()...)
		}
		return segs
	}
	return nil
}
