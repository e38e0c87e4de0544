package geometry

import "math"

// Rect is an axis-aligned rectangle. Min and Max are the normalized
// corners; use [NewRect] to construct one from arbitrary corner order.
type Rect struct {
	Min Vec
	Max Vec
}

// NewRect constructs a rectangle from two opposite corners given in any
// order.
func NewRect(c1, c2 Vec) Rect {
	return Rect{Min: c1.MinParts(c2), Max: c1.MaxParts(c2)}
}

// RectAt constructs a rectangle from its center and size.
func RectAt(center, size Vec) Rect {
	half := size.Scale(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Vec) Shape {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Rotate returns the rectangle rotated about the given point. Rotations
// by multiples of 90 degrees stay rectangles; any other angle produces
// the equivalent [Polygon].
func (r Rect) Rotate(angleDeg float64, about Vec) Shape {
	corners := r.Corners()
	rotated := make([]Vec, len(corners))
	for i, c := range corners {
		rotated[i] = c.Rotate(angleDeg, about)
	}

	rem := math.Mod(math.Abs(angleDeg), 90)
	if rem < Tol || 90-rem < Tol {
		return NewRect(rotated[0], rotated[2])
	}
	return Polygon{Points: rotated}
}

// BBox returns the rectangle itself as a bounding box.
func (r Rect) BBox() BBox {
	return BBox{Min: r.Min, Max: r.Max}
}

// Size returns the width and height.
func (r Rect) Size() Vec {
	return r.Max.Sub(r.Min)
}

// Center returns the center point.
func (r Rect) Center() Vec {
	return Vec{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Corners returns the four corners in drawing order, starting at Min
// and running counterclockwise on screen.
func (r Rect) Corners() [4]Vec {
	return [4]Vec{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// Contains reports whether p lies strictly inside the rectangle.
func (r Rect) Contains(p Vec) bool {
	return p.X > r.Min.X+Tol && p.X < r.Max.X-Tol &&
		p.Y > r.Min.Y+Tol && p.Y < r.Max.Y-Tol
}
