package geometry

import "math"

// BBox is an axis-aligned bounding box. The zero value from [NewBBox]
// is empty and unions cleanly with any other box.
type BBox struct {
	Min Vec
	Max Vec
}

// NewBBox returns an empty bounding box.
func NewBBox() BBox {
	return BBox{
		Min: Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// BBoxOf returns the bounding box containing all given points.
func BBoxOf(points ...Vec) BBox {
	b := NewBBox()
	for _, p := range points {
		b = b.Include(p)
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b BBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Include returns the box grown to contain p.
func (b BBox) Include(p Vec) BBox {
	return BBox{Min: b.Min.MinParts(p), Max: b.Max.MaxParts(p)}
}

// Union returns the box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return BBox{Min: b.Min.MinParts(o.Min), Max: b.Max.MaxParts(o.Max)}
}

// Inflate returns the box grown by d on every side. Empty boxes stay
// empty.
func (b BBox) Inflate(d float64) BBox {
	if b.IsEmpty() {
		return b
	}
	return BBox{
		Min: Vec{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Vec{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Size returns the width and height of the box. Empty boxes report zero
// size.
func (b BBox) Size() Vec {
	if b.IsEmpty() {
		return Vec{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center of the box.
func (b BBox) Center() Vec {
	return Vec{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether p lies inside the box (inclusive of the
// boundary within [Tol]).
func (b BBox) Contains(p Vec) bool {
	return p.X >= b.Min.X-Tol && p.X <= b.Max.X+Tol &&
		p.Y >= b.Min.Y-Tol && p.Y <= b.Max.Y+Tol
}
