package geometry

// Circle is a full circle with center and radius.
type Circle struct {
	Center Vec
	Radius float64
}

// Translate returns the circle moved by d.
func (c Circle) Translate(d Vec) Shape {
	return Circle{Center: c.Center.Add(d), Radius: c.Radius}
}

// Rotate returns the circle rotated about the given point.
func (c Circle) Rotate(angleDeg float64, about Vec) Shape {
	return Circle{Center: c.Center.Rotate(angleDeg, about), Radius: c.Radius}
}

// BBox returns the bounding box of the circle.
func (c Circle) BBox() BBox {
	return BBox{
		Min: Vec{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
		Max: Vec{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
	}
}

// Contains reports whether p lies strictly inside the circle.
func (c Circle) Contains(p Vec) bool {
	return c.Center.Distance(p) < c.Radius-Tol
}
