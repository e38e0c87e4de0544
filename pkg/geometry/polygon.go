package geometry

// Polygon is a closed polygon. The outline is implicitly closed from
// the last point back to the first.
type Polygon struct {
	Points []Vec
}

// Translate returns the polygon moved by d.
func (p Polygon) Translate(d Vec) Shape {
	pts := make([]Vec, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Add(d)
	}
	return Polygon{Points: pts}
}

// Rotate returns the polygon rotated about the given point.
func (p Polygon) Rotate(angleDeg float64, about Vec) Shape {
	pts := make([]Vec, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Rotate(angleDeg, about)
	}
	return Polygon{Points: pts}
}

// BBox returns the bounding box of all polygon points.
func (p Polygon) BBox() BBox {
	return BBoxOf(p.Points...)
}

// Segments returns the boundary segments, including the closing
// segment from the last point back to the first.
func (p Polygon) Segments() []Line {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	segs := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		segs = append(segs, Line{Start: p.Points[i], End: p.Points[(i+1)%n]})
	}
	return segs
}

// SignedArea returns the signed area of the polygon. The sign encodes
// winding direction and is used to orient offset normals.
func (p Polygon) SignedArea() float64 {
	n := len(p.Points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Points[i], p.Points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Contains reports whether pt lies inside the polygon, using the
// even-odd rule. Points on the boundary are not reliably classified.
func (p Polygon) Contains(pt Vec) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p.Points[i], p.Points[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			x := pi.X + (pt.Y-pi.Y)*(pj.X-pi.X)/(pj.Y-pi.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// CompoundPolygon is a set of separate closed outlines treated as one
// shape, such as a copper area with multiple islands.
type CompoundPolygon struct {
	Outlines []Polygon
}

// Translate returns the compound polygon moved by d.
func (c CompoundPolygon) Translate(d Vec) Shape {
	outlines := make([]Polygon, len(c.Outlines))
	for i, o := range c.Outlines {
		outlines[i] = o.Translate(d).(Polygon)
	}
	return CompoundPolygon{Outlines: outlines}
}

// Rotate returns the compound polygon rotated about the given point.
func (c CompoundPolygon) Rotate(angleDeg float64, about Vec) Shape {
	outlines := make([]Polygon, len(c.Outlines))
	for i, o := range c.Outlines {
		outlines[i] = o.Rotate(angleDeg, about).(Polygon)
	}
	return CompoundPolygon{Outlines: outlines}
}

// BBox returns the union of all outline bounding boxes.
func (c CompoundPolygon) BBox() BBox {
	b := NewBBox()
	for _, o := range c.Outlines {
		b = b.Union(o.BBox())
	}
	return b
}

// Contains reports whether pt lies inside any outline (even-odd per
// outline).
func (c CompoundPolygon) Contains(pt Vec) bool {
	for _, o := range c.Outlines {
		if o.Contains(pt) {
			return true
		}
	}
	return false
}
