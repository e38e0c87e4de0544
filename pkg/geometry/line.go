package geometry

// Line is a straight segment from Start to End.
type Line struct {
	Start Vec
	End   Vec
}

// Translate returns the line moved by d.
func (l Line) Translate(d Vec) Shape {
	return Line{Start: l.Start.Add(d), End: l.End.Add(d)}
}

// Rotate returns the line rotated about the given point.
func (l Line) Rotate(angleDeg float64, about Vec) Shape {
	return Line{Start: l.Start.Rotate(angleDeg, about), End: l.End.Rotate(angleDeg, about)}
}

// BBox returns the bounding box of the segment.
func (l Line) BBox() BBox {
	return BBoxOf(l.Start, l.End)
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// Direction returns the unit vector from Start to End.
func (l Line) Direction() Vec {
	return l.End.Sub(l.Start).Unit()
}

// PointAt returns the point at parameter t, where t=0 is Start and t=1
// is End.
func (l Line) PointAt(t float64) Vec {
	return l.Start.Add(l.End.Sub(l.Start).Scale(t))
}

// midpoint of the segment.
func (l Line) mid() Vec {
	return l.PointAt(0.5)
}

// paramOf returns the parameter of p projected onto the segment's
// carrier line.
func (l Line) paramOf(p Vec) float64 {
	d := l.End.Sub(l.Start)
	lenSq := d.Dot(d)
	if lenSq < Tol*Tol {
		return 0
	}
	return p.Sub(l.Start).Dot(d) / lenSq
}
