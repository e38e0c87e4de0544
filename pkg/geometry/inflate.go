package geometry

// Inflate grows a closed shape outward by d on every side (negative d
// shrinks). Circles grow by radius, rectangles by side, polygons by a
// mitered vertex offset. Returns [ErrCannotInflate] for open shapes and
// [ErrDegenerate] if the result would collapse.
func Inflate(s Shape, d float64) (Shape, error) {
	switch t := s.(type) {
	case Circle:
		r := t.Radius + d
		if r < Tol {
			return nil, ErrDegenerate
		}
		return Circle{Center: t.Center, Radius: r}, nil

	case Rect:
		min := Vec{X: t.Min.X - d, Y: t.Min.Y - d}
		max := Vec{X: t.Max.X + d, Y: t.Max.Y + d}
		if max.X-min.X < Tol || max.Y-min.Y < Tol {
			return nil, ErrDegenerate
		}
		return Rect{Min: min, Max: max}, nil

	case Polygon:
		return inflatePolygon(t, d)

	case CompoundPolygon:
		outlines := make([]Polygon, len(t.Outlines))
		for i, o := range t.Outlines {
			inflated, err := inflatePolygon(o, d)
			if err != nil {
				return nil, err
			}
			outlines[i] = inflated.(Polygon)
		}
		return CompoundPolygon{Outlines: outlines}, nil
	}
	return nil, ErrCannotInflate
}

func inflatePolygon(p Polygon, d float64) (Shape, error) {
	pts := dedupeConsecutive(p.Points)
	n := len(pts)
	if n < 3 {
		return nil, ErrDegenerate
	}

	// Winding direction decides which side of each edge is outward.
	ccw := Polygon{Points: pts}.SignedArea() > 0

	normal := func(a, b Vec) Vec {
		u := b.Sub(a).Unit()
		if ccw {
			return Vec{X: u.Y, Y: -u.X}
		}
		return Vec{X: -u.Y, Y: u.X}
	}

	out := make([]Vec, n)
	for i := 0; i < n; i++ {
		prev := pts[(i+n-1)%n]
		next := pts[(i+1)%n]
		n1 := normal(prev, pts[i])
		n2 := normal(pts[i], next)

		m := n1.Add(n2)
		mSq := m.Dot(m)
		if mSq < 1e-6 {
			// A 180 degree spike has no well-defined miter.
			return nil, ErrDegenerate
		}
		out[i] = pts[i].Add(m.Scale(2 * d / mSq))
	}
	return Polygon{Points: out}, nil
}

func dedupeConsecutive(pts []Vec) []Vec {
	var out []Vec
	for _, p := range pts {
		if len(out) > 0 && p.IsCloseTo(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].IsCloseTo(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}
