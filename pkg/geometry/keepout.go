package geometry

// Keepout removes the portions of s that fall inside the closed region
// and returns the surviving fragments. A shape entirely inside the
// region vanishes (empty result); a shape the region never touches is
// returned whole. Returns [ErrNotClosed] if region does not enclose an
// area.
func Keepout(s, region Shape) ([]Shape, error) {
	if !Closed(region) {
		return nil, ErrNotClosed
	}

	var out []Shape
	for _, frag := range Cut(s, region) {
		if !regionContains(region, representative(frag)) {
			out = append(out, frag)
		}
	}
	return out, nil
}

// KeepoutAll applies [Keepout] for each region in turn, feeding the
// survivors of one region into the next.
func KeepoutAll(s Shape, regions ...Shape) ([]Shape, error) {
	shapes := []Shape{s}
	for _, region := range regions {
		var next []Shape
		for _, sh := range shapes {
			kept, err := Keepout(sh, region)
			if err != nil {
				return nil, err
			}
			next = append(next, kept...)
		}
		shapes = next
	}
	return shapes, nil
}

// regionContains reports whether p lies inside a closed region.
func regionContains(region Shape, p Vec) bool {
	switch t := region.(type) {
	case Circle:
		return t.Contains(p)
	case Rect:
		return t.Contains(p)
	case Polygon:
		return t.Contains(p)
	case CompoundPolygon:
		return t.Contains(p)
	}
	return false
}

// representative returns a point that classifies the whole fragment as
// inside or outside a region. Fragments come out of [Cut], so they do
// not straddle a region boundary.
func representative(s Shape) Vec {
	switch t := s.(type) {
	case Line:
		return t.mid()
	case Arc:
		return t.Mid()
	case Circle:
		return Vec{X: t.Center.X + t.Radius, Y: t.Center.Y}
	case Rect:
		return t.Min
	case Polygon:
		if len(t.Points) > 0 {
			return t.Points[0]
		}
	case CompoundPolygon:
		if len(t.Outlines) > 0 && len(t.Outlines[0].Points) > 0 {
			return t.Outlines[0].Points[0]
		}
	}
	return Vec{}
}
