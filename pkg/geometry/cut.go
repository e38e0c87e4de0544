package geometry

import (
	"math"
	"sort"
)

// Cut splits s at its intersections with the outline of cutter and
// returns the resulting fragments. Open shapes (lines, arcs) split into
// smaller pieces of the same kind. Closed shapes split into their
// boundary pieces; a closed shape that the cutter never touches is
// returned whole.
func Cut(s, cutter Shape) []Shape {
	switch t := s.(type) {
	case Line:
		return cutLine(t, cutter)
	case Arc:
		return cutArc(t, cutter)
	case Circle:
		return cutCircle(t, cutter)
	case Rect, Polygon, CompoundPolygon:
		return cutBoundary(s, cutter)
	}
	return []Shape{s}
}

func cutLine(l Line, cutter Shape) []Shape {
	pts := intersections(l, cutter)
	if len(pts) == 0 {
		return []Shape{l}
	}

	ts := []float64{0, 1}
	for _, p := range pts {
		ts = append(ts, clamp01(l.paramOf(p)))
	}
	sort.Float64s(ts)

	minT := Tol / math.Max(l.Length(), Tol)
	var out []Shape
	for i := 0; i+1 < len(ts); i++ {
		if ts[i+1]-ts[i] < minT {
			continue
		}
		out = append(out, Line{Start: l.PointAt(ts[i]), End: l.PointAt(ts[i+1])})
	}
	return out
}

func cutArc(a Arc, cutter Shape) []Shape {
	pts := intersections(a, cutter)

	fs := []float64{0, 1}
	for _, p := range pts {
		if f, ok := a.paramOf(p); ok {
			fs = append(fs, f)
		}
	}
	if len(fs) == 2 {
		return []Shape{a}
	}
	sort.Float64s(fs)

	sweep := float64(a.Angle)
	minF := Tol / math.Max(math.Abs(sweep)*a.Radius()*math.Pi/180, Tol)
	var out []Shape
	for i := 0; i+1 < len(fs); i++ {
		df := fs[i+1] - fs[i]
		if df < minF {
			continue
		}
		out = append(out, Arc{Center: a.Center, Start: a.PointAt(fs[i]), Angle: Angle(df * sweep)})
	}
	return out
}

func cutCircle(c Circle, cutter Shape) []Shape {
	pts := intersections(c, cutter)
	if len(pts) < 2 {
		// A single touch point cannot open the circle.
		return []Shape{c}
	}

	angles := make([]float64, 0, len(pts))
	for _, p := range pts {
		angles = append(angles, p.Sub(c.Center).ScreenAngle())
	}
	sort.Float64s(angles)
	angles = dedupeAngles(angles)
	if len(angles) < 2 {
		return []Shape{c}
	}

	var out []Shape
	for i := range angles {
		a0 := angles[i]
		a1 := angles[(i+1)%len(angles)]
		sweep := norm360(a1 - a0)
		if sweep < Tol {
			sweep = 360
		}
		start := c.Center.Add(Polar(c.Radius, a0))
		out = append(out, Arc{Center: c.Center, Start: start, Angle: Angle(sweep)})
	}
	return out
}

func cutBoundary(s, cutter Shape) []Shape {
	segs := boundarySegments(s)
	var out []Shape
	changed := false
	for _, seg := range segs {
		frags := cutLine(seg, cutter)
		if len(frags) != 1 {
			changed = true
		}
		out = append(out, frags...)
	}
	if !changed {
		return []Shape{s}
	}
	return out
}

// intersections returns the points where the outline of cutter crosses
// s. s must be an open curve or a circle; closed rectilinear shapes are
// decomposed before reaching here.
func intersections(s, cutter Shape) []Vec {
	var pts []Vec
	switch c := cutter.(type) {
	case Line:
		pts = curveLine(s, c)
	case Arc:
		pts = curveCircle(s, Circle{Center: c.Center, Radius: c.Radius()})
		pts = filterOnArc(pts, c)
	case Circle:
		pts = curveCircle(s, c)
	case Rect, Polygon, CompoundPolygon:
		for _, seg := range boundarySegments(cutter) {
			pts = append(pts, curveLine(s, seg)...)
		}
	}
	return dedupePoints(pts)
}

// curveLine intersects an open curve or circle with a segment.
func curveLine(s Shape, l Line) []Vec {
	switch t := s.(type) {
	case Line:
		if p, ok := segmentIntersect(t, l); ok {
			return []Vec{p}
		}
	case Arc:
		pts := lineCircle(l, Circle{Center: t.Center, Radius: t.Radius()})
		return filterOnArc(pts, t)
	case Circle:
		return lineCircle(l, t)
	}
	return nil
}

// curveCircle intersects an open curve or circle with a full circle.
func curveCircle(s Shape, c Circle) []Vec {
	switch t := s.(type) {
	case Line:
		return lineCircle(t, c)
	case Arc:
		pts := circleCircle(Circle{Center: t.Center, Radius: t.Radius()}, c)
		return filterOnArc(pts, t)
	case Circle:
		return circleCircle(t, c)
	}
	return nil
}

func filterOnArc(pts []Vec, a Arc) []Vec {
	var out []Vec
	for _, p := range pts {
		if _, ok := a.paramOf(p); ok {
			out = append(out, p)
		}
	}
	return out
}

// segmentIntersect returns the intersection point of two segments, if
// any. Collinear overlapping segments report no intersection.
func segmentIntersect(a, b Line) (Vec, bool) {
	r := a.End.Sub(a.Start)
	s := b.End.Sub(b.Start)
	denom := r.Cross(s)
	if math.Abs(denom) < Tol*Tol {
		return Vec{}, false
	}
	d := b.Start.Sub(a.Start)
	t := d.Cross(s) / denom
	u := d.Cross(r) / denom
	const eps = 1e-9
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return Vec{}, false
	}
	return a.PointAt(clamp01(t)), true
}

// lineCircle returns the points where a segment crosses a circle.
func lineCircle(l Line, c Circle) []Vec {
	d := l.End.Sub(l.Start)
	f := l.Start.Sub(c.Center)

	qa := d.Dot(d)
	if qa < Tol*Tol {
		return nil
	}
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - c.Radius*c.Radius

	disc := qb*qb - 4*qa*qc
	if disc < -Tol {
		return nil
	}
	if disc < 0 {
		disc = 0
	}
	sqrtDisc := math.Sqrt(disc)

	var pts []Vec
	for _, t := range []float64{(-qb - sqrtDisc) / (2 * qa), (-qb + sqrtDisc) / (2 * qa)} {
		const eps = 1e-9
		if t < -eps || t > 1+eps {
			continue
		}
		pts = append(pts, l.PointAt(clamp01(t)))
	}
	return dedupePoints(pts)
}

// circleCircle returns the points where two circles cross.
func circleCircle(c1, c2 Circle) []Vec {
	d := c1.Center.Distance(c2.Center)
	if d < Tol || d > c1.Radius+c2.Radius+Tol || d < math.Abs(c1.Radius-c2.Radius)-Tol {
		return nil
	}

	a := (c1.Radius*c1.Radius - c2.Radius*c2.Radius + d*d) / (2 * d)
	hSq := c1.Radius*c1.Radius - a*a
	if hSq < 0 {
		hSq = 0
	}
	h := math.Sqrt(hSq)

	u := c2.Center.Sub(c1.Center).Scale(1 / d)
	base := c1.Center.Add(u.Scale(a))
	perp := Vec{X: -u.Y, Y: u.X}

	if h < Tol {
		return []Vec{base}
	}
	return []Vec{base.Add(perp.Scale(h)), base.Sub(perp.Scale(h))}
}

func dedupePoints(pts []Vec) []Vec {
	var out []Vec
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.IsCloseTo(q) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

func dedupeAngles(angles []float64) []float64 {
	const angTol = 1e-6
	var out []float64
	for _, a := range angles {
		if len(out) > 0 && a-out[len(out)-1] < angTol {
			continue
		}
		out = append(out, a)
	}
	// First and last can collide across the 0/360 seam.
	if len(out) > 1 && 360-out[len(out)-1]+out[0] < angTol {
		out = out[:len(out)-1]
	}
	return out
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
