package geometry

import "math"

// Arc is a circular arc described by its center, its starting point and
// a sweep angle in degrees. Positive sweeps turn counterclockwise on
// screen.
type Arc struct {
	Center Vec
	Start  Vec
	Angle  Angle
}

// NewArc constructs an arc from center, start point and sweep angle.
// Sweeps with a magnitude of 360 degrees or more describe a full
// circle; use [Circle] for those instead where possible.
func NewArc(center, start Vec, sweepDeg float64) Arc {
	return Arc{Center: center, Start: start, Angle: Angle(sweepDeg)}
}

// ArcThreePoints constructs the arc that starts at start, passes
// through mid and ends at end. Returns [ErrDegenerate] if the three
// points are collinear or not distinct.
func ArcThreePoints(start, mid, end Vec) (Arc, error) {
	center, ok := circumcenter(start, mid, end)
	if !ok {
		return Arc{}, ErrDegenerate
	}

	a0 := start.Sub(center).ScreenAngle()
	aMid := norm360(mid.Sub(center).ScreenAngle() - a0)
	aEnd := norm360(end.Sub(center).ScreenAngle() - a0)
	if aEnd < Tol {
		aEnd = 360
	}

	sweep := aEnd
	if aMid > aEnd {
		// The counterclockwise path misses mid, so the arc runs clockwise.
		sweep = aEnd - 360
	}
	return Arc{Center: center, Start: start, Angle: Angle(sweep)}, nil
}

// Translate returns the arc moved by d.
func (a Arc) Translate(d Vec) Shape {
	return Arc{Center: a.Center.Add(d), Start: a.Start.Add(d), Angle: a.Angle}
}

// Rotate returns the arc rotated about the given point.
func (a Arc) Rotate(angleDeg float64, about Vec) Shape {
	return Arc{
		Center: a.Center.Rotate(angleDeg, about),
		Start:  a.Start.Rotate(angleDeg, about),
		Angle:  a.Angle,
	}
}

// Radius returns the arc radius.
func (a Arc) Radius() float64 {
	return a.Center.Distance(a.Start)
}

// End returns the arc's end point.
func (a Arc) End() Vec {
	return a.PointAt(1)
}

// Mid returns the point halfway along the sweep. Together with Start
// and End this is the three-point form used in board files.
func (a Arc) Mid() Vec {
	return a.PointAt(0.5)
}

// PointAt returns the point at parameter t along the sweep, where t=0
// is Start and t=1 is End.
func (a Arc) PointAt(t float64) Vec {
	return a.Start.Rotate(float64(a.Angle)*t, a.Center)
}

// IsFullCircle reports whether the sweep covers the whole circle.
func (a Arc) IsFullCircle() bool {
	return math.Abs(float64(a.Angle)) >= 360-Tol
}

// BBox returns the bounding box of the arc, accounting for axis
// extremes inside the sweep.
func (a Arc) BBox() BBox {
	b := BBoxOf(a.Start, a.End())
	r := a.Radius()
	// Check the four axis-aligned extreme points of the carrier circle.
	for _, extreme := range []Vec{
		{X: a.Center.X + r, Y: a.Center.Y},
		{X: a.Center.X - r, Y: a.Center.Y},
		{X: a.Center.X, Y: a.Center.Y + r},
		{X: a.Center.X, Y: a.Center.Y - r},
	} {
		if _, ok := a.paramOf(extreme); ok {
			b = b.Include(extreme)
		}
	}
	return b
}

// paramOf returns the sweep parameter t in [0,1] of a point assumed to
// lie on the carrier circle, and whether the point falls inside the
// sweep.
func (a Arc) paramOf(p Vec) (float64, bool) {
	sweep := float64(a.Angle)
	if math.Abs(sweep) < Tol {
		return 0, p.IsCloseTo(a.Start)
	}

	a0 := a.Start.Sub(a.Center).ScreenAngle()
	delta := norm360(p.Sub(a.Center).ScreenAngle() - a0)

	const angTol = 1e-6
	if sweep > 0 {
		if delta <= sweep+angTol {
			return math.Min(delta/sweep, 1), true
		}
		return 0, false
	}
	// Clockwise sweep: the covered range is [360+sweep, 360) plus 0.
	if delta < angTol {
		return 0, true
	}
	if delta >= 360+sweep-angTol {
		return math.Min((360-delta)/-sweep, 1), true
	}
	return 0, false
}

// circumcenter returns the center of the circle through three points.
func circumcenter(p1, p2, p3 Vec) (Vec, bool) {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if math.Abs(d) < Tol {
		return Vec{}, false
	}
	s1 := p1.X*p1.X + p1.Y*p1.Y
	s2 := p2.X*p2.X + p2.Y*p2.Y
	s3 := p3.X*p3.X + p3.Y*p3.Y
	return Vec{
		X: (s1*(p2.Y-p3.Y) + s2*(p3.Y-p1.Y) + s3*(p1.Y-p2.Y)) / d,
		Y: (s1*(p3.X-p2.X) + s2*(p1.X-p3.X) + s3*(p2.X-p1.X)) / d,
	}, true
}

// norm360 normalizes an angle in degrees to [0, 360).
func norm360(a float64) float64 {
	n := math.Mod(a, 360)
	if n < 0 {
		n += 360
	}
	return n
}
