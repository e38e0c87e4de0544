package geometry

import "math"

// Tol is the absolute tolerance, in millimetres, used for geometric
// comparisons throughout the package.
const Tol = 1e-7

// Vec is a 2D point or displacement in millimetres. The Y axis points
// down, matching the board file coordinate system.
type Vec struct {
	X float64
	Y float64
}

// V is shorthand for constructing a vector.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Polar constructs the vector at the given radius and angle in degrees.
// An angle of 0 points along +X; positive angles turn counterclockwise
// on screen.
func Polar(radius, angleDeg float64) Vec {
	rad := angleDeg * math.Pi / 180
	return Vec{X: radius * math.Cos(rad), Y: -radius * math.Sin(rad)}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v scaled by f.
func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar cross product of v and o.
func (v Vec) Cross(o Vec) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Norm returns the length of v.
func (v Vec) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between v and o.
func (v Vec) Distance(o Vec) float64 {
	return v.Sub(o).Norm()
}

// Unit returns v scaled to length 1. The zero vector is returned
// unchanged.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n < Tol {
		return v
	}
	return v.Scale(1 / n)
}

// IsCloseTo reports whether v and o are within [Tol] of each other.
func (v Vec) IsCloseTo(o Vec) bool {
	return v.Distance(o) < Tol
}

// Rotate returns v rotated by angleDeg degrees about the given point.
// Positive angles rotate counterclockwise on screen (the Y axis points
// down).
func (v Vec) Rotate(angleDeg float64, about Vec) Vec {
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	d := v.Sub(about)
	return Vec{
		X: about.X + d.X*cos + d.Y*sin,
		Y: about.Y - d.X*sin + d.Y*cos,
	}
}

// ScreenAngle returns the angle of v in degrees, measured
// counterclockwise on screen from the +X axis, in [0, 360).
func (v Vec) ScreenAngle() float64 {
	a := math.Atan2(-v.Y, v.X) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// MinParts returns the component-wise minimum of v and o.
func (v Vec) MinParts(o Vec) Vec {
	return Vec{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y)}
}

// MaxParts returns the component-wise maximum of v and o.
func (v Vec) MaxParts(o Vec) Vec {
	return Vec{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y)}
}

// Angle is a rotation in degrees.
type Angle float64

// Normalize returns the angle normalized to [0, 360).
func (a Angle) Normalize() Angle {
	n := math.Mod(float64(a), 360)
	if n < 0 {
		n += 360
	}
	return Angle(n)
}

// NormalizeHalf returns the angle normalized to (-180, 180].
func (a Angle) NormalizeHalf() Angle {
	n := float64(a.Normalize())
	if n > 180 {
		n -= 360
	}
	return Angle(n)
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / 180
}

// Degrees returns the angle in degrees as a plain float64.
func (a Angle) Degrees() float64 {
	return float64(a)
}

// Sin returns the sine of the angle.
func (a Angle) Sin() float64 {
	return math.Sin(a.Radians())
}

// Cos returns the cosine of the angle.
func (a Angle) Cos() float64 {
	return math.Cos(a.Radians())
}
