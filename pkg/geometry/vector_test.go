package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func vecClose(a, b Vec) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestVecRotate(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec
		angle float64
		about Vec
		want  Vec
	}{
		{"90 about origin", V(1, 0), 90, Vec{}, V(0, -1)},
		{"180 about origin", V(1, 0), 180, Vec{}, V(-1, 0)},
		{"-90 about origin", V(1, 0), -90, Vec{}, V(0, 1)},
		{"about point", V(2, 0), 90, V(1, 0), V(1, -1)},
		{"zero angle", V(3, 4), 0, Vec{}, V(3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Rotate(tt.angle, tt.about)
			if !vecClose(got, tt.want) {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.angle, tt.about, got, tt.want)
			}
		})
	}
}

func TestPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		angle  float64
		want   Vec
	}{
		{"east", 2, 0, V(2, 0)},
		{"up on screen", 2, 90, V(0, -2)},
		{"west", 2, 180, V(-2, 0)},
		{"down on screen", 2, 270, V(0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polar(tt.radius, tt.angle)
			if !vecClose(got, tt.want) {
				t.Errorf("Polar(%v, %v) = %v, want %v", tt.radius, tt.angle, got, tt.want)
			}
		})
	}
}

func TestScreenAngle(t *testing.T) {
	// ScreenAngle must invert Polar.
	for _, angle := range []float64{0, 45, 90, 135, 180, 225, 315} {
		got := Polar(1, angle).ScreenAngle()
		if !almostEqual(got, angle) {
			t.Errorf("Polar(1, %v).ScreenAngle() = %v, want %v", angle, got, angle)
		}
	}
}

func TestVecOps(t *testing.T) {
	a, b := V(3, 4), V(1, -2)

	if got := a.Add(b); !vecClose(got, V(4, 2)) {
		t.Errorf("Add = %v, want (4,2)", got)
	}
	if got := a.Sub(b); !vecClose(got, V(2, 6)) {
		t.Errorf("Sub = %v, want (2,6)", got)
	}
	if got := a.Norm(); !almostEqual(got, 5) {
		t.Errorf("Norm = %v, want 5", got)
	}
	if got := a.Dot(b); !almostEqual(got, -5) {
		t.Errorf("Dot = %v, want -5", got)
	}
	if got := a.Cross(b); !almostEqual(got, -10) {
		t.Errorf("Cross = %v, want -10", got)
	}
	if got := a.Unit().Norm(); !almostEqual(got, 1) {
		t.Errorf("Unit().Norm() = %v, want 1", got)
	}
}

func TestAngleNormalize(t *testing.T) {
	tests := []struct {
		in       Angle
		want     Angle
		wantHalf Angle
	}{
		{0, 0, 0},
		{360, 0, 0},
		{-90, 270, -90},
		{450, 90, 90},
		{180, 180, 180},
		{-180, 180, 180},
		{270, 270, -90},
	}

	for _, tt := range tests {
		if got := tt.in.Normalize(); !almostEqual(float64(got), float64(tt.want)) {
			t.Errorf("Angle(%v).Normalize() = %v, want %v", tt.in, got, tt.want)
		}
		if got := tt.in.NormalizeHalf(); !almostEqual(float64(got), float64(tt.wantHalf)) {
			t.Errorf("Angle(%v).NormalizeHalf() = %v, want %v", tt.in, got, tt.wantHalf)
		}
	}
}

func TestBBox(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		b := NewBBox()
		if !b.IsEmpty() {
			t.Error("NewBBox().IsEmpty() = false, want true")
		}
		if got := b.Size(); !vecClose(got, Vec{}) {
			t.Errorf("empty Size() = %v, want zero", got)
		}
	})

	t.Run("include and union", func(t *testing.T) {
		b := NewBBox().Include(V(1, 2)).Include(V(-1, 5))
		if !vecClose(b.Min, V(-1, 2)) || !vecClose(b.Max, V(1, 5)) {
			t.Errorf("box = %v..%v, want (-1,2)..(1,5)", b.Min, b.Max)
		}

		u := b.Union(BBoxOf(V(0, 0), V(2, 1)))
		if !vecClose(u.Min, V(-1, 0)) || !vecClose(u.Max, V(2, 5)) {
			t.Errorf("union = %v..%v, want (-1,0)..(2,5)", u.Min, u.Max)
		}

		if got := NewBBox().Union(b); got != b {
			t.Errorf("empty.Union(b) = %v, want %v", got, b)
		}
	})

	t.Run("inflate", func(t *testing.T) {
		b := BBoxOf(V(0, 0), V(2, 2)).Inflate(0.5)
		if !vecClose(b.Min, V(-0.5, -0.5)) || !vecClose(b.Max, V(2.5, 2.5)) {
			t.Errorf("inflated = %v..%v", b.Min, b.Max)
		}
	})
}
