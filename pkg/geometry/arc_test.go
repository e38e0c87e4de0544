package geometry

import (
	"errors"
	"testing"
)

func TestNewArc(t *testing.T) {
	a := NewArc(V(0, 0), V(1, 0), 90)

	if got := a.Radius(); !almostEqual(got, 1) {
		t.Errorf("Radius() = %v, want 1", got)
	}
	if got := a.End(); !vecClose(got, V(0, -1)) {
		t.Errorf("End() = %v, want (0,-1)", got)
	}
	if got := a.Mid(); !vecClose(got, Polar(1, 45)) {
		t.Errorf("Mid() = %v, want %v", got, Polar(1, 45))
	}
}

func TestArcThreePoints(t *testing.T) {
	tests := []struct {
		name            string
		start, mid, end Vec
		wantCenter      Vec
		wantSweep       float64
	}{
		{
			name:  "upper half counterclockwise",
			start: V(1, 0), mid: V(0, -1), end: V(-1, 0),
			wantCenter: V(0, 0), wantSweep: 180,
		},
		{
			name:  "lower half clockwise",
			start: V(1, 0), mid: V(0, 1), end: V(-1, 0),
			wantCenter: V(0, 0), wantSweep: -180,
		},
		{
			name:  "quarter",
			start: V(2, 0), mid: Polar(2, 45), end: V(0, -2),
			wantCenter: V(0, 0), wantSweep: 90,
		},
		{
			name:  "offset center",
			start: V(2, 1), mid: V(1, 0), end: V(0, 1),
			wantCenter: V(1, 1), wantSweep: 180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ArcThreePoints(tt.start, tt.mid, tt.end)
			if err != nil {
				t.Fatalf("ArcThreePoints() error = %v", err)
			}
			if !vecClose(a.Center, tt.wantCenter) {
				t.Errorf("Center = %v, want %v", a.Center, tt.wantCenter)
			}
			if !almostEqual(float64(a.Angle), tt.wantSweep) {
				t.Errorf("Angle = %v, want %v", a.Angle, tt.wantSweep)
			}
			if got := a.End(); !vecClose(got, tt.end) {
				t.Errorf("End() = %v, want %v", got, tt.end)
			}
			if got := a.Mid(); !vecClose(got, tt.mid) {
				t.Errorf("Mid() = %v, want %v", got, tt.mid)
			}
		})
	}

	t.Run("collinear", func(t *testing.T) {
		if _, err := ArcThreePoints(V(0, 0), V(1, 0), V(2, 0)); !errors.Is(err, ErrDegenerate) {
			t.Errorf("error = %v, want ErrDegenerate", err)
		}
	})
}

func TestArcBBox(t *testing.T) {
	tests := []struct {
		name             string
		arc              Arc
		wantMin, wantMax Vec
	}{
		{
			name: "quarter up",
			arc:  NewArc(V(0, 0), V(1, 0), 90),
			wantMin: V(0, -1), wantMax: V(1, 0),
		},
		{
			name: "upper half",
			arc:  NewArc(V(0, 0), V(1, 0), 180),
			wantMin: V(-1, -1), wantMax: V(1, 0),
		},
		{
			name: "full sweep",
			arc:  NewArc(V(0, 0), V(2, 0), 360),
			wantMin: V(-2, -2), wantMax: V(2, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.arc.BBox()
			if !vecClose(b.Min, tt.wantMin) || !vecClose(b.Max, tt.wantMax) {
				t.Errorf("BBox() = %v..%v, want %v..%v", b.Min, b.Max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestArcTransforms(t *testing.T) {
	a := NewArc(V(1, 1), V(2, 1), 90)

	moved := a.Translate(V(1, -1)).(Arc)
	if !vecClose(moved.Center, V(2, 0)) || !vecClose(moved.Start, V(3, 0)) {
		t.Errorf("Translate() = center %v start %v", moved.Center, moved.Start)
	}

	rot := a.Rotate(90, V(1, 1)).(Arc)
	if !vecClose(rot.Start, V(1, 0)) {
		t.Errorf("Rotate() start = %v, want (1,0)", rot.Start)
	}
	if got := rot.Angle; !almostEqual(float64(got), 90) {
		t.Errorf("Rotate() must keep sweep, got %v", got)
	}
}
