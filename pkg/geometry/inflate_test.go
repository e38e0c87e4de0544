package geometry

import (
	"errors"
	"testing"
)

func TestInflateCircle(t *testing.T) {
	got, err := Inflate(Circle{Center: V(1, 1), Radius: 2}, 0.5)
	if err != nil {
		t.Fatalf("Inflate() error = %v", err)
	}
	c := got.(Circle)
	if !almostEqual(c.Radius, 2.5) {
		t.Errorf("Radius = %v, want 2.5", c.Radius)
	}

	if _, err := Inflate(Circle{Center: V(0, 0), Radius: 1}, -1); !errors.Is(err, ErrDegenerate) {
		t.Errorf("collapsing circle: error = %v, want ErrDegenerate", err)
	}
}

func TestInflateRect(t *testing.T) {
	got, err := Inflate(RectAt(V(0, 0), V(2, 2)), 0.5)
	if err != nil {
		t.Fatalf("Inflate() error = %v", err)
	}
	r := got.(Rect)
	if !vecClose(r.Min, V(-1.5, -1.5)) || !vecClose(r.Max, V(1.5, 1.5)) {
		t.Errorf("inflated = %v..%v, want (-1.5,-1.5)..(1.5,1.5)", r.Min, r.Max)
	}

	shrunk, err := Inflate(RectAt(V(0, 0), V(4, 4)), -1)
	if err != nil {
		t.Fatalf("Inflate(-1) error = %v", err)
	}
	s := shrunk.(Rect)
	if !vecClose(s.Min, V(-1, -1)) || !vecClose(s.Max, V(1, 1)) {
		t.Errorf("deflated = %v..%v, want (-1,-1)..(1,1)", s.Min, s.Max)
	}

	if _, err := Inflate(RectAt(V(0, 0), V(2, 2)), -2); !errors.Is(err, ErrDegenerate) {
		t.Errorf("collapsing rect: error = %v, want ErrDegenerate", err)
	}
}

func TestInflatePolygon(t *testing.T) {
	tests := []struct {
		name string
		pts  []Vec
	}{
		{
			name: "clockwise square",
			pts:  []Vec{V(0, 0), V(2, 0), V(2, 2), V(0, 2)},
		},
		{
			name: "counterclockwise square",
			pts:  []Vec{V(0, 2), V(2, 2), V(2, 0), V(0, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inflate(Polygon{Points: tt.pts}, 0.5)
			if err != nil {
				t.Fatalf("Inflate() error = %v", err)
			}
			p := got.(Polygon)
			b := p.BBox()
			if !vecClose(b.Min, V(-0.5, -0.5)) || !vecClose(b.Max, V(2.5, 2.5)) {
				t.Errorf("BBox() = %v..%v, want (-0.5,-0.5)..(2.5,2.5)", b.Min, b.Max)
			}
			// Winding must be preserved.
			if (p.SignedArea() > 0) != (Polygon{Points: tt.pts}.SignedArea() > 0) {
				t.Error("Inflate() flipped winding")
			}
		})
	}
}

func TestInflatePolygonWithClosingDuplicate(t *testing.T) {
	p := Polygon{Points: []Vec{V(0, 0), V(2, 0), V(2, 2), V(0, 2), V(0, 0)}}
	got, err := Inflate(p, 0.25)
	if err != nil {
		t.Fatalf("Inflate() error = %v", err)
	}
	if n := len(got.(Polygon).Points); n != 4 {
		t.Errorf("Points = %d, want 4 after dropping duplicate closing point", n)
	}
}

func TestInflateOpenShape(t *testing.T) {
	_, err := Inflate(Line{Start: V(0, 0), End: V(1, 0)}, 0.5)
	if !errors.Is(err, ErrCannotInflate) {
		t.Errorf("error = %v, want ErrCannotInflate", err)
	}
}

func TestInflateCompoundPolygon(t *testing.T) {
	cp := CompoundPolygon{Outlines: []Polygon{
		{Points: []Vec{V(0, 0), V(1, 0), V(1, 1), V(0, 1)}},
		{Points: []Vec{V(3, 0), V(4, 0), V(4, 1), V(3, 1)}},
	}}

	got, err := Inflate(cp, 0.1)
	if err != nil {
		t.Fatalf("Inflate() error = %v", err)
	}
	out := got.(CompoundPolygon)
	if len(out.Outlines) != 2 {
		t.Fatalf("Outlines = %d, want 2", len(out.Outlines))
	}
	b := out.Outlines[0].BBox()
	if !vecClose(b.Min, V(-0.1, -0.1)) || !vecClose(b.Max, V(1.1, 1.1)) {
		t.Errorf("first outline BBox = %v..%v", b.Min, b.Max)
	}
}
