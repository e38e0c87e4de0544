package geometry

import "testing"

func TestLine(t *testing.T) {
	l := Line{Start: V(0, 0), End: V(3, 4)}

	if got := l.Length(); !almostEqual(got, 5) {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := l.PointAt(0.5); !vecClose(got, V(1.5, 2)) {
		t.Errorf("PointAt(0.5) = %v, want (1.5,2)", got)
	}

	moved := l.Translate(V(1, 1)).(Line)
	if !vecClose(moved.Start, V(1, 1)) || !vecClose(moved.End, V(4, 5)) {
		t.Errorf("Translate() = %v..%v", moved.Start, moved.End)
	}

	b := l.BBox()
	if !vecClose(b.Min, V(0, 0)) || !vecClose(b.Max, V(3, 4)) {
		t.Errorf("BBox() = %v..%v", b.Min, b.Max)
	}
}

func TestRect(t *testing.T) {
	r := NewRect(V(3, 4), V(1, 2))
	if !vecClose(r.Min, V(1, 2)) || !vecClose(r.Max, V(3, 4)) {
		t.Errorf("NewRect must normalize corners, got %v..%v", r.Min, r.Max)
	}

	c := RectAt(V(0, 0), V(4, 2))
	if !vecClose(c.Min, V(-2, -1)) || !vecClose(c.Max, V(2, 1)) {
		t.Errorf("RectAt = %v..%v", c.Min, c.Max)
	}
	if !vecClose(c.Center(), V(0, 0)) {
		t.Errorf("Center() = %v", c.Center())
	}

	if !c.Contains(V(0, 0)) {
		t.Error("Contains(center) = false, want true")
	}
	if c.Contains(V(2, 1)) {
		t.Error("Contains(corner) = true, want false")
	}
	if c.Contains(V(3, 0)) {
		t.Error("Contains(outside) = true, want false")
	}
}

func TestRectRotate(t *testing.T) {
	r := RectAt(V(0, 0), V(2, 2))

	t.Run("right angle stays rect", func(t *testing.T) {
		got, ok := r.Rotate(90, V(0, 0)).(Rect)
		if !ok {
			t.Fatal("Rotate(90) did not return a Rect")
		}
		if !vecClose(got.Min, V(-1, -1)) || !vecClose(got.Max, V(1, 1)) {
			t.Errorf("Rotate(90) = %v..%v", got.Min, got.Max)
		}
	})

	t.Run("diagonal becomes polygon", func(t *testing.T) {
		got, ok := r.Rotate(45, V(0, 0)).(Polygon)
		if !ok {
			t.Fatal("Rotate(45) did not return a Polygon")
		}
		if len(got.Points) != 4 {
			t.Fatalf("Points = %d, want 4", len(got.Points))
		}
		b := got.BBox()
		d := Vec{X: 1, Y: 1}.Norm()
		if !vecClose(b.Min, V(-d, -d)) || !vecClose(b.Max, V(d, d)) {
			t.Errorf("BBox() = %v..%v", b.Min, b.Max)
		}
	})
}

func TestCircleContains(t *testing.T) {
	c := Circle{Center: V(1, 0), Radius: 2}

	if !c.Contains(V(1, 0)) {
		t.Error("Contains(center) = false")
	}
	if !c.Contains(V(2, 0.5)) {
		t.Error("Contains(interior) = false")
	}
	if c.Contains(V(3, 0)) {
		t.Error("Contains(boundary) = true, want false")
	}
	if c.Contains(V(4, 0)) {
		t.Error("Contains(outside) = true")
	}
}

func TestPolygon(t *testing.T) {
	// Clockwise on screen in a y-down frame.
	p := Polygon{Points: []Vec{V(0, 0), V(2, 0), V(2, 2), V(0, 2)}}

	if got := p.SignedArea(); !almostEqual(got, 4) {
		t.Errorf("SignedArea() = %v, want 4", got)
	}
	if got := len(p.Segments()); got != 4 {
		t.Errorf("Segments() = %d, want 4 including closing edge", got)
	}

	tests := []struct {
		pt   Vec
		want bool
	}{
		{V(1, 1), true},
		{V(0.1, 0.1), true},
		{V(3, 1), false},
		{V(-1, 1), false},
		{V(1, 3), false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.pt); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestCompoundPolygon(t *testing.T) {
	cp := CompoundPolygon{Outlines: []Polygon{
		{Points: []Vec{V(0, 0), V(1, 0), V(1, 1), V(0, 1)}},
		{Points: []Vec{V(3, 0), V(4, 0), V(4, 1), V(3, 1)}},
	}}

	if !cp.Contains(V(0.5, 0.5)) || !cp.Contains(V(3.5, 0.5)) {
		t.Error("Contains must check every outline")
	}
	if cp.Contains(V(2, 0.5)) {
		t.Error("Contains(gap) = true, want false")
	}

	b := cp.BBox()
	if !vecClose(b.Min, V(0, 0)) || !vecClose(b.Max, V(4, 1)) {
		t.Errorf("BBox() = %v..%v", b.Min, b.Max)
	}

	got := cp.Rotate(180, V(2, 0.5)).(CompoundPolygon)
	if !vecClose(got.Outlines[0].Points[0], V(4, 1)) {
		t.Errorf("Rotate() first point = %v, want (4,1)", got.Outlines[0].Points[0])
	}
}
