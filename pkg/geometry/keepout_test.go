package geometry

import (
	"errors"
	"testing"
)

func TestKeepoutLine(t *testing.T) {
	line := Line{Start: V(-10, 0), End: V(10, 0)}
	region := Circle{Center: V(0, 0), Radius: 2}

	parts, err := Keepout(line, region)
	if err != nil {
		t.Fatalf("Keepout() error = %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("Keepout() = %d fragments, want 2", len(parts))
	}

	left := parts[0].(Line)
	right := parts[1].(Line)
	if !vecClose(left.End, V(-2, 0)) {
		t.Errorf("left fragment ends at %v, want (-2,0)", left.End)
	}
	if !vecClose(right.Start, V(2, 0)) {
		t.Errorf("right fragment starts at %v, want (2,0)", right.Start)
	}
}

func TestKeepoutSwallowsLine(t *testing.T) {
	line := Line{Start: V(-1, 0), End: V(1, 0)}
	parts, err := Keepout(line, Circle{Center: V(0, 0), Radius: 5})
	if err != nil {
		t.Fatalf("Keepout() error = %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("Keepout() = %d fragments, want 0", len(parts))
	}
}

func TestKeepoutUntouched(t *testing.T) {
	line := Line{Start: V(10, 0), End: V(20, 0)}
	parts, err := Keepout(line, Circle{Center: V(0, 0), Radius: 2})
	if err != nil {
		t.Fatalf("Keepout() error = %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("Keepout() = %d fragments, want 1", len(parts))
	}
	if got := parts[0].(Line); !vecClose(got.Start, line.Start) || !vecClose(got.End, line.End) {
		t.Errorf("fragment = %v, want original line", got)
	}
}

func TestKeepoutOpenRegion(t *testing.T) {
	line := Line{Start: V(0, 0), End: V(1, 0)}
	_, err := Keepout(line, Line{Start: V(0, -1), End: V(0, 1)})
	if !errors.Is(err, ErrNotClosed) {
		t.Errorf("error = %v, want ErrNotClosed", err)
	}
}

func TestKeepoutCircleInRect(t *testing.T) {
	c := Circle{Center: V(0, 0), Radius: 2}
	region := NewRect(V(0, -5), V(5, 5))

	parts, err := Keepout(c, region)
	if err != nil {
		t.Fatalf("Keepout() error = %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("Keepout() = %d fragments, want 1", len(parts))
	}

	arc, ok := parts[0].(Arc)
	if !ok {
		t.Fatalf("fragment is %T, want Arc", parts[0])
	}
	if !almostEqual(float64(arc.Angle), 180) {
		t.Errorf("surviving sweep = %v, want 180", arc.Angle)
	}
	// The left half of the circle survives.
	if got := arc.Mid(); !almostEqual(got.X, -2) || !almostEqual(got.Y, 0) {
		t.Errorf("Mid() = %v, want (-2,0)", got)
	}
}

func TestKeepoutAll(t *testing.T) {
	line := Line{Start: V(-10, 0), End: V(10, 0)}
	parts, err := KeepoutAll(line,
		Circle{Center: V(-5, 0), Radius: 1},
		Circle{Center: V(5, 0), Radius: 1},
	)
	if err != nil {
		t.Fatalf("KeepoutAll() error = %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("KeepoutAll() = %d fragments, want 3", len(parts))
	}
	mid := parts[1].(Line)
	if !vecClose(mid.Start, V(-4, 0)) || !vecClose(mid.End, V(4, 0)) {
		t.Errorf("middle fragment = %v..%v, want (-4,0)..(4,0)", mid.Start, mid.End)
	}
}
