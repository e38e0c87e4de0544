package footprint

import "github.com/matzehuels/kicadfp/pkg/geometry"

// Rotation turns its subtree counterclockwise about the footprint
// origin. It produces no output of its own; children keep their local
// coordinates and are mapped through RealPosition when serialized.
type Rotation struct {
	BaseNode
	Degrees float64
}

// NewRotation creates a rotation wrapper.
func NewRotation(degrees float64) *Rotation {
	r := &Rotation{Degrees: degrees}
	r.bind(r, "Rotation")
	return r
}

func (r *Rotation) contentID() *identity {
	return newIdentity(r.kind).float("degrees", r.Degrees)
}

// Copy returns a deep copy with the parent cleared.
func (r *Rotation) Copy() Node {
	c := NewRotation(r.Degrees)
	r.copyInto(c)
	return c
}

// Translation shifts its subtree by a fixed offset. Like Rotation it
// produces no output of its own.
type Translation struct {
	BaseNode
	Offset geometry.Vec
}

// NewTranslation creates a translation wrapper.
func NewTranslation(offset geometry.Vec) *Translation {
	t := &Translation{Offset: offset}
	t.bind(t, "Translation")
	return t
}

func (t *Translation) contentID() *identity {
	return newIdentity(t.kind).vec("offset", t.Offset)
}

// Copy returns a deep copy with the parent cleared.
func (t *Translation) Copy() Node {
	c := NewTranslation(t.Offset)
	t.copyInto(c)
	return c
}

// RealPosition maps a local point through every transform wrapper
// between this node and the root, nearest wrapper first.
func (b *BaseNode) RealPosition(at geometry.Vec) geometry.Vec {
	pos := at
	for p := b.parent; p != nil; p = p.Parent() {
		switch t := p.(type) {
		case *Rotation:
			pos = pos.Rotate(t.Degrees, geometry.Vec{})
		case *Translation:
			pos = pos.Add(t.Offset)
		}
	}
	return pos
}

// RealRotation adds the rotation wrappers above this node to a local
// angle, giving the absolute angle to emit.
func (b *BaseNode) RealRotation(angle float64) float64 {
	total := angle
	for p := b.parent; p != nil; p = p.Parent() {
		if r, ok := p.(*Rotation); ok {
			total += r.Degrees
		}
	}
	return total
}
