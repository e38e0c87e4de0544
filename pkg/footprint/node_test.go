package footprint

import (
	"testing"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

func TestAppendSetsParentAndSeed(t *testing.T) {
	root := MustNew("test", TypeSMD)
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)

	if err := root.Append(line); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if line.Parent() != Node(root) {
		t.Errorf("Parent() = %v, want the root", line.Parent())
	}
	children := root.Children()
	if len(children) != 1 || children[0] != Node(line) {
		t.Errorf("Children() = %v, want [line]", children)
	}
	if line.Seed() != root.Seed() {
		t.Error("appended child did not inherit the root seed")
	}
}

func TestAppendRejectsBadChildren(t *testing.T) {
	root := MustNew("test", TypeSMD)
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)

	if err := root.Append(nil); !kfperrors.Is(err, kfperrors.ErrCodeInvalidInput) {
		t.Errorf("Append(nil) error = %v, want invalid input", err)
	}
	if err := line.Append(line); !kfperrors.Is(err, kfperrors.ErrCodeInvalidInput) {
		t.Errorf("Append(self) error = %v, want invalid input", err)
	}
}

func TestAppendRejectsSecondParent(t *testing.T) {
	a := MustNew("a", TypeSMD)
	b := MustNew("b", TypeSMD)
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)

	if err := a.Append(line); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	err := b.Append(line)
	if !kfperrors.Is(err, kfperrors.ErrCodeMultipleParents) {
		t.Errorf("second Append() error = %v, want multiple parents", err)
	}
	if len(b.Children()) != 0 {
		t.Error("failed append still attached the child")
	}
}

func TestExtendAppendsInOrder(t *testing.T) {
	root := MustNew("test", TypeSMD)
	a := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	b := NewCircle(geometry.V(0, 0), 1, LayerFSilkS)

	if err := root.Extend(a, b); err != nil {
		t.Fatalf("Extend() error = %v", err)
	}
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("len(Children()) = %d, want 2", len(children))
	}
	if children[0] != Node(a) || children[1] != Node(b) {
		t.Error("Extend() did not keep the argument order")
	}
}

func TestRemoveDetachesRecursively(t *testing.T) {
	root := MustNew("test", TypeSMD)
	wrap := NewTranslation(geometry.V(1, 0))
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	if err := root.Append(wrap); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := wrap.Append(line); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := root.Remove(line); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if line.Parent() != nil {
		t.Error("removed node still has a parent")
	}
	if len(wrap.Children()) != 0 {
		t.Error("removed node still attached below the wrapper")
	}
}

func TestRemoveForeignNodeIsNoop(t *testing.T) {
	root := MustNew("test", TypeSMD)
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)

	if err := root.Remove(line); err != nil {
		t.Errorf("Remove() of a detached node error = %v, want nil", err)
	}
}

func TestRemoveRejectsVirtualChild(t *testing.T) {
	root := MustNew("test", TypeSMD)
	err := root.Remove(root.Fonts())
	if !kfperrors.Is(err, kfperrors.ErrCodeVirtualChild) {
		t.Errorf("Remove(fonts) error = %v, want virtual child", err)
	}
}

func TestInsertWrapsChildren(t *testing.T) {
	root := MustNew("test", TypeSMD)
	a := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	b := NewLine(geometry.V(0, 1), geometry.V(1, 1), LayerFSilkS)
	if err := root.Extend(a, b); err != nil {
		t.Fatalf("Extend() error = %v", err)
	}

	rot := NewRotation(90)
	if err := root.Insert(rot); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if children := root.Children(); len(children) != 1 || children[0] != Node(rot) {
		t.Fatalf("Children() = %v, want [rotation]", children)
	}
	moved := rot.Children()
	if len(moved) != 2 || moved[0] != Node(a) || moved[1] != Node(b) {
		t.Errorf("wrapper children = %v, want [a b]", moved)
	}
	if a.Parent() != Node(rot) || b.Parent() != Node(rot) {
		t.Error("moved children do not point at the wrapper")
	}
}

func TestInsertRejectsAttachedNode(t *testing.T) {
	root := MustNew("test", TypeSMD)
	other := MustNew("other", TypeSMD)
	rot := NewRotation(90)
	if err := other.Append(rot); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	err := root.Insert(rot)
	if !kfperrors.Is(err, kfperrors.ErrCodeMultipleParents) {
		t.Errorf("Insert() error = %v, want multiple parents", err)
	}
}

func TestChildrenReturnsCopy(t *testing.T) {
	root := MustNew("test", TypeSMD)
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	if err := root.Append(line); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	children := root.Children()
	children[0] = nil
	if got := root.Children(); got[0] != Node(line) {
		t.Error("mutating the returned slice changed the tree")
	}
}

func TestAllChildrenIncludesVirtual(t *testing.T) {
	root := MustNew("test", TypeSMD)
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	if err := root.Append(line); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	all := root.AllChildren()
	if len(all) != 2 {
		t.Fatalf("len(AllChildren()) = %d, want 2", len(all))
	}
	if all[0] != Node(line) {
		t.Error("attached child not first")
	}
	if all[1] != Node(root.Fonts()) {
		t.Error("generated fonts node not last")
	}
}

func TestCopyDetachesAndDeepCopies(t *testing.T) {
	root := MustNew("test", TypeSMD)
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	if err := root.Append(line); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	clone := root.Copy().(*Footprint)
	if clone.Parent() != nil {
		t.Error("copy kept a parent")
	}
	cloned := clone.Children()
	if len(cloned) != 1 {
		t.Fatalf("len(copy.Children()) = %d, want 1", len(cloned))
	}
	if cloned[0] == Node(line) {
		t.Fatal("copy shares a child with the original")
	}

	// Mutating the original must not leak into the copy.
	line.Layer = LayerBSilkS
	if cloned[0].(*Line).Layer != LayerFSilkS {
		t.Error("copied child changed with the original")
	}
}
