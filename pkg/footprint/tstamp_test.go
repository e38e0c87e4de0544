package footprint

import (
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/kicadfp/pkg/geometry"
)

func TestSeedForDeterministic(t *testing.T) {
	if SeedFor("R_0402") != SeedFor("R_0402") {
		t.Error("same name produced different seeds")
	}
	if SeedFor("R_0402") == SeedFor("R_0603") {
		t.Error("different names produced the same seed")
	}
}

func TestTStampStableAcrossBuilds(t *testing.T) {
	build := func() *Footprint {
		f := MustNew("R_0402", TypeSMD)
		if err := f.Append(smdPad("1", geometry.V(-0.5, 0))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		return f
	}
	a, b := build(), build()

	if a.TStamp() != b.TStamp() {
		t.Error("rebuilding the same footprint changed the root identifier")
	}
	if a.Children()[0].TStamp() != b.Children()[0].TStamp() {
		t.Error("rebuilding the same footprint changed a pad identifier")
	}
}

func TestTStampTracksContent(t *testing.T) {
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	before := line.TStamp()
	line.Layer = LayerFFab
	if line.TStamp() == before {
		t.Error("identifier did not change with the content")
	}
}

func TestSetTStampPins(t *testing.T) {
	fixed := uuid.MustParse("12345678-1234-5678-1234-567812345678")
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	line.SetTStamp(fixed)

	line.Layer = LayerFFab
	line.SetSeed(SeedFor("other"))
	if line.TStamp() != fixed {
		t.Errorf("TStamp() = %v, want the pinned %v", line.TStamp(), fixed)
	}
}

func TestUniqueIDDisambiguates(t *testing.T) {
	a := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	b := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)

	if a.TStamp() != b.TStamp() {
		t.Fatal("identical content under the same seed should collide")
	}
	b.SetUniqueID("1")
	if a.TStamp() == b.TStamp() {
		t.Error("unique ID did not separate the identifiers")
	}
	if a.ContentHash() != b.ContentHash() {
		t.Error("unique ID leaked into the content hash")
	}
}

func TestSetSeedPropagates(t *testing.T) {
	root := MustNew("test", TypeSMD)
	wrap := NewTranslation(geometry.V(1, 0))
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	if err := root.Append(wrap); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := wrap.Append(line); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	seed := SeedFor("renamed")
	root.SetSeed(seed)
	if wrap.Seed() != seed || line.Seed() != seed {
		t.Error("seed did not reach the whole subtree")
	}
}

func TestSetNameReseedsGeneratedPads(t *testing.T) {
	root := MustNew("before", TypeSMD)
	arr := MustNewPadArray(PadArray{
		Prototype: smdPad("1", geometry.Vec{}),
		Pitch:     geometry.V(1, 0),
		Count:     2,
	})
	if err := root.Append(arr); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	before := arr.Pads()[0].TStamp()

	if err := root.SetName("after"); err != nil {
		t.Fatalf("SetName() error = %v", err)
	}
	if arr.Pads()[0].Seed() != SeedFor("after") {
		t.Error("generated pad kept the old seed")
	}
	if arr.Pads()[0].TStamp() == before {
		t.Error("generated pad identifier did not change with the name")
	}
}

func TestContentHashIgnoresChildren(t *testing.T) {
	root := MustNew("test", TypeSMD)
	before := root.ContentHash()
	if err := root.Append(smdPad("1", geometry.Vec{})); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if root.ContentHash() != before {
		t.Error("appending a child changed the parent content hash")
	}
}

func TestCopyPreservesIdentifierState(t *testing.T) {
	fixed := uuid.MustParse("12345678-1234-5678-1234-567812345678")
	line := NewLine(geometry.V(0, 0), geometry.V(1, 0), LayerFSilkS)
	line.SetUniqueID("7")
	line.SetTStamp(fixed)

	clone := line.Copy()
	if clone.UniqueID() != "7" {
		t.Errorf("UniqueID() = %q, want 7", clone.UniqueID())
	}
	if clone.TStamp() != fixed {
		t.Errorf("TStamp() = %v, want the pinned %v", clone.TStamp(), fixed)
	}
}
