package footprint

import (
	"testing"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

func TestNewFootprint(t *testing.T) {
	tests := []struct {
		name    string
		fpName  string
		typ     FootprintType
		wantErr bool
	}{
		{"smd", "R_0402", TypeSMD, false},
		{"tht", "DIP-8", TypeTHT, false},
		{"unspecified type", "MountingHole", TypeUnspecified, false},
		{"empty name", "", TypeSMD, true},
		{"bad type", "R_0402", "sideways", true},
	}
	for _, tt := range tests {
		f, err := New(tt.fpName, tt.typ)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: New(%q, %q) error = %v, wantErr %v", tt.name, tt.fpName, tt.typ, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if f.Seed() != SeedFor(tt.fpName) {
			t.Errorf("%s: Seed() not derived from the name", tt.name)
		}
		if f.ZoneConnection != ZoneConnectionInherit {
			t.Errorf("%s: ZoneConnection = %v, want inherit", tt.name, f.ZoneConnection)
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew() with an empty name did not panic")
		}
	}()
	MustNew("", TypeSMD)
}

func TestSetNameReseeds(t *testing.T) {
	f := MustNew("before", TypeSMD)
	pad := smdPad("1", geometry.Vec{})
	if err := f.Append(pad); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	before := pad.TStamp()

	if err := f.SetName("after"); err != nil {
		t.Fatalf("SetName() error = %v", err)
	}
	if f.Name != "after" {
		t.Errorf("Name = %q, want after", f.Name)
	}
	if f.Seed() != SeedFor("after") {
		t.Error("Seed() not rederived from the new name")
	}
	if pad.TStamp() == before {
		t.Error("child identifier survived the rename")
	}

	if err := f.SetName(""); !kfperrors.Is(err, kfperrors.ErrCodeInvalidInput) {
		t.Errorf("SetName(\"\") error = %v, want invalid input", err)
	}
}

func TestFootprintFonts(t *testing.T) {
	f := MustNew("test", TypeSMD)
	if f.Fonts() == nil {
		t.Fatal("Fonts() = nil")
	}
	virtual := f.VirtualChildren()
	if len(virtual) != 1 || virtual[0] != Node(f.Fonts()) {
		t.Errorf("VirtualChildren() = %v, want the fonts marker", virtual)
	}
}

func TestFootprintContentHashTracksAttrs(t *testing.T) {
	f := MustNew("test", TypeSMD)
	before := f.ContentHash()
	f.BoardOnly = true
	if f.ContentHash() == before {
		t.Error("attr flag change did not change the content hash")
	}
}

func TestFootprintCopy(t *testing.T) {
	f := MustNew("test", TypeSMD)
	f.Description = "0402 chip resistor"
	f.Tags = []string{"resistor", "0402"}
	f.ExcludeFromBOM = true
	f.SolderMaskMargin = 0.05
	f.Fonts().Enabled = true
	if err := f.Append(smdPad("1", geometry.Vec{})); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	clone := f.Copy().(*Footprint)
	if clone.Description != f.Description || !clone.ExcludeFromBOM {
		t.Error("copy lost header attributes")
	}
	if !almostEqual(clone.SolderMaskMargin, 0.05) {
		t.Error("copy lost the solder mask margin")
	}
	if !clone.Fonts().Enabled {
		t.Error("copy lost the embedded fonts flag")
	}
	if len(clone.Children()) != 1 {
		t.Errorf("copy has %d children, want 1", len(clone.Children()))
	}

	f.Tags[0] = "capacitor"
	if clone.Tags[0] != "resistor" {
		t.Error("copy shares the tag slice with the original")
	}
}
