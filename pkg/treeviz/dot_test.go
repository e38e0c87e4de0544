package treeviz

import (
	"strings"
	"testing"

	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

func testTree(t *testing.T) *footprint.Footprint {
	t.Helper()
	fp := footprint.MustNew("R_Test", footprint.TypeSMD)

	pad := footprint.MustNewPad(footprint.Pad{
		Number: "1",
		Type:   footprint.PadTypeSMD,
		Shape:  footprint.PadShapeRect,
		At:     geometry.V(-0.5, 0),
		Size:   geometry.V(0.6, 0.6),
		Layers: footprint.LayersSMD,
	})
	if err := fp.Append(pad); err != nil {
		t.Fatalf("Append(pad) error = %v", err)
	}
	if err := fp.Append(footprint.NewLine(geometry.V(-1, -1), geometry.V(1, -1), footprint.LayerFSilkS)); err != nil {
		t.Fatalf("Append(line) error = %v", err)
	}
	return fp
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(t), Options{})

	if !strings.HasPrefix(dot, "digraph footprint {") {
		t.Errorf("ToDOT() should start with digraph header, got %q", dot[:min(len(dot), 40)])
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("ToDOT() should end with closing brace")
	}
	for _, want := range []string{`Footprint \"R_Test\"`, "Pad", "Line", "->"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTVirtualChildrenDashed(t *testing.T) {
	fp := testTree(t)
	proto := footprint.MustNewPad(footprint.Pad{
		Number: "1",
		Type:   footprint.PadTypeSMD,
		Shape:  footprint.PadShapeRect,
		Size:   geometry.V(0.6, 0.6),
		Layers: footprint.LayersSMD,
	})
	arr := footprint.MustNewPadArray(footprint.PadArray{
		Prototype: proto,
		Pitch:     geometry.V(1, 0),
		Count:     3,
	})
	if err := fp.Append(arr); err != nil {
		t.Fatalf("Append(array) error = %v", err)
	}

	dot := ToDOT(fp, Options{})
	if !strings.Contains(dot, "[style=dashed]") {
		t.Error("ToDOT() should mark generated child edges dashed")
	}
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Error("ToDOT() should fill generated child nodes grey")
	}
	if !strings.Contains(dot, "PadArray 3 pads") {
		t.Errorf("ToDOT() missing array label in:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	fp := testTree(t)

	plain := ToDOT(fp, Options{})
	detailed := ToDOT(fp, Options{Detailed: true})

	if strings.Contains(plain, fp.TStamp().String()) {
		t.Error("plain DOT should not include node identifiers")
	}
	if !strings.Contains(detailed, fp.TStamp().String()) {
		t.Error("detailed DOT should include node identifiers")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(testTree(t), Options{})
	b := ToDOT(testTree(t), Options{})
	if a != b {
		t.Error("ToDOT() should be deterministic for identical trees")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("normalizeViewBox() should rebase the viewBox, got %q", out)
	}
	if strings.Contains(out, "pt") {
		t.Error("normalizeViewBox() should drop point-based dimensions")
	}

	// No viewBox: returned unchanged.
	plain := []byte("<svg><g></g></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("normalizeViewBox() should leave svg without viewBox alone")
	}
}
