package series

import (
	"strings"
	"testing"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
)

const chip0402 = `R_0402_1005Metric:
  body_size: [1.0, 0.5]
  pad_size: [0.59, 0.64]
  pad_pitch: 0.93
  description: Resistor SMD 0402
  tags: [resistor, "0402"]
`

func TestChipBuild(t *testing.T) {
	spec := loadOne(t, Chip, "chip_resistor.yaml", chip0402)
	fp, err := Chip.Build(spec)
	if err != nil {
		t.Fatal(err)
	}

	if fp.Name != "R_0402_1005Metric" {
		t.Errorf("name = %q", fp.Name)
	}
	if fp.Type != footprint.TypeSMD {
		t.Errorf("type = %q, want smd", fp.Type)
	}
	if !strings.Contains(fp.Description, "Resistor SMD 0402") ||
		!strings.Contains(fp.Description, "generated with kicadfp") {
		t.Errorf("description = %q", fp.Description)
	}
	if len(fp.Tags) != 2 || fp.Tags[0] != "resistor" {
		t.Errorf("tags = %v", fp.Tags)
	}

	pads := collectPads(fp)
	if len(pads) != 2 {
		t.Fatalf("got %d pads, want 2", len(pads))
	}
	one, two := pads[0], pads[1]
	if one.Number != "1" || two.Number != "2" {
		t.Errorf("pad numbers %q, %q", one.Number, two.Number)
	}
	if !near(one.At.X, -0.465) || !near(one.At.Y, 0) || !near(two.At.X, 0.465) {
		t.Errorf("pad positions (%v,%v) and (%v,%v)", one.At.X, one.At.Y, two.At.X, two.At.Y)
	}
	if one.Type != footprint.PadTypeSMD || one.Shape != footprint.PadShapeRoundRect {
		t.Errorf("pad 1 is %s %s", one.Type, one.Shape)
	}
	if !near(one.RadiusRatio(), 0.25) {
		t.Errorf("radius ratio = %v, want 0.25", one.RadiusRatio())
	}
	if len(one.Layers) != 3 || one.Layers[0] != footprint.LayerFCu {
		t.Errorf("pad layers = %v", one.Layers)
	}

	// Fabrication outline matches the body.
	fab := nodesOnLayer(fp, footprint.LayerFFab)
	if len(fab) != 1 {
		t.Fatalf("got %d fab nodes, want 1", len(fab))
	}
	body, ok := fab[0].(*footprint.Rect)
	if !ok {
		t.Fatalf("fab outline is %T, want rect", fab[0])
	}
	if !near(body.Min.X, -0.5) || !near(body.Min.Y, -0.25) {
		t.Errorf("fab body min = (%v, %v)", body.Min.X, body.Min.Y)
	}

	// Silkscreen clears the pads: two full-length lines pushed out past
	// the pad edge plus clearance.
	silk := nodesOnLayer(fp, footprint.LayerFSilkS)
	if len(silk) != 2 {
		t.Fatalf("got %d silk nodes, want 2", len(silk))
	}
	for _, n := range silk {
		line, ok := n.(*footprint.Line)
		if !ok {
			t.Fatalf("silk node is %T, want line", n)
		}
		if wantY := 0.64/2 + 0.2 + 0.06; !near(abs(line.Start.Y), wantY) {
			t.Errorf("silk line at y=%v, want ±%v", line.Start.Y, wantY)
		}
		if !near(abs(line.Start.X), 0.5) || !near(abs(line.End.X), 0.5) {
			t.Errorf("silk line spans %v..%v, want ±0.5", line.Start.X, line.End.X)
		}
	}

	// Courtyard on the 0.01 grid.
	cy := nodesOnLayer(fp, footprint.LayerFCrtYd)
	if len(cy) != 1 {
		t.Fatalf("got %d courtyard nodes, want 1", len(cy))
	}
	crt := cy[0].(*footprint.Rect)
	if !near(crt.Max.X, 1.01) || !near(crt.Max.Y, 0.57) {
		t.Errorf("courtyard max = (%v, %v), want (1.01, 0.57)", crt.Max.X, crt.Max.Y)
	}

	// Reference above, value below, mirrored about the origin.
	var ref, val *footprint.Property
	for _, n := range footprint.Serialize(fp) {
		if p, ok := n.(*footprint.Property); ok {
			switch p.Name {
			case footprint.PropertyReference:
				ref = p
			case footprint.PropertyValue:
				val = p
			}
		}
	}
	if ref == nil || val == nil {
		t.Fatal("missing reference or value field")
	}
	if ref.Value != "REF**" || ref.Layer != footprint.LayerFSilkS {
		t.Errorf("reference = %q on %s", ref.Value, ref.Layer)
	}
	if val.Value != fp.Name || val.Layer != footprint.LayerFFab {
		t.Errorf("value = %q on %s", val.Value, val.Layer)
	}
	if !near(ref.At.Y, -val.At.Y) || ref.At.Y >= -crt.Max.Y {
		t.Errorf("text positions ref %v, val %v", ref.At.Y, val.At.Y)
	}
}

func TestChipPolarized(t *testing.T) {
	spec := loadOne(t, Chip, "chip_tantalum.yaml", `CP_3216:
  body_size: [3.2, 1.6]
  pad_size: [1.2, 1.4]
  pad_pitch: 2.2
  polarized: true
  model: "${KICAD6_3DMODEL_DIR}/Capacitor_Tantalum_SMD.3dshapes/CP_EIA-3216-18.wrl"
`)
	fp, err := Chip.Build(spec)
	if err != nil {
		t.Fatal(err)
	}

	// The fab outline carries the pin-1 bevel.
	fab := nodesOnLayer(fp, footprint.LayerFFab)
	if len(fab) != 1 {
		t.Fatalf("got %d fab nodes, want 1", len(fab))
	}
	poly, ok := fab[0].(*footprint.Polygon)
	if !ok {
		t.Fatalf("polarized fab outline is %T, want polygon", fab[0])
	}
	if len(poly.Points) != 5 || poly.Filled {
		t.Errorf("bevel outline: %d points, filled=%t", len(poly.Points), poly.Filled)
	}

	// The silkscreen bracket closes around pad 1.
	barX := -(2.2/2 + 1.2/2 + 0.26)
	var bar *footprint.Line
	for _, n := range nodesOnLayer(fp, footprint.LayerFSilkS) {
		line, ok := n.(*footprint.Line)
		if !ok {
			continue
		}
		if near(line.Start.X, line.End.X) && near(line.Start.X, barX) {
			bar = line
		}
	}
	if bar == nil {
		t.Fatalf("no polarity bar at x=%v", barX)
	}

	var model *footprint.Model
	for _, n := range footprint.Serialize(fp) {
		if m, ok := n.(*footprint.Model); ok {
			model = m
		}
	}
	if model == nil || !strings.Contains(model.Path, "CP_EIA-3216-18.wrl") {
		t.Error("3d model missing")
	}
}

func TestChipValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			"missing body",
			"X:\n  pad_size: [0.5, 0.6]\n  pad_pitch: 1.0\n",
			"body_size",
		},
		{
			"missing pitch",
			"X:\n  body_size: [1.0, 0.5]\n  pad_size: [0.5, 0.6]\n",
			"pad_pitch",
		},
		{
			"pads overlap",
			"X:\n  body_size: [1.0, 0.5]\n  pad_size: [0.5, 0.6]\n  pad_pitch: 0.4\n",
			"pad_pitch",
		},
		{
			"negative courtyard",
			"X:\n  body_size: [1.0, 0.5]\n  pad_size: [0.5, 0.6]\n  pad_pitch: 1.0\n  courtyard: -0.1\n",
			"courtyard",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := loadOne(t, Chip, "chip_case.yaml", tt.content)
			_, err := Chip.Build(spec)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !kfperrors.Is(err, kfperrors.ErrCodeInvalidSeries) {
				t.Errorf("got code %s, want INVALID_SERIES", kfperrors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should name %s", err, tt.field)
			}
		})
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
