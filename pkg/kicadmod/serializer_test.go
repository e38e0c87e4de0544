package kicadmod

import (
	"fmt"
	"strings"
	"testing"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{450, 90},
		{-90, 270},
		{720, 0},
		{-360, 0},
		{180, 180},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); got != tt.want {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrokeCache(t *testing.T) {
	s := newSerializer()
	first := s.stroke(footprint.LayerFSilkS, 0, "")
	second := s.stroke(footprint.LayerFSilkS, 0, "")

	if first != "stroke (width 0.12) (type solid)" {
		t.Errorf("stroke fragment = %q", first)
	}
	if first != second {
		t.Error("repeated stroke lookups disagree")
	}
	if len(s.strokes) != 1 {
		t.Errorf("stroke cache holds %d entries, want 1", len(s.strokes))
	}

	s.stroke(footprint.LayerFSilkS, 0.2, footprint.StyleDash)
	if len(s.strokes) != 2 {
		t.Errorf("stroke cache holds %d entries after second style, want 2", len(s.strokes))
	}
}

func TestStrokeDefaultWidthPerLayer(t *testing.T) {
	s := newSerializer()
	if got := s.stroke(footprint.LayerFCrtYd, 0, ""); got != "stroke (width 0.05) (type solid)" {
		t.Errorf("courtyard stroke = %q", got)
	}
	if got := s.stroke(footprint.LayerEdgeCuts, 0, ""); got != "stroke (width 0.15) (type solid)" {
		t.Errorf("edge cuts stroke = %q", got)
	}
	// An explicit width wins over the layer default.
	if got := s.stroke(footprint.LayerFSilkS, 0.3, ""); got != "stroke (width 0.3) (type solid)" {
		t.Errorf("explicit stroke = %q", got)
	}
}

func TestEmitLine(t *testing.T) {
	line := footprint.NewLine(geometry.V(-1, 0), geometry.V(1, 0), footprint.LayerFSilkS)
	s := newSerializer()
	if err := s.emit(line); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := fmt.Sprintf(
		"(fp_line (start -1 0) (end 1 0) (stroke (width 0.12) (type solid)) (layer \"F.SilkS\") (tstamp %s))\n",
		line.TStamp())
	if got := s.w.String(); got != want {
		t.Errorf("emit line:\ngot  %q\nwant %q", got, want)
	}
}

func TestEmitCircleEndPoint(t *testing.T) {
	circle := footprint.NewCircle(geometry.V(2, 3), 1.5, footprint.LayerFFab)
	s := newSerializer()
	if err := s.emit(circle); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(center 2 3) (end 3.5 3)") {
		t.Errorf("circle end point missing from %q", got)
	}
	if !strings.Contains(got, "(fill none)") {
		t.Errorf("unfilled circle needs (fill none), got %q", got)
	}
}

func TestEmitArcNegativeSweepSwapsEndpoints(t *testing.T) {
	arc, err := footprint.NewArcThreePoints(geometry.V(1, 0), geometry.V(0, 1), geometry.V(-1, 0), footprint.LayerFSilkS)
	if err != nil {
		t.Fatalf("NewArcThreePoints: %v", err)
	}
	if arc.Angle > 0 {
		t.Fatalf("test arc sweep = %v, want clockwise", arc.Angle)
	}
	s := newSerializer()
	if err := s.emit(arc); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(start -1 0)") || !strings.Contains(got, "(end 1 0)") {
		t.Errorf("clockwise arc endpoints not swapped: %q", got)
	}
	if !strings.Contains(got, "(mid 0 1)") {
		t.Errorf("arc mid point wrong: %q", got)
	}
}

func TestEmitPolygonPointsPerLine(t *testing.T) {
	pts := []geometry.Vec{
		geometry.V(0, 0), geometry.V(1, 0), geometry.V(2, 0),
		geometry.V(3, 0), geometry.V(4, 0),
	}
	poly := footprint.NewPolygon(pts, footprint.LayerFCu)
	s := newSerializer()
	if err := s.emit(poly); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := fmt.Sprintf("(fp_poly\n"+
		"\t(pts\n"+
		"\t\t(xy 0 0) (xy 1 0) (xy 2 0) (xy 3 0)\n"+
		"\t\t(xy 4 0)\n"+
		"\t)\n"+
		"\t(stroke (width 0.15) (type solid))\n"+
		"\t(fill solid)\n"+
		"\t(layer \"F.Cu\")\n"+
		"\t(tstamp %s)\n"+
		")\n", poly.TStamp())
	if got := s.w.String(); got != want {
		t.Errorf("emit polygon:\ngot  %q\nwant %q", got, want)
	}
}

func TestEmitCompoundPolygonOutlineIDs(t *testing.T) {
	c := footprint.NewCompoundPolygon([]geometry.Polygon{
		{Points: []geometry.Vec{geometry.V(0, 0), geometry.V(1, 0), geometry.V(1, 1)}},
		{Points: []geometry.Vec{geometry.V(2, 0), geometry.V(3, 0), geometry.V(3, 1)}},
	}, footprint.LayerFCu)
	s := newSerializer()
	if err := s.emit(c); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if n := strings.Count(got, "(fp_poly"); n != 2 {
		t.Fatalf("compound polygon produced %d fp_poly blocks, want 2", n)
	}
	first := c.TStamp().String()
	if !strings.Contains(got, first) {
		t.Error("first outline does not carry the node identifier")
	}
	// The second outline derives a distinct, stable identifier.
	if strings.Count(got, first) != 1 {
		t.Error("outline identifiers are not distinct")
	}
}

func TestEmitTextJustifyMirrorFirst(t *testing.T) {
	text := footprint.NewText("note", geometry.V(0, 2), footprint.LayerBSilkS)
	text.Mirror = true
	text.Justify = []string{"left"}
	s := newSerializer()
	if err := s.emit(text); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(justify mirror left)") {
		t.Errorf("justify tokens wrong: %q", got)
	}
}

func TestEmitTextRotationNormalized(t *testing.T) {
	text := footprint.NewText("x", geometry.V(0, 0), footprint.LayerFSilkS)
	text.Rotation = -90
	s := newSerializer()
	if err := s.emit(text); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := s.w.String(); !strings.Contains(got, "(at 0 0 270)") {
		t.Errorf("rotation not normalized: %q", got)
	}

	full := footprint.NewText("y", geometry.V(0, 0), footprint.LayerFSilkS)
	full.Rotation = 360
	s = newSerializer()
	if err := s.emit(full); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := s.w.String(); !strings.Contains(got, "(at 0 0)\n") && !strings.Contains(got, "(at 0 0) ") {
		t.Errorf("full turn not dropped: %q", got)
	}
}

func TestEmitTextHideAndKnockout(t *testing.T) {
	text := footprint.NewText("ghost", geometry.V(0, 0), footprint.LayerFFab)
	text.Hide = true
	text.Knockout = true
	s := newSerializer()
	if err := s.emit(text); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(layer \"F.Fab\" knockout) hide\n") {
		t.Errorf("hide/knockout tokens wrong: %q", got)
	}
}

func TestEmitPadTHT(t *testing.T) {
	pad := footprint.MustNewPad(footprint.Pad{
		Number: "1", Type: footprint.PadTypeTHT, Shape: footprint.PadShapeCircle,
		Size: geometry.V(1.2, 1.2), Drill: footprint.DrillRound(0.6),
		Layers: footprint.LayersTHT,
	})
	s := newSerializer()
	if err := s.emit(pad); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := fmt.Sprintf("(pad \"1\" thru_hole circle\n"+
		"\t(at 0 0)\n"+
		"\t(size 1.2 1.2)\n"+
		"\t(drill 0.6)\n"+
		"\t(layers \"*.Cu\" \"*.Mask\")\n"+
		"\t(tstamp %s)\n"+
		")\n", pad.TStamp())
	if got := s.w.String(); got != want {
		t.Errorf("emit pad:\ngot  %q\nwant %q", got, want)
	}
}

func TestEmitPadOvalDrillOffset(t *testing.T) {
	pad := footprint.MustNewPad(footprint.Pad{
		Number: "2", Type: footprint.PadTypeTHT, Shape: footprint.PadShapeOval,
		Size:   geometry.V(1.6, 2.2),
		Drill:  &footprint.Drill{Size: geometry.V(0.8, 1.4), Offset: geometry.V(0.1, 0)},
		Layers: footprint.LayersTHT,
	})
	s := newSerializer()
	if err := s.emit(pad); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := s.w.String(); !strings.Contains(got, "(drill oval 0.8 1.4 (offset 0.1 0))") {
		t.Errorf("drill entry wrong: %q", got)
	}
}

func TestEmitPadRoundRect(t *testing.T) {
	pad := footprint.MustNewPad(footprint.Pad{
		Number: "3", Type: footprint.PadTypeSMD, Shape: footprint.PadShapeRoundRect,
		Size: geometry.V(1, 0.5), Layers: footprint.LayersSMD,
		RoundRadius: footprint.RoundRadiusRatio(0.25),
	})
	s := newSerializer()
	if err := s.emit(pad); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(roundrect_rratio 0.25)") {
		t.Errorf("radius ratio missing: %q", got)
	}
	if strings.Contains(got, "chamfer") {
		t.Errorf("unchamfered pad writes chamfer entries: %q", got)
	}
}

func TestEmitPadChamferCorners(t *testing.T) {
	pad := footprint.MustNewPad(footprint.Pad{
		Number: "4", Type: footprint.PadTypeSMD, Shape: footprint.PadShapeRoundRect,
		Size: geometry.V(2, 2), Layers: footprint.LayersSMD,
		RoundRadius:    footprint.RoundRadiusRatio(0.25),
		ChamferCorners: footprint.ChamferCorners{TopLeft: true, BottomRight: true},
	})
	s := newSerializer()
	if err := s.emit(pad); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(chamfer_ratio ") {
		t.Errorf("chamfer ratio missing: %q", got)
	}
	if !strings.Contains(got, "(chamfer top_left bottom_right)") {
		t.Errorf("chamfer corners wrong: %q", got)
	}
}

func TestEmitPadFabProperty(t *testing.T) {
	pad := footprint.MustNewPad(footprint.Pad{
		Number: "", Type: footprint.PadTypeSMD, Shape: footprint.PadShapeCircle,
		Size: geometry.V(1, 1), Layers: []string{footprint.LayerFCu},
		FabProperty: footprint.FabPropertyFiducialGlobal,
	})
	s := newSerializer()
	if err := s.emit(pad); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := s.w.String(); !strings.Contains(got, "(property pad_prop_fiducial_glob)") {
		t.Errorf("fab property token wrong: %q", got)
	}
}

func TestEmitPadRemoveUnusedLayers(t *testing.T) {
	pad := footprint.MustNewPad(footprint.Pad{
		Number: "5", Type: footprint.PadTypeTHT, Shape: footprint.PadShapeCircle,
		Size: geometry.V(1.2, 1.2), Drill: footprint.DrillRound(0.6),
		Layers:               footprint.LayersTHT,
		UnconnectedLayerMode: footprint.UnconnectedRemoveExceptEnds,
	})
	s := newSerializer()
	if err := s.emit(pad); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(remove_unused_layers)\n") {
		t.Errorf("remove_unused_layers missing: %q", got)
	}
	if !strings.Contains(got, "(keep_end_layers)\n") {
		t.Errorf("keep_end_layers missing: %q", got)
	}
}

func TestEmitPadThermalAngle(t *testing.T) {
	base := footprint.Pad{
		Number: "6", Type: footprint.PadTypeSMD, Shape: footprint.PadShapeRect,
		Size: geometry.V(1, 1), Layers: footprint.LayersSMD,
	}

	// The shape default stays implicit.
	rect := base
	rect.ThermalBridgeAngle = 90
	s := newSerializer()
	if err := s.emit(footprint.MustNewPad(rect)); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := s.w.String(); strings.Contains(got, "thermal_bridge_angle") {
		t.Errorf("default thermal angle written: %q", got)
	}

	angled := base
	angled.ThermalBridgeAngle = 45
	s = newSerializer()
	if err := s.emit(footprint.MustNewPad(angled)); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := s.w.String(); !strings.Contains(got, "(thermal_bridge_angle 45)") {
		t.Errorf("explicit thermal angle missing: %q", got)
	}
}

func TestPadTailCacheSharedAcrossPads(t *testing.T) {
	proto := footprint.MustNewPad(footprint.Pad{
		Number: "1", Type: footprint.PadTypeSMD, Shape: footprint.PadShapeRect,
		Size: geometry.V(1, 0.5), Layers: footprint.LayersSMD,
	})
	second, err := proto.CopyWith(func(p *footprint.Pad) {
		p.Number = "2"
		p.At = geometry.V(2, 0)
	})
	if err != nil {
		t.Fatalf("CopyWith: %v", err)
	}

	s := newSerializer()
	if err := s.emit(proto); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := s.emit(second); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if len(s.pads) != 1 {
		t.Errorf("pad cache holds %d entries, want 1 shared tail", len(s.pads))
	}
	got := s.w.String()
	if !strings.Contains(got, "(pad \"1\"") || !strings.Contains(got, "(pad \"2\"") {
		t.Errorf("both pads must render: %q", got)
	}
	if !strings.Contains(got, "(at 2 0)") {
		t.Errorf("second pad position missing: %q", got)
	}
	if !strings.Contains(got, proto.TStamp().String()) {
		t.Error("first pad identifier missing")
	}
	if !strings.Contains(got, second.TStamp().String()) {
		t.Error("second pad identifier missing")
	}
}

func TestPadTailCacheSplitsOnDrill(t *testing.T) {
	a := footprint.MustNewPad(footprint.Pad{
		Number: "1", Type: footprint.PadTypeTHT, Shape: footprint.PadShapeCircle,
		Size: geometry.V(1.2, 1.2), Drill: footprint.DrillRound(0.6),
		Layers: footprint.LayersTHT,
	})
	b := footprint.MustNewPad(footprint.Pad{
		Number: "2", Type: footprint.PadTypeTHT, Shape: footprint.PadShapeCircle,
		Size: geometry.V(1.2, 1.2), Drill: footprint.DrillRound(0.8),
		Layers: footprint.LayersTHT,
	})
	s := newSerializer()
	if err := s.emit(a); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := s.emit(b); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(s.pads) != 2 {
		t.Errorf("pad cache holds %d entries, want 2 distinct tails", len(s.pads))
	}
}

func TestEmitCustomPadPrimitives(t *testing.T) {
	outline := footprint.NewPolygon([]geometry.Vec{
		geometry.V(-1, -0.5), geometry.V(1, -0.5), geometry.V(1, 0.5), geometry.V(-1, 0.5),
	}, footprint.LayerFCu)
	pad := footprint.MustNewPad(footprint.Pad{
		Number: "7", Type: footprint.PadTypeSMD, Shape: footprint.PadShapeCustom,
		Size: geometry.V(0.5, 0.5), Layers: footprint.LayersSMD,
		Primitives: []footprint.Node{outline},
	})
	s := newSerializer()
	if err := s.emit(pad); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(options (clearance outline) (anchor circle))") {
		t.Errorf("custom pad options wrong: %q", got)
	}
	if !strings.Contains(got, "(gr_poly\n") {
		t.Errorf("primitive polygon missing: %q", got)
	}
	if !strings.Contains(got, "(width 0)") {
		t.Errorf("primitive default width wrong: %q", got)
	}
	if !strings.Contains(got, "(fill yes)") {
		t.Errorf("filled primitive needs (fill yes): %q", got)
	}
}

func TestEmitZoneKeepout(t *testing.T) {
	zone := footprint.MustNewZone(footprint.Zone{
		Layers:   []string{footprint.LayerFCu},
		Points:   []geometry.Vec{geometry.V(-1, -1), geometry.V(1, -1), geometry.V(1, 1), geometry.V(-1, 1)},
		Keepouts: &footprint.Keepouts{Tracks: true, Vias: true},
	})
	s := newSerializer()
	if err := s.emit(zone); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := fmt.Sprintf("(zone\n"+
		"\t(net 0)\n"+
		"\t(net_name \"\")\n"+
		"\t(layer \"F.Cu\")\n"+
		"\t(tstamp %s)\n"+
		"\t(name \"\")\n"+
		"\t(hatch edge 0.5)\n"+
		"\t(connect_pads (clearance 0))\n"+
		"\t(filled_areas_thickness no)\n"+
		"\t(min_thickness 0.25)\n"+
		"\t(keepout (tracks not_allowed) (vias not_allowed) (copperpour allowed) (pads allowed) (footprints allowed))\n"+
		"\t(fill)\n"+
		"\t(polygon\n"+
		"\t\t(pts\n"+
		"\t\t\t(xy -1 -1)\n"+
		"\t\t\t(xy 1 -1)\n"+
		"\t\t\t(xy 1 1)\n"+
		"\t\t\t(xy -1 1)\n"+
		"\t\t)\n"+
		"\t)\n"+
		")\n", zone.TStamp())
	if got := s.w.String(); got != want {
		t.Errorf("emit zone:\ngot  %q\nwant %q", got, want)
	}
}

func TestEmitZoneFill(t *testing.T) {
	zone := footprint.MustNewZone(footprint.Zone{
		Net: 1, NetName: "GND",
		Layers: []string{footprint.LayerFCu, footprint.LayerBCu},
		Points: []geometry.Vec{geometry.V(0, 0), geometry.V(5, 0), geometry.V(5, 5)},
		ConnectPads: footprint.PadConnection{
			Type: footprint.PadConnectionFull, Clearance: 0.3,
		},
		Fill: &footprint.ZoneFill{
			ThermalGap:         0.5,
			ThermalBridgeWidth: 0.4,
			Smoothing:          footprint.SmoothingFillet,
			SmoothingRadius:    0.1,
			IslandRemoval:      footprint.IslandRemovalMinimumArea,
			IslandAreaMin:      10,
		},
	})
	s := newSerializer()
	if err := s.emit(zone); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := s.w.String()
	if !strings.Contains(got, "(layers \"F.Cu\" \"B.Cu\")") {
		t.Errorf("zone layers wrong: %q", got)
	}
	if !strings.Contains(got, "(connect_pads full (clearance 0.3))") {
		t.Errorf("connect_pads wrong: %q", got)
	}
	if !strings.Contains(got, "(fill yes\n") {
		t.Errorf("fill head wrong: %q", got)
	}
	if !strings.Contains(got, "(thermal_gap 0.5)") || !strings.Contains(got, "(thermal_bridge_width 0.4)") {
		t.Errorf("thermal entries missing: %q", got)
	}
	if !strings.Contains(got, "(smoothing fillet (radius 0.1))") {
		t.Errorf("smoothing wrong: %q", got)
	}
	if !strings.Contains(got, "(island_removal_mode 2)") || !strings.Contains(got, "(island_area_min 10)") {
		t.Errorf("island removal wrong: %q", got)
	}
}

func TestEmitGroup(t *testing.T) {
	a := footprint.NewLine(geometry.V(0, 0), geometry.V(1, 0), footprint.LayerFSilkS)
	b := footprint.NewLine(geometry.V(0, 1), geometry.V(1, 1), footprint.LayerFSilkS)
	g := footprint.NewGroup("silk", a, b)

	s := newSerializer()
	if err := s.emit(g); err != nil {
		t.Fatalf("emit: %v", err)
	}
	ids := g.MemberIDs()
	want := fmt.Sprintf("(group \"silk\"\n"+
		"\t(id %s)\n"+
		"\t(members %s %s)\n"+
		")\n", g.TStamp(), ids[0], ids[1])
	if got := s.w.String(); got != want {
		t.Errorf("emit group:\ngot  %q\nwant %q", got, want)
	}
}

func TestEmitModel(t *testing.T) {
	m := footprint.NewModel("${KICAD6_3DMODEL_DIR}/R_0402.wrl")
	m.Rotate = [3]float64{0, 0, 90}
	s := newSerializer()
	if err := s.emit(m); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := "(model \"${KICAD6_3DMODEL_DIR}/R_0402.wrl\"\n" +
		"\t(offset (xyz 0 0 0))\n" +
		"\t(scale (xyz 1 1 1))\n" +
		"\t(rotate (xyz 0 0 90))\n" +
		")\n"
	if got := s.w.String(); got != want {
		t.Errorf("emit model:\ngot  %q\nwant %q", got, want)
	}
}

func TestEmitRejectsStructuralNodes(t *testing.T) {
	s := newSerializer()
	err := s.emit(footprint.NewRotation(90))
	if err == nil {
		t.Fatal("emit accepted a transform wrapper")
	}
	if !kfperrors.Is(err, kfperrors.ErrCodeSerialize) {
		t.Errorf("error code = %v, want %v", kfperrors.GetCode(err), kfperrors.ErrCodeSerialize)
	}
}
