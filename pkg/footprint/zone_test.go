package footprint

import (
	"testing"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

func triangle() []geometry.Vec {
	return []geometry.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 2}}
}

func TestNewZoneValidation(t *testing.T) {
	base := func() Zone {
		return Zone{
			Layers: []string{LayerFCu},
			Points: triangle(),
		}
	}
	tests := []struct {
		name    string
		mutate  func(*Zone)
		wantErr bool
	}{
		{"valid", nil, false},
		{"two points", func(z *Zone) { z.Points = z.Points[:2] }, true},
		{"no layers", func(z *Zone) { z.Layers = nil }, true},
		{"empty layer name", func(z *Zone) { z.Layers = []string{""} }, true},
		{"negative net", func(z *Zone) { z.Net = -1 }, true},
		{"negative priority", func(z *Zone) { z.Priority = -1 }, true},
		{"bad hatch style", func(z *Zone) { z.Hatch.Style = "wavy" }, true},
		{"negative hatch pitch", func(z *Zone) { z.Hatch = Hatch{Style: HatchEdge, Pitch: -1} }, true},
		{"bad pad connection", func(z *Zone) { z.ConnectPads.Type = "sideways" }, true},
		{"negative min thickness", func(z *Zone) { z.MinThickness = -0.1 }, true},
		{"bad fill smoothing", func(z *Zone) { z.Fill = &ZoneFill{Smoothing: "round"} }, true},
		{"island area without minimum mode", func(z *Zone) { z.Fill = &ZoneFill{IslandAreaMin: 1} }, true},
		{"minimum mode without area", func(z *Zone) { z.Fill = &ZoneFill{IslandRemoval: IslandRemovalMinimumArea} }, true},
		{"minimum mode with area", func(z *Zone) {
			z.Fill = &ZoneFill{IslandRemoval: IslandRemovalMinimumArea, IslandAreaMin: 2.5}
		}, false},
		{"hatched fill", func(z *Zone) {
			z.Fill = &ZoneFill{Mode: FillModeHatched, HatchThickness: 0.3, HatchGap: 0.6}
		}, false},
		{"rule area", func(z *Zone) { z.Keepouts = KeepoutAll() }, false},
	}
	for _, tt := range tests {
		def := base()
		if tt.mutate != nil {
			tt.mutate(&def)
		}
		_, err := NewZone(def)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: NewZone() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !kfperrors.Is(err, kfperrors.ErrCodeInvalidInput) {
			t.Errorf("%s: NewZone() error code = %v, want invalid input", tt.name, kfperrors.GetCode(err))
		}
	}
}

func TestNewZoneDefaults(t *testing.T) {
	z := MustNewZone(Zone{Layers: []string{LayerFCu}, Points: triangle()})

	if z.Hatch != DefaultHatch {
		t.Errorf("Hatch = %+v, want the default %+v", z.Hatch, DefaultHatch)
	}
	if !almostEqual(z.MinThickness, DefaultZoneMinThickness) {
		t.Errorf("MinThickness = %v, want %v", z.MinThickness, DefaultZoneMinThickness)
	}
	if z.ConnectPads.Effective() != PadConnectionThermalRelief {
		t.Errorf("pad connection = %q, want thermal relief", z.ConnectPads.Effective())
	}
	if z.Fill != nil {
		t.Error("zone without fill settings should stay unfilled")
	}
	if z.IsRuleArea() {
		t.Error("zone without keepouts reports rule area")
	}
}

func TestNewZoneDeepCopiesInput(t *testing.T) {
	pts := triangle()
	ko := KeepoutAll()
	fill := &ZoneFill{Mode: FillModeSolid}
	z := MustNewZone(Zone{
		Layers:   []string{LayerFCu},
		Points:   pts,
		Keepouts: ko,
		Fill:     fill,
	})

	pts[0] = geometry.V(9, 9)
	ko.Tracks = false
	fill.Mode = FillModeHatched
	if vecClose(z.Points[0], geometry.V(9, 9)) {
		t.Error("zone shares the point slice with the caller")
	}
	if !z.Keepouts.Tracks {
		t.Error("zone shares the keepouts with the caller")
	}
	if z.Fill.Mode != FillModeSolid {
		t.Error("zone shares the fill settings with the caller")
	}
}

func TestZoneRuleArea(t *testing.T) {
	z := MustNewZone(Zone{
		Name:     "no-copper",
		Layers:   []string{LayerFCu},
		Points:   triangle(),
		Keepouts: &Keepouts{CopperPour: true},
	})
	if !z.IsRuleArea() {
		t.Error("zone with keepouts does not report rule area")
	}
	if z.Keepouts.Tracks {
		t.Error("unset keepout class should stay allowed")
	}
}

func TestZoneTransforms(t *testing.T) {
	z := MustNewZone(Zone{Layers: []string{LayerFCu}, Points: triangle()})

	z.Translate(geometry.V(1, 1))
	if !vecClose(z.Points[0], geometry.V(1, 1)) {
		t.Errorf("translated point = %v, want (1, 1)", z.Points[0])
	}

	z.Rotate(180, geometry.V(1, 1))
	if !vecClose(z.Points[1], geometry.V(-1, 1)) {
		t.Errorf("rotated point = %v, want (-1, 1)", z.Points[1])
	}
}

func TestZoneBBox(t *testing.T) {
	z := MustNewZone(Zone{Layers: []string{LayerFCu}, Points: triangle()})
	b := z.BBox()
	if !vecClose(b.Min, geometry.V(0, 0)) || !vecClose(b.Max, geometry.V(2, 2)) {
		t.Errorf("BBox = %v %v, want (0,0) (2,2)", b.Min, b.Max)
	}
}

func TestZoneFillEffectiveMode(t *testing.T) {
	f := &ZoneFill{}
	if f.EffectiveMode() != FillModeSolid {
		t.Errorf("EffectiveMode() = %q, want solid", f.EffectiveMode())
	}
	f.Mode = FillModeHatched
	if f.EffectiveMode() != FillModeHatched {
		t.Errorf("EffectiveMode() = %q, want hatched", f.EffectiveMode())
	}
}

func TestZoneCopy(t *testing.T) {
	z := MustNewZone(Zone{
		Net:      1,
		NetName:  "GND",
		Layers:   []string{LayerFCu, LayerBCu},
		Points:   triangle(),
		Fill:     &ZoneFill{Mode: FillModeSolid, ThermalGap: 0.5},
		Priority: 2,
	})
	clone := z.Copy().(*Zone)

	if clone.TStamp() != z.TStamp() {
		t.Error("copy changed the identifier")
	}
	z.Points[0] = geometry.V(9, 9)
	z.Fill.ThermalGap = 9
	if vecClose(clone.Points[0], geometry.V(9, 9)) {
		t.Error("copy shares the point slice with the original")
	}
	if !almostEqual(clone.Fill.ThermalGap, 0.5) {
		t.Error("copy shares the fill settings with the original")
	}
}
