package footprint

import (
	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// =============================================================================
// Hatch
// =============================================================================

// HatchStyle selects how a zone's outline is displayed.
type HatchStyle string

const (
	HatchNone HatchStyle = "none"
	HatchEdge HatchStyle = "edge"
	HatchFull HatchStyle = "full"
)

// ValidHatchStyles is the set of accepted hatch styles.
var ValidHatchStyles = map[HatchStyle]bool{
	HatchNone: true,
	HatchEdge: true,
	HatchFull: true,
}

// Hatch describes a zone's outline display. The zero value resolves to
// [DefaultHatch].
type Hatch struct {
	Style HatchStyle
	Pitch float64
}

// DefaultHatch is the outline display applied when a zone gives none.
var DefaultHatch = Hatch{Style: HatchEdge, Pitch: 0.5}

// =============================================================================
// Pad Connection
// =============================================================================

// PadConnectionType selects how the zone connects to pads inside it.
type PadConnectionType string

const (
	PadConnectionThermalRelief PadConnectionType = "thermal_relief"
	PadConnectionFull          PadConnectionType = "full"
	PadConnectionNo            PadConnectionType = "no"
	PadConnectionTHTOnly       PadConnectionType = "thru_hole_only"
)

// ValidPadConnectionTypes is the set of accepted pad connection types.
var ValidPadConnectionTypes = map[PadConnectionType]bool{
	PadConnectionThermalRelief: true,
	PadConnectionFull:          true,
	PadConnectionNo:            true,
	PadConnectionTHTOnly:       true,
}

// PadConnection describes a zone's pad connection rule. An empty type
// means thermal relief, which the file format leaves implicit.
type PadConnection struct {
	Type      PadConnectionType
	Clearance float64
}

// Effective resolves the empty type to thermal relief.
func (p PadConnection) Effective() PadConnectionType {
	if p.Type == "" {
		return PadConnectionThermalRelief
	}
	return p.Type
}

// =============================================================================
// Keepouts
// =============================================================================

// Keepouts lists what a rule area keeps out. A true field denies that
// object class inside the zone; the zero value allows everything.
type Keepouts struct {
	Tracks     bool
	Vias       bool
	CopperPour bool
	Pads       bool
	Footprints bool
}

// KeepoutAll denies every object class.
func KeepoutAll() *Keepouts {
	return &Keepouts{Tracks: true, Vias: true, CopperPour: true, Pads: true, Footprints: true}
}

// =============================================================================
// Zone Fill
// =============================================================================

// ZoneFillMode selects the fill pattern of a filled zone.
type ZoneFillMode string

const (
	FillModeSolid   ZoneFillMode = "solid"
	FillModeHatched ZoneFillMode = "hatched"
)

// ValidZoneFillModes is the set of accepted fill modes.
var ValidZoneFillModes = map[ZoneFillMode]bool{
	FillModeSolid:   true,
	FillModeHatched: true,
}

// SmoothingStyle selects corner smoothing of the filled area.
type SmoothingStyle string

const (
	SmoothingNone    SmoothingStyle = ""
	SmoothingChamfer SmoothingStyle = "chamfer"
	SmoothingFillet  SmoothingStyle = "fillet"
)

// ValidSmoothingStyles is the set of accepted smoothing styles.
var ValidSmoothingStyles = map[SmoothingStyle]bool{
	SmoothingNone:    true,
	SmoothingChamfer: true,
	SmoothingFillet:  true,
}

// IslandRemoval selects what happens to unconnected islands. The zero
// value leaves the token out of the file.
type IslandRemoval int

const (
	IslandRemovalUnset IslandRemoval = iota
	IslandRemovalRemove
	IslandRemovalFill
	IslandRemovalMinimumArea
)

// FileValue returns the integer written to the board file. Only valid
// when the mode is set.
func (m IslandRemoval) FileValue() int { return int(m) - 1 }

// HatchSmoothingLevel selects hatch border smoothing for hatched fills.
type HatchSmoothingLevel string

const (
	HatchSmoothingNone       HatchSmoothingLevel = "none"
	HatchSmoothingFillet     HatchSmoothingLevel = "fillet"
	HatchSmoothingArcMinimum HatchSmoothingLevel = "arc_minimum"
	HatchSmoothingArcMaximum HatchSmoothingLevel = "arc_maximum"
)

// ValidHatchSmoothingLevels is the set of accepted hatch smoothing
// levels, the empty string meaning unset.
var ValidHatchSmoothingLevels = map[HatchSmoothingLevel]bool{
	"":                       true,
	HatchSmoothingNone:       true,
	HatchSmoothingFillet:     true,
	HatchSmoothingArcMinimum: true,
	HatchSmoothingArcMaximum: true,
}

// HatchBorderAlgorithm selects how hatched fill borders are sized.
type HatchBorderAlgorithm string

const (
	HatchBorderMinimumThickness HatchBorderAlgorithm = "minimum_thickness"
	HatchBorderHatchThickness   HatchBorderAlgorithm = "hatch_thickness"
)

// ValidHatchBorderAlgorithms is the set of accepted border algorithms,
// the empty string meaning unset.
var ValidHatchBorderAlgorithms = map[HatchBorderAlgorithm]bool{
	"":                          true,
	HatchBorderMinimumThickness: true,
	HatchBorderHatchThickness:   true,
}

// ZoneFill describes how a zone is filled. A nil fill on the zone means
// the zone is unfilled.
type ZoneFill struct {
	// Mode empty means solid.
	Mode ZoneFillMode

	ThermalGap         float64
	ThermalBridgeWidth float64

	Smoothing       SmoothingStyle
	SmoothingRadius float64

	IslandRemoval IslandRemoval
	// IslandAreaMin is required with, and exclusive to, minimum area
	// island removal.
	IslandAreaMin float64

	HatchThickness       float64
	HatchGap             float64
	HatchOrientation     float64
	HatchSmoothingLevel  HatchSmoothingLevel
	HatchSmoothingValue  float64
	HatchBorderAlgorithm HatchBorderAlgorithm
	HatchMinHoleArea     float64
}

// DefaultZoneFill is a solid fill with the usual thermal settings.
var DefaultZoneFill = ZoneFill{
	Mode:               FillModeSolid,
	ThermalGap:         0.5,
	ThermalBridgeWidth: 0.5,
}

// EffectiveMode resolves the empty mode to solid.
func (f *ZoneFill) EffectiveMode() ZoneFillMode {
	if f.Mode == "" {
		return FillModeSolid
	}
	return f.Mode
}

func (f *ZoneFill) validate(errs *kfperrors.FieldErrors) {
	if f.Mode != "" && !ValidZoneFillModes[f.Mode] {
		errs.Add("fill.mode", "invalid fill mode %q", f.Mode)
	}
	if !ValidSmoothingStyles[f.Smoothing] {
		errs.Add("fill.smoothing", "invalid smoothing style %q", f.Smoothing)
	}
	switch f.IslandRemoval {
	case IslandRemovalUnset, IslandRemovalRemove, IslandRemovalFill:
		if f.IslandAreaMin != 0 {
			errs.Add("fill.island_area_min", "minimum island area needs minimum area island removal")
		}
	case IslandRemovalMinimumArea:
		if f.IslandAreaMin <= 0 {
			errs.Add("fill.island_area_min", "minimum area island removal needs a positive minimum island area")
		}
	default:
		errs.Add("fill.island_removal", "invalid island removal mode %d", f.IslandRemoval)
	}
	if !ValidHatchSmoothingLevels[f.HatchSmoothingLevel] {
		errs.Add("fill.hatch_smoothing_level", "invalid hatch smoothing level %q", f.HatchSmoothingLevel)
	}
	if !ValidHatchBorderAlgorithms[f.HatchBorderAlgorithm] {
		errs.Add("fill.hatch_border_algorithm", "invalid hatch border algorithm %q", f.HatchBorderAlgorithm)
	}
}

func (f *ZoneFill) copy() *ZoneFill {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// =============================================================================
// Zone
// =============================================================================

// DefaultZoneMinThickness is the minimum copper width applied when a
// zone gives none.
const DefaultZoneMinThickness = 0.25

// Zone is a copper or rule area bounded by a polygon. Construct zones
// through [NewZone], which validates the outline and fill settings and
// applies the usual defaults.
type Zone struct {
	BaseNode

	Net     int
	NetName string
	Name    string
	Layers  []string

	Hatch Hatch
	// Priority zero is the file default and stays implicit.
	Priority int

	ConnectPads          PadConnection
	FilledAreasThickness bool
	MinThickness         float64

	// Keepouts non-nil makes this a rule area.
	Keepouts *Keepouts
	// Fill nil leaves the zone unfilled.
	Fill *ZoneFill

	Points []geometry.Vec
}

// NewZone validates the given zone definition and returns the usable
// node. All field problems are reported together.
func NewZone(z Zone) (*Zone, error) {
	errs := &kfperrors.FieldErrors{Code: kfperrors.ErrCodeInvalidInput}

	if len(z.Points) < 3 {
		errs.Add("points", "zone outline needs at least 3 points, got %d", len(z.Points))
	}
	if len(z.Layers) == 0 {
		errs.Add("layers", "zone needs at least one layer")
	}
	for _, l := range z.Layers {
		if l == "" {
			errs.Add("layers", "layer names must not be empty")
			break
		}
	}
	if z.Net < 0 {
		errs.Add("net", "net number must not be negative, got %d", z.Net)
	}
	if z.Priority < 0 {
		errs.Add("priority", "priority must not be negative, got %d", z.Priority)
	}

	if z.Hatch.Style == "" {
		z.Hatch = DefaultHatch
	} else if !ValidHatchStyles[z.Hatch.Style] {
		errs.Add("hatch", "invalid hatch style %q", z.Hatch.Style)
	}
	if z.Hatch.Pitch < 0 {
		errs.Add("hatch", "hatch pitch must not be negative, got %v", z.Hatch.Pitch)
	}

	if z.ConnectPads.Type != "" && !ValidPadConnectionTypes[z.ConnectPads.Type] {
		errs.Add("connect_pads", "invalid pad connection type %q", z.ConnectPads.Type)
	}
	if z.MinThickness == 0 {
		z.MinThickness = DefaultZoneMinThickness
	} else if z.MinThickness < 0 {
		errs.Add("min_thickness", "minimum thickness must be positive, got %v", z.MinThickness)
	}

	if z.Fill != nil {
		z.Fill.validate(errs)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	zone := z
	zone.BaseNode = BaseNode{}
	zone.Layers = append([]string(nil), z.Layers...)
	zone.Points = append([]geometry.Vec(nil), z.Points...)
	if z.Keepouts != nil {
		ko := *z.Keepouts
		zone.Keepouts = &ko
	}
	zone.Fill = z.Fill.copy()
	zone.bind(&zone, "Zone")
	return &zone, nil
}

// MustNewZone is NewZone for static definitions; it panics on invalid
// input.
func MustNewZone(z Zone) *Zone {
	zone, err := NewZone(z)
	if err != nil {
		panic(err)
	}
	return zone
}

// IsRuleArea reports whether the zone carries keepout rules.
func (z *Zone) IsRuleArea() bool { return z.Keepouts != nil }

// Translate moves the zone outline by d.
func (z *Zone) Translate(d geometry.Vec) {
	for i := range z.Points {
		z.Points[i] = z.Points[i].Add(d)
	}
}

// Rotate rotates the zone outline about the given point.
func (z *Zone) Rotate(angleDeg float64, about geometry.Vec) {
	for i := range z.Points {
		z.Points[i] = z.Points[i].Rotate(angleDeg, about)
	}
}

// BBox returns the bounding box of the zone outline.
func (z *Zone) BBox() geometry.BBox {
	return geometry.BBoxOf(z.Points...)
}

func (z *Zone) contentID() *identity {
	id := newIdentity(z.kind).
		num("net", z.Net).
		str("net_name", z.NetName).
		str("name", z.Name).
		strs("layers", z.Layers).
		str("hatch_style", string(z.Hatch.Style)).
		float("hatch_pitch", z.Hatch.Pitch).
		num("priority", z.Priority).
		str("connect_pads", string(z.ConnectPads.Effective())).
		float("connect_clearance", z.ConnectPads.Clearance).
		flag("filled_areas_thickness", z.FilledAreasThickness).
		float("min_thickness", z.MinThickness).
		vecs("points", z.Points)
	if z.Keepouts != nil {
		id.flag("keepout_tracks", z.Keepouts.Tracks).
			flag("keepout_vias", z.Keepouts.Vias).
			flag("keepout_copperpour", z.Keepouts.CopperPour).
			flag("keepout_pads", z.Keepouts.Pads).
			flag("keepout_footprints", z.Keepouts.Footprints)
	}
	if z.Fill != nil {
		id.str("fill_mode", string(z.Fill.EffectiveMode())).
			float("fill_thermal_gap", z.Fill.ThermalGap).
			float("fill_thermal_bridge_width", z.Fill.ThermalBridgeWidth).
			str("fill_smoothing", string(z.Fill.Smoothing)).
			float("fill_smoothing_radius", z.Fill.SmoothingRadius).
			num("fill_island_removal", int(z.Fill.IslandRemoval)).
			float("fill_island_area_min", z.Fill.IslandAreaMin).
			float("fill_hatch_thickness", z.Fill.HatchThickness).
			float("fill_hatch_gap", z.Fill.HatchGap).
			float("fill_hatch_orientation", z.Fill.HatchOrientation).
			str("fill_hatch_smoothing_level", string(z.Fill.HatchSmoothingLevel)).
			float("fill_hatch_smoothing_value", z.Fill.HatchSmoothingValue).
			str("fill_hatch_border_algorithm", string(z.Fill.HatchBorderAlgorithm)).
			float("fill_hatch_min_hole_area", z.Fill.HatchMinHoleArea)
	}
	return id
}

// Copy returns a deep copy with the parent cleared.
func (z *Zone) Copy() Node {
	clone, err := NewZone(*z)
	if err != nil {
		// The source zone was already validated.
		panic(err)
	}
	z.copyInto(clone)
	return clone
}
