package kicadmod

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
	"github.com/matzehuels/kicadfp/pkg/sexp"
)

// =============================================================================
// Serializer
// =============================================================================

// serializer emits flattened nodes in the board file dialect. Two
// caches persist across nodes: rendered stroke fragments per layer,
// width and style, and the position-independent tail of pads, so a pad
// array serializes its prototype once and replays the text. Neither
// cache changes the output, only the work done to produce it.
type serializer struct {
	w       sexp.Writer
	strokes map[strokeKey]string
	pads    map[string]string
}

func newSerializer() *serializer {
	return &serializer{
		strokes: make(map[strokeKey]string),
		pads:    make(map[string]string),
	}
}

// emit writes one flattened node at footprint body depth.
func (s *serializer) emit(n footprint.Node) error {
	switch t := n.(type) {
	case *footprint.Line:
		s.emitLine(t)
	case *footprint.Arc:
		s.emitArc(t)
	case *footprint.Circle:
		s.emitCircle(t)
	case *footprint.Rect:
		s.emitRect(t)
	case *footprint.Polygon:
		s.emitPolygon(t)
	case *footprint.CompoundPolygon:
		s.emitCompoundPolygon(t)
	case *footprint.Text:
		s.emitText(t)
	case *footprint.Property:
		s.emitProperty(t)
	case *footprint.Pad:
		s.emitPad(t)
	case *footprint.Zone:
		s.emitZone(t)
	case *footprint.Group:
		s.emitGroup(t)
	case *footprint.EmbeddedFonts:
		s.w.Line("embedded_fonts", sexp.B(t.Enabled))
	case *footprint.Model:
		s.emitModel(t)
	default:
		return kfperrors.New(kfperrors.ErrCodeSerialize, "cannot serialize %s node", n.Kind())
	}
	return nil
}

// =============================================================================
// Strokes
// =============================================================================

type strokeKey struct {
	layer string
	width float64
	style footprint.LineStyle
}

// stroke returns the inner text of a stroke expression, cached per
// layer, width and style. Zero width resolves to the layer default.
func (s *serializer) stroke(layer string, width float64, style footprint.LineStyle) string {
	key := strokeKey{layer: layer, width: width, style: style}
	if frag, ok := s.strokes[key]; ok {
		return frag
	}
	if width == 0 {
		width = LayerDefaultWidth(layer)
	}
	if style == "" {
		style = footprint.StyleSolid
	}
	frag := "stroke " + sexp.L("width", sexp.F(width)) + " " + sexp.L("type", string(style))
	s.strokes[key] = frag
	return frag
}

func fillToken(filled bool) string {
	if filled {
		return "solid"
	}
	return "none"
}

// =============================================================================
// Graphic Nodes
// =============================================================================

func (s *serializer) emitLine(l *footprint.Line) {
	start := l.RealPosition(l.Start)
	end := l.RealPosition(l.End)
	s.w.Line("fp_line",
		sexp.L("start", sexp.F(start.X), sexp.F(start.Y)),
		sexp.L("end", sexp.F(end.X), sexp.F(end.Y)),
		sexp.L(s.stroke(l.Layer, l.Width, l.Style)),
		sexp.L("layer", sexp.Str(l.Layer)),
		sexp.L("tstamp", l.TStamp().String()),
	)
}

func (s *serializer) emitArc(a *footprint.Arc) {
	start, mid, end := arcPoints(a.Arc, a)
	s.w.Line("fp_arc",
		sexp.L("start", sexp.F(start.X), sexp.F(start.Y)),
		sexp.L("mid", sexp.F(mid.X), sexp.F(mid.Y)),
		sexp.L("end", sexp.F(end.X), sexp.F(end.Y)),
		sexp.L(s.stroke(a.Layer, a.Width, a.Style)),
		sexp.L("layer", sexp.Str(a.Layer)),
		sexp.L("tstamp", a.TStamp().String()),
	)
}

// arcPoints maps an arc through the node's transform wrappers. Negative
// sweeps come out with swapped endpoints so the file always describes
// the arc counterclockwise.
func arcPoints(arc geometry.Arc, n footprint.Node) (start, mid, end geometry.Vec) {
	start = n.RealPosition(arc.Start)
	mid = n.RealPosition(arc.Mid())
	end = n.RealPosition(arc.End())
	if arc.Angle < 0 {
		start, end = end, start
	}
	return start, mid, end
}

func (s *serializer) emitCircle(c *footprint.Circle) {
	center := c.RealPosition(c.Center)
	end := c.RealPosition(c.Center.Add(geometry.V(c.Radius, 0)))
	s.w.Line("fp_circle",
		sexp.L("center", sexp.F(center.X), sexp.F(center.Y)),
		sexp.L("end", sexp.F(end.X), sexp.F(end.Y)),
		sexp.L(s.stroke(c.Layer, c.Width, c.Style)),
		sexp.L("fill", fillToken(c.Filled)),
		sexp.L("layer", sexp.Str(c.Layer)),
		sexp.L("tstamp", c.TStamp().String()),
	)
}

func (s *serializer) emitRect(r *footprint.Rect) {
	lo, hi := realCorners(r)
	s.w.Line("fp_rect",
		sexp.L("start", sexp.F(lo.X), sexp.F(lo.Y)),
		sexp.L("end", sexp.F(hi.X), sexp.F(hi.Y)),
		sexp.L(s.stroke(r.Layer, r.Width, r.Style)),
		sexp.L("fill", fillToken(r.Filled)),
		sexp.L("layer", sexp.Str(r.Layer)),
		sexp.L("tstamp", r.TStamp().String()),
	)
}

func (s *serializer) emitPolygon(p *footprint.Polygon) {
	s.emitPolygonOutline(p, p.Points, p.Attrs(), p.TStamp())
}

// emitCompoundPolygon writes one fp_poly per outline. All outlines
// share the node's drawing attributes; outlines after the first derive
// their identifier from the node's so regeneration stays stable.
func (s *serializer) emitCompoundPolygon(c *footprint.CompoundPolygon) {
	base := c.TStamp()
	for i, outline := range c.Outlines {
		id := base
		if i > 0 {
			id = uuid.NewSHA1(base, []byte(fmt.Sprintf("outline-%d", i)))
		}
		s.emitPolygonOutline(c, outline.Points, c.Attrs(), id)
	}
}

func (s *serializer) emitPolygonOutline(n footprint.Node, pts []geometry.Vec, attrs footprint.DrawAttrs, id uuid.UUID) {
	s.w.Open("fp_poly")
	s.emitPoints(n, pts, 4)
	s.w.Line(s.stroke(attrs.Layer, attrs.Width, attrs.Style))
	s.w.Line("fill", fillToken(attrs.Filled))
	s.w.Line("layer", sexp.Str(attrs.Layer))
	s.w.Line("tstamp", id.String())
	s.w.Close()
}

// emitPoints writes a pts block with perLine coordinates per line,
// mapped through the node's transform wrappers.
func (s *serializer) emitPoints(n footprint.Node, pts []geometry.Vec, perLine int) {
	s.w.Open("pts")
	row := make([]string, 0, perLine)
	for _, pt := range pts {
		rp := n.RealPosition(pt)
		row = append(row, sexp.L("xy", sexp.F(rp.X), sexp.F(rp.Y)))
		if len(row) == perLine {
			s.w.Items(row...)
			row = row[:0]
		}
	}
	if len(row) > 0 {
		s.w.Items(row...)
	}
	s.w.Close()
}

// =============================================================================
// Text Nodes
// =============================================================================

// textRole maps a property name to the fp_text role token.
func textRole(name string) string {
	switch name {
	case footprint.PropertyReference:
		return "reference"
	case footprint.PropertyValue:
		return "value"
	}
	return "user"
}

func (s *serializer) emitText(t *footprint.Text) {
	s.emitTextBlock("user", t.Content, t, t.At, t.Rotation, t.Layer,
		t.Knockout, t.Hide, t.Size, t.Thickness, t.Mirror, t.Justify)
}

func (s *serializer) emitProperty(p *footprint.Property) {
	s.emitTextBlock(textRole(p.Name), p.Value, p, p.At, p.Rotation, p.Layer,
		false, p.Hide, p.Size, p.Thickness, p.Mirror, p.Justify)
}

func (s *serializer) emitTextBlock(role, content string, n footprint.Node,
	at geometry.Vec, rotation float64, layer string, knockout, hide bool,
	size geometry.Vec, thickness float64, mirror bool, justify []string) {

	pos := n.RealPosition(at)
	rot := normalizeAngle(n.RealRotation(rotation))

	head := []string{"fp_text", role, sexp.Str(content)}
	if rot != 0 {
		head = append(head, sexp.L("at", sexp.F(pos.X), sexp.F(pos.Y), sexp.F(rot)))
	} else {
		head = append(head, sexp.L("at", sexp.F(pos.X), sexp.F(pos.Y)))
	}
	layerParts := []string{"layer", sexp.Str(layer)}
	if knockout {
		layerParts = append(layerParts, "knockout")
	}
	head = append(head, sexp.L(layerParts...))
	if hide {
		head = append(head, "hide")
	}
	s.w.Open(head...)

	effects := []string{"effects", sexp.L("font",
		sexp.L("size", sexp.F(size.X), sexp.F(size.Y)),
		sexp.L("thickness", sexp.F(thickness)))}
	var just []string
	if mirror {
		just = append(just, "mirror")
	}
	just = append(just, justify...)
	if len(just) > 0 {
		effects = append(effects, sexp.L(append([]string{"justify"}, just...)...))
	}
	s.w.Line(effects...)
	s.w.Line("tstamp", n.TStamp().String())
	s.w.Close()
}

// normalizeAngle maps an angle in degrees into [0, 360).
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// =============================================================================
// Pads
// =============================================================================

// fabPropertyToken maps fabrication properties to their attr tokens.
var fabPropertyToken = map[footprint.FabProperty]string{
	footprint.FabPropertyBGA:            "pad_prop_bga",
	footprint.FabPropertyFiducialGlobal: "pad_prop_fiducial_glob",
	footprint.FabPropertyFiducialLocal:  "pad_prop_fiducial_loc",
	footprint.FabPropertyTestPoint:      "pad_prop_testpoint",
	footprint.FabPropertyHeatsink:       "pad_prop_heatsink",
	footprint.FabPropertyCastellated:    "pad_prop_castellated",
}

func (s *serializer) emitPad(p *footprint.Pad) {
	at := p.RealPosition(p.At)
	rot := normalizeAngle(p.RealRotation(p.Rotation))

	s.w.Open("pad", sexp.Str(p.Number), string(p.Type), string(p.EffectiveShape()))
	if rot != 0 {
		s.w.Line("at", sexp.F(at.X), sexp.F(at.Y), sexp.F(rot))
	} else {
		s.w.Line("at", sexp.F(at.X), sexp.F(at.Y))
	}
	s.w.Raw(s.padTail(p))
	s.w.Line("tstamp", p.TStamp().String())
	s.w.Close()
}

// padTail returns the pad lines after the at entry, cached by the pad
// fields they render. Number, position, rotation and the identifier
// stay outside the fragment, so every pad of an array shares one entry.
func (s *serializer) padTail(p *footprint.Pad) string {
	key := padTailKey(p)
	if frag, ok := s.pads[key]; ok {
		return frag
	}

	w := sexp.NewWriterAt(2)
	w.Line("size", sexp.F(p.Size.X), sexp.F(p.Size.Y))

	if (p.Type == footprint.PadTypeTHT || p.Type == footprint.PadTypeNPTH) && p.Drill != nil {
		drill := []string{"drill"}
		if p.Drill.IsOval() {
			drill = append(drill, "oval", sexp.F(p.Drill.Size.X), sexp.F(p.Drill.Size.Y))
		} else {
			drill = append(drill, sexp.F(p.Drill.Size.X))
		}
		if p.Drill.Offset.X != 0 || p.Drill.Offset.Y != 0 {
			drill = append(drill, sexp.L("offset", sexp.F(p.Drill.Offset.X), sexp.F(p.Drill.Offset.Y)))
		}
		w.Line(drill...)
	}

	if p.FabProperty != footprint.FabPropertyNone {
		w.Line("property", fabPropertyToken[p.FabProperty])
	}

	layers := make([]string, 0, len(p.Layers)+1)
	layers = append(layers, "layers")
	for _, l := range SortLayers(p.Layers) {
		layers = append(layers, sexp.Str(l))
	}
	w.Line(layers...)

	if p.Type == footprint.PadTypeTHT && p.UnconnectedLayerMode != footprint.UnconnectedKeepAll {
		w.Line("remove_unused_layers")
		if p.UnconnectedLayerMode == footprint.UnconnectedRemoveExceptEnds {
			w.Line("keep_end_layers")
		}
	}

	switch p.EffectiveShape() {
	case footprint.PadShapeRoundRect:
		w.Line("roundrect_rratio", sexp.F(p.RadiusRatio()))
		if p.ChamferCorners.Any() {
			w.Line("chamfer_ratio", sexp.F(p.ChamferRatio()))
			w.Line(chamferParts(p.ChamferCorners)...)
		}
	case footprint.PadShapeCustom:
		w.Line("options",
			sexp.L("clearance", string(p.ShapeInZone)),
			sexp.L("anchor", string(p.AnchorShape)))
		s.padPrimitives(w, p.Primitives)
	}

	if p.SolderMaskMargin != 0 {
		w.Line("solder_mask_margin", sexp.F(p.SolderMaskMargin))
	}
	if p.SolderPasteMarginRatio != 0 {
		w.Line("solder_paste_margin_ratio", sexp.F(p.SolderPasteMarginRatio))
	}
	if p.SolderPasteMargin != 0 {
		w.Line("solder_paste_margin", sexp.F(p.SolderPasteMargin))
	}

	if p.ZoneConnection != footprint.ZoneConnectionInherit {
		w.Line("zone_connect", sexp.I(p.ZoneConnection.FileValue()))
	}
	if p.Clearance != 0 {
		w.Line("clearance", sexp.F(p.Clearance))
	}
	if p.ThermalBridgeWidth > 0 {
		w.Line("thermal_bridge_width", sexp.F(p.ThermalBridgeWidth))
	}
	if angle := p.ThermalBridgeAngle; angle != 0 && angle != shapeThermalAngle(p) {
		w.Line("thermal_bridge_angle", sexp.F(angle))
	}
	if p.ThermalGap != 0 {
		w.Line("thermal_gap", sexp.F(p.ThermalGap))
	}

	frag := w.String()
	s.pads[key] = frag
	return frag
}

// shapeThermalAngle is the thermal bridge angle the board editor
// assumes per pad shape; matching angles stay implicit in the file.
func shapeThermalAngle(p *footprint.Pad) float64 {
	if p.Shape == footprint.PadShapeCircle ||
		(p.Shape == footprint.PadShapeCustom && p.AnchorShape == footprint.PadShapeCircle) {
		return 45
	}
	return 90
}

func chamferParts(c footprint.ChamferCorners) []string {
	parts := []string{"chamfer"}
	if c.TopLeft {
		parts = append(parts, "top_left")
	}
	if c.TopRight {
		parts = append(parts, "top_right")
	}
	if c.BottomLeft {
		parts = append(parts, "bottom_left")
	}
	if c.BottomRight {
		parts = append(parts, "bottom_right")
	}
	return parts
}

// padTailKey collects every pad field the tail fragment renders.
func padTailKey(p *footprint.Pad) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%v|%v", p.Type, p.EffectiveShape(), p.Size.X, p.Size.Y)
	if p.Drill != nil {
		fmt.Fprintf(&b, "|drill:%v,%v,%v,%v",
			p.Drill.Size.X, p.Drill.Size.Y, p.Drill.Offset.X, p.Drill.Offset.Y)
	}
	fmt.Fprintf(&b, "|%s|%s|%d", p.FabProperty, strings.Join(p.Layers, ","), p.UnconnectedLayerMode)
	fmt.Fprintf(&b, "|%v|%v|%v", p.RadiusRatio(), p.ChamferRatio(), p.ChamferCorners)
	fmt.Fprintf(&b, "|%s|%s", p.AnchorShape, p.ShapeInZone)
	for _, prim := range p.Primitives {
		b.WriteByte('|')
		b.WriteString(prim.ContentHash())
	}
	fmt.Fprintf(&b, "|%v|%v|%v|%v|%d|%v|%v|%v",
		p.SolderMaskMargin, p.SolderPasteMargin, p.SolderPasteMarginRatio,
		p.Clearance, p.ZoneConnection, p.ThermalBridgeWidth, p.ThermalBridgeAngle, p.ThermalGap)
	return b.String()
}

// =============================================================================
// Custom Pad Primitives
// =============================================================================

// padPrimitives writes the primitives block of a custom pad. Compound
// polygons expand into one gr_poly per outline; primitives group by
// kind and keep their given order within a group. Coordinates are
// relative to the pad anchor.
func (s *serializer) padPrimitives(w *sexp.Writer, primitives []footprint.Node) {
	groups := make(map[string][]footprint.Node)
	for _, prim := range primitives {
		if c, ok := prim.(*footprint.CompoundPolygon); ok {
			for _, outline := range c.Outlines {
				poly := footprint.NewPolygon(outline.Points, c.Layer)
				poly.Width = c.Width
				poly.Filled = c.Filled
				groups["Polygon"] = append(groups["Polygon"], poly)
			}
			continue
		}
		groups[prim.Kind()] = append(groups[prim.Kind()], prim)
	}
	kinds := make([]string, 0, len(groups))
	for kind := range groups {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	w.Open("primitives")
	for _, kind := range kinds {
		for _, prim := range groups[kind] {
			s.emitPrimitive(w, prim)
		}
	}
	w.Close()
}

func primitiveWidth(width float64) string {
	if width == 0 {
		return sexp.F(defaultWidthPadPolygon)
	}
	return sexp.F(width)
}

func (s *serializer) emitPrimitive(w *sexp.Writer, prim footprint.Node) {
	switch t := prim.(type) {
	case *footprint.Line:
		w.Line("gr_line",
			sexp.L("start", sexp.F(t.Start.X), sexp.F(t.Start.Y)),
			sexp.L("end", sexp.F(t.End.X), sexp.F(t.End.Y)),
			sexp.L("width", primitiveWidth(t.Width)))
	case *footprint.Arc:
		start, mid, end := t.Start, t.Arc.Mid(), t.Arc.End()
		if t.Angle < 0 {
			start, end = end, start
		}
		w.Line("gr_arc",
			sexp.L("start", sexp.F(start.X), sexp.F(start.Y)),
			sexp.L("mid", sexp.F(mid.X), sexp.F(mid.Y)),
			sexp.L("end", sexp.F(end.X), sexp.F(end.Y)),
			sexp.L("width", primitiveWidth(t.Width)))
	case *footprint.Circle:
		parts := []string{"gr_circle",
			sexp.L("center", sexp.F(t.Center.X), sexp.F(t.Center.Y)),
			sexp.L("end", sexp.F(t.Center.X+t.Radius), sexp.F(t.Center.Y)),
			sexp.L("width", primitiveWidth(t.Width))}
		if t.Filled {
			parts = append(parts, sexp.L("fill", "yes"))
		}
		w.Line(parts...)
	case *footprint.Rect:
		parts := []string{"gr_rect",
			sexp.L("start", sexp.F(t.Min.X), sexp.F(t.Min.Y)),
			sexp.L("end", sexp.F(t.Max.X), sexp.F(t.Max.Y)),
			sexp.L("width", primitiveWidth(t.Width))}
		if t.Filled {
			parts = append(parts, sexp.L("fill", "yes"))
		}
		w.Line(parts...)
	case *footprint.Polygon:
		w.Open("gr_poly")
		w.Open("pts")
		row := make([]string, 0, 4)
		for _, pt := range t.Points {
			row = append(row, sexp.L("xy", sexp.F(pt.X), sexp.F(pt.Y)))
			if len(row) == 4 {
				w.Items(row...)
				row = row[:0]
			}
		}
		if len(row) > 0 {
			w.Items(row...)
		}
		w.Close()
		w.Line("width", primitiveWidth(t.Width))
		if t.Filled {
			w.Line("fill", "yes")
		}
		w.Close()
	}
}

// =============================================================================
// Zones
// =============================================================================

func allowedToken(denied bool) string {
	if denied {
		return "not_allowed"
	}
	return "allowed"
}

func (s *serializer) emitZone(z *footprint.Zone) {
	s.w.Open("zone")
	s.w.Line("net", sexp.I(z.Net))
	s.w.Line("net_name", sexp.Str(z.NetName))

	layers := SortLayers(z.Layers)
	if len(layers) == 1 {
		s.w.Line("layer", sexp.Str(layers[0]))
	} else {
		parts := make([]string, 0, len(layers)+1)
		parts = append(parts, "layers")
		for _, l := range layers {
			parts = append(parts, sexp.Str(l))
		}
		s.w.Line(parts...)
	}
	s.w.Line("tstamp", z.TStamp().String())
	s.w.Line("name", sexp.Str(z.Name))
	s.w.Line("hatch", string(z.Hatch.Style), sexp.F(z.Hatch.Pitch))
	if z.Priority > 0 {
		s.w.Line("priority", sexp.I(z.Priority))
	}

	connect := []string{"connect_pads"}
	if typ := z.ConnectPads.Effective(); typ != footprint.PadConnectionThermalRelief {
		connect = append(connect, string(typ))
	}
	connect = append(connect, sexp.L("clearance", sexp.F(z.ConnectPads.Clearance)))
	s.w.Line(connect...)

	s.w.Line("filled_areas_thickness", sexp.B(z.FilledAreasThickness))
	s.w.Line("min_thickness", sexp.F(z.MinThickness))

	if k := z.Keepouts; k != nil {
		s.w.Line("keepout",
			sexp.L("tracks", allowedToken(k.Tracks)),
			sexp.L("vias", allowedToken(k.Vias)),
			sexp.L("copperpour", allowedToken(k.CopperPour)),
			sexp.L("pads", allowedToken(k.Pads)),
			sexp.L("footprints", allowedToken(k.Footprints)))
	}

	s.emitZoneFill(z.Fill)

	s.w.Open("polygon")
	s.emitPoints(z, z.Points, 1)
	s.w.Close()
	s.w.Close()
}

func (s *serializer) emitZoneFill(f *footprint.ZoneFill) {
	// An unfilled zone keeps the bare fill entry.
	if f == nil {
		s.w.Line("fill")
		return
	}
	s.w.Open("fill", "yes")
	if mode := f.EffectiveMode(); mode != footprint.FillModeSolid {
		s.w.Line("mode", string(mode))
	}
	s.w.Line("thermal_gap", sexp.F(f.ThermalGap))
	s.w.Line("thermal_bridge_width", sexp.F(f.ThermalBridgeWidth))
	if f.Smoothing != footprint.SmoothingNone {
		s.w.Line("smoothing", string(f.Smoothing), sexp.L("radius", sexp.F(f.SmoothingRadius)))
	}
	if f.IslandRemoval != footprint.IslandRemovalUnset {
		s.w.Line("island_removal_mode", sexp.I(f.IslandRemoval.FileValue()))
		if f.IslandRemoval == footprint.IslandRemovalMinimumArea {
			s.w.Line("island_area_min", sexp.F(f.IslandAreaMin))
		}
	}
	if f.HatchThickness != 0 {
		s.w.Line("hatch_thickness", sexp.F(f.HatchThickness))
	}
	if f.HatchGap != 0 {
		s.w.Line("hatch_gap", sexp.F(f.HatchGap))
	}
	if f.HatchOrientation != 0 {
		s.w.Line("hatch_orientation", sexp.F(f.HatchOrientation))
	}
	if f.HatchSmoothingLevel != "" {
		s.w.Line("hatch_smoothing_level", sexp.Str(string(f.HatchSmoothingLevel)))
	}
	if f.HatchSmoothingValue != 0 {
		s.w.Line("hatch_smoothing_value", sexp.F(f.HatchSmoothingValue))
	}
	if f.HatchBorderAlgorithm != "" {
		s.w.Line("hatch_border_algorithm", sexp.Str(string(f.HatchBorderAlgorithm)))
	}
	if f.HatchMinHoleArea != 0 {
		s.w.Line("hatch_min_hole_area", sexp.F(f.HatchMinHoleArea))
	}
	s.w.Close()
}

// =============================================================================
// Groups, Models
// =============================================================================

func (s *serializer) emitGroup(g *footprint.Group) {
	s.w.Open("group", sexp.Str(g.Name))
	s.w.Line("id", g.TStamp().String())
	s.w.Line(append([]string{"members"}, g.MemberIDs()...)...)
	s.w.Close()
}

func (s *serializer) emitModel(m *footprint.Model) {
	s.w.Open("model", sexp.Str(m.Path))
	s.w.Line("offset", sexp.L("xyz", sexp.F(m.Offset[0]), sexp.F(m.Offset[1]), sexp.F(m.Offset[2])))
	s.w.Line("scale", sexp.L("xyz", sexp.F(m.Scale[0]), sexp.F(m.Scale[1]), sexp.F(m.Scale[2])))
	s.w.Line("rotate", sexp.L("xyz", sexp.F(m.Rotate[0]), sexp.F(m.Rotate[1]), sexp.F(m.Rotate[2])))
	s.w.Close()
}
