// Package preview renders footprints to standalone SVG documents.
//
// The preview is development tooling for eyeballing generated parts,
// not a board renderer: pads, graphic shapes, zones and text are drawn
// flat in the layer colors of KiCad's default theme on its dark
// canvas. Element order is deterministic because the painter consumes
// the same sorted node list the serializer emits, so identical trees
// produce byte-identical documents.
//
// Usage:
//
//	svg := preview.SVG(fp, preview.WithScale(40))
//	os.WriteFile("part.svg", svg, 0o644)
package preview

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/kicadfp/pkg/fonts"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
	"github.com/matzehuels/kicadfp/pkg/kicadmod"
)

const (
	// DefaultScale is the canvas resolution in pixels per millimetre.
	DefaultScale = 40.0

	// DefaultMargin is the canvas border around the footprint's
	// bounding box, in millimetres.
	DefaultMargin = 1.0
)

type Option func(*renderer)

// WithScale sets the canvas resolution in pixels per millimetre.
func WithScale(pxPerMM float64) Option {
	return func(r *renderer) {
		if pxPerMM > 0 {
			r.scale = pxPerMM
		}
	}
}

// WithMargin sets the canvas border in millimetres.
func WithMargin(mm float64) Option {
	return func(r *renderer) {
		if mm >= 0 {
			r.margin = mm
		}
	}
}

type renderer struct {
	scale  float64
	margin float64
}

func newRenderer(opts ...Option) renderer {
	r := renderer{scale: DefaultScale, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SVG renders the footprint to an SVG document. Coordinates inside the
// document stay in millimetres; the scale only sets the pixel size of
// the canvas.
func SVG(fp *footprint.Footprint, opts ...Option) []byte {
	r := newRenderer(opts...)

	nodes := kicadmod.SortNodes(footprint.Serialize(fp))
	slices.SortStableFunc(nodes, func(a, b footprint.Node) int {
		return cmp.Compare(paintRank(a), paintRank(b))
	})

	box := canvasBBox(nodes).Inflate(r.margin)
	size := box.Size()

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f" width="%.0f" height="%.0f">`+"\n",
		box.Min.X, box.Min.Y, size.X, size.Y, size.X*r.scale, size.Y*r.scale)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", esc(fp.Name))
	fmt.Fprintf(&buf, `  <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"/>`+"\n",
		box.Min.X, box.Min.Y, size.X, size.Y, canvasColor)

	for _, n := range nodes {
		paint(&buf, n)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvasBBox unions the extents of every drawable node. An empty tree
// still gets a small canvas around the origin.
func canvasBBox(nodes []footprint.Node) geometry.BBox {
	box := geometry.NewBBox()
	for _, n := range nodes {
		if b, ok := nodeBBox(n); ok {
			box = box.Union(b)
		}
	}
	if box.IsEmpty() {
		return geometry.BBoxOf(geometry.V(-1, -1), geometry.V(1, 1))
	}
	return box
}

func nodeBBox(n footprint.Node) (geometry.BBox, bool) {
	switch t := n.(type) {
	case *footprint.Pad:
		return mapBox(t, t.BBox()), true
	case footprint.Drawable:
		return mapBox(t, t.Shape().BBox()), true
	case *footprint.Text:
		if t.Hide {
			return geometry.BBox{}, false
		}
		return mapBox(t, labelBox(t.Content, t.At, t.Size)), true
	case *footprint.Property:
		if t.Hide {
			return geometry.BBox{}, false
		}
		return mapBox(t, labelBox(t.Value, t.At, t.Size)), true
	case *footprint.Zone:
		return mapBox(t, geometry.BBoxOf(t.Points...)), true
	}
	return geometry.BBox{}, false
}

// mapBox maps a local bounding box through the node's transform
// wrappers. Rotations keep the box axis-aligned by boxing the mapped
// corners.
func mapBox(n footprint.Node, b geometry.BBox) geometry.BBox {
	return geometry.BBoxOf(
		n.RealPosition(b.Min),
		n.RealPosition(geometry.V(b.Max.X, b.Min.Y)),
		n.RealPosition(b.Max),
		n.RealPosition(geometry.V(b.Min.X, b.Max.Y)),
	)
}

func labelBox(content string, at, size geometry.Vec) geometry.BBox {
	w := fonts.Width(content, size.X)
	h := fonts.Height(size.Y)
	return geometry.RectAt(at, geometry.V(w, h)).BBox()
}

// =============================================================================
// Painters
// =============================================================================

func paint(buf *bytes.Buffer, n footprint.Node) {
	switch t := n.(type) {
	case *footprint.Pad:
		paintPad(buf, t)
	case footprint.Drawable:
		writeShape(buf, "  ", t.Shape(), styleFor(t.Attrs()), t.RealPosition)
	case *footprint.Text:
		paintLabel(buf, t, t.Content, t.At, t.Rotation, t.Layer, t.Size, t.Hide)
	case *footprint.Property:
		paintLabel(buf, t, t.Value, t.At, t.Rotation, t.Layer, t.Size, t.Hide)
	case *footprint.Zone:
		paintZone(buf, t)
	}
}

func paintPad(buf *bytes.Buffer, p *footprint.Pad) {
	at := p.RealPosition(p.At)
	rot := p.RealRotation(p.Rotation)

	// Pads draw in a local frame so rotation and the drill offset stay
	// simple. SVG rotations run clockwise on screen, ours the other
	// way.
	tr := fmt.Sprintf("translate(%.3f %.3f)", at.X, at.Y)
	if rot != 0 {
		tr += fmt.Sprintf(" rotate(%.3f)", -rot)
	}
	fmt.Fprintf(buf, "  <g transform=%q>\n", tr)

	fill := padColor(p)
	half := p.Size.Scale(0.5)
	switch p.EffectiveShape() {
	case footprint.PadShapeCircle:
		fmt.Fprintf(buf, `    <circle cx="0" cy="0" r="%.3f" fill="%s"/>`+"\n", half.X, fill)
	case footprint.PadShapeOval:
		fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" rx="%.3f" fill="%s"/>`+"\n",
			-half.X, -half.Y, p.Size.X, p.Size.Y, math.Min(half.X, half.Y), fill)
	case footprint.PadShapeRoundRect:
		fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" rx="%.3f" fill="%s"/>`+"\n",
			-half.X, -half.Y, p.Size.X, p.Size.Y, p.RoundRadiusMM(), fill)
	case footprint.PadShapeCustom:
		paintCustomPad(buf, p, fill)
	default:
		// Plain rect; trapezoid delta is not modeled here.
		fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"/>`+"\n",
			-half.X, -half.Y, p.Size.X, p.Size.Y, fill)
	}

	if p.Drill != nil {
		paintDrill(buf, p.Drill)
	}
	if p.Number != "" {
		fs := 0.5 * math.Min(p.Size.X, p.Size.Y)
		fmt.Fprintf(buf, `    <text x="0" y="0" font-size="%.3f" font-family=%q fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			fs, fonts.Stack, numberColor, esc(p.Number))
	}
	buf.WriteString("  </g>\n")
}

// paintCustomPad draws the anchor and the attached primitives in the
// pad's local frame.
func paintCustomPad(buf *bytes.Buffer, p *footprint.Pad, fill string) {
	half := p.Size.Scale(0.5)
	if p.AnchorShape == footprint.PadShapeCircle {
		fmt.Fprintf(buf, `    <circle cx="0" cy="0" r="%.3f" fill="%s"/>`+"\n", half.X, fill)
	} else {
		fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"/>`+"\n",
			-half.X, -half.Y, p.Size.X, p.Size.Y, fill)
	}
	for _, prim := range p.Primitives {
		d, ok := prim.(footprint.Drawable)
		if !ok {
			continue
		}
		st := styleFor(d.Attrs())
		if st.fill != "" {
			st.fill = fill
		} else {
			st.stroke = fill
		}
		writeShape(buf, "    ", d.Shape(), st, localFrame)
	}
}

func paintDrill(buf *bytes.Buffer, d *footprint.Drill) {
	half := d.Size.Scale(0.5)
	if d.IsOval() {
		fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" rx="%.3f" fill="%s"/>`+"\n",
			d.Offset.X-half.X, d.Offset.Y-half.Y, d.Size.X, d.Size.Y, math.Min(half.X, half.Y), drillColor)
		return
	}
	fmt.Fprintf(buf, `    <circle cx="%.3f" cy="%.3f" r="%.3f" fill="%s"/>`+"\n",
		d.Offset.X, d.Offset.Y, half.X, drillColor)
}

func paintLabel(buf *bytes.Buffer, n footprint.Node, content string, at geometry.Vec, rotation float64, layer string, size geometry.Vec, hide bool) {
	if hide || content == "" {
		return
	}
	pos := n.RealPosition(at)
	extra := ""
	if a := n.RealRotation(rotation); a != 0 {
		extra = fmt.Sprintf(` transform="rotate(%.3f %.3f %.3f)"`, -a, pos.X, pos.Y)
	}
	fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="%.3f" font-family=%q fill="%s" text-anchor="middle" dominant-baseline="central"%s>%s</text>`+"\n",
		pos.X, pos.Y, size.Y, fonts.Stack, layerColor(layer), extra, esc(content))
}

func paintZone(buf *bytes.Buffer, z *footprint.Zone) {
	layer := footprint.LayerAllCu
	if len(z.Layers) > 0 {
		layer = z.Layers[0]
	}
	color := layerColor(layer)

	st := paintStyle{fill: color, opacity: 0.4}
	if z.Keepouts != nil {
		// Rule areas show as dashed outlines, like KiCad's hatch border.
		w := 0.1
		st = paintStyle{stroke: color, width: w, dash: dashPattern(footprint.StyleDash, w)}
	}
	writeRings(buf, "  ", [][]geometry.Vec{z.Points}, st, z.RealPosition)
}

// =============================================================================
// Shape Writers
// =============================================================================

// localFrame is the identity mapping used for pad primitives, which
// already live in the enclosing group's coordinates.
func localFrame(p geometry.Vec) geometry.Vec { return p }

type paintStyle struct {
	fill    string
	opacity float64
	stroke  string
	width   float64
	dash    string
}

func styleFor(attrs footprint.DrawAttrs) paintStyle {
	color := layerColor(attrs.Layer)
	if attrs.Filled {
		return paintStyle{fill: color}
	}
	w := attrs.Width
	if w == 0 {
		w = kicadmod.LayerDefaultWidth(attrs.Layer)
	}
	return paintStyle{stroke: color, width: w, dash: dashPattern(attrs.Style, w)}
}

func (s paintStyle) attrs() string {
	if s.fill != "" {
		out := fmt.Sprintf(` fill="%s"`, s.fill)
		if s.opacity > 0 {
			out += fmt.Sprintf(` fill-opacity="%.2f"`, s.opacity)
		}
		return out
	}
	out := fmt.Sprintf(` fill="none" stroke="%s" stroke-width="%.3f" stroke-linecap="round"`, s.stroke, s.width)
	if s.dash != "" {
		out += fmt.Sprintf(` stroke-dasharray="%s"`, s.dash)
	}
	return out
}

// dashPattern translates a stroke style into an SVG dash array scaled
// by the line width. Solid strokes return the empty string.
func dashPattern(style footprint.LineStyle, w float64) string {
	dash := fmt.Sprintf("%.3f", 4*w)
	dot := fmt.Sprintf("%.3f", w)
	gap := fmt.Sprintf("%.3f", 2*w)
	switch style {
	case footprint.StyleDash:
		return dash + " " + gap
	case footprint.StyleDot:
		return dot + " " + gap
	case footprint.StyleDashDot:
		return strings.Join([]string{dash, gap, dot, gap}, " ")
	case footprint.StyleDashDotDot:
		return strings.Join([]string{dash, gap, dot, gap, dot, gap}, " ")
	}
	return ""
}

// writeShape emits one SVG element for a geometry shape, mapping every
// point through the at transform.
func writeShape(buf *bytes.Buffer, indent string, s geometry.Shape, st paintStyle, at func(geometry.Vec) geometry.Vec) {
	switch t := s.(type) {
	case geometry.Line:
		a, b := at(t.Start), at(t.End)
		fmt.Fprintf(buf, `%s<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f"%s/>`+"\n",
			indent, a.X, a.Y, b.X, b.Y, st.attrs())
	case geometry.Arc:
		writeArc(buf, indent, t, st, at)
	case geometry.Circle:
		c := at(t.Center)
		fmt.Fprintf(buf, `%s<circle cx="%.3f" cy="%.3f" r="%.3f"%s/>`+"\n",
			indent, c.X, c.Y, t.Radius, st.attrs())
	case geometry.Rect:
		corners := []geometry.Vec{t.Min, {X: t.Max.X, Y: t.Min.Y}, t.Max, {X: t.Min.X, Y: t.Max.Y}}
		writeRings(buf, indent, [][]geometry.Vec{corners}, st, at)
	case geometry.Polygon:
		writeRings(buf, indent, [][]geometry.Vec{t.Points}, st, at)
	case geometry.CompoundPolygon:
		rings := make([][]geometry.Vec, len(t.Outlines))
		for i, o := range t.Outlines {
			rings[i] = o.Points
		}
		writeRings(buf, indent, rings, st, at)
	}
}

func writeArc(buf *bytes.Buffer, indent string, a geometry.Arc, st paintStyle, at func(geometry.Vec) geometry.Vec) {
	c := at(a.Center)
	if a.IsFullCircle() {
		fmt.Fprintf(buf, `%s<circle cx="%.3f" cy="%.3f" r="%.3f"%s/>`+"\n",
			indent, c.X, c.Y, a.Radius(), st.attrs())
		return
	}
	start, end := at(a.Start), at(a.End())
	large, sweep := 0, 1
	if math.Abs(float64(a.Angle)) > 180 {
		large = 1
	}
	// Positive sweeps turn counterclockwise on screen; SVG's sweep
	// flag 1 turns clockwise.
	if a.Angle > 0 {
		sweep = 0
	}
	fmt.Fprintf(buf, `%s<path d="M %.3f %.3f A %.3f %.3f 0 %d %d %.3f %.3f"%s/>`+"\n",
		indent, start.X, start.Y, a.Radius(), a.Radius(), large, sweep, end.X, end.Y, st.attrs())
}

func writeRings(buf *bytes.Buffer, indent string, rings [][]geometry.Vec, st paintStyle, at func(geometry.Vec) geometry.Vec) {
	var d strings.Builder
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		if d.Len() > 0 {
			d.WriteString(" ")
		}
		for i, p := range ring {
			m := at(p)
			if i == 0 {
				fmt.Fprintf(&d, "M %.3f %.3f", m.X, m.Y)
			} else {
				fmt.Fprintf(&d, " L %.3f %.3f", m.X, m.Y)
			}
		}
		d.WriteString(" Z")
	}
	rule := ""
	if len(rings) > 1 && st.fill != "" {
		rule = ` fill-rule="evenodd"`
	}
	fmt.Fprintf(buf, `%s<path d="%s"%s%s/>`+"\n", indent, d.String(), rule, st.attrs())
}

func esc(s string) string {
	return html.EscapeString(s)
}
