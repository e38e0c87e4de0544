package kicadmod

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// =============================================================================
// Node Emission Order
// =============================================================================

// Emission rank per node class. Lower ranks serialize first, so a
// footprint file always reads shapes, texts, pads, zones, groups,
// embedded fonts and models in that order.
const (
	priorityShape        = 100
	priorityText         = 200
	priorityPad          = 300
	priorityZone         = 400
	priorityGroup        = 600
	priorityEmbeddedFont = 1000
	priorityModel        = 1100
)

// Shape tiebreak within one layer.
const (
	shapeOrderLine    = 0
	shapeOrderRect    = 1
	shapeOrderArc     = 2
	shapeOrderCircle  = 3
	shapeOrderPolygon = 4
)

// =============================================================================
// Layer Order
// =============================================================================

// layerPriorityMap approximates the layer order of the board editor's
// own file writer. Wildcard sets come first, then single layers by
// their internal layer ids.
var layerPriorityMap = map[string]int{
	"*.Cu":    -1000,
	"F&B.Cu":  -999,
	"*.Adhes": -998,
	"*.Paste": -997,
	"*.SilkS": -996,
	"*.Mask":  -995,
	"*.CrtYd": -994,
	"*.Fab":   -993,

	"F.Cu":      0,
	"B.Cu":      2,
	"F.Mask":    1,
	"B.Mask":    3,
	"F.SilkS":   5,
	"B.SilkS":   7,
	"F.Adhes":   9,
	"B.Adhes":   11,
	"F.Paste":   13,
	"B.Paste":   15,
	"Dwgs.User": 17,
	"Cmts.User": 19,
	"Eco1.User": 21,
	"Eco2.User": 23,
	"Edge.Cuts": 25,
	"Margin":    27,
	"B.CrtYd":   29,
	"F.CrtYd":   31,
	"B.Fab":     33,
	"F.Fab":     35,
}

// unknownLayerPriority ranks layers outside the table after every
// known layer. Ties break on the layer name.
const unknownLayerPriority = 10000

var (
	innerLayerPattern = regexp.MustCompile(`^In(\d+)\.Cu$`)
	userLayerPattern  = regexp.MustCompile(`^User\.(\d)$`)
)

// LayerPriority returns the serialization rank of a layer name. Inner
// copper layers continue the even number sequence, user layers follow
// the fixed table.
func LayerPriority(layer string) int {
	if p, ok := layerPriorityMap[layer]; ok {
		return p
	}
	if m := innerLayerPattern.FindStringSubmatch(layer); m != nil {
		n, _ := strconv.Atoi(m[1])
		return (n + 1) * 2
	}
	if m := userLayerPattern.FindStringSubmatch(layer); m != nil {
		n, _ := strconv.Atoi(m[1])
		return 38 + n
	}
	return unknownLayerPriority
}

// SortLayers returns a copy of layers in serialization order.
func SortLayers(layers []string) []string {
	out := append([]string(nil), layers...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := LayerPriority(out[i]), LayerPriority(out[j])
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

// =============================================================================
// Layer Default Widths
// =============================================================================

// layerDefaultWidth holds the stroke width substituted when a graphic
// node leaves its width at zero.
var layerDefaultWidth = map[string]float64{
	"F.SilkS": 0.12,
	"B.SilkS": 0.12,
	"F.Fab":   0.10,
	"B.Fab":   0.10,
	"F.CrtYd": 0.05,
	"B.CrtYd": 0.05,
}

const (
	defaultWidth           = 0.15
	defaultWidthPadPolygon = 0.0
)

// LayerDefaultWidth returns the stroke width drawn on a layer when the
// node does not set one.
func LayerDefaultWidth(layer string) float64 {
	if w, ok := layerDefaultWidth[layer]; ok {
		return w
	}
	return defaultWidth
}

// =============================================================================
// Sort Keys
// =============================================================================

// keyPart is one element of a node sort key: a number, a string or a
// nested key. Nested keys compare element-wise with shorter prefixes
// first, which keeps pad numbers like "A" ahead of "A1".
type keyPart struct {
	kind keyKind
	num  float64
	text string
	sub  []keyPart
}

type keyKind int

const (
	keyNum keyKind = iota
	keyText
	keyList
)

func num(v float64) keyPart { return keyPart{kind: keyNum, num: v} }

func txt(s string) keyPart { return keyPart{kind: keyText, text: s} }

func list(parts ...keyPart) keyPart { return keyPart{kind: keyList, sub: parts} }

func comparePart(a, b keyPart) int {
	if a.kind != b.kind {
		return int(a.kind) - int(b.kind)
	}
	switch a.kind {
	case keyNum:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case keyText:
		return strings.Compare(a.text, b.text)
	default:
		return compareKey(a.sub, b.sub)
	}
}

// compareKey orders two keys element-wise, shorter prefixes first.
func compareKey(a, b []keyPart) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := comparePart(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// layerPart ranks a layer inside a sort key, breaking priority ties on
// the name.
func layerPart(layer string) keyPart {
	return list(num(float64(LayerPriority(layer))), txt(layer))
}

func vecParts(parts []keyPart, x, y float64) []keyPart {
	return append(parts, num(round6(x)), num(round6(y)))
}

// =============================================================================
// Pad Order
// =============================================================================

var padNumberToken = regexp.MustCompile(`\d+|\D+`)

// padNumberKey splits a pad number into digit and non-digit runs so
// "A2" orders after "A1" and before "A10". Digit runs compare
// numerically and ahead of text runs; the empty number orders first.
func padNumberKey(number string) keyPart {
	tokens := padNumberToken.FindAllString(number, -1)
	parts := make([]keyPart, len(tokens))
	for i, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil {
			parts[i] = list(num(1), num(float64(n)))
		} else {
			parts[i] = list(num(2), txt(tok))
		}
	}
	return list(parts...)
}

// padShapeOrder ranks pad shapes for pads that tie on number, position
// and size.
var padShapeOrder = map[footprint.PadShape]int{
	footprint.PadShapeCircle:    0,
	footprint.PadShapeRect:      1,
	footprint.PadShapeOval:      2,
	footprint.PadShapeTrapezoid: 3,
	footprint.PadShapeRoundRect: 4,
	footprint.PadShapeCustom:    5,
}

func padShapeKey(shape footprint.PadShape) float64 {
	if p, ok := padShapeOrder[shape]; ok {
		return float64(p)
	}
	return 1000
}

// =============================================================================
// Node Keys
// =============================================================================

// sortKey returns the emission key of a flattened node, or ok false
// for node kinds the file writer handles outside the sorted body.
func sortKey(n footprint.Node) ([]keyPart, bool) {
	switch t := n.(type) {
	case *footprint.Line:
		start := t.RealPosition(t.Start)
		end := t.RealPosition(t.End)
		key := []keyPart{num(priorityShape), layerPart(t.Layer), num(shapeOrderLine)}
		key = vecParts(key, start.X, start.Y)
		key = vecParts(key, end.X, end.Y)
		return key, true

	case *footprint.Arc:
		start := t.RealPosition(t.Start)
		end := t.RealPosition(t.Arc.End())
		center := t.RealPosition(t.Center)
		// Negative sweeps serialize with swapped endpoints; the key
		// follows the serialized form.
		if t.Angle < 0 {
			start, end = end, start
		}
		key := []keyPart{num(priorityShape), layerPart(t.Layer), num(shapeOrderArc)}
		key = vecParts(key, start.X, start.Y)
		key = vecParts(key, end.X, end.Y)
		key = vecParts(key, center.X, center.Y)
		return key, true

	case *footprint.Circle:
		center := t.RealPosition(t.Center)
		key := []keyPart{num(priorityShape), layerPart(t.Layer), num(shapeOrderCircle)}
		key = vecParts(key, center.X, center.Y)
		key = append(key, num(round6(t.Radius)))
		return key, true

	case *footprint.Rect:
		lo, hi := realCorners(t)
		key := []keyPart{num(priorityShape), layerPart(t.Layer), num(shapeOrderRect)}
		key = vecParts(key, lo.X, lo.Y)
		key = vecParts(key, hi.X, hi.Y)
		return key, true

	case *footprint.Polygon:
		key := []keyPart{
			num(priorityShape), layerPart(t.Layer), num(shapeOrderPolygon),
			num(float64(len(t.Points))),
		}
		for _, pt := range t.Points {
			rp := t.RealPosition(pt)
			key = append(key, list(num(round6(rp.X)), num(round6(rp.Y))))
		}
		return key, true

	case *footprint.CompoundPolygon:
		total := 0
		var coords []keyPart
		for _, outline := range t.Outlines {
			total += len(outline.Points)
			for _, pt := range outline.Points {
				rp := t.RealPosition(pt)
				coords = vecParts(coords, rp.X, rp.Y)
			}
		}
		key := []keyPart{
			num(priorityShape), layerPart(t.Layer), num(shapeOrderPolygon),
			num(float64(total)), list(coords...),
		}
		return key, true

	case *footprint.Text:
		return []keyPart{num(priorityText), layerPart(t.Layer)}, true

	case *footprint.Property:
		return []keyPart{num(priorityText), layerPart(t.Layer)}, true

	case *footprint.Pad:
		at := t.RealPosition(t.At)
		key := []keyPart{num(priorityPad), padNumberKey(t.Number)}
		key = vecParts(key, at.X, at.Y)
		key = vecParts(key, t.Size.X, t.Size.Y)
		key = append(key, num(padShapeKey(t.Shape)))
		return key, true

	case *footprint.Zone:
		layerKeys := make([]keyPart, len(t.Layers))
		for i, layer := range t.Layers {
			layerKeys[i] = layerPart(layer)
		}
		key := []keyPart{
			num(priorityZone), num(float64(t.Priority)), list(layerKeys...),
			num(float64(len(t.Points))),
		}
		pointKeys := make([]keyPart, len(t.Points))
		for i, pt := range t.Points {
			rp := t.RealPosition(pt)
			pointKeys[i] = list(num(round6(rp.X)), num(round6(rp.Y)))
		}
		key = append(key, list(pointKeys...))
		return key, true

	case *footprint.Group:
		return []keyPart{
			num(priorityGroup), txt(t.TStamp().String()),
			num(float64(len(t.Members))),
		}, true

	case *footprint.EmbeddedFonts:
		return []keyPart{num(priorityEmbeddedFont)}, true

	case *footprint.Model:
		return []keyPart{num(priorityModel)}, true
	}
	return nil, false
}

// realCorners maps a rectangle through its transform wrappers and
// normalizes the corner order.
func realCorners(r *footprint.Rect) (lo, hi geometry.Vec) {
	a := r.RealPosition(r.Min)
	b := r.RealPosition(r.Max)
	return a.MinParts(b), a.MaxParts(b)
}

// SortNodes orders flattened nodes for emission. The sort is stable,
// so nodes with equal keys keep their tree order.
func SortNodes(nodes []footprint.Node) []footprint.Node {
	type keyed struct {
		node footprint.Node
		key  []keyPart
	}
	keyedNodes := make([]keyed, 0, len(nodes))
	for _, n := range nodes {
		key, ok := sortKey(n)
		if !ok {
			continue
		}
		keyedNodes = append(keyedNodes, keyed{node: n, key: key})
	}
	sort.SliceStable(keyedNodes, func(i, j int) bool {
		return compareKey(keyedNodes[i].key, keyedNodes[j].key) < 0
	})
	out := make([]footprint.Node, len(keyedNodes))
	for i, kn := range keyedNodes {
		out[i] = kn.node
	}
	return out
}
