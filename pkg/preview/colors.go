package preview

import (
	"strings"

	"github.com/matzehuels/kicadfp/pkg/footprint"
)

// canvasColor is the board background, matching KiCad's default theme.
const canvasColor = "#001023"

// drillColor fills pad holes so they read as openings in the copper.
const drillColor = "#14191F"

// numberColor is used for pad number labels.
const numberColor = "#E8E8E8"

// layerColors follows the KiCad 6 default color theme.
var layerColors = map[string]string{
	footprint.LayerFCu:      "#C83434",
	footprint.LayerBCu:      "#4D7FC4",
	footprint.LayerFSilkS:   "#F2EDA1",
	footprint.LayerBSilkS:   "#E8B2A7",
	footprint.LayerFMask:    "#D864FF",
	footprint.LayerBMask:    "#02FFEE",
	footprint.LayerFPaste:   "#B4A09A",
	footprint.LayerBPaste:   "#00C2C2",
	footprint.LayerFCrtYd:   "#FF26E2",
	footprint.LayerBCrtYd:   "#26E9FF",
	footprint.LayerFFab:     "#AFAFAF",
	footprint.LayerBFab:     "#585D84",
	footprint.LayerFAdhes:   "#840084",
	footprint.LayerBAdhes:   "#000084",
	footprint.LayerEdgeCuts: "#D0D2CD",
	footprint.LayerDwgsUser: "#C2C2C2",
	footprint.LayerCmtsUser: "#5994DC",
}

// layerColor resolves the draw color for a layer, falling back to the
// front-side color of the layer kind for wildcard and inner layers.
func layerColor(layer string) string {
	if c, ok := layerColors[layer]; ok {
		return c
	}
	switch {
	case strings.HasSuffix(layer, ".Cu"):
		return layerColors[footprint.LayerFCu]
	case strings.HasSuffix(layer, ".SilkS"):
		return layerColors[footprint.LayerFSilkS]
	case strings.HasSuffix(layer, ".Mask"):
		return layerColors[footprint.LayerFMask]
	case strings.HasSuffix(layer, ".Paste"):
		return layerColors[footprint.LayerFPaste]
	case strings.HasSuffix(layer, ".CrtYd"):
		return layerColors[footprint.LayerFCrtYd]
	case strings.HasSuffix(layer, ".Fab"):
		return layerColors[footprint.LayerFFab]
	}
	return "#888888"
}

// padColor picks the copper color for a pad from its layer stack.
func padColor(p *footprint.Pad) string {
	if p.Type == footprint.PadTypeNPTH {
		return "#4A4A4A"
	}
	onFront, onBack := false, false
	for _, l := range p.Layers {
		switch {
		case l == footprint.LayerAllCu || l == footprint.LayerFCu:
			onFront = true
		case l == footprint.LayerBCu:
			onBack = true
		}
	}
	if onBack && !onFront {
		return layerColors[footprint.LayerBCu]
	}
	return layerColors[footprint.LayerFCu]
}

// layerRank orders layers bottom to top for painting. Copper sits
// under everything, the courtyard outline on top.
func layerRank(layer string) int {
	switch {
	case strings.HasSuffix(layer, ".Cu"):
		return 1
	case strings.HasSuffix(layer, ".Mask"),
		strings.HasSuffix(layer, ".Paste"),
		strings.HasSuffix(layer, ".Adhes"):
		return 2
	case strings.HasSuffix(layer, ".Fab"):
		return 3
	case strings.HasSuffix(layer, ".SilkS"):
		return 4
	case strings.HasSuffix(layer, ".CrtYd"):
		return 5
	}
	return 6
}

// paintRank orders flattened nodes for painting. Zones go under the
// pads, everything else follows its layer. Nodes the painter does not
// draw sort first and are skipped.
func paintRank(n footprint.Node) int {
	switch t := n.(type) {
	case *footprint.Zone:
		return 0
	case *footprint.Pad:
		return 1
	case footprint.Drawable:
		return layerRank(t.Attrs().Layer)
	case *footprint.Text:
		return layerRank(t.Layer)
	case *footprint.Property:
		return layerRank(t.Layer)
	}
	return -1
}
