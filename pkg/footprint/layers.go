package footprint

import "strings"

// Board layer names used throughout the package.
const (
	LayerFCu      = "F.Cu"
	LayerBCu      = "B.Cu"
	LayerFMask    = "F.Mask"
	LayerBMask    = "B.Mask"
	LayerFPaste   = "F.Paste"
	LayerBPaste   = "B.Paste"
	LayerFSilkS   = "F.SilkS"
	LayerBSilkS   = "B.SilkS"
	LayerFFab     = "F.Fab"
	LayerBFab     = "B.Fab"
	LayerFCrtYd   = "F.CrtYd"
	LayerBCrtYd   = "B.CrtYd"
	LayerFAdhes   = "F.Adhes"
	LayerBAdhes   = "B.Adhes"
	LayerEdgeCuts = "Edge.Cuts"
	LayerMargin   = "Margin"
	LayerDwgsUser = "Dwgs.User"
	LayerCmtsUser = "Cmts.User"
	LayerEco1User = "Eco1.User"
	LayerEco2User = "Eco2.User"

	LayerAllCu    = "*.Cu"
	LayerAllMask  = "*.Mask"
	LayerAllPaste = "*.Paste"
	LayerAllSilkS = "*.SilkS"
)

// Standard pad layer sets.
var (
	LayersSMD          = []string{LayerFCu, LayerFPaste, LayerFMask}
	LayersSMDBack      = []string{LayerBCu, LayerBPaste, LayerBMask}
	LayersTHT          = []string{LayerAllCu, LayerAllMask}
	LayersNPTH         = []string{LayerAllCu, LayerAllMask}
	LayersConnectFront = []string{LayerFCu, LayerFMask}
	LayersConnectBack  = []string{LayerBCu, LayerBMask}
)

// FlipLayer mirrors a layer name to the opposite board side. Names
// without a side prefix are returned unchanged.
func FlipLayer(name string) string {
	switch {
	case strings.HasPrefix(name, "F."):
		return "B." + name[2:]
	case strings.HasPrefix(name, "B."):
		return "F." + name[2:]
	}
	return name
}

// IsBackLayer reports whether a layer sits on the back of the board.
func IsBackLayer(name string) bool {
	return strings.HasPrefix(name, "B.")
}
