package footprint

import (
	"fmt"
	"strings"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// RenderTree returns an indented dump of the tree below root, one node
// per line with generated children included. A cycle in the structure
// is reported instead of looping forever.
func RenderTree(root Node) (string, error) {
	if root == nil {
		return "", kfperrors.New(kfperrors.ErrCodeInvalidInput, "cannot render nil node")
	}
	var sb strings.Builder
	if err := renderNode(&sb, root, 0, map[Node]bool{}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderNode(sb *strings.Builder, n Node, depth int, seen map[Node]bool) error {
	if seen[n] {
		return kfperrors.New(kfperrors.ErrCodeRecursion, "tree cycles through a %s node", n.Kind())
	}
	seen[n] = true
	if depth > 0 {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("+")
	}
	sb.WriteString(Label(n))
	sb.WriteString("\n")
	for _, c := range n.AllChildren() {
		if err := renderNode(sb, c, depth+1, seen); err != nil {
			return err
		}
	}
	return nil
}

// Serialize flattens the tree into emission order: each node followed
// by its children, attached before generated, depth first. Sorting the
// result for output is the file writer's job.
func Serialize(root Node) []Node {
	out := []Node{root}
	for _, c := range root.AllChildren() {
		out = append(out, Serialize(c)...)
	}
	return out
}

// Label returns a one-line description of n, used by tree dumps and
// the DOT exporter.
func Label(n Node) string {
	switch t := n.(type) {
	case *Footprint:
		return fmt.Sprintf("Footprint %q", t.Name)
	case *Pad:
		return fmt.Sprintf("Pad %q %s %s at (%s)", t.Number, t.Type, t.Shape, fmtVec(t.At))
	case *Line:
		return fmt.Sprintf("Line (%s) -> (%s) on %s", fmtVec(t.Start), fmtVec(t.End), t.Layer)
	case *Arc:
		return fmt.Sprintf("Arc center (%s) sweep %s on %s", fmtVec(t.Center), fmtFloat(float64(t.Angle)), t.Layer)
	case *Circle:
		return fmt.Sprintf("Circle center (%s) r %s on %s", fmtVec(t.Center), fmtFloat(t.Radius), t.Layer)
	case *Rect:
		return fmt.Sprintf("Rect (%s) -> (%s) on %s", fmtVec(t.Min), fmtVec(t.Max), t.Layer)
	case *Polygon:
		return fmt.Sprintf("Polygon %d points on %s", len(t.Points), t.Layer)
	case *CompoundPolygon:
		return fmt.Sprintf("CompoundPolygon %d outlines on %s", len(t.Outlines), t.Layer)
	case *Text:
		return fmt.Sprintf("Text %q on %s", t.Content, t.Layer)
	case *Property:
		return fmt.Sprintf("Property %s=%q", t.Name, t.Value)
	case *Zone:
		return fmt.Sprintf("Zone %q on %s", t.Name, strings.Join(t.Layers, " "))
	case *Group:
		return fmt.Sprintf("Group %q with %d members", t.Name, len(t.Members))
	case *Model:
		return fmt.Sprintf("Model %q", t.Path)
	case *EmbeddedFonts:
		return fmt.Sprintf("EmbeddedFonts enabled=%t", t.Enabled)
	case *Rotation:
		return fmt.Sprintf("Rotation %s", fmtFloat(t.Degrees))
	case *Translation:
		return fmt.Sprintf("Translation (%s)", fmtVec(t.Offset))
	case *PadArray:
		return fmt.Sprintf("PadArray %d pads", t.Count)
	default:
		return n.Kind()
	}
}

func fmtFloat(v float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

func fmtVec(v geometry.Vec) string {
	return fmtFloat(v.X) + ", " + fmtFloat(v.Y)
}
