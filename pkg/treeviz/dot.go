// Package treeviz exports footprint node trees as Graphviz diagrams.
//
// The indented dump from [footprint.RenderTree] works on a terminal;
// treeviz draws the same structure as a picture. Convert a tree to DOT,
// then render it in process:
//
//	dot := treeviz.ToDOT(fp, treeviz.Options{})
//	svg, err := treeviz.RenderSVG(dot)
//
// Generated children (pad array expansions and similar) are drawn with
// dashed outlines to separate them from nodes attached by hand.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/kicadfp/pkg/footprint"
)

// Options configures DOT generation.
type Options struct {
	// Detailed appends each node's identifier to its label.
	Detailed bool
}

// ToDOT converts a node tree to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG] or [RenderPNG], or saved and
// processed with external Graphviz tools.
func ToDOT(root footprint.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph footprint {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	w := &walker{buf: &buf, opts: opts, ids: map[footprint.Node]string{}}
	w.node(root, false)

	buf.WriteString("}\n")
	return buf.String()
}

type walker struct {
	buf  *bytes.Buffer
	opts Options
	ids  map[footprint.Node]string
	next int
}

// node emits n and its subtree, returning n's DOT identifier. A node
// already emitted is referenced again instead of walked again, so a
// malformed tree cannot loop the exporter.
func (w *walker) node(n footprint.Node, virtual bool) string {
	if id, ok := w.ids[n]; ok {
		return id
	}
	id := "n" + strconv.Itoa(w.next)
	w.next++
	w.ids[n] = id

	fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(w.attrs(n, virtual), ", "))
	for _, c := range n.Children() {
		cid := w.node(c, false)
		fmt.Fprintf(w.buf, "  %s -> %s;\n", id, cid)
	}
	for _, c := range n.VirtualChildren() {
		cid := w.node(c, true)
		fmt.Fprintf(w.buf, "  %s -> %s [style=dashed];\n", id, cid)
	}
	return id
}

func (w *walker) attrs(n footprint.Node, virtual bool) []string {
	label := footprint.Label(n)
	if w.opts.Detailed {
		label += "\n" + n.TStamp().String()
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if virtual {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	svg, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz's built-in
// rasterizer.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the document scales
// to its container instead of carrying Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
