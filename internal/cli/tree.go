package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/geometry"
	"github.com/matzehuels/kicadfp/pkg/pipeline"
	"github.com/matzehuels/kicadfp/pkg/treeviz"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	family   string // series family, empty means detect from file name
	part     string // part to show, empty means first part in the file
	seed     string // identifier seed override (UUID)
	dot      bool   // print Graphviz DOT instead of indented text
	detailed bool   // include node identifiers in DOT labels
	render   string // render the tree to this .svg or .png file
}

// treeCommand creates the tree command for inspecting node trees.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [series.yaml]",
		Short: "Print the node tree behind a part",
		Long: `Print the node tree a part's footprint is built from.

Without arguments a built-in demo part is shown. With a series file,
the first part is used unless --part names one. The default output is
an indented text dump; --dot prints Graphviz DOT instead, and --render
draws the tree to an SVG or PNG file.

Examples:
  kicadfp tree
  kicadfp tree chip.yaml --part R_0402_1005Metric
  kicadfp tree chip.yaml --dot
  kicadfp tree chip.yaml --render tree.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if err := pipeline.ValidateSeed(opts.seed); err != nil {
				return err
			}
			return c.runTree(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.part, "part", "p", "", "part name (default: first part in the file)")
	cmd.Flags().StringVar(&opts.family, "family", "", "series family (default: detect from the file name)")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "identifier seed override (UUID)")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print Graphviz DOT instead of text")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node identifiers in DOT labels")
	cmd.Flags().StringVar(&opts.render, "render", "", "render the tree to an .svg or .png file")

	return cmd
}

// runTree builds the requested footprint tree and prints or renders it.
func (c *CLI) runTree(ctx context.Context, input string, opts *treeOpts) error {
	logger := loggerFromContext(ctx)

	fp, err := treeFootprint(input, opts)
	if err != nil {
		return err
	}
	logger.Debug("built tree", "part", fp.Name, "nodes", len(footprint.Serialize(fp)))

	if opts.render != "" {
		return renderTreeFile(fp, opts)
	}
	if opts.dot {
		fmt.Print(treeviz.ToDOT(fp, treeviz.Options{Detailed: opts.detailed}))
		return nil
	}

	text, err := footprint.RenderTree(fp)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// treeFootprint builds the footprint to inspect: the named part of a
// series file, or the demo part when no input is given.
func treeFootprint(input string, opts *treeOpts) (*footprint.Footprint, error) {
	if input == "" {
		return demoFootprint()
	}

	popts := pipeline.Options{Input: input, Family: opts.family, Seed: opts.seed}
	if opts.part != "" {
		popts.Parts = []string{opts.part}
	}
	family, specs, err := pipeline.Load(popts)
	if err != nil {
		return nil, err
	}
	return pipeline.BuildPart(family, specs[0], popts)
}

// renderTreeFile draws the tree to the file named by --render, picking
// the format from the extension.
func renderTreeFile(fp *footprint.Footprint, opts *treeOpts) error {
	dot := treeviz.ToDOT(fp, treeviz.Options{Detailed: opts.detailed})

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(opts.render)) {
	case ".svg":
		data, err = treeviz.RenderSVG(dot)
	case ".png":
		data, err = treeviz.RenderPNG(dot)
	default:
		return fmt.Errorf("unsupported render format %q (use .svg or .png)", filepath.Ext(opts.render))
	}
	if err != nil {
		return fmt.Errorf("render tree: %w", err)
	}

	if err := os.WriteFile(opts.render, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.render, err)
	}
	printSuccess("Rendered tree for %s", fp.Name)
	printFile(opts.render)
	return nil
}

// demoFootprint builds a small two-pad chip part so the tree commands
// work without a series file.
func demoFootprint() (*footprint.Footprint, error) {
	fp, err := footprint.New("Demo_Chip_0603", footprint.TypeSMD)
	if err != nil {
		return nil, err
	}
	fp.Description = "Demo 0603 chip footprint"
	fp.Tags = []string{"demo", "chip"}

	proto, err := footprint.NewPad(footprint.Pad{
		Type:        footprint.PadTypeSMD,
		Shape:       footprint.PadShapeRoundRect,
		Size:        geometry.V(0.9, 0.95),
		RoundRadius: footprint.DefaultRoundRadius,
		Layers:      footprint.LayersSMD,
	})
	if err != nil {
		return nil, err
	}
	pads, err := footprint.NewPadArray(footprint.PadArray{
		Prototype: proto,
		Start:     geometry.V(-0.775, 0),
		Pitch:     geometry.V(1.55, 0),
		Count:     2,
	})
	if err != nil {
		return nil, err
	}

	body := geometry.BBox{Min: geometry.V(-0.8, -0.4), Max: geometry.V(0.8, 0.4)}
	outline := footprint.RectLine(body.Min, body.Max, geometry.Vec{},
		footprint.DrawAttrs{Layer: footprint.LayerFFab})
	courtyard := footprint.RectLine(geometry.V(-1.48, -0.73), geometry.V(1.48, 0.73), geometry.Vec{},
		footprint.DrawAttrs{Layer: footprint.LayerFCrtYd})
	ref := footprint.NewReference(geometry.V(0, -1.43))
	val := footprint.NewValue(fp.Name, geometry.V(0, 1.43))

	if err := fp.Extend(pads, outline, courtyard, ref, val); err != nil {
		return nil, err
	}
	return fp, nil
}
