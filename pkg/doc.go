// Package pkg provides the core libraries for kicadfp footprint generation.
//
// # Overview
//
// kicadfp builds KiCad footprint libraries from parameterized part
// definitions. A footprint is modeled as a tree of nodes (pads, graphics,
// text, zones); the tree is serialized into the s-expression .kicad_mod
// format that KiCad reads. The pkg directory is organized into four main
// areas:
//
//  1. [footprint] + [geometry] - Domain model (node tree, shapes, transforms)
//  2. [sexp] + [kicadmod] - File format (s-expressions, serialization, checks)
//  3. [series] + [pipeline] - Generation (part definitions, batch orchestration)
//  4. [preview] + [treeviz] - Dev tooling (SVG previews, tree diagrams)
//
// # Architecture
//
// The typical data flow through kicadfp:
//
//	YAML series definition
//	         ↓
//	    [series] package (decode parameters, build part)
//	         ↓
//	    [footprint] package (node tree: pads, outlines, text)
//	         ↓
//	    [kicadmod] package (sort, format, serialize)
//	         ↓
//	    .kicad_mod / SVG output
//
// # Quick Start
//
// Build a footprint by hand and write it out:
//
//	import (
//	    "github.com/matzehuels/kicadfp/pkg/footprint"
//	    "github.com/matzehuels/kicadfp/pkg/geometry"
//	    "github.com/matzehuels/kicadfp/pkg/kicadmod"
//	)
//
//	// 1. Create the root node
//	fp, _ := footprint.New("R_0402_1005Metric", footprint.TypeSMD)
//
//	// 2. Add pads and graphics
//	pad, _ := footprint.NewPad(footprint.Pad{
//	    Number: "1", Type: footprint.PadTypeSMD, Shape: footprint.PadShapeRoundRect,
//	    At: geometry.V(-0.465, 0), Size: geometry.V(0.59, 0.64),
//	    RoundRadius: footprint.DefaultRoundRadius, Layers: footprint.LayersSMD,
//	})
//	_ = fp.Append(pad)
//
//	// 3. Serialize
//	_ = kicadmod.WriteFile(fp, "R_0402_1005Metric.kicad_mod")
//
// Or generate a whole series through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Input:     "chip_resistor.yaml",
//	    Formats:   []string{pipeline.FormatMod, pipeline.FormatSVG},
//	    OutputDir: "lib.pretty",
//	})
//
// # Main Packages
//
// ## Domain Model
//
// [footprint] - The node tree: footprint root, pads, lines, arcs, circles,
// rects, polygons, text, zones, groups, 3D models, transform wrappers and
// generated pad arrays. Nodes validate at construction and carry stable
// derived identifiers.
//
// [geometry] - 2D primitives (vectors, bounding boxes, lines, arcs,
// circles, polygons) with the cutting and inflation operations silkscreen
// and courtyard generation need.
//
// ## File Format
//
// [sexp] - KiCad-flavored s-expression reading and writing: lexer, parser,
// lookup helpers and a writer with KiCad's number formatting.
//
// [kicadmod] - Turns a footprint tree into a deterministic .kicad_mod file:
// priority ordering, layer-default stroke widths, rendering and the
// structural verifier behind the verify command.
//
// ## Generation
//
// [series] - Package families (chip, dip) that turn YAML part definitions
// into complete footprints with pads, outlines, silkscreen, courtyard and
// text fields.
//
// [pipeline] - Load → generate → write orchestration with caching, used by
// both the CLI and the preview server.
//
// [cache] - Content-addressed artifact cache with file-backed and null
// implementations plus key derivation.
//
// ## Dev Tooling
//
// [preview] - Renders a footprint tree into a layer-colored SVG preview.
//
// [treeviz] - Exports node trees as Graphviz diagrams (DOT, SVG, PNG).
//
// [fonts] - Typography constants shared by preview text rendering.
//
// ## Support
//
// [errors] - Coded errors and field-level validation collections used
// across the library.
//
// [observability] - Optional hooks for generation, cache and server
// events.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/footprint/...  # Specific package
//	go test -run Example         # Examples only
//
// [footprint]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/footprint
// [geometry]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/geometry
// [sexp]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/sexp
// [kicadmod]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/kicadmod
// [series]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/series
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/cache
// [preview]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/preview
// [treeviz]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/treeviz
// [fonts]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/fonts
// [errors]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/kicadfp/pkg/buildinfo
package pkg
