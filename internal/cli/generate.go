package cli

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kicadfp/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	family        string   // series family, empty means detect from file name
	parts         []string // part name filter, empty means all parts
	out           string   // output directory
	formats       []string // output formats: "mod", "svg"
	scale         float64  // preview pixels per millimetre
	margin        float64  // preview margin in millimetres
	seed          string   // identifier seed override (UUID)
	noCache       bool     // disable artifact caching
	refresh       bool     // rebuild even when cached
	skipUnchanged bool     // keep output files whose content did not change
	tui           bool     // interactive progress display
}

// generateCommand creates the generate command for batch footprint
// generation.
func (c *CLI) generateCommand() *cobra.Command {
	var formatsStr string
	opts := generateOpts{
		out:    ".",
		scale:  pipeline.DefaultScale,
		margin: pipeline.DefaultMargin,
	}

	cmd := &cobra.Command{
		Use:   "generate [series.yaml|dir]",
		Short: "Generate footprint files from series definitions",
		Long: `Generate KiCad footprint files from YAML series definitions.

The input is a series file or a directory of them. Every part in a
file becomes a .kicad_mod footprint; pass --format svg to also write
preview images. Results are cached locally so unchanged parts are not
rebuilt.

Examples:
  kicadfp generate examples/series/chip_passives.yaml
  kicadfp generate chip.yaml --part R_0402_1005Metric -o lib.pretty
  kicadfp generate examples/series/ --format mod,svg --tui`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			c.Config.applyGenerate(cmd.Flags(), &opts)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateSeed(opts.seed); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.family, "family", "", "series family (default: detect from the file name)")
	cmd.Flags().StringSliceVarP(&opts.parts, "part", "p", nil, "generate only the named parts")
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): mod (default), svg (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "preview pixels per millimetre")
	cmd.Flags().Float64Var(&opts.margin, "margin", opts.margin, "preview margin in millimetres")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "identifier seed override (UUID)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild parts even when cached")
	cmd.Flags().BoolVar(&opts.skipUnchanged, "skip-unchanged", false, "leave files alone when content is unchanged")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show interactive progress")

	return cmd
}

// pipelineOptions builds pipeline options for one series file.
func (o *generateOpts) pipelineOptions(input string, logger *log.Logger) pipeline.Options {
	return pipeline.Options{
		Input:         input,
		Family:        o.family,
		Parts:         o.parts,
		Seed:          o.seed,
		Refresh:       o.refresh,
		Formats:       o.formats,
		Scale:         o.scale,
		Margin:        o.margin,
		OutputDir:     o.out,
		SkipUnchanged: o.skipUnchanged,
		Logger:        logger,
	}
}

// runGenerate resolves the input into series files and runs the
// pipeline over each of them.
func (c *CLI) runGenerate(ctx context.Context, input string, opts *generateOpts) error {
	inputs, err := resolveInputs(input)
	if err != nil {
		return err
	}
	if len(inputs) > 1 && len(opts.parts) > 0 {
		return fmt.Errorf("--part needs a single series file, got %d files", len(inputs))
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if opts.tui {
		return c.runGenerateTUI(ctx, runner, inputs, opts)
	}

	var results []*pipeline.Result
	for _, in := range inputs {
		result, err := c.generateOne(ctx, runner, in, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	parts, nodes, hits := tally(results)
	printSuccess("Generated %d parts", parts)
	for _, result := range results {
		for _, part := range result.Parts {
			for _, format := range opts.formats {
				if path, ok := part.Paths[format]; ok {
					printFile(path)
				}
			}
		}
	}
	printStats(parts, nodes, parts > 0 && hits == parts)
	printNewline()
	printNextStep("Verify", fmt.Sprintf("%s verify %s", appName, filepath.Join(opts.out, "*.kicad_mod")))
	return nil
}

// generateOne runs the pipeline for a single series file behind a
// spinner.
func (c *CLI) generateOne(ctx context.Context, runner *pipeline.Runner, input string, opts *generateOpts) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts.pipelineOptions(input, c.Logger))
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed on %s", filepath.Base(input)))
		return nil, err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return result, nil
}

// tally sums part, node and cache-hit counts across results.
func tally(results []*pipeline.Result) (parts, nodes, hits int) {
	for _, r := range results {
		parts += r.Stats.PartCount
		nodes += r.Stats.NodeCount
		hits += r.CacheInfo.ModHits
	}
	return parts, nodes, hits
}

// resolveInputs expands a directory argument into the series files it
// contains, sorted by name. A file argument is returned as is.
func resolveInputs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	var matches []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		found, err := filepath.Glob(filepath.Join(input, pattern))
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no series files (*.yaml) in %s", input)
	}
	slices.Sort(matches)
	return matches, nil
}

// =============================================================================
// Interactive Progress
// =============================================================================

// runGenerateTUI drives per-part generation under a bubbletea progress
// display. Quitting the display cancels the run.
func (c *CLI) runGenerateTUI(ctx context.Context, runner *pipeline.Runner, inputs []string, opts *generateOpts) error {
	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newGenerateModel())
	go func() {
		p.Send(generateDoneMsg{err: c.driveGenerate(genCtx, p, runner, inputs, opts)})
	}()

	finalModel, err := p.Run()
	cancel()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(generateModel)
	if !ok {
		return nil
	}
	if fm.err != nil {
		return fm.err
	}
	if !fm.done {
		printWarning("Cancelled")
		return context.Canceled
	}

	parts, nodes, hits := fm.tally()
	printSuccess("Generated %d parts", parts)
	printStats(parts, nodes, parts > 0 && hits == parts)
	return nil
}

// driveGenerate loads each series file and generates its parts one at
// a time, reporting progress to the bubbletea program.
func (c *CLI) driveGenerate(ctx context.Context, p *tea.Program, runner *pipeline.Runner, inputs []string, opts *generateOpts) error {
	for _, input := range inputs {
		popts := opts.pipelineOptions(input, c.Logger)
		family, specs, err := pipeline.Load(popts)
		if err != nil {
			return err
		}
		p.Send(seriesLoadedMsg{family: family.Name, parts: len(specs)})

		for _, spec := range specs {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.Send(partStartMsg{name: spec.Name})

			start := time.Now()
			artifacts, info, err := runner.GeneratePartWithInfo(ctx, family, spec, popts)
			if err != nil {
				p.Send(partDoneMsg{name: spec.Name, err: err})
				return fmt.Errorf("generate %s: %w", spec.Name, err)
			}
			if err := writeArtifacts(opts.out, spec.Name, artifacts, opts.skipUnchanged); err != nil {
				p.Send(partDoneMsg{name: spec.Name, err: err})
				return fmt.Errorf("write %s: %w", spec.Name, err)
			}
			p.Send(partDoneMsg{
				name:     spec.Name,
				cached:   info.ModHit,
				nodes:    info.Nodes,
				duration: time.Since(start),
			})
		}
	}
	return nil
}

// writeArtifacts persists one part's artifacts into dir.
func writeArtifacts(dir, part string, artifacts map[string][]byte, skipUnchanged bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, format := range slices.Sorted(maps.Keys(artifacts)) {
		path := filepath.Join(dir, pipeline.FileName(part, format))
		if skipUnchanged {
			if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, artifacts[format]) {
				continue
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return err
		}
	}
	return nil
}
