// Package pipeline provides the core generation pipeline for kicadfp.
//
// This package implements the complete load → generate → write pipeline
// that can be used by CLI, server, and library consumers. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Resolve the package family for a series file and read its
//     part definitions
//  2. Generate: Build each part's footprint tree and render it to the
//     requested formats
//  3. Write: Persist artifacts to the output directory, leaving files
//     whose bytes did not change untouched
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:     "chip_resistor.yaml",
//	    Formats:   []string{"mod", "svg"},
//	    OutputDir: "out",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, part := range result.Parts {
//	    fmt.Println(part.Paths["mod"])
//	}
//
// Run individual stages:
//
//	// Load only
//	family, specs, err := pipeline.Load(opts)
//
//	// Build a single part
//	fp, err := runner.BuildPart(ctx, family, spec, opts)
//
//	// Render a single part with caching
//	artifacts, err := runner.GeneratePart(ctx, family, spec, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/kicadfp/pkg/cache"
	"github.com/matzehuels/kicadfp/pkg/preview"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the preview resolution in pixels per millimetre.
	DefaultScale = preview.DefaultScale

	// DefaultMargin is the preview border around the footprint's
	// bounding box, in millimetres.
	DefaultMargin = preview.DefaultMargin
)

// Format constants for output formats.
const (
	FormatMod = "mod"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatMod: true,
	FormatSVG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	Input  string   `json:"input"`            // Series file path
	Family string   `json:"family,omitempty"` // Explicit family name (default: detect from filename)
	Parts  []string `json:"parts,omitempty"`  // Restrict generation to these parts

	// Generate options
	Seed    string `json:"seed,omitempty"` // UUID replacing the name-derived identifier seed
	Refresh bool   `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Margin  float64  `json:"margin,omitempty"`

	// Write options
	OutputDir     string `json:"output_dir,omitempty"`     // Empty keeps artifacts in memory
	SkipUnchanged bool   `json:"skip_unchanged,omitempty"` // Leave files whose bytes match untouched

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Family is the resolved family name.
	Family string

	// Parts are the per-part outcomes, in series file order.
	Parts []PartResult

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache hits across the run.
	CacheInfo CacheInfo
}

// PartResult is the outcome for one part.
type PartResult struct {
	// Name is the part and footprint name.
	Name string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// ContentHash is the content hash of the rendered footprint file.
	ContentHash string

	// Nodes is the number of nodes in the built tree, zero when the
	// rendered file came from cache.
	Nodes int

	// CacheHit reports whether the rendered footprint file came from
	// cache.
	CacheHit bool

	// Paths maps formats to the files the write stage produced.
	Paths map[string]string

	// Unchanged lists formats whose file on disk already held the
	// rendered bytes and was left untouched.
	Unchanged []string
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PartCount    int
	NodeCount    int // nodes in freshly built trees; cached parts contribute zero
	LoadTime     time.Duration
	GenerateTime time.Duration
	WriteTime    time.Duration
}

// CacheInfo tracks cache hits per artifact class.
type CacheInfo struct {
	ModHits     int // parts whose rendered footprint file came from cache
	PreviewHits int // parts whose preview image came from cache
}

// PartInfo reports how one part's artifacts were produced.
type PartInfo struct {
	// ContentHash is the content hash of the rendered footprint file.
	ContentHash string

	// Nodes is the node count of the built tree, zero when the rendered
	// file came from cache.
	Nodes int

	// ModHit reports whether the rendered footprint file came from cache.
	ModHit bool

	// PreviewHit reports whether the preview image came from cache.
	PreviewHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: mod, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSeed checks that a seed override parses as a UUID. The empty
// string is valid and means the name-derived seed stays in effect.
func ValidateSeed(seed string) error {
	if seed == "" {
		return nil
	}
	if _, err := uuid.Parse(seed); err != nil {
		return fmt.Errorf("invalid seed: %q (must be a UUID)", seed)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatMod}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateSeed(o.Seed)
}

// WantsSVG returns true if a preview image was requested.
func (o *Options) WantsSVG() bool {
	return slices.Contains(o.Formats, FormatSVG)
}

// PreviewKeyOpts returns cache key options for preview rendering.
func (o *Options) PreviewKeyOpts() cache.PreviewKeyOpts {
	return cache.PreviewKeyOpts{
		Format: FormatSVG,
		Scale:  o.Scale,
		Margin: o.Margin,
	}
}

// FileName returns the artifact file name for a part in the given format.
func FileName(part, format string) string {
	if format == FormatSVG {
		return part + ".svg"
	}
	return part + ".kicad_mod"
}
