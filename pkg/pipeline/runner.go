package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kicadfp/pkg/cache"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/kicadmod"
	"github.com/matzehuels/kicadfp/pkg/observability"
	"github.com/matzehuels/kicadfp/pkg/preview"
	"github.com/matzehuels/kicadfp/pkg/series"
)

// Cache key types reported through the cache hooks.
const (
	keyTypePart    = "part"
	keyTypePreview = "preview"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → generate → write pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	family, specs, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Family = family.Name
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PartCount = len(specs)

	r.Logger.Info("loaded series",
		"family", family.Name,
		"parts", len(specs),
		"duration", result.Stats.LoadTime)

	// Stage 2: Generate
	generateStart := time.Now()
	for _, spec := range specs {
		artifacts, info, err := r.GeneratePartWithInfo(ctx, family, spec, opts)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", spec.Name, err)
		}
		if info.ModHit {
			result.CacheInfo.ModHits++
		}
		if info.PreviewHit {
			result.CacheInfo.PreviewHits++
		}
		result.Stats.NodeCount += info.Nodes
		result.Parts = append(result.Parts, PartResult{
			Name:        spec.Name,
			Artifacts:   artifacts,
			ContentHash: info.ContentHash,
			Nodes:       info.Nodes,
			CacheHit:    info.ModHit,
		})
	}
	result.Stats.GenerateTime = time.Since(generateStart)

	r.Logger.Info("generated parts",
		"parts", len(result.Parts),
		"cache_hits", result.CacheInfo.ModHits,
		"duration", result.Stats.GenerateTime)

	// Stage 3: Write
	if opts.OutputDir != "" {
		writeStart := time.Now()
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
		written := 0
		for i := range result.Parts {
			n, err := r.writePart(ctx, &result.Parts[i], opts)
			if err != nil {
				return nil, fmt.Errorf("write %s: %w", result.Parts[i].Name, err)
			}
			written += n
		}
		result.Stats.WriteTime = time.Since(writeStart)

		r.Logger.Info("wrote artifacts",
			"dir", opts.OutputDir,
			"files", written,
			"duration", result.Stats.WriteTime)
	}

	return result, nil
}

// GeneratePartWithInfo builds and renders one part with caching and
// reports how each artifact was produced.
//
// The rendered footprint file is cached under the part's spec hash, so
// an unchanged definition skips both build and render. The preview is
// cached under the content hash of the rendered file, which survives
// spec reformatting that does not change the result.
func (r *Runner) GeneratePartWithInfo(ctx context.Context, family *series.Family, spec series.PartSpec, opts Options) (map[string][]byte, PartInfo, error) {
	info := PartInfo{}
	if err := opts.ValidateForRender(); err != nil {
		return nil, info, err
	}
	r.applyLogger(&opts)

	canonical, err := spec.Canonical()
	if err != nil {
		return nil, info, err
	}
	modKey := r.Keyer.PartKey(family.Name, spec.Name, cache.Hash(canonical))

	// Try cache first (unless refresh requested)
	var modData []byte
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, modKey); err == nil && hit {
			modData = data
			info.ModHit = true
			observability.Cache().OnCacheHit(ctx, keyTypePart)
		} else {
			observability.Cache().OnCacheMiss(ctx, keyTypePart)
		}
	}

	var fp *footprint.Footprint
	if modData == nil {
		fp, err = r.BuildPart(ctx, family, spec, opts)
		if err != nil {
			return nil, info, err
		}
		info.Nodes = len(footprint.Serialize(fp))

		modData, err = kicadmod.Render(fp)
		if err != nil {
			return nil, info, err
		}
		_ = r.Cache.Set(ctx, modKey, modData, cache.TTLPart)
		observability.Cache().OnCacheSet(ctx, keyTypePart, len(modData))
	}
	info.ContentHash = cache.Hash(modData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatMod:
			artifacts[FormatMod] = modData

		case FormatSVG:
			previewKey := r.Keyer.PreviewKey(info.ContentHash, opts.PreviewKeyOpts())
			if !opts.Refresh {
				if data, hit, err := r.Cache.Get(ctx, previewKey); err == nil && hit {
					artifacts[FormatSVG] = data
					info.PreviewHit = true
					observability.Cache().OnCacheHit(ctx, keyTypePreview)
					continue
				}
				observability.Cache().OnCacheMiss(ctx, keyTypePreview)
			}

			// A cached footprint file skips the build, so the tree may
			// not exist yet when the preview misses.
			if fp == nil {
				fp, err = r.BuildPart(ctx, family, spec, opts)
				if err != nil {
					return nil, info, err
				}
			}
			data := preview.SVG(fp, preview.WithScale(opts.Scale), preview.WithMargin(opts.Margin))
			artifacts[FormatSVG] = data
			_ = r.Cache.Set(ctx, previewKey, data, cache.TTLPreview)
			observability.Cache().OnCacheSet(ctx, keyTypePreview, len(data))
		}
	}

	return artifacts, info, nil
}

// GeneratePart is a convenience wrapper that calls GeneratePartWithInfo and discards the provenance info.
func (r *Runner) GeneratePart(ctx context.Context, family *series.Family, spec series.PartSpec, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.GeneratePartWithInfo(ctx, family, spec, opts)
	return artifacts, err
}

// BuildPart builds one part's footprint tree and reports the build
// through the generation hooks.
func (r *Runner) BuildPart(ctx context.Context, family *series.Family, spec series.PartSpec, opts Options) (*footprint.Footprint, error) {
	observability.Generate().OnBuildStart(ctx, family.Name, spec.Name)
	start := time.Now()

	fp, err := BuildPart(family, spec, opts)

	nodes := 0
	if err == nil {
		nodes = len(footprint.Serialize(fp))
	}
	observability.Generate().OnBuildComplete(ctx, family.Name, spec.Name, nodes, time.Since(start), err)
	return fp, err
}

// writePart persists one part's artifacts and returns the number of
// files written. With SkipUnchanged set, a file whose bytes already
// match is recorded as unchanged and left untouched.
func (r *Runner) writePart(ctx context.Context, part *PartResult, opts Options) (int, error) {
	part.Paths = make(map[string]string, len(part.Artifacts))
	written := 0
	for _, format := range opts.Formats {
		data, ok := part.Artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(opts.OutputDir, FileName(part.Name, format))
		part.Paths[format] = path

		if opts.SkipUnchanged {
			if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, data) {
				part.Unchanged = append(part.Unchanged, format)
				continue
			}
		}

		start := time.Now()
		err := os.WriteFile(path, data, 0o644)
		observability.Generate().OnWriteComplete(ctx, path, len(data), time.Since(start), err)
		if err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
