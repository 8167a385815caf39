// Package pipeline provides the core reshaping pipeline for waifufy.
//
// This package implements the complete art → lex → layout pipeline that the
// CLI drives. By centralizing this logic, the same behavior is available to
// any embedding program without duplicating caching or validation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Art: Parse the ASCII-art target, or convert a raster image into one
//  2. Lex: Strip comments from the source and tokenize it
//  3. Layout: Place tokens, spaces, and filler comments against the target
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Code: code,
//	    Art:  artText,
//	    Seed: 42,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.c", result.Output, 0644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waifufy/pkg/art"
	"github.com/matzehuels/waifufy/pkg/cache"
	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/layout"
	"github.com/matzehuels/waifufy/pkg/lex"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Embedders
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultImageWidth is the art width used when converting an image and
	// no width override is given.
	DefaultImageWidth = layout.MinWidth
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the reshaping pipeline.
type Options struct {
	// Inputs. Code is the source to reshape. Exactly one of Art (ASCII art
	// text) or Image (raster bytes) supplies the target; both empty means
	// an empty target.
	Code  []byte `json:"-"`
	Art   []byte `json:"-"`
	Image []byte `json:"-"`

	// Art options
	Width     int  `json:"width,omitempty"`  // target width override
	Height    int  `json:"height,omitempty"` // target height override
	Threshold int  `json:"threshold,omitempty"`
	Invert    bool `json:"invert,omitempty"`

	// Layout options
	Seed      uint64 `json:"seed,omitempty"`
	Randomize bool   `json:"randomize,omitempty"` // fresh seed, bypasses the render cache

	// Verify re-tokenizes the output and fails the run on any mismatch.
	Verify bool `json:"verify,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs.
	RunID string

	// Grid is the parsed target grid.
	Grid art.Grid

	// ArtText is the art actually used, after any image conversion.
	ArtText []byte

	// Tokens is the source token sequence.
	Tokens []lex.Token

	// Output is the reshaped source text.
	Output []byte

	// Seed is the seed the layout ran with.
	Seed uint64

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TokenCount int
	GridWidth  int
	GridHeight int
	OutputLen  int
	ArtTime    time.Duration
	LexTime    time.Duration
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ArtHit    bool // Whether the image conversion came from cache
	RenderHit bool // Whether the render came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Art) > 0 && len(o.Image) > 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "art and image targets are mutually exclusive")
	}
	if err := errors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height); err != nil {
		return err
	}
	if err := errors.ValidateThreshold(o.Threshold); err != nil {
		return err
	}

	if o.Seed == 0 && !o.Randomize {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// imageWidth returns the art width for image conversion.
func (o *Options) imageWidth() int {
	if o.Width > 0 {
		return o.Width
	}
	return DefaultImageWidth
}

// parseOptions returns the art parse overrides implied by the options.
func (o *Options) parseOptions() art.ParseOptions {
	var p art.ParseOptions
	if o.Width > 0 {
		w := o.Width
		p.Width = &w
	}
	if o.Height > 0 {
		h := o.Height
		p.Height = &h
	}
	return p
}

// artKeyOpts returns cache key options for image conversion.
func (o *Options) artKeyOpts() cache.ArtKeyOpts {
	return cache.ArtKeyOpts{
		Width:     o.imageWidth(),
		Height:    o.Height,
		Threshold: o.Threshold,
		Invert:    o.Invert,
	}
}

// renderKeyOpts returns cache key options for the seeded render.
func (o *Options) renderKeyOpts(grid art.Grid) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Seed:   o.Seed,
		Width:  grid.W,
		Height: grid.H,
	}
}
