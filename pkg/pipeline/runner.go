package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/waifufy/pkg/art"
	"github.com/matzehuels/waifufy/pkg/cache"
	"github.com/matzehuels/waifufy/pkg/layout"
	"github.com/matzehuels/waifufy/pkg/lex"
	"github.com/matzehuels/waifufy/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
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

// Execute runs the complete art → lex → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	if opts.Randomize && opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	result := &Result{
		RunID: uuid.NewString(),
		Seed:  opts.Seed,
	}
	logger := r.Logger.With("run", result.RunID)
	observability.Pipeline().OnRunStart(ctx, result.RunID, opts.Seed)

	// Stage 1: Art
	artStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageArt)
	artText, artHit, err := r.PrepareArtWithCacheInfo(ctx, opts)
	observability.Pipeline().OnStageComplete(ctx, observability.StageArt, time.Since(artStart), err)
	if err != nil {
		return nil, err
	}
	result.ArtText = artText
	result.Grid = art.Parse(artText, opts.parseOptions())
	result.Stats.ArtTime = time.Since(artStart)
	result.Stats.GridWidth = result.Grid.W
	result.Stats.GridHeight = result.Grid.H
	result.CacheInfo.ArtHit = artHit

	logger.Info("parsed target",
		"width", result.Grid.W,
		"height", result.Grid.H,
		"duration", result.Stats.ArtTime)

	// Stage 2: Lex
	lexStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageLex)
	result.Tokens = lex.Tokenize(lex.StripComments(opts.Code))
	result.Stats.LexTime = time.Since(lexStart)
	result.Stats.TokenCount = len(result.Tokens)
	observability.Pipeline().OnStageComplete(ctx, observability.StageLex, result.Stats.LexTime, nil)

	logger.Info("tokenized source",
		"tokens", len(result.Tokens),
		"duration", result.Stats.LexTime)

	if err := layout.Validate(result.Grid, result.Tokens); err != nil {
		return nil, err
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageLayout)
	output, renderHit, err := r.RenderWithCacheInfo(ctx, result.Grid, result.Tokens, artText, opts)
	observability.Pipeline().OnStageComplete(ctx, observability.StageLayout, time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Output = output
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.OutputLen = len(output)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered output",
		"bytes", len(output),
		"seed", opts.Seed,
		"duration", result.Stats.LayoutTime)

	if opts.Verify {
		verifyStart := time.Now()
		observability.Pipeline().OnStageStart(ctx, observability.StageVerify)
		err := Verify(opts.Code, output, result.Grid)
		observability.Pipeline().OnStageComplete(ctx, observability.StageVerify, time.Since(verifyStart), err)
		if err != nil {
			return nil, err
		}
		logger.Info("verified output")
	}

	observability.Pipeline().OnRunComplete(ctx, result.RunID, result.Stats.TokenCount, result.Stats.OutputLen, nil)
	return result, nil
}

// PrepareArtWithCacheInfo resolves the art target and reports a cache hit.
// Text art passes through untouched; image targets are converted, with the
// conversion result cached by image hash and conversion options.
func (r *Runner) PrepareArtWithCacheInfo(ctx context.Context, opts Options) ([]byte, bool, error) {
	if len(opts.Image) == 0 {
		return opts.Art, false, nil
	}

	cacheKey := r.Keyer.ArtKey(cache.Hash(opts.Image), opts.artKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "art")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "art")
	}

	img, err := art.DecodeImage(opts.Image)
	if err != nil {
		return nil, false, err
	}
	converted, err := art.FromImage(img, art.ImageOptions{
		Width:     opts.imageWidth(),
		Height:    opts.Height,
		Threshold: opts.Threshold,
		Invert:    opts.Invert,
	})
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, converted, cache.TTLArt); err == nil {
		observability.Cache().OnCacheSet(ctx, "art", len(converted))
	}
	return converted, false, nil
}

// PrepareArt is a convenience wrapper that discards the cache hit info.
func (r *Runner) PrepareArt(ctx context.Context, opts Options) ([]byte, error) {
	text, _, err := r.PrepareArtWithCacheInfo(ctx, opts)
	return text, err
}

// RenderWithCacheInfo runs the layout engine and reports a cache hit. Seeded
// renders are deterministic, so the output is cached by the content hashes of
// code and art plus the seed. Randomized runs bypass the cache entirely.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, grid art.Grid, tokens []lex.Token, artText []byte, opts Options) ([]byte, bool, error) {
	if opts.Randomize {
		eng := layout.New(grid, tokens, layout.Options{Seed: opts.Seed})
		return eng.Render(), false, nil
	}

	cacheKey := r.Keyer.RenderKey(cache.Hash(opts.Code), cache.Hash(artText), opts.renderKeyOpts(grid))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	eng := layout.New(grid, tokens, layout.Options{Seed: opts.Seed})
	output := eng.Render()

	if err := r.Cache.Set(ctx, cacheKey, output, cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(output))
	}
	return output, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, grid art.Grid, tokens []lex.Token, artText []byte, opts Options) ([]byte, error) {
	output, _, err := r.RenderWithCacheInfo(ctx, grid, tokens, artText, opts)
	return output, err
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
