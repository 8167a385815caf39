// Package pkg provides the core libraries for waifufy source reshaping.
//
// # Overview
//
// Waifufy reformats source code so that its glyph pattern on the page
// approximates a target picture, while keeping the token stream byte-for-byte
// identical. The pkg directory is organized by pipeline stage plus shared
// infrastructure:
//
//  1. [art] - Target handling (ASCII-art parsing, image conversion)
//  2. [lex] - Comment stripping and tokenization
//  3. [layout] - The reshaping engine (row shaping, filler synthesis)
//  4. [pipeline] - Orchestration (art → lex → layout → verify) with caching
//  5. [cache], [errors], [httputil], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through waifufy:
//
//	Image or ASCII-art target          Source code
//	         ↓                              ↓
//	    [art] package                  [lex] package
//	  (binary ink grid)              (token stream)
//	         ↓                              ↓
//	         └──────────→ [layout] ←────────┘
//	                 (reshaped output)
//	                        ↓
//	              [pipeline].Verify
//	        (token round-trip + width check)
//
// # Quick Start
//
// Run the full pipeline with caching:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/waifufy/pkg/cache"
//	    "github.com/matzehuels/waifufy/pkg/pipeline"
//	)
//
//	store, _ := cache.NewFileCache("/tmp/waifufy-cache")
//	runner := pipeline.NewRunner(store, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Code:   code,
//	    Art:    artText,
//	    Seed:   42,
//	    Verify: true,
//	})
//
// Or drive the stages directly:
//
//	grid := art.Parse(artText, art.ParseOptions{})
//	tokens := lex.Tokenize(lex.StripComments(code))
//	eng := layout.New(grid, tokens, layout.Options{Seed: 42})
//	output := eng.Render()
//
// # Main Packages
//
// ## Pipeline Stages
//
// [art] - Target handling. Parses ASCII-art text into a binary ink grid and
// converts raster images (PNG, JPEG, GIF) into art text via
// luminance thresholding with Otsu's method.
//
// [lex] - C-like lexing. Strips comments, splits source into an ordered token
// stream, and decides where whitespace is required between adjacent tokens.
//
// [layout] - The reshaping engine. Shapes each grid row with a
// dynamic-programming assignment of tokens to ink runs, synthesizing comment
// filler to darken cells no token reaches, then drains leftover tokens into a
// plain tail.
//
// [pipeline] - Orchestration used by every entry point. Validates options,
// runs the stages in order, caches art conversion and seeded renders, and
// verifies token preservation on request.
//
// ## Infrastructure
//
// [cache] - Content-addressed on-disk cache with TTL expiry, plus a null
// implementation for cache-off runs. Keys derive from input hashes so stale
// entries can never match.
//
// [errors] - Coded errors shared across packages. Codes map to user messages
// and process exit codes at the CLI boundary.
//
// [httputil] - Fetching of remote image targets with bounded retry.
//
// [observability] - Optional hooks for instrumenting pipeline stages and
// cache operations without coupling the libraries to a metrics backend.
//
// [density] - Glyph ink-density tables used when rating how well output
// approximates the target.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//
// [art]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/art
// [lex]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/lex
// [layout]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/observability
// [density]: https://pkg.go.dev/github.com/matzehuels/waifufy/pkg/density
package pkg
