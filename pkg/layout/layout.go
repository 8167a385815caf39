// Package layout places source tokens, spaces, and synthetic block comments
// onto lines so the rendered glyph pattern approximates a binary target grid.
//
// # Model
//
// The engine walks the target grid row by row. Each image row is solved by a
// dynamic program over (column, tokens-consumed, trailing-blob-kind) states;
// the reconstructed row is a mix of spaces, filler comments, and verbatim
// tokens. Tokens left over after the image band drain through a greedy
// overflow tail. Token order is never changed and token text is never edited.
//
// # Randomness
//
// Tie-breaking between equal-score layouts and the letters inside filler
// comments come from a single seeded stream. All width and token-preservation
// invariants hold for every seed; only the aesthetics vary.
package layout

import (
	"bytes"
	"math/rand/v2"

	"github.com/matzehuels/waifufy/pkg/art"
	"github.com/matzehuels/waifufy/pkg/density"
	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/lex"
)

const (
	// MinWidth is the smallest target width the CLI recommends. Narrower
	// grids still render but leave little room for real code.
	MinWidth = 80

	// Shoot is the slack past the target width: every line stays strictly
	// below W+Shoot.
	Shoot = 10

	// MinTokens is the preferred minimum number of tokens per image row.
	// The row selector relaxes it down to zero when a row cannot fit any.
	MinTokens = 4

	// MaxCommentLength caps a single filler comment, delimiters included.
	MaxCommentLength = 20

	// minCommentLength is the shortest possible block comment: "/**/".
	minCommentLength = 4
)

// Options configures an Engine.
type Options struct {
	// Seed seeds the tie-break and comment-filler stream. The zero value
	// is a valid, fixed seed; callers wanting run-to-run variation should
	// pass something fresh.
	Seed uint64

	// Map overrides the glyph density map. When nil, density.Default()
	// is used.
	Map *density.Map
}

// Engine renders one token sequence against one target grid. Not safe for
// concurrent use; the DP buffer is reused across rows.
type Engine struct {
	target art.Grid
	tokens []lex.Token
	dmap   density.Map
	rng    *rand.Rand

	wBound     int
	relaxation int32

	cells []cell
}

// New builds an Engine for the given target and token sequence.
func New(target art.Grid, tokens []lex.Token, opts Options) *Engine {
	dmap := density.Default()
	if opts.Map != nil {
		dmap = *opts.Map
	}
	return &Engine{
		target:     target,
		tokens:     tokens,
		dmap:       dmap,
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		wBound:     target.W + Shoot,
		relaxation: int32(target.W / 10),
	}
}

// Validate checks the engine precondition: every token must fit on a line.
// Returns an INVALID_PRECONDITION error giving the offending token's length
// otherwise.
func Validate(target art.Grid, tokens []lex.Token) error {
	wBound := target.W + Shoot
	for _, t := range tokens {
		if len(t) >= wBound {
			return errors.New(errors.ErrCodeInvalidPrecondition,
				"token of length %d does not fit within line bound %d; raise the target width", len(t), wBound)
		}
	}
	return nil
}

// Render produces the full output text: H image-band lines each of width in
// [W, W+Shoot), then overflow lines while tokens remain. Every line ends in
// '\n'.
func (e *Engine) Render() []byte {
	var out bytes.Buffer
	out.Grow((e.wBound + 1) * e.target.H)

	taken := 0
	for row := 0; row < e.target.H; row++ {
		line, consumed := e.solveRow(row, taken)
		out.Write(line)
		out.WriteByte('\n')
		taken += consumed
	}
	e.renderTail(&out, taken)
	return out.Bytes()
}

// wantInk reports the target density at (row, col); columns outside the grid
// count as empty.
func (e *Engine) wantInk(row, col int) bool {
	return e.target.Ink(row, col)
}

// colScore is 1 when placing byte c at (row, col) matches the target
// density, else 0.
func (e *Engine) colScore(c byte, row, col int) int32 {
	if e.dmap.InkByte(c) == e.wantInk(row, col) {
		return 1
	}
	return 0
}
