// Package art turns ASCII-art text into the binary density grid the layout
// engine targets, and converts raster images into such art.
//
// The parser is deliberately forgiving: invalid UTF-8 is skipped, non-ASCII
// code points count as ink, and short rows are padded with empty cells. It
// never returns an error.
package art

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/waifufy/pkg/density"
)

// fallbackWidth is used when the art has no rows at all and no width
// override was given, so downstream code still has a usable line width.
const fallbackWidth = 80

// Grid is a parsed art target: an H x W matrix of binary densities.
// Constructed by Parse or FromImage, immutable afterwards.
type Grid struct {
	W     int
	H     int
	Cells [][]float64 // row-major, H rows of W values in {0, 1}
}

// ParseOptions adjusts how art text is interpreted.
type ParseOptions struct {
	// Width forces the grid width. When nil, the width of the longest row
	// (in code points) is used.
	Width *int

	// Height forces the grid height, truncating or padding with empty rows.
	// When nil, the number of input rows is used.
	Height *int

	// Map overrides the density map. When nil, density.Default() is used.
	Map *density.Map
}

// Parse decodes art text into a Grid.
//
// Rows are split on '\n'. When the text ends in a newline and neither
// dimension override is set, the resulting trailing empty row is dropped so
// the grid height equals the number of visible rows. Each row is decoded as
// UTF-8; invalid byte sequences are skipped. ASCII code points take their
// density from the map, everything else counts as ink. Short rows are padded
// with empty cells.
func Parse(text []byte, opts ParseOptions) Grid {
	dmap := density.Default()
	if opts.Map != nil {
		dmap = *opts.Map
	}

	lines := splitRows(text)
	if opts.Width == nil && opts.Height == nil &&
		len(lines) > 0 && len(text) > 0 && text[len(text)-1] == '\n' {
		lines = lines[:len(lines)-1]
	}

	h := len(lines)
	if opts.Height != nil {
		h = *opts.Height
		if h < 0 {
			h = 0
		}
		switch {
		case len(lines) > h:
			lines = lines[:h]
		case len(lines) < h:
			for len(lines) < h {
				lines = append(lines, nil)
			}
		}
	}

	w := 0
	for _, row := range lines {
		if len(row) > w {
			w = len(row)
		}
	}
	if opts.Width == nil && len(lines) == 0 {
		w = fallbackWidth
	}
	if opts.Width != nil {
		w = *opts.Width
		if w < 0 {
			w = 0
		}
	}

	cells := make([][]float64, h)
	for i := 0; i < h; i++ {
		row := make([]float64, w)
		for j := 0; j < w; j++ {
			r := ' '
			if j < len(lines[i]) {
				r = lines[i][j]
			}
			row[j] = dmap.Of(r)
		}
		cells[i] = row
	}

	return Grid{W: w, H: h, Cells: cells}
}

// splitRows splits text on '\n' and decodes each row into code points,
// skipping invalid UTF-8 sequences byte by byte. Empty text has no rows.
func splitRows(text []byte) [][]rune {
	var rows [][]rune
	if len(text) == 0 {
		return rows
	}
	start := 0
	for start <= len(text) {
		end := indexByte(text, '\n', start)
		if end < 0 {
			rows = append(rows, decodeRow(text[start:]))
			break
		}
		rows = append(rows, decodeRow(text[start:end]))
		start = end + 1
	}
	return rows
}

func indexByte(b []byte, c byte, from int) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// decodeRow decodes a single row as UTF-8. Bytes that do not begin a valid
// sequence are dropped rather than replaced, so they never inflate W.
func decodeRow(b []byte) []rune {
	row := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			b = b[1:]
			continue
		}
		row = append(row, r)
		b = b[size:]
	}
	return row
}

// Ink reports whether cell (row, col) is an ink cell. Out-of-range cells
// are empty.
func (g Grid) Ink(row, col int) bool {
	if row < 0 || row >= g.H || col < 0 || col >= g.W {
		return false
	}
	return g.Cells[row][col] > 0.5
}

// String renders the grid as '#' and spaces, one line per row. Useful for
// debugging and --dump flags.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for i := 0; i < g.H; i++ {
		for j := 0; j < g.W; j++ {
			if g.Ink(i, j) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
