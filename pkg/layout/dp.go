package layout

import (
	"github.com/matzehuels/waifufy/pkg/lex"
)

// Trailing-blob kinds. A state's kind describes the last thing placed on
// the row so far.
const (
	kindSpace      = 0 // a single ' '
	kindComment    = 1 // a synthetic block comment
	kindTokenSep   = 2 // a token whose right edge needs a separator
	kindTokenClean = 3 // a token whose right edge is safe
)

// cell is one DP state: the best score reaching it and a back-pointer to
// the predecessor state's flat index (-1 when unset, and for the origin).
type cell struct {
	score int32
	prev  int32
}

const unreached = int32(-1)

// solveRow lays out one image row starting at token index taken. It returns
// the finished line (without trailing newline, padded to at least W) and the
// number of tokens consumed.
func (e *Engine) solveRow(row, taken int) ([]byte, int) {
	wBound := e.wBound
	left := len(e.tokens) - taken

	jMax := left
	if jMax > wBound-1 {
		jMax = wBound - 1
	}
	stride := jMax + 1

	size := wBound * stride * 4
	if cap(e.cells) < size {
		e.cells = make([]cell, size)
	}
	cells := e.cells[:size]
	for i := range cells {
		cells[i] = cell{score: unreached, prev: -1}
	}
	cells[0] = cell{score: 0, prev: -1} // state (0, 0, kindSpace)

	relax := func(from, to int, inc int32) {
		ns := cells[from].score + inc
		switch {
		case ns > cells[to].score:
			cells[to] = cell{score: ns, prev: int32(from)}
		case ns == cells[to].score && e.rng.IntN(2) == 0:
			cells[to].prev = int32(from)
		}
	}

	for i := 0; i < wBound; i++ {
		for j := 0; j <= jMax; j++ {
			base := (i*stride + j) * 4
			for k := 0; k < 4; k++ {
				from := base + k
				if cells[from].score == unreached {
					continue
				}

				// Space.
				if i+1 < wBound {
					relax(from, ((i+1)*stride+j)*4+kindSpace, e.colScore(' ', row, i))
				}

				// Comment. Never in place of a required separator: stripping
				// removes the comment without leaving whitespace. After a
				// clean token, only when the boundary cannot spell a comment
				// opener by accident.
				commentOK := true
				if k == kindTokenSep {
					commentOK = false
				} else if k == kindTokenClean {
					commentOK = !lex.NeedsSeparatorBeforeComment(e.tokens[taken+j-1])
				}
				if commentOK {
					maxL := MaxCommentLength
					if m := wBound - i - 1; m < maxL {
						maxL = m
					}
					for L := minCommentLength; L <= maxL; L++ {
						inc := int32(L - minCommentLength)
						inc += e.colScore('/', row, i)
						inc += e.colScore('*', row, i+1)
						inc += e.colScore('*', row, i+L-2)
						inc += e.colScore('/', row, i+L-1)
						relax(from, ((i+L)*stride+j)*4+kindComment, inc)
					}
				}

				// Token. Never directly after a separator-requiring token;
				// after a comment, only when the token cannot extend the
				// comment close.
				if j < jMax && k != kindTokenSep {
					t := e.tokens[taken+j]
					if !(k == kindComment && lex.NeedsSeparatorAfterComment(t)) &&
						i+len(t) < wBound {
						var inc int32
						for ti := 0; ti < len(t); ti++ {
							inc += e.colScore(t[ti], row, i+ti)
						}
						kNext := kindTokenClean
						if next := taken + j + 1; next < len(e.tokens) &&
							lex.NeedsSeparator(t, e.tokens[next]) {
							kNext = kindTokenSep
						}
						relax(from, ((i+len(t))*stride+j+1)*4+kNext, inc)
					}
				}
			}
		}
	}

	chosen := e.selectState(cells, stride, jMax, left)
	return e.reconstruct(cells, stride, chosen, row, taken)
}

// selectState picks the terminal state for the row. It prefers rows that
// consume at least MinTokens tokens, relaxing the floor one step at a time,
// and within the accepted tier takes the highest token count whose score is
// within the relaxation margin of the tier's best.
func (e *Engine) selectState(cells []cell, stride, jMax, left int) int {
	w := e.target.W
	iMin := w - Shoot
	if iMin < 0 {
		iMin = 0
	}

	startTok := MinTokens
	if left < startTok {
		startTok = left
	}
	if jMax < startTok {
		startTok = jMax
	}

	for minTok := startTok; minTok >= 0; minTok-- {
		best := unreached
		for i := iMin; i < e.wBound; i++ {
			for j := minTok; j <= jMax; j++ {
				base := (i*stride + j) * 4
				for k := 0; k < 4; k++ {
					if s := cells[base+k].score; s > best {
						best = s
					}
				}
			}
		}
		if best == unreached {
			continue
		}
		threshold := best - e.relaxation
		for J := jMax; J >= minTok; J-- {
			chosen, chosenScore := -1, unreached
			for i := iMin; i < e.wBound; i++ {
				base := (i*stride + J) * 4
				for k := 0; k < 4; k++ {
					if s := cells[base+k].score; s >= 0 && s >= threshold && s > chosenScore {
						chosen, chosenScore = base+k, s
					}
				}
			}
			if chosen >= 0 {
				return chosen
			}
		}
	}

	// Unreachable: (iMin, 0, kindSpace) is always attainable via spaces.
	return 0
}

// reconstruct walks the back-pointer chain from the chosen state and emits
// the row left to right. Returns the line and the tokens consumed.
func (e *Engine) reconstruct(cells []cell, stride, chosen, row, taken int) ([]byte, int) {
	path := []int{chosen}
	for cells[path[len(path)-1]].prev >= 0 {
		path = append(path, int(cells[path[len(path)-1]].prev))
	}

	line := make([]byte, 0, e.wBound)
	for s := len(path) - 2; s >= 0; s-- {
		prev, cur := path[s+1], path[s]
		pi, pj, _ := decode(prev, stride)
		ci, _, ck := decode(cur, stride)
		switch ck {
		case kindSpace:
			line = append(line, ' ')
		case kindComment:
			line = append(line, '/', '*')
			for col := pi + 2; col < ci-2; col++ {
				if e.wantInk(row, col) {
					line = append(line, 'a'+byte(e.rng.IntN(26)))
				} else {
					line = append(line, ' ')
				}
			}
			line = append(line, '*', '/')
		default:
			line = append(line, e.tokens[taken+pj]...)
		}
	}

	// Short rows are filled with spaces so the image band keeps its width.
	for len(line) < e.target.W {
		line = append(line, ' ')
	}

	_, consumed, _ := decode(chosen, stride)
	return line, consumed
}

// decode unpacks a flat cell index into (column, tokens-consumed, kind).
func decode(idx, stride int) (i, j, k int) {
	k = idx & 3
	q := idx >> 2
	return q / stride, q % stride, k
}
