package layout

import (
	"bytes"

	"github.com/matzehuels/waifufy/pkg/lex"
)

// renderTail drains the tokens remaining after the image band onto greedily
// packed lines. Each line picks its own effective width in [W, W+Shoot);
// tokens are joined with a single space only where required.
func (e *Engine) renderTail(out *bytes.Buffer, taken int) {
	if taken >= len(e.tokens) {
		return
	}

	line := make([]byte, 0, e.wBound)
	wEff := e.target.W + e.rng.IntN(Shoot)

	for taken < len(e.tokens) {
		t := e.tokens[taken]

		if len(line) == 0 {
			// A lone overlong token still gets its own line.
			line = append(line, t...)
			taken++
			continue
		}

		sep := 0
		if lex.NeedsSeparator(e.tokens[taken-1], t) {
			sep = 1
		}
		if len(line)+sep+len(t) <= wEff {
			if sep == 1 {
				line = append(line, ' ')
			}
			line = append(line, t...)
			taken++
			continue
		}

		out.Write(line)
		out.WriteByte('\n')
		line = line[:0]
		wEff = e.target.W + e.rng.IntN(Shoot)
	}

	out.Write(line)
	out.WriteByte('\n')
}
