package pipeline

import (
	"bytes"

	"github.com/matzehuels/waifufy/pkg/art"
	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/layout"
	"github.com/matzehuels/waifufy/pkg/lex"
)

// Verify checks a rendered output against the input source and target grid:
// the token sequence must survive a strip-and-tokenize round trip unchanged,
// and every line must respect the width band. Returns a VERIFY_MISMATCH
// error describing the first violation.
func Verify(input, output []byte, grid art.Grid) error {
	want := lex.Tokenize(lex.StripComments(input))
	got := lex.Tokenize(lex.StripComments(output))

	if len(got) != len(want) {
		return errors.New(errors.ErrCodeVerifyMismatch,
			"output has %d tokens, input has %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return errors.New(errors.ErrCodeVerifyMismatch,
				"token %d changed from %q to %q", i, want[i], got[i])
		}
	}

	return verifyWidths(output, grid)
}

// verifyWidths checks the line-width band: every line strictly below
// W+Shoot, and the first H lines at least W wide.
func verifyWidths(output []byte, grid art.Grid) error {
	wBound := grid.W + layout.Shoot
	lines := splitOutput(output)

	if len(lines) < grid.H {
		return errors.New(errors.ErrCodeVerifyMismatch,
			"output has %d lines, image band needs %d", len(lines), grid.H)
	}
	for i, line := range lines {
		if len(line) >= wBound {
			return errors.New(errors.ErrCodeVerifyMismatch,
				"line %d is %d wide, bound is %d", i+1, len(line), wBound)
		}
		if i < grid.H && len(line) < grid.W {
			return errors.New(errors.ErrCodeVerifyMismatch,
				"image line %d is %d wide, want at least %d", i+1, len(line), grid.W)
		}
	}
	return nil
}

// splitOutput splits rendered text into lines, dropping the final empty
// slice produced by the trailing newline.
func splitOutput(output []byte) [][]byte {
	if len(output) == 0 {
		return nil
	}
	lines := bytes.Split(output, []byte{'\n'})
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
