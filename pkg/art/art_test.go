package art

import (
	"strings"
	"testing"

	"github.com/matzehuels/waifufy/pkg/density"
)

func intp(v int) *int { return &v }

func TestParseBasic(t *testing.T) {
	g := Parse([]byte("##\n#\n"), ParseOptions{})
	if g.W != 2 || g.H != 2 {
		t.Fatalf("grid = %dx%d, want 2x2", g.W, g.H)
	}
	want := [][]float64{{1, 1}, {1, 0}}
	for i := range want {
		for j := range want[i] {
			if g.Cells[i][j] != want[i][j] {
				t.Errorf("cell (%d,%d) = %v, want %v", i, j, g.Cells[i][j], want[i][j])
			}
		}
	}
}

func TestParseTrailingNewline(t *testing.T) {
	// A final newline does not create a phantom empty row.
	g := Parse([]byte("#\n#\n"), ParseOptions{})
	if g.H != 2 {
		t.Errorf("H = %d, want 2", g.H)
	}

	// Without the trailing newline the height is the same.
	g2 := Parse([]byte("#\n#"), ParseOptions{})
	if g2.H != 2 {
		t.Errorf("H = %d, want 2", g2.H)
	}

	// An explicit height override keeps the trailing empty row in play.
	g3 := Parse([]byte("#\n#\n"), ParseOptions{Height: intp(3)})
	if g3.H != 3 {
		t.Errorf("H = %d, want 3", g3.H)
	}
}

func TestParseShortRowsPadded(t *testing.T) {
	g := Parse([]byte("####\n#\n##"), ParseOptions{})
	if g.W != 4 || g.H != 3 {
		t.Fatalf("grid = %dx%d, want 4x3", g.W, g.H)
	}
	if g.Ink(1, 1) || g.Ink(1, 3) {
		t.Error("padded cells should be empty")
	}
	if !g.Ink(1, 0) || !g.Ink(2, 1) {
		t.Error("ink cells lost during padding")
	}
}

func TestParseWidthOverride(t *testing.T) {
	g := Parse([]byte("####"), ParseOptions{Width: intp(2)})
	if g.W != 2 {
		t.Fatalf("W = %d, want 2", g.W)
	}
	if len(g.Cells[0]) != 2 {
		t.Errorf("row length = %d, want 2", len(g.Cells[0]))
	}

	g2 := Parse([]byte("#"), ParseOptions{Width: intp(4)})
	if g2.W != 4 {
		t.Fatalf("W = %d, want 4", g2.W)
	}
	if !g2.Ink(0, 0) || g2.Ink(0, 3) {
		t.Error("width padding wrong")
	}
}

func TestParseHeightOverride(t *testing.T) {
	g := Parse([]byte("#\n#\n#"), ParseOptions{Height: intp(2)})
	if g.H != 2 {
		t.Errorf("truncated H = %d, want 2", g.H)
	}

	g2 := Parse([]byte("#"), ParseOptions{Height: intp(3)})
	if g2.H != 3 {
		t.Errorf("padded H = %d, want 3", g2.H)
	}
	if g2.Ink(2, 0) {
		t.Error("padded row should be empty")
	}
}

func TestParseEmptyInput(t *testing.T) {
	g := Parse(nil, ParseOptions{})
	if g.W != fallbackWidth {
		t.Errorf("W = %d, want fallback %d", g.W, fallbackWidth)
	}

	g2 := Parse(nil, ParseOptions{Width: intp(10)})
	if g2.W != 10 {
		t.Errorf("W = %d, want 10", g2.W)
	}
}

func TestParseNonASCIIIsInk(t *testing.T) {
	g := Parse([]byte("é #"), ParseOptions{})
	if !g.Ink(0, 0) {
		t.Error("non-ASCII rune should count as ink")
	}
	if g.Ink(0, 1) {
		t.Error("space should be empty")
	}
	if !g.Ink(0, 2) {
		t.Error("'#' should be ink")
	}
}

func TestParseInvalidUTF8Skipped(t *testing.T) {
	// A stray continuation byte is dropped, so it does not widen the row.
	g := Parse([]byte{'#', 0x80, '#'}, ParseOptions{})
	if g.W != 2 {
		t.Errorf("W = %d, want 2 (invalid byte skipped)", g.W)
	}
	if !g.Ink(0, 0) || !g.Ink(0, 1) {
		t.Error("remaining cells should be ink")
	}
}

func TestParseCustomMap(t *testing.T) {
	m := density.Default()
	g := Parse([]byte(". "), ParseOptions{Map: &m})
	if !g.Ink(0, 0) {
		t.Error("'.' should be ink under the default map")
	}
}

func TestGridInkBounds(t *testing.T) {
	g := Parse([]byte("#"), ParseOptions{})
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
		if g.Ink(rc[0], rc[1]) {
			t.Errorf("Ink(%d, %d) out of range should be false", rc[0], rc[1])
		}
	}
}

func TestGridString(t *testing.T) {
	g := Parse([]byte("#.\n #"), ParseOptions{})
	got := g.String()
	want := "##\n #\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("String() should end in newline")
	}
}
