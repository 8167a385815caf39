package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/waifufy/pkg/art"
	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/lex"
)

func renderSource(t *testing.T, src, artText string, seed uint64) ([]byte, art.Grid, []lex.Token) {
	t.Helper()
	tokens := lex.Tokenize(lex.StripComments([]byte(src)))
	grid := art.Parse([]byte(artText), art.ParseOptions{})
	if err := Validate(grid, tokens); err != nil {
		t.Fatal(err)
	}
	eng := New(grid, tokens, Options{Seed: seed})
	return eng.Render(), grid, tokens
}

func splitLines(t *testing.T, out []byte) []string {
	t.Helper()
	if len(out) > 0 && out[len(out)-1] != '\n' {
		t.Fatalf("output does not end in newline: %q", out)
	}
	s := strings.TrimSuffix(string(out), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRenderSingleTokenBlankArt(t *testing.T) {
	artText := strings.Repeat(" ", 10) + "\n" + strings.Repeat(" ", 10) + "\n"
	out, grid, _ := renderSource(t, "int", artText, 1)

	lines := splitLines(t, out)
	if len(lines) < 2 {
		t.Fatalf("lines = %d, want at least %d", len(lines), grid.H)
	}
	for i, line := range lines[:2] {
		if len(line) < 10 || len(line) >= 20 {
			t.Errorf("image line %d length = %d, want in [10, 20)", i, len(line))
		}
	}
	if !bytes.Contains(out, []byte("int")) {
		t.Error("token missing from output")
	}
}

func TestRenderDenseRowUsesComments(t *testing.T) {
	out, _, _ := renderSource(t, "", "##########", 3)
	lines := splitLines(t, out)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	line := lines[0]
	if len(line) < 10 || len(line) >= 20 {
		t.Fatalf("line length = %d, want in [10, 20)", len(line))
	}
	if !strings.Contains(line, "/*") || !strings.Contains(line, "*/") {
		t.Errorf("dense row %q should be filled with comments", line)
	}
	if got := lex.Tokenize(lex.StripComments(out)); len(got) != 0 {
		t.Errorf("filler row should strip to no tokens, got %v", got)
	}
}

func TestRenderTokenPreservation(t *testing.T) {
	src := "for(int i=0;i<10;++i){sum+=i;} /* old */ int done=1; // gone"
	artText := strings.Join([]string{
		"####    ####",
		"  ##### ##  ",
		"############",
		"            ",
	}, "\n") + "\n"

	want := lex.Tokenize(lex.StripComments([]byte(src)))
	for seed := uint64(0); seed < 6; seed++ {
		out, grid, _ := renderSource(t, src, artText, seed)
		got := lex.Tokenize(lex.StripComments(out))
		if len(got) != len(want) {
			t.Fatalf("seed %d: token count %d, want %d\noutput:\n%s", seed, len(got), len(want), out)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("seed %d: token %d = %q, want %q", seed, i, got[i], want[i])
			}
		}

		lines := splitLines(t, out)
		if len(lines) < grid.H {
			t.Fatalf("seed %d: lines = %d, want at least %d", seed, len(lines), grid.H)
		}
		for i, line := range lines {
			if len(line) >= grid.W+Shoot {
				t.Errorf("seed %d: line %d length = %d, exceeds bound %d", seed, i, len(line), grid.W+Shoot)
			}
			if i < grid.H && len(line) < grid.W {
				t.Errorf("seed %d: image line %d length = %d, below width %d", seed, i, len(line), grid.W)
			}
		}
	}
}

func TestRenderOverflowTail(t *testing.T) {
	// Far more tokens than a single 10-wide row can hold.
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("x=y+z;")
	}
	out, grid, want := renderSource(t, sb.String(), "##########\n", 7)

	got := lex.Tokenize(lex.StripComments(out))
	if len(got) != len(want) {
		t.Fatalf("token count %d, want %d", len(got), len(want))
	}

	lines := splitLines(t, out)
	if len(lines) <= grid.H {
		t.Fatalf("lines = %d, want overflow beyond %d image rows", len(lines), grid.H)
	}
	for i, line := range lines {
		if len(line) == 0 {
			t.Errorf("line %d is empty", i)
		}
		if len(line) >= grid.W+Shoot {
			t.Errorf("line %d length = %d, exceeds bound %d", i, len(line), grid.W+Shoot)
		}
	}
}

func TestRenderSlashBeforeCommentSafe(t *testing.T) {
	// A bare / token must never abut a generated /* opener.
	src := "a / b / c / d / e"
	artText := strings.Repeat("#", 12) + "\n" + strings.Repeat("#", 12) + "\n"
	want := lex.Tokenize(lex.StripComments([]byte(src)))
	for seed := uint64(0); seed < 8; seed++ {
		out, _, _ := renderSource(t, src, artText, seed)
		got := lex.Tokenize(lex.StripComments(out))
		if len(got) != len(want) {
			t.Fatalf("seed %d: token count %d, want %d\noutput:\n%s", seed, len(got), len(want), out)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("seed %d: token %d = %q, want %q", seed, i, got[i], want[i])
			}
		}
	}
}

func TestRenderSeedReproducible(t *testing.T) {
	src := "int x=1+2; int y=x*x;"
	artText := "########\n##    ##\n########\n"
	a, _, _ := renderSource(t, src, artText, 42)
	b, _, _ := renderSource(t, src, artText, 42)
	if !bytes.Equal(a, b) {
		t.Error("same seed should reproduce the same output")
	}
}

func TestRenderEmptyEverything(t *testing.T) {
	grid := art.Parse(nil, art.ParseOptions{Height: intp(0), Width: intp(0)})
	eng := New(grid, nil, Options{})
	if out := eng.Render(); len(out) != 0 {
		t.Errorf("empty input should render empty output, got %q", out)
	}
}

func TestRenderNoTokensBlankArt(t *testing.T) {
	out, grid, _ := renderSource(t, "", "          \n          \n", 0)
	lines := splitLines(t, out)
	if len(lines) != grid.H {
		t.Fatalf("lines = %d, want %d", len(lines), grid.H)
	}
	for i, line := range lines {
		if strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(line, "/*", ""), "*/", "")) != "" {
			t.Errorf("blank row %d = %q, want only spaces and empty comments", i, line)
		}
	}
}

func TestValidate(t *testing.T) {
	grid := art.Parse([]byte("##########"), art.ParseOptions{})
	if err := Validate(grid, []lex.Token{"short", "tokens"}); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
	long := lex.Token(strings.Repeat("a", 25))
	err := Validate(grid, []lex.Token{long})
	if !errors.Is(err, errors.ErrCodeInvalidPrecondition) {
		t.Errorf("Validate long token err = %v, want INVALID_PRECONDITION", err)
	}
}

func intp(v int) *int { return &v }
