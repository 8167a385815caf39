package lex

import "testing"

func TestStripLineComment(t *testing.T) {
	got := string(StripComments([]byte("int x; // trailing\nint y;")))
	want := "int x; \nint y;"
	if got != want {
		t.Errorf("StripComments = %q, want %q", got, want)
	}
}

func TestStripBlockComment(t *testing.T) {
	got := string(StripComments([]byte("a/*comment*/b")))
	if got != "ab" {
		t.Errorf("StripComments = %q, want %q", got, "ab")
	}
}

func TestStripMultilineBlockComment(t *testing.T) {
	got := string(StripComments([]byte("a/*line1\nline2*/b")))
	if got != "ab" {
		t.Errorf("StripComments = %q, want %q", got, "ab")
	}
}

func TestStripPreservesStrings(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"slashes in string", `s = "// not a comment";`, `s = "// not a comment";`},
		{"block in string", `s = "/* not */ either";`, `s = "/* not */ either";`},
		{"escaped quote", `s = "a\"b // c";`, `s = "a\"b // c";`},
		{"char literal", `c = '/'; d = '*'; // gone`, `c = '/'; d = '*'; `},
		{"escaped backslash", `s = "x\\"; // gone`, `s = "x\\"; `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(StripComments([]byte(tc.in))); got != tc.want {
				t.Errorf("StripComments(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripPreservesRawStrings(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"bare", `auto s = R"x(hi // there /* and */ )x";`},
		{"empty delim", `auto s = R"(// comment chars)";`},
		{"u8 prefix", `auto s = u8R"d(text)d";`},
		{"u prefix", `auto s = uR"d(text)d";`},
		{"U prefix", `auto s = UR"d(text)d";`},
		{"L prefix", `auto s = LR"d(text)d";`},
		{"close-like inside", `auto s = R"ab(x )a" )ab";`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(StripComments([]byte(tc.in))); got != tc.in {
				t.Errorf("StripComments(%q) = %q, want input unchanged", tc.in, got)
			}
		})
	}
}

func TestStripRawStringPrefixNonRaw(t *testing.T) {
	// R followed by something other than a quote is a plain identifier.
	in := `Rect r; int R2 = 0;`
	if got := string(StripComments([]byte(in))); got != in {
		t.Errorf("StripComments(%q) = %q, want unchanged", in, got)
	}
}

func TestStripOverlongRawDelim(t *testing.T) {
	// A 17-character delimiter disqualifies the raw opener; the comment after
	// it is then stripped normally.
	in := `R"aaaaaaaaaaaaaaaaa(x)" /*gone*/y`
	got := string(StripComments([]byte(in)))
	want := `R"aaaaaaaaaaaaaaaaa(x)" y`
	if got != want {
		t.Errorf("StripComments = %q, want %q", got, want)
	}
}

func TestStripUnterminatedConstructs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"unterminated block", "a/* never closed", "a"},
		{"unterminated line", "a// no newline", "a"},
		{"unterminated string", `a"open`, `a"open`},
		{"unterminated raw", `aR"d(open`, `aR"d(open`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(StripComments([]byte(tc.in))); got != tc.want {
				t.Errorf("StripComments(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripKeepsLineCommentNewline(t *testing.T) {
	in := "a // one\nb // two\nc"
	got := string(StripComments([]byte(in)))
	want := "a \nb \nc"
	if got != want {
		t.Errorf("StripComments = %q, want %q", got, want)
	}
}

func TestStripIdempotentTokenization(t *testing.T) {
	// Tokenize(Strip(x)) == Tokenize(Strip(Strip(x)))
	in := []byte(`int x = 1; /* c */ auto s = R"d(// raw)d"; // tail`)
	once := Tokenize(StripComments(in))
	twice := Tokenize(StripComments(StripComments(in)))
	if len(once) != len(twice) {
		t.Fatalf("token count differs: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("token %d differs: %q vs %q", i, once[i], twice[i])
		}
	}
}
