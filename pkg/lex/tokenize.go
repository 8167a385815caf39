package lex

// punctuators lists the multi-character punctuators recognized by the
// tokenizer, longest first so a single ordered scan gives longest-match.
var punctuators = []string{
	">>=", "<<=", "->*", "::", "->", "++", "--", "<<", ">>", "&&", "||",
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"##",
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// scanRawToken scans a bare raw string starting at src[i] (src[i] must be
// 'R', src[i+1] must be '"'). It returns the end offset past the closing
// )delim" and true on success. An unterminated raw string spans to the end
// of input and still succeeds.
func scanRawToken(src []byte, i int) (int, bool) {
	delim, body, ok := scanRawOpener(src, i, 0)
	if !ok {
		return 0, false
	}
	for pos := body; pos < len(src); pos++ {
		if src[pos] == ')' && rawClosesAt(src, pos, delim) {
			return pos + 2 + len(delim), true
		}
	}
	return len(src), true
}

// scanPrefixedRawToken scans a u8/u/U/L-prefixed raw string at src[i].
func scanPrefixedRawToken(src []byte, i int) (int, bool) {
	try := func(prefix string) (int, bool) {
		off := len(prefix)
		if i+off+1 >= len(src) || string(src[i:i+off]) != prefix {
			return 0, false
		}
		if src[i+off] != 'R' || src[i+off+1] != '"' {
			return 0, false
		}
		return scanRawToken(src, i+off)
	}
	for _, p := range []string{"u8", "u", "U", "L"} {
		if end, ok := try(p); ok {
			return end, true
		}
	}
	return 0, false
}

// scanQuoted scans from the opening quote at src[i] (either '"' or '\''),
// honoring backslash escapes, and returns the offset past the closing quote.
// An unterminated literal spans to the end of input.
func scanQuoted(src []byte, i int, quote byte) int {
	i++ // opening quote
	esc := false
	for i < len(src) {
		c := src[i]
		i++
		if esc {
			esc = false
			continue
		}
		if c == '\\' {
			esc = true
			continue
		}
		if c == quote {
			break
		}
	}
	return i
}

// Tokenize splits comment-free source into tokens, discarding whitespace.
// Per position the scanner tries, in priority order: raw string (optionally
// prefixed), string literal (optionally prefixed), character literal
// (optionally prefixed), identifier, number, longest multi-character
// punctuator, single byte.
func Tokenize(src []byte) []Token {
	var toks []Token
	n := len(src)

	push := func(b, e int) {
		toks = append(toks, string(src[b:e]))
	}

	for i := 0; i < n; {
		c := src[i]

		if isSpaceByte(c) {
			i++
			continue
		}

		// Raw strings bind tighter than identifiers so R"x(...)x" is one token.
		if end, ok := scanPrefixedRawToken(src, i); ok {
			push(i, end)
			i = end
			continue
		}
		if c == 'R' && i+1 < n && src[i+1] == '"' {
			if end, ok := scanRawToken(src, i); ok {
				push(i, end)
				i = end
				continue
			}
		}

		// String literal, with optional u8/u/U/L prefix.
		if open, ok := stringOpener(src, i, '"'); ok {
			end := scanQuoted(src, open, '"')
			push(i, end)
			i = end
			continue
		}

		// Character literal, with optional u/U/L prefix.
		if open, ok := charOpener(src, i); ok {
			end := scanQuoted(src, open, '\'')
			push(i, end)
			i = end
			continue
		}

		// Identifier.
		if isIdentStart(c) {
			b := i
			i++
			for i < n && isIdentByte(src[i]) {
				i++
			}
			push(b, i)
			continue
		}

		// Number: permissive, swallows exponents, hex digits, digit
		// separators, and dots so 0x1.8p3f stays one token.
		if isDigit(c) {
			b := i
			i++
			for i < n && (isIdentByte(src[i]) || src[i] == '.' || src[i] == '\'') {
				i++
			}
			push(b, i)
			continue
		}

		// Multi-character punctuator, longest match.
		if end := matchPunctuator(src, i); end > i {
			push(i, end)
			i = end
			continue
		}

		// Single byte.
		push(i, i+1)
		i++
	}
	return toks
}

// stringOpener reports whether a (possibly prefixed) string literal starts
// at src[i], returning the offset of its opening quote.
func stringOpener(src []byte, i int, quote byte) (int, bool) {
	n := len(src)
	if src[i] == quote {
		return i, true
	}
	j := i
	if src[j] == 'u' && j+1 < n && src[j+1] == '8' {
		j += 2
	} else if src[j] == 'u' || src[j] == 'U' || src[j] == 'L' {
		j++
	} else {
		return 0, false
	}
	if j < n && src[j] == quote {
		return j, true
	}
	return 0, false
}

// charOpener reports whether a (possibly u/U/L-prefixed) character literal
// starts at src[i], returning the offset of its opening quote.
func charOpener(src []byte, i int) (int, bool) {
	n := len(src)
	if src[i] == '\'' {
		return i, true
	}
	if (src[i] == 'u' || src[i] == 'U' || src[i] == 'L') && i+1 < n && src[i+1] == '\'' {
		return i + 1, true
	}
	return 0, false
}

// matchPunctuator returns the end offset of the longest multi-character
// punctuator starting at src[i], or i if none matches.
func matchPunctuator(src []byte, i int) int {
	for _, p := range punctuators {
		if i+len(p) <= len(src) && string(src[i:i+len(p)]) == p {
			return i + len(p)
		}
	}
	return i
}
