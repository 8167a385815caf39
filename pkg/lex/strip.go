// Package lex provides the C-like source scanner used by waifufy: a
// comment stripper that preserves string and character literals byte-exact,
// a permissive tokenizer, and the separator oracle that decides when two
// adjacent tokens must be kept apart.
//
// # Comment stripping
//
// StripComments removes // and /* */ comments while leaving every literal
// untouched, including raw strings of the form R"delim(...)delim" and their
// u8/u/U/L prefixed variants. Malformed input (unterminated comment, string,
// or raw string) is tolerated: the tail of the input is treated as the
// remainder of the open construct and no error is reported.
//
// # Tokenizing
//
// Tokenize consumes comment-free source and yields lexemes in source order
// with whitespace discarded. The grammar is deliberately permissive; it only
// needs to be precise enough that re-joining tokens under NeedsSeparator
// reproduces an equivalent token stream.
package lex

import "strings"

// Token is the exact text of one lexeme. Tokens are never edited; layout
// emits them verbatim and in order.
type Token = string

// maxRawDelim bounds the length of a raw-string delimiter. Longer candidate
// delimiters disqualify the opener and the 'R' is scanned as an identifier
// character instead.
const maxRawDelim = 16

// scanState enumerates the stripper automaton states.
type scanState int

const (
	stateNormal scanState = iota
	stateBlock            // inside /* ... */
	stateLine             // inside // ... \n
	stateString           // inside " ... "
	stateChar             // inside ' ... '
	stateRaw              // inside R"delim( ... )delim"
)

// isSpaceByte reports whether b is ASCII whitespace.
func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// rawDelimByte reports whether b may appear in a raw-string delimiter.
func rawDelimByte(b byte) bool {
	return b != ')' && b != '\\' && !isSpaceByte(b)
}

// scanRawOpener inspects src at offset i for a raw-string opener, where the
// 'R' sits at i+skip (skip is the prefix length: 0, 1 for u/U/L, 2 for u8).
// On success it returns the delimiter and the offset of the first body byte.
func scanRawOpener(src []byte, i, skip int) (delim string, body int, ok bool) {
	r := i + skip
	if r+1 >= len(src) || src[r] != 'R' || src[r+1] != '"' {
		return "", 0, false
	}
	j := r + 2
	start := j
	for j < len(src) && src[j] != '(' {
		if !rawDelimByte(src[j]) || j-start >= maxRawDelim {
			return "", 0, false
		}
		j++
	}
	if j >= len(src) || src[j] != '(' {
		return "", 0, false
	}
	return string(src[start:j]), j + 1, true
}

// rawPrefixLen returns the length of a raw-string encoding prefix at src[i]
// (0 for a bare R"..."), or -1 if no prefixed or bare raw opener starts here.
func rawPrefixLen(src []byte, i int) int {
	if src[i] == 'R' {
		return 0
	}
	if src[i] == 'u' && i+1 < len(src) && src[i+1] == '8' {
		return 2
	}
	if src[i] == 'u' || src[i] == 'U' || src[i] == 'L' {
		return 1
	}
	return -1
}

// StripComments removes line and block comments from src. String, character,
// and raw-string literals pass through byte-exact. A newline terminating a
// line comment is kept so downstream consumers see the original line count.
func StripComments(src []byte) []byte {
	var out strings.Builder
	out.Grow(len(src))

	st := stateNormal
	rawDelim := ""
	esc := false

	for i := 0; i < len(src); {
		c := src[i]
		var next byte
		if i+1 < len(src) {
			next = src[i+1]
		}

		switch st {
		case stateNormal:
			if skip := rawPrefixLen(src, i); skip >= 0 {
				if delim, body, ok := scanRawOpener(src, i, skip); ok {
					out.Write(src[i:body])
					rawDelim = delim
					st = stateRaw
					i = body
					continue
				}
			}
			switch {
			case c == '/' && next == '*':
				st = stateBlock
				i += 2
			case c == '/' && next == '/':
				st = stateLine
				i += 2
			case c == '"':
				st = stateString
				esc = false
				out.WriteByte(c)
				i++
			case c == '\'':
				st = stateChar
				esc = false
				out.WriteByte(c)
				i++
			default:
				out.WriteByte(c)
				i++
			}

		case stateBlock:
			if c == '*' && next == '/' {
				st = stateNormal
				i += 2
			} else {
				i++
			}

		case stateLine:
			if c == '\n' {
				st = stateNormal
				out.WriteByte(c)
			}
			i++

		case stateString:
			out.WriteByte(c)
			if esc {
				esc = false
			} else if c == '\\' {
				esc = true
			} else if c == '"' {
				st = stateNormal
			}
			i++

		case stateChar:
			out.WriteByte(c)
			if esc {
				esc = false
			} else if c == '\\' {
				esc = true
			} else if c == '\'' {
				st = stateNormal
			}
			i++

		case stateRaw:
			if c == ')' && rawClosesAt(src, i, rawDelim) {
				out.WriteByte(')')
				out.WriteString(rawDelim)
				out.WriteByte('"')
				i += 2 + len(rawDelim)
				st = stateNormal
			} else {
				out.WriteByte(c)
				i++
			}
		}
	}
	return []byte(out.String())
}

// rawClosesAt reports whether src[i:] starts the closing sequence )delim" of
// a raw string with the given delimiter.
func rawClosesAt(src []byte, i int, delim string) bool {
	end := i + 1 + len(delim)
	if end >= len(src) || src[end] != '"' {
		return false
	}
	return string(src[i+1:end]) == delim
}
