package lex

import "strings"

// boundaryPunctuators is the set of lexemes that must not form across a
// token boundary. It extends the tokenizer's punctuator set with the
// ellipsis, which the tokenizer never produces as one token but which three
// adjacent dots would form in a downstream compiler.
var boundaryPunctuators = func() map[string]bool {
	m := make(map[string]bool, len(punctuators)+1)
	for _, p := range punctuators {
		m[p] = true
	}
	m["..."] = true
	return m
}()

// NeedsSeparator reports whether tokens a and b, emitted adjacently with no
// intervening whitespace or comment, would merge or form a hazardous lexeme.
// It is a pure function of the two token texts.
//
// The hazard classes, in the order checked:
//
//  1. identifier/number merge: both boundary bytes are [A-Za-z0-9_]
//  2. comment formation: a ends '/' and b starts '/' or '*', or a ends '*'
//     and b starts '/'
//  3. multi-character punctuator forming across the boundary (including ...)
//  4. user-defined-literal suffix: a ends in a quote or digit and b starts
//     with a letter or underscore
//  5. floating-point adjacency: '.' against a digit in either direction
func NeedsSeparator(a, b Token) bool {
	if a == "" || b == "" {
		return false
	}
	ca := a[len(a)-1]
	cb := b[0]

	// 1) Merge of identifiers/numbers.
	if isIdentByte(ca) && isIdentByte(cb) {
		return true
	}

	// 2) Comment open/close hazards.
	if (ca == '/' && (cb == '/' || cb == '*')) || (ca == '*' && cb == '/') {
		return true
	}

	// 3) Multi-char punctuators formed across the boundary.
	if punctuatorAcross(a, b) {
		return true
	}

	// 4) Literal + UDL suffix hazards.
	if (ca == '"' || ca == '\'' || isDigit(ca)) && (isAlpha(cb) || cb == '_') {
		return true
	}

	// 5) Floating-literal adjacency.
	if (ca == '.' && isDigit(cb)) || (isDigit(ca) && cb == '.') {
		return true
	}

	return false
}

// punctuatorAcross reports whether gluing the tail of a to the head of b
// would spell a multi-character punctuator or an ellipsis.
func punctuatorAcross(a, b Token) bool {
	ca := a[len(a)-1]
	cb := b[0]

	// Last two of a + first of b.
	if len(a) >= 2 {
		if boundaryPunctuators[a[len(a)-2:]+string(cb)] {
			return true
		}
	}
	// Last of a + first one or two of b.
	if boundaryPunctuators[string(ca)+string(cb)] {
		return true
	}
	if len(b) >= 2 {
		if boundaryPunctuators[string(ca)+b[:2]] {
			return true
		}
	}
	// Ellipsis split across three single-dot tokens.
	if ca == '.' && len(b) >= 2 && b[0] == '.' && b[1] == '.' {
		return true
	}
	if len(a) >= 2 && a[len(a)-2] == '.' && ca == '.' && cb == '.' {
		return true
	}
	return false
}

// Comment boundary sentinels. A synthetic block comment behaves like the
// lexeme "/*" on its left edge and "*/" on its right edge.
const (
	commentOpen  = "/*"
	commentClose = "*/"
)

// NeedsSeparatorBeforeComment reports whether token a may not directly abut
// a following block comment. The canonical hazard is a lone "/" turning the
// comment opener into a line comment.
func NeedsSeparatorBeforeComment(a Token) bool {
	return NeedsSeparator(a, commentOpen)
}

// NeedsSeparatorAfterComment reports whether token b may not directly follow
// a closing block comment.
func NeedsSeparatorAfterComment(b Token) bool {
	return NeedsSeparator(commentClose, b)
}

// JoinMinimal concatenates tokens, inserting a single space exactly where
// NeedsSeparator demands one. The result re-tokenizes to the same sequence.
func JoinMinimal(toks []Token) string {
	if len(toks) == 0 {
		return ""
	}
	var out strings.Builder
	prev := ""
	for _, t := range toks {
		if prev != "" && NeedsSeparator(prev, t) {
			out.WriteByte(' ')
		}
		out.WriteString(t)
		prev = t
	}
	return out.String()
}
