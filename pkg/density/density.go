// Package density defines the glyph density model used to compare rendered
// program text against an ASCII-art target.
//
// A density is a value in {0.0, 1.0}: 1.0 means a cell renders as "ink" in a
// monospaced font, 0.0 means it renders empty. The default map assigns 0.0 to
// the space character and 1.0 to every other ASCII code point. Code points
// outside the ASCII range are always treated as ink.
package density

// Size is the number of code points covered by a Map (the ASCII range).
const Size = 128

// Map is an immutable lookup from ASCII code point to density.
// Construct one with Default; the zero value maps everything to 0.0 and is
// not useful.
type Map struct {
	v [Size]float64
}

// Default returns the standard binary density map: space is 0.0, every other
// ASCII code point is 1.0.
func Default() Map {
	var m Map
	for i := range m.v {
		m.v[i] = 1.0
	}
	m.v[' '] = 0.0
	return m
}

// Of returns the density of code point r. Code points outside [0, Size)
// default to 1.0.
func (m Map) Of(r rune) float64 {
	if r >= 0 && r < Size {
		return m.v[r]
	}
	return 1.0
}

// OfByte returns the density of a single byte. Bytes >= Size (UTF-8
// continuation or lead bytes) default to 1.0.
func (m Map) OfByte(b byte) float64 {
	if b < Size {
		return m.v[b]
	}
	return 1.0
}

// Ink reports whether code point r renders as ink under the map.
func (m Map) Ink(r rune) bool {
	return m.Of(r) > 0.5
}

// InkByte reports whether byte b renders as ink under the map.
func (m Map) InkByte(b byte) bool {
	return m.OfByte(b) > 0.5
}
