/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package grid renders atom placements and bonds into a bounded character
// buffer and serializes it to text.
package grid

// A Charset is an immutable table mapping the logical glyph roles used by
// the compositor to concrete characters. Classification never looks at the
// charset; glyphs are resolved only at write time, so the two presets
// produce structurally identical drawings.
type Charset struct {
	Horizontal       rune
	Vertical         rune
	DiagonalA        rune // top-left to bottom-right
	DiagonalB        rune // bottom-left to top-right
	DoubleHorizontal rune
	DoubleVertical   rune
	TripleHorizontal rune
	Junction         rune
}

// Unicode returns the box-drawing preset.
func Unicode() Charset {
	return Charset{
		Horizontal:       '─',
		Vertical:         '│',
		DiagonalA:        '╲',
		DiagonalB:        '╱',
		DoubleHorizontal: '═',
		DoubleVertical:   '║',
		TripleHorizontal: '≡',
		Junction:         '┼',
	}
}

// ASCII returns the 7-bit fallback preset.
func ASCII() Charset {
	return Charset{
		Horizontal:       '-',
		Vertical:         '|',
		DiagonalA:        '\\',
		DiagonalB:        '/',
		DoubleHorizontal: '=',
		DoubleVertical:   '#',
		TripleHorizontal: '#',
		Junction:         '+',
	}
}

// Select picks the preset for the given configuration flag.
func Select(unicode bool) Charset {
	if unicode {
		return Unicode()
	}
	return ASCII()
}

// isLine reports whether r is one of the charset's bond glyphs. The
// junction glyph counts as a line so crossing a junction leaves it a
// junction.
func (c Charset) isLine(r rune) bool {
	switch r {
	case c.Horizontal, c.Vertical, c.DiagonalA, c.DiagonalB,
		c.DoubleHorizontal, c.DoubleVertical, c.TripleHorizontal, c.Junction:
		return true
	}
	return false
}
