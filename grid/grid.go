/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package grid

import "strings"

// A Grid is a bounded 2D character buffer addressed by world coordinates.
// It is built fresh for every render and thrown away after serialization.
//
// The two write methods carry the draw-order contract: bonds are drawn with
// LineWrite, which refuses to clobber anything that is not a bond glyph,
// and labels are drawn with AtomWrite, which always wins. Calling them in
// either order can never leave an atom obscured by a line.
type Grid struct {
	minX, minY int
	w, h       int
	cells      []rune
	charset    Charset
}

// New creates a blank grid covering the inclusive cell range
// (minX,minY)-(maxX,maxY).
func New(minX, minY, maxX, maxY int, charset Charset) *Grid {
	g := &Grid{
		minX:    minX,
		minY:    minY,
		w:       maxX - minX + 1,
		h:       maxY - minY + 1,
		charset: charset,
	}
	g.cells = make([]rune, g.w*g.h)
	for i := range g.cells {
		g.cells[i] = ' '
	}
	return g
}

func (g *Grid) idx(x, y int) (int, bool) {
	x -= g.minX
	y -= g.minY
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return 0, false
	}
	return y*g.w + x, true
}

// LineWrite places a bond glyph. A blank cell takes the glyph; a cell that
// already holds a bond glyph becomes the junction glyph; anything else is
// left untouched.
func (g *Grid) LineWrite(x, y int, r rune) {
	i, ok := g.idx(x, y)
	if !ok {
		return
	}
	switch {
	case g.cells[i] == ' ':
		g.cells[i] = r
	case g.charset.isLine(g.cells[i]):
		g.cells[i] = g.charset.Junction
	}
}

// AtomWrite places a label character, overwriting whatever is there.
func (g *Grid) AtomWrite(x, y int, r rune) {
	if i, ok := g.idx(x, y); ok {
		g.cells[i] = r
	}
}

// String serializes the buffer: rows are cropped to the used extent on all
// four sides, trailing spaces are stripped from every row, and rows are
// joined with single newlines.
func (g *Grid) String() string {
	minRow, maxRow := g.h, -1
	minCol := g.w
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.cells[y*g.w+x] != ' ' {
				if y < minRow {
					minRow = y
				}
				maxRow = y
				if x < minCol {
					minCol = x
				}
			}
		}
	}
	if maxRow < 0 {
		return ""
	}

	rows := make([]string, 0, maxRow-minRow+1)
	for y := minRow; y <= maxRow; y++ {
		row := string(g.cells[y*g.w+minCol : (y+1)*g.w])
		rows = append(rows, strings.TrimRight(row, " "))
	}
	return strings.Join(rows, "\n")
}
