/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package grid

import (
	"github.com/molgrid/molgrid/layout"
	"github.com/molgrid/molgrid/mol"
)

// Compose draws the molecule onto a fresh grid and serializes it.
//
// labels and placed must be index-aligned with m.Atoms. Bonds are drawn
// first, labels second, so atom identity is never obscured (see the Grid
// write policies). padding adds symmetric blank cells around the content;
// they are invisible in the text output but guarantee the buffer can hold
// multiplicity strokes that fall outside the label bounding box.
func Compose(m *mol.Molecule, placed []layout.PlacedAtom, labels []string, charset Charset, padding int) string {
	if len(m.Atoms) == 0 {
		return ""
	}

	minX, minY, maxX, maxY := bounds(m, placed, labels)
	minX -= padding
	minY -= padding
	maxX += padding
	maxY += padding

	g := New(minX, minY, maxX, maxY, charset)

	for _, b := range m.Bonds {
		drawBond(g, charset, placed[b.From], placed[b.To], displayOrder(b.Order))
	}
	for i, p := range placed {
		drawLabel(g, p, labels[i])
	}

	return g.String()
}

// displayOrder maps the historical aromatic order 4 to a double bond and
// clamps anything else into the drawable range.
func displayOrder(order int) int {
	switch {
	case order == 4:
		return 2
	case order < 1:
		return 1
	case order > 3:
		return 3
	}
	return order
}

// bounds unions every label footprint with every bond midpoint. A diagonal
// bond of order two or three draws parallel strokes one cell to the side of
// its midpoint, so their presence widens the box by one cell all round.
func bounds(m *mol.Molecule, placed []layout.PlacedAtom, labels []string) (minX, minY, maxX, maxY int) {
	minX, minY = placed[0].X, placed[0].Y
	maxX, maxY = minX, minY

	grow := func(x, y int) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	for i, p := range placed {
		w := len([]rune(labels[i]))
		lo := p.X - w/2
		grow(lo, p.Y)
		grow(lo+w-1, p.Y)
	}

	margin := 0
	for _, b := range m.Bonds {
		p1, p2 := placed[b.From], placed[b.To]
		grow((p1.X+p2.X)/2, (p1.Y+p2.Y)/2)
		if p1.X != p2.X && p1.Y != p2.Y && displayOrder(b.Order) >= 2 {
			margin = 1
		}
	}

	return minX - margin, minY - margin, maxX + margin, maxY + margin
}

// drawBond writes the single glyph cell for a bond, at the midpoint of its
// endpoints. Endpoints are always even, so the midpoint is a whole cell.
func drawBond(g *Grid, cs Charset, p1, p2 layout.PlacedAtom, order int) {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2

	switch {
	case p1.Y == p2.Y:
		g.LineWrite(mx, my, horizontalGlyph(cs, order))
	case p1.X == p2.X:
		g.LineWrite(mx, my, verticalGlyph(cs, order))
	default:
		drawDiagonal(g, cs, p1, p2, mx, my, order)
	}
}

func horizontalGlyph(cs Charset, order int) rune {
	switch order {
	case 2:
		return cs.DoubleHorizontal
	case 3:
		return cs.TripleHorizontal
	}
	return cs.Horizontal
}

// verticalGlyph has no triple variant in either preset; a triple vertical
// bond reuses the double glyph.
func verticalGlyph(cs Charset, order int) rune {
	if order >= 2 {
		return cs.DoubleVertical
	}
	return cs.Vertical
}

// drawDiagonal picks the diagonal orientation from the sign of the product
// of the coordinate deltas and encodes multiplicity with parallel strokes
// offset along the row, since one cell cannot show it otherwise. Doubles
// get one extra stroke on the side keyed to the orientation, triples one
// on each side.
func drawDiagonal(g *Grid, cs Charset, p1, p2 layout.PlacedAtom, mx, my, order int) {
	glyph := cs.DiagonalA
	offset := 1
	if (p2.X-p1.X)*(p2.Y-p1.Y) < 0 {
		glyph = cs.DiagonalB
		offset = -1
	}

	g.LineWrite(mx, my, glyph)
	switch order {
	case 2:
		g.LineWrite(mx+offset, my, glyph)
	case 3:
		g.LineWrite(mx+1, my, glyph)
		g.LineWrite(mx-1, my, glyph)
	}
}

// drawLabel writes the label centered on the atom's cell.
func drawLabel(g *Grid, p layout.PlacedAtom, label string) {
	runes := []rune(label)
	lo := p.X - len(runes)/2
	for k, r := range runes {
		g.AtomWrite(lo+k, p.Y, r)
	}
}
