/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package mol holds the molecule data model and the structural-table parser.
package mol

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// An Atom is a single atom read from a structural table. Index is the
// position of the atom in the table, counting from zero. X and Y are the
// source coordinates in the table's own length units.
type Atom struct {
	Index  int
	X      float64
	Y      float64
	Symbol string
	Charge int
}

// A Bond connects two atoms by their indices. Order is the bond
// multiplicity: 1, 2 or 3, with 4 meaning aromatic.
type Bond struct {
	From  int
	To    int
	Order int
}

// A Molecule is the fully materialized result of parsing one structural
// table. Charges holds the formal charges declared in the property block,
// keyed by atom index; atoms not present in the map carry charge zero.
type Molecule struct {
	Atoms   []Atom
	Bonds   []Bond
	Charges map[int]int
}

// AverageBondLength returns the mean euclidean distance between the bonded
// atom pairs, or zero when the molecule has no bonds.
func (m *Molecule) AverageBondLength() float64 {
	if len(m.Bonds) == 0 {
		return 0
	}
	var total float64
	for _, b := range m.Bonds {
		a1 := m.Atoms[b.From]
		a2 := m.Atoms[b.To]
		total += math.Hypot(a2.X-a1.X, a2.Y-a1.Y)
	}
	return total / float64(len(m.Bonds))
}

// Label returns the text drawn for the atom: the canonical element symbol,
// followed by a charge suffix when the atom carries a formal charge and
// showCharge is set. A charge of magnitude one renders as a bare sign,
// anything larger as sign plus magnitude.
func (a Atom) Label(showCharge bool) string {
	sym := canonicalSymbol(a.Symbol)
	if !showCharge || a.Charge == 0 {
		return sym
	}
	switch a.Charge {
	case 1:
		return sym + "+"
	case -1:
		return sym + "-"
	}
	return fmt.Sprintf("%s%+d", sym, a.Charge)
}

// canonicalSymbol uppercases the leading letter of an element symbol, so a
// lowercase aromatic "c" reads as "C". The remainder is left as written.
func canonicalSymbol(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "C"
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
