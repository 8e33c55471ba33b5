package grid

import (
	"strings"
	"testing"

	"github.com/molgrid/molgrid/layout"
	"github.com/molgrid/molgrid/mol"
)

func composeTestMol(bondOrder int) (*mol.Molecule, []layout.PlacedAtom, []string) {
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Index: 0, Symbol: "C"},
			{Index: 1, Symbol: "C"},
		},
		Bonds: []mol.Bond{{From: 0, To: 1, Order: bondOrder}},
	}
	placed := []layout.PlacedAtom{{X: 0, Y: 0}, {X: 2, Y: 0}}
	return m, placed, []string{"C", "C"}
}

func TestComposeHorizontalOrders(t *testing.T) {
	testCases := []struct {
		order int
		want  string
	}{
		{order: 1, want: "C─C"},
		{order: 2, want: "C═C"},
		{order: 3, want: "C≡C"},
		{order: 4, want: "C═C"}, // aromatic draws as double
	}

	for _, tc := range testCases {
		m, placed, labels := composeTestMol(tc.order)
		if got := Compose(m, placed, labels, Unicode(), 2); got != tc.want {
			t.Errorf("order %d: Compose = %q, wanted %q", tc.order, got, tc.want)
		}
	}
}

func TestComposeASCII(t *testing.T) {
	m, placed, labels := composeTestMol(1)
	if got := Compose(m, placed, labels, ASCII(), 2); got != "C-C" {
		t.Errorf("Compose = %q, wanted C-C", got)
	}
}

func TestComposeVerticalBond(t *testing.T) {
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Index: 0, Symbol: "C"},
			{Index: 1, Symbol: "O"},
		},
		Bonds: []mol.Bond{{From: 0, To: 1, Order: 1}},
	}
	placed := []layout.PlacedAtom{{X: 0, Y: 0}, {X: 0, Y: 2}}

	want := "C\n│\nO"
	if got := Compose(m, placed, []string{"C", "O"}, Unicode(), 2); got != want {
		t.Errorf("Compose = %q, wanted %q", got, want)
	}
}

func TestComposeDiagonalOrientation(t *testing.T) {
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Index: 0, Symbol: "C"},
			{Index: 1, Symbol: "C"},
		},
		Bonds: []mol.Bond{{From: 0, To: 1, Order: 1}},
	}

	// down-right run
	down := Compose(m, []layout.PlacedAtom{{X: 0, Y: 0}, {X: 2, Y: 2}}, []string{"C", "C"}, Unicode(), 2)
	if !strings.ContainsRune(down, '╲') {
		t.Errorf("down-right bond missing ╲:\n%s", down)
	}

	// up-right run
	up := Compose(m, []layout.PlacedAtom{{X: 0, Y: 0}, {X: 2, Y: -2}}, []string{"C", "C"}, Unicode(), 2)
	if !strings.ContainsRune(up, '╱') {
		t.Errorf("up-right bond missing ╱:\n%s", up)
	}
}

func TestComposeDiagonalMultiplicity(t *testing.T) {
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Index: 0, Symbol: "C"},
			{Index: 1, Symbol: "C"},
		},
		Bonds: []mol.Bond{{From: 0, To: 1, Order: 2}},
	}
	placed := []layout.PlacedAtom{{X: 0, Y: 0}, {X: 2, Y: 2}}

	got := Compose(m, placed, []string{"C", "C"}, Unicode(), 2)
	if strings.Count(got, "╲") != 2 {
		t.Errorf("double diagonal should draw two parallel strokes:\n%s", got)
	}

	m.Bonds[0].Order = 3
	got = Compose(m, placed, []string{"C", "C"}, Unicode(), 2)
	if strings.Count(got, "╲") != 3 {
		t.Errorf("triple diagonal should draw three strokes:\n%s", got)
	}
}

func TestComposeJunction(t *testing.T) {
	// two bonds whose midpoints share a cell
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Index: 0, Symbol: "C"},
			{Index: 1, Symbol: "C"},
			{Index: 2, Symbol: "C"},
			{Index: 3, Symbol: "C"},
		},
		Bonds: []mol.Bond{
			{From: 0, To: 1, Order: 1},
			{From: 2, To: 3, Order: 1},
		},
	}
	placed := []layout.PlacedAtom{
		{X: 0, Y: 0}, {X: 4, Y: 4},
		{X: 0, Y: 4}, {X: 4, Y: 0},
	}

	got := Compose(m, placed, []string{"C", "C", "C", "C"}, Unicode(), 2)
	if !strings.ContainsRune(got, '┼') {
		t.Errorf("crossing bonds should produce a junction:\n%s", got)
	}
}

func TestComposeLabelNeverObscured(t *testing.T) {
	// a bond midpoint that lands on another atom's label cell
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Index: 0, Symbol: "C"},
			{Index: 1, Symbol: "C"},
			{Index: 2, Symbol: "N"},
		},
		Bonds: []mol.Bond{{From: 0, To: 1, Order: 1}},
	}
	placed := []layout.PlacedAtom{
		{X: 0, Y: 0}, {X: 4, Y: 0},
		{X: 2, Y: 0}, // sits exactly on the bond midpoint
	}

	got := Compose(m, placed, []string{"C", "C", "N"}, Unicode(), 2)
	if !strings.Contains(got, "N") {
		t.Errorf("label hidden by bond glyph:\n%s", got)
	}
	if strings.ContainsRune(got, '─') {
		t.Errorf("bond glyph drawn through a label:\n%s", got)
	}
}

func TestComposeEmptyMolecule(t *testing.T) {
	m := &mol.Molecule{Charges: map[int]int{}}
	if got := Compose(m, nil, nil, Unicode(), 2); got != "" {
		t.Errorf("Compose = %q, wanted empty", got)
	}
}

func TestSelect(t *testing.T) {
	if Select(true) != Unicode() {
		t.Errorf("Select(true) is not the Unicode preset")
	}
	if Select(false) != ASCII() {
		t.Errorf("Select(false) is not the ASCII preset")
	}
}
