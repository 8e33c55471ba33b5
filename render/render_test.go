package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/molgrid/molgrid/mol"
)

func atomLine(x, y float64, sym string) string {
	return fmt.Sprintf("%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0", x, y, 0.0, sym)
}

func bondLine(from, to, order int) string {
	return fmt.Sprintf("%3d%3d%3d  0", from, to, order)
}

func molfile(atoms, bonds int, lines ...string) string {
	all := append([]string{
		"",
		"  molgrid test",
		"",
		fmt.Sprintf("%3d%3d  0  0  0  0  0  0  0  0999 V2000", atoms, bonds),
	}, lines...)
	all = append(all, "M  END")
	return strings.Join(all, "\n")
}

var ethane = molfile(2, 1,
	atomLine(0, 0, "C"),
	atomLine(1, 0, "C"),
	bondLine(1, 2, 1),
)

func TestTextSingleBond(t *testing.T) {
	got, err := Text(ethane, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if got != "C─C" {
		t.Errorf("Text = %q, wanted %q", got, "C─C")
	}
}

func TestTextSingleBondASCII(t *testing.T) {
	opts := DefaultOptions()
	opts.UseUnicodeCharset = false

	got, err := Text(ethane, opts)
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if got != "C-C" {
		t.Errorf("Text = %q, wanted %q", got, "C-C")
	}
}

func TestTextNoAtomsWithBonds(t *testing.T) {
	// a table declaring a bond but no atoms renders as nothing
	text := molfile(0, 1, bondLine(1, 2, 1))

	got, err := Text(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if got != "" {
		t.Errorf("Text = %q, wanted empty output", got)
	}
}

func TestTextChargeSuffixes(t *testing.T) {
	text := molfile(2, 0,
		atomLine(0, 0, "O"),
		atomLine(2, 0, "Fe"),
		"M  CHG  2   1  -1   2   2",
	)

	got, err := Text(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if !strings.Contains(got, "O-") {
		t.Errorf("charge -1 should render a bare sign suffix, got %q", got)
	}
	if !strings.Contains(got, "Fe+2") {
		t.Errorf("charge +2 should render sign and magnitude, got %q", got)
	}

	opts := DefaultOptions()
	opts.ShowFormalCharge = false
	got, err = Text(text, opts)
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if strings.ContainsAny(got, "+-") {
		t.Errorf("charge suffixes rendered with display disabled: %q", got)
	}
}

func TestTextAromaticRendersAsDouble(t *testing.T) {
	aromatic := molfile(2, 1,
		atomLine(0, 0, "C"),
		atomLine(1, 0, "C"),
		bondLine(1, 2, 4),
	)
	double := molfile(2, 1,
		atomLine(0, 0, "C"),
		atomLine(1, 0, "C"),
		bondLine(1, 2, 2),
	)

	gotAromatic, err := Text(aromatic, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	gotDouble, err := Text(double, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if gotAromatic != gotDouble {
		t.Errorf("aromatic bond %q differs from double bond %q", gotAromatic, gotDouble)
	}
}

// benzene with alternating bond orders, a realistic shape for the edge
// trimming and whitespace properties.
var benzene = molfile(6, 6,
	atomLine(0, 1, "C"),
	atomLine(0.87, 0.5, "C"),
	atomLine(0.87, -0.5, "C"),
	atomLine(0, -1, "C"),
	atomLine(-0.87, -0.5, "C"),
	atomLine(-0.87, 0.5, "C"),
	bondLine(1, 2, 1),
	bondLine(2, 3, 2),
	bondLine(3, 4, 1),
	bondLine(4, 5, 2),
	bondLine(5, 6, 1),
	bondLine(6, 1, 2),
)

func TestTextOutputHasCleanEdges(t *testing.T) {
	got, err := Text(benzene, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}

	lines := strings.Split(got, "\n")
	if len(lines) == 0 {
		t.Fatal("no output")
	}
	if strings.TrimSpace(lines[0]) == "" {
		t.Errorf("leading blank line in output:\n%s", got)
	}
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		t.Errorf("trailing blank line in output:\n%s", got)
	}
	for i, l := range lines {
		if l != strings.TrimRight(l, " \t") {
			t.Errorf("line %d has trailing whitespace: %q", i, l)
		}
	}
}

func TestTextIdempotent(t *testing.T) {
	first, err := Text(benzene, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Text(benzene, DefaultOptions())
		if err != nil {
			t.Fatalf("Text returned error: %v", err)
		}
		if again != first {
			t.Fatalf("render %d differs from the first:\n%q\n%q", i, again, first)
		}
	}
}

func dimensions(s string) (w, h int) {
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	return w, len(lines)
}

func TestTextSizeMonotoneUnderConfigGrowth(t *testing.T) {
	opts := DefaultOptions()
	base, err := Text(benzene, opts)
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	w0, h0 := dimensions(base)

	for pad := opts.Padding; pad <= opts.Padding+4; pad++ {
		padded := opts
		padded.Padding = pad
		got, err := Text(benzene, padded)
		if err != nil {
			t.Fatalf("Text returned error: %v", err)
		}
		w, h := dimensions(got)
		if w < w0 || h < h0 {
			t.Errorf("padding %d shrank output to %dx%d from %dx%d", pad, w, h, w0, h0)
		}
	}

	for _, bump := range []float64{1.12, 1.25, 1.5} {
		bumped := opts
		bumped.ScaleBumpFactor = bump
		got, err := Text(benzene, bumped)
		if err != nil {
			t.Fatalf("Text returned error: %v", err)
		}
		w, h := dimensions(got)
		if w < w0 || h < h0 {
			t.Errorf("bump factor %v shrank output to %dx%d from %dx%d", bump, w, h, w0, h0)
		}
	}
}

func TestTextParseErrorsPropagate(t *testing.T) {
	_, err := Text("too\nshort", DefaultOptions())
	if !errors.Is(err, mol.ErrTooShort) {
		t.Errorf("Text returned %v, wanted %v", err, mol.ErrTooShort)
	}
}

func TestTextVerticalBond(t *testing.T) {
	text := molfile(2, 1,
		atomLine(0, 0, "C"),
		atomLine(0, 1, "O"),
		bondLine(1, 2, 1),
	)

	got, err := Text(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	// the oxygen is above the carbon in source coordinates, so it must be
	// on the first output row
	if got != "O\n│\nC" {
		t.Errorf("Text = %q, wanted %q", got, "O\n│\nC")
	}
}
