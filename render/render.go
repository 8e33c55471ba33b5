/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package render ties the parser, layout engine and compositor into the
// text rendering pipeline and provides the render subcommand.
package render

import (
	"github.com/molgrid/molgrid/grid"
	"github.com/molgrid/molgrid/layout"
	"github.com/molgrid/molgrid/mol"
)

// Options is the full set of recognized rendering configuration.
type Options struct {
	TargetBondChars   float64 // grid columns per average bond
	Padding           int     // blank cells around the drawing
	ScaleBumpFactor   float64 // scale multiplier after a label collision
	MaxScaleAttempts  int     // collision retry cap
	ShowFormalCharge  bool    // append charge suffixes to labels
	UseUnicodeCharset bool    // box-drawing glyphs instead of 7-bit
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		TargetBondChars:   1.0,
		Padding:           2,
		ScaleBumpFactor:   1.12,
		MaxScaleAttempts:  8,
		ShowFormalCharge:  true,
		UseUnicodeCharset: true,
	}
}

// Text renders a structural table to a character-grid diagram. It is a
// pure function of its arguments: identical input and options always
// produce byte-identical output, and no state survives the call.
func Text(moltext string, opts Options) (string, error) {
	m, err := mol.Parse(moltext)
	if err != nil {
		return "", err
	}
	return Molecule(m, opts), nil
}

// Molecule renders an already parsed molecule.
func Molecule(m *mol.Molecule, opts Options) string {
	labels := make([]string, len(m.Atoms))
	for i, a := range m.Atoms {
		labels[i] = a.Label(opts.ShowFormalCharge)
	}

	placed := layout.Place(m, labels, layout.Options{
		TargetBondChars:  opts.TargetBondChars,
		ScaleBumpFactor:  opts.ScaleBumpFactor,
		MaxScaleAttempts: opts.MaxScaleAttempts,
	})

	return grid.Compose(m, placed, labels, grid.Select(opts.UseUnicodeCharset), opts.Padding)
}
