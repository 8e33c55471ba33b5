/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package layout projects real-valued atom coordinates onto an integer
// character grid, choosing a scale at which no two atom labels collide.
package layout

import (
	"log/slog"
	"math"
	"sort"

	"github.com/molgrid/molgrid/mol"
)

// A PlacedAtom is the grid cell assigned to an atom. The slice returned by
// Place is index-aligned with the molecule's atom list.
type PlacedAtom struct {
	X int
	Y int
}

// Options control the scale search.
type Options struct {
	// TargetBondChars is the number of grid columns an average-length bond
	// should span, before the factor of two introduced by even snapping.
	TargetBondChars float64
	// ScaleBumpFactor multiplies the scale after a label collision.
	ScaleBumpFactor float64
	// MaxScaleAttempts caps the number of collision retries.
	MaxScaleAttempts int
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		TargetBondChars:  1.0,
		ScaleBumpFactor:  1.12,
		MaxScaleAttempts: 8,
	}
}

// fallbackBondLength stands in for the average bond length when the
// molecule has no bonds at all.
const fallbackBondLength = 1.0

const minBondLength = 1e-6

// Place computes grid placements for every atom. labels must be
// index-aligned with m.Atoms and is consulted only for collision checks,
// so the result is independent of the glyph set used later.
//
// The scale starts at a value calibrated so an average bond spans two grid
// columns, leaving one cell between bonded labels for the bond glyph. When
// two labels on a row touch or overlap, the scale is bumped and every atom
// is re-placed. If collisions persist past the retry cap the last placement
// is returned as a best effort; a cramped drawing is preferred over no
// drawing.
func Place(m *mol.Molecule, labels []string, opts Options) []PlacedAtom {
	avg := m.AverageBondLength()
	if avg == 0 {
		avg = fallbackBondLength
	}
	scale := (2 * opts.TargetBondChars) / math.Max(avg, minBondLength)

	var placed []PlacedAtom
	for attempt := 0; ; attempt++ {
		placed = snapAll(m.Atoms, scale)
		if !anyOverlap(placed, labels) {
			return placed
		}
		if attempt >= opts.MaxScaleAttempts {
			slog.Debug("accepting layout with residual label overlap", "attempts", attempt, "scale", scale)
			return placed
		}
		scale *= opts.ScaleBumpFactor
	}
}

func snapAll(atoms []mol.Atom, scale float64) []PlacedAtom {
	placed := make([]PlacedAtom, len(atoms))
	for i, a := range atoms {
		// The grid row axis points down, the source y axis points up.
		placed[i] = PlacedAtom{
			X: nearestEven(a.X * scale),
			Y: nearestEven(-a.Y * scale),
		}
	}
	return placed
}

// nearestEven rounds to the nearest even integer. Keeping every placement
// even means the midpoint of any bonded pair lands on a whole cell, and
// bonded atoms are never dropped onto adjacent cells with no room for a
// bond glyph.
func nearestEven(v float64) int {
	return int(math.Round(v/2)) * 2
}

// span is the contiguous column range occupied by one label on its row.
type span struct {
	lo int
	hi int
}

func labelSpan(p PlacedAtom, label string) span {
	w := len([]rune(label))
	lo := p.X - w/2
	return span{lo: lo, hi: lo + w - 1}
}

// anyOverlap reports whether any two labels that share a row touch or
// intersect. Touching counts: a one-cell gap between labels is mandatory
// so neighbouring labels never read as one fused symbol.
func anyOverlap(placed []PlacedAtom, labels []string) bool {
	rows := make(map[int][]span)
	for i, p := range placed {
		rows[p.Y] = append(rows[p.Y], labelSpan(p, labels[i]))
	}
	for _, spans := range rows {
		sort.Slice(spans, func(a, b int) bool { return spans[a].lo < spans[b].lo })
		for i := 1; i < len(spans); i++ {
			if spans[i].lo <= spans[i-1].hi+1 {
				return true
			}
		}
	}
	return false
}
