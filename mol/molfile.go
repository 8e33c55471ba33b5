/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package mol

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Structural failures that abort the parse. Anything below the level of the
// whole table (a bad coordinate, a bad bond order) is recovered with a
// documented default instead.
var (
	ErrTooShort           = errors.New("structural table has fewer than 4 lines")
	ErrUnsupportedVersion = errors.New("extended (V3000) structural tables are not supported")
	ErrInvalidCounts      = errors.New("counts line is unreadable")
)

const chargeMarker = "M  CHG"

// countsFallback matches two small integers at the start of a counts line
// whose fixed columns did not parse. Both counts must be present: a line
// readable as a single integer is treated as unreadable.
var countsFallback = regexp.MustCompile(`^\s*(\d{1,3})\s+(\d{1,3})`)

// Parse decodes a fixed-width structural table (the molfile V2000 family)
// into a Molecule.
//
// The parser is deliberately lenient: individual fields that fail to parse
// fall back to defaults (coordinate 0.0, symbol "C", bond endpoint 0, bond
// order 1) rather than failing the table. Only structural problems are
// fatal: fewer than four lines, an extended-table version marker, or a
// counts line that is unreadable even by the tolerant fallback.
func Parse(text string) (*Molecule, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) < 4 {
		return nil, ErrTooShort
	}
	for _, l := range lines {
		if strings.Contains(l, "V3000") {
			return nil, ErrUnsupportedVersion
		}
	}

	atomCount, bondCount, err := parseCounts(lines[3])
	if err != nil {
		return nil, err
	}
	if !validCounts(atomCount, bondCount) {
		return nil, fmt.Errorf("%w: negative counts", ErrInvalidCounts)
	}

	m := &Molecule{
		Atoms:   make([]Atom, 0, atomCount),
		Bonds:   make([]Bond, 0, bondCount),
		Charges: make(map[int]int),
	}

	line := func(i int) string {
		if i < 0 || i >= len(lines) {
			return ""
		}
		return lines[i]
	}

	for i := 0; i < atomCount; i++ {
		l := line(4 + i)
		m.Atoms = append(m.Atoms, Atom{
			Index:  i,
			X:      floatField(l, 0, 10, 0),
			Y:      floatField(l, 10, 20, 0),
			Symbol: symbolField(l),
		})
	}

	// A table that declares bonds but no atoms keeps its empty atom list
	// and drops the bonds, which have nothing to connect.
	if atomCount == 0 && bondCount > 0 {
		slog.Debug("dropping bonds from table with no atoms", "bonds", bondCount)
	} else {
		for i := 0; i < bondCount; i++ {
			l := line(4 + atomCount + i)
			m.Bonds = append(m.Bonds, Bond{
				From:  clampIndex(bondEndpoint(l, 0, 3), atomCount),
				To:    clampIndex(bondEndpoint(l, 3, 6), atomCount),
				Order: intField(l, 6, 9, 1),
			})
		}
	}

	for i := 4 + atomCount + bondCount; i < len(lines); i++ {
		parseChargeLine(line(i), m.Charges)
	}
	for idx, chg := range m.Charges {
		if idx >= 0 && idx < len(m.Atoms) {
			m.Atoms[idx].Charge = chg
		}
	}

	return m, nil
}

// parseCounts reads the atom and bond counts from fixed columns, falling
// back to a tolerant whitespace-separated match when the fixed slices are
// not numbers.
func parseCounts(l string) (int, int, error) {
	atoms, errA := strconv.Atoi(strings.TrimSpace(field(l, 0, 3)))
	bonds, errB := strconv.Atoi(strings.TrimSpace(field(l, 3, 6)))
	if errA == nil && errB == nil {
		return atoms, bonds, nil
	}
	if g := countsFallback.FindStringSubmatch(l); g != nil {
		atoms, _ = strconv.Atoi(g[1])
		bonds, _ = strconv.Atoi(g[2])
		return atoms, bonds, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCounts, l)
}

// validCounts rejects counts the fixed columns can technically parse but
// that no table can have.
func validCounts(atoms, bonds int) bool {
	return atoms >= 0 && bonds >= 0
}

// parseChargeLine applies one charge property record to the charge map.
// Each record declares a pair count followed by fixed 8-column (index,
// charge) pairs; later records overwrite earlier ones for the same atom.
func parseChargeLine(l string, charges map[int]int) {
	if !strings.HasPrefix(l, chargeMarker) {
		return
	}
	n := intField(l, 6, 9, 0)
	for k := 0; k < n; k++ {
		off := 9 + 8*k
		idxText := strings.TrimSpace(field(l, off, off+4))
		idx, err := strconv.Atoi(idxText)
		if err != nil {
			continue
		}
		charges[idx-1] = intField(l, off+4, off+8, 0)
	}
}

// bondEndpoint reads a 1-based atom index from fixed columns and converts
// it to 0-based, defaulting to atom 0 when the field does not parse.
func bondEndpoint(l string, lo, hi int) int {
	v, err := strconv.Atoi(strings.TrimSpace(field(l, lo, hi)))
	if err != nil {
		return 0
	}
	return v - 1
}

// clampIndex forces a bond endpoint into [0, atomCount). The table format
// never guarantees endpoints are in range and a corrupt index would
// otherwise walk off the atom list.
func clampIndex(idx, atomCount int) int {
	if atomCount == 0 {
		return 0
	}
	if idx < 0 {
		slog.Debug("clamped out-of-range bond endpoint", "index", idx)
		return 0
	}
	if idx >= atomCount {
		slog.Debug("clamped out-of-range bond endpoint", "index", idx)
		return atomCount - 1
	}
	return idx
}

// field returns the slice of l covered by columns [lo, hi), tolerating
// short lines.
func field(l string, lo, hi int) string {
	if lo >= len(l) {
		return ""
	}
	if hi > len(l) {
		hi = len(l)
	}
	return l[lo:hi]
}

func floatField(l string, lo, hi int, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field(l, lo, hi)), 64)
	if err != nil {
		return def
	}
	return v
}

func intField(l string, lo, hi int, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(field(l, lo, hi)))
	if err != nil {
		return def
	}
	return v
}

func symbolField(l string) string {
	sym := strings.TrimSpace(field(l, 31, 34))
	if sym == "" {
		return "C"
	}
	return sym
}
