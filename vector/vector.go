/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package vector renders a molecule as a vector image, with optional
// rasterization to PNG and ink-color normalization of SVG markup.
package vector

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/molgrid/molgrid/mol"
)

// Options control the vector rendering. Zero values are replaced by the
// defaults from DefaultOptions.
type Options struct {
	BondLength       float64 // drawn length of an average bond, in mm
	LineWidth        float64 // stroke width, in mm
	FontSize         float64 // label size, in points
	Margin           float64 // blank border, in mm
	FontPath         string  // TTF to load; tries the builtin paths when empty
	ShowFormalCharge bool
}

func DefaultOptions() Options {
	return Options{
		BondLength:       10,
		LineWidth:        0.5,
		FontSize:         14,
		Margin:           5,
		ShowFormalCharge: true,
	}
}

// fontPaths are tried in order when no font file is configured.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/arial.ttf",
}

// bond strokes for order 2 and 3 are offset sideways by this fraction of
// the drawn bond length.
const multiplicityOffset = 0.08

// Draw builds a canvas with the molecule drawn in black on a transparent
// background. Bonds are stroked first and labels drawn after, so labels
// always sit on top.
func Draw(m *mol.Molecule, opts Options) (*canvas.Canvas, error) {
	opts = withDefaults(opts)

	face, err := loadFace(opts)
	if err != nil {
		return nil, err
	}

	avg := m.AverageBondLength()
	if avg <= 0 {
		avg = 1
	}
	scale := opts.BondLength / avg

	minX, minY, maxX, maxY := extent(m)
	width := (maxX-minX)*scale + 2*opts.Margin
	height := (maxY-minY)*scale + 2*opts.Margin
	place := func(a mol.Atom) (float64, float64) {
		return (a.X-minX)*scale + opts.Margin, (a.Y-minY)*scale + opts.Margin
	}

	c := canvas.New(width, height)
	gc := canvas.NewContext(c)
	gc.SetStrokeColor(canvas.Black)
	gc.SetStrokeWidth(opts.LineWidth)

	for _, b := range m.Bonds {
		x1, y1 := place(m.Atoms[b.From])
		x2, y2 := place(m.Atoms[b.To])
		strokeBond(gc, x1, y1, x2, y2, b.Order, opts.BondLength*multiplicityOffset)
	}

	for _, a := range m.Atoms {
		x, y := place(a)
		t := canvas.NewTextLine(face, a.Label(opts.ShowFormalCharge), canvas.Center)
		gc.DrawText(x, y, t)
	}

	return c, nil
}

// SVG renders the molecule to SVG markup.
func SVG(m *mol.Molecule, opts Options) ([]byte, error) {
	c, err := Draw(m, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderers.SVG()(&buf, c); err != nil {
		return nil, fmt.Errorf("render SVG: %w", err)
	}
	return buf.Bytes(), nil
}

// PNG renders the molecule and rasterizes it at the given resolution in
// pixels per mm.
func PNG(m *mol.Molecule, opts Options, pixelsPerMM float64) ([]byte, error) {
	c, err := Draw(m, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderers.PNG(canvas.DPMM(pixelsPerMM))(&buf, c); err != nil {
		return nil, fmt.Errorf("render PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.BondLength <= 0 {
		opts.BondLength = def.BondLength
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Margin <= 0 {
		opts.Margin = def.Margin
	}
	return opts
}

func loadFace(opts Options) (*canvas.FontFace, error) {
	family := canvas.NewFontFamily("labels")

	paths := fontPaths
	if opts.FontPath != "" {
		paths = []string{opts.FontPath}
	}
	var err error
	for _, path := range paths {
		if err = family.LoadFontFile(path, canvas.FontRegular); err == nil {
			return family.Face(opts.FontSize, canvas.Black, canvas.FontRegular, canvas.FontNormal), nil
		}
	}
	return nil, fmt.Errorf("load label font: %w", err)
}

func extent(m *mol.Molecule) (minX, minY, maxX, maxY float64) {
	if len(m.Atoms) == 0 {
		return 0, 0, 1, 1
	}
	minX, minY = m.Atoms[0].X, m.Atoms[0].Y
	maxX, maxY = minX, minY
	for _, a := range m.Atoms[1:] {
		minX = math.Min(minX, a.X)
		maxX = math.Max(maxX, a.X)
		minY = math.Min(minY, a.Y)
		maxY = math.Max(maxY, a.Y)
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return minX, minY, maxX, maxY
}

// strokeBond draws one, two or three parallel strokes for the bond. The
// aromatic order 4 draws as a double bond, matching the text renderer.
func strokeBond(gc *canvas.Context, x1, y1, x2, y2 float64, order int, gap float64) {
	n := 1
	switch order {
	case 2, 4:
		n = 2
	case 3:
		n = 3
	}

	// unit normal to the bond direction
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length, dx/length

	for k := 0; k < n; k++ {
		off := (float64(k) - float64(n-1)/2) * gap
		gc.MoveTo(x1+nx*off, y1+ny*off)
		gc.LineTo(x2+nx*off, y2+ny*off)
		gc.Stroke()
	}
}
