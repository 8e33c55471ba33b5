/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package vector

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/molgrid/molgrid/logging"
	"github.com/molgrid/molgrid/mol"
	"github.com/molgrid/molgrid/resolve"
)

var imageopts = struct {
	inputFilename  string
	identifier     string
	outputFilename string
	resolverURL    string

	format     string
	ink        string
	fontPath   string
	hideCharge bool

	bondLength  float64
	lineWidth   float64
	fontSize    float64
	pixelsPerMM float64
}{}

var Command = &cli.Command{
	Name:   "image",
	Usage:  "Render a molecule as an SVG or PNG image.",
	Action: imageCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "molfile to read, - for stdin",
			Destination: &imageopts.inputFilename,
		},
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "chemical name or identifier to look up instead of reading a molfile",
			Destination: &imageopts.identifier,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "output filename, stdout when empty",
			Destination: &imageopts.outputFilename,
		},
		&cli.StringFlag{
			Name:        "resolver",
			Usage:       "base URL of the structure resolver used with --name",
			Value:       resolve.DefaultBaseURL,
			Destination: &imageopts.resolverURL,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output format: svg or png",
			Value:       "svg",
			Destination: &imageopts.format,
		},
		&cli.StringFlag{
			Name:        "ink",
			Usage:       "force all strokes and fills in SVG output to this color",
			Destination: &imageopts.ink,
		},
		&cli.StringFlag{
			Name:        "font",
			Usage:       "TTF file for atom labels",
			Destination: &imageopts.fontPath,
		},
		&cli.BoolFlag{
			Name:        "no-charge",
			Usage:       "omit formal charge suffixes from atom labels",
			Destination: &imageopts.hideCharge,
		},
		&cli.Float64Flag{
			Name:        "bond-length",
			Usage:       "drawn length of an average bond in mm",
			Value:       10,
			Destination: &imageopts.bondLength,
		},
		&cli.Float64Flag{
			Name:        "line-width",
			Usage:       "stroke width in mm",
			Value:       0.5,
			Destination: &imageopts.lineWidth,
		},
		&cli.Float64Flag{
			Name:        "font-size",
			Usage:       "label size in points",
			Value:       14,
			Destination: &imageopts.fontSize,
		},
		&cli.Float64Flag{
			Name:        "resolution",
			Usage:       "raster resolution in pixels per mm (png only)",
			Value:       5,
			Destination: &imageopts.pixelsPerMM,
		},
	}, logging.Flags...),
}

func imageCmd(cc *cli.Context) error {
	logging.Setup()

	text, err := imageInput(cc)
	if err != nil {
		return err
	}

	m, err := mol.Parse(text)
	if err != nil {
		return fmt.Errorf("parse molfile: %w", err)
	}

	opts := Options{
		BondLength:       imageopts.bondLength,
		LineWidth:        imageopts.lineWidth,
		FontSize:         imageopts.fontSize,
		FontPath:         imageopts.fontPath,
		ShowFormalCharge: !imageopts.hideCharge,
	}

	var data []byte
	switch strings.ToLower(imageopts.format) {
	case "svg":
		data, err = SVG(m, opts)
		if err == nil && imageopts.ink != "" {
			data = Monochrome(data, imageopts.ink)
		}
	case "png":
		data, err = PNG(m, opts, imageopts.pixelsPerMM)
	default:
		return fmt.Errorf("unsupported output format: %s", imageopts.format)
	}
	if err != nil {
		return err
	}

	if imageopts.outputFilename == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(imageopts.outputFilename, data, 0o666); err != nil {
		return fmt.Errorf("failed writing output file: %w", err)
	}
	return nil
}

func imageInput(cc *cli.Context) (string, error) {
	switch {
	case imageopts.identifier != "":
		r := resolve.New(imageopts.resolverURL)
		text, err := r.Molfile(cc.Context, imageopts.identifier)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", imageopts.identifier, err)
		}
		return text, nil
	case imageopts.inputFilename == "" || imageopts.inputFilename == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(imageopts.inputFilename)
		if err != nil {
			return "", fmt.Errorf("read molfile: %w", err)
		}
		return string(data), nil
	}
}
