/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package render

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/molgrid/molgrid/logging"
	"github.com/molgrid/molgrid/resolve"
)

var renderopts = struct {
	inputFilename  string
	identifier     string
	outputFilename string
	resolverURL    string

	ascii      bool
	hideCharge bool

	padding       int
	bondChars     float64
	scaleBump     float64
	scaleAttempts int
}{}

var Command = &cli.Command{
	Name:   "render",
	Usage:  "Render a molecule as a character-grid diagram.",
	Action: renderCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "molfile to read, - for stdin",
			Destination: &renderopts.inputFilename,
		},
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "chemical name or identifier to look up instead of reading a molfile",
			Destination: &renderopts.identifier,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "output filename, stdout when empty",
			Destination: &renderopts.outputFilename,
		},
		&cli.StringFlag{
			Name:        "resolver",
			Usage:       "base URL of the structure resolver used with --name",
			Value:       resolve.DefaultBaseURL,
			Destination: &renderopts.resolverURL,
		},
		&cli.BoolFlag{
			Name:        "ascii",
			Usage:       "use 7-bit characters instead of box-drawing glyphs",
			Destination: &renderopts.ascii,
		},
		&cli.BoolFlag{
			Name:        "no-charge",
			Usage:       "omit formal charge suffixes from atom labels",
			Destination: &renderopts.hideCharge,
		},
		&cli.IntFlag{
			Name:        "padding",
			Usage:       "blank cells around the drawing",
			Value:       2,
			Destination: &renderopts.padding,
		},
		&cli.Float64Flag{
			Name:        "bond-chars",
			Usage:       "grid columns an average bond should span",
			Value:       1.0,
			Destination: &renderopts.bondChars,
		},
		&cli.Float64Flag{
			Name:        "scale-bump",
			Usage:       "scale multiplier applied after a label collision",
			Value:       1.12,
			Destination: &renderopts.scaleBump,
		},
		&cli.IntFlag{
			Name:        "scale-attempts",
			Usage:       "collision retry cap",
			Value:       8,
			Destination: &renderopts.scaleAttempts,
		},
	}, logging.Flags...),
}

func commandOptions() Options {
	return Options{
		TargetBondChars:   renderopts.bondChars,
		Padding:           renderopts.padding,
		ScaleBumpFactor:   renderopts.scaleBump,
		MaxScaleAttempts:  renderopts.scaleAttempts,
		ShowFormalCharge:  !renderopts.hideCharge,
		UseUnicodeCharset: !renderopts.ascii,
	}
}

// inputText fetches the structural text named by the input flags: a
// molfile from a file or stdin, or a resolver lookup for --name.
func inputText(cc *cli.Context) (string, error) {
	switch {
	case renderopts.identifier != "":
		r := resolve.New(renderopts.resolverURL)
		text, err := r.Molfile(cc.Context, renderopts.identifier)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", renderopts.identifier, err)
		}
		return text, nil
	case renderopts.inputFilename == "" || renderopts.inputFilename == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(renderopts.inputFilename)
		if err != nil {
			return "", fmt.Errorf("read molfile: %w", err)
		}
		return string(data), nil
	}
}

func writeOutput(name string, data []byte) error {
	if name == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(name, data, 0o666); err != nil {
		return fmt.Errorf("failed writing output file: %w", err)
	}
	return nil
}

func renderCmd(cc *cli.Context) error {
	logging.Setup()

	text, err := inputText(cc)
	if err != nil {
		return err
	}

	diagram, err := Text(text, commandOptions())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return writeOutput(renderopts.outputFilename, []byte(diagram))
}
