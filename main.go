/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/molgrid/molgrid/render"
	"github.com/molgrid/molgrid/vector"
	"github.com/molgrid/molgrid/web"
)

func main() {
	app := &cli.App{
		Name:     "molgrid",
		HelpName: "molgrid",
		Usage:    "Draw molecules as character grids and vector images",
		Commands: []*cli.Command{
			render.Command,
			vector.Command,
			web.Command,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
