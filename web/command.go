/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/molgrid/molgrid/logging"
	"github.com/molgrid/molgrid/resolve"
)

var serveopts = struct {
	addr        string
	resolverURL string
	rps         float64
	burst       int
}{}

var Command = &cli.Command{
	Name:   "serve",
	Usage:  "Serve molecule diagrams over HTTP.",
	Action: serveCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP listen address",
			Value:       ":8080",
			EnvVars:     []string{"MOLGRID_ADDR"},
			Destination: &serveopts.addr,
		},
		&cli.StringFlag{
			Name:        "resolver",
			Usage:       "base URL of the structure resolver",
			Value:       resolve.DefaultBaseURL,
			EnvVars:     []string{"MOLGRID_RESOLVER"},
			Destination: &serveopts.resolverURL,
		},
		&cli.Float64Flag{
			Name:        "rps",
			Usage:       "allowed requests per second per client",
			Value:       2,
			EnvVars:     []string{"MOLGRID_RPS"},
			Destination: &serveopts.rps,
		},
		&cli.IntFlag{
			Name:        "burst",
			Usage:       "allowed request burst per client",
			Value:       5,
			EnvVars:     []string{"MOLGRID_BURST"},
			Destination: &serveopts.burst,
		},
	}, logging.Flags...),
}

func serveCmd(cc *cli.Context) error {
	logging.Setup()

	s := NewServer(resolve.New(serveopts.resolverURL), serveopts.rps, serveopts.burst)

	srv := &http.Server{
		Addr:         serveopts.addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	logging.Info("listening", "addr", serveopts.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
