package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hollowlog/yearshelf/internal/server"
	"github.com/hollowlog/yearshelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP proxy in front of the shelf API.
//
// The proxy exposes the same /api/complete/<category>/<year> surface the
// gallery frontend consumed, so anything that spoke to the original backend
// can point here instead.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: no shelf provider configured", shared.ErrServiceUnavailable)
	}

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewProxyRouter(r.service, r.yearRange(), r.logger)
	addr := fmt.Sprintf("%s:%d", host, port)

	r.logger.Info("starting proxy", "addr", addr, "provider", r.service.Name())
	srv := &http.Server{Addr: addr, Handler: router}
	return srv.ListenAndServe()
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the shelf proxy server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to bind (defaults to config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (defaults to config)",
			},
		},
		Action: r.Serve,
	}
}
