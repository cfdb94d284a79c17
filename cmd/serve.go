package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tidalfest/internal/server"
)

// Serve runs the lineup and poster HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port != 0 {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := r.optionalStores()
	defer s.Close()

	handler := server.NewFestivalHandler(server.FestivalOptions{
		Fetcher:  r.api,
		LoginURL: r.api.LoginURL(),
		Theme:    r.config.Poster.Theme,
		Scale:    r.config.Poster.PixelRatio,
		Recorder: s.snapshotRecorder(),
		Logger:   r.logger,
	})

	srv := server.New(cfg.Addr(), server.NewRouter(handler, r.logger), r.logger)
	r.logger.Info("starting server", "addr", srv.Addr(), "backend", r.api.BaseURL())
	return srv.Run(ctx)
}
