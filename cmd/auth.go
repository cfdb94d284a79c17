package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// AuthLogin opens the backend's TIDAL login page. The backend completes OAuth and redirects back to the web client.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	url := r.api.LoginURL()
	r.logger.Info("tidal login", "url", url)

	if err := r.writePlain("Login URL: %s\n", url); err != nil {
		return err
	}
	if cmd.Bool("no-browser") {
		return nil
	}

	if err := r.openBrowser(url); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
		return r.writePlain("Open the URL above in your browser to continue.\n")
	}
	return r.writePlain("✓ %s\n", r.catalog("").LoginOpened)
}
