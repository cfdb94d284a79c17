package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tidalfest/internal/shared"
)

// SetupConfig writes the config file from the embedded template, or from the current settings with --force.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if cmd.Bool("force") {
		if err := shared.SaveConfig(path, r.config); err != nil {
			return err
		}
		r.logger.Info("config file written", "path", path)
		return r.writePlain("✓ Config written to %s\n", path)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", shared.ErrInvalidArgument, path)
	}
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Config created at %s\nSet api.url (or %s) to your festival backend.\n", path, shared.APIURLEnv)
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
}
