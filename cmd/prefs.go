package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/prefs"
)

// Themes lists the poster themes, marking the one currently selected.
func (r *Runner) Themes(ctx context.Context, cmd *cli.Command) error {
	current := poster.MustTheme(r.themeName("")).Name
	for _, t := range poster.Themes() {
		marker := " "
		if t.Name == current {
			marker = "*"
		}
		r.writePlain("%s %-14s %s\n", marker, t.Name, t.Label)
	}
	return nil
}

// Lang prints the persisted display language, or sets it when a code is given.
func (r *Runner) Lang(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Preferences.Path
	code := strings.TrimSpace(cmd.StringArg("code"))

	if code == "" {
		current := r.prefs().Language
		for _, c := range i18n.Supported() {
			marker := " "
			if c == current {
				marker = "*"
			}
			r.writePlain("%s %s  %s\n", marker, c, i18n.Lookup(c).Label)
		}
		return nil
	}

	p, err := prefs.SetLanguage(path, code)
	if err != nil {
		return err
	}
	r.logger.Info("language saved", "language", p.Language, "path", path)
	return r.writePlain("✓ %s: %s\n", i18n.Lookup(p.Language).Language, i18n.Lookup(p.Language).Label)
}
