package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/shared"
	"github.com/desertthunder/tidalfest/internal/tasks"
	"github.com/desertthunder/tidalfest/internal/ui"
)

const tuiLogPath = "./tmp/tidalfest-tui.log"

// TUI launches the interactive terminal UI, optionally opening festival id right away.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if !r.isTerminal() {
		return fmt.Errorf("%w: the TUI needs an interactive terminal", shared.ErrInvalidArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	p := r.prefs()
	s := r.optionalStores()
	defer s.Close()

	lifecycle := tasks.New(tasks.Options{
		Fetcher:  r.api,
		Catalog:  i18n.Lookup(p.Language),
		Interval: r.config.Loading.Interval(),
		Logger:   shared.WithLogger(r.logger, "component", "lifecycle"),
		Recorder: s.snapshotRecorder(),
	})
	defer lifecycle.Close()

	dir, err := shared.ExpandPath(r.config.Poster.ExportDir)
	if err != nil {
		return err
	}
	exporter := poster.NewExporter(poster.ExporterOptions{
		Sink:     poster.DirSink{Dir: dir},
		Scale:    r.config.Poster.PixelRatio,
		Recorder: s.exportRecorder(),
		Logger:   shared.WithLogger(r.logger, "component", "exporter"),
	})

	model := ui.NewModel(ctx, ui.Options{
		Lifecycle:   lifecycle,
		Exporter:    exporter,
		FestivalID:  cmd.StringArg("id"),
		Theme:       r.themeName(""),
		LoginURL:    r.api.LoginURL(),
		OpenBrowser: r.openBrowser,
		PrefsPath:   r.config.Preferences.Path,
		Logger:      r.logger,
		Now:         r.now,
	})

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
