package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/prefs"
	"github.com/desertthunder/tidalfest/internal/repositories"
	"github.com/desertthunder/tidalfest/internal/services"
	"github.com/desertthunder/tidalfest/internal/shared"
	"github.com/desertthunder/tidalfest/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	api         *services.APIService
	logger      *log.Logger
	output      io.Writer
	now         func() time.Time
	openBrowser func(string) error
	isTerminal  func() bool
	termWidth   func() int
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Logger      *log.Logger
	Output      io.Writer
	Now         func() time.Time
	OpenBrowser func(string) error
	// IsTerminal reports whether stdout is interactive. Defaults to [term.IsTerminal] on stdout.
	IsTerminal func() bool
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	}

	r := &Runner{
		config:      opts.Config,
		logger:      opts.Logger,
		output:      opts.Output,
		now:         opts.Now,
		openBrowser: opts.OpenBrowser,
		isTerminal:  opts.IsTerminal,
	}
	r.termWidth = func() int {
		if !r.isTerminal() {
			return 0
		}
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return 0
		}
		return w
	}
	r.api = services.FromConfig(r.config.API)
	return r
}

// Before loads .env and the config file, then applies the log level and builds the lineup client.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := shared.LoadEnv(cmd.String("env-file")); err != nil {
		return ctx, err
	}

	r.configPath = cmd.String("config")
	config, err := shared.LoadConfig(r.configPath)
	switch {
	case err == nil:
		r.config = config
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	default:
		return ctx, err
	}
	r.config.ApplyEnv()

	if err := shared.SetLogLevel(r.logger, r.config.Log.Level); err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}
	r.api = services.FromConfig(r.config.API)
	r.logger.Debug("using festival backend", "url", r.api.BaseURL())
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, festivalCommand, themesCommand, langCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the logger, e.g. for a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) prefs() prefs.Prefs {
	return prefs.Load(r.config.Preferences.Path)
}

// catalog returns the catalog for lang, falling back to the persisted language.
func (r *Runner) catalog(lang string) *i18n.Catalog {
	if lang == "" {
		lang = r.prefs().Language
	}
	return i18n.Lookup(i18n.Match(lang))
}

// themeName picks the flag value, then the persisted preference, then the configured default.
func (r *Runner) themeName(flag string) string {
	if flag != "" {
		return flag
	}
	if t := r.prefs().Theme; t != "" {
		return t
	}
	return r.config.Poster.Theme
}

// stores bundles the sqlite repositories used by lineup commands.
type stores struct {
	db        *sql.DB
	snapshots *repositories.SnapshotRepository
	exports   *repositories.ExportRepository
}

func (r *Runner) openStores() (*stores, error) {
	path, err := shared.ExpandPath(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	cfg := r.config.Database
	cfg.Path = path

	db, err := shared.OpenMigrated(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &stores{
		db:        db,
		snapshots: repositories.NewSnapshotRepository(db),
		exports:   repositories.NewExportRepository(db),
	}, nil
}

// optionalStores is [Runner.openStores] for commands that work without a cache.
func (r *Runner) optionalStores() *stores {
	s, err := r.openStores()
	if err != nil {
		r.logger.Warn("local cache unavailable", "path", r.config.Database.Path, "error", err)
		return nil
	}
	return s
}

func (s *stores) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

func (s *stores) snapshotRecorder() tasks.SnapshotRecorder {
	if s == nil {
		return nil
	}
	return s.snapshots
}

func (s *stores) exportRecorder() poster.ExportRecorder {
	if s == nil {
		return nil
	}
	return s.exports
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
