package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/prefs"
	"github.com/desertthunder/tidalfest/internal/shared"
	"github.com/desertthunder/tidalfest/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	LoadingView
	FailureView
	PosterView
)

// Options holds the dependencies of a [Model].
type Options struct {
	Lifecycle *tasks.Lifecycle
	Exporter  *poster.Exporter
	// FestivalID is mounted on start when set; otherwise the TUI opens on [HomeView].
	FestivalID string
	Theme      string
	LoginURL   string
	// OpenBrowser defaults to [shared.OpenBrowser].
	OpenBrowser func(string) error
	PrefsPath   string
	Logger      *log.Logger
	Now         func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	opts   Options
	logger *log.Logger

	home    bool
	state   tasks.State
	theme   poster.Theme
	catalog *i18n.Catalog

	exporting bool
	notice    string
	noticeErr bool

	width  int
	height int

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	catalog := opts.Lifecycle.Catalog()

	input := textinput.New()
	input.Placeholder = catalog.EnterFestival
	input.CharLimit = 128
	input.Width = 40
	input.SetValue(opts.FestivalID)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		opts:    opts,
		logger:  logger,
		home:    true,
		state:   opts.Lifecycle.State(),
		theme:   poster.MustTheme(opts.Theme),
		catalog: catalog,
		input:   input,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init mounts the initial festival, if any, and starts listening for lifecycle updates.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick, waitForState(m.opts.Lifecycle.Updates())}
	if id := strings.TrimSpace(m.opts.FestivalID); id != "" {
		m.open(id)
	}
	return tea.Batch(cmds...)
}

// View returns the active view.
func (m *Model) View() string {
	return m.render()
}

// Current reports which view is shown.
func (m *Model) Current() ViewState {
	if m.home {
		return HomeView
	}
	switch m.state.Kind {
	case tasks.Success:
		return PosterView
	case tasks.Failure:
		return FailureView
	default:
		return LoadingView
	}
}

// Layout renders the current result with the selected theme and language.
func (m *Model) Layout() poster.Layout {
	return poster.RenderLocalized(m.state.Result, m.theme, m.opts.Now(), m.catalog)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		switch m.Current() {
		case HomeView:
			return m.handleHomeKeys(msg)
		case LoadingView:
			return m.handleLoadingKeys(msg)
		case FailureView:
			return m.handleFailureKeys(msg)
		case PosterView:
			return m.handlePosterKeys(msg)
		}

	case stateMsg:
		m.state = m.opts.Lifecycle.State()
		return m, waitForState(m.opts.Lifecycle.Updates())

	case updatesClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case exportDoneMsg:
		m.exporting = false
		switch {
		case errors.Is(msg.err, shared.ErrExportInProgress):
		case msg.err != nil:
			m.logger.Error("poster export failed", "festival", m.state.FestivalID, "error", msg.err)
			m.setNotice(m.catalog.ExportFailed, true)
		default:
			m.setNotice(fmt.Sprintf(m.catalog.Downloaded, msg.artifact.Path)+
				fmt.Sprintf(" (%s)", humanize.Bytes(uint64(msg.artifact.Size))), false)
		}
		return m, nil

	case loginOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to open browser", "url", m.opts.LoginURL, "error", msg.err)
			m.setNotice(m.opts.LoginURL, true)
			return m, nil
		}
		m.setNotice(m.catalog.LoginOpened, false)
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to save language preference", "language", msg.code, "error", msg.err)
		}
		return m, nil
	}

	if m.home {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		id := strings.TrimSpace(m.input.Value())
		if id == "" {
			return m, nil
		}
		m.open(id)
		return m, nil
	case key.Matches(msg, m.keys.login):
		return m, m.openLogin()
	case key.Matches(msg, m.keys.homeLanguage):
		return m, m.switchLanguage()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.language):
		return m, m.switchLanguage()
	}
	return m, nil
}

func (m *Model) handleFailureKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.retry):
		if m.opts.Lifecycle.Retry() {
			m.state = m.opts.Lifecycle.State()
		}
	case key.Matches(msg, m.keys.home):
		m.goHome()
	case key.Matches(msg, m.keys.language):
		return m, m.switchLanguage()
	}
	return m, nil
}

func (m *Model) handlePosterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.theme):
		m.theme = poster.NextTheme(m.theme.Name)
	case key.Matches(msg, m.keys.export):
		return m, m.export()
	case key.Matches(msg, m.keys.language):
		return m, m.switchLanguage()
	case key.Matches(msg, m.keys.home):
		m.goHome()
	}
	return m, nil
}

// open mounts id, retrying when id already failed.
func (m *Model) open(id string) {
	m.home = false
	m.notice = ""

	l := m.opts.Lifecycle
	if err := l.SetFestival(id); err != nil {
		m.logger.Error("failed to open festival", "festival", id, "error", err)
		m.home = true
		m.setNotice(err.Error(), true)
		return
	}
	if s := l.State(); s.FestivalID == id && s.Kind == tasks.Failure {
		l.Retry()
	}
	m.state = l.State()
}

func (m *Model) goHome() {
	m.home = true
	m.notice = ""
	m.input.SetValue(m.state.FestivalID)
	m.input.CursorEnd()
	m.input.Focus()
}

// export hands the current layout to the exporter. It is a no-op while an export is in flight.
func (m *Model) export() tea.Cmd {
	if m.exporting || m.opts.Exporter == nil || m.opts.Exporter.Busy() {
		return nil
	}
	m.exporting = true
	m.setNotice(m.catalog.Downloading, false)

	ctx, exporter, id, layout := m.ctx, m.opts.Exporter, m.state.FestivalID, m.Layout()
	return func() tea.Msg {
		a, err := exporter.Export(ctx, id, layout)
		return exportDoneMsg{artifact: a, err: err}
	}
}

func (m *Model) openLogin() tea.Cmd {
	if m.opts.LoginURL == "" {
		return nil
	}
	url, open := m.opts.LoginURL, m.opts.OpenBrowser
	return func() tea.Msg {
		return loginOpenedMsg{err: open(url)}
	}
}

// switchLanguage moves to the next catalog and persists the choice.
func (m *Model) switchLanguage() tea.Cmd {
	m.catalog = i18n.Lookup(i18n.Next(m.catalog.Code))
	m.input.Placeholder = m.catalog.EnterFestival
	m.opts.Lifecycle.SetCatalog(m.catalog)
	m.state = m.opts.Lifecycle.State()

	code, path := m.catalog.Code, m.opts.PrefsPath
	return func() tea.Msg {
		_, err := prefs.SetLanguage(path, code)
		return prefsSavedMsg{code: code, err: err}
	}
}

func (m *Model) setNotice(s string, isErr bool) {
	m.notice = s
	m.noticeErr = isErr
}
