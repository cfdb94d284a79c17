package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/prefs"
	"github.com/desertthunder/tidalfest/internal/services"
	"github.com/desertthunder/tidalfest/internal/tasks"
	tu "github.com/desertthunder/tidalfest/internal/testing"
)

var lineup = map[string]any{"data": tu.LineupPayload(
	[]string{"Radiohead"},
	[]string{"Portishead", "Air"},
	[]string{"Low"},
)}

type harness struct {
	model     *Model
	lifecycle *tasks.Lifecycle
	fetcher   *tu.MockFetcher
	prefsPath string
	opened    []string
}

func newHarness(t *testing.T, fetcher *tu.MockFetcher, exporter *poster.Exporter) *harness {
	t.Helper()

	l := tasks.New(tasks.Options{Fetcher: fetcher, Interval: time.Hour})
	t.Cleanup(l.Close)

	h := &harness{
		lifecycle: l,
		fetcher:   fetcher,
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.model = NewModel(context.Background(), Options{
		Lifecycle: l,
		Exporter:  exporter,
		LoginURL:  "http://backend.test/api/auth/tidal/login",
		OpenBrowser: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
		PrefsPath: h.prefsPath,
		Now:       func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) },
	})
	return h
}

// settle waits for the lifecycle to leave Loading and feeds the result to the model.
func (h *harness) settle(t *testing.T, want tasks.Kind) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := h.lifecycle.State(); s.Kind == want {
			h.model.Update(stateMsg(s))
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("lifecycle never reached %s, state is %s", want, h.lifecycle.State().Kind)
}

func (h *harness) press(msg tea.KeyMsg) tea.Cmd {
	_, cmd := h.model.Update(msg)
	return cmd
}

func (h *harness) submit(id string) {
	h.model.input.SetValue(id)
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel(t *testing.T) {
	t.Run("Starts On Home", func(t *testing.T) {
		h := newHarness(t, tu.NewMockFetcher(), nil)
		h.model.Init()

		if h.model.Current() != HomeView {
			t.Errorf("expected home view, got %v", h.model.Current())
		}
		if len(h.fetcher.Calls()) != 0 {
			t.Error("expected no fetch before a festival is entered")
		}
		if !strings.Contains(h.model.View(), "TIDALFEST") {
			t.Error("expected title on home view")
		}
	})

	t.Run("Initial Festival Is Mounted", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(tu.FetchResponse{Payload: lineup})
		fetcher.Block = make(chan struct{})
		h := newHarness(t, fetcher, nil)
		h.model.opts.FestivalID = "abc"
		h.model.Init()

		if h.model.Current() != LoadingView {
			t.Fatalf("expected loading view, got %v", h.model.Current())
		}
		if !strings.Contains(h.model.View(), i18n.Lookup(i18n.Spanish).LoadingMessages[0]) {
			t.Error("expected first loading message")
		}

		close(fetcher.Block)
		h.settle(t, tasks.Success)
		if h.model.Current() != PosterView {
			t.Errorf("expected poster view, got %v", h.model.Current())
		}
	})

	t.Run("Empty Submit Is Ignored", func(t *testing.T) {
		h := newHarness(t, tu.NewMockFetcher(), nil)
		h.submit("   ")

		if h.model.Current() != HomeView {
			t.Errorf("expected home view, got %v", h.model.Current())
		}
		if len(h.fetcher.Calls()) != 0 {
			t.Error("expected no fetch")
		}
	})

	t.Run("Submit Shows Poster", func(t *testing.T) {
		h := newHarness(t, tu.NewMockFetcher(tu.FetchResponse{Payload: lineup}), nil)
		h.submit("abc")
		h.settle(t, tasks.Success)

		view := h.model.View()
		for _, want := range []string{"TIDALFEST", "RADIOHEAD", "PORTISHEAD", "LOW"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in poster view", want)
			}
		}
	})

	t.Run("Failure Then Retry", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(
			tu.FetchResponse{Err: &services.HTTPError{Status: 500, StatusText: "Internal Server Error", Excerpt: "boom"}},
			tu.FetchResponse{Payload: lineup},
		)
		h := newHarness(t, fetcher, nil)
		h.submit("abc")
		h.settle(t, tasks.Failure)

		if h.model.Current() != FailureView {
			t.Fatalf("expected failure view, got %v", h.model.Current())
		}
		if !strings.Contains(h.model.View(), "Error 500: Internal Server Error - boom") {
			t.Errorf("expected failure message, got %s", h.model.View())
		}

		h.press(runes("r"))
		h.settle(t, tasks.Success)

		if h.model.Current() != PosterView {
			t.Errorf("expected poster view after retry, got %v", h.model.Current())
		}
		if n := len(fetcher.Calls()); n != 2 {
			t.Errorf("expected 2 fetches, got %d", n)
		}
	})

	t.Run("Home Then Same Festival Retries", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(
			tu.FetchResponse{Err: errors.New("offline")},
			tu.FetchResponse{Payload: lineup},
		)
		h := newHarness(t, fetcher, nil)
		h.submit("abc")
		h.settle(t, tasks.Failure)

		h.press(runes("h"))
		if h.model.Current() != HomeView {
			t.Fatalf("expected home view, got %v", h.model.Current())
		}
		if h.model.input.Value() != "abc" {
			t.Errorf("expected input to keep the festival id, got %q", h.model.input.Value())
		}

		h.press(tea.KeyMsg{Type: tea.KeyEnter})
		h.settle(t, tasks.Success)
		if n := len(fetcher.Calls()); n != 2 {
			t.Errorf("expected a second fetch, got %d", n)
		}
	})

	t.Run("Theme Cycles", func(t *testing.T) {
		h := newHarness(t, tu.NewMockFetcher(tu.FetchResponse{Payload: lineup}), nil)
		h.submit("abc")
		h.settle(t, tasks.Success)

		want := []string{"MidnightFest", "DesertDawn", "SunsetBeach"}
		for _, name := range want {
			h.press(runes("t"))
			if h.model.theme.Name != name {
				t.Errorf("expected %s, got %s", name, h.model.theme.Name)
			}
		}
		if h.model.Layout().Theme.Name != "SunsetBeach" {
			t.Error("expected layout to use the selected theme")
		}
	})

	t.Run("Language Switch Persists", func(t *testing.T) {
		h := newHarness(t, tu.NewMockFetcher(tu.FetchResponse{Payload: lineup}), nil)
		h.submit("abc")
		h.settle(t, tasks.Success)

		cmd := h.press(runes("L"))
		if cmd == nil {
			t.Fatal("expected a command to save preferences")
		}
		h.model.Update(cmd())

		if h.model.catalog.Code != i18n.English {
			t.Errorf("expected english catalog, got %s", h.model.catalog.Code)
		}
		if h.lifecycle.Catalog().Code != i18n.English {
			t.Error("expected lifecycle catalog to follow")
		}
		if got := prefs.Load(h.prefsPath).Language; got != i18n.English {
			t.Errorf("expected persisted language en, got %s", got)
		}
	})

	t.Run("Login Opens Browser", func(t *testing.T) {
		h := newHarness(t, tu.NewMockFetcher(), nil)

		cmd := h.press(tea.KeyMsg{Type: tea.KeyCtrlO})
		if cmd == nil {
			t.Fatal("expected login command")
		}
		h.model.Update(cmd())

		if len(h.opened) != 1 || h.opened[0] != "http://backend.test/api/auth/tidal/login" {
			t.Errorf("unexpected browser calls %v", h.opened)
		}
		if h.model.notice != i18n.Lookup(i18n.Spanish).LoginOpened {
			t.Errorf("unexpected notice %q", h.model.notice)
		}
	})

	t.Run("Quit", func(t *testing.T) {
		h := newHarness(t, tu.NewMockFetcher(), nil)
		cmd := h.press(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

type failingSink struct{}

func (failingSink) Write(context.Context, string, []byte) (string, error) {
	return "", errors.New("disk full")
}

func TestExport(t *testing.T) {
	t.Run("Writes Poster", func(t *testing.T) {
		dir := t.TempDir()
		exporter := poster.NewExporter(poster.ExporterOptions{
			Sink:   poster.DirSink{Dir: dir},
			Raster: func(poster.Layout, int) ([]byte, error) { return []byte("png"), nil },
		})
		h := newHarness(t, tu.NewMockFetcher(tu.FetchResponse{Payload: lineup}), exporter)
		h.submit("abc")
		h.settle(t, tasks.Success)

		cmd := h.press(runes("e"))
		if cmd == nil {
			t.Fatal("expected export command")
		}
		h.model.Update(cmd())

		tu.AssertFileExists(t, filepath.Join(dir, "tidalfest-lineup.png"))
		if !strings.Contains(h.model.notice, "tidalfest-lineup.png") || !strings.Contains(h.model.notice, "3 B") {
			t.Errorf("unexpected notice %q", h.model.notice)
		}
	})

	t.Run("Ignored While In Flight", func(t *testing.T) {
		release := make(chan struct{})
		exporter := poster.NewExporter(poster.ExporterOptions{
			Sink: poster.DirSink{Dir: t.TempDir()},
			Raster: func(poster.Layout, int) ([]byte, error) {
				<-release
				return []byte("png"), nil
			},
		})
		h := newHarness(t, tu.NewMockFetcher(tu.FetchResponse{Payload: lineup}), exporter)
		h.submit("abc")
		h.settle(t, tasks.Success)

		cmd := h.press(runes("e"))
		if cmd == nil {
			t.Fatal("expected export command")
		}
		done := make(chan tea.Msg, 1)
		go func() { done <- cmd() }()

		if again := h.press(runes("e")); again != nil {
			t.Error("expected second export to be ignored")
		}

		close(release)
		h.model.Update(<-done)
		if h.model.exporting {
			t.Error("expected export to finish")
		}
	})

	t.Run("Failure Keeps View", func(t *testing.T) {
		exporter := poster.NewExporter(poster.ExporterOptions{
			Sink:   failingSink{},
			Raster: func(poster.Layout, int) ([]byte, error) { return []byte("png"), nil },
		})
		h := newHarness(t, tu.NewMockFetcher(tu.FetchResponse{Payload: lineup}), exporter)
		h.submit("abc")
		h.settle(t, tasks.Success)
		before := h.lifecycle.State()

		h.model.Update(h.press(runes("e"))())

		if h.model.Current() != PosterView {
			t.Errorf("expected poster view, got %v", h.model.Current())
		}
		if h.model.notice != i18n.Lookup(i18n.Spanish).ExportFailed || !h.model.noticeErr {
			t.Errorf("unexpected notice %q", h.model.notice)
		}
		if after := h.lifecycle.State(); after.Generation != before.Generation || after.Kind != tasks.Success {
			t.Error("expected lifecycle state untouched by export failure")
		}
	})
}

func TestRenderPoster(t *testing.T) {
	p := NewPalette(poster.MustTheme(""))

	t.Run("Tiers", func(t *testing.T) {
		guests := renderTier(poster.Section{Tier: models.SpecialGuests, Names: []string{"PORTISHEAD", "AIR"}}, p)
		if !strings.Contains(guests, "PORTISHEAD") || !strings.Contains(guests, "•") {
			t.Errorf("expected bullet separated guests, got %q", guests)
		}

		heads := renderTier(poster.Section{Tier: models.Headliners, Names: []string{"A", "B"}}, p)
		if strings.Contains(heads, "•") || strings.Count(heads, "\n") != 1 {
			t.Errorf("expected one headliner per line, got %q", heads)
		}
	})

	t.Run("Day Headings", func(t *testing.T) {
		result := &models.Result{
			Partitioned: true,
			Days: []models.Day{
				{DayNumber: 2, Headliners: []models.Artist{{Name: "Blur"}}},
				{DayNumber: 1, Headliners: []models.Artist{{Name: "Oasis"}}},
			},
		}
		now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
		layout := poster.RenderLocalized(result, poster.MustTheme(""), now, i18n.Lookup(i18n.English))
		out := renderPoster(layout, p, 40)

		day1, day2 := strings.Index(out, "DAY 1"), strings.Index(out, "DAY 2")
		if day1 < 0 || day2 < 0 || day1 > day2 {
			t.Errorf("expected ordered day headings in %q", out)
		}
		if !strings.Contains(out, "THURSDAY, JANUARY 14") {
			t.Errorf("expected localized date in %q", out)
		}
	})

	t.Run("Width", func(t *testing.T) {
		if posterWidth(0) != maxPosterWidth {
			t.Error("expected max width when size is unknown")
		}
		if posterWidth(20) != minPosterWidth {
			t.Error("expected min width on narrow terminals")
		}
	})
}
