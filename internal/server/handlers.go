package server

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tidalfest/internal/formatter"
	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/services"
	"github.com/desertthunder/tidalfest/internal/shared"
	"github.com/desertthunder/tidalfest/internal/tasks"
)

const maxScale = 4

var festivalIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// FestivalOptions configures a [FestivalHandler].
type FestivalOptions struct {
	Fetcher   services.Fetcher
	Normalize tasks.NormalizeFunc
	LoginURL  string
	Theme     string
	Scale     int
	Recorder  tasks.SnapshotRecorder
	Logger    *log.Logger
	Now       func() time.Time
}

// FestivalHandler serves lineups and posters.
type FestivalHandler struct {
	mux  *http.ServeMux
	opts FestivalOptions
}

// NewFestivalHandler creates a handler; Theme defaults to [poster.DefaultTheme] and Scale to 1..4 clamped.
func NewFestivalHandler(opts FestivalOptions) *FestivalHandler {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Theme == "" {
		opts.Theme = poster.DefaultTheme
	}
	opts.Scale = clampScale(opts.Scale, poster.DefaultScale)

	h := &FestivalHandler{mux: http.NewServeMux(), opts: opts}
	h.mux.HandleFunc("GET /healthz", h.health)
	h.mux.HandleFunc("GET /login", h.login)
	h.mux.HandleFunc("GET /festival/{id}", h.lineup)
	h.mux.HandleFunc("GET /festival/{id}/poster.png", h.poster)
	return h
}

// Routes implements [Handler].
func (h *FestivalHandler) Routes() []string {
	return []string{
		"GET /healthz",
		"GET /login",
		"GET /festival/{id}",
		"GET /festival/{id}/poster.png",
	}
}

func (h *FestivalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *FestivalHandler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *FestivalHandler) login(w http.ResponseWriter, r *http.Request) {
	if h.opts.LoginURL == "" {
		ErrorPage(w, http.StatusServiceUnavailable, "Login is not configured")
		return
	}
	http.Redirect(w, r, h.opts.LoginURL, http.StatusFound)
}

func (h *FestivalHandler) lineup(w http.ResponseWriter, r *http.Request) {
	id, result, ok := h.resolve(w, r)
	if !ok {
		return
	}

	data, err := formatter.ToJSON(result)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *FestivalHandler) poster(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	theme, err := poster.LookupTheme(valueOr(q.Get("theme"), h.opts.Theme))
	if err != nil {
		ErrorPage(w, http.StatusBadRequest, err.Error())
		return
	}
	scale, err := intParam(q.Get("scale"), h.opts.Scale)
	if err != nil || scale < 1 || scale > maxScale {
		ErrorPage(w, http.StatusBadRequest, fmt.Sprintf("scale must be between 1 and %d", maxScale))
		return
	}
	width, err := intParam(q.Get("width"), 0)
	if err != nil || width < 0 {
		ErrorPage(w, http.StatusBadRequest, "width must be a positive integer")
		return
	}
	catalog := i18n.Lookup(i18n.Match(valueOr(q.Get("lang"), i18n.Default)))

	id, result, ok := h.resolve(w, r)
	if !ok {
		return
	}

	layout := poster.RenderLocalized(result, theme, h.opts.Now(), catalog)
	img, err := poster.Rasterize(layout, scale)
	if err != nil {
		h.fail(w, id, &poster.ExportError{Op: "rasterize", Err: err})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, poster.Thumbnail(img, width)); err != nil {
		h.fail(w, id, &poster.ExportError{Op: "encode", Err: err})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, poster.Filename(layout)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// resolve validates the id path value and runs the fetch pipeline, writing the error page on failure.
func (h *FestivalHandler) resolve(w http.ResponseWriter, r *http.Request) (string, *models.Result, bool) {
	id := r.PathValue("id")
	if !festivalIDPattern.MatchString(id) {
		ErrorPage(w, http.StatusNotFound, "Festival ID not found")
		return id, nil, false
	}

	result, err := tasks.Resolve(r.Context(), h.opts.Fetcher, h.opts.Normalize, id)
	if err != nil {
		h.fail(w, id, err)
		return id, nil, false
	}

	if h.opts.Recorder != nil {
		if _, err := h.opts.Recorder.Save(r.Context(), id, result); err != nil {
			h.opts.Logger.Warn("failed to cache lineup", "festival", id, "error", err)
		}
	}
	return id, result, true
}

func (h *FestivalHandler) fail(w http.ResponseWriter, id string, err error) {
	status := StatusFor(err)
	h.opts.Logger.Error("festival request failed", "festival", id, "status", status, "error", err)
	ErrorPage(w, status, tasks.Describe(err, i18n.Lookup(i18n.English)))
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intParam(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", shared.ErrInvalidArgument, v)
	}
	return n, nil
}

func clampScale(scale, fallback int) int {
	if scale < 1 {
		return fallback
	}
	return min(scale, maxScale)
}

// NewRouter builds the full router: recovery, request logging and the festival handler.
func NewRouter(h *FestivalHandler, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := NewBasicRouter()
	r.Use(Recover(logger), WithLogging(logger))
	r.Handler(h)
	return r
}
