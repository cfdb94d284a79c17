package poster

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tidalfest/internal/shared"
)

// Filename is deterministic for a lineup shape: multi-day lineups encode the day count.
func Filename(layout Layout) string {
	if layout.DayCount > 1 {
		return fmt.Sprintf("tidalfest-lineup-%d-days.png", layout.DayCount)
	}
	return "tidalfest-lineup.png"
}

// ExportError reports a failed export step.
type ExportError struct {
	Op  string
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed (%s): %v", e.Op, e.Err)
}

func (e *ExportError) Unwrap() []error {
	return []error{shared.ErrExport, e.Err}
}

// Artifact describes a written poster.
type Artifact struct {
	FestivalID string
	Filename   string
	Path       string
	Theme      string
	Size       int64
	CreatedAt  time.Time
}

// Sink receives encoded posters.
type Sink interface {
	Write(ctx context.Context, filename string, data []byte) (string, error)
}

// ExportRecorder keeps a history of exports. Implemented by repositories.ExportRepository.
type ExportRecorder interface {
	Record(ctx context.Context, a Artifact) error
}

// RasterFunc encodes a layout at scale.
type RasterFunc func(layout Layout, scale int) ([]byte, error)

// ExporterOptions configures an [Exporter].
type ExporterOptions struct {
	Sink     Sink
	Scale    int
	Raster   RasterFunc
	Recorder ExportRecorder
	Logger   *log.Logger
}

// Exporter runs one export at a time.
type Exporter struct {
	busy     atomic.Bool
	sink     Sink
	scale    int
	raster   RasterFunc
	recorder ExportRecorder
	logger   *log.Logger
	now      func() time.Time
}

// NewExporter creates an exporter. Raster defaults to [EncodePNG] and Scale to [DefaultScale].
func NewExporter(opts ExporterOptions) *Exporter {
	e := &Exporter{
		sink:     opts.Sink,
		scale:    opts.Scale,
		raster:   opts.Raster,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		now:      time.Now,
	}
	if e.scale < 1 {
		e.scale = DefaultScale
	}
	if e.raster == nil {
		e.raster = EncodePNG
	}
	if e.sink == nil {
		e.sink = DirSink{Dir: "."}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Busy reports whether an export is in flight.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

// Export rasterizes layout and hands it to the sink.
//
// A call made while another is in flight returns [shared.ErrExportInProgress] without side effects.
func (e *Exporter) Export(ctx context.Context, festivalID string, layout Layout) (*Artifact, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, shared.ErrExportInProgress
	}
	defer e.busy.Store(false)

	name := Filename(layout)
	e.logger.Info("exporting poster", "festival", festivalID, "file", name, "theme", layout.Theme.Name)

	data, err := e.raster(layout, e.scale)
	if err != nil {
		return nil, &ExportError{Op: "rasterize", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ExportError{Op: "rasterize", Err: err}
	}

	path, err := e.sink.Write(ctx, name, data)
	if err != nil {
		return nil, &ExportError{Op: "write", Err: err}
	}

	a := &Artifact{
		FestivalID: festivalID,
		Filename:   name,
		Path:       path,
		Theme:      layout.Theme.Name,
		Size:       int64(len(data)),
		CreatedAt:  e.now().UTC(),
	}

	if e.recorder != nil {
		if err := e.recorder.Record(ctx, *a); err != nil {
			e.logger.Warn("failed to record export", "file", path, "error", err)
		}
	}
	return a, nil
}

// DirSink writes posters into Dir, replacing a previous export with the same name.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(ctx context.Context, filename string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	dir, err := shared.ExpandPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tidalfest-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write poster: %w", err))
	}
	if err := ctx.Err(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close poster: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move poster into place: %w", err)
	}
	return path, nil
}
