package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tidalfest/internal/formatter"
	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/repositories"
	"github.com/desertthunder/tidalfest/internal/shared"
	"github.com/desertthunder/tidalfest/internal/tasks"
	"github.com/desertthunder/tidalfest/internal/ui"
)

var showFormats = []string{"poster", "text", "markdown", "csv", "json"}

// resolve fetches and normalizes the lineup for id, logging the user-facing failure summary.
func (r *Runner) resolve(ctx context.Context, id, lang string) (*models.Result, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: festival id is required", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching lineup", "festival", id, "url", r.api.LineupURL(id))
	result, err := tasks.Resolve(ctx, r.api, nil, id)
	if err != nil {
		r.logger.Error(tasks.Describe(err, r.catalog(lang)), "festival", id)
		return nil, fmt.Errorf("failed to load festival %s: %w", id, err)
	}
	r.logger.Debug("lineup loaded", "festival", id, "summary", result.Summary())
	return result, nil
}

// FestivalShow fetches a lineup and prints it in the requested format.
func (r *Runner) FestivalShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	format := strings.ToLower(cmd.String("format"))
	lang := cmd.String("lang")

	if !slices.Contains(showFormats, format) {
		return fmt.Errorf("%w: format must be one of %s", shared.ErrInvalidArgument, strings.Join(showFormats, ", "))
	}
	theme, err := poster.LookupTheme(r.themeName(cmd.String("theme")))
	if err != nil {
		return err
	}

	result, err := r.resolve(ctx, id, lang)
	if err != nil {
		return err
	}

	if !cmd.Bool("no-cache") {
		if s := r.optionalStores(); s != nil {
			defer s.Close()
			if _, err := s.snapshots.Save(ctx, id, result); err != nil {
				r.logger.Warn("failed to cache lineup", "festival", id, "error", err)
			}
		}
	}

	var data []byte
	switch format {
	case "poster":
		layout := poster.RenderLocalized(result, theme, r.now(), r.catalog(lang))
		return r.writePlain("%s\n", ui.RenderPoster(layout, r.termWidth()))
	case "text":
		data, err = formatter.ExportToText(result)
	case "markdown":
		data, err = formatter.ExportToMarkdown(result, "")
	case "csv":
		data, err = formatter.ExportToCSV(result)
	case "json":
		data, err = formatter.ToJSON(result)
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to format lineup: %w", err)
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// FestivalExport renders the lineup poster to a PNG file and records it in the export history.
func (r *Runner) FestivalExport(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	lang := cmd.String("lang")
	catalog := r.catalog(lang)

	theme, err := poster.LookupTheme(r.themeName(cmd.String("theme")))
	if err != nil {
		return err
	}

	dir := cmd.String("output-dir")
	if dir == "" {
		dir = r.config.Poster.ExportDir
	}
	if dir, err = shared.ExpandPath(dir); err != nil {
		return err
	}

	scale := int(cmd.Int("scale"))
	if scale == 0 {
		scale = r.config.Poster.PixelRatio
	}
	if scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1", shared.ErrInvalidArgument)
	}

	result, err := r.resolve(ctx, id, lang)
	if err != nil {
		return err
	}

	s := r.optionalStores()
	defer s.Close()

	exporter := poster.NewExporter(poster.ExporterOptions{
		Sink:     poster.DirSink{Dir: dir},
		Scale:    scale,
		Recorder: s.exportRecorder(),
		Logger:   r.logger,
	})

	layout := poster.RenderLocalized(result, theme, r.now(), catalog)
	artifact, err := exporter.Export(ctx, id, layout)
	if err != nil {
		r.logger.Error(catalog.ExportFailed, "festival", id, "error", err)
		return err
	}

	r.writePlain("✓ "+catalog.Downloaded+" (%s, %s)\n", artifact.Path, humanize.Bytes(uint64(artifact.Size)), theme.Label)

	if cmd.Bool("markdown") {
		png, err := os.ReadFile(artifact.Path)
		if err != nil {
			return fmt.Errorf("failed to read poster: %w", err)
		}
		md, err := formatter.WriteMarkdownExport(result, dir, artifact.Filename, png)
		if err != nil {
			return err
		}
		for _, f := range md.Files {
			r.writePlain("  %s\n", f)
		}
	}
	return nil
}

type history struct {
	Lineups []repositories.Snapshot `json:"lineups"`
	Posters []repositories.Export   `json:"posters"`
}

// FestivalHistory lists cached lineups and exported posters, newest first.
func (r *Runner) FestivalHistory(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))

	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	var h history
	if h.Lineups, err = s.snapshots.List(ctx, limit); err != nil {
		return fmt.Errorf("failed to list lineups: %w", err)
	}
	if h.Posters, err = s.exports.List(ctx, limit); err != nil {
		return fmt.Errorf("failed to list posters: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(h, true)
	}

	now := r.now()
	r.writePlainHeader("Lineups")
	if len(h.Lineups) == 0 {
		r.writePlain("  (none)\n")
	}
	for _, snap := range h.Lineups {
		r.writePlain("  %-24s %d day(s), %d artist(s)  %s\n",
			snap.FestivalID, snap.DayCount, snap.ArtistCount,
			humanize.RelTime(snap.FetchedAt, now, "ago", "from now"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Posters")
	if len(h.Posters) == 0 {
		r.writePlain("  (none)\n")
	}
	for _, e := range h.Posters {
		r.writePlain("  %-24s %-14s %8s  %s  %s\n",
			e.FestivalID, e.Theme, humanize.Bytes(uint64(e.Size)),
			humanize.RelTime(e.CreatedAt, now, "ago", "from now"), e.Path)
	}
	return nil
}
