package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/shared"
)

// Export is a recorded poster export.
type Export struct {
	ID string
	poster.Artifact
}

// ExportRepository stores the poster export history.
type ExportRepository struct {
	db  *sql.DB
	now clock
}

// NewExportRepository creates a new ExportRepository with the given database connection
func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{db: db, now: utcNow}
}

// Record stores a.
func (r *ExportRepository) Record(ctx context.Context, a poster.Artifact) error {
	created := a.CreatedAt
	if created.IsZero() {
		created = r.now()
	}

	query := `
		INSERT INTO poster_exports (id, festival_id, filename, path, theme, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, shared.GenerateID(), a.FestivalID, a.Filename, a.Path, a.Theme, a.Size, created)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// List returns up to limit exports, newest first.
func (r *ExportRepository) List(ctx context.Context, limit int) ([]Export, error) {
	query := `
		SELECT id, festival_id, filename, path, theme, size_bytes, created_at
		FROM poster_exports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.FestivalID, &e.Filename, &e.Path, &e.Theme, &e.Size, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
