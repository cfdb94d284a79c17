package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/shared"
)

// Snapshot is a cached, normalized lineup.
type Snapshot struct {
	ID          string
	FestivalID  string
	Result      *models.Result
	DayCount    int
	ArtistCount int
	FetchedAt   time.Time
}

// SnapshotRepository stores lineup snapshots.
type SnapshotRepository struct {
	db  *sql.DB
	now clock
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, now: utcNow}
}

// Save stores result for festivalID and returns the snapshot id.
func (r *SnapshotRepository) Save(ctx context.Context, festivalID string, result *models.Result) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode lineup: %w", err)
	}

	id := shared.GenerateID()
	query := `
		INSERT INTO lineup_snapshots (id, festival_id, payload, day_count, artist_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query, id, festivalID, string(payload), result.DayCount(), result.ArtistCount(), r.now())
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return id, nil
}

// Latest returns the most recent snapshot for festivalID.
func (r *SnapshotRepository) Latest(ctx context.Context, festivalID string) (*Snapshot, error) {
	query := `
		SELECT id, festival_id, payload, day_count, artist_count, fetched_at
		FROM lineup_snapshots
		WHERE festival_id = ?
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT 1
	`
	s, err := scanSnapshot(r.db.QueryRowContext(ctx, query, festivalID))
	if err != nil {
		return nil, notFound(err, "snapshot for festival "+festivalID)
	}
	return s, nil
}

// List returns up to limit snapshots across all festivals, newest first.
func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]Snapshot, error) {
	query := `
		SELECT id, festival_id, payload, day_count, artist_count, fetched_at
		FROM lineup_snapshots
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var (
		s       Snapshot
		payload string
	)
	if err := row.Scan(&s.ID, &s.FestivalID, &payload, &s.DayCount, &s.ArtistCount, &s.FetchedAt); err != nil {
		return nil, err
	}

	s.Result = &models.Result{}
	if err := json.Unmarshal([]byte(payload), s.Result); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", s.ID, err)
	}
	return &s, nil
}
