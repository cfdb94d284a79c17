// package repositories provides persistence layer implementations for lineup snapshots and poster exports.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tidalfest/internal/shared"
)

const defaultListLimit = 20

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// notFound maps sql.ErrNoRows to [shared.ErrNotFound].
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, what)
	}
	return err
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
