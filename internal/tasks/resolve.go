package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/normalizer"
	"github.com/desertthunder/tidalfest/internal/services"
)

// NormalizeFunc maps a raw payload to the canonical lineup.
type NormalizeFunc func(raw any) (*models.Result, error)

// Resolve runs one fetch followed by normalization.
func Resolve(ctx context.Context, fetcher services.Fetcher, normalize NormalizeFunc, festivalID string) (*models.Result, error) {
	if normalize == nil {
		normalize = normalizer.Normalize
	}

	raw, err := fetcher.FetchLineup(ctx, festivalID)
	if err != nil {
		return nil, err
	}
	return normalize(raw)
}

// Describe turns a fetch or normalization error into a message for the user.
func Describe(err error, c *i18n.Catalog) string {
	if c == nil {
		c = i18n.Lookup(i18n.Default)
	}

	var (
		netErr    *services.NetworkError
		httpErr   *services.HTTPError
		decodeErr *services.DecodeError
		schemaErr *normalizer.SchemaError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &httpErr):
		return fmt.Sprintf(c.HTTPFailure, httpErr.Status, httpErr.StatusText, httpErr.Excerpt)
	case errors.As(err, &decodeErr):
		return fmt.Sprintf(c.DecodeFailure, decodeErr.Excerpt)
	case errors.As(err, &schemaErr):
		if schemaErr.BackendReported && schemaErr.Reason != "" {
			return fmt.Sprintf(c.BackendFailure, schemaErr.Reason)
		}
		return c.SchemaFailure
	case errors.As(err, &netErr):
		return fmt.Sprintf(c.NetworkFailure, netErr.Err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Sprintf(c.NetworkFailure, err)
	default:
		return c.UnknownFailure
	}
}
