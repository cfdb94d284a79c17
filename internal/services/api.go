// API service for the TidalFest backend
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/tidalfest/internal/shared"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	userAgent      = "tidalfest-cli/1.0"
	lineupPath     = "/api/result-fest/"
	loginPath      = "/api/auth/tidal/login"
)

// Fetcher retrieves the raw lineup payload for a festival.
type Fetcher interface {
	FetchLineup(ctx context.Context, festivalID string) (any, error)
}

var _ Fetcher = (*APIService)(nil)

// APIService makes requests against the TidalFest backend.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Options configures an [APIService]. Zero values fall back to defaults.
type Options struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	RequestsPerSecond float64
}

// NewAPIService creates a new API service instance for the backend at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	return NewAPIServiceWithOptions(Options{BaseURL: baseURL, Client: client})
}

// NewAPIServiceWithOptions creates an API service with throttling and timeout settings.
func NewAPIServiceWithOptions(opts Options) *APIService {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
		if opts.Timeout > 0 {
			client = &http.Client{Timeout: opts.Timeout}
		}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// FromConfig builds an API service from the [api] config section.
func FromConfig(cfg shared.APIConfig) *APIService {
	return NewAPIServiceWithOptions(Options{
		BaseURL:           cfg.URL,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
}

// BaseURL returns the configured backend address.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// LoginURL returns the backend address that starts the TIDAL login flow.
func (a *APIService) LoginURL() string {
	return a.baseURL + loginPath
}

// LineupURL returns the lineup endpoint for festivalID.
func (a *APIService) LineupURL(festivalID string) string {
	return a.baseURL + lineupPath + url.PathEscape(festivalID)
}

// FetchLineup performs one GET against the lineup endpoint and returns the decoded JSON body.
//
// The body is returned untyped; envelope interpretation happens downstream.
func (a *APIService) FetchLineup(ctx context.Context, festivalID string) (any, error) {
	if strings.TrimSpace(festivalID) == "" {
		return nil, fmt.Errorf("%w: festival id is required", shared.ErrMissingArgument)
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.LineupURL(festivalID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Excerpt:    Excerpt(body),
		}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Excerpt: Excerpt(body), Err: err}
	}
	return payload, nil
}

// statusText strips the numeric code from resp.Status, falling back to the canonical text.
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
