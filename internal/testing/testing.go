// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
)

// MockFetcher is a test double for [services.Fetcher].
//
// Each call pops the next queued response; the last one repeats once the queue drains.
// When Block is set, FetchLineup waits for it (or ctx) before answering.
type MockFetcher struct {
	mu        sync.Mutex
	responses []FetchResponse
	calls     []string
	Block     chan struct{}
}

// FetchResponse is one canned reply for [MockFetcher].
type FetchResponse struct {
	Payload any
	Err     error
}

func NewMockFetcher(responses ...FetchResponse) *MockFetcher {
	return &MockFetcher{responses: responses}
}

func (m *MockFetcher) FetchLineup(ctx context.Context, festivalID string) (any, error) {
	m.mu.Lock()
	m.calls = append(m.calls, festivalID)
	var r FetchResponse
	if len(m.responses) > 0 {
		r = m.responses[0]
		if len(m.responses) > 1 {
			m.responses = m.responses[1:]
		}
	}
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.Payload, r.Err
}

// Calls returns the festival ids requested so far.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// LineupPayload builds a bare three-tier payload as the backend would decode it.
func LineupPayload(headliners, guests, undercard []string) map[string]any {
	return map[string]any{
		"headliners":    artistList(headliners),
		"specialGuests": artistList(guests),
		"undercard":     artistList(undercard),
	}
}

func artistList(names []string) []any {
	out := make([]any, 0, len(names))
	for i, n := range names {
		out = append(out, map[string]any{
			"name":    n,
			"score":   float64(100 - i),
			"details": map[string]any{"track": float64(10 + i), "albums": float64(1)},
		})
	}
	return out
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
