package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/normalizer"
	"github.com/desertthunder/tidalfest/internal/services"
	"github.com/desertthunder/tidalfest/internal/shared"
)

// DefaultInterval is how often the loading message rotates.
const DefaultInterval = 2 * time.Second

// SnapshotRecorder persists successful lineups. Implemented by repositories.SnapshotRepository.
type SnapshotRecorder interface {
	Save(ctx context.Context, festivalID string, result *models.Result) (string, error)
}

// Options configures a [Lifecycle].
type Options struct {
	Fetcher   services.Fetcher
	Normalize NormalizeFunc
	Catalog   *i18n.Catalog
	Interval  time.Duration
	NewTicker TickerFunc
	Logger    *log.Logger
	Recorder  SnapshotRecorder
	// Buffer is the capacity of the updates channel.
	Buffer int
}

// Lifecycle drives the loading, success and failure states for one festival at a time.
type Lifecycle struct {
	mu sync.Mutex
	wg sync.WaitGroup

	fetcher   services.Fetcher
	normalize NormalizeFunc
	catalog   *i18n.Catalog
	interval  time.Duration
	newTicker TickerFunc
	logger    *log.Logger
	recorder  SnapshotRecorder

	gen         uint64
	state       State
	mounted     bool
	closed      bool
	cancel      context.CancelFunc
	stopRotator func()
	updates     chan State
}

// New creates an unmounted lifecycle.
func New(opts Options) *Lifecycle {
	l := &Lifecycle{
		fetcher:   opts.Fetcher,
		normalize: opts.Normalize,
		catalog:   opts.Catalog,
		interval:  opts.Interval,
		newTicker: opts.NewTicker,
		logger:    opts.Logger,
		recorder:  opts.Recorder,
	}

	if l.normalize == nil {
		l.normalize = normalizer.Normalize
	}
	if l.catalog == nil {
		l.catalog = i18n.Lookup(i18n.Default)
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.newTicker == nil {
		l.newTicker = NewTicker
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}

	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = 16
	}
	l.updates = make(chan State, buffer)
	return l
}

// Mount starts the lifecycle for festivalID.
//
// Mounting the festival that is already loading does not start a second fetch.
func (l *Lifecycle) Mount(festivalID string) error {
	if err := validateID(festivalID); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("lifecycle closed")
	}
	if l.mounted && l.state.Kind == Loading && l.state.FestivalID == festivalID {
		return nil
	}
	l.mounted = true
	l.startLocked(festivalID)
	return nil
}

// SetFestival re-enters Loading for a new identifier. The current identifier is a no-op.
func (l *Lifecycle) SetFestival(festivalID string) error {
	if err := validateID(festivalID); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("lifecycle closed")
	}
	if l.mounted && l.state.FestivalID == festivalID {
		return nil
	}
	l.mounted = true
	l.startLocked(festivalID)
	return nil
}

// Retry starts a fresh fetch from Success or Failure and reports whether it did.
func (l *Lifecycle) Retry() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || !l.mounted || l.state.Kind == Loading {
		return false
	}
	l.startLocked(l.state.FestivalID)
	return true
}

// State returns the current snapshot.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Updates streams state changes. The channel is closed by [Lifecycle.Close].
func (l *Lifecycle) Updates() <-chan State {
	return l.updates
}

// Catalog returns the strings used for loading and failure messages.
func (l *Lifecycle) Catalog() *i18n.Catalog {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.catalog
}

// SetCatalog switches language. A loading message already shown is re-read from the new catalog.
func (l *Lifecycle) SetCatalog(c *i18n.Catalog) {
	if c == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.catalog = c
	if l.state.Kind == Loading && l.mounted {
		l.state.LoadingMessage = l.message(l.state.MessageIndex)
		l.publishLocked()
	}
}

// Close tears the lifecycle down, stopping the rotator and abandoning any in-flight fetch.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.releaseLocked()
	close(l.updates)
	l.mu.Unlock()

	l.wg.Wait()
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: festival id", shared.ErrMissingArgument)
	}
	return nil
}

func (l *Lifecycle) message(i int) string {
	msgs := l.catalog.LoadingMessages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[i%len(msgs)]
}

// startLocked enters Loading for festivalID under a new generation.
func (l *Lifecycle) startLocked(festivalID string) {
	l.releaseLocked()

	l.gen++
	gen := l.gen
	l.state = State{
		Kind:           Loading,
		FestivalID:     festivalID,
		Generation:     gen,
		MessageIndex:   0,
		LoadingMessage: l.message(0),
	}
	l.publishLocked()

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.startRotatorLocked(gen)

	l.logger.Info("fetching lineup", "festival", festivalID, "generation", gen)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		result, err := Resolve(ctx, l.fetcher, l.normalize, festivalID)
		l.commit(gen, festivalID, result, err)
	}()
}

func (l *Lifecycle) startRotatorLocked(gen uint64) {
	ticker := l.newTicker(l.interval)
	done := make(chan struct{})

	var once sync.Once
	l.stopRotator = func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-done:
				return
			case <-ticker.C():
				l.advance(gen)
			}
		}
	}()
}

func (l *Lifecycle) advance(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || gen != l.gen || l.state.Kind != Loading {
		return
	}
	n := len(l.catalog.LoadingMessages)
	if n == 0 {
		return
	}
	l.state.MessageIndex = (l.state.MessageIndex + 1) % n
	l.state.LoadingMessage = l.message(l.state.MessageIndex)
	l.publishLocked()
}

// releaseLocked stops the rotator and cancels the in-flight fetch, if any.
func (l *Lifecycle) releaseLocked() {
	if l.stopRotator != nil {
		l.stopRotator()
		l.stopRotator = nil
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Lifecycle) commit(gen uint64, festivalID string, result *models.Result, err error) {
	l.mu.Lock()

	if l.closed || gen != l.gen {
		l.mu.Unlock()
		l.logger.Debug("discarding stale lineup", "festival", festivalID, "generation", gen)
		return
	}
	l.releaseLocked()

	if err != nil {
		l.state = State{
			Kind:       Failure,
			FestivalID: festivalID,
			Generation: gen,
			Message:    Describe(err, l.catalog),
			Err:        err,
		}
		l.publishLocked()
		l.mu.Unlock()
		l.logFailure(festivalID, err)
		return
	}

	l.state = State{
		Kind:       Success,
		FestivalID: festivalID,
		Generation: gen,
		Result:     result,
	}
	l.publishLocked()
	recorder := l.recorder
	l.mu.Unlock()

	l.logger.Info("lineup loaded", "festival", festivalID, "lineup", result.Summary())

	if recorder != nil {
		if _, err := recorder.Save(context.Background(), festivalID, result); err != nil {
			l.logger.Warn("failed to cache lineup", "festival", festivalID, "error", err)
		}
	}
}

func (l *Lifecycle) logFailure(festivalID string, err error) {
	var schemaErr *normalizer.SchemaError
	if errors.As(err, &schemaErr) && !schemaErr.BackendReported {
		payload, _ := shared.MarshalJSON(schemaErr.Raw, false)
		l.logger.Error("unrecognized lineup payload", "festival", festivalID, "reason", schemaErr.Reason, "payload", services.Excerpt(payload))
		return
	}
	l.logger.Error("failed to load lineup", "festival", festivalID, "error", err)
}

// publishLocked sends the current state without blocking.
func (l *Lifecycle) publishLocked() {
	if l.closed {
		return
	}
	select {
	case l.updates <- l.state:
	default:
	}
}
