// Package views provides asynchronous view-count recording.
//
// Reads publish an increment to a buffered channel and return
// immediately; a background worker coalesces increments per article and
// flushes them to the store on an interval and at shutdown. When the
// buffer is full the increment is dropped: a lost view count is an
// accepted approximation, never worth blocking a read.
package views

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/newsdesk/newsdesk/internal/metrics"
)

const (
	// DefaultBufferSize is the capacity of the pending-increment queue.
	DefaultBufferSize = 4096

	// DefaultFlushInterval is how often buffered increments are written.
	DefaultFlushInterval = 2 * time.Second

	// flushTimeout bounds a single store write.
	flushTimeout = 5 * time.Second
)

// Store applies view-count increments.
type Store interface {
	IncrementNewsViews(ctx context.Context, id string, delta int64) error
}

// Recorder accepts increments and flushes them in the background.
type Recorder struct {
	store         Store
	logger        *slog.Logger
	metrics       metrics.Recorder
	events        chan string
	flushInterval time.Duration

	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// NewRecorder creates a view recorder with default buffering.
func NewRecorder(store Store, logger *slog.Logger, recorder metrics.Recorder) *Recorder {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Recorder{
		store:         store,
		logger:        logger.With("component", "views.recorder"),
		metrics:       recorder,
		events:        make(chan string, DefaultBufferSize),
		flushInterval: DefaultFlushInterval,
	}
}

// Record enqueues one view for the given article without blocking.
func (r *Recorder) Record(newsID string) {
	select {
	case r.events <- newsID:
		r.metrics.IncViewRecorded("success")
	default:
		r.metrics.IncViewRecorded("dropped")
	}
}

// Run starts the flush loop. Blocks until the context is cancelled, then
// drains whatever is still buffered.
func (r *Recorder) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return errors.New("view recorder already started")
	}
	r.started = true
	r.done = make(chan struct{})
	ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	defer close(r.done)

	r.logger.Info("view recorder started")

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	pending := make(map[string]int64)

	for {
		select {
		case id := <-r.events:
			pending[id]++
		case <-ticker.C:
			r.flush(pending)
			pending = make(map[string]int64)
		case <-ctx.Done():
			r.drain(pending)
			r.flush(pending)
			r.logger.Info("view recorder stopped")
			return nil
		}
	}
}

// Shutdown stops the flush loop and waits for the final flush.
func (r *Recorder) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain moves everything still queued into the pending map.
func (r *Recorder) drain(pending map[string]int64) {
	for {
		select {
		case id := <-r.events:
			pending[id]++
		default:
			return
		}
	}
}

func (r *Recorder) flush(pending map[string]int64) {
	if len(pending) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	flushed := 0
	for id, delta := range pending {
		if err := r.store.IncrementNewsViews(ctx, id, delta); err != nil {
			// The article may have been deleted since the read; a lost
			// count is acceptable either way.
			r.logger.Debug("failed to flush view count",
				"news_id", id,
				"error", err,
			)
			continue
		}
		flushed++
	}

	r.metrics.ObserveViewFlushSize(flushed)
}
