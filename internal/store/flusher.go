package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/internal/logger"
)

// Flusher is the background worker that periodically persists the cache's
// current entries. It implements the workers.Worker interface.
type Flusher struct {
	cache    *cache.Cache
	repo     *SnapshotRepository
	interval time.Duration
	logger   *logger.Logger

	started atomic.Bool
	stopped atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

func NewFlusher(c *cache.Cache, repo *SnapshotRepository, interval time.Duration, log *logger.Logger) *Flusher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Flusher{
		cache:    c,
		repo:     repo,
		interval: interval,
		logger:   log.GetChildLogger("flusher"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run starts the flush loop in its own goroutine and returns immediately.
// Idempotent.
func (f *Flusher) Run() {
	if !f.started.CompareAndSwap(false, true) {
		return
	}
	go f.loop()
}

func (f *Flusher) loop() {
	defer close(f.done)
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.Flush(context.Background())
		case <-f.stop:
			return
		}
	}
}

// Flush persists the current cache contents once. Failures are logged, not
// surfaced: snapshot persistence is best effort and the next tick retries.
func (f *Flusher) Flush(ctx context.Context) {
	records := EncodeSnapshots(f.cache.Snapshots())
	if len(records) == 0 {
		return
	}
	if err := f.repo.Save(ctx, records); err != nil {
		f.logger.Warn().Err(err).Msg("snapshot flush failed")
		return
	}
	f.logger.Debug().Int("entries", len(records)).Msg("snapshots flushed")
}

// Stop ends the loop. A flusher that never ran stops as a no-op, so a
// teardown path reached before Run does not block. The owner is expected to
// do one final persist of its own after stopping, where a failure can still
// be reported.
func (f *Flusher) Stop() {
	if !f.started.Load() || !f.stopped.CompareAndSwap(false, true) {
		return
	}
	close(f.stop)
	<-f.done
}
