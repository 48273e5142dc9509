// Package scheduler runs background maintenance of the decision journal.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal

// Scheduler periodically prunes old journal entries
type Scheduler struct {
	journal   Journal
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	wg        sync.WaitGroup
	cancel    context.CancelFunc
}

// Journal is the decision store being maintained
type Journal interface {
	PruneDecisions(ctx context.Context, olderThan time.Time) (int64, error)
}

// Params holds scheduler dependencies and timing
type Params struct {
	Journal   Journal
	Retention time.Duration // decisions older than this are removed, 0 disables pruning
	Interval  time.Duration
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.Interval == 0 {
		params.Interval = time.Hour
	}
	return &Scheduler{
		journal:   params.Journal,
		retention: params.Retention,
		interval:  params.Interval,
		now:       time.Now,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	if s.retention <= 0 {
		lgr.Printf("[INFO] journal retention disabled, scheduler not started")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.pruneWorker(ctx)

	lgr.Printf("[INFO] scheduler started, prune every %v, retention %v", s.interval, s.retention)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	lgr.Printf("[INFO] stopping scheduler...")
	s.cancel()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// pruneWorker removes expired decisions on start and then every interval
func (s *Scheduler) pruneWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.prune(ctx)
		}
	}
}

func (s *Scheduler) prune(ctx context.Context) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.journal.PruneDecisions(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			lgr.Printf("[WARN] failed to prune decisions older than %s: %v", cutoff.Format(time.RFC3339), err)
		}
		return
	}
	if n > 0 {
		lgr.Printf("[INFO] pruned %d decisions older than %s", n, cutoff.Format(time.RFC3339))
	}
}
