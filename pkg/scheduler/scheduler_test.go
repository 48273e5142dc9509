package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/speednorm/pkg/scheduler/mocks"
)

func TestNewScheduler(t *testing.T) {
	journal := &mocks.JournalMock{}
	s := NewScheduler(Params{Journal: journal, Retention: 24 * time.Hour, Interval: 5 * time.Minute})
	assert.Equal(t, 5*time.Minute, s.interval)
	assert.Equal(t, 24*time.Hour, s.retention)

	s = NewScheduler(Params{Journal: journal, Retention: time.Hour})
	assert.Equal(t, time.Hour, s.interval)
}

func TestScheduler_PrunesOnStartAndTick(t *testing.T) {
	var pruned atomic.Int32
	journal := &mocks.JournalMock{
		PruneDecisionsFunc: func(ctx context.Context, olderThan time.Time) (int64, error) {
			pruned.Add(1)
			return 3, nil
		},
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewScheduler(Params{Journal: journal, Retention: 48 * time.Hour, Interval: 20 * time.Millisecond})
	s.now = func() time.Time { return now }

	s.Start(context.Background())
	require.Eventually(t, func() bool { return pruned.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	calls := journal.PruneDecisionsCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, now.Add(-48*time.Hour), calls[0].OlderThan)

	// no more calls after stop
	n := len(journal.PruneDecisionsCalls())
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, journal.PruneDecisionsCalls(), n)
}

func TestScheduler_PruneErrorKeepsRunning(t *testing.T) {
	var calls atomic.Int32
	journal := &mocks.JournalMock{
		PruneDecisionsFunc: func(ctx context.Context, olderThan time.Time) (int64, error) {
			calls.Add(1)
			return 0, errors.New("database is locked")
		},
	}
	s := NewScheduler(Params{Journal: journal, Retention: time.Hour, Interval: 10 * time.Millisecond})
	s.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_RetentionDisabled(t *testing.T) {
	journal := &mocks.JournalMock{}
	s := NewScheduler(Params{Journal: journal})
	s.Start(context.Background())
	s.Stop()
	assert.Empty(t, journal.PruneDecisionsCalls())
}

func TestScheduler_StopsWithContext(t *testing.T) {
	journal := &mocks.JournalMock{
		PruneDecisionsFunc: func(ctx context.Context, olderThan time.Time) (int64, error) { return 0, nil },
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(Params{Journal: journal, Retention: time.Hour, Interval: time.Hour})
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
	s.Stop()
}
