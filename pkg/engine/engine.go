// Package engine implements classification and playback-rate reconciliation
// as a pure transition function. Step takes the current State, an Event and a
// Snapshot of what the collaborators report, and returns the next State with
// the side effects to perform. It never blocks, logs or touches a clock.
package engine

import (
	"math"
	"time"

	"github.com/umputun/speednorm/pkg/domain"
)

// Config holds engine timing and the normalized rate
type Config struct {
	NormalRate         float64
	RetryInterval      time.Duration
	MaxAttempts        int
	GuardInterval      time.Duration
	GuardCeiling       time.Duration
	GuardIgnoreWindow  time.Duration
	VisibilityDebounce time.Duration
}

// DefaultConfig returns the standard timing
func DefaultConfig() Config {
	return Config{
		NormalRate:         1.0,
		RetryInterval:      500 * time.Millisecond,
		MaxAttempts:        10,
		GuardInterval:      100 * time.Millisecond,
		GuardCeiling:       5 * time.Second,
		GuardIgnoreWindow:  1500 * time.Millisecond,
		VisibilityDebounce: 100 * time.Millisecond,
	}
}

// Engine applies transitions with fixed configuration
type Engine struct {
	cfg Config
}

// New makes an engine, zero config fields are replaced with defaults
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.NormalRate <= 0 {
		cfg.NormalRate = def.NormalRate
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = def.RetryInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.GuardInterval <= 0 {
		cfg.GuardInterval = def.GuardInterval
	}
	if cfg.GuardCeiling <= 0 {
		cfg.GuardCeiling = def.GuardCeiling
	}
	if cfg.GuardIgnoreWindow <= 0 {
		cfg.GuardIgnoreWindow = def.GuardIgnoreWindow
	}
	if cfg.VisibilityDebounce <= 0 {
		cfg.VisibilityDebounce = def.VisibilityDebounce
	}
	return &Engine{cfg: cfg}
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Step applies one event to the state
func (e *Engine) Step(s State, ev Event, snap Snapshot, now time.Time) (State, []Command) {
	if s.Classifier == nil {
		s.Classifier = NewClassifier(domain.DefaultCriteria())
	}
	t := &step{cfg: e.cfg, s: s, snap: snap, now: now}

	switch ev := ev.(type) {
	case NavigationStarted:
		t.navigationStarted()
	case NavigationFinished:
		t.navigationFinished(ev.ContentID)
	case ContentMutated:
		t.contentMutated()
	case SurfaceAttached:
		t.reconcile()
	case VisibilityRegained:
		t.schedule(TimerVisibility, t.s.Session.ContentID, e.cfg.VisibilityDebounce)
	case RateChanged:
		t.rateChanged(ev)
	case TimerFired:
		t.timerFired(ev)
	case CriteriaChanged:
		t.s.Classifier = NewClassifier(ev.Criteria)
		t.reconcile()
	}
	return t.s, t.cmds
}

// step carries one transition in progress
type step struct {
	cfg  Config
	s    State
	snap Snapshot
	now  time.Time
	cmds []Command
}

func (t *step) emit(c Command) {
	t.cmds = append(t.cmds, c)
}

func (t *step) schedule(kind TimerKind, contentID string, after time.Duration) {
	t.s.lastToken++
	t.s.timers[kind] = t.s.lastToken
	t.emit(Schedule{Timer: kind, ContentID: contentID, Token: t.s.lastToken, After: after})
}

func (t *step) cancel(kind TimerKind) {
	if t.s.timers[kind] == 0 {
		return
	}
	t.s.timers[kind] = 0
	t.emit(Cancel{Timer: kind})
}

func (t *step) setRate(rate float64, reason string) {
	t.emit(SetRate{Rate: rate, Origin: OriginEngine, Reason: reason})
	t.s.Session.ObservedRate = rate
}

// timerFired discards anything that is not the outstanding task for the current session
func (t *step) timerFired(ev TimerFired) {
	if ev.Timer >= timerKinds || ev.Token == 0 || t.s.timers[ev.Timer] != ev.Token {
		return
	}
	if ev.Timer != TimerGuard && ev.ContentID != t.s.Session.ContentID {
		return
	}
	t.s.timers[ev.Timer] = 0

	switch ev.Timer {
	case TimerReadiness:
		t.poll()
	case TimerGuard:
		t.guardTick()
	case TimerVisibility:
		t.reconcile()
	}
}

// sameRate compares rates with a tolerance for float round trips through the surface
func sameRate(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
