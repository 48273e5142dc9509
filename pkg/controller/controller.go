// Package controller runs the engine against live collaborators. A single loop
// goroutine owns the engine state; every event is paired with a fresh snapshot
// of the collaborators, stepped through the engine, and the resulting commands
// are executed in order. Rate writes are tagged so the surface's own change
// notifications come back marked engine-originated.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/speednorm/pkg/domain"
	"github.com/umputun/speednorm/pkg/engine"
)

//go:generate moq -out mocks/metadata.go -pkg mocks -skip-ensure -fmt goimports . Metadata
//go:generate moq -out mocks/surface.go -pkg mocks -skip-ensure -fmt goimports . Surface
//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal

// Metadata provides descriptive metadata of the displayed item.
// Empty strings mean "not available yet" and are not errors.
type Metadata interface {
	ContentPage(ctx context.Context) bool
	Title(ctx context.Context) string
	Channel(ctx context.Context) string
	AuxSignal(ctx context.Context, kind engine.AuxKind) bool
}

// Surface is the playback surface
type Surface interface {
	Rate(ctx context.Context) (float64, error)
	SetRate(ctx context.Context, rate float64) error
}

// Journal records classification decisions
type Journal interface {
	RecordDecision(ctx context.Context, d domain.Decision) error
}

// Config holds controller parameters
type Config struct {
	Engine         engine.Config
	Criteria       domain.Criteria
	WriteTagWindow time.Duration // how long an engine write waits for its change notification
	QueueSize      int
}

// Controller drives the engine
type Controller struct {
	eng      *engine.Engine
	meta     Metadata
	surface  Surface
	journal  Journal
	tagWin   time.Duration
	now      func() time.Time
	afterFn  func(d time.Duration, f func()) func() bool
	events   chan engine.Event
	journalc chan domain.Decision
	done     chan struct{}
	doneOnce sync.Once

	// owned by the loop goroutine
	timers map[engine.TimerKind]func() bool
	writes []taggedWrite

	mu    sync.RWMutex // guards state for Status readers
	state engine.State
}

type taggedWrite struct {
	rate  float64
	until time.Time
}

// Option customizes a controller, mostly for tests
type Option func(*Controller)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithAfterFunc replaces time.AfterFunc, the returned func stops the task
func WithAfterFunc(fn func(d time.Duration, f func()) func() bool) Option {
	return func(c *Controller) { c.afterFn = fn }
}

// New makes a controller. Journal may be nil.
func New(cfg Config, meta Metadata, surface Surface, journal Journal, opts ...Option) *Controller {
	if cfg.WriteTagWindow <= 0 {
		cfg.WriteTagWindow = time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	c := &Controller{
		eng:      engine.New(cfg.Engine),
		meta:     meta,
		surface:  surface,
		journal:  journal,
		tagWin:   cfg.WriteTagWindow,
		now:      time.Now,
		events:   make(chan engine.Event, cfg.QueueSize),
		journalc: make(chan domain.Decision, cfg.QueueSize),
		done:     make(chan struct{}),
		timers:   make(map[engine.TimerKind]func() bool),
		state:    engine.NewState(cfg.Criteria),
	}
	c.afterFn = func(d time.Duration, f func()) func() bool { return time.AfterFunc(d, f).Stop }
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run processes events until the context is canceled
func (c *Controller) Run(ctx context.Context) error {
	defer c.doneOnce.Do(func() { close(c.done) })

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.journalWorker(ctx)
		return nil
	})
	g.Go(func() error {
		defer c.stopTimers()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-c.events:
				c.handle(ctx, ev)
			}
		}
	})

	lgr.Printf("[INFO] rate controller started, normal rate %.2f", c.eng.Config().NormalRate)
	err := g.Wait()
	lgr.Printf("[INFO] rate controller stopped")
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// Post delivers an event to the loop, blocking until accepted or the context ends
func (c *Controller) Post(ctx context.Context, ev engine.Event) error {
	select {
	case <-c.done:
		return fmt.Errorf("controller stopped")
	default:
	}
	select {
	case c.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return fmt.Errorf("controller stopped")
	}
}

// UpdateCriteria pushes new criteria to the engine
func (c *Controller) UpdateCriteria(ctx context.Context, criteria domain.Criteria) error {
	return c.Post(ctx, engine.CriteriaChanged{Criteria: criteria.Clone()})
}

// Status is a point-in-time view of the engine state
type Status struct {
	ContentID       string          `json:"content_id"`
	Title           string          `json:"title"`
	Channel         string          `json:"channel"`
	Phase           string          `json:"phase"`
	Attempts        int             `json:"attempts"`
	LastResult      *domain.Result  `json:"last_result,omitempty"`
	ObservedRate    float64         `json:"observed_rate"`
	NormalRate      float64         `json:"normal_rate"`
	UserDefaultRate float64         `json:"user_default_rate"`
	OverrideActive  bool            `json:"override_active"`
	OverrideRate    float64         `json:"override_rate,omitempty"`
	GuardForced     bool            `json:"guard_forced"`
	Criteria        domain.Criteria `json:"criteria"`
}

// Status returns the current engine state, safe for concurrent use
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.state
	res := Status{
		ContentID:       s.Session.ContentID,
		Title:           s.Session.Title,
		Channel:         s.Session.Channel,
		Phase:           s.Session.Phase.String(),
		Attempts:        s.Session.Attempts,
		ObservedRate:    s.Session.ObservedRate,
		NormalRate:      c.eng.Config().NormalRate,
		UserDefaultRate: s.UserDefaultRate,
		OverrideActive:  s.Override.Active,
		OverrideRate:    s.Override.Rate,
		GuardForced:     s.Guard.Forced,
	}
	if s.Session.LastResult != nil {
		r := *s.Session.LastResult
		res.LastResult = &r
	}
	if s.Classifier != nil {
		res.Criteria = s.Classifier.Criteria()
	}
	return res
}

// handle steps one event and executes the resulting commands
func (c *Controller) handle(ctx context.Context, ev engine.Event) {
	now := c.now()
	if rc, ok := ev.(engine.RateChanged); ok && rc.Origin == engine.OriginUnknown {
		rc.Origin = c.attribute(rc.Rate, now)
		ev = rc
	}

	snap := c.snapshot(ctx)

	c.mu.Lock()
	next, cmds := c.eng.Step(c.state, ev, snap, now)
	c.state = next
	c.mu.Unlock()

	lgr.Printf("[DEBUG] event %T, snapshot %+v, %d commands", ev, snap, len(cmds))
	rate := resolvedRate(ev, snap, cmds)
	for _, cmd := range cmds {
		c.execute(ctx, cmd, now, rate)
	}
}

// resolvedRate is the rate the surface ends up at after the batch
func resolvedRate(ev engine.Event, snap engine.Snapshot, cmds []engine.Command) float64 {
	rate := snap.Rate
	if rc, ok := ev.(engine.RateChanged); ok {
		rate = rc.Rate
	}
	for _, cmd := range cmds {
		if sr, ok := cmd.(engine.SetRate); ok {
			rate = sr.Rate
		}
	}
	return rate
}

func (c *Controller) snapshot(ctx context.Context) engine.Snapshot {
	snap := engine.Snapshot{
		ContentPage: c.meta.ContentPage(ctx),
		Title:       c.meta.Title(ctx),
		Channel:     c.meta.Channel(ctx),
		Aux: engine.AuxSignals{
			OfficialBadge: c.meta.AuxSignal(ctx, engine.AuxOfficialBadge),
			MusicSection:  c.meta.AuxSignal(ctx, engine.AuxMusicSection),
		},
	}
	rate, err := c.surface.Rate(ctx)
	if err != nil {
		lgr.Printf("[DEBUG] rate unavailable: %v", err)
		return snap
	}
	snap.Rate = rate
	return snap
}

func (c *Controller) execute(ctx context.Context, cmd engine.Command, now time.Time, rate float64) {
	switch cmd := cmd.(type) {
	case engine.SetRate:
		c.writes = append(c.writes, taggedWrite{rate: cmd.Rate, until: now.Add(c.tagWin)})
		if err := c.surface.SetRate(ctx, cmd.Rate); err != nil {
			lgr.Printf("[WARN] failed to set rate %.2f: %v", cmd.Rate, err)
			c.writes = c.writes[:len(c.writes)-1]
			return
		}
		lgr.Printf("[INFO] rate set to %.2f, %s", cmd.Rate, cmd.Reason)
	case engine.Schedule:
		c.stopTimer(cmd.Timer)
		fired := engine.TimerFired{Timer: cmd.Timer, ContentID: cmd.ContentID, Token: cmd.Token}
		c.timers[cmd.Timer] = c.afterFn(cmd.After, func() { c.fire(fired) })
	case engine.Cancel:
		c.stopTimer(cmd.Timer)
	case engine.Classified:
		lgr.Printf("[INFO] classified %q by %q: match=%v rule=%s keyword=%q",
			cmd.Title, cmd.Channel, cmd.Result.Match, cmd.Result.Rule, cmd.Result.Keyword)
		c.enqueueDecision(domain.Decision{
			ContentID: cmd.ContentID,
			Title:     cmd.Title,
			Channel:   cmd.Channel,
			Match:     cmd.Result.Match,
			Rule:      cmd.Result.Rule,
			Keyword:   cmd.Result.Keyword,
			Rate:      rate,
			DecidedAt: now,
		})
	default:
		lgr.Printf("[WARN] unknown command %T", cmd)
	}
}

// attribute tags a rate notification as engine-originated when it answers a recent engine write
func (c *Controller) attribute(rate float64, now time.Time) engine.Origin {
	live := c.writes[:0]
	for _, w := range c.writes {
		if now.Before(w.until) {
			live = append(live, w)
		}
	}
	c.writes = live

	for i, w := range c.writes {
		if sameRate(w.rate, rate) {
			c.writes = append(c.writes[:i], c.writes[i+1:]...)
			return engine.OriginEngine
		}
	}
	return engine.OriginUser
}

// fire runs on the timer goroutine and hands the event to the loop
func (c *Controller) fire(ev engine.TimerFired) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Controller) stopTimer(kind engine.TimerKind) {
	if stop, ok := c.timers[kind]; ok {
		stop()
		delete(c.timers, kind)
	}
}

func (c *Controller) stopTimers() {
	for kind := range c.timers {
		c.stopTimer(kind)
	}
}

func (c *Controller) enqueueDecision(d domain.Decision) {
	if c.journal == nil {
		return
	}
	select {
	case c.journalc <- d:
	default:
		lgr.Printf("[WARN] decision journal queue full, dropped decision for %s", d.ContentID)
	}
}

func (c *Controller) journalWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-c.journalc:
			if err := c.journal.RecordDecision(ctx, d); err != nil {
				lgr.Printf("[WARN] failed to record decision for %s: %v", d.ContentID, err)
			}
		}
	}
}

func sameRate(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
