package engine

import (
	"fmt"
	"time"

	"github.com/umputun/speednorm/pkg/domain"
)

// Origin tags who initiated a rate write
type Origin string

const (
	OriginUnknown Origin = ""
	OriginUser    Origin = "user"
	OriginEngine  Origin = "engine"
)

// TimerKind identifies a scheduled task
type TimerKind int

const (
	TimerReadiness TimerKind = iota
	TimerGuard
	TimerVisibility
	timerKinds
)

func (k TimerKind) String() string {
	switch k {
	case TimerReadiness:
		return "readiness"
	case TimerGuard:
		return "guard"
	case TimerVisibility:
		return "visibility"
	default:
		return fmt.Sprintf("timer(%d)", int(k))
	}
}

// Event is an input to Step
type Event interface {
	event()
}

// NavigationStarted signals that the displayed content is about to change
type NavigationStarted struct{}

// NavigationFinished signals the new content id is resolvable.
// An empty ContentID means the surface left the content-display context.
type NavigationFinished struct{ ContentID string }

// ContentMutated signals an in-place metadata update
type ContentMutated struct{}

// SurfaceAttached signals the playback surface (re)appeared
type SurfaceAttached struct{}

// VisibilityRegained signals the surface became visible again
type VisibilityRegained struct{}

// RateChanged is a rate-change notification from the surface
type RateChanged struct {
	Rate   float64
	Origin Origin
}

// TimerFired is delivered when a scheduled task is due
type TimerFired struct {
	Timer     TimerKind
	ContentID string
	Token     uint64
}

// CriteriaChanged delivers new criteria from the configuration store
type CriteriaChanged struct{ Criteria domain.Criteria }

func (NavigationStarted) event()  {}
func (NavigationFinished) event() {}
func (ContentMutated) event()     {}
func (SurfaceAttached) event()    {}
func (VisibilityRegained) event() {}
func (RateChanged) event()        {}
func (TimerFired) event()         {}
func (CriteriaChanged) event()    {}

// Command is a side effect requested by Step
type Command interface {
	command()
}

// SetRate asks to write the playback rate, always tagged engine-originated
type SetRate struct {
	Rate   float64
	Origin Origin
	Reason string
}

// Schedule asks to deliver TimerFired{Timer, ContentID, Token} after a delay,
// replacing any outstanding task of the same kind
type Schedule struct {
	Timer     TimerKind
	ContentID string
	Token     uint64
	After     time.Duration
}

// Cancel asks to drop the outstanding task of a kind
type Cancel struct {
	Timer TimerKind
}

// Classified reports a new classification result for diagnostics
type Classified struct {
	ContentID string
	Title     string
	Channel   string
	Result    domain.Result
}

func (SetRate) command()    {}
func (Schedule) command()   {}
func (Cancel) command()     {}
func (Classified) command() {}
