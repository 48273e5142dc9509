package engine

import (
	"time"

	"github.com/umputun/speednorm/pkg/domain"
)

// Phase is the readiness phase of a content session
type Phase int

// readiness phases
const (
	PhaseIdle Phase = iota
	PhasePolling
	PhaseReady
	PhaseGaveUp
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePolling:
		return "polling"
	case PhaseReady:
		return "ready"
	case PhaseGaveUp:
		return "gave_up"
	default:
		return "unknown"
	}
}

// Session is the bookkeeping unit for one displayed item.
// Empty strings and zero rate mean "not observed yet".
type Session struct {
	ContentID     string
	Title         string
	Channel       string
	ObservedRate  float64
	PreviousTitle string
	Phase         Phase
	Attempts      int
	LastResult    *domain.Result
}

// Override records a rate change attributed to the user
type Override struct {
	Active bool
	Rate   float64
}

// Guard is the provisional lock state kept across a content switch
type Guard struct {
	Forced           bool
	Since            time.Time
	IgnoreWriteUntil time.Time
}

// State is the complete engine state. It is a value; Step returns a new one.
type State struct {
	Session         Session
	Override        Override
	UserDefaultRate float64 // zero until learned
	Guard           Guard
	Classifier      *Classifier

	timers    [timerKinds]uint64 // pending token per timer kind, zero when none
	lastToken uint64
}

// NewState makes an initial state for the given criteria
func NewState(c domain.Criteria) State {
	return State{Classifier: NewClassifier(c)}
}

// Pending reports whether a timer of the given kind is outstanding
func (s State) Pending(kind TimerKind) bool {
	return kind < timerKinds && s.timers[kind] != 0
}

// Token returns the outstanding token for a timer kind, zero if none
func (s State) Token(kind TimerKind) uint64 {
	if kind >= timerKinds {
		return 0
	}
	return s.timers[kind]
}

// Snapshot is what the collaborators reported right before an event is handled.
// Empty strings and zero rate mean "not available".
type Snapshot struct {
	ContentPage bool
	Title       string
	Channel     string
	Rate        float64
	Aux         AuxSignals
}
