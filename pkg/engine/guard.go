package engine

// navigationStarted enters the provisional lock when the outgoing item matched,
// so its normalized rate carries over until the next item is classified
func (t *step) navigationStarted() {
	// the outgoing session must not complete against the incoming item's metadata
	t.cancel(TimerReadiness)
	t.cancel(TimerVisibility)
	// nothing reconciles until the next item is resolved, the last result stays for the guard
	t.s.Session.Phase = PhaseIdle

	if t.s.Guard.Forced {
		return // already locked, keep the original ceiling
	}
	last := t.s.Session.LastResult
	if last == nil || !last.Match {
		return
	}

	t.s.Guard = Guard{Forced: true, Since: t.now}
	t.s.Override = Override{}
	t.enforce()
	t.schedule(TimerGuard, "", t.cfg.GuardInterval)
}

// guardTick re-forces the normalized rate until classification completes or the ceiling passes
func (t *step) guardTick() {
	if !t.s.Guard.Forced {
		return
	}
	if t.now.Sub(t.s.Guard.Since) >= t.cfg.GuardCeiling {
		t.s.Guard = Guard{} // fail open
		return
	}
	t.enforce()
	t.schedule(TimerGuard, "", t.cfg.GuardInterval)
}

// enforce writes the normalized rate if the surface drifted from it
func (t *step) enforce() {
	if t.snap.Rate <= 0 || sameRate(t.snap.Rate, t.cfg.NormalRate) {
		return
	}
	t.setRate(t.cfg.NormalRate, "transition guard")
	t.s.Guard.IgnoreWriteUntil = t.now.Add(t.cfg.GuardIgnoreWindow)
}

// releaseGuard clears the provisional lock and its pending tick
func (t *step) releaseGuard() {
	t.s.Guard = Guard{}
	t.cancel(TimerGuard)
}
