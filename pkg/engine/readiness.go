package engine

// navigationFinished resets the session for a new content id and starts polling.
// The reset happens before the first poll of the new session.
func (t *step) navigationFinished(contentID string) {
	t.cancel(TimerReadiness)
	t.cancel(TimerVisibility)

	if contentID == "" {
		// left the content-display context, nothing will classify the next item
		t.releaseGuard()
		return
	}

	prev := t.s.Session
	switch {
	case prev.ContentID == "":
		t.s.Session = Session{ContentID: contentID}
		t.s.Override = Override{}
	case prev.ContentID != contentID:
		t.s.Session = Session{ContentID: contentID, PreviousTitle: prev.Title}
		t.s.Override = Override{}
	default:
		// same item navigated again, metadata is current
		t.s.Session.PreviousTitle = ""
	}

	t.s.Session.Phase = PhasePolling
	t.s.Session.Attempts = 0
	t.poll()
}

// poll gathers title, channel and rate for the current session. A title equal to
// the previous session's title means the surface has not switched yet.
func (t *step) poll() {
	if t.s.Session.Phase != PhasePolling {
		return
	}
	sess := &t.s.Session
	ready := true

	switch title := t.snap.Title; {
	case title == "":
		ready = false
	case sess.PreviousTitle != "" && title == sess.PreviousTitle:
		ready = false
	default:
		sess.Title = title
	}

	if t.snap.Channel != "" {
		sess.Channel = t.snap.Channel
	} else {
		ready = false
	}

	if t.snap.Rate > 0 {
		sess.ObservedRate = t.snap.Rate
	} else {
		ready = false
	}

	if ready {
		sess.Phase = PhaseReady
		t.reconcile()
		return
	}

	sess.Attempts++
	if sess.Attempts >= t.cfg.MaxAttempts {
		sess.Phase = PhaseGaveUp
		return
	}
	t.schedule(TimerReadiness, sess.ContentID, t.cfg.RetryInterval)
}

// contentMutated picks up in-place title or channel updates of a ready session
func (t *step) contentMutated() {
	sess := &t.s.Session
	if sess.Phase != PhaseReady {
		return
	}
	changed := false
	if t.snap.Title != "" && t.snap.Title != sess.Title {
		sess.Title = t.snap.Title
		changed = true
	}
	if t.snap.Channel != "" && t.snap.Channel != sess.Channel {
		sess.Channel = t.snap.Channel
		changed = true
	}
	if changed {
		t.reconcile()
	}
}
