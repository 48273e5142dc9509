package engine

// rateChanged attributes a rate-change notification. Engine-originated writes and
// notifications inside the guard's ignore window are dropped. Anything else is a
// user override that holds until the next content transition, and for
// non-matching content it also becomes the learned user default rate.
func (t *step) rateChanged(ev RateChanged) {
	if ev.Rate <= 0 {
		return
	}
	t.s.Session.ObservedRate = ev.Rate

	if ev.Origin == OriginEngine {
		return
	}
	if t.s.Guard.Forced && t.now.Before(t.s.Guard.IgnoreWriteUntil) {
		return
	}

	t.s.Override = Override{Active: true, Rate: ev.Rate}
	// a human took over during the transition, stop forcing
	t.releaseGuard()

	res := t.s.Classifier.Classify(t.s.Session.Title, t.s.Session.Channel, t.snap.Aux)
	if !res.Match && !sameRate(ev.Rate, t.cfg.NormalRate) {
		t.s.UserDefaultRate = ev.Rate
	}
}
