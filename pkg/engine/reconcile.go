package engine

// reconcile classifies the ready session and writes the resolved rate.
// Writes are tagged engine-originated so they never count as a user override.
func (t *step) reconcile() {
	if !t.snap.ContentPage || t.s.Session.Phase != PhaseReady || t.s.Override.Active {
		return
	}
	current := t.snap.Rate
	if current <= 0 {
		return // no surface to write to
	}
	sess := &t.s.Session
	sess.ObservedRate = current
	norm := t.cfg.NormalRate

	// ambient rate the surface started at, e.g. a remembered global setting
	if !sameRate(current, norm) && t.s.UserDefaultRate == 0 {
		t.s.UserDefaultRate = current
	}

	res := t.s.Classifier.Classify(sess.Title, sess.Channel, t.snap.Aux)
	if sess.LastResult == nil || *sess.LastResult != res {
		t.emit(Classified{ContentID: sess.ContentID, Title: sess.Title, Channel: sess.Channel, Result: res})
	}
	sess.LastResult = &res
	t.releaseGuard()

	switch {
	case res.Match:
		if !sameRate(current, norm) {
			t.setRate(norm, "match")
		}
	case t.s.UserDefaultRate != 0 && !sameRate(t.s.UserDefaultRate, current):
		t.setRate(t.s.UserDefaultRate, "restore user default")
	}
}
