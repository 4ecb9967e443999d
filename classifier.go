package permkit

// classifier turns the OS dialog's raw grant boolean into an Outcome, using
// live probe state plus the request history.
//
// The OS reports shouldShowRationale=false both on a first-ever ask and after
// "don't ask again"; the history flag is the only signal separating the two.
// A first ask reaches the denial branch with wasRequested=false (the flag is
// checked before it is set), while "don't ask again" arrives with
// wasRequested=true from the earlier cycle. There is one accepted blind spot:
// a process killed after the flag is set but before the dialog resolves can
// make the next denial look permanent one request early.
type classifier struct {
	probe   Probe
	history failOpenStore
}

// classify maps (key, liveGranted) to an Outcome and keeps history in step:
// a grant clears the key's flag so a later revoke-then-deny via settings is
// measured fresh, a plain denial sets it.
func (c classifier) classify(key Key, liveGranted bool) Outcome {
	if liveGranted {
		c.history.clear(key)
		return Granted{}
	}

	rationale := c.probe.ShouldShowRationale(key)
	if c.history.wasRequested(key) && !rationale {
		return PermanentlyDenied{}
	}

	c.history.markRequested(key)
	return Denied{ShouldShowRationale: rationale}
}

// isPermanentlyDenied is the dialog-free variant of the permanent-denial
// test, used for short-circuits and status checks. It never mutates history.
func (c classifier) isPermanentlyDenied(key Key, liveGranted bool) bool {
	return !liveGranted &&
		!c.probe.ShouldShowRationale(key) &&
		c.history.wasRequested(key)
}

// status classifies currently-known state without launching a dialog and
// without mutating history, so repeated calls are idempotent.
func (c classifier) status(key Key, liveGranted bool) Status {
	if liveGranted {
		return StatusGranted
	}
	if c.probe.ShouldShowRationale(key) {
		return StatusShouldShowRationale
	}
	if c.history.wasRequested(key) {
		return StatusPermanentlyDenied
	}
	return StatusNotGranted
}
