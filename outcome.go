package permkit

// Outcome is the classified result of requesting a single permission. The
// variant set is closed: Granted, Denied and PermanentlyDenied are the only
// implementations, so a type switch over all three is exhaustive.
type Outcome interface {
	isOutcome()
	String() string
}

// Granted means the permission is held.
type Granted struct{}

// Denied means the permission was refused but the OS will still show its
// dialog on a future request. ShouldShowRationale signals that an explanatory
// UI step is advisable before asking again.
type Denied struct {
	ShouldShowRationale bool
}

// PermanentlyDenied means the OS will no longer show its dialog for this
// permission; only an out-of-band settings change can grant it.
type PermanentlyDenied struct{}

func (Granted) isOutcome()           {}
func (Denied) isOutcome()            {}
func (PermanentlyDenied) isOutcome() {}

func (Granted) String() string { return "granted" }

func (d Denied) String() string {
	if d.ShouldShowRationale {
		return "denied (show rationale)"
	}
	return "denied"
}

func (PermanentlyDenied) String() string { return "permanently denied" }

// Status is the result of a dialog-free permission check.
type Status int

const (
	// StatusNotGranted means the permission is not held and nothing further
	// is known (typically it was never requested).
	StatusNotGranted Status = iota

	// StatusGranted means the permission is held.
	StatusGranted

	// StatusShouldShowRationale means the permission is not held and the OS
	// advises an explanatory UI step before re-asking.
	StatusShouldShowRationale

	// StatusPermanentlyDenied means the OS will not show its dialog again.
	StatusPermanentlyDenied
)

func (s Status) String() string {
	switch s {
	case StatusGranted:
		return "granted"
	case StatusShouldShowRationale:
		return "should show rationale"
	case StatusPermanentlyDenied:
		return "permanently denied"
	default:
		return "not granted"
	}
}

// Aggregate is the combined result of requesting several permission keys in
// one OS call. The three key slices partition the requested set exactly, in
// request order, and PerKey holds each key's individual Outcome.
type Aggregate struct {
	Granted           []Key
	Denied            []Key
	PermanentlyDenied []Key
	PerKey            map[Key]Outcome
}

// AllGranted reports whether every requested key was granted.
func (a Aggregate) AllGranted() bool {
	return len(a.Denied) == 0 && len(a.PermanentlyDenied) == 0
}

// AnyPermanentlyDenied reports whether at least one requested key is
// permanently denied.
func (a Aggregate) AnyPermanentlyDenied() bool {
	return len(a.PermanentlyDenied) > 0
}

// anyRationale reports whether any denied key carries the rationale hint.
func (a Aggregate) anyRationale() bool {
	for _, o := range a.PerKey {
		if d, ok := o.(Denied); ok && d.ShouldShowRationale {
			return true
		}
	}
	return false
}

// foldAggregate partitions per-key outcomes into an Aggregate, preserving
// the request order of keys.
func foldAggregate(keys []Key, perKey map[Key]Outcome) Aggregate {
	agg := Aggregate{PerKey: perKey}
	for _, k := range keys {
		switch perKey[k].(type) {
		case Granted:
			agg.Granted = append(agg.Granted, k)
		case PermanentlyDenied:
			agg.PermanentlyDenied = append(agg.PermanentlyDenied, k)
		default:
			agg.Denied = append(agg.Denied, k)
		}
	}
	return agg
}
