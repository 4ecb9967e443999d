package permkit

import "context"

// LocationOutcome is the semantic result of a location request. The variant
// set is closed: LocationPrecise, LocationApproximate, LocationDenied and
// LocationPermanentlyDenied.
type LocationOutcome interface {
	isLocationOutcome()
}

// LocationPrecise means the fine location key was granted.
type LocationPrecise struct{}

// LocationApproximate means only the coarse location key was granted.
type LocationApproximate struct{}

// LocationDenied means no location key was granted but the OS will still ask.
type LocationDenied struct {
	ShouldShowRationale bool
}

// LocationPermanentlyDenied means at least one location key is permanently
// denied.
type LocationPermanentlyDenied struct{}

func (LocationPrecise) isLocationOutcome()           {}
func (LocationApproximate) isLocationOutcome()       {}
func (LocationDenied) isLocationOutcome()            {}
func (LocationPermanentlyDenied) isLocationOutcome() {}

// LocationKeys returns the concrete keys a location request maps to. With a
// precision choice the fine and coarse keys must be requested together in one
// call so the OS can offer the approximate option; without one, only the fine
// key exists to ask for.
func LocationKeys(caps Capabilities) []Key {
	if caps.PrecisionChoice {
		return []Key{KeyFineLocation, KeyCoarseLocation}
	}
	return []Key{KeyFineLocation}
}

// ResolveLocation reduces a location request's per-key outcomes to the
// semantic four-way result.
func ResolveLocation(caps Capabilities, agg Aggregate) LocationOutcome {
	if _, ok := agg.PerKey[KeyFineLocation].(Granted); ok {
		return LocationPrecise{}
	}
	if caps.PrecisionChoice {
		if _, ok := agg.PerKey[KeyCoarseLocation].(Granted); ok {
			return LocationApproximate{}
		}
	}
	if agg.AnyPermanentlyDenied() {
		return LocationPermanentlyDenied{}
	}
	return LocationDenied{ShouldShowRationale: agg.anyRationale()}
}

// RequestLocation requests location access, letting the user choose precision
// where the platform supports it.
func (c *Coordinator) RequestLocation(ctx context.Context) (LocationOutcome, error) {
	agg, err := c.RequestMany(ctx, LocationKeys(c.caps))
	if err != nil {
		return nil, err
	}
	return ResolveLocation(c.caps, agg), nil
}
