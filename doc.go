// Package permkit coordinates runtime permission requests on platforms with a
// three-outcome permission model (granted, denied-but-askable, permanently
// denied).
//
// The OS callback for a permission request only reports a boolean per key.
// permkit combines that boolean with two pieces of live OS state (is the
// permission granted, should a rationale be shown) and a small durable request
// history to classify every result into one of three outcomes. The history is
// what disambiguates "never asked" from "don't ask again": the OS reports
// shouldShowRationale=false in both cases.
//
// # Basic Usage
//
// Construct a Coordinator with the platform collaborators and request a
// permission:
//
//	coord, err := permkit.New(permkit.NewConfig().
//	    WithProbe(probe).
//	    WithLauncher(launcher).
//	    WithHistory(store))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcome, err := coord.RequestOne(ctx, permkit.KeyCamera)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	switch o := outcome.(type) {
//	case permkit.Granted:
//	    startCamera()
//	case permkit.Denied:
//	    if o.ShouldShowRationale {
//	        explainWhyCameraIsNeeded()
//	    }
//	case permkit.PermanentlyDenied:
//	    pointUserAtSettings()
//	}
//
// # Collaborators
//
// The coordinator never talks to the OS directly. Three seams are injected:
//
//   - Probe: live OS permission state (is-granted, should-show-rationale).
//   - Launcher: shows the OS permission dialog and resolves exactly once with
//     a boolean per key. ResultChannel is an in-process implementation for
//     hosts that receive the OS callback on another goroutine.
//   - HistoryStore: durable "was this key ever requested" flags. MemoryStore
//     and SQLiteStore are provided. Store failures are logged and treated as
//     not-requested; they never produce a false PermanentlyDenied.
//
// # Semantic Groups
//
// Capability-level requests map to concrete permission keys depending on the
// platform generation, described by an injected Capabilities value:
//
//	loc, err := coord.RequestLocation(ctx)
//	if _, ok := loc.(permkit.LocationApproximate); ok {
//	    // fine key denied, coarse key granted
//	}
//
// Media, Bluetooth and camera+storage groups behave the same way, degrading
// to legacy keys (or to a synthetic grant) when the platform predates the
// modern keys.
//
// # Status Checks
//
// CheckStatus, IsGranted and AreAllGranted never show a dialog and never
// mutate history:
//
//	status, err := coord.CheckStatus(permkit.KeyRecordAudio)
//	if status == permkit.StatusPermanentlyDenied {
//	    // only a settings change can recover
//	}
//
// # Concurrency
//
// A coordinator allows at most one in-flight request per key; a second
// request for a key that is already awaiting its dialog fails with
// ErrRequestInFlight. Chains and multi-key requests are strictly sequential
// because OS permission dialogs cannot overlap.
package permkit
