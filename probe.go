package permkit

// Probe reads live OS permission state. Implementations are pure reads: no
// side effects, no caching, every call reflects the OS at call time.
//
// A typical implementation delegates to the host platform's checkSelfPermission
// and shouldShowRequestPermissionRationale equivalents.
type Probe interface {
	// IsGranted reports whether the permission is currently held. It returns
	// an error (wrapping ErrInvalidKey) if the OS rejects the key itself;
	// the coordinator propagates that error unchanged.
	IsGranted(key Key) (bool, error)

	// ShouldShowRationale reports the OS hint that an explanatory UI step is
	// advisable before re-asking. Implementations without a UI context
	// handle at call time must return false.
	ShouldShowRationale(key Key) bool
}
