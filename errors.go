package permkit

import (
	"errors"
	"fmt"
)

// Error represents a permkit error with additional context and actionable
// guidance.
type Error struct {
	Op   string // Operation that failed (e.g., "launch dialog", "check permission")
	Err  error  // Underlying error
	Help string // Actionable guidance for the caller
}

func (e *Error) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("permkit: %s: %v\n  hint: %s", e.Op, e.Err, e.Help)
	}
	return fmt.Sprintf("permkit: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel errors, matched with errors.Is. Each one is a caller-misuse
// condition; permission denials are never errors, they are Outcome values.
var (
	// ErrInvalidConfig means a Coordinator was constructed without a
	// required collaborator.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidKey means a permission key was empty or rejected by the OS.
	ErrInvalidKey = errors.New("invalid permission key")

	// ErrNoKeys means a multi-key operation received an empty key set.
	ErrNoKeys = errors.New("no permission keys provided")

	// ErrRequestInFlight means a request for a key was issued while an
	// earlier request for the same key was still awaiting its dialog.
	ErrRequestInFlight = errors.New("request already in flight for key")

	// ErrLauncherNotArmed means a launch was attempted before the launch
	// channel was (re-)registered.
	ErrLauncherNotArmed = errors.New("launcher not armed")

	// ErrNoLaunchPending means a launch result arrived with no launch
	// waiting for it.
	ErrNoLaunchPending = errors.New("no launch pending")
)
