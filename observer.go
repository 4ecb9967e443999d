package permkit

import (
	"time"

	"go.uber.org/zap"
)

// Event describes one classified permission outcome. Events for a multi-key
// request share a RequestID.
type Event struct {
	// RequestID correlates the events of one coordinator request.
	RequestID string

	// Key is the permission the outcome applies to.
	Key Key

	// Outcome is the classified result.
	Outcome Outcome

	// ShortCircuit is true when the outcome was decided from known state
	// without showing an OS dialog.
	ShortCircuit bool

	// Time is when the outcome was classified.
	Time time.Time
}

// Observer receives every classified outcome. Observers are called
// synchronously, in registration order, after classification and before the
// outcome is returned to the caller; they must not block.
type Observer func(Event)

// LogObserver returns an Observer that logs each outcome.
func LogObserver(log *zap.Logger) Observer {
	return func(ev Event) {
		log.Info("permission outcome",
			zap.String("request_id", ev.RequestID),
			zap.String("key", string(ev.Key)),
			zap.String("outcome", ev.Outcome.String()),
			zap.Bool("short_circuit", ev.ShortCircuit),
		)
	}
}
