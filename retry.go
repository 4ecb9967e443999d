package permkit

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// errDeniedRetryable drives the backoff loop; it never escapes this file.
var errDeniedRetryable = errors.New("permission denied, retrying")

// RequestWithRetry re-runs RequestOne for up to maxRetries additional
// attempts while the outcome is Denied, sleeping delay between attempts.
// Granted stops immediately. PermanentlyDenied also stops immediately:
// the OS would not show another dialog and re-asking could only confuse the
// user. The last observed outcome is returned when retries run out.
func (c *Coordinator) RequestWithRetry(ctx context.Context, key Key, maxRetries int, delay time.Duration) (Outcome, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var last Outcome
	outcome, err := backoff.Retry(ctx, func() (Outcome, error) {
		o, err := c.RequestOne(ctx, key)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		last = o
		if _, denied := o.(Denied); denied {
			return nil, errDeniedRetryable
		}
		return o, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(delay)),
		backoff.WithMaxTries(uint(maxRetries)+1),
	)
	if err != nil {
		if errors.Is(err, errDeniedRetryable) && last != nil {
			return last, nil
		}
		return nil, err
	}
	return outcome, nil
}
