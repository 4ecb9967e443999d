package permkit

import "context"

// ChainStep is one link in a sequential permission chain.
type ChainStep struct {
	// Key is the permission to request at this step.
	Key Key

	// OnGranted, if non-nil, runs after this step's permission is granted
	// and before the next step's dialog.
	OnGranted func(Key)

	// OnStopped, if non-nil, runs when this step ends the chain with a
	// non-grant outcome.
	OnStopped func(Key, Outcome)
}

// Steps builds callback-free chain steps for a key list.
func Steps(keys ...Key) []ChainStep {
	steps := make([]ChainStep, len(keys))
	for i, k := range keys {
		steps[i] = ChainStep{Key: k}
	}
	return steps
}

// ChainResultKind is the terminal state of a chain.
type ChainResultKind int

const (
	// ChainAllGranted means every step's permission was granted.
	ChainAllGranted ChainResultKind = iota

	// ChainStoppedDenied means a step was denied but remains askable.
	ChainStoppedDenied

	// ChainStoppedPermanentlyDenied means a step was permanently denied.
	ChainStoppedPermanentlyDenied
)

func (k ChainResultKind) String() string {
	switch k {
	case ChainStoppedDenied:
		return "stopped at denied"
	case ChainStoppedPermanentlyDenied:
		return "stopped at permanently denied"
	default:
		return "all granted"
	}
}

// ChainResult reports where a chain ended.
type ChainResult struct {
	Kind ChainResultKind

	// StoppedAt is the key of the non-granted step; empty when all granted.
	StoppedAt Key

	// StepIndex is the zero-based index of the stopping step, -1 when all
	// granted.
	StepIndex int

	// Outcome is the stopping step's outcome; nil when all granted.
	Outcome Outcome

	// Granted accumulates the keys granted before the chain stopped.
	Granted []Key
}

// Chain requests each step's permission in order, one dialog at a time, and
// stops at the first non-grant. OS permission dialogs cannot overlap, so the
// sequencing is strictly serial. An empty chain is trivially all-granted.
func (c *Coordinator) Chain(ctx context.Context, steps []ChainStep) (ChainResult, error) {
	result := ChainResult{Kind: ChainAllGranted, StepIndex: -1}

	for i, step := range steps {
		outcome, err := c.RequestOne(ctx, step.Key)
		if err != nil {
			return ChainResult{}, err
		}

		switch outcome.(type) {
		case Granted:
			result.Granted = append(result.Granted, step.Key)
			if step.OnGranted != nil {
				step.OnGranted(step.Key)
			}
		case PermanentlyDenied:
			result.Kind = ChainStoppedPermanentlyDenied
			result.StoppedAt = step.Key
			result.StepIndex = i
			result.Outcome = outcome
			if step.OnStopped != nil {
				step.OnStopped(step.Key, outcome)
			}
			return result, nil
		default:
			result.Kind = ChainStoppedDenied
			result.StoppedAt = step.Key
			result.StepIndex = i
			result.Outcome = outcome
			if step.OnStopped != nil {
				step.OnStopped(step.Key, outcome)
			}
			return result, nil
		}
	}
	return result, nil
}
