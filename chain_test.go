package permkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_AllGranted(t *testing.T) {
	probe := newStubProbe()
	launcher := &stubLauncher{onSingle: func(Key) (bool, error) { return true, nil }}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{})

	var grantedCalls []Key
	steps := []ChainStep{
		{Key: KeyCamera, OnGranted: func(k Key) { grantedCalls = append(grantedCalls, k) }},
		{Key: KeyRecordAudio, OnGranted: func(k Key) { grantedCalls = append(grantedCalls, k) }},
	}

	result, err := coord.Chain(context.Background(), steps)
	require.NoError(t, err)
	assert.Equal(t, ChainAllGranted, result.Kind)
	assert.Equal(t, -1, result.StepIndex)
	assert.Equal(t, []Key{KeyCamera, KeyRecordAudio}, result.Granted)
	assert.Equal(t, []Key{KeyCamera, KeyRecordAudio}, grantedCalls)
}

func TestChain_StopsAtPermanentDenial(t *testing.T) {
	// First step grants; second step is already marked requested and comes
	// back without rationale, so it classifies permanent; the third step
	// must never be requested.
	probe := newStubProbe()
	store := NewMemoryStore()
	require.NoError(t, store.MarkRequested(KeyRecordAudio))
	launcher := &stubLauncher{onSingle: func(key Key) (bool, error) {
		return key == KeyCamera, nil
	}}
	coord, err := New(NewConfig().WithProbe(probe).WithLauncher(launcher).WithHistory(store))
	require.NoError(t, err)

	var stoppedAt Key
	steps := Steps(KeyCamera, KeyRecordAudio, KeyFineLocation)
	steps[1].OnStopped = func(k Key, _ Outcome) { stoppedAt = k }

	result, err := coord.Chain(context.Background(), steps)
	require.NoError(t, err)
	assert.Equal(t, ChainStoppedPermanentlyDenied, result.Kind)
	assert.Equal(t, KeyRecordAudio, result.StoppedAt)
	assert.Equal(t, 1, result.StepIndex)
	assert.Equal(t, []Key{KeyCamera}, result.Granted)
	assert.Equal(t, PermanentlyDenied{}, result.Outcome)
	assert.Equal(t, KeyRecordAudio, stoppedAt)

	assert.Equal(t, []Key{KeyCamera}, launcher.singleCalls,
		"the step after the stop must never reach the launcher")
}

func TestChain_StopsAtDenied(t *testing.T) {
	probe := newStubProbe()
	probe.setRationale(KeyRecordAudio, true)
	launcher := &stubLauncher{onSingle: func(key Key) (bool, error) {
		return key == KeyCamera, nil
	}}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{})

	result, err := coord.Chain(context.Background(), Steps(KeyCamera, KeyRecordAudio, KeyFineLocation))
	require.NoError(t, err)
	assert.Equal(t, ChainStoppedDenied, result.Kind)
	assert.Equal(t, KeyRecordAudio, result.StoppedAt)
	assert.Equal(t, 1, result.StepIndex)
	assert.Equal(t, Denied{ShouldShowRationale: true}, result.Outcome)
	assert.Equal(t, []Key{KeyCamera}, result.Granted)
}

func TestChain_EmptyChainIsAllGranted(t *testing.T) {
	coord := newTestCoordinator(t, newStubProbe(), &stubLauncher{}, Capabilities{})

	result, err := coord.Chain(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, ChainAllGranted, result.Kind)
	assert.Empty(t, result.Granted)
}

func TestChain_PropagatesErrors(t *testing.T) {
	probe := newStubProbe()
	probe.setErr(KeyCamera, ErrInvalidKey)
	coord := newTestCoordinator(t, probe, &stubLauncher{}, Capabilities{})

	_, err := coord.Chain(context.Background(), Steps(KeyCamera))
	assert.ErrorIs(t, err, ErrInvalidKey)
}
