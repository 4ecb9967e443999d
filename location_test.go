package permkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationKeys(t *testing.T) {
	assert.Equal(t, []Key{KeyFineLocation, KeyCoarseLocation},
		LocationKeys(Capabilities{PrecisionChoice: true}),
		"with a precision choice both keys go in one call so the OS offers the approximate option")
	assert.Equal(t, []Key{KeyFineLocation}, LocationKeys(Capabilities{}))
}

func TestRequestLocation_CoarseOnlyGrantIsApproximate(t *testing.T) {
	probe := newStubProbe()
	launcher := &stubLauncher{onMulti: func(keys []Key) (map[Key]bool, error) {
		return map[Key]bool{KeyFineLocation: false, KeyCoarseLocation: true}, nil
	}}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{PrecisionChoice: true})

	outcome, err := coord.RequestLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LocationApproximate{}, outcome)
}

func TestRequestLocation_FineGrantIsPrecise(t *testing.T) {
	probe := newStubProbe()
	launcher := &stubLauncher{onMulti: func(keys []Key) (map[Key]bool, error) {
		return map[Key]bool{KeyFineLocation: true, KeyCoarseLocation: true}, nil
	}}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{PrecisionChoice: true})

	outcome, err := coord.RequestLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LocationPrecise{}, outcome)
}

func TestRequestLocation_AnyPermanentDenialWins(t *testing.T) {
	probe := newStubProbe()
	store := NewMemoryStore()
	require.NoError(t, store.MarkRequested(KeyFineLocation))
	require.NoError(t, store.MarkRequested(KeyCoarseLocation))
	launcher := &stubLauncher{} // dialog resolves all-false
	coord, err := New(NewConfig().
		WithProbe(probe).
		WithLauncher(launcher).
		WithHistory(store).
		WithCapabilities(Capabilities{PrecisionChoice: true}))
	require.NoError(t, err)

	outcome, err := coord.RequestLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LocationPermanentlyDenied{}, outcome)
}

func TestRequestLocation_DeniedCarriesRationale(t *testing.T) {
	probe := newStubProbe()
	probe.setRationale(KeyCoarseLocation, true)
	launcher := &stubLauncher{}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{PrecisionChoice: true})

	outcome, err := coord.RequestLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LocationDenied{ShouldShowRationale: true}, outcome)
}

func TestRequestLocation_LegacyPlatformMapsFineKeyDirectly(t *testing.T) {
	probe := newStubProbe()
	launcher := &stubLauncher{onMulti: func(keys []Key) (map[Key]bool, error) {
		return map[Key]bool{KeyFineLocation: true}, nil
	}}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{})

	outcome, err := coord.RequestLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LocationPrecise{}, outcome)
	require.Len(t, launcher.multiCalls, 1)
	assert.Equal(t, []Key{KeyFineLocation}, launcher.multiCalls[0])
}
