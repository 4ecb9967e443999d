package permkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaKeys(t *testing.T) {
	granular := Capabilities{GranularMedia: true}

	assert.Equal(t,
		[]Key{KeyReadMediaImages, KeyReadMediaVideo, KeyReadMediaAudio},
		MediaKeys(granular, MediaTypes{}),
		"zero value means all three categories")
	assert.Equal(t,
		[]Key{KeyReadMediaImages, KeyReadMediaVideo},
		MediaKeys(granular, MediaTypes{Images: true, Video: true}))
	assert.Equal(t,
		[]Key{KeyReadExternalStorage},
		MediaKeys(Capabilities{}, MediaTypes{Images: true}),
		"legacy platforms only have the storage key")
}

func TestRequestMedia_UnrequestedCategoriesSynthesizeGranted(t *testing.T) {
	probe := newStubProbe()
	launcher := &stubLauncher{onMulti: func(keys []Key) (map[Key]bool, error) {
		return map[Key]bool{KeyReadMediaImages: true}, nil
	}}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{GranularMedia: true})

	outcome, err := coord.RequestMedia(context.Background(), MediaTypes{Images: true})
	require.NoError(t, err)
	assert.Equal(t, Granted{}, outcome.Images)
	assert.Equal(t, Granted{}, outcome.Video, "unrequested slot defaults to granted")
	assert.Equal(t, Granted{}, outcome.Audio, "unrequested slot defaults to granted")
	assert.True(t, outcome.AllGranted(), "AllGranted reflects only what was asked for")

	require.Len(t, launcher.multiCalls, 1)
	assert.Equal(t, []Key{KeyReadMediaImages}, launcher.multiCalls[0])
}

func TestRequestMedia_GranularMixedOutcomes(t *testing.T) {
	probe := newStubProbe()
	probe.setRationale(KeyReadMediaAudio, true)
	launcher := &stubLauncher{onMulti: func(keys []Key) (map[Key]bool, error) {
		return map[Key]bool{
			KeyReadMediaImages: true,
			KeyReadMediaVideo:  true,
			KeyReadMediaAudio:  false,
		}, nil
	}}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{GranularMedia: true})

	outcome, err := coord.RequestMedia(context.Background(), MediaTypes{})
	require.NoError(t, err)
	assert.Equal(t, Granted{}, outcome.Images)
	assert.Equal(t, Granted{}, outcome.Video)
	assert.Equal(t, Denied{ShouldShowRationale: true}, outcome.Audio)
	assert.False(t, outcome.AllGranted())
	assert.False(t, outcome.AnyPermanentlyDenied())
}

func TestRequestMedia_LegacyReplicatesStorageOutcome(t *testing.T) {
	probe := newStubProbe()
	probe.setRationale(KeyReadExternalStorage, true)
	launcher := &stubLauncher{}
	coord := newTestCoordinator(t, probe, launcher, Capabilities{})

	outcome, err := coord.RequestMedia(context.Background(), MediaTypes{})
	require.NoError(t, err)

	want := Denied{ShouldShowRationale: true}
	assert.Equal(t, want, outcome.Images)
	assert.Equal(t, want, outcome.Video)
	assert.Equal(t, want, outcome.Audio)
}
