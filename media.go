package permkit

import "context"

// MediaTypes selects which media categories a media request covers. The zero
// value means all three.
type MediaTypes struct {
	Images bool
	Video  bool
	Audio  bool
}

func (m MediaTypes) none() bool { return !m.Images && !m.Video && !m.Audio }

// MediaOutcome carries one Outcome per media category. Categories the caller
// did not ask for are reported as Granted, so AllGranted reflects only what
// was actually requested.
type MediaOutcome struct {
	Images Outcome
	Video  Outcome
	Audio  Outcome
}

// AllGranted reports whether every requested category was granted.
func (m MediaOutcome) AllGranted() bool {
	for _, o := range []Outcome{m.Images, m.Video, m.Audio} {
		if _, ok := o.(Granted); !ok {
			return false
		}
	}
	return true
}

// AnyPermanentlyDenied reports whether any category is permanently denied.
func (m MediaOutcome) AnyPermanentlyDenied() bool {
	for _, o := range []Outcome{m.Images, m.Video, m.Audio} {
		if _, ok := o.(PermanentlyDenied); ok {
			return true
		}
	}
	return false
}

// MediaKeys returns the concrete keys a media request maps to: the wanted
// per-type keys on platforms with granular media, the single legacy storage
// key otherwise.
func MediaKeys(caps Capabilities, want MediaTypes) []Key {
	if want.none() {
		want = MediaTypes{Images: true, Video: true, Audio: true}
	}
	if !caps.GranularMedia {
		return []Key{KeyReadExternalStorage}
	}
	var keys []Key
	if want.Images {
		keys = append(keys, KeyReadMediaImages)
	}
	if want.Video {
		keys = append(keys, KeyReadMediaVideo)
	}
	if want.Audio {
		keys = append(keys, KeyReadMediaAudio)
	}
	return keys
}

// ResolveMedia reduces a media request's per-key outcomes to the three-slot
// semantic result. On granular platforms each unrequested category is a
// synthetic Granted; on legacy platforms the storage key's single outcome is
// replicated into every slot.
func ResolveMedia(caps Capabilities, want MediaTypes, agg Aggregate) MediaOutcome {
	if want.none() {
		want = MediaTypes{Images: true, Video: true, Audio: true}
	}
	if !caps.GranularMedia {
		legacy := agg.PerKey[KeyReadExternalStorage]
		return MediaOutcome{Images: legacy, Video: legacy, Audio: legacy}
	}

	slot := func(wanted bool, key Key) Outcome {
		if !wanted {
			return Granted{}
		}
		return agg.PerKey[key]
	}
	return MediaOutcome{
		Images: slot(want.Images, KeyReadMediaImages),
		Video:  slot(want.Video, KeyReadMediaVideo),
		Audio:  slot(want.Audio, KeyReadMediaAudio),
	}
}

// RequestMedia requests read access to the wanted media categories.
func (c *Coordinator) RequestMedia(ctx context.Context, want MediaTypes) (MediaOutcome, error) {
	agg, err := c.RequestMany(ctx, MediaKeys(c.caps, want))
	if err != nil {
		return MediaOutcome{}, err
	}
	return ResolveMedia(c.caps, want, agg), nil
}
