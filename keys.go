package permkit

// Key identifies one OS runtime permission. Keys are opaque to the
// coordinator; they are only ever compared and used as map indices.
type Key string

// Well-known permission keys. Any manifest constant works; these cover the
// keys the semantic groups are built from.
const (
	KeyCamera               Key = "android.permission.CAMERA"
	KeyRecordAudio          Key = "android.permission.RECORD_AUDIO"
	KeyFineLocation         Key = "android.permission.ACCESS_FINE_LOCATION"
	KeyCoarseLocation       Key = "android.permission.ACCESS_COARSE_LOCATION"
	KeyReadMediaImages      Key = "android.permission.READ_MEDIA_IMAGES"
	KeyReadMediaVideo       Key = "android.permission.READ_MEDIA_VIDEO"
	KeyReadMediaAudio       Key = "android.permission.READ_MEDIA_AUDIO"
	KeyReadExternalStorage  Key = "android.permission.READ_EXTERNAL_STORAGE"
	KeyWriteExternalStorage Key = "android.permission.WRITE_EXTERNAL_STORAGE"
	KeyBluetoothScan        Key = "android.permission.BLUETOOTH_SCAN"
	KeyBluetoothConnect     Key = "android.permission.BLUETOOTH_CONNECT"
	KeyBluetoothAdvertise   Key = "android.permission.BLUETOOTH_ADVERTISE"
	KeyPostNotifications    Key = "android.permission.POST_NOTIFICATIONS"
	KeyReadContacts         Key = "android.permission.READ_CONTACTS"
)

// Capabilities describes which permission-model generations the running
// platform supports. The coordinator makes no platform queries of its own;
// the host supplies these flags once at construction time.
//
// The zero value describes the oldest supported platform (no precision
// choice, no granular media, no runtime Bluetooth, shared storage).
type Capabilities struct {
	// PrecisionChoice reports whether the user can grant approximate
	// location instead of precise location when both keys are requested
	// together.
	PrecisionChoice bool

	// GranularMedia reports whether per-type media keys (images, video,
	// audio) exist instead of the single legacy storage key.
	GranularMedia bool

	// RuntimeBluetooth reports whether Bluetooth operations are guarded by
	// runtime permissions at all. On older platforms Bluetooth needs no
	// runtime grant.
	RuntimeBluetooth bool

	// ScopedStorage reports whether the platform scopes app storage such
	// that capturing to the app's own media directory needs no storage key.
	ScopedStorage bool
}

// ModernCapabilities returns the capability set of a current-generation
// platform, with every flag enabled.
func ModernCapabilities() Capabilities {
	return Capabilities{
		PrecisionChoice:  true,
		GranularMedia:    true,
		RuntimeBluetooth: true,
		ScopedStorage:    true,
	}
}
