package permkit

import "context"

// CameraStorageKeys returns the concrete keys a capture-to-storage request
// maps to. With scoped storage the app writes to its own media directory and
// only the camera key is needed; legacy platforms also need the shared
// storage key.
func CameraStorageKeys(caps Capabilities) []Key {
	if caps.ScopedStorage {
		return []Key{KeyCamera}
	}
	return []Key{KeyCamera, KeyWriteExternalStorage}
}

// RequestCameraAndStorage requests whatever a capture-to-storage flow needs
// on this platform generation.
func (c *Coordinator) RequestCameraAndStorage(ctx context.Context) (Aggregate, error) {
	return c.RequestMany(ctx, CameraStorageKeys(c.caps))
}
