package permkit

import "context"

// BluetoothModes selects which Bluetooth operations a request covers. The
// zero value means the common scan+connect pair.
type BluetoothModes struct {
	Scan      bool
	Connect   bool
	Advertise bool
}

func (m BluetoothModes) none() bool { return !m.Scan && !m.Connect && !m.Advertise }

// BluetoothOutcome is the semantic result of a Bluetooth request. The variant
// set is closed: BluetoothAllGranted, BluetoothPartiallyDenied,
// BluetoothDenied and BluetoothPermanentlyDenied.
type BluetoothOutcome interface {
	isBluetoothOutcome()
}

// BluetoothAllGranted means every requested key was granted, or the platform
// predates runtime Bluetooth permissions and nothing needed to be asked.
type BluetoothAllGranted struct{}

// BluetoothPartiallyDenied means some requested keys were granted and others
// were not.
type BluetoothPartiallyDenied struct {
	Granted []Key
	Denied  []Key
}

// BluetoothDenied means no requested key was granted but all remain askable.
type BluetoothDenied struct {
	ShouldShowRationale bool
}

// BluetoothPermanentlyDenied means at least one requested key is permanently
// denied.
type BluetoothPermanentlyDenied struct{}

func (BluetoothAllGranted) isBluetoothOutcome()        {}
func (BluetoothPartiallyDenied) isBluetoothOutcome()   {}
func (BluetoothDenied) isBluetoothOutcome()            {}
func (BluetoothPermanentlyDenied) isBluetoothOutcome() {}

// BluetoothKeys returns the concrete keys a Bluetooth request maps to. On
// platforms without runtime Bluetooth permissions the set is empty: nothing
// needs requesting.
func BluetoothKeys(caps Capabilities, modes BluetoothModes) []Key {
	if !caps.RuntimeBluetooth {
		return nil
	}
	if modes.none() {
		modes = BluetoothModes{Scan: true, Connect: true}
	}
	var keys []Key
	if modes.Scan {
		keys = append(keys, KeyBluetoothScan)
	}
	if modes.Connect {
		keys = append(keys, KeyBluetoothConnect)
	}
	if modes.Advertise {
		keys = append(keys, KeyBluetoothAdvertise)
	}
	return keys
}

// ResolveBluetooth reduces a Bluetooth request's per-key outcomes to the
// semantic result. Precedence: all granted, then any permanent denial, then
// a partial grant, then a plain denial.
func ResolveBluetooth(agg Aggregate) BluetoothOutcome {
	if agg.AllGranted() {
		return BluetoothAllGranted{}
	}
	if agg.AnyPermanentlyDenied() {
		return BluetoothPermanentlyDenied{}
	}
	if len(agg.Granted) > 0 {
		denied := append(append([]Key{}, agg.Denied...), agg.PermanentlyDenied...)
		return BluetoothPartiallyDenied{Granted: agg.Granted, Denied: denied}
	}
	return BluetoothDenied{ShouldShowRationale: agg.anyRationale()}
}

// RequestBluetooth requests the selected Bluetooth permissions. On platforms
// that predate runtime Bluetooth permissions it short-circuits to
// BluetoothAllGranted without any OS call.
func (c *Coordinator) RequestBluetooth(ctx context.Context, modes BluetoothModes) (BluetoothOutcome, error) {
	keys := BluetoothKeys(c.caps, modes)
	if len(keys) == 0 {
		return BluetoothAllGranted{}, nil
	}
	agg, err := c.RequestMany(ctx, keys)
	if err != nil {
		return nil, err
	}
	return ResolveBluetooth(agg), nil
}
