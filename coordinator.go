package permkit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds coordinator construction parameters. Probe and Launcher are
// required; everything else has a usable default.
type Config struct {
	// Probe reads live OS permission state. Required.
	Probe Probe

	// Launcher shows OS permission dialogs. Required.
	Launcher Launcher

	// History records which keys were ever requested. Defaults to an
	// in-memory store; supply a SQLiteStore (or equivalent) so the
	// permanently-denied inference survives restarts.
	History HistoryStore

	// Capabilities describes the platform generation for the semantic group
	// requests. The zero value is the oldest supported platform.
	Capabilities Capabilities

	// Logger receives fail-open storage warnings and lifecycle debug output.
	// Defaults to a no-op logger.
	Logger *zap.Logger

	// Observers are notified of every classified outcome.
	Observers []Observer
}

// NewConfig returns an empty Config for use with the With* builders.
func NewConfig() *Config {
	return &Config{}
}

// WithProbe sets the live OS state probe.
func (c *Config) WithProbe(p Probe) *Config {
	c.Probe = p
	return c
}

// WithLauncher sets the dialog launcher.
func (c *Config) WithLauncher(l Launcher) *Config {
	c.Launcher = l
	return c
}

// WithHistory sets the request history store.
func (c *Config) WithHistory(s HistoryStore) *Config {
	c.History = s
	return c
}

// WithCapabilities sets the platform capability flags.
func (c *Config) WithCapabilities(caps Capabilities) *Config {
	c.Capabilities = caps
	return c
}

// WithLogger sets the logger.
func (c *Config) WithLogger(log *zap.Logger) *Config {
	c.Logger = log
	return c
}

// WithObservers appends outcome observers.
func (c *Config) WithObservers(obs ...Observer) *Config {
	c.Observers = append(c.Observers, obs...)
	return c
}

// Coordinator orchestrates the permission request lifecycle: short-circuit
// checks against known state, the single suspension on the OS dialog, and
// classification of the dialog's result.
type Coordinator struct {
	probe      Probe
	launcher   Launcher
	caps       Capabilities
	log        *zap.Logger
	observers  []Observer
	classifier classifier

	inflight keyGuard
}

// New validates cfg and builds a Coordinator.
func New(cfg *Config) (*Coordinator, error) {
	if cfg == nil || cfg.Probe == nil {
		return nil, &Error{Op: "configure", Err: ErrInvalidConfig, Help: "a Probe is required"}
	}
	if cfg.Launcher == nil {
		return nil, &Error{Op: "configure", Err: ErrInvalidConfig, Help: "a Launcher is required"}
	}

	history := cfg.History
	if history == nil {
		history = NewMemoryStore()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	wrapped := failOpenStore{store: history, log: log}
	return &Coordinator{
		probe:      cfg.Probe,
		launcher:   cfg.Launcher,
		caps:       cfg.Capabilities,
		log:        log,
		observers:  cfg.Observers,
		classifier: classifier{probe: cfg.Probe, history: wrapped},
		inflight:   keyGuard{held: make(map[Key]struct{})},
	}, nil
}

// Capabilities returns the platform capability flags the coordinator was
// built with.
func (c *Coordinator) Capabilities() Capabilities {
	return c.caps
}

// RequestOne requests a single permission and blocks until it can be
// classified. Already-granted and already-permanently-denied keys resolve
// without showing a dialog.
//
// At most one request per key may be in flight; a concurrent second request
// for the same key fails with ErrRequestInFlight.
func (c *Coordinator) RequestOne(ctx context.Context, key Key) (Outcome, error) {
	if key == "" {
		return nil, &Error{Op: "request permission", Err: ErrInvalidKey, Help: "permission key must be non-empty"}
	}
	release, err := c.inflight.acquire(key)
	if err != nil {
		return nil, err
	}
	defer release()

	reqID := uuid.NewString()

	granted, err := c.probe.IsGranted(key)
	if err != nil {
		return nil, &Error{Op: "check permission", Err: err}
	}
	if granted {
		c.classifier.history.clear(key)
		return c.emit(reqID, key, Granted{}, true), nil
	}
	if c.classifier.isPermanentlyDenied(key, false) {
		// The OS would auto-dismiss its dialog here; never show it.
		return c.emit(reqID, key, PermanentlyDenied{}, true), nil
	}

	c.log.Debug("launching permission dialog",
		zap.String("request_id", reqID), zap.String("key", string(key)))
	result, err := c.launcher.LaunchSingle(ctx, key)
	if err != nil {
		return nil, &Error{Op: "launch dialog", Err: err}
	}
	return c.emit(reqID, key, c.classifier.classify(key, result), false), nil
}

// RequestMany requests a set of permissions in one OS call and classifies
// each key independently. If every key is already granted the dialog is
// skipped entirely. Duplicate keys are collapsed, keeping first positions.
func (c *Coordinator) RequestMany(ctx context.Context, keys []Key) (Aggregate, error) {
	keys = dedupeKeys(keys)
	if len(keys) == 0 {
		return Aggregate{}, &Error{Op: "request permissions", Err: ErrNoKeys}
	}
	for _, k := range keys {
		if k == "" {
			return Aggregate{}, &Error{Op: "request permissions", Err: ErrInvalidKey, Help: "permission keys must be non-empty"}
		}
	}
	release, err := c.inflight.acquireAll(keys)
	if err != nil {
		return Aggregate{}, err
	}
	defer release()

	reqID := uuid.NewString()

	allGranted := true
	for _, k := range keys {
		granted, err := c.probe.IsGranted(k)
		if err != nil {
			return Aggregate{}, &Error{Op: "check permission", Err: err}
		}
		if !granted {
			allGranted = false
			break
		}
	}
	if allGranted {
		perKey := make(map[Key]Outcome, len(keys))
		for _, k := range keys {
			c.classifier.history.clear(k)
			perKey[k] = c.emit(reqID, k, Granted{}, true)
		}
		return foldAggregate(keys, perKey), nil
	}

	c.log.Debug("launching permission dialog",
		zap.String("request_id", reqID), zap.Int("keys", len(keys)))
	results, err := c.launcher.LaunchMultiple(ctx, keys)
	if err != nil {
		return Aggregate{}, &Error{Op: "launch dialog", Err: err}
	}

	perKey := make(map[Key]Outcome, len(keys))
	for _, k := range keys {
		perKey[k] = c.emit(reqID, k, c.classifier.classify(k, results[k]), false)
	}
	return foldAggregate(keys, perKey), nil
}

// CheckStatus classifies the currently-known state of a key without showing
// a dialog and without mutating history.
func (c *Coordinator) CheckStatus(key Key) (Status, error) {
	granted, err := c.probe.IsGranted(key)
	if err != nil {
		return StatusNotGranted, &Error{Op: "check permission", Err: err}
	}
	return c.classifier.status(key, granted), nil
}

// IsGranted reports whether the permission is currently held.
func (c *Coordinator) IsGranted(key Key) (bool, error) {
	granted, err := c.probe.IsGranted(key)
	if err != nil {
		return false, &Error{Op: "check permission", Err: err}
	}
	return granted, nil
}

// AreAllGranted reports whether every key in the set is currently held.
func (c *Coordinator) AreAllGranted(keys []Key) (bool, error) {
	for _, k := range keys {
		granted, err := c.IsGranted(k)
		if err != nil {
			return false, err
		}
		if !granted {
			return false, nil
		}
	}
	return true, nil
}

// ClearHistory forgets that a key was ever requested. A storage failure is
// logged, not returned.
func (c *Coordinator) ClearHistory(key Key) {
	c.classifier.history.clear(key)
}

// ClearAllHistory forgets all request history.
func (c *Coordinator) ClearAllHistory() {
	c.classifier.history.clearAll()
}

// WaitGranted polls the probe until the key is granted, the context ends, or
// the key turns out to be invalid. It never shows a dialog; it is meant for
// waiting out an out-of-band settings change.
func (c *Coordinator) WaitGranted(ctx context.Context, key Key, poll time.Duration) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		granted, err := c.IsGranted(key)
		if err != nil {
			return err
		}
		if granted {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// emit notifies observers and returns the outcome unchanged.
func (c *Coordinator) emit(reqID string, key Key, outcome Outcome, shortCircuit bool) Outcome {
	if len(c.observers) > 0 {
		ev := Event{
			RequestID:    reqID,
			Key:          key,
			Outcome:      outcome,
			ShortCircuit: shortCircuit,
			Time:         time.Now(),
		}
		for _, obs := range c.observers {
			obs(ev)
		}
	}
	return outcome
}

func dedupeKeys(keys []Key) []Key {
	seen := make(map[Key]struct{}, len(keys))
	out := keys[:0:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
