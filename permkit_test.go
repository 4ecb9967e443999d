package permkit

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// stubProbe is a scriptable Probe backed by plain maps.
type stubProbe struct {
	mu        sync.Mutex
	granted   map[Key]bool
	rationale map[Key]bool
	errs      map[Key]error
}

func newStubProbe() *stubProbe {
	return &stubProbe{
		granted:   make(map[Key]bool),
		rationale: make(map[Key]bool),
		errs:      make(map[Key]error),
	}
}

func (p *stubProbe) setGranted(key Key, v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted[key] = v
}

func (p *stubProbe) setRationale(key Key, v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rationale[key] = v
}

func (p *stubProbe) setErr(key Key, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[key] = err
}

func (p *stubProbe) IsGranted(key Key) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.errs[key]; err != nil {
		return false, err
	}
	return p.granted[key], nil
}

func (p *stubProbe) ShouldShowRationale(key Key) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rationale[key]
}

// stubLauncher records launch calls and answers from the configured hooks.
// Without hooks every key resolves to false.
type stubLauncher struct {
	mu          sync.Mutex
	singleCalls []Key
	multiCalls  [][]Key
	onSingle    func(Key) (bool, error)
	onMulti     func([]Key) (map[Key]bool, error)
}

func (l *stubLauncher) LaunchSingle(_ context.Context, key Key) (bool, error) {
	l.mu.Lock()
	l.singleCalls = append(l.singleCalls, key)
	hook := l.onSingle
	l.mu.Unlock()
	if hook != nil {
		return hook(key)
	}
	return false, nil
}

func (l *stubLauncher) LaunchMultiple(_ context.Context, keys []Key) (map[Key]bool, error) {
	l.mu.Lock()
	l.multiCalls = append(l.multiCalls, keys)
	hook := l.onMulti
	l.mu.Unlock()
	if hook != nil {
		return hook(keys)
	}
	results := make(map[Key]bool, len(keys))
	for _, k := range keys {
		results[k] = false
	}
	return results, nil
}

func (l *stubLauncher) launchCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.singleCalls) + len(l.multiCalls)
}

func newTestCoordinator(t *testing.T, probe *stubProbe, launcher Launcher, caps Capabilities) *Coordinator {
	t.Helper()
	coord, err := New(NewConfig().
		WithProbe(probe).
		WithLauncher(launcher).
		WithHistory(NewMemoryStore()).
		WithCapabilities(caps).
		WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return coord
}
