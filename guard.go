package permkit

import "sync"

// keyGuard enforces the single-flight dialog contract: the OS launch channel
// resolves once per invocation, so a second request touching a key whose
// dialog is still open would have undefined OS behavior. Rather than
// documenting that as a caller precondition, the guard rejects it.
type keyGuard struct {
	mu   sync.Mutex
	held map[Key]struct{}
}

// acquire reserves one key, returning ErrRequestInFlight if it is already
// reserved. The returned release func must be called when the request ends.
func (g *keyGuard) acquire(key Key) (func(), error) {
	return g.acquireAll([]Key{key})
}

// acquireAll reserves a key set atomically: either every key is reserved or
// none is.
func (g *keyGuard) acquireAll(keys []Key) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, k := range keys {
		if _, ok := g.held[k]; ok {
			return nil, &Error{
				Op:   "request permission",
				Err:  ErrRequestInFlight,
				Help: "wait for the outstanding request for " + string(k) + " to resolve before re-requesting",
			}
		}
	}
	for _, k := range keys {
		g.held[k] = struct{}{}
	}
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		for _, k := range keys {
			delete(g.held, k)
		}
	}, nil
}
