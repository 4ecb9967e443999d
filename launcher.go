package permkit

import (
	"context"
	"sync"
)

// Launcher shows the OS permission dialog. It is the coordinator's one
// suspension point: each Launch call blocks until the OS resolves the dialog
// with a boolean per key, or until ctx is cancelled.
//
// The OS dialog subsystem is single-flight; a Launcher is never asked to run
// two dialogs at once by the same coordinator.
type Launcher interface {
	// LaunchSingle shows the dialog for one key and resolves with its grant
	// boolean.
	LaunchSingle(ctx context.Context, key Key) (bool, error)

	// LaunchMultiple shows the dialog for a key set in one OS call and
	// resolves with a grant boolean per key.
	LaunchMultiple(ctx context.Context, keys []Key) (map[Key]bool, error)
}

// ResultChannel is a Launcher for hosts that receive the OS permission
// callback on another goroutine. The host arms the channel when it registers
// its OS callback, and calls Resolve from that callback; Launch calls block
// until the matching Resolve.
//
// The underlying OS contract is single-shot: each Arm permits exactly one
// launch, and the channel must be re-armed before reuse. Launching without
// arming fails with ErrLauncherNotArmed; resolving with no launch waiting
// fails with ErrNoLaunchPending. If the launching context is cancelled the
// pending wait is unregistered, so a late Resolve reports
// ErrNoLaunchPending instead of firing into a dead context.
type ResultChannel struct {
	mu      sync.Mutex
	armed   bool
	waiting chan map[Key]bool
}

// NewResultChannel returns an unarmed ResultChannel.
func NewResultChannel() *ResultChannel {
	return &ResultChannel{}
}

// Arm registers the channel for one launch. Arming is idempotent while no
// launch is pending.
func (c *ResultChannel) Arm() {
	c.mu.Lock()
	c.armed = true
	c.mu.Unlock()
}

// Resolve delivers the OS callback result to the pending launch.
func (c *ResultChannel) Resolve(results map[Key]bool) error {
	c.mu.Lock()
	ch := c.waiting
	c.waiting = nil
	c.mu.Unlock()

	if ch == nil {
		return &Error{
			Op:   "resolve launch",
			Err:  ErrNoLaunchPending,
			Help: "Resolve must be called exactly once per launch, after the launch has started",
		}
	}
	ch <- results
	return nil
}

// LaunchSingle implements Launcher.
func (c *ResultChannel) LaunchSingle(ctx context.Context, key Key) (bool, error) {
	results, err := c.LaunchMultiple(ctx, []Key{key})
	if err != nil {
		return false, err
	}
	return results[key], nil
}

// LaunchMultiple implements Launcher.
func (c *ResultChannel) LaunchMultiple(ctx context.Context, keys []Key) (map[Key]bool, error) {
	c.mu.Lock()
	if !c.armed {
		c.mu.Unlock()
		return nil, &Error{
			Op:   "launch dialog",
			Err:  ErrLauncherNotArmed,
			Help: "call Arm after registering the OS callback, and re-arm before every launch",
		}
	}
	ch := make(chan map[Key]bool, 1)
	c.waiting = ch
	c.armed = false
	c.mu.Unlock()

	select {
	case results := <-ch:
		return results, nil
	case <-ctx.Done():
		c.mu.Lock()
		if c.waiting == ch {
			c.waiting = nil
		}
		c.mu.Unlock()
		return nil, ctx.Err()
	}
}
