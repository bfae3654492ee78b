package portalclient

import "sync/atomic"

// LoadGuard defines a public type used by portalclient APIs.
//
// LoadGuard serializes overlapping data loads by epoch: each load calls
// [LoadGuard.Begin] for a token and checks [LoadGuard.Current] before
// applying its results, so a newer load silently invalidates every older
// in-flight one. The zero value is ready to use, and all methods are safe
// for concurrent use.
type LoadGuard struct {
	epoch atomic.Uint64
}

// Begin describes the begin operation and its observable behavior.
//
// Begin opens a new load epoch and returns its token, invalidating all
// earlier epochs.
func (g *LoadGuard) Begin() uint64 {
	return g.epoch.Add(1)
}

// Current describes the current operation and its observable behavior.
//
// Current reports whether epoch is still the newest one. A stale epoch means
// the caller must discard its results without applying them.
func (g *LoadGuard) Current(epoch uint64) bool {
	return g.epoch.Load() == epoch
}
