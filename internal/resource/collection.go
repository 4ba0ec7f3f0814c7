// Package resource implements the list synchronization pattern shared
// by every collection view: fetch a full snapshot from the API, derive
// a filtered and sorted view, mutate through the API, then re-fetch.
// The in-memory copy is never patched in place; it is reconciled with
// the server only at fetch boundaries.
package resource

import "sync/atomic"

// LoadResult is the outcome of one snapshot fetch, keyed by the
// sequence number issued when the fetch began.
type LoadResult[T any] struct {
	Err   error
	Items []T
	Seq   uint64
}

// collection holds the snapshot state common to all resource modules.
// Snapshots are applied from a single event loop; only sequence
// issuance is safe to call concurrently.
type collection[T any] struct {
	items   []T
	issued  atomic.Uint64
	applied uint64
}

// NextSeq reserves the sequence number for a new load. Issuing a new
// sequence supersedes every load still in flight.
func (c *collection[T]) NextSeq() uint64 {
	return c.issued.Add(1)
}

// Apply installs a load result and reports whether it was accepted.
// A result from a superseded load is discarded. A failed load resets
// the snapshot to empty rather than retaining stale items.
func (c *collection[T]) Apply(res LoadResult[T]) bool {
	if res.Seq != c.issued.Load() || res.Seq <= c.applied {
		return false
	}
	c.applied = res.Seq

	if res.Err != nil || res.Items == nil {
		c.items = []T{}
		return true
	}

	c.items = res.Items
	return true
}

// Items returns the current snapshot.
func (c *collection[T]) Items() []T {
	return c.items
}

// Loaded reports whether at least one load has completed.
func (c *collection[T]) Loaded() bool {
	return c.applied > 0
}
