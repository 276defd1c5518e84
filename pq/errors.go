package pq

import "errors"

var (
	// ErrItemRemoved is returned by 'Remove' when the given item is no longer tracked by the queue, either because it
	// was already removed or because it was never added to this queue.
	ErrItemRemoved = errors.New("item is not in the queue")

	// ErrItemStale is returned by 'Remove' when the given item's recorded position is held by a different entry; this
	// happens when a handle is retained across a 'Clear' and the slot has since been reassigned.
	ErrItemStale = errors.New("item is stale, its position has been reassigned")
)
