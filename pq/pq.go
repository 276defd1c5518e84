// Package pq exposes a generic priority queue implemented using an array-backed binary min-heap where every entry is
// tracked by an opaque handle, allowing efficient removal of arbitrary entries before they surface.
package pq

import (
	"golang.org/x/exp/constraints"
)

// CompareFunc defines the ordering used by a priority queue; it should return a negative number when 'a' orders before
// 'b', zero when the two are equivalent, and a positive number otherwise. The function must describe a total order.
type CompareFunc[T any] func(a, b T) int

// PriorityQueue implements a binary min-heap priority queue over a caller supplied ordering, the entry which orders
// first is the one returned by 'Peek'/'Poll'.
//
// NOTE: The queue is not safe for concurrent use, callers requiring concurrent access must provide their own external
// synchronization.
type PriorityQueue[T any] struct {
	compare CompareFunc[T]
	items   []*Item[T]
}

// NewPriorityQueue creates a new priority queue using the given ordering, where the underlying capacity is set to the
// given value.
//
// NOTE: The 'PriorityQueue' capacity has the same behavior as a slices capacity meaning it may grow beyond the given
// capacity, the capacity is there for performance optimizations.
func NewPriorityQueue[T any](compare CompareFunc[T], capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{compare: compare, items: make([]*Item[T], 0, capacity)}
}

// NewOrdered creates a new priority queue over an ordered payload type using its natural ordering.
func NewOrdered[T constraints.Ordered](capacity int) *PriorityQueue[T] {
	compare := func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}

		return 0
	}

	return NewPriorityQueue[T](compare, capacity)
}

// Len returns the number of entries in the priority queue.
func (p *PriorityQueue[T]) Len() int {
	return len(p.items)
}

// Add inserts the given value into the queue, returning a handle which may be used to remove the entry before it would
// naturally surface via 'Poll'. Zero/nil values are accepted, the queue places no constraints on its payloads.
func (p *PriorityQueue[T]) Add(value T) *Item[T] {
	item := &Item[T]{value: value, index: len(p.items)}

	p.items = append(p.items, item)
	p.percolateUp(item.index)

	return item
}

// Peek returns the entry which orders first without removing it, and a boolean indicating whether the queue was
// non-empty.
func (p *PriorityQueue[T]) Peek() (*Item[T], bool) {
	if len(p.items) == 0 {
		return nil, false
	}

	return p.items[0], true
}

// Poll removes and returns the entry which orders first, and a boolean indicating whether the queue was non-empty.
// Where multiple entries compare equivalent, they're returned in an arbitrary order.
func (p *PriorityQueue[T]) Poll() (*Item[T], bool) {
	if len(p.items) == 0 {
		return nil, false
	}

	item := p.items[0]
	p.removeAt(0)

	return item, true
}

// Remove removes the entry for the given handle from the queue, the handle must have been returned by a prior call to
// 'Add' on this queue.
//
// The handle is validated before any mutation takes place, so a failed removal leaves the queue untouched; returns
// 'ErrItemRemoved' when the handle's recorded position is out of bounds (e.g. it was already removed) and
// 'ErrItemStale' when the recorded position is held by a different entry.
func (p *PriorityQueue[T]) Remove(item *Item[T]) error {
	if item == nil || item.index < 0 || item.index >= len(p.items) {
		return ErrItemRemoved
	}

	// Validation is by identity, not value equality; this ensures we never remove a different entry which happens to
	// wrap an equal value.
	if p.items[item.index] != item {
		return ErrItemStale
	}

	p.removeAt(item.index)

	return nil
}

// Clear removes all entries from the queue retaining the underlying capacity.
//
// NOTE: Handles issued before clearing are implicitly invalidated and must not be reused.
func (p *PriorityQueue[T]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}

// Each runs the given function for every entry currently in the queue without mutating it. Iteration is in backing
// array order, not priority order; the queue must not be modified for the duration of the call.
func (p *PriorityQueue[T]) Each(fn func(item *Item[T])) {
	for _, item := range p.items {
		fn(item)
	}
}

// Drain removes all entries from the queue in priority order running the given function on each entry. In the event of
// an error, draining stops early, and returns the error.
func (p *PriorityQueue[T]) Drain(fn func(item *Item[T]) error) error {
	for {
		item, ok := p.Poll()
		if !ok {
			return nil
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}
