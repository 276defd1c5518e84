package pq

// invalidIndex is assigned to items which are no longer tracked by a queue.
const invalidIndex = -1

// Item is an opaque handle to a single entry in a 'PriorityQueue'. One is returned by every call to 'Add' and may be
// presented back to the queue to remove that entry before it would naturally surface via 'Poll'.
//
// NOTE: Each insertion allocates a fresh item, two items are never interchangeable even when they wrap equal values;
// this is what allows the queue to detect stale handles for duplicate valued entries.
type Item[T any] struct {
	value T
	index int
}

// Value returns the value this item was created with.
func (i *Item[T]) Value() T {
	return i.value
}

// Index returns the item's current position in the owning queue's backing array, or -1 once the item has been removed.
//
// NOTE: The position is maintained by the queue and changes as other entries are added/removed, it's exposed for
// introspection/debugging and shouldn't be interpreted beyond "is this item still queued".
func (i *Item[T]) Index() int {
	return i.index
}
