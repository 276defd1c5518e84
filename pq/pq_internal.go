package pq

// The backing array encodes a standard 0-based binary heap; the parent of slot i is (i-1)/2 and its children are at
// 2i+1 and 2i+2. Every structural mutation goes through 'percolateUp'/'percolateDown', and 'swap' is the single place
// where an item's position is ever rewritten, which keeps each handle's index in lockstep with its true slot.

// less returns whether the entry at index i orders strictly before the entry at index j.
func (p *PriorityQueue[T]) less(i, j int) bool {
	return p.compare(p.items[i].value, p.items[j].value) < 0
}

// swap exchanges the entries at the given indexes, updating both handles to their new positions.
func (p *PriorityQueue[T]) swap(i, j int) {
	p.items[i], p.items[j] = p.items[j], p.items[i]
	p.items[i].index = i
	p.items[j].index = j
}

// percolateUp restores the heap property on the path from the given index to the root after an append.
func (p *PriorityQueue[T]) percolateUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !p.less(i, parent) {
			return
		}

		p.swap(i, parent)

		i = parent
	}
}

// percolateDown sinks the entry at the given index until neither child orders strictly before it, returning the index
// the entry came to rest at. Swapping requires a strict ordering, so equivalent entries are never reordered.
func (p *PriorityQueue[T]) percolateDown(i int) int {
	for {
		left := 2*i + 1
		if left >= len(p.items) {
			return i
		}

		pick := left

		if right := left + 1; right < len(p.items) && p.less(right, left) {
			pick = right
		}

		if !p.less(pick, i) {
			return i
		}

		p.swap(i, pick)

		i = pick
	}
}

// removeAt detaches the entry at the given index by swapping it with the last entry, truncating the backing array and
// re-establishing the heap property from the hole.
func (p *PriorityQueue[T]) removeAt(i int) {
	last := len(p.items) - 1

	p.swap(i, last)

	item := p.items[last]
	p.items[last] = nil // avoid memory leak
	item.index = invalidIndex
	p.items = p.items[:last]

	if i == last {
		return
	}

	// The entry moved into the hole came from the end of the array and may violate the heap property in either
	// direction; sink it first and if it stayed put, float it instead.
	if p.percolateDown(i) == i {
		p.percolateUp(i)
	}
}
