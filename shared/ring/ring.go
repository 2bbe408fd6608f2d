// Package ring provides a fixed capacity circular buffer addressed by
// ever-increasing sequence numbers.
package ring

import "fmt"

// Ring stores one T per sequence slot. The slot for seq is seq & (cap-1), so
// a newer sequence overwrites the one cap steps before it.
type Ring[T any] struct {
	items []T
	mask  int
}

// New allocates a ring. capacity must be a power of two.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic(fmt.Sprintf("ring: capacity %d is not a power of two", capacity))
	}
	return &Ring[T]{
		items: make([]T, capacity),
		mask:  capacity - 1,
	}
}

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Index maps a sequence number to its slot. Negative sequences wrap too.
func (r *Ring[T]) Index(seq int) int {
	return seq & r.mask
}

// At returns a pointer to the slot for seq.
func (r *Ring[T]) At(seq int) *T {
	return &r.items[seq&r.mask]
}

// Get returns a copy of the slot for seq.
func (r *Ring[T]) Get(seq int) T {
	return r.items[seq&r.mask]
}

// Set overwrites the slot for seq.
func (r *Ring[T]) Set(seq int, v T) {
	r.items[seq&r.mask] = v
}

// Reset zeroes every slot.
func (r *Ring[T]) Reset() {
	clear(r.items)
}
