// Package hir is the lowered, arena-backed intermediate representation
// that statics and dynamics operate over (spec.md §3). Unlike the parser's
// ast package, hir nodes are reached by stable integer Idx values into one
// of eight parallel arenas rather than by pointer, so statics can store
// Idx-keyed side tables (substitutions, error locations) cheaply.
package hir

import (
	"fmt"

	"fortio.org/safecast"
)

// Idx is a 1-based index into an Arena[T]. The zero value means "absent"
// (an Option<Idx<T>> in spec.md's terms), matching the parser's use of nil
// pointers for missing subtrees from error recovery.
type Idx[T any] uint32

// IsValid reports whether i refers to an actual arena entry.
func (i Idx[T]) IsValid() bool { return i != 0 }

// Arena is a generic, append-only typed arena. Entries are never mutated
// or removed once inserted; indices are stable for the arena's lifetime.
type Arena[T any] struct {
	data []T
}

// NewArena returns an empty *Arena[T] with capHint pre-reserved.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Alloc appends value and returns its new Idx.
func (a *Arena[T]) Alloc(value T) Idx[T] {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("hir: arena length overflow: %w", err))
	}
	return Idx[T](n)
}

// Get returns a pointer to the entry at idx, or nil for the zero Idx.
func (a *Arena[T]) Get(idx Idx[T]) *T {
	if idx == 0 {
		return nil
	}
	return &a.data[idx-1]
}

// Len returns the number of entries currently in the arena.
func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("hir: arena length overflow: %w", err))
	}
	return n
}

// All iterates every (Idx, *T) pair in insertion order.
func (a *Arena[T]) All(yield func(Idx[T], *T) bool) {
	for i := range a.data {
		idx, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("hir: arena index overflow: %w", err))
		}
		if !yield(Idx[T](idx), &a.data[i]) {
			return
		}
	}
}
