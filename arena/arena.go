// Package arena provides a fixed-capacity, append-only pool of values.
//
// Slots are handed out by increasing index and never released one at a
// time. The backing slice is allocated once with its full capacity, so a
// pointer returned by Alloc stays valid until the arena itself is dropped
// or Reset.
package arena

import "github.com/pontaoski/lazyc/errors"

type Arena[T any] struct {
	name  string
	items []T
}

// New creates an arena that holds at most capacity values. The name shows up
// in the CapacityExceeded error raised when it runs out.
func New[T any](name string, capacity int) *Arena[T] {
	return &Arena[T]{
		name:  name,
		items: make([]T, 0, capacity),
	}
}

// Alloc returns a pointer to a fresh zero-valued slot. It panics with
// errors.CapacityExceeded when every slot is taken.
func (a *Arena[T]) Alloc() *T {
	var zero T
	return a.AllocValue(zero)
}

// AllocValue is Alloc with the slot filled with v.
func (a *Arena[T]) AllocValue(v T) *T {
	if len(a.items) == cap(a.items) {
		panic(errors.CapacityExceeded{What: a.name, Capacity: cap(a.items)})
	}
	a.items = append(a.items, v)
	return &a.items[len(a.items)-1]
}

// Reset drops every value at once. Pointers from earlier Alloc calls must not
// be used afterwards.
func (a *Arena[T]) Reset() {
	clear(a.items)
	a.items = a.items[:0]
}

func (a *Arena[T]) Name() string { return a.name }

func (a *Arena[T]) Len() int { return len(a.items) }

func (a *Arena[T]) Cap() int { return cap(a.items) }

// Items exposes the allocated slots in allocation order.
func (a *Arena[T]) Items() []T { return a.items }
