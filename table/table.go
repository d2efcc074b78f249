// Package table is a fixed-capacity open-addressing hash table keyed by text.
//
// Collisions are resolved by linear probing. There are no tombstones: Remove
// shifts later entries of a probe run back into the vacated slot, so every
// live key stays reachable by probing forward from its home slot.
package table

import (
	"fmt"
	"hash/fnv"
	"iter"

	"github.com/pontaoski/lazyc/errors"
)

type Item[V any] struct {
	Key   string
	Value V
	Alive bool
}

type Table[V any] struct {
	items []Item[V]
	len   int
}

func New[V any](capacity int) *Table[V] {
	if capacity < 1 {
		panic(fmt.Sprintf("table: capacity %d", capacity))
	}
	return &Table[V]{items: make([]Item[V], capacity)}
}

// Hash is 32-bit FNV-1a over the bytes of key.
func Hash(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

func (t *Table[V]) home(key string) int {
	return int(Hash(key) % uint32(len(t.items)))
}

// findSlot returns the first slot from key's home that is dead or holds key.
func (t *Table[V]) findSlot(key string) int {
	n := len(t.items)
	h := t.home(key)
	for i := 0; i < n; i++ {
		j := (h + i) % n
		if !t.items[j].Alive || t.items[j].Key == key {
			return j
		}
	}
	panic(errors.TableFull{Capacity: n})
}

func (t *Table[V]) Lookup(key string) (V, bool) {
	item := &t.items[t.findSlot(key)]
	if item.Alive {
		return item.Value, true
	}
	var zero V
	return zero, false
}

// Insert stores value under key, replacing any previous value. Adding a new
// key that would take the last free slot panics with errors.TableFull.
func (t *Table[V]) Insert(key string, value V) {
	i := t.findSlot(key)
	if !t.items[i].Alive {
		if t.len+1 >= len(t.items) {
			panic(errors.TableFull{Capacity: len(t.items)})
		}
		t.len++
	}
	t.items[i] = Item[V]{Key: key, Value: value, Alive: true}
}

// Remove deletes key if present.
func (t *Table[V]) Remove(key string) {
	n := len(t.items)
	i := t.findSlot(key)
	if !t.items[i].Alive {
		return
	}
	t.len--
	j := i
	for {
		t.items[i] = Item[V]{}
		for {
			j = (j + 1) % n
			if !t.items[j].Alive {
				return
			}
			// The entry at j may stay where it is only if its home lies in
			// the cyclic interval (i, j].
			h := t.home(t.items[j].Key)
			if !between(i, h, j) {
				break
			}
		}
		t.items[i] = t.items[j]
		i = j
	}
}

// between reports whether h lies in the cyclic interval (i, j].
func between(i, h, j int) bool {
	if i <= j {
		return i < h && h <= j
	}
	return i < h || h <= j
}

func (t *Table[V]) Len() int { return t.len }

func (t *Table[V]) Cap() int { return len(t.items) }

// All yields the live entries in slot order.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, item := range t.items {
			if item.Alive && !yield(item.Key, item.Value) {
				return
			}
		}
	}
}
