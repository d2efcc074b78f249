// Package list is a singly linked list whose nodes live in an arena.
package list

import (
	"iter"

	"github.com/pontaoski/lazyc/arena"
	"github.com/pontaoski/lazyc/errors"
)

type Node[T any] struct {
	Value T
	Next  *Node[T]
}

// List is a pair of references to the first and last node. The zero value is
// the empty list.
type List[T any] struct {
	First *Node[T]
	Last  *Node[T]
}

// Append allocates a node for value from a and links it as the new tail.
func Append[T any](a *arena.Arena[Node[T]], l *List[T], value T) {
	node := a.AllocValue(Node[T]{Value: value})
	if l.First == nil {
		l.First = node
		l.Last = node
		return
	}
	l.Last.Next = node
	l.Last = node
}

// Concat splices b after the tail of a. The nodes of b now belong to a, and b
// must not be used as a list of its own afterwards. a must not be empty.
func Concat[T any](a, b *List[T]) {
	if a.Last == nil {
		panic(errors.EmptyListConcat{})
	}
	if b.First == nil {
		return
	}
	a.Last.Next = b.First
	a.Last = b.Last
}

func (l List[T]) Empty() bool { return l.First == nil }

// All walks the list from First to the nil terminator.
func (l List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := l.First; node != nil; node = node.Next {
			if !yield(node.Value) {
				return
			}
		}
	}
}

func (l List[T]) Len() int {
	n := 0
	for node := l.First; node != nil; node = node.Next {
		n++
	}
	return n
}

func (l List[T]) Slice() []T {
	var out []T
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}
