package skiplist

import "iter"

// Iterator is a forward cursor over level 0. The zero Iterator is the end
// position. Iteration does not see a snapshot; elements inserted or removed
// concurrently may or may not be observed.
type Iterator[K, T any] struct {
	n *node[K, T]
}

// Valid reports whether the iterator points at an element.
func (it Iterator[K, T]) Valid() bool {
	return it.n != nil
}

// Key returns the current key. It panics on an invalid iterator.
func (it Iterator[K, T]) Key() K {
	return it.n.key
}

// Value returns the current element. It panics on an invalid iterator.
func (it Iterator[K, T]) Value() T {
	return it.n.load()
}

// Next moves to the following live element.
func (it *Iterator[K, T]) Next() {
	if it.n != nil {
		it.n = it.n.nextLive()
	}
}

// Begin returns an iterator at the smallest element.
func (s *SkipList[K, T]) Begin() Iterator[K, T] {
	return Iterator[K, T]{n: s.header.nextLive()}
}

// All yields every element in key order.
func (s *SkipList[K, T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := s.Begin(); it.Valid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Keys yields every key in order.
func (s *SkipList[K, T]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := s.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}
