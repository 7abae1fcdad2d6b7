package skiplist

import "fmt"

// Contains reports whether an element with key is present.
func (s *SkipList[K, T]) Contains(key K) bool {
	n := s.seek(key)
	return n != nil && !s.less(key, n.key)
}

// Search reports whether an element with v's key is present.
func (s *SkipList[K, T]) Search(v T) bool {
	return s.Contains(s.keyOf(v))
}

// Get returns the element stored under key.
func (s *SkipList[K, T]) Get(key K) (T, bool) {
	if it := s.Find(key); it.Valid() {
		return it.Value(), true
	}
	var zero T
	return zero, false
}

// Find returns an iterator positioned at key, or an invalid iterator when the
// key is absent.
func (s *SkipList[K, T]) Find(key K) Iterator[K, T] {
	n := s.seek(key)
	if n == nil || s.less(key, n.key) {
		return Iterator[K, T]{}
	}
	return Iterator[K, T]{n: n}
}

// KthElement returns the element at zero-based position k in key order.
// It walks level 0 and costs O(k).
func (s *SkipList[K, T]) KthElement(k int) (T, error) {
	var zero T
	if k < 0 {
		return zero, fmt.Errorf("%w: negative index %d", ErrInvalidArgument, k)
	}
	i := 0
	for it := s.Begin(); it.Valid(); it.Next() {
		if i == k {
			return it.Value(), nil
		}
		i++
	}
	return zero, fmt.Errorf("%w: index %d with %d elements", ErrOutOfRange, k, i)
}

// RangeQuery returns the elements whose keys lie in [lo, hi], ascending.
func (s *SkipList[K, T]) RangeQuery(lo, hi K) []T {
	if s.less(hi, lo) {
		return nil
	}
	var out []T
	for n := s.seek(lo); n != nil; n = n.nextLive() {
		if s.less(hi, n.key) {
			break
		}
		out = append(out, n.load())
	}
	return out
}

// ToSlice returns every element in key order.
func (s *SkipList[K, T]) ToSlice() []T {
	out := make([]T, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}
