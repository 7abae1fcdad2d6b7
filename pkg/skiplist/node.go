package skiplist

import "sync/atomic"

// link is the content of one forward pointer. A marked link belongs to a node
// that has been removed at that level.
type link[K, T any] struct {
	next   *node[K, T]
	marked bool
}

type node[K, T any] struct {
	key     K
	value   atomic.Pointer[T]
	level   int
	forward []atomic.Pointer[link[K, T]]
	// linked is set once the node is reachable on every level it owns.
	linked atomic.Bool
}

func newNode[K, T any](key K, v T, level int) *node[K, T] {
	n := &node[K, T]{
		key:     key,
		level:   level,
		forward: make([]atomic.Pointer[link[K, T]], level+1),
	}
	n.value.Store(&v)
	return n
}

func newHeader[K, T any](maxLevel int) *node[K, T] {
	h := &node[K, T]{
		level:   maxLevel,
		forward: make([]atomic.Pointer[link[K, T]], maxLevel+1),
	}
	for i := range h.forward {
		h.forward[i].Store(&link[K, T]{})
	}
	h.linked.Store(true)
	return h
}

func (n *node[K, T]) load() T {
	return *n.value.Load()
}

func (n *node[K, T]) removed() bool {
	return n.forward[0].Load().marked
}

// nextLive returns the first unmarked successor of n on level 0.
func (n *node[K, T]) nextLive() *node[K, T] {
	next := n.forward[0].Load().next
	for next != nil {
		l := next.forward[0].Load()
		if !l.marked {
			return next
		}
		next = l.next
	}
	return nil
}

// mark flags n as removed on level l. It reports false when n was already
// marked there.
func (n *node[K, T]) mark(l int) bool {
	for {
		cur := n.forward[l].Load()
		if cur.marked {
			return false
		}
		if n.forward[l].CompareAndSwap(cur, &link[K, T]{next: cur.next, marked: true}) {
			return true
		}
	}
}
