package skiplist

import (
	"cmp"
	"errors"
	"math/rand/v2"
	"slices"
	"sync/atomic"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/charmbracelet/log"
)

const (
	// DefaultMaxLevel is the highest level index a node can reach unless
	// overridden with WithMaxLevel.
	DefaultMaxLevel = 16
	maxLevelLimit   = 32
)

var (
	// ErrInvalidArgument is returned for arguments no list could satisfy, such as a negative index.
	ErrInvalidArgument = errors.New("skiplist: invalid argument")
	// ErrOutOfRange is returned when an index is past the last element.
	ErrOutOfRange = errors.New("skiplist: index out of range")
)

// Pair is the element type of a map-mode list. Only Key takes part in ordering.
type Pair[K, V any] struct {
	Key   K
	Value V
}

type options struct {
	maxLevel int
	log      *log.Logger
}

// Option configures a SkipList.
type Option func(*options)

// WithMaxLevel caps the level a node can be promoted to. Values are clamped to [0, 32].
func WithMaxLevel(level int) Option {
	return func(o *options) {
		o.maxLevel = min(max(level, 0), maxLevelLimit)
	}
}

// WithLogger sets the logger used for level and clear diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// SkipList is an ordered collection of T keyed by K. All methods except Clear
// are safe for concurrent use.
type SkipList[K, T any] struct {
	header   *node[K, T]
	maxLevel int
	level    atomic.Int32
	length   atomic.Int64
	finger   atomic.Pointer[node[K, T]]

	keyOf  func(T) K
	less   func(a, b K) bool
	assign func(old, v T) T

	log *log.Logger
}

// New creates an empty list ordering elements by less applied to keyOf.
// Two keys are equal when neither is less than the other.
func New[K, T any](keyOf func(T) K, less func(a, b K) bool, opts ...Option) *SkipList[K, T] {
	o := options{maxLevel: DefaultMaxLevel}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.New("skiplist")
	}
	return &SkipList[K, T]{
		header:   newHeader[K, T](o.maxLevel),
		maxLevel: o.maxLevel,
		keyOf:    keyOf,
		less:     less,
		assign:   func(_, v T) T { return v },
		log:      o.log,
	}
}

// NewSet creates an ordered set of T.
func NewSet[T cmp.Ordered](opts ...Option) *SkipList[T, T] {
	return New(func(v T) T { return v }, cmp.Less[T], opts...)
}

// NewMap creates an ordered map from K to V. InsertOrAssign on an existing key
// replaces only the Value.
func NewMap[K cmp.Ordered, V any](opts ...Option) *SkipList[K, Pair[K, V]] {
	s := New(func(p Pair[K, V]) K { return p.Key }, cmp.Less[K], opts...)
	s.assign = func(old, v Pair[K, V]) Pair[K, V] {
		return Pair[K, V]{Key: old.Key, Value: v.Value}
	}
	return s
}

// Len returns the number of elements. Under concurrent mutation it is a
// snapshot; a removal can be counted before the insert it undoes, so the
// counter is clamped at zero.
func (s *SkipList[K, T]) Len() int {
	return max(int(s.length.Load()), 0)
}

// Empty reports whether the list holds no elements.
func (s *SkipList[K, T]) Empty() bool {
	return s.Len() == 0
}

// Level returns the highest level currently in use.
func (s *SkipList[K, T]) Level() int {
	return int(s.level.Load())
}

// MaxLevel returns the level cap fixed at construction.
func (s *SkipList[K, T]) MaxLevel() int {
	return s.maxLevel
}

func (s *SkipList[K, T]) compare(a, b K) int {
	switch {
	case s.less(a, b):
		return -1
	case s.less(b, a):
		return 1
	}
	return 0
}

func (s *SkipList[K, T]) randomLevel() int {
	level := 0
	for level < s.maxLevel && rand.IntN(2) == 0 {
		level++
	}
	return level
}

func (s *SkipList[K, T]) raiseLevel(level int) {
	for {
		cur := s.level.Load()
		if int(cur) >= level {
			return
		}
		if s.level.CompareAndSwap(cur, int32(level)) {
			s.log.Debugf("Level raised %d -> %d", cur, level)
			return
		}
	}
}

// shrinkLevel lowers the current level while its header slot is empty.
func (s *SkipList[K, T]) shrinkLevel() {
	for {
		cur := s.level.Load()
		if cur == 0 || s.header.forward[cur].Load().next != nil {
			return
		}
		if s.level.CompareAndSwap(cur, cur-1) {
			s.log.Debugf("Level lowered %d -> %d", cur, cur-1)
		}
	}
}

// fingerFor returns the cached finger when a search for key may start there.
func (s *SkipList[K, T]) fingerFor(key K) *node[K, T] {
	f := s.finger.Load()
	if f == nil || !f.linked.Load() || f.removed() || !s.less(f.key, key) {
		return nil
	}
	return f
}

func (s *SkipList[K, T]) setFinger(n *node[K, T]) {
	if n == s.header {
		s.finger.Store(nil)
		return
	}
	s.finger.Store(n)
}

// window holds, per level, the predecessor of a key, the link read from it,
// and the node that link points to.
type window[K, T any] struct {
	preds []*node[K, T]
	links []*link[K, T]
	succs []*node[K, T]
}

func (s *SkipList[K, T]) newWindow() *window[K, T] {
	n := s.maxLevel + 1
	return &window[K, T]{
		preds: make([]*node[K, T], n),
		links: make([]*link[K, T], n),
		succs: make([]*node[K, T], n),
	}
}

// find fills w for levels top..0 and reports whether succs[0] holds key.
// Marked nodes met on the way are unlinked.
func (s *SkipList[K, T]) find(key K, top int, w *window[K, T]) bool {
	f := s.fingerFor(key)
retry:
	for {
		fingerAt := -1
		if f != nil {
			fingerAt = min(top, f.level)
		}

		pred := s.header
		for l := top; l >= 0; l-- {
			if l == fingerAt && (pred == s.header || !s.less(f.key, pred.key)) {
				pred = f
			}
			curLink := pred.forward[l].Load()
			if curLink.marked {
				f = nil
				continue retry
			}
			curr := curLink.next
			for curr != nil {
				succLink := curr.forward[l].Load()
				if succLink.marked {
					snip := &link[K, T]{next: succLink.next}
					if !pred.forward[l].CompareAndSwap(curLink, snip) {
						f = nil
						continue retry
					}
					curLink, curr = snip, succLink.next
					continue
				}
				if !s.less(curr.key, key) {
					break
				}
				pred, curLink, curr = curr, succLink, succLink.next
			}
			w.preds[l], w.links[l], w.succs[l] = pred, curLink, curr
		}

		s.setFinger(w.preds[0])
		c := w.succs[0]
		return c != nil && !s.less(key, c.key)
	}
}

// seek returns the first live node whose key is not less than key. It never
// writes to the list apart from the finger.
func (s *SkipList[K, T]) seek(key K) *node[K, T] {
	f := s.fingerFor(key)
retry:
	for {
		pred := s.header
		start := s.Level()
		if f != nil {
			pred = f
			start = min(start, f.level)
		}

		var curr *node[K, T]
		for l := start; l >= 0; l-- {
			predLink := pred.forward[l].Load()
			if predLink.marked {
				// the finger was removed under us
				f = nil
				continue retry
			}
			curr = predLink.next
			for curr != nil {
				next := curr.forward[l].Load()
				if next.marked {
					curr = next.next
					continue
				}
				if !s.less(curr.key, key) {
					break
				}
				pred, curr = curr, next.next
			}
		}
		s.setFinger(pred)
		return curr
	}
}

// insert links v unless its key is present. It returns the node holding the
// key and whether that node is new.
func (s *SkipList[K, T]) insert(v T) (*node[K, T], bool) {
	key := s.keyOf(v)
	w := s.newWindow()
	topLevel := -1
	for {
		top := max(s.Level(), topLevel)
		if s.find(key, top, w) {
			return w.succs[0], false
		}
		if topLevel < 0 {
			topLevel = s.randomLevel()
			s.raiseLevel(topLevel)
			if topLevel > top {
				continue
			}
		}

		n := newNode(key, v, topLevel)
		for l := 0; l <= topLevel; l++ {
			n.forward[l].Store(&link[K, T]{next: w.succs[l]})
		}
		if !w.preds[0].forward[0].CompareAndSwap(w.links[0], &link[K, T]{next: n}) {
			continue
		}
		s.length.Add(1)
		s.linkUpper(n, w)
		n.linked.Store(true)
		return n, true
	}
}

// linkUpper links n on levels 1..n.level, re-running find whenever a
// predecessor changed under it. It stops early once n is being removed.
func (s *SkipList[K, T]) linkUpper(n *node[K, T], w *window[K, T]) {
	for l := 1; l <= n.level; l++ {
		for {
			cur := n.forward[l].Load()
			if cur.marked {
				return
			}
			succ := w.succs[l]
			if cur.next != succ && !n.forward[l].CompareAndSwap(cur, &link[K, T]{next: succ}) {
				continue
			}
			if w.preds[l].forward[l].CompareAndSwap(w.links[l], &link[K, T]{next: n}) {
				break
			}
			if !s.find(n.key, max(s.Level(), n.level), w) {
				return
			}
		}
	}
}

// Insert adds v and reports true, or reports false and leaves the list
// unchanged when its key is already present.
func (s *SkipList[K, T]) Insert(v T) bool {
	_, inserted := s.insert(v)
	return inserted
}

// InsertOrAssign adds v, or updates the element stored under v's key. In map
// mode only the value half of the pair is replaced. The returned iterator
// points at the element; inserted is false when an existing one was updated.
func (s *SkipList[K, T]) InsertOrAssign(v T) (Iterator[K, T], bool) {
	n, inserted := s.insert(v)
	if !inserted {
		for {
			old := n.value.Load()
			updated := s.assign(*old, v)
			if n.value.CompareAndSwap(old, &updated) {
				break
			}
		}
	}
	return Iterator[K, T]{n: n}, inserted
}

// Remove deletes the element with v's key and reports whether it was present.
func (s *SkipList[K, T]) Remove(v T) bool {
	return s.Delete(s.keyOf(v))
}

// Delete removes the element stored under key and reports whether it was present.
func (s *SkipList[K, T]) Delete(key K) bool {
	w := s.newWindow()
	for {
		top := s.Level()
		if !s.find(key, top, w) {
			return false
		}
		victim := w.succs[0]
		if victim.level > top {
			top = victim.level
			if !s.find(key, top, w) || w.succs[0] != victim {
				continue
			}
		}

		for l := victim.level; l > 0; l-- {
			victim.mark(l)
		}
		if !victim.mark(0) {
			// lost to a concurrent removal
			return false
		}
		s.length.Add(-1)

		// One unlink attempt per level; find snips whatever is left.
		for l := victim.level; l >= 0; l-- {
			if w.succs[l] != victim {
				continue
			}
			next := victim.forward[l].Load().next
			w.preds[l].forward[l].CompareAndSwap(w.links[l], &link[K, T]{next: next})
		}
		s.shrinkLevel()
		return true
	}
}

func (s *SkipList[K, T]) sortedCopy(values []T) []T {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return s.compare(s.keyOf(a), s.keyOf(b))
	})
	return sorted
}

// InsertBulk inserts values in key order. Duplicate keys keep their first
// occurrence. The batch is not atomic.
func (s *SkipList[K, T]) InsertBulk(values []T) {
	for _, v := range s.sortedCopy(values) {
		s.Insert(v)
	}
}

// RemoveBulk removes values in key order and returns how many were present.
func (s *SkipList[K, T]) RemoveBulk(values []T) int {
	removed := 0
	for _, v := range s.sortedCopy(values) {
		if s.Remove(v) {
			removed++
		}
	}
	return removed
}

// Clear drops every element and resets the level to 0.
// It must not run concurrently with other mutations.
func (s *SkipList[K, T]) Clear() {
	for l := range s.header.forward {
		s.header.forward[l].Store(&link[K, T]{})
	}
	n := s.length.Swap(0)
	s.level.Store(0)
	s.finger.Store(nil)
	s.log.Debugf("Cleared %d elements", n)
}
