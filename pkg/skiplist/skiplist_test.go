package skiplist

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntSet(opts ...Option) *SkipList[int, int] {
	return NewSet[int](append([]Option{WithLogger(logger.Discard())}, opts...)...)
}

// checkInvariants verifies that every level lists live nodes in strictly
// ascending order and that level 0 agrees with Len. It expects a quiescent list.
func checkInvariants[K, T any](t *testing.T, s *SkipList[K, T]) {
	t.Helper()
	for l := 0; l <= s.maxLevel; l++ {
		var prev *node[K, T]
		count := 0
		for n := s.header.forward[l].Load().next; n != nil; n = n.forward[l].Load().next {
			if n.forward[l].Load().marked {
				continue
			}
			require.GreaterOrEqual(t, n.level, l, "node on a level above its own")
			if prev != nil {
				require.True(t, s.less(prev.key, n.key), "level %d out of order", l)
			}
			prev = n
			count++
		}
		if l == 0 {
			require.Equal(t, s.Len(), count, "live nodes on level 0")
		}
	}
}

func TestInsertSearchRemove(t *testing.T) {
	s := newIntSet()
	assert.True(t, s.Empty())

	for _, v := range []int{3, 6, 7, 9, 12, 19, 17} {
		require.True(t, s.Insert(v), "insert %d", v)
	}
	assert.Equal(t, 7, s.Len())
	assert.False(t, s.Empty())

	for _, v := range []int{3, 6, 7, 9, 12, 19, 17} {
		assert.True(t, s.Search(v), "search %d", v)
	}
	for _, v := range []int{0, 4, 20, -1} {
		assert.False(t, s.Search(v), "search %d", v)
	}

	assert.True(t, s.Remove(3))
	assert.False(t, s.Search(3))
	assert.True(t, s.Remove(19))
	assert.False(t, s.Remove(19), "already removed")
	assert.False(t, s.Remove(100), "never present")
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []int{6, 7, 9, 12, 17}, s.ToSlice())
	checkInvariants(t, s)
}

func TestInsertDuplicateIsNoop(t *testing.T) {
	s := newIntSet()
	require.True(t, s.Insert(5))
	assert.False(t, s.Insert(5))
	assert.Equal(t, 1, s.Len())

	m := NewMap[string, int](WithLogger(logger.Discard()))
	require.True(t, m.Insert(Pair[string, int]{Key: "a", Value: 1}))
	assert.False(t, m.Insert(Pair[string, int]{Key: "a", Value: 2}))
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v.Value, "plain insert never overwrites")
}

func TestStringKeys(t *testing.T) {
	s := NewSet[string](WithLogger(logger.Discard()))
	for _, w := range []string{"pear", "apple", "fig", "banana"} {
		s.Insert(w)
	}
	assert.Equal(t, []string{"apple", "banana", "fig", "pear"}, s.ToSlice())
	assert.True(t, s.Contains("fig"))
	assert.True(t, s.Remove("apple"))
	assert.Equal(t, []string{"banana", "fig", "pear"}, slices.Collect(s.All()))
}

func TestCustomOrdering(t *testing.T) {
	type scored struct {
		word  string
		score int
	}
	// descending score, then ascending word
	s := New(func(v scored) scored { return v }, func(a, b scored) bool {
		if a.score != b.score {
			return a.score > b.score
		}
		return a.word < b.word
	}, WithLogger(logger.Discard()))

	s.Insert(scored{"b", 1})
	s.Insert(scored{"a", 5})
	s.Insert(scored{"c", 5})
	s.Insert(scored{"d", 3})
	require.False(t, s.Insert(scored{"a", 5}))

	var words []string
	for v := range s.All() {
		words = append(words, v.word)
	}
	assert.Equal(t, []string{"a", "c", "d", "b"}, words)
}

func TestKthElement(t *testing.T) {
	s := newIntSet()
	values := []int{25, 3, 19, 6, 12, 7, 26, 9, 21, 17}
	for _, v := range values {
		s.Insert(v)
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	for k, want := range sorted {
		got, err := s.KthElement(k)
		require.NoError(t, err)
		assert.Equal(t, want, got, "k=%d", k)
	}

	_, err := s.KthElement(len(values))
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.KthElement(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = newIntSet().KthElement(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRangeQuery(t *testing.T) {
	s := newIntSet()
	for _, v := range []int{3, 6, 7, 9, 12, 17, 19, 21, 25, 26} {
		s.Insert(v)
	}

	testCases := []struct {
		name     string
		lo, hi   int
		expected []int
	}{
		{"middle", 10, 20, []int{12, 17, 19}},
		{"inclusive bounds", 12, 19, []int{12, 17, 19}},
		{"single", 7, 7, []int{7}},
		{"all", 0, 100, []int{3, 6, 7, 9, 12, 17, 19, 21, 25, 26}},
		{"below", -10, 2, nil},
		{"above", 27, 40, nil},
		{"gap", 13, 16, nil},
		{"inverted", 20, 10, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.RangeQuery(tc.lo, tc.hi)
			if tc.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestIterators(t *testing.T) {
	s := newIntSet()
	assert.False(t, s.Begin().Valid())

	s.InsertBulk([]int{30, 10, 20})

	var got []int
	for it := s.Begin(); it.Valid(); it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int{10, 20, 30}, got)
	assert.Equal(t, []int{10, 20, 30}, slices.Collect(s.Keys()))

	it := s.Find(20)
	require.True(t, it.Valid())
	assert.Equal(t, 20, it.Key())
	it.Next()
	require.True(t, it.Valid())
	assert.Equal(t, 30, it.Value())
	it.Next()
	assert.False(t, it.Valid())
	it.Next()
	assert.False(t, it.Valid(), "end stays end")

	assert.False(t, s.Find(15).Valid())
	assert.False(t, s.Find(99).Valid())
}

func TestIteratorSkipsRemoved(t *testing.T) {
	s := newIntSet()
	s.InsertBulk([]int{1, 2, 3, 4})
	it := s.Find(2)
	require.True(t, s.Remove(3))
	it.Next()
	require.True(t, it.Valid())
	assert.Equal(t, 4, it.Value())
}

func TestBulkOperations(t *testing.T) {
	s := newIntSet()
	s.InsertBulk([]int{5, 1, 4, 1, 3, 5, 2})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.ToSlice())

	individual := newIntSet()
	for _, v := range []int{2, 5, 3, 1, 4} {
		individual.Insert(v)
	}
	assert.Equal(t, individual.ToSlice(), s.ToSlice())

	removed := s.RemoveBulk([]int{4, 2, 2, 9})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int{1, 3, 5}, s.ToSlice())
	checkInvariants(t, s)

	s.InsertBulk(nil)
	assert.Zero(t, s.RemoveBulk(nil))
	assert.Equal(t, 3, s.Len())
}

func TestMapMode(t *testing.T) {
	m := NewMap[string, int](WithLogger(logger.Discard()))

	it, inserted := m.InsertOrAssign(Pair[string, int]{Key: "apple", Value: 1})
	require.True(t, inserted)
	assert.Equal(t, "apple", it.Key())

	it, inserted = m.InsertOrAssign(Pair[string, int]{Key: "apple", Value: 7})
	require.False(t, inserted)
	assert.Equal(t, 7, it.Value().Value)
	assert.Equal(t, 1, m.Len())

	m.InsertOrAssign(Pair[string, int]{Key: "cherry", Value: 3})
	m.InsertOrAssign(Pair[string, int]{Key: "banana", Value: 2})

	found := m.Find("banana")
	require.True(t, found.Valid())
	assert.Equal(t, 2, found.Value().Value)

	assert.Equal(t, []Pair[string, int]{
		{Key: "apple", Value: 7},
		{Key: "banana", Value: 2},
		{Key: "cherry", Value: 3},
	}, m.ToSlice())

	assert.True(t, m.Delete("banana"))
	assert.True(t, m.Remove(Pair[string, int]{Key: "cherry"}), "only the key matters")
	_, ok := m.Get("cherry")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestClear(t *testing.T) {
	s := newIntSet()
	s.InsertBulk([]int{1, 2, 3, 4, 5, 6, 7, 8})
	s.Clear()
	assert.True(t, s.Empty())
	assert.Zero(t, s.Level())
	assert.Empty(t, s.ToSlice())
	assert.False(t, s.Search(3))

	require.True(t, s.Insert(3))
	assert.Equal(t, []int{3}, s.ToSlice())
	checkInvariants(t, s)
}

func TestMaxLevel(t *testing.T) {
	assert.Equal(t, DefaultMaxLevel, newIntSet().MaxLevel())
	assert.Equal(t, 0, newIntSet(WithMaxLevel(-3)).MaxLevel())
	assert.Equal(t, maxLevelLimit, newIntSet(WithMaxLevel(1000)).MaxLevel())

	flat := newIntSet(WithMaxLevel(0))
	for i := range 100 {
		flat.Insert(i)
	}
	assert.Zero(t, flat.Level())
	assert.Equal(t, 100, flat.Len())
	checkInvariants(t, flat)

	s := newIntSet(WithMaxLevel(4))
	for i := range 1000 {
		s.Insert(i)
	}
	assert.LessOrEqual(t, s.Level(), 4)
	checkInvariants(t, s)
}

func TestLevelShrinksWhenEmptied(t *testing.T) {
	s := newIntSet()
	for i := range 256 {
		s.Insert(i)
	}
	require.Positive(t, s.Level())
	for i := range 256 {
		require.True(t, s.Remove(i))
	}
	assert.Zero(t, s.Level())
	assert.True(t, s.Empty())
}

func TestFingerSequentialAccess(t *testing.T) {
	s := newIntSet()
	for i := 0; i < 500; i += 2 {
		s.Insert(i)
	}
	// ascending probes start from the finger left by the previous one
	for i := 0; i < 500; i++ {
		assert.Equal(t, i%2 == 0, s.Contains(i), "contains %d", i)
	}
	// descending probes must fall back to the header
	for i := 499; i >= 0; i-- {
		assert.Equal(t, i%2 == 0, s.Contains(i), "contains %d", i)
	}
	for i := 1; i < 500; i += 2 {
		require.True(t, s.Insert(i))
	}
	assert.Equal(t, 500, s.Len())
	checkInvariants(t, s)
}

func TestRandomOperationsAgainstSortedSlice(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	s := newIntSet(WithMaxLevel(8))
	model := map[int]bool{}

	for range 5000 {
		v := rng.IntN(300)
		switch rng.IntN(3) {
		case 0, 1:
			assert.Equal(t, !model[v], s.Insert(v), "insert %d", v)
			model[v] = true
		case 2:
			assert.Equal(t, model[v], s.Remove(v), "remove %d", v)
			delete(model, v)
		}
	}

	var expected []int
	for v := range model {
		expected = append(expected, v)
	}
	slices.SortFunc(expected, cmp.Compare[int])
	assert.Equal(t, expected, s.ToSlice())
	checkInvariants(t, s)

	for k, want := range expected {
		got, err := s.KthElement(k)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func BenchmarkInsert(b *testing.B) {
	s := newIntSet()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Insert(i)
	}
}

func BenchmarkContains(b *testing.B) {
	s := newIntSet()
	for i := range 100000 {
		s.Insert(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Contains(i % 100000)
	}
}
