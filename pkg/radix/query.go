package radix

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/bastiangx/wordkit/internal/utils"
)

// WordsWithPrefix returns every stored word starting with prefix, in ascending order.
func (t *Trie) WordsWithPrefix(prefix string) []string {
	return t.wordsWithPrefix(t.normalize(prefix))
}

func (t *Trie) wordsWithPrefix(prefix string) []string {
	n, path, ok := t.descend(prefix)
	if !ok {
		return nil
	}
	return collect(n, []byte(path), nil)
}

// collect appends every word at or below n. path spells the way down to n.
func collect(n *node, path []byte, out []string) []string {
	if n.isWord {
		out = append(out, string(path))
	}
	for _, e := range n.edges {
		out = collect(e.target, append(path, e.label...), out)
	}
	return out
}

// EndsWith reports whether any stored word ends with suffix.
// A mirror trie cannot answer suffix queries and always returns false.
func (t *Trie) EndsWith(suffix string) bool {
	if t.isMirror {
		return false
	}
	return t.mirror.startsWith(utils.Reverse(t.normalize(suffix)))
}

// WordsEndingWith returns every stored word ending with suffix, in ascending order.
func (t *Trie) WordsEndingWith(suffix string) []string {
	if t.isMirror {
		return nil
	}
	reversed := t.mirror.wordsWithPrefix(utils.Reverse(t.normalize(suffix)))
	for i, w := range reversed {
		reversed[i] = utils.Reverse(w)
	}
	slices.Sort(reversed)
	return reversed
}

// WildcardSearch returns the words matching pattern, in ascending order.
// '?' matches exactly one rune and '*' matches any run of runes, including none.
// Every other rune matches itself after case folding.
func (t *Trie) WildcardSearch(pattern string) []string {
	m := &wildcardMatcher{
		pattern: compactStars([]rune(t.normalize(pattern))),
		visited: make(map[matchState]struct{}),
	}
	m.atNode(t.root, 0)
	slices.Sort(m.out)
	return m.out
}

// compactStars folds runs of '*' into one; they match the same strings.
func compactStars(p []rune) []rune {
	return slices.CompactFunc(p, func(a, b rune) bool {
		return a == '*' && b == '*'
	})
}

// matchState is a position in the tree (a node, or an offset inside an edge label)
// paired with a position in the pattern. The tree position fixes the spelled path,
// so a state never needs to be explored twice.
type matchState struct {
	n   *node
	e   *edge
	off int
	pi  int
}

type wildcardMatcher struct {
	pattern []rune
	path    []byte
	visited map[matchState]struct{}
	out     []string
}

func (m *wildcardMatcher) seen(s matchState) bool {
	if _, ok := m.visited[s]; ok {
		return true
	}
	m.visited[s] = struct{}{}
	return false
}

func (m *wildcardMatcher) atNode(n *node, pi int) {
	if m.seen(matchState{n: n, pi: pi}) {
		return
	}
	if pi == len(m.pattern) {
		if n.isWord {
			m.out = append(m.out, string(m.path))
		}
		return
	}

	p := m.pattern[pi]
	if p == '*' {
		m.atNode(n, pi+1)
	}
	for _, e := range n.edges {
		switch p {
		case '*':
			// the star swallows the first rune and stays active
			m.consume(e, 0, pi)
		case '?':
			m.consume(e, 0, pi+1)
		default:
			if e.first == p {
				m.consume(e, 0, pi+1)
			}
		}
	}
}

// inEdge matches pattern[pi:] starting at byte offset off of e's label.
func (m *wildcardMatcher) inEdge(e *edge, off, pi int) {
	if off == len(e.label) {
		m.atNode(e.target, pi)
		return
	}
	if pi == len(m.pattern) {
		// pattern ran out mid-label
		return
	}
	if m.seen(matchState{e: e, off: off, pi: pi}) {
		return
	}

	c, _ := utf8.DecodeRuneInString(e.label[off:])
	switch p := m.pattern[pi]; {
	case p == '*':
		m.inEdge(e, off, pi+1)
		m.consume(e, off, pi)
	case p == '?' || p == c:
		m.consume(e, off, pi+1)
	}
}

// consume moves one rune forward inside e and continues at pattern index pi.
func (m *wildcardMatcher) consume(e *edge, off, pi int) {
	_, size := utf8.DecodeRuneInString(e.label[off:])
	mark := len(m.path)
	m.path = append(m.path, e.label[off:off+size]...)
	m.inEdge(e, off+size, pi)
	m.path = m.path[:mark]
}

// FuzzyMatch is a word within the requested edit distance of a query.
type FuzzyMatch struct {
	Word     string
	Distance int
}

// FuzzySearch returns the words whose Levenshtein distance to query is at most
// maxDistance, ordered by distance and then by word.
func (t *Trie) FuzzySearch(query string, maxDistance int) []FuzzyMatch {
	if maxDistance < 0 {
		return nil
	}
	f := &fuzzyWalker{
		query: []rune(t.normalize(query)),
		max:   maxDistance,
		best:  make(map[string]int),
	}

	row := make([]int, len(f.query)+1)
	for i := range row {
		row[i] = i
	}
	if t.root.isWord {
		f.record(row)
	}
	for _, e := range t.root.edges {
		f.walk(e, row)
	}

	matches := make([]FuzzyMatch, 0, len(f.best))
	for w, d := range f.best {
		matches = append(matches, FuzzyMatch{Word: w, Distance: d})
	}
	slices.SortFunc(matches, func(a, b FuzzyMatch) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return matches
}

// fuzzyWalker keeps one edit-distance row per rune of the current path.
type fuzzyWalker struct {
	query []rune
	max   int
	path  []byte
	best  map[string]int
}

func (f *fuzzyWalker) walk(e *edge, prev []int) {
	mark := len(f.path)
	defer func() { f.path = f.path[:mark] }()

	row := prev
	for _, c := range e.label {
		row = f.step(row, c)
		f.path = utf8.AppendRune(f.path, c)
		if slices.Min(row) > f.max {
			return
		}
	}

	n := e.target
	if n.isWord {
		f.record(row)
	}
	for _, child := range n.edges {
		f.walk(child, row)
	}
}

// step extends the distance row by one rune of the path.
func (f *fuzzyWalker) step(prev []int, c rune) []int {
	row := make([]int, len(prev))
	row[0] = prev[0] + 1
	for j := 1; j < len(row); j++ {
		cost := 1
		if f.query[j-1] == c {
			cost = 0
		}
		row[j] = min(row[j-1]+1, prev[j]+1, prev[j-1]+cost)
	}
	return row
}

func (f *fuzzyWalker) record(row []int) {
	d := row[len(row)-1]
	if d > f.max {
		return
	}
	w := string(f.path)
	if old, ok := f.best[w]; !ok || d < old {
		f.best[w] = d
	}
}
