package radix

import "iter"

// Iterator walks the words of a trie in ascending order.
// It keeps an explicit stack instead of recursing, and is single use.
// Mutating the trie while iterating gives undefined results.
type Iterator struct {
	stack []frame
	word  []byte
}

// frame is one node on the current root-to-node path.
type frame struct {
	n        *node
	next     int // index of the next edge to descend into
	labelLen int // bytes the edge into n added to word
	visited  bool
}

// Iterator returns a fresh iterator positioned before the first word.
func (t *Trie) Iterator() *Iterator {
	return &Iterator{stack: []frame{{n: t.root}}}
}

// Next returns the next word. ok is false once every word has been produced.
func (it *Iterator) Next() (word string, ok bool) {
	word, _, ok = it.advance()
	return word, ok
}

func (it *Iterator) advance() (string, *node, bool) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if !top.visited {
			top.visited = true
			if top.n.isWord {
				return string(it.word), top.n, true
			}
		}

		if top.next < len(top.n.edges) {
			e := top.n.edges[top.next]
			top.next++
			it.word = append(it.word, e.label...)
			it.stack = append(it.stack, frame{n: e.target, labelLen: len(e.label)})
			continue
		}

		it.word = it.word[:len(it.word)-top.labelLen]
		it.stack = it.stack[:len(it.stack)-1]
	}
	return "", nil, false
}

// All yields every word in ascending order.
func (t *Trie) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		it := t.Iterator()
		for {
			w, ok := it.Next()
			if !ok || !yield(w) {
				return
			}
		}
	}
}

// Entries yields every word with its frequency, in ascending word order.
func (t *Trie) Entries() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		it := t.Iterator()
		for {
			w, n, ok := it.advance()
			if !ok || !yield(w, n.freq) {
				return
			}
		}
	}
}

// EntriesWithPrefix yields the words starting with prefix and their
// frequencies, in ascending word order.
func (t *Trie) EntriesWithPrefix(prefix string) iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		n, path, ok := t.descend(t.normalize(prefix))
		if !ok {
			return
		}
		it := &Iterator{stack: []frame{{n: n}}, word: []byte(path)}
		for {
			w, n, ok := it.advance()
			if !ok || !yield(w, n.freq) {
				return
			}
		}
	}
}
