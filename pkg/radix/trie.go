package radix

import (
	"strings"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/charmbracelet/log"
)

// Trie is a radix tree of words with per-word frequencies.
type Trie struct {
	root          *node
	caseSensitive bool
	isMirror      bool
	mirror        *Trie
	size          int
	log           *log.Logger
}

// Option configures a Trie.
type Option func(*Trie)

// WithCaseSensitive controls case folding. Tries are case sensitive by default;
// a case insensitive trie lower-cases every input and stores the folded form.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(t *Trie) {
		t.caseSensitive = caseSensitive
	}
}

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(t *Trie) {
		t.log = l
	}
}

// NewTrie creates an empty trie together with its suffix mirror.
func NewTrie(opts ...Option) *Trie {
	t := &Trie{
		root:          &node{},
		caseSensitive: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logger.New("radix")
	}
	t.mirror = t.newMirror()
	return t
}

func (t *Trie) newMirror() *Trie {
	return &Trie{
		root:          &node{},
		caseSensitive: t.caseSensitive,
		isMirror:      true,
		log:           t.log,
	}
}

// CaseSensitive reports whether the trie distinguishes letter case.
func (t *Trie) CaseSensitive() bool {
	return t.caseSensitive
}

// Len returns the number of distinct words stored.
func (t *Trie) Len() int {
	return t.size
}

// Clear drops every word, including the mirror contents.
func (t *Trie) Clear() {
	t.root = &node{}
	t.size = 0
	if !t.isMirror {
		t.mirror = t.newMirror()
	}
}

func (t *Trie) normalize(s string) string {
	if t.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// Insert adds word, or bumps its frequency when it is already present.
func (t *Trie) Insert(word string) {
	t.InsertFrequency(word, 1)
}

// InsertFrequency adds word with n occurrences at once. Values of n below 1 count as 1.
func (t *Trie) InsertFrequency(word string, n int) {
	if n < 1 {
		n = 1
	}
	word = t.normalize(word)
	t.insert(word, n)
	if !t.isMirror {
		t.mirror.insert(utils.Reverse(word), n)
	}
}

// insert stores an already normalized word and returns its terminal node.
func (t *Trie) insert(word string, n int) *node {
	cur := t.root
	rest := word
	for {
		if rest == "" {
			if !cur.isWord {
				cur.isWord = true
				t.size++
			}
			cur.freq += n
			return cur
		}

		r, _ := utils.FirstRune(rest)
		e := cur.find(r)
		if e == nil {
			leaf := &node{isWord: true, freq: n}
			cur.addEdge(newEdge(rest, leaf))
			t.size++
			return leaf
		}

		lcp := utils.CommonPrefixLen(e.label, rest)
		if lcp == len(e.label) {
			cur = e.target
			rest = rest[lcp:]
			continue
		}

		// Split e at the common prefix; the old target hangs off the new middle node.
		mid := &node{}
		mid.addEdge(newEdge(e.label[lcp:], e.target))
		e.label = e.label[:lcp]
		e.target = mid
		cur = mid
		rest = rest[lcp:]
	}
}

// lookup returns the node spelled exactly by word, or nil when the path ends
// inside an edge or leaves the trie.
func (t *Trie) lookup(word string) *node {
	cur := t.root
	rest := word
	for rest != "" {
		r, _ := utils.FirstRune(rest)
		e := cur.find(r)
		if e == nil || !strings.HasPrefix(rest, e.label) {
			return nil
		}
		rest = rest[len(e.label):]
		cur = e.target
	}
	return cur
}

// Search reports whether word was inserted and not deleted.
func (t *Trie) Search(word string) bool {
	n := t.lookup(t.normalize(word))
	return n != nil && n.isWord
}

// Frequency returns how many times word was inserted, or 0 when it is absent.
func (t *Trie) Frequency(word string) int {
	n := t.lookup(t.normalize(word))
	if n == nil || !n.isWord {
		return 0
	}
	return n.freq
}

// descend walks prefix from the root. It returns the node at, or just below,
// the end of prefix and the full string spelled down to that node.
// ok is false when prefix leaves the trie.
func (t *Trie) descend(prefix string) (n *node, path string, ok bool) {
	n = t.root
	rest := prefix
	for rest != "" {
		r, _ := utils.FirstRune(rest)
		e := n.find(r)
		if e == nil {
			return nil, "", false
		}
		switch {
		case strings.HasPrefix(rest, e.label):
			rest = rest[len(e.label):]
			n = e.target
		case strings.HasPrefix(e.label, rest):
			// prefix ends mid-label
			return e.target, prefix + e.label[len(rest):], true
		default:
			return nil, "", false
		}
	}
	return n, prefix, true
}

// StartsWith reports whether any stored word begins with prefix.
// The empty prefix always matches.
func (t *Trie) StartsWith(prefix string) bool {
	return t.startsWith(t.normalize(prefix))
}

func (t *Trie) startsWith(prefix string) bool {
	if prefix == "" {
		return true
	}
	_, _, ok := t.descend(prefix)
	return ok
}

// Delete removes word and reports whether it was present.
// Dead branches are pruned and pass-through nodes merged into their parent edge.
func (t *Trie) Delete(word string) bool {
	word = t.normalize(word)
	if !t.delete(word) {
		return false
	}
	if !t.isMirror {
		t.mirror.delete(utils.Reverse(word))
	}
	return true
}

func (t *Trie) delete(word string) bool {
	if word == "" {
		if !t.root.isWord {
			return false
		}
		t.root.isWord = false
		t.root.freq = 0
		t.size--
		return true
	}
	if !deleteFrom(t.root, word) {
		return false
	}
	t.size--
	return true
}

func deleteFrom(n *node, rest string) bool {
	r, _ := utils.FirstRune(rest)
	e := n.find(r)
	if e == nil || !strings.HasPrefix(rest, e.label) {
		return false
	}
	rest = rest[len(e.label):]
	child := e.target

	if rest == "" {
		if !child.isWord {
			return false
		}
		child.isWord = false
		child.freq = 0
	} else if !deleteFrom(child, rest) {
		return false
	}

	if child.isWord {
		return true
	}
	switch len(child.edges) {
	case 0:
		n.removeEdge(r)
	case 1:
		only := child.edges[0]
		e.label += only.label
		e.target = only.target
	}
	return true
}
