package radix

import (
	"slices"

	"github.com/bastiangx/wordkit/internal/utils"
)

// edge links a parent to target through a non-empty label.
type edge struct {
	label  string
	first  rune
	target *node
}

// node holds the outgoing edges ordered by their first rune.
type node struct {
	edges  []*edge
	isWord bool
	freq   int
}

func newEdge(label string, target *node) *edge {
	r, _ := utils.FirstRune(label)
	return &edge{label: label, first: r, target: target}
}

func (n *node) search(r rune) (int, bool) {
	return slices.BinarySearchFunc(n.edges, r, func(e *edge, r rune) int {
		switch {
		case e.first < r:
			return -1
		case e.first > r:
			return 1
		}
		return 0
	})
}

// find returns the outgoing edge whose label starts with r, or nil.
func (n *node) find(r rune) *edge {
	if i, ok := n.search(r); ok {
		return n.edges[i]
	}
	return nil
}

// addEdge inserts e keeping the edge slice ordered. An existing edge with the
// same first rune is replaced.
func (n *node) addEdge(e *edge) {
	i, ok := n.search(e.first)
	if ok {
		n.edges[i] = e
		return
	}
	n.edges = slices.Insert(n.edges, i, e)
}

func (n *node) removeEdge(r rune) {
	if i, ok := n.search(r); ok {
		n.edges = slices.Delete(n.edges, i, i+1)
	}
}

func (n *node) isLeaf() bool {
	return len(n.edges) == 0
}
