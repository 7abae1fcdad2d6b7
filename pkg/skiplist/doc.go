/*
Package skiplist provides a lock-free ordered set and map.

Elements are kept in ascending key order across a tower of linked levels.
Level 0 holds every element; each higher level holds a random subset and
lets lookups skip ahead. Nodes are linked and unlinked with compare-and-swap
on per-level forward pointers, so inserts, lookups and removals from many
goroutines proceed without locks.

# Usage

	s := skiplist.NewSet[int]()
	s.Insert(3)
	s.Insert(7)
	s.Contains(3)          // true
	s.RangeQuery(1, 5)     // [3]

	m := skiplist.NewMap[string, int]()
	m.Insert(skiplist.Pair[string, int]{Key: "a", Value: 1})
	m.InsertOrAssign(skiplist.Pair[string, int]{Key: "a", Value: 2})

# Removal

A removal first marks the node's forward pointers from the top level down.
Marking level 0 is the point at which the element leaves the set. The node is
then unlinked with a single compare-and-swap per level; a level that loses
that race keeps the marked node until a later insert or removal passing
through snips it out. Readers skip marked nodes.

# Finger

Every list remembers the level-0 predecessor found by its last lookup and
starts the next lookup there when the target key lies ahead of it. The finger
is only a hint: a removed or partially linked finger is ignored.

Clear is the one operation that must not run alongside other mutations.
*/
package skiplist
