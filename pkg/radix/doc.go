/*
Package radix implements a compressed prefix tree (radix / Patricia trie) over words.

Edges carry multi-rune labels and a node never has two outgoing edges starting with the
same rune. Every word keeps an insertion count, so the trie doubles as a frequency
dictionary that can be saved to and loaded from a plain text file.

# Usage

	t := radix.NewTrie(radix.WithCaseSensitive(false))
	t.Insert("apple")
	t.Insert("Apply")

	t.Search("APPLE")             // true
	t.WordsWithPrefix("app")      // [apple apply]
	t.WildcardSearch("ap?l*")     // [apple apply]
	t.FuzzySearch("axple", 1)     // [{apple 1}]
	t.WordsEndingWith("ly")       // [apply]

# Suffix queries

A trie that is not itself a mirror owns a second trie holding every word reversed.
Inserts, deletes and loads update both, which turns suffix questions into prefix
questions on the mirror.

# File format

One entry per line, the word and its frequency separated by a single space:

	apple 2
	apply 1
	 3

The last line is the empty word. Words containing spaces are ambiguous with this
format; the last whitespace separated token is always read as the frequency.

A Trie is not safe for concurrent use. Callers serialize access themselves.
*/
package radix
