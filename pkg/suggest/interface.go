// Package suggest ranks word completions drawn from a radix trie, falling back
// to fuzzy matches when a prefix has no completions.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions for prefix; limit <= 0 means no limit.
	Complete(prefix string, limit int) []Suggestion

	// AddWord adds frequency occurrences of word.
	AddWord(word string, frequency int)

	// RemoveWord deletes word and reports whether it was known.
	RemoveWord(word string) bool

	// Initialize loads the configured dictionaries.
	Initialize() error

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
