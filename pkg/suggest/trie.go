package suggest

import (
	"unicode"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/pkg/radix"
	"github.com/bastiangx/wordkit/pkg/skiplist"
)

// rankKey orders suggestions: closer corrections first, then higher
// frequency, then alphabetically.
type rankKey struct {
	distance int
	freq     int
	word     string
}

func lessRank(a, b rankKey) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.freq != b.freq {
		return a.freq > b.freq
	}
	return a.word < b.word
}

func newRanking(maxLevel int) *skiplist.SkipList[rankKey, Suggestion] {
	return skiplist.New(func(s Suggestion) rankKey {
		return rankKey{distance: s.Distance, freq: s.Frequency, word: s.Word}
	}, lessRank, skiplist.WithMaxLevel(maxLevel), skiplist.WithLogger(logger.Discard()))
}

// topSuggestions returns the first limit ranked entries; limit <= 0 takes all.
func topSuggestions(ranked *skiplist.SkipList[rankKey, Suggestion], limit int) []Suggestion {
	n := ranked.Len()
	if limit > 0 {
		n = min(n, limit)
	}
	out := make([]Suggestion, 0, n)
	for s := range ranked.All() {
		if len(out) == n {
			break
		}
		out = append(out, s)
	}
	return out
}

// SearchTrie ranks the completions of prefix, leaving out prefix itself.
func SearchTrie(trie *radix.Trie, prefix string, limit, maxLevel int) []Suggestion {
	if trie == nil {
		return nil
	}
	ranked := newRanking(maxLevel)
	for word, freq := range trie.EntriesWithPrefix(prefix) {
		if word == prefix {
			continue
		}
		ranked.Insert(Suggestion{Word: word, Frequency: freq})
	}
	return topSuggestions(ranked, limit)
}

// SearchFuzzy ranks the words within maxDistance edits of prefix.
func SearchFuzzy(trie *radix.Trie, prefix string, maxDistance, limit, maxLevel int) []Suggestion {
	if trie == nil || maxDistance <= 0 {
		return nil
	}
	ranked := newRanking(maxLevel)
	for _, m := range trie.FuzzySearch(prefix, maxDistance) {
		if m.Distance == 0 {
			continue
		}
		ranked.Insert(Suggestion{
			Word:            m.Word,
			Frequency:       trie.Frequency(m.Word),
			Distance:        m.Distance,
			WasCorrected:    true,
			CorrectedPrefix: m.Word,
		})
	}
	return topSuggestions(ranked, limit)
}

// CapitalPositions marks which runes of s are upper case.
func CapitalPositions(s string) []bool {
	var positions []bool
	hasUpper := false
	for _, r := range s {
		upper := unicode.IsUpper(r)
		hasUpper = hasUpper || upper
		positions = append(positions, upper)
	}
	if !hasUpper {
		return nil
	}
	return positions
}

// ApplyCapitalization upper-cases the runes of word at the marked positions.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}
	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] {
			wordRunes[i] = unicode.ToUpper(wordRunes[i])
		}
	}
	return string(wordRunes)
}
