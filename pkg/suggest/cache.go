package suggest

import (
	"cmp"
	"iter"
	"slices"
	"sync"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/pkg/skiplist"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache keeps recently served words in a patricia trie so repeated
// prefixes skip the full trie walk. Results are approximate: a prefix is
// answered from the cache once it holds enough words under it. Access times are ordered in a skip list,
// whose first element is the eviction candidate once maxWords is reached.
type HotCache struct {
	hotTrie  *patricia.Trie
	access   map[string]int64
	lru      *skiplist.SkipList[int64, skiplist.Pair[int64, string]]
	clock    int64
	hits     int64
	misses   int64
	maxWords int
	mu       sync.Mutex
	log      *log.Logger
}

type cacheEntry struct {
	word string
	freq int
}

func NewHotCache(maxWords int) *HotCache {
	return &HotCache{
		hotTrie:  patricia.NewTrie(),
		access:   make(map[string]int64, maxWords),
		lru:      skiplist.NewMap[int64, string](skiplist.WithLogger(logger.Discard())),
		maxWords: maxWords,
		log:      logger.New("hotcache"),
	}
}

// Search returns the cached words under prefix, best first, when the cache
// holds at least limit of them. The prefix itself is never returned.
func (hc *HotCache) Search(prefix string, limit int) ([]cacheEntry, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var results []cacheEntry
	err := hc.hotTrie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == prefix {
			return nil
		}
		results = append(results, cacheEntry{word: word, freq: item.(int)})
		return nil
	})
	if err != nil {
		hc.log.Errorf("Error searching hot cache: %v", err)
		return nil, false
	}
	if limit <= 0 || len(results) < limit {
		hc.misses++
		return nil, false
	}

	slices.SortFunc(results, func(a, b cacheEntry) int {
		if c := cmp.Compare(b.freq, a.freq); c != 0 {
			return c
		}
		return cmp.Compare(a.word, b.word)
	})
	results = results[:limit]
	for _, r := range results {
		hc.markAccessed(r.word)
	}
	hc.hits++
	return results, true
}

// Record stores or refreshes word.
func (hc *HotCache) Record(word string, freq int) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.record(word, freq)
}

func (hc *HotCache) record(word string, freq int) {
	if hc.maxWords <= 0 {
		return
	}
	if _, ok := hc.access[word]; !ok && len(hc.access) >= hc.maxWords {
		hc.evictLRU()
	}
	hc.hotTrie.Set(patricia.Prefix(word), freq)
	hc.markAccessed(word)
}

// Remove drops word from the cache.
func (hc *HotCache) Remove(word string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.forget(word)
}

// Populate seeds the cache with up to half its capacity from entries,
// most frequent first.
func (hc *HotCache) Populate(entries iter.Seq2[string, int]) {
	ranked := newRanking(skiplist.DefaultMaxLevel)
	for word, freq := range entries {
		ranked.Insert(Suggestion{Word: word, Frequency: freq})
	}

	hc.mu.Lock()
	defer hc.mu.Unlock()
	count := 0
	for s := range ranked.All() {
		if count >= hc.maxWords/2 {
			break
		}
		hc.record(s.Word, s.Frequency)
		count++
	}
	hc.log.Debugf("Populated hot cache with %d words", count)
}

func (hc *HotCache) Len() int {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return len(hc.access)
}

func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCacheWords":  len(hc.access),
		"maxHotWords":    hc.maxWords,
		"hotCacheHits":   int(hc.hits),
		"hotCacheMisses": int(hc.misses),
	}
}

func (hc *HotCache) markAccessed(word string) {
	if old, ok := hc.access[word]; ok {
		hc.lru.Delete(old)
	}
	hc.clock++
	hc.access[word] = hc.clock
	hc.lru.Insert(skiplist.Pair[int64, string]{Key: hc.clock, Value: word})
}

func (hc *HotCache) forget(word string) {
	if t, ok := hc.access[word]; ok {
		hc.lru.Delete(t)
		delete(hc.access, word)
		hc.hotTrie.Delete(patricia.Prefix(word))
	}
}

func (hc *HotCache) evictLRU() {
	oldest := hc.lru.Begin()
	if !oldest.Valid() {
		return
	}
	word := oldest.Value().Value
	hc.forget(word)
	hc.log.Debugf("Evicted word '%s' from hot cache", word)
}
