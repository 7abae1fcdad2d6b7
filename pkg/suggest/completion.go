package suggest

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/pkg/dictionary"
	"github.com/bastiangx/wordkit/pkg/radix"
	"github.com/bastiangx/wordkit/pkg/skiplist"
	"github.com/charmbracelet/log"
)

const defaultHotWords = 20000

// Suggestion is one ranked completion. Corrected suggestions carry the edit
// distance from the typed prefix.
type Suggestion struct {
	Word            string
	Frequency       int
	Distance        int    `json:",omitempty"`
	WasCorrected    bool   `json:",omitempty"`
	OriginalPrefix  string `json:",omitempty"`
	CorrectedPrefix string `json:",omitempty"`
}

// Completer answers prefix queries over a radix trie. It is safe for
// concurrent use.
type Completer struct {
	mu              sync.RWMutex
	trie            *radix.Trie
	hotCache        *HotCache
	loader          *dictionary.Loader
	maxEditDistance int
	maxLevel        int
	maxFrequency    int
	loadedFiles     int
	log             *log.Logger
}

// Option configures a Completer.
type Option func(*completerOptions)

type completerOptions struct {
	caseSensitive   bool
	maxEditDistance int
	maxLevel        int
	hotWords        int
	loader          *dictionary.Loader
	log             *log.Logger
}

// WithCaseSensitive keeps letter case distinct; completers fold case by default.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(o *completerOptions) { o.caseSensitive = caseSensitive }
}

// WithMaxEditDistance sets the edit budget of the fuzzy fallback; 0 disables it.
func WithMaxEditDistance(n int) Option {
	return func(o *completerOptions) { o.maxEditDistance = n }
}

// WithMaxLevel sets the skip list level cap used for ranking.
func WithMaxLevel(n int) Option {
	return func(o *completerOptions) { o.maxLevel = n }
}

// WithHotCacheSize bounds the hot cache; 0 disables it.
func WithHotCacheSize(n int) Option {
	return func(o *completerOptions) { o.hotWords = n }
}

// WithLoader sets the dictionary loader used by Initialize.
func WithLoader(l *dictionary.Loader) Option {
	return func(o *completerOptions) { o.loader = l }
}

// WithLogger replaces the default "suggest" logger.
func WithLogger(l *log.Logger) Option {
	return func(o *completerOptions) { o.log = l }
}

// NewCompleter creates an empty completer. Call Initialize to load the
// dictionaries of its loader.
func NewCompleter(opts ...Option) *Completer {
	o := completerOptions{
		maxEditDistance: 1,
		maxLevel:        skiplist.DefaultMaxLevel,
		hotWords:        defaultHotWords,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.New("suggest")
	}

	c := &Completer{
		trie:            radix.NewTrie(radix.WithCaseSensitive(o.caseSensitive), radix.WithLogger(o.log)),
		loader:          o.loader,
		maxEditDistance: o.maxEditDistance,
		maxLevel:        o.maxLevel,
		log:             o.log,
	}
	if o.hotWords > 0 {
		c.hotCache = NewHotCache(o.hotWords)
	}
	return c
}

func (c *Completer) normalize(s string) string {
	if c.trie.CaseSensitive() {
		return s
	}
	return strings.ToLower(s)
}

func (c *Completer) AddWord(word string, frequency int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trie.InsertFrequency(word, frequency)
	key := c.normalize(word)
	freq := c.trie.Frequency(key)
	c.maxFrequency = max(c.maxFrequency, freq)
	if c.hotCache != nil {
		c.hotCache.Record(key, freq)
	}
}

func (c *Completer) RemoveWord(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.trie.Delete(word) {
		return false
	}
	if c.hotCache != nil {
		c.hotCache.Remove(c.normalize(word))
	}
	return true
}

// Complete ranks the completions of prefix by frequency. When there are none,
// prefix is not itself a word and has at least two runes, words within the
// edit budget are returned instead, marked WasCorrected. The capitals typed in prefix are
// carried over to every suggestion.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if prefix == "" {
		return nil
	}
	key := c.normalize(prefix)
	capitalPositions := CapitalPositions(prefix)

	if c.hotCache != nil {
		if cached, ok := c.hotCache.Search(key, limit); ok {
			c.log.Debugf("Hot cache hit for '%s'", key)
			suggestions := make([]Suggestion, len(cached))
			for i, e := range cached {
				suggestions[i] = Suggestion{
					Word:      ApplyCapitalization(e.word, capitalPositions),
					Frequency: e.freq,
				}
			}
			return suggestions
		}
	}

	c.mu.RLock()
	suggestions := SearchTrie(c.trie, key, limit, c.maxLevel)
	corrected := false
	if len(suggestions) == 0 && utf8.RuneCountInString(key) >= 2 && !c.trie.Search(key) {
		suggestions = SearchFuzzy(c.trie, key, c.maxEditDistance, limit, c.maxLevel)
		corrected = len(suggestions) > 0
	}
	c.mu.RUnlock()

	if corrected {
		c.log.Debugf("Prefix '%s' corrected to '%s'", prefix, suggestions[0].CorrectedPrefix)
	}
	for i := range suggestions {
		s := &suggestions[i]
		if !s.WasCorrected && c.hotCache != nil {
			c.hotCache.Record(s.Word, s.Frequency)
		}
		if s.WasCorrected {
			s.OriginalPrefix = prefix
		}
		s.Word = ApplyCapitalization(s.Word, capitalPositions)
	}
	return suggestions
}

// Initialize loads the dictionaries of the configured loader and seeds the
// hot cache. Without a loader it does nothing.
func (c *Completer) Initialize() error {
	if c.loader == nil {
		return nil
	}

	c.mu.Lock()
	stats, err := c.loader.LoadInto(c.trie)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.loadedFiles += stats.Files
	c.maxFrequency = max(c.maxFrequency, stats.MaxFrequency)
	c.mu.Unlock()

	if c.hotCache != nil {
		c.mu.RLock()
		c.hotCache.Populate(c.trie.Entries())
		c.mu.RUnlock()
	}
	return nil
}

// Match returns the words matching a wildcard pattern, '?' standing for one
// rune and '*' for any run.
func (c *Completer) Match(pattern string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.WildcardSearch(pattern)
}

// EndingWith returns the words ending with suffix.
func (c *Completer) EndingWith(suffix string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.WordsEndingWith(suffix)
}

// Save writes the current word list in the radix line format.
func (c *Completer) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.SaveToFile(path)
}

func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	stats := map[string]int{
		"totalWords":   c.trie.Len(),
		"maxFrequency": c.maxFrequency,
		"loadedFiles":  c.loadedFiles,
	}
	c.mu.RUnlock()

	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
