//go:build test

package suggest

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/stretchr/testify/assert"
)

var memPatterns = [][]string{
	{"h", "he", "hel", "hell", "hello"},
	{"w", "wo", "wor", "worl", "world"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"i", "in", "int", "inte", "inter", "intern", "interna", "internat"},
}

func heapAlloc() uint64 {
	runtime.GC()
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

func memCompleter() *Completer {
	c := NewCompleter(WithLogger(logger.Discard()), WithHotCacheSize(256))
	for i := range 2000 {
		for _, p := range memPatterns {
			c.AddWord(fmt.Sprintf("%s%d", p[len(p)-1], i), i%97+1)
		}
	}
	return c
}

// TestMemoryChurn adds and removes the same words over and over; the trie,
// hot cache and ranking skip lists must not keep what was dropped.
func TestMemoryChurn(t *testing.T) {
	c := memCompleter()
	words := c.Stats()["totalWords"]
	before := heapAlloc()

	for cycle := range 50 {
		for i := range 200 {
			w := fmt.Sprintf("churn%d_%d", cycle, i)
			c.AddWord(w, i+1)
			c.Complete("churn", 10)
			c.RemoveWord(w)
		}
	}

	after := heapAlloc()
	assert.Equal(t, words, c.Stats()["totalWords"])
	assert.LessOrEqual(t, c.Stats()["hotCacheWords"], 256)
	if after > before {
		assert.Less(t, after-before, uint64(4<<20), "heap grew by %d bytes", after-before)
	}
}

func TestMemoryConcurrentCompletes(t *testing.T) {
	c := memCompleter()
	before := heapAlloc()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 250 {
				pattern := memPatterns[(w+i)%len(memPatterns)]
				for _, prefix := range pattern {
					c.Complete(prefix, 10)
				}
			}
		}()
	}
	wg.Wait()

	after := heapAlloc()
	if after > before {
		assert.Less(t, after-before, uint64(4<<20), "heap grew by %d bytes", after-before)
	}
}
