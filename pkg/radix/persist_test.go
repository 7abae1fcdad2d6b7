package radix

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	trie := trieWith("hello", "world", "help", "helper", "hello")
	trie.InsertFrequency("world", 9)

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, trie.SaveToFile(path))

	loaded := newTestTrie()
	loaded.Insert("stale")
	require.NoError(t, loaded.LoadFromFile(path))

	assert.False(t, loaded.Search("stale"), "load replaces previous contents")
	assert.Equal(t, slices.Collect(trie.All()), slices.Collect(loaded.All()))
	assert.Equal(t, 2, loaded.Frequency("hello"))
	assert.Equal(t, 10, loaded.Frequency("world"))
	assert.Equal(t, 1, loaded.Frequency("helper"))
	assert.True(t, loaded.EndsWith("per"), "mirror is rebuilt")
}

func TestSaveFormat(t *testing.T) {
	trie := trieWith("b", "a", "a")
	var buf bytes.Buffer
	require.NoError(t, trie.Save(&buf))
	assert.Equal(t, "a 2\nb 1\n", buf.String())
}

func TestSaveLoadEmptyWord(t *testing.T) {
	trie := trieWith("", "x")
	var buf bytes.Buffer
	require.NoError(t, trie.Save(&buf))
	assert.Equal(t, " 1\nx 1\n", buf.String())

	loaded := newTestTrie()
	require.NoError(t, loaded.Load(&buf))
	assert.True(t, loaded.Search(""))
	assert.True(t, loaded.Search("x"))
	assert.Equal(t, 2, loaded.Len())
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"alpha 3",
		"noFrequency",
		"beta x",
		"gamma -2",
		"",
		"delta 7\r",
		"two words 4",
	}, "\n")

	trie := newTestTrie()
	require.NoError(t, trie.Load(strings.NewReader(input)))

	assert.Equal(t, []string{"alpha", "delta", "two words"}, slices.Collect(trie.All()))
	assert.Equal(t, 3, trie.Frequency("alpha"))
	assert.Equal(t, 7, trie.Frequency("delta"))
	assert.Equal(t, 4, trie.Frequency("two words"))
}

func TestLoadFromMissingFile(t *testing.T) {
	trie := trieWith("keep")
	err := trie.LoadFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, trie.Search("keep"))
}

func TestSaveToUnwritablePath(t *testing.T) {
	trie := trieWith("x")
	err := trie.SaveToFile(filepath.Join(t.TempDir(), "no", "such", "dir", "words.txt"))
	require.Error(t, err)
}

func TestParseLine(t *testing.T) {
	testCases := []struct {
		line string
		word string
		freq int
		ok   bool
	}{
		{"apple 5", "apple", 5, true},
		{"apple\t5", "apple", 5, true},
		{"apple 0", "apple", 0, true},
		{" 3", "", 3, true},
		{"new york 12", "new york", 12, true},
		{"apple 5\r", "apple", 5, true},
		{"apple", "", 0, false},
		{"apple five", "", 0, false},
		{"apple -1", "", 0, false},
		{"", "", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			word, freq, ok := ParseLine(tc.line)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.word, word)
				assert.Equal(t, tc.freq, freq)
			}
		})
	}
}
