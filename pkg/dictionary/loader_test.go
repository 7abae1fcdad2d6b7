package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/pkg/radix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTrie() *radix.Trie {
	return radix.NewTrie(radix.WithLogger(logger.Discard()), radix.WithCaseSensitive(false))
}

func TestLoadInto(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "b_common.txt", "hello 40\nhelp 12\n# comment\n\nworld 7\n")
	writeDict(t, dir, "a_extra.txt", "helium\nhello 2\n")
	writeDict(t, dir, "ignored.bin", "zzz 1\n")

	l := NewLoader(dir, "*.txt", WithLogger(logger.Discard()))
	files, err := l.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a_extra.txt", files[0].Name)
	assert.Equal(t, FormatMixed, files[0].Format)
	assert.Equal(t, FormatFrequency, files[1].Format)

	trie := newTrie()
	stats, err := l.LoadInto(trie)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 5, stats.Words)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 40, stats.MaxFrequency)

	assert.Equal(t, 42, trie.Frequency("hello"), "frequencies add up across files")
	assert.Equal(t, 1, trie.Frequency("helium"))
	assert.False(t, trie.Search("zzz"))
	assert.Equal(t, []string{"a_extra.txt", "b_common.txt"}, l.Loaded())
}

func TestLoadIntoMinFrequency(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "words.txt", "rare 1\ncommon 50\nbare\n")

	trie := newTrie()
	stats, err := NewLoader(dir, "", WithMinFrequency(5), WithLogger(logger.Discard())).LoadInto(trie)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Words)
	assert.Equal(t, 2, stats.Skipped)
	assert.True(t, trie.Search("common"))
	assert.False(t, trie.Search("rare"))
	assert.False(t, trie.Search("bare"))
}

func TestLoadIntoMaxFiles(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "1.txt", "one 1\n")
	writeDict(t, dir, "2.txt", "two 1\n")

	trie := newTrie()
	stats, err := NewLoader(dir, "*.txt", WithMaxFiles(1), WithLogger(logger.Discard())).LoadInto(trie)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
	assert.True(t, trie.Search("one"))
	assert.False(t, trie.Search("two"))
}

func TestLoadIntoNoFiles(t *testing.T) {
	_, err := NewLoader(t.TempDir(), "*.txt", WithLogger(logger.Discard())).LoadInto(newTrie())
	assert.ErrorIs(t, err, ErrNoDictionaries)
}

func TestLoadSavedTrie(t *testing.T) {
	dir := t.TempDir()
	src := newTrie()
	src.InsertFrequency("alpha", 3)
	src.InsertFrequency("beta", 9)
	require.NoError(t, src.SaveToFile(filepath.Join(dir, "saved.txt")))

	dst := newTrie()
	_, err := NewLoader(dir, "*.txt", WithLogger(logger.Discard())).LoadInto(dst)
	require.NoError(t, err)
	assert.Equal(t, 3, dst.Frequency("alpha"))
	assert.Equal(t, 9, dst.Frequency("beta"))
}

func TestParseEntry(t *testing.T) {
	testCases := []struct {
		line string
		word string
		freq int
		ok   bool
	}{
		{"apple 5", "apple", 5, true},
		{"  apple 5  ", "apple", 5, true},
		{"apple", "apple", 1, true},
		{"new york 3", "new york", 3, true},
		{"new york", "", 0, false},
		{"# note", "", 0, false},
		{"", "", 0, false},
		{"   ", "", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			word, freq, ok := parseEntry(tc.line)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.word, word)
				assert.Equal(t, tc.freq, freq)
			}
		})
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name     string
		body     string
		expected FileFormat
		wantErr  bool
	}{
		{"freq.txt", "a 1\nb 2\n", FormatFrequency, false},
		{"bare.txt", "a\nb\n", FormatWordList, false},
		{"mixed.txt", "a 1\nb\n", FormatMixed, false},
		{"empty.txt", "", FormatUnknown, true},
		{"comments.txt", "# only\n\n", FormatUnknown, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			format, err := DetectFileFormat(writeDict(t, dir, tc.name, tc.body))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, format)
		})
	}
}
