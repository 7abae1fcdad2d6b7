package radix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single persisted entry.
const maxLineSize = 1 << 20

// Save writes every word and its frequency to w, one "<word> <frequency>" per line.
func (t *Trie) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	count := 0
	for word, freq := range t.Entries() {
		if _, err := fmt.Fprintf(bw, "%s %d\n", word, freq); err != nil {
			return fmt.Errorf("writing entry %q: %w", word, err)
		}
		count++
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing entries: %w", err)
	}
	t.log.Debugf("Saved %d words", count)
	return nil
}

// SaveToFile writes the trie to path, creating or truncating the file.
func (t *Trie) SaveToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trie file %s: %w", path, err)
	}
	if err := t.Save(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close trie file %s: %w", path, err)
	}
	return nil
}

// Load replaces the contents of the trie with the entries read from r.
// Malformed lines are skipped.
func (t *Trie) Load(r io.Reader) error {
	t.Clear()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	loaded, skipped := 0, 0
	for scanner.Scan() {
		word, freq, ok := ParseLine(scanner.Text())
		if !ok {
			skipped++
			continue
		}
		t.Insert(word)
		if n := t.lookup(t.normalize(word)); n != nil && n.isWord {
			n.freq = freq
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading trie entries: %w", err)
	}

	if skipped > 0 {
		t.log.Debugf("Skipped %d malformed lines", skipped)
	}
	t.log.Debugf("Loaded %d entries, %d distinct words", loaded, t.size)
	return nil
}

// LoadFromFile replaces the trie contents with the file at path.
// The trie is left untouched when the file cannot be opened.
func (t *Trie) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open trie file %s: %w", path, err)
	}
	defer file.Close()
	return t.Load(file)
}

// ParseLine splits a persisted "<word> <frequency>" line. The last whitespace
// separated token is the frequency; everything before the separator is the word,
// which may be empty.
func ParseLine(line string) (word string, freq int, ok bool) {
	line = strings.TrimSuffix(line, "\r")
	i := strings.LastIndexAny(line, " \t")
	if i < 0 {
		return "", 0, false
	}
	freq, err := strconv.Atoi(line[i+1:])
	if err != nil || freq < 0 {
		return "", 0, false
	}
	return line[:i], freq, true
}
