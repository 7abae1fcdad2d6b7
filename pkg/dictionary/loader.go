/*
Package dictionary loads plain-text word lists into a radix trie.

Each file holds one entry per line, either "<word> <frequency>" as written by
radix.Trie.SaveToFile or a bare "<word>" counting once. Files are matched by a
glob pattern inside a directory and loaded in name order.
*/
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/pkg/radix"
	"github.com/charmbracelet/log"
)

var ErrNoDictionaries = errors.New("no dictionary files found")

const maxLineSize = 1 << 20

// Loader reads every file matching pattern in dir.
type Loader struct {
	dir      string
	pattern  string
	minFreq  int
	maxFiles int
	log      *log.Logger

	mu     sync.RWMutex
	loaded map[string]FileStats
}

// FileInfo describes one dictionary file on disk.
type FileInfo struct {
	Name   string
	Path   string
	Size   int64
	Format FileFormat
}

// FileStats counts what a single file contributed.
type FileStats struct {
	Words        int
	Skipped      int
	MaxFrequency int
}

// Stats aggregates a LoadInto run.
type Stats struct {
	Files        int
	Words        int
	Skipped      int
	MaxFrequency int
}

// Option configures a Loader.
type Option func(*Loader)

// WithMinFrequency drops entries whose frequency is below n.
func WithMinFrequency(n int) Option {
	return func(l *Loader) {
		l.minFreq = n
	}
}

// WithMaxFiles loads at most n files, in name order. 0 means no limit.
func WithMaxFiles(n int) Option {
	return func(l *Loader) {
		l.maxFiles = n
	}
}

func WithLogger(lg *log.Logger) Option {
	return func(l *Loader) {
		l.log = lg
	}
}

// NewLoader creates a loader for dir/pattern. An empty pattern matches "*.txt".
func NewLoader(dir, pattern string, opts ...Option) *Loader {
	if pattern == "" {
		pattern = "*.txt"
	}
	l := &Loader{
		dir:     dir,
		pattern: pattern,
		minFreq: 1,
		loaded:  make(map[string]FileStats),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.New("dict")
	}
	return l
}

// Files lists the matching regular files sorted by name.
func (l *Loader) Files() ([]FileInfo, error) {
	matches, err := filepath.Glob(filepath.Join(l.dir, l.pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for dictionary files: %w", err)
	}

	files := make([]FileInfo, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		format, err := DetectFileFormat(path)
		if err != nil {
			l.log.Warnf("Skipping %s: %v", path, err)
			continue
		}
		files = append(files, FileInfo{
			Name:   filepath.Base(path),
			Path:   path,
			Size:   info.Size(),
			Format: format,
		})
	}
	slices.SortFunc(files, func(a, b FileInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}

// LoadInto inserts every matching file into t. A file that fails to read is
// logged and skipped; ErrNoDictionaries is returned when nothing matched.
func (l *Loader) LoadInto(t *radix.Trie) (Stats, error) {
	var stats Stats
	files, err := l.Files()
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, fmt.Errorf("%w in %s matching %q", ErrNoDictionaries, l.dir, l.pattern)
	}
	if l.maxFiles > 0 && len(files) > l.maxFiles {
		files = files[:l.maxFiles]
	}

	l.log.Debugf("Found %d dictionary files", len(files))
	for _, f := range files {
		fs, err := l.LoadFile(t, f.Path)
		if err != nil {
			l.log.Errorf("Failed to load %s: %v", f.Name, err)
			continue
		}
		stats.Files++
		stats.Words += fs.Words
		stats.Skipped += fs.Skipped
		stats.MaxFrequency = max(stats.MaxFrequency, fs.MaxFrequency)
	}
	if stats.Files == 0 {
		return stats, fmt.Errorf("%w: every file in %s failed to load", ErrNoDictionaries, l.dir)
	}
	l.log.Debugf("Loaded %d entries from %d files (%d skipped)", stats.Words, stats.Files, stats.Skipped)
	return stats, nil
}

// LoadFile inserts the entries of one file into t.
func (l *Loader) LoadFile(t *radix.Trie, path string) (FileStats, error) {
	var stats FileStats
	file, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("failed to open dictionary file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		word, freq, ok := parseEntry(scanner.Text())
		if !ok || freq < l.minFreq {
			stats.Skipped++
			continue
		}
		t.InsertFrequency(word, freq)
		stats.Words++
		stats.MaxFrequency = max(stats.MaxFrequency, freq)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}

	l.mu.Lock()
	l.loaded[filepath.Base(path)] = stats
	l.mu.Unlock()
	l.log.Debugf("%s: %d words, %d skipped", filepath.Base(path), stats.Words, stats.Skipped)
	return stats, nil
}

// Loaded returns the names of the files loaded so far, sorted.
func (l *Loader) Loaded() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.loaded))
	for name := range l.loaded {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// parseEntry accepts "<word> <frequency>" or a bare word. Blank lines and
// "#" comments are rejected.
func parseEntry(line string) (string, int, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", 0, false
	}
	if word, freq, ok := radix.ParseLine(trimmed); ok && word != "" {
		return word, freq, true
	}
	if strings.ContainsAny(trimmed, " \t") {
		return "", 0, false
	}
	return trimmed, 1, true
}
