// Package cli runs the interactive completion loop used for debugging and demos.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/bastiangx/wordkit/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	correctedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

var errQuit = errors.New("quit")

// Optional capabilities a completer may offer to the ':' commands.
type (
	matcher interface {
		Match(pattern string) []string
	}
	suffixer interface {
		EndingWith(suffix string) []string
	}
	saver interface {
		Save(path string) error
	}
)

// InputHandler reads prefixes from its input and prints ranked suggestions.
// Lines starting with ':' are commands, see ':help'.
type InputHandler struct {
	completer       suggest.ICompleter
	in              io.Reader
	log             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	onLimitChange   func(limit int) error
}

// Option configures an InputHandler.
type Option func(*InputHandler)

// WithInput replaces stdin.
func WithInput(r io.Reader) Option {
	return func(h *InputHandler) { h.in = r }
}

// WithLogger replaces the default logger used for output.
func WithLogger(l *log.Logger) Option {
	return func(h *InputHandler) { h.log = l }
}

// WithLimitHook is called after ':limit' changes the suggestion limit,
// typically to persist it.
func WithLimitHook(fn func(limit int) error) Option {
	return func(h *InputHandler) { h.onLimitChange = fn }
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool, opts ...Option) *InputHandler {
	h := &InputHandler{
		completer:       completer,
		in:              os.Stdin,
		log:             log.Default(),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start runs the loop until the input ends or ':quit' is entered.
func (h *InputHandler) Start() error {
	h.log.Print("wordkit CLI")
	h.log.Print("type a prefix and press Enter, ':help' lists commands (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		h.log.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if err := h.handleCommand(line[1:]); errors.Is(err, errQuit) {
				return nil
			} else if err != nil {
				h.log.Error(err)
			}
			continue
		}
		h.handleInput(line)
	}
}

// handleInput validates prefix and prints its suggestions.
func (h *InputHandler) handleInput(prefix string) {
	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		h.log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if n > h.maxPrefixLength {
		h.log.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter {
		if !utils.IsValidInput(prefix) {
			h.log.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
			return
		}
	} else {
		h.log.Debug("Input filtering disabled - allowing all inputs")
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	h.log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	if suggestions[0].WasCorrected {
		h.log.Printf("No completions for '%s', did you mean:", prefix)
		for i, s := range suggestions {
			h.log.Printf("%2d. %-30s (edits: %d, freq: %8s)", i+1, correctedStyle.Render(s.Word), s.Distance, utils.FormatWithCommas(s.Frequency))
		}
		return
	}

	h.log.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		h.log.Printf("%2d. %-40s (freq: %8s)", i+1, wordStyle.Render(s.Word), utils.FormatWithCommas(s.Frequency))
	}
}

func (h *InputHandler) handleCommand(line string) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return errQuit

	case "help":
		h.printHelp()

	case "add":
		word, freqArg, _ := strings.Cut(arg, " ")
		if word == "" {
			return errors.New("usage: :add <word> [frequency]")
		}
		freq := 1
		if freqArg != "" {
			n, err := strconv.Atoi(strings.TrimSpace(freqArg))
			if err != nil {
				return fmt.Errorf("invalid frequency %q: %w", freqArg, err)
			}
			freq = n
		}
		h.completer.AddWord(word, freq)
		h.log.Printf("Added '%s'", word)

	case "del":
		if arg == "" {
			return errors.New("usage: :del <word>")
		}
		if !h.completer.RemoveWord(arg) {
			return fmt.Errorf("unknown word '%s'", arg)
		}
		h.log.Printf("Removed '%s'", arg)

	case "match":
		m, ok := h.completer.(matcher)
		if !ok {
			return errors.New("completer does not support wildcard search")
		}
		h.printWords(fmt.Sprintf("pattern '%s'", arg), m.Match(arg))

	case "suffix":
		s, ok := h.completer.(suffixer)
		if !ok {
			return errors.New("completer does not support suffix search")
		}
		h.printWords(fmt.Sprintf("suffix '%s'", arg), s.EndingWith(arg))

	case "save":
		s, ok := h.completer.(saver)
		if !ok {
			return errors.New("completer cannot be saved")
		}
		if arg == "" {
			return errors.New("usage: :save <path>")
		}
		if err := s.Save(arg); err != nil {
			return err
		}
		h.log.Printf("Saved words to %s", arg)

	case "limit":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid limit %q", arg)
		}
		h.suggestLimit = n
		h.log.Printf("Limit set to %d", n)
		if h.onLimitChange != nil {
			return h.onLimitChange(n)
		}

	case "stats":
		stats := h.completer.Stats()
		for _, k := range slices.Sorted(maps.Keys(stats)) {
			h.log.Print(k, "value", utils.FormatWithCommas(stats[k]))
		}

	default:
		return fmt.Errorf("unknown command ':%s', try ':help'", name)
	}
	return nil
}

func (h *InputHandler) printWords(what string, words []string) {
	if len(words) == 0 {
		h.log.Warnf("No words match %s", what)
		return
	}
	shown := words
	if h.suggestLimit > 0 && len(shown) > h.suggestLimit {
		shown = shown[:h.suggestLimit]
	}
	h.log.Printf("%d words match %s:", len(words), what)
	for i, w := range shown {
		h.log.Printf("%2d. %s", i+1, wordStyle.Render(w))
	}
}

func (h *InputHandler) printHelp() {
	for _, line := range []string{
		":add <word> [freq]   add a word",
		":del <word>          remove a word",
		":match <pattern>     wildcard search, ? is one rune and * any run",
		":suffix <s>          words ending with s",
		":save <path>         write the word list",
		":limit <n>           change the suggestion limit",
		":stats               completer statistics",
		":quit                leave",
	} {
		h.log.Print(line)
	}
}
