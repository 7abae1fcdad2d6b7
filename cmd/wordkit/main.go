// Copyright 2025 The WordKit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs an interactive word completion shell over the wordkit
libraries.

Words are loaded from plain text dictionaries into a radix trie and ranked by
frequency. Prefixes without completions fall back to fuzzy matches.

# Usage

Load the word lists from ./data and start typing prefixes:

	wordkit

Use another dictionary dir with debug logging:

	wordkit -dict /path/to/lists -d

Dictionary files hold one entry per line, either "<word> <frequency>" or a
bare word counting once. Lines starting with '#' are comments.

# Configuration

Settings live in a TOML file, created with defaults on first run:

	[trie]
	case_sensitive = false
	max_edit_distance = 1

	[skiplist]
	max_level = 16

	[dict]
	dir = "data"
	pattern = "*.txt"
	min_frequency = 1

	[cli]
	default_limit = 10
	default_min_len = 1
	default_max_len = 24
	default_no_filter = false

Flags given on the command line win over the file.

# Commands

Lines starting with ':' are commands; ':help' lists them. ':limit' changes the
suggestion limit and writes it back to the config file.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordkit/internal/cli"
	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/bastiangx/wordkit/pkg/config"
	"github.com/bastiangx/wordkit/pkg/dictionary"
	"github.com/bastiangx/wordkit/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const Version = "0.1.0"

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config file (default: user config dir)")
	rebuildConfig := flag.Bool("rebuild-config", false, "Rewrite the default config file and exit")
	dictDir := flag.String("dict", defaults.Dict.Dir, "Directory containing the dictionary files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaults.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 <= n <= prmax)")
	maxPrefix := flag.Int("prmax", defaults.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaults.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Print("Config rebuilt", "path", path)
		return
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	// explicit flags win over the file
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["dict"] {
		cfg.Dict.Dir = *dictDir
	}
	if set["limit"] {
		cfg.CLI.DefaultLimit = *limit
	}
	if set["prmin"] {
		cfg.CLI.DefaultMinLen = *minPrefix
	}
	if set["prmax"] {
		cfg.CLI.DefaultMaxLen = *maxPrefix
	}
	if set["no-filter"] {
		cfg.CLI.DefaultNoFilter = *noFilter
	}
	cfg.Validate()

	dataDir := utils.ResolveDataDir(cfg.Dict.Dir)
	log.Debugf("Using dictionary dir at: %s", dataDir)

	loader := dictionary.NewLoader(dataDir, cfg.Dict.Pattern,
		dictionary.WithMinFrequency(cfg.Dict.MinFrequency))
	completer := suggest.NewCompleter(
		suggest.WithCaseSensitive(cfg.Trie.CaseSensitive),
		suggest.WithMaxEditDistance(cfg.Trie.MaxEditDistance),
		suggest.WithMaxLevel(cfg.SkipList.MaxLevel),
		suggest.WithLoader(loader),
	)
	if err := completer.Initialize(); err != nil {
		log.Warnf("Failed to load dictionaries: %v", err)
		log.Warn("Running with an empty dictionary, use ':add' to insert words")
	} else {
		log.Debug("Completer init done", "words", completer.Stats()["totalWords"])
	}

	log.SetReportTimestamp(false)
	log.Debug("Input info:",
		"minPrefix", cfg.CLI.DefaultMinLen,
		"maxPrefix", cfg.CLI.DefaultMaxLen,
		"limit", cfg.CLI.DefaultLimit,
		"noFilter", cfg.CLI.DefaultNoFilter)

	var opts []cli.Option
	if activePath != "" {
		opts = append(opts, cli.WithLimitHook(func(n int) error {
			return cfg.Update(activePath, &n, nil, nil, nil)
		}))
	}
	inputHandler := cli.NewInputHandler(completer,
		cfg.CLI.DefaultMinLen, cfg.CLI.DefaultMaxLen, cfg.CLI.DefaultLimit, cfg.CLI.DefaultNoFilter, opts...)
	if err := inputHandler.Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordkit ] radix trie and skip list word tools")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}
