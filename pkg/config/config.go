/*
Package config manages the TOML configuration for wordkit tools.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/bastiangx/wordkit/pkg/skiplist"
	"github.com/charmbracelet/log"
)

const appName = "wordkit"

// Config holds the entire config structure
type Config struct {
	Trie     TrieConfig     `toml:"trie"`
	SkipList SkipListConfig `toml:"skiplist"`
	Dict     DictConfig     `toml:"dict"`
	CLI      CliConfig      `toml:"cli"`
}

// TrieConfig controls the radix trie behind completions.
type TrieConfig struct {
	CaseSensitive   bool `toml:"case_sensitive"`
	MaxEditDistance int  `toml:"max_edit_distance"`
}

// SkipListConfig controls the ranking skip list.
type SkipListConfig struct {
	MaxLevel int `toml:"max_level"`
}

// DictConfig points at the word lists to load.
type DictConfig struct {
	Dir          string `toml:"dir"`
	Pattern      string `toml:"pattern"`
	MinFrequency int    `toml:"min_frequency"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordkit
// 2. ~/Library/Application Support/wordkit (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordkit/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Trie: TrieConfig{
			CaseSensitive:   false,
			MaxEditDistance: 1,
		},
		SkipList: SkipListConfig{
			MaxLevel: skiplist.DefaultMaxLevel,
		},
		Dict: DictConfig{
			Dir:          "data",
			Pattern:      "*.txt",
			MinFrequency: 1,
		},
		CLI: CliConfig{
			DefaultLimit:    10,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// Validate replaces out of range values with defaults and logs each fix.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Trie.MaxEditDistance < 0 {
		log.Warnf("trie.max_edit_distance %d is negative, using %d", c.Trie.MaxEditDistance, def.Trie.MaxEditDistance)
		c.Trie.MaxEditDistance = def.Trie.MaxEditDistance
	}
	if c.SkipList.MaxLevel < 0 || c.SkipList.MaxLevel > 32 {
		log.Warnf("skiplist.max_level %d outside [0, 32], using %d", c.SkipList.MaxLevel, def.SkipList.MaxLevel)
		c.SkipList.MaxLevel = def.SkipList.MaxLevel
	}
	if c.Dict.Pattern == "" {
		c.Dict.Pattern = def.Dict.Pattern
	}
	if c.Dict.MinFrequency < 0 {
		log.Warnf("dict.min_frequency %d is negative, using %d", c.Dict.MinFrequency, def.Dict.MinFrequency)
		c.Dict.MinFrequency = def.Dict.MinFrequency
	}
	if c.CLI.DefaultLimit <= 0 {
		log.Warnf("cli.default_limit %d must be positive, using %d", c.CLI.DefaultLimit, def.CLI.DefaultLimit)
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
	if c.CLI.DefaultMinLen < 1 {
		c.CLI.DefaultMinLen = def.CLI.DefaultMinLen
	}
	if c.CLI.DefaultMaxLen < c.CLI.DefaultMinLen {
		log.Warnf("cli.default_max_len %d below default_min_len %d, using %d", c.CLI.DefaultMaxLen, c.CLI.DefaultMinLen, def.CLI.DefaultMaxLen)
		c.CLI.DefaultMaxLen = max(def.CLI.DefaultMaxLen, c.CLI.DefaultMinLen)
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a file with syntax errors falls back to per-section recovery.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "trie"); ok {
		extractTrieConfig(section, &config.Trie)
	}
	if section, ok := utils.ExtractSection(tempConfig, "skiplist"); ok {
		if val, ok := utils.ExtractInt(section, "max_level"); ok {
			config.SkipList.MaxLevel = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.Validate()
	return config, nil
}

func extractTrieConfig(data map[string]any, trie *TrieConfig) {
	if val, ok := utils.ExtractBool(data, "case_sensitive"); ok {
		trie.CaseSensitive = val
	}
	if val, ok := utils.ExtractInt(data, "max_edit_distance"); ok {
		trie.MaxEditDistance = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		dict.Dir = val
	}
	if val, ok := utils.ExtractString(data, "pattern"); ok {
		dict.Pattern = val
	}
	if val, ok := utils.ExtractInt(data, "min_frequency"); ok {
		dict.MinFrequency = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path.
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the cli defaults and saves to file. Nil arguments are left alone.
func (c *Config) Update(configPath string, limit, minLen, maxLen *int, noFilter *bool) error {
	cli := &c.CLI
	if limit != nil {
		cli.DefaultLimit = *limit
	}
	if minLen != nil {
		cli.DefaultMinLen = *minLen
	}
	if maxLen != nil {
		cli.DefaultMaxLen = *maxLen
	}
	if noFilter != nil {
		cli.DefaultNoFilter = *noFilter
	}
	c.Validate()
	return SaveConfig(c, configPath)
}
