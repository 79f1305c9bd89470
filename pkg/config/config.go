package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
// Repository information is derived from git, not configuration.
type Config struct {
	Git     GitConfig     `mapstructure:"git" toml:"git"`
	Journal JournalConfig `mapstructure:"journal" toml:"journal"`
}

// GitConfig holds settings for the underlying git binary.
type GitConfig struct {
	Binary string `mapstructure:"binary" toml:"binary"` // Path to git (default: "git")
	Remote string `mapstructure:"remote" toml:"remote"` // Shared remote name (default: "origin")
	Trunk  string `mapstructure:"trunk" toml:"trunk"`   // Optional trunk override; empty means auto-detect
}

// JournalConfig holds settings for the local operation journal.
type JournalConfig struct {
	Enabled      bool   `mapstructure:"enabled" toml:"enabled"`
	DatabasePath string `mapstructure:"database_path" toml:"database_path"`
}

// Load loads the configuration from file and environment variables.
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Expand paths
	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// Default returns the configuration that applies when no file or environment
// overrides exist. Used by 'git-pr config init' to write a starter file.
func Default() *Config {
	return &Config{
		Git: GitConfig{
			Binary: "git",
			Remote: "origin",
		},
		Journal: JournalConfig{
			Enabled:      true,
			DatabasePath: defaultJournalPath(),
		},
	}
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if c.Git.Binary == "" {
		return errors.New("git.binary must not be empty")
	}
	if c.Git.Remote == "" {
		return errors.New("git.remote must not be empty")
	}
	if strings.ContainsAny(c.Git.Remote, " \t") {
		return errors.Newf("git.remote %q must not contain whitespace", c.Git.Remote)
	}
	if c.Journal.Enabled && c.Journal.DatabasePath == "" {
		return errors.New("journal.database_path must be set when the journal is enabled")
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("git.binary", "git")
	viper.SetDefault("git.remote", "origin")
	viper.SetDefault("git.trunk", "")

	viper.SetDefault("journal.enabled", true)
	viper.SetDefault("journal.database_path", defaultJournalPath())
}

func defaultJournalPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home dir can't be determined
		homeDir = "."
	}
	return filepath.Join(homeDir, ".local", "share", "git-pr", "journal.db")
}

// expandPaths expands a leading ~ in configured paths.
func expandPaths(config *Config) error {
	expanded, err := expandTilde(config.Journal.DatabasePath)
	if err != nil {
		return err
	}
	config.Journal.DatabasePath = expanded
	return nil
}

func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
