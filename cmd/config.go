package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"thoreinstein.com/gitpr/pkg/config"
	prerrors "thoreinstein.com/gitpr/pkg/errors"
)

// configCmd is the parent command for configuration operations.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage git-pr configuration",
}

// configInitCmd writes a starter configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a config file with the default settings to
~/.config/git-pr/config.toml (or the path given with --config).

Existing files are not overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cfgFile)
	},
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}
		return runConfigShow(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return prerrors.Wrap(err, "failed to get home directory")
		}
		path = filepath.Join(home, ".config", "git-pr", "config.toml")
	}

	if _, err := os.Stat(path); err == nil {
		return prerrors.Newf("config file already exists: %s", path)
	}

	data, err := toml.Marshal(config.Default())
	if err != nil {
		return prerrors.Wrap(err, "failed to encode default config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return prerrors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return prerrors.Wrapf(err, "failed to write %s", path)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cfg *config.Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return prerrors.Wrap(err, "failed to encode config")
	}
	fmt.Print(string(data))
	return nil
}
