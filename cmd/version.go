package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	prerrors "thoreinstein.com/gitpr/pkg/errors"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// versionCmd reports the tool version and the underlying git version.
// Showing git's version helps debug unexpected behavior with very old gits.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("git-pr %s\n", Version)

		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		gitVersion, err := newGitClient(cfg).Version()
		if err != nil {
			fmt.Println(prerrors.FormatUserError(err))
			return err
		}
		fmt.Println(gitVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
