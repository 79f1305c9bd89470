package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/git"
)

var cleanYes bool

// cleanCmd removes local branches that have been merged into the trunk.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete local branches merged into the trunk",
	Long: `Delete local branches that have already been merged into the trunk.

Accepted pull requests leave merged local branches behind on the author's
machine; this sweeps them up. The trunk and the checked-out branch are never
touched. When running interactively, the list is shown and confirmed first.

Examples:
  git-pr clean           # Confirm before deleting
  git-pr clean --yes     # Skip the confirmation`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		if err := runClean(newGitClient(cfg), cleanYes, confirmOnTerminal); err != nil {
			fmt.Println(prerrors.FormatUserError(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Delete without confirmation")
}

func runClean(g git.Client, yes bool, confirm func([]string) bool) error {
	trunk, err := g.DetectTrunk()
	if err != nil {
		return err
	}

	merged, err := g.MergedBranches(trunk)
	if err != nil {
		return err
	}

	if len(merged) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	if !yes && !confirm(merged) {
		fmt.Println("Aborted.")
		return nil
	}

	for _, name := range merged {
		if err := g.DeleteLocalBranch(name, false); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", name)
	}
	return nil
}

// confirmOnTerminal asks the user to confirm the deletion list. Without a
// terminal on stdin there is nobody to ask, so it declines and the user
// re-runs with --yes.
func confirmOnTerminal(branches []string) bool {
	fmt.Println("The following local branches are merged into the trunk:")
	for _, b := range branches {
		fmt.Printf("  %s\n", b)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("Not a terminal; re-run with --yes to delete.")
		return false
	}

	fmt.Print("Delete them? [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
