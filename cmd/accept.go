package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/git"
	"thoreinstein.com/gitpr/pkg/journal"
)

// acceptCmd merges a pull request into the trunk and deletes its branch.
var acceptCmd = &cobra.Command{
	Use:   "accept <topic-or-name>",
	Short: "Accept a pull request",
	Long: `Accept a pull request: fast-forward the trunk to the branch, push the
trunk, and delete the branch locally and remotely.

The argument is either a full branch name (hotfix/0) or a bare topic. A bare
topic only resolves when exactly one index is open for it; otherwise the open
candidates are listed and you pick one.

The merge is fast-forward only. If the trunk has moved on since the branch was
cut, bring the branch up to date, push it, and re-run.

Examples:
  git-pr accept hotfix       # Unambiguous topic
  git-pr accept hotfix/2     # Explicit index`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		if err := runAccept(args[0], newGitClient(cfg), openJournal(cfg)); err != nil {
			fmt.Println(prerrors.FormatUserError(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(acceptCmd)
}

func runAccept(arg string, g git.Client, j journalWriter) error {
	if verbose {
		fmt.Println("Refreshing refs from the remote...")
	}
	if err := g.FetchPrune(); err != nil {
		return err
	}

	remoteBranches, err := g.RemoteBranches()
	if err != nil {
		return err
	}

	name, err := resolveBranch(arg, remoteBranches)
	if err != nil {
		return err
	}

	trunk, err := g.DetectTrunk()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Merging %s into %s...\n", name, trunk)
	}

	if err := g.Checkout(trunk); err != nil {
		return err
	}
	if err := g.MergeFFOnly(name.String()); err != nil {
		return err
	}
	if err := g.Push(trunk); err != nil {
		return err
	}

	if err := g.DeleteRemoteBranch(name.String()); err != nil {
		return err
	}
	if err := deleteLocalIfPresent(g, name.String()); err != nil {
		return err
	}

	commit, _ := g.RevParseHead()

	recordEntry(j, journal.Entry{
		Action: journal.ActionAccepted,
		Branch: name.String(),
		Topic:  name.Topic,
		Index:  name.Index,
		Commit: commit,
	})

	fmt.Printf("Accepted pull request %s into %s\n", name, trunk)
	return nil
}

// deleteLocalIfPresent deletes the local branch when one exists. Reviewers
// who never checked the branch out have nothing to delete.
func deleteLocalIfPresent(g git.Client, name string) error {
	locals, err := g.LocalBranches()
	if err != nil {
		return err
	}
	for _, b := range locals {
		if b.Name == name {
			return g.DeleteLocalBranch(name, false)
		}
	}
	return nil
}
