package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"thoreinstein.com/gitpr/pkg/branch"
	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/git"
	"thoreinstein.com/gitpr/pkg/journal"
)

// abandonCmd deletes a pull request without merging it.
var abandonCmd = &cobra.Command{
	Use:   "abandon <topic-or-name>",
	Short: "Abandon a pull request without merging",
	Long: `Delete a pull request's branches, remotely and locally, without merging.

Given a full branch name, only that branch is deleted. Given a bare topic,
every open index for the topic is deleted. Deletion keeps going past
individual failures and reports a non-zero exit if any occurred.

Examples:
  git-pr abandon bad-idea      # Drop every bad-idea/N
  git-pr abandon bad-idea/1    # Drop just one`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		if err := runAbandon(args[0], newGitClient(cfg), openJournal(cfg)); err != nil {
			fmt.Println(prerrors.FormatUserError(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(abandonCmd)
}

func runAbandon(arg string, g git.Client, j journalWriter) error {
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

	targets, err := abandonTargets(arg, remoteBranches)
	if err != nil {
		return err
	}

	var failed bool

	// Remote branches first so collaborators stop seeing the PR, then local
	// leftovers. Partial failure is reported but doesn't stop the rest.
	for _, name := range targets {
		if err := g.DeleteRemoteBranch(name.String()); err != nil {
			fmt.Fprintln(os.Stderr, prerrors.FormatUserError(err))
			failed = true
			continue
		}
		recordEntry(j, journal.Entry{
			Action: journal.ActionAbandoned,
			Branch: name.String(),
			Topic:  name.Topic,
			Index:  name.Index,
		})
		fmt.Printf("Abandoned pull request %s\n", name)
	}

	locals, err := g.LocalBranches()
	if err != nil {
		return err
	}
	for _, name := range targets {
		for _, b := range locals {
			if b.Name != name.String() {
				continue
			}
			// The branch was never merged; -D is required.
			if err := g.DeleteLocalBranch(name.String(), true); err != nil {
				fmt.Fprintln(os.Stderr, prerrors.FormatUserError(err))
				failed = true
			}
		}
	}

	if failed {
		return prerrors.New("some branches could not be deleted")
	}
	return nil
}

// abandonTargets resolves the argument to the branches to delete. Unlike
// accept, a bare topic matching several indices is not ambiguous here: all of
// them are abandoned.
func abandonTargets(arg string, remoteBranches []string) ([]branch.Name, error) {
	if name, err := branch.Parse(arg); err == nil {
		for _, s := range remoteBranches {
			if s == arg {
				return []branch.Name{name}, nil
			}
		}
		return nil, prerrors.Newf("branch %q does not exist on the remote", arg)
	}

	if err := branch.ValidateTopic(arg); err != nil {
		return nil, err
	}

	var targets []branch.Name
	for _, s := range remoteBranches {
		if name, err := branch.Parse(s); err == nil && name.Topic == arg {
			targets = append(targets, name)
		}
	}
	if len(targets) == 0 {
		return nil, prerrors.Newf("no open pull request for topic %q", arg)
	}
	return targets, nil
}
