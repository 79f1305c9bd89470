package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thoreinstein.com/gitpr/pkg/branch"
	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/git"
	"thoreinstein.com/gitpr/pkg/journal"
)

// createCmd opens a new pull request.
var createCmd = &cobra.Command{
	Use:   "create <topic>",
	Short: "Open a pull request branch",
	Long: `Open a pull request for a topic.

The next unused branch name for the topic is allocated (<topic>/<n>, lowest
unused n), created at HEAD, checked out, and pushed to the shared remote.

If the push is rejected because someone else claimed the same name first,
re-run the command: allocation always works from a fresh snapshot of the
remote.

Examples:
  git-pr create hotfix       # First PR for the topic -> hotfix/0
  git-pr create hotfix       # Next one -> hotfix/1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		if err := runCreate(args[0], newGitClient(cfg), openJournal(cfg)); err != nil {
			fmt.Println(prerrors.FormatUserError(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(topic string, g git.Client, j journalWriter) error {
	// Reject bad topics before touching the network.
	if err := branch.ValidateTopic(topic); err != nil {
		return err
	}

	if verbose {
		fmt.Println("Refreshing refs from the remote...")
	}
	if err := g.FetchPrune(); err != nil {
		return err
	}

	// Snapshot every known branch name, local and remote. Allocation is a
	// pure function over this snapshot.
	remoteBranches, err := g.RemoteBranches()
	if err != nil {
		return err
	}
	localBranches, err := g.LocalBranches()
	if err != nil {
		return err
	}

	existing := make([]string, 0, len(remoteBranches)+len(localBranches))
	existing = append(existing, remoteBranches...)
	for _, b := range localBranches {
		existing = append(existing, b.Name)
	}

	name, err := branch.Allocate(topic, existing)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Allocated branch name: %s\n", name)
	}

	if err := g.CreateBranch(name.String()); err != nil {
		return err
	}
	if err := g.Checkout(name.String()); err != nil {
		return err
	}
	if err := g.Push(name.String()); err != nil {
		return err
	}

	// The commit hash is only for the journal; ignore failures.
	commit, _ := g.RevParseHead()

	recordEntry(j, journal.Entry{
		Action: journal.ActionCreated,
		Branch: name.String(),
		Topic:  name.Topic,
		Index:  name.Index,
		Commit: commit,
	})

	fmt.Printf("Created pull request %s\n", name)
	return nil
}
