package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"thoreinstein.com/gitpr/pkg/branch"
	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/git"
)

// listCmd lists open pull requests.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open pull requests",
	Long: `List open pull requests, grouped by topic.

Refs are refreshed from the remote first, so the output reflects what your
collaborators see. Remote branches that don't follow the <topic>/<n> naming
convention are skipped.

Example output:
  hotfix: 0 2
  use-git-pr-tool: 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		if err := runList(newGitClient(cfg)); err != nil {
			fmt.Println(prerrors.FormatUserError(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(g git.Client) error {
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

	groups, skipped := branch.GroupNames(remoteBranches)
	warnSkipped(skipped)

	if len(groups) == 0 {
		fmt.Println("No open pull requests.")
		return nil
	}

	displayGroups(groups)
	return nil
}

// displayGroups prints one topic per line with every open index.
func displayGroups(groups []branch.Group) {
	for _, g := range groups {
		indices := make([]string, len(g.Indices))
		for i, index := range g.Indices {
			indices[i] = fmt.Sprintf("%d", index)
		}
		fmt.Printf("%s: %s\n", g.Topic, strings.Join(indices, " "))
	}
}
