package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/journal"
)

var logLimit int

// logCmd shows the local journal of pull-request operations.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent pull-request operations",
	Long: `Show the local journal of pull-request operations.

The journal records creates, accepts, and abandons made from this machine.
It is local history only; the remote's branch list is the source of truth
(see 'git-pr list').`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return prerrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		if !cfg.Journal.Enabled {
			fmt.Println("The journal is disabled (journal.enabled = false).")
			return nil
		}

		j, err := journal.Open(cfg.Journal.DatabasePath)
		if err != nil {
			return prerrors.Wrap(err, "failed to open journal")
		}
		defer j.Close()

		return runLog(j, logLimit)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "Maximum number of entries to show")
}

// journalReader is the read side of the journal.
type journalReader interface {
	Recent(limit int) ([]journal.Entry, error)
}

func runLog(j journalReader, limit int) error {
	entries, err := j.Recent(limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No recorded operations.")
		return nil
	}

	displayEntries(entries)
	return nil
}

// displayEntries formats and prints journal entries, newest first.
func displayEntries(entries []journal.Entry) {
	fmt.Printf("%-19s  %-9s  %-30s  %s\n", "WHEN", "ACTION", "BRANCH", "COMMIT")

	for _, e := range entries {
		commit := e.Commit
		if commit == "" {
			commit = "-"
		}
		fmt.Printf("%-19s  %-9s  %-30s  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Action,
			e.Branch,
			commit,
		)
	}

	fmt.Printf("\nTotal: %d operation(s)\n", len(entries))
}
