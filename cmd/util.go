package cmd

import (
	"fmt"
	"os"
	"sort"

	"thoreinstein.com/gitpr/pkg/branch"
	"thoreinstein.com/gitpr/pkg/config"
	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/git"
	"thoreinstein.com/gitpr/pkg/journal"
)

// journalWriter is the slice of journal.Journal the commands need.
// A nil journalWriter means journaling is off.
type journalWriter interface {
	Record(journal.Entry) error
}

// newGitClient builds the git client from configuration.
func newGitClient(cfg *config.Config) git.Client {
	return git.NewClient(git.Options{
		Binary: cfg.Git.Binary,
		Remote: cfg.Git.Remote,
		Trunk:  cfg.Git.Trunk,
	}, verbose)
}

// openJournal opens the configured journal, or returns nil if the journal is
// disabled or unavailable. A broken journal never blocks a git operation.
func openJournal(cfg *config.Config) journalWriter {
	if !cfg.Journal.Enabled {
		return nil
	}
	j, err := journal.Open(cfg.Journal.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: journal unavailable: %v\n", err)
		return nil
	}
	return j
}

// recordEntry writes a journal entry best-effort.
func recordEntry(j journalWriter, e journal.Entry) {
	if j == nil {
		return
	}
	if err := j.Record(e); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record journal entry: %v\n", err)
	}
}

// resolveBranch turns a user-supplied argument into a pull-request branch name.
//
// A full topic/N name is parsed and checked against the open branches. A bare
// topic resolves only when exactly one index is open for it; more than one is
// an ambiguity the user must settle by naming the index.
func resolveBranch(arg string, remoteBranches []string) (branch.Name, error) {
	open := make(map[string][]branch.Name)
	for _, s := range remoteBranches {
		if name, err := branch.Parse(s); err == nil {
			open[name.Topic] = append(open[name.Topic], name)
		}
	}

	// Full branch name given?
	if name, err := branch.Parse(arg); err == nil {
		for _, candidate := range open[name.Topic] {
			if candidate == name {
				return name, nil
			}
		}
		return branch.Name{}, prerrors.Newf("branch %q does not exist on the remote", arg)
	}

	// Bare topic given.
	if err := branch.ValidateTopic(arg); err != nil {
		return branch.Name{}, err
	}

	candidates := open[arg]
	switch len(candidates) {
	case 0:
		return branch.Name{}, prerrors.Newf("no open pull request for topic %q", arg)
	case 1:
		return candidates[0], nil
	default:
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Index < candidates[j].Index })
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.String()
		}
		return branch.Name{}, prerrors.NewAmbiguousTopicError(arg, names)
	}
}

// warnSkipped reports branch names that don't follow the naming convention.
// Third parties may push unrelated branches; they are skipped, not fatal.
func warnSkipped(skipped []string) {
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: ignoring branch %q: not a pull-request name\n", s)
	}
}
