// Package git wraps the git command line program.
//
// If you think of git's CLI as a sort of API, then Client is our API client.
// It exposes only the operations the pull-request workflow needs, so that
// everything above it can be exercised against a mock. The remote's atomic
// ref creation is the one consistency guarantee the workflow leans on, and it
// lives entirely on the other side of this interface.
package git

// LocalBranch is one entry from the local branch list.
type LocalBranch struct {
	Name string
	Head bool // true when this branch is currently checked out
}

// Client is the contract between the pull-request commands and git.
type Client interface {
	// Version reports the version of the underlying git binary.
	Version() (string, error)

	// FetchPrune refreshes refs from the remote, dropping refs to branches
	// that have been deleted there.
	FetchPrune() error

	// RemoteBranches lists branch names on the remote, with the remote
	// prefix stripped.
	RemoteBranches() ([]string, error)

	// LocalBranches lists local branches, marking the checked-out one.
	LocalBranches() ([]LocalBranch, error)

	// CreateBranch creates a local branch at HEAD.
	CreateBranch(name string) error

	// Checkout switches the working tree to the named branch.
	Checkout(name string) error

	// Push pushes the named branch to the remote with upstream tracking.
	// It must not force: a rejected push is how duplicate allocations from
	// stale snapshots surface.
	Push(name string) error

	// MergeFFOnly fast-forwards the current branch to the remote ref of
	// the named branch. Fails rather than creating a merge commit.
	MergeFFOnly(name string) error

	// DeleteLocalBranch deletes a local branch. With force, unmerged
	// branches are deleted too.
	DeleteLocalBranch(name string, force bool) error

	// DeleteRemoteBranch deletes the named branch on the remote.
	DeleteRemoteBranch(name string) error

	// MergedBranches lists local branches already merged into trunk.
	MergedBranches(trunk string) ([]string, error)

	// RevParseHead returns the abbreviated hash of HEAD.
	RevParseHead() (string, error)

	// DetectTrunk determines the shared mainline branch.
	DetectTrunk() (string, error)
}
