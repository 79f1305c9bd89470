package git

import (
	"strings"

	prerrors "thoreinstein.com/gitpr/pkg/errors"
)

// CLIClient implements Client by shelling out to the git binary.
type CLIClient struct {
	binary  string // path to git; "git" resolves via PATH like a shell would
	remote  string // name of the shared remote, usually "origin"
	trunk   string // optional trunk override; empty means auto-detect
	verbose bool
	runner  CommandRunner
}

// Options configures a CLIClient. Zero values fall back to plain "git" and
// "origin".
type Options struct {
	Binary string
	Remote string
	Trunk  string
}

// NewClient creates a git client backed by the real git binary.
func NewClient(opts Options, verbose bool) *CLIClient {
	return NewClientWithRunner(opts, verbose, &RealCommandRunner{Verbose: verbose})
}

// NewClientWithRunner creates a git client with a custom CommandRunner (for testing).
func NewClientWithRunner(opts Options, verbose bool, runner CommandRunner) *CLIClient {
	binary := opts.Binary
	if binary == "" {
		binary = "git"
	}
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}
	return &CLIClient{
		binary:  binary,
		remote:  remote,
		trunk:   opts.Trunk,
		verbose: verbose,
		runner:  runner,
	}
}

// Remote returns the name of the shared remote this client talks to.
func (c *CLIClient) Remote() string {
	return c.remote
}

// Version reports the version of the underlying git binary. Surfacing this
// helps users debug unexpected behavior with very old versions of git.
func (c *CLIClient) Version() (string, error) {
	output, err := c.runner.Output("", c.binary, "--version")
	if err != nil {
		return "", prerrors.NewGitErrorWithCause("Version", "could not query git version", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// FetchPrune downloads the current branch list from the remote, cleaning up
// local references to any branches that have been deleted. This ensures the
// user sees the same set of open pull requests as their collaborators.
func (c *CLIClient) FetchPrune() error {
	if err := c.runner.Run("", c.binary, "fetch", "--prune", c.remote); err != nil {
		return prerrors.NewGitErrorWithCause("FetchPrune", "could not refresh refs from "+c.remote, err)
	}
	return nil
}

// RemoteBranches lists the branches on the remote, with the "<remote>/"
// prefix stripped. The symbolic "HEAD ->" entry is skipped.
func (c *CLIClient) RemoteBranches() ([]string, error) {
	output, err := c.runner.Output("", c.binary, "branch", "-r")
	if err != nil {
		return nil, prerrors.NewGitErrorWithCause("RemoteBranches", "could not list remote branches", err)
	}

	var branches []string
	prefix := c.remote + "/"
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "HEAD ->") {
			continue
		}
		if strings.HasPrefix(line, prefix) {
			branches = append(branches, strings.TrimPrefix(line, prefix))
		}
	}
	return branches, nil
}

// LocalBranches lists local branches. A line looks like "  branch/name" or
// "* branch/name"; the star marks the checked-out branch.
func (c *CLIClient) LocalBranches() ([]LocalBranch, error) {
	output, err := c.runner.Output("", c.binary, "branch")
	if err != nil {
		return nil, prerrors.NewGitErrorWithCause("LocalBranches", "could not list local branches", err)
	}
	return parseLocalBranches(string(output)), nil
}

func parseLocalBranches(output string) []LocalBranch {
	var branches []LocalBranch
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "*":
			if len(fields) > 1 {
				branches = append(branches, LocalBranch{Name: fields[1], Head: true})
			}
		default:
			branches = append(branches, LocalBranch{Name: fields[0]})
		}
	}
	return branches
}

// CreateBranch creates a local branch at HEAD.
func (c *CLIClient) CreateBranch(name string) error {
	if err := c.runner.Run("", c.binary, "branch", name); err != nil {
		return prerrors.NewGitErrorWithCause("CreateBranch", "could not create branch "+name, err)
	}
	return nil
}

// Checkout switches the working tree to the named branch.
func (c *CLIClient) Checkout(name string) error {
	if err := c.runner.Run("", c.binary, "checkout", name); err != nil {
		return prerrors.NewGitErrorWithCause("Checkout", "could not check out "+name, err)
	}
	return nil
}

// Push pushes the named branch to the remote and sets up tracking. There is
// deliberately no force flag: when two people allocate the same name from
// stale snapshots, the remote rejects the second push and the loser re-runs.
func (c *CLIClient) Push(name string) error {
	if err := c.runner.Run("", c.binary, "push", "--set-upstream", c.remote, name); err != nil {
		return prerrors.NewGitErrorWithCause("Push", "could not push "+name+" to "+c.remote, err)
	}
	return nil
}

// MergeFFOnly fast-forwards the current branch to the remote ref of name.
func (c *CLIClient) MergeFFOnly(name string) error {
	ref := c.remote + "/" + name
	if err := c.runner.Run("", c.binary, "merge", "--ff-only", ref); err != nil {
		return prerrors.NewGitErrorWithCause("Merge", "could not fast-forward to "+ref, err)
	}
	return nil
}

// DeleteLocalBranch deletes a local branch. With force, unmerged branches are
// deleted too (-D instead of -d).
func (c *CLIClient) DeleteLocalBranch(name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if err := c.runner.Run("", c.binary, "branch", flag, name); err != nil {
		return prerrors.NewGitErrorWithCause("DeleteLocalBranch", "could not delete local branch "+name, err)
	}
	return nil
}

// DeleteRemoteBranch deletes the named branch on the remote.
func (c *CLIClient) DeleteRemoteBranch(name string) error {
	if err := c.runner.Run("", c.binary, "push", c.remote, "--delete", name); err != nil {
		return prerrors.NewGitErrorWithCause("DeleteRemoteBranch", "could not delete "+name+" on "+c.remote, err)
	}
	return nil
}

// MergedBranches lists local branches already merged into trunk, excluding
// trunk itself and the checked-out branch.
func (c *CLIClient) MergedBranches(trunk string) ([]string, error) {
	output, err := c.runner.Output("", c.binary, "branch", "--merged", trunk)
	if err != nil {
		return nil, prerrors.NewGitErrorWithCause("MergedBranches", "could not list branches merged into "+trunk, err)
	}

	var merged []string
	for _, b := range parseLocalBranches(string(output)) {
		if b.Head || b.Name == trunk {
			continue
		}
		merged = append(merged, b.Name)
	}
	return merged, nil
}

// RevParseHead returns the abbreviated hash of HEAD.
func (c *CLIClient) RevParseHead() (string, error) {
	output, err := c.runner.Output("", c.binary, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", prerrors.NewGitErrorWithCause("RevParseHead", "could not resolve HEAD", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// DetectTrunk determines the shared mainline branch.
// Priority: configured override > remote symbolic HEAD > main > master.
func (c *CLIClient) DetectTrunk() (string, error) {
	if c.trunk != "" {
		return c.trunk, nil
	}

	// Ask the remote's symbolic HEAD first.
	output, err := c.runner.Output("", c.binary, "symbolic-ref", "refs/remotes/"+c.remote+"/HEAD")
	if err == nil {
		ref := strings.TrimSpace(string(output))
		prefix := "refs/remotes/" + c.remote + "/"
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix), nil
		}
	}

	// Fallback: common trunk names, local or remote.
	for _, name := range []string{"main", "master", "trunk"} {
		if c.branchExists(name) {
			return name, nil
		}
	}

	return "", prerrors.NewGitError("DetectTrunk", "could not determine the trunk branch; set git.trunk in the config")
}

// branchExists checks for the branch as a local head or on the remote.
func (c *CLIClient) branchExists(name string) bool {
	if err := c.runner.Run("", c.binary, "show-ref", "--verify", "--quiet", "refs/heads/"+name); err == nil {
		return true
	}
	err := c.runner.Run("", c.binary, "show-ref", "--verify", "--quiet", "refs/remotes/"+c.remote+"/"+name)
	return err == nil
}
