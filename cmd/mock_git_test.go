package cmd

import (
	"fmt"

	prerrors "thoreinstein.com/gitpr/pkg/errors"
	"thoreinstein.com/gitpr/pkg/git"
	"thoreinstein.com/gitpr/pkg/journal"
)

// mockGitClient is an in-memory stand-in for the git binary.
type mockGitClient struct {
	remoteBranches []string
	localBranches  []git.LocalBranch
	trunk          string
	head           string
	merged         []string

	// operations that should fail, e.g. "push hotfix/0"
	failing map[string]bool

	calls []string
}

func newMockGit() *mockGitClient {
	return &mockGitClient{
		trunk:   "trunk",
		head:    "abc1234",
		failing: make(map[string]bool),
	}
}

func (m *mockGitClient) record(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	m.calls = append(m.calls, call)
	if m.failing[call] {
		return prerrors.NewGitError("Mock", "forced failure: "+call)
	}
	return nil
}

func (m *mockGitClient) called(call string) bool {
	for _, c := range m.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (m *mockGitClient) Version() (string, error) {
	return "git version 2.43.0", m.record("version")
}

func (m *mockGitClient) FetchPrune() error {
	return m.record("fetch-prune")
}

func (m *mockGitClient) RemoteBranches() ([]string, error) {
	return m.remoteBranches, m.record("remote-branches")
}

func (m *mockGitClient) LocalBranches() ([]git.LocalBranch, error) {
	return m.localBranches, m.record("local-branches")
}

func (m *mockGitClient) CreateBranch(name string) error {
	return m.record("create %s", name)
}

func (m *mockGitClient) Checkout(name string) error {
	return m.record("checkout %s", name)
}

func (m *mockGitClient) Push(name string) error {
	return m.record("push %s", name)
}

func (m *mockGitClient) MergeFFOnly(name string) error {
	return m.record("merge %s", name)
}

func (m *mockGitClient) DeleteLocalBranch(name string, force bool) error {
	if force {
		return m.record("delete-local-force %s", name)
	}
	return m.record("delete-local %s", name)
}

func (m *mockGitClient) DeleteRemoteBranch(name string) error {
	return m.record("delete-remote %s", name)
}

func (m *mockGitClient) MergedBranches(trunk string) ([]string, error) {
	return m.merged, m.record("merged-branches %s", trunk)
}

func (m *mockGitClient) RevParseHead() (string, error) {
	return m.head, m.record("rev-parse-head")
}

func (m *mockGitClient) DetectTrunk() (string, error) {
	if err := m.record("detect-trunk"); err != nil {
		return "", err
	}
	return m.trunk, nil
}

// mockJournal collects entries in memory.
type mockJournal struct {
	entries []journal.Entry
	fail    bool
}

func (m *mockJournal) Record(e journal.Entry) error {
	if m.fail {
		return prerrors.New("journal closed")
	}
	m.entries = append(m.entries, e)
	return nil
}
