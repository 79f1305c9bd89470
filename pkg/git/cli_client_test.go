package git

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

// mockCommandRunner records invocations and serves canned responses, playing
// the role of the git binary.
type mockCommandRunner struct {
	calls   []string
	outputs map[string]string // command line -> stdout
	failing map[string]bool   // command lines that exit non-zero
}

func newMockRunner() *mockCommandRunner {
	return &mockCommandRunner{
		outputs: make(map[string]string),
		failing: make(map[string]bool),
	}
}

func (m *mockCommandRunner) commandLine(name string, args ...string) string {
	return name + " " + strings.Join(args, " ")
}

func (m *mockCommandRunner) Run(dir string, name string, args ...string) error {
	line := m.commandLine(name, args...)
	m.calls = append(m.calls, line)
	if m.failing[line] {
		return errors.Newf("exit status 1: %s", line)
	}
	return nil
}

func (m *mockCommandRunner) Output(dir string, name string, args ...string) ([]byte, error) {
	line := m.commandLine(name, args...)
	m.calls = append(m.calls, line)
	if m.failing[line] {
		return nil, errors.Newf("exit status 1: %s", line)
	}
	return []byte(m.outputs[line]), nil
}

func (m *mockCommandRunner) called(line string) bool {
	for _, c := range m.calls {
		if c == line {
			return true
		}
	}
	return false
}

func newTestClient(runner CommandRunner) *CLIClient {
	return NewClientWithRunner(Options{}, false, runner)
}

func TestRemoteBranches(t *testing.T) {
	runner := newMockRunner()
	runner.outputs["git branch -r"] = `  origin/HEAD -> origin/main
  origin/main
  origin/hotfix/0
  origin/use-git-pr-tool/3
  upstream/other-remote-branch
`

	branches, err := newTestClient(runner).RemoteBranches()
	if err != nil {
		t.Fatalf("RemoteBranches() unexpected error: %v", err)
	}

	want := []string{"main", "hotfix/0", "use-git-pr-tool/3"}
	if len(branches) != len(want) {
		t.Fatalf("RemoteBranches() = %v, want %v", branches, want)
	}
	for i := range want {
		if branches[i] != want[i] {
			t.Errorf("RemoteBranches()[%d] = %q, want %q", i, branches[i], want[i])
		}
	}
}

func TestLocalBranches(t *testing.T) {
	runner := newMockRunner()
	runner.outputs["git branch"] = `  hotfix/0
* trunk
  other/branch/123abc
`

	branches, err := newTestClient(runner).LocalBranches()
	if err != nil {
		t.Fatalf("LocalBranches() unexpected error: %v", err)
	}

	want := []LocalBranch{
		{Name: "hotfix/0"},
		{Name: "trunk", Head: true},
		{Name: "other/branch/123abc"},
	}
	if len(branches) != len(want) {
		t.Fatalf("LocalBranches() = %v, want %v", branches, want)
	}
	for i := range want {
		if branches[i] != want[i] {
			t.Errorf("LocalBranches()[%d] = %+v, want %+v", i, branches[i], want[i])
		}
	}
}

func TestPushUsesConfiguredRemote(t *testing.T) {
	runner := newMockRunner()
	client := NewClientWithRunner(Options{Remote: "shared"}, false, runner)

	if err := client.Push("hotfix/0"); err != nil {
		t.Fatalf("Push() unexpected error: %v", err)
	}
	if !runner.called("git push --set-upstream shared hotfix/0") {
		t.Errorf("Push() did not push to the configured remote; calls: %v", runner.calls)
	}
}

func TestPushRejectionSurfacesAsGitError(t *testing.T) {
	runner := newMockRunner()
	runner.failing["git push --set-upstream origin hotfix/0"] = true

	err := newTestClient(runner).Push("hotfix/0")
	if err == nil {
		t.Fatal("Push() expected an error for a rejected push")
	}
	if !strings.Contains(err.Error(), "Push") {
		t.Errorf("Push() error = %v, want a git Push error", err)
	}
}

func TestMergeFFOnlyTargetsRemoteRef(t *testing.T) {
	runner := newMockRunner()

	if err := newTestClient(runner).MergeFFOnly("hotfix/0"); err != nil {
		t.Fatalf("MergeFFOnly() unexpected error: %v", err)
	}
	if !runner.called("git merge --ff-only origin/hotfix/0") {
		t.Errorf("MergeFFOnly() wrong invocation; calls: %v", runner.calls)
	}
}

func TestDeleteLocalBranch(t *testing.T) {
	runner := newMockRunner()
	client := newTestClient(runner)

	if err := client.DeleteLocalBranch("hotfix/0", false); err != nil {
		t.Fatalf("DeleteLocalBranch() unexpected error: %v", err)
	}
	if !runner.called("git branch -d hotfix/0") {
		t.Errorf("DeleteLocalBranch() should use -d; calls: %v", runner.calls)
	}

	if err := client.DeleteLocalBranch("hotfix/0", true); err != nil {
		t.Fatalf("DeleteLocalBranch(force) unexpected error: %v", err)
	}
	if !runner.called("git branch -D hotfix/0") {
		t.Errorf("DeleteLocalBranch(force) should use -D; calls: %v", runner.calls)
	}
}

func TestDeleteRemoteBranch(t *testing.T) {
	runner := newMockRunner()

	if err := newTestClient(runner).DeleteRemoteBranch("hotfix/0"); err != nil {
		t.Fatalf("DeleteRemoteBranch() unexpected error: %v", err)
	}
	if !runner.called("git push origin --delete hotfix/0") {
		t.Errorf("DeleteRemoteBranch() wrong invocation; calls: %v", runner.calls)
	}
}

func TestMergedBranchesExcludesTrunkAndHead(t *testing.T) {
	runner := newMockRunner()
	runner.outputs["git branch --merged trunk"] = `  hotfix/0
  new-idea/1
* current-work
  trunk
`

	merged, err := newTestClient(runner).MergedBranches("trunk")
	if err != nil {
		t.Fatalf("MergedBranches() unexpected error: %v", err)
	}

	want := []string{"hotfix/0", "new-idea/1"}
	if len(merged) != len(want) {
		t.Fatalf("MergedBranches() = %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("MergedBranches()[%d] = %q, want %q", i, merged[i], want[i])
		}
	}
}

func TestDetectTrunk(t *testing.T) {
	t.Run("configured override wins", func(t *testing.T) {
		runner := newMockRunner()
		client := NewClientWithRunner(Options{Trunk: "develop"}, false, runner)

		trunk, err := client.DetectTrunk()
		if err != nil {
			t.Fatalf("DetectTrunk() unexpected error: %v", err)
		}
		if trunk != "develop" {
			t.Errorf("DetectTrunk() = %q, want %q", trunk, "develop")
		}
		if len(runner.calls) != 0 {
			t.Errorf("DetectTrunk() should not touch git when configured; calls: %v", runner.calls)
		}
	})

	t.Run("remote symbolic HEAD", func(t *testing.T) {
		runner := newMockRunner()
		runner.outputs["git symbolic-ref refs/remotes/origin/HEAD"] = "refs/remotes/origin/main\n"

		trunk, err := newTestClient(runner).DetectTrunk()
		if err != nil {
			t.Fatalf("DetectTrunk() unexpected error: %v", err)
		}
		if trunk != "main" {
			t.Errorf("DetectTrunk() = %q, want %q", trunk, "main")
		}
	})

	t.Run("falls back to master", func(t *testing.T) {
		runner := newMockRunner()
		runner.failing["git symbolic-ref refs/remotes/origin/HEAD"] = true
		runner.failing["git show-ref --verify --quiet refs/heads/main"] = true
		runner.failing["git show-ref --verify --quiet refs/remotes/origin/main"] = true

		trunk, err := newTestClient(runner).DetectTrunk()
		if err != nil {
			t.Fatalf("DetectTrunk() unexpected error: %v", err)
		}
		if trunk != "master" {
			t.Errorf("DetectTrunk() = %q, want %q", trunk, "master")
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		runner := newMockRunner()
		runner.failing["git symbolic-ref refs/remotes/origin/HEAD"] = true
		for _, name := range []string{"main", "master", "trunk"} {
			runner.failing["git show-ref --verify --quiet refs/heads/"+name] = true
			runner.failing["git show-ref --verify --quiet refs/remotes/origin/"+name] = true
		}

		if _, err := newTestClient(runner).DetectTrunk(); err == nil {
			t.Error("DetectTrunk() expected an error when no trunk candidate exists")
		}
	})
}

func TestVersion(t *testing.T) {
	runner := newMockRunner()
	runner.outputs["git --version"] = "git version 2.43.0\n"

	version, err := newTestClient(runner).Version()
	if err != nil {
		t.Fatalf("Version() unexpected error: %v", err)
	}
	if version != "git version 2.43.0" {
		t.Errorf("Version() = %q, want %q", version, "git version 2.43.0")
	}
}
