package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// CommandRunner abstracts subprocess execution so git interactions can be
// tested against a mock instead of a real git binary.
type CommandRunner interface {
	// Run executes a command in dir, discarding stdout.
	Run(dir string, name string, args ...string) error

	// Output executes a command in dir and returns its stdout.
	Output(dir string, name string, args ...string) ([]byte, error)
}

// RealCommandRunner executes commands via os/exec.
type RealCommandRunner struct {
	Verbose bool
}

// Run executes the command, discarding stdout. On a non-zero exit the captured
// stderr is folded into the returned error so the git diagnostic isn't lost.
func (r *RealCommandRunner) Run(dir string, name string, args ...string) error {
	if r.Verbose {
		fmt.Printf("+ %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return wrapRunError(err, name, args, stderr.String())
	}
	return nil
}

// Output executes the command and returns its stdout.
func (r *RealCommandRunner) Output(dir string, name string, args ...string) ([]byte, error) {
	if r.Verbose {
		fmt.Printf("+ %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, wrapRunError(err, name, args, stderr.String())
	}
	return stdout.Bytes(), nil
}

func wrapRunError(err error, name string, args []string, stderr string) error {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		return errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}
	return errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), msg)
}
