// Package errors provides typed errors for the git-pr project.
//
// This package defines domain-specific error types for the branch naming
// convention (invalid topics, unparseable branch names, ambiguous topics) and
// for failures surfaced by the underlying git binary. All error types
// implement the standard error interface and support errors.Is() and
// errors.As() from the standard library and cockroachdb/errors.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// InvalidTopicError indicates a topic string that cannot name a branch family.
type InvalidTopicError struct {
	Topic   string
	Message string
}

// Error implements the error interface.
func (e *InvalidTopicError) Error() string {
	return fmt.Sprintf("invalid topic %q: %s", e.Topic, e.Message)
}

// NewInvalidTopicError creates a new InvalidTopicError.
func NewInvalidTopicError(topic, message string) *InvalidTopicError {
	return &InvalidTopicError{Topic: topic, Message: message}
}

// ParseError indicates a branch name that does not match the topic/index grammar.
type ParseError struct {
	Input   string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse branch name %q: %s", e.Input, e.Message)
}

// NewParseError creates a new ParseError.
func NewParseError(input, message string) *ParseError {
	return &ParseError{Input: input, Message: message}
}

// AmbiguousTopicError indicates a bare topic that matches more than one open
// branch, so the caller must name an index explicitly.
type AmbiguousTopicError struct {
	Topic      string
	Candidates []string
}

// Error implements the error interface.
func (e *AmbiguousTopicError) Error() string {
	return fmt.Sprintf("topic %q is ambiguous: matches %s", e.Topic, strings.Join(e.Candidates, ", "))
}

// NewAmbiguousTopicError creates a new AmbiguousTopicError.
func NewAmbiguousTopicError(topic string, candidates []string) *AmbiguousTopicError {
	return &AmbiguousTopicError{Topic: topic, Candidates: candidates}
}

// GitError represents a failure surfaced from the underlying git binary:
// network failure, push rejection, merge conflict, missing refs.
type GitError struct {
	Operation string // e.g., "Push", "Merge", "FetchPrune"
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *GitError) Error() string {
	return fmt.Sprintf("git %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *GitError) Unwrap() error {
	return e.Cause
}

// NewGitError creates a new GitError.
func NewGitError(operation, message string) *GitError {
	return &GitError{Operation: operation, Message: message}
}

// NewGitErrorWithCause creates a new GitError with an underlying cause.
func NewGitErrorWithCause(operation, message string, cause error) *GitError {
	return &GitError{Operation: operation, Message: message, Cause: cause}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// IsInvalidTopicError checks if an error or any error in its chain is an InvalidTopicError.
func IsInvalidTopicError(err error) bool {
	var topicErr *InvalidTopicError
	return errors.As(err, &topicErr)
}

// IsParseError checks if an error or any error in its chain is a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsAmbiguousTopicError checks if an error or any error in its chain is an AmbiguousTopicError.
func IsAmbiguousTopicError(err error) bool {
	var ambErr *AmbiguousTopicError
	return errors.As(err, &ambErr)
}

// IsGitError checks if an error or any error in its chain is a GitError.
func IsGitError(err error) bool {
	var gitErr *GitError
	return errors.As(err, &gitErr)
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use prerrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
