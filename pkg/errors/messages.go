package errors

import (
	"fmt"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	// Check for InvalidTopicError
	var topicErr *InvalidTopicError
	if As(err, &topicErr) {
		return formatInvalidTopicError(topicErr)
	}

	// Check for AmbiguousTopicError
	var ambErr *AmbiguousTopicError
	if As(err, &ambErr) {
		return formatAmbiguousTopicError(ambErr)
	}

	// Check for GitError
	var gitErr *GitError
	if As(err, &gitErr) {
		return formatGitError(gitErr)
	}

	// Check for ConfigError
	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatInvalidTopicError formats an InvalidTopicError with the naming rules.
func formatInvalidTopicError(err *InvalidTopicError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invalid topic %q: %s\n", err.Topic, err.Message)
	b.WriteString("\nTopic names must be non-empty and contain no '/' or whitespace.\n")
	b.WriteString("Example: git-pr create hotfix\n")

	return b.String()
}

// formatAmbiguousTopicError formats an AmbiguousTopicError listing the candidates.
func formatAmbiguousTopicError(err *AmbiguousTopicError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic %q matches more than one open branch:\n", err.Topic)
	for _, c := range err.Candidates {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	b.WriteString("\nRe-run with the full branch name, e.g.:\n")
	if len(err.Candidates) > 0 {
		fmt.Fprintf(&b, "  git-pr accept %s\n", err.Candidates[0])
	}

	return b.String()
}

// formatGitError formats a GitError with guidance based on the failed operation.
func formatGitError(err *GitError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Git error during %s: %s\n", err.Operation, err.Message)

	switch err.Operation {
	case "Push":
		b.WriteString("\nIf the push was rejected because the ref already exists, someone\n")
		b.WriteString("else claimed the same branch name. Re-run the command to allocate\n")
		b.WriteString("against a fresh snapshot of the remote.\n")
	case "Merge":
		b.WriteString("\nThe branch could not be fast-forwarded into the trunk. Bring the\n")
		b.WriteString("branch up to date with the trunk, push it, and re-run.\n")
	case "FetchPrune":
		b.WriteString("\nCould not refresh refs from the remote. Check your network\n")
		b.WriteString("connection and remote configuration, then re-run.\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/git-pr/config.toml\n")
	b.WriteString("  • Run 'git-pr config init' to write a fresh one\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
