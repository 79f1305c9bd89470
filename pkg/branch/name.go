// Package branch implements the branch naming convention at the core of the
// pull-request workflow.
//
// A pull-request branch is named <topic>/<index>, where topic is a short
// user-chosen label and index is the lowest non-negative integer not already
// taken by another branch of the same topic. Everything in this package is a
// pure function over branch-name strings; creating, pushing, and deleting the
// actual refs is the git client's job (see pkg/git).
package branch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	prerrors "thoreinstein.com/gitpr/pkg/errors"
)

// indexRegex matches a base-10 index with no leading zeros ("0", "7", "42").
var indexRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// Name is a parsed pull-request branch name.
type Name struct {
	Topic string
	Index int
}

// String formats the name back into its branch-name form. For any valid input
// s, Parse(s).String() == s.
func (n Name) String() string {
	return fmt.Sprintf("%s/%d", n.Topic, n.Index)
}

// ValidateTopic checks that a topic can name a branch family: non-empty, no
// '/' (which would collide with the name separator), no whitespace.
func ValidateTopic(topic string) error {
	if topic == "" {
		return prerrors.NewInvalidTopicError(topic, "topic is empty")
	}
	if strings.Contains(topic, "/") {
		return prerrors.NewInvalidTopicError(topic, "topic contains '/'")
	}
	if strings.ContainsFunc(topic, isSpace) {
		return prerrors.NewInvalidTopicError(topic, "topic contains whitespace")
	}
	return nil
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Parse splits a branch name into its topic and index components.
//
// The grammar is strict: exactly one '/', a valid topic on the left, and a
// base-10 index with no leading zeros on the right. Anything else (trunk,
// third-party branches, nested names) fails with a ParseError so that callers
// can skip it.
func Parse(name string) (Name, error) {
	sep := strings.LastIndex(name, "/")
	if sep < 0 {
		return Name{}, prerrors.NewParseError(name, "missing '/' separator")
	}

	topic, index := name[:sep], name[sep+1:]
	if err := ValidateTopic(topic); err != nil {
		return Name{}, prerrors.NewParseError(name, "topic component is invalid")
	}
	if !indexRegex.MatchString(index) {
		return Name{}, prerrors.NewParseError(name, "index component is not a plain non-negative integer")
	}

	// The regex bounds the input to digits, so this only fails on overflow.
	n, err := strconv.Atoi(index)
	if err != nil {
		return Name{}, prerrors.NewParseError(name, "index component is out of range")
	}

	return Name{Topic: topic, Index: n}, nil
}
