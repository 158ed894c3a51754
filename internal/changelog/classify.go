package changelog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/relnote-dev/relnote/internal/git"
)

// Matcher extracts the announced package scope from a commit subject.
// A subject that does not follow the convention reports ok=false.
type Matcher interface {
	Scope(subject string) (scope string, ok bool)
}

// looseRe is the historic classifier pattern. The leading character class is
// kept as-is: it matches any subject whose type keyword ends in one of the
// letters f i x e a t directly before "(scope)", so "chore(card)" classifies
// while "docs(card)" does not. Published changelogs depend on this shape;
// the strict matcher carries the corrected alternation.
var looseRe = regexp.MustCompile(`[fix|feat]\(([0-9a-zA-Z_]*)\)`)

// strictRe accepts only the fix and feat type keywords.
var strictRe = regexp.MustCompile(`(fix|feat)\(([0-9a-zA-Z_]*)\)`)

type regexpMatcher struct {
	re    *regexp.Regexp
	group int
}

func (m *regexpMatcher) Scope(subject string) (string, bool) {
	groups := m.re.FindStringSubmatch(subject)
	if groups == nil {
		return "", false
	}
	return groups[m.group], true
}

var (
	looseMatcher  Matcher = &regexpMatcher{re: looseRe, group: 1}
	strictMatcher Matcher = &regexpMatcher{re: strictRe, group: 2}
)

// LooseMatcher returns the default commit-subject matcher.
func LooseMatcher() Matcher { return looseMatcher }

// StrictMatcher returns the matcher limited to fix and feat subjects.
func StrictMatcher() Matcher { return strictMatcher }

// MatcherFor resolves a convention name from configuration. The empty name
// selects the loose matcher.
func MatcherFor(name string) (Matcher, error) {
	switch name {
	case "", "loose":
		return LooseMatcher(), nil
	case "strict":
		return StrictMatcher(), nil
	default:
		return nil, fmt.Errorf("unknown commit convention %q (valid: loose, strict)", name)
	}
}

// Classifier selects the commits that announce changes for one package.
type Classifier struct {
	pkg     string
	matcher Matcher
}

// NewClassifier builds a classifier for the package name. A nil matcher
// selects the loose matcher.
func NewClassifier(pkg string, m Matcher) *Classifier {
	if m == nil {
		m = looseMatcher
	}
	return &Classifier{pkg: pkg, matcher: m}
}

// Classify returns the commits whose subject announces a change for the
// classifier's package, preserving input order. The scope comparison is
// case-insensitive. Duplicate hashes in the input, as produced by
// overlapping windows, are emitted once.
func (c *Classifier) Classify(commits []git.Commit) []git.Commit {
	seen := make(map[string]bool, len(commits))

	var matched []git.Commit
	for _, commit := range commits {
		scope, ok := c.matcher.Scope(commit.Subject)
		if !ok || !strings.EqualFold(scope, c.pkg) {
			continue
		}
		if seen[commit.Hash] {
			continue
		}
		seen[commit.Hash] = true
		matched = append(matched, commit)
	}
	return matched
}
