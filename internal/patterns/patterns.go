// Package patterns compiles the configured regular expressions once and
// answers the questions the hook asks of them: is the branch ignored, is the
// subject magic, which issue key does the branch carry, and does a merge
// subject name that key as its destination.
package patterns

import (
	"fmt"
	"regexp"

	"go.uber.org/multierr"
)

const (
	// DefaultIssuePattern drops any slash-delimited prefix (origin/, refs/heads/,
	// feature/ ...) and captures a trailing TOKEN-123 key, ignoring whatever
	// description follows it.
	DefaultIssuePattern = `^(?:.*/)*(.+?\-\d+).*`

	// DefaultMergePattern matches the destination phrasing of git's generated
	// merge subjects. The quoted issue key is appended at use time.
	DefaultMergePattern = `^Merge .* into `
)

// Sources holds the raw pattern strings as configured
type Sources struct {
	Issue  string
	Merge  string
	Magic  string
	Ignore []string
}

// Set is the compiled, read-only form of Sources
type Set struct {
	issue       *regexp.Regexp
	merge       *regexp.Regexp
	mergeSource string
	magic       *regexp.Regexp // nil = disabled
	ignore      []*regexp.Regexp
}

// PatternError reports a single pattern that failed to compile
type PatternError struct {
	Name    string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Name, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compile compiles every pattern in src. Empty issue/merge patterns fall back
// to the defaults; an empty magic pattern disables the magic bypass. All
// invalid patterns are reported together.
func Compile(src Sources) (*Set, error) {
	issueSource := src.Issue
	if issueSource == "" {
		issueSource = DefaultIssuePattern
	}
	mergeSource := src.Merge
	if mergeSource == "" {
		mergeSource = DefaultMergePattern
	}

	var errs error
	compile := func(name, pattern string) *regexp.Regexp {
		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = multierr.Append(errs, &PatternError{Name: name, Pattern: pattern, Err: err})
			return nil
		}
		return re
	}

	set := &Set{
		issue:       compile("issue_pattern", issueSource),
		merge:       compile("merge_pattern", mergeSource),
		mergeSource: mergeSource,
	}
	if src.Magic != "" {
		set.magic = compile("magic_pattern", src.Magic)
	}
	for i, pattern := range src.Ignore {
		set.ignore = append(set.ignore, compile(fmt.Sprintf("ignore[%d]", i), pattern))
	}

	if errs != nil {
		return nil, errs
	}
	return set, nil
}

// MustCompile is like Compile but panics on an invalid pattern
func MustCompile(src Sources) *Set {
	set, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return set
}

// MatchIgnore returns the first ignore pattern, in configured order, that
// matches the branch. Patterns are not implicitly anchored.
func (s *Set) MatchIgnore(branch string) (string, bool) {
	for _, re := range s.ignore {
		if re.MatchString(branch) {
			return re.String(), true
		}
	}
	return "", false
}

// HasMagic reports whether a magic pattern is configured
func (s *Set) HasMagic() bool {
	return s.magic != nil
}

// IsMagic reports whether the subject matches the magic pattern.
// Always false when no magic pattern is configured.
func (s *Set) IsMagic(subject string) bool {
	if s.magic == nil {
		return false
	}
	return s.magic.MatchString(subject)
}

// ExtractKey applies the issue pattern to the branch and returns the first
// capture group. A pattern that does not match, has no capture group, or
// captures nothing yields no key.
func (s *Set) ExtractKey(branch string) (string, bool) {
	m := s.issue.FindStringSubmatch(branch)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// IssuePattern returns the issue pattern source
func (s *Set) IssuePattern() string {
	return s.issue.String()
}

// MergeFor builds the merge-specific pattern for key: the merge pattern
// followed by the key as a literal.
func (s *Set) MergeFor(key string) (*regexp.Regexp, error) {
	pattern := s.mergeSource + regexp.QuoteMeta(key)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Name: "merge_pattern", Pattern: pattern, Err: err}
	}
	return re, nil
}
