package barrier

import (
	"fmt"
	"regexp"
)

// DefaultExclusion is the stock pattern keeping corporate segments out of
// the barrier mesh.
const DefaultExclusion = "corporate*|corporate-sales"

// ExclusionMatcher matches segment names against the exclusion pattern.
// The pattern is a single case-insensitive, unanchored regular expression,
// so alternations like "corporate*|corporate-sales" work as expected.
type ExclusionMatcher struct {
	pattern string
	re      *regexp.Regexp
}

// CompileExclusion compiles pattern. A malformed pattern is a configuration
// error and fatal to the run.
func CompileExclusion(pattern string) (*ExclusionMatcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid exclusion pattern %q: %w", pattern, err)
	}
	return &ExclusionMatcher{pattern: pattern, re: re}, nil
}

func (m *ExclusionMatcher) Matches(name string) bool {
	return m.re.MatchString(name)
}

func (m *ExclusionMatcher) Pattern() string {
	return m.pattern
}
