package barrier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collabsec/ibctl/pkg/ibctl/client"
)

func segs(names ...string) []client.Segment {
	out := make([]client.Segment, 0, len(names))
	for _, n := range names {
		out = append(out, client.Segment{Name: n})
	}
	return out
}

func names(segments []client.Segment) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		out = append(out, s.Name)
	}
	return out
}

func TestCompileExclusionRejectsMalformedPattern(t *testing.T) {
	_, err := CompileExclusion("corporate(")
	require.Error(t, err)
}

func TestFilterSegmentsExcludesMatchesAndSorts(t *testing.T) {
	excl, err := CompileExclusion("corporate*")
	require.NoError(t, err)

	filtered := FilterSegments(segs("corporate-A", "sales", "corporate-B", "hr"), excl)
	require.Equal(t, []string{"hr", "sales"}, names(filtered))
}

func TestFilterSegmentsDefaultPattern(t *testing.T) {
	excl, err := CompileExclusion(DefaultExclusion)
	require.NoError(t, err)

	filtered := FilterSegments(segs("corporate-sales", "Corporate-HQ", "finance", "legal-eu"), excl)
	require.Equal(t, []string{"finance", "legal-eu"}, names(filtered))
}

func TestFilterSegmentsIsCaseInsensitive(t *testing.T) {
	excl, err := CompileExclusion("corporate*")
	require.NoError(t, err)

	filtered := FilterSegments(segs("CORPORATE-A", "hr"), excl)
	require.Equal(t, []string{"hr"}, names(filtered))
}

func TestFilterSegmentsNeverContainsPatternMatch(t *testing.T) {
	patterns := []string{"corporate*", "sales", ".*-eu", "a|b"}
	input := segs("corporate-A", "sales", "presales", "legal-eu", "ab", "hr")
	for _, pattern := range patterns {
		excl, err := CompileExclusion(pattern)
		require.NoError(t, err)
		for _, seg := range FilterSegments(input, excl) {
			require.False(t, excl.Matches(seg.Name),
				"pattern %q should have excluded %q", pattern, seg.Name)
		}
	}
}
