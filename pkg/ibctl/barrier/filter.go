package barrier

import (
	"sort"

	"github.com/collabsec/ibctl/pkg/ibctl/client"
)

// FilterSegments drops every segment whose name matches the exclusion
// pattern and returns the rest sorted by name. Excluded segments are out of
// the run entirely: they get no policy and appear in no block list.
func FilterSegments(segments []client.Segment, excl *ExclusionMatcher) []client.Segment {
	filtered := make([]client.Segment, 0, len(segments))
	for _, seg := range segments {
		if excl.Matches(seg.Name) {
			continue
		}
		filtered = append(filtered, seg)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	return filtered
}
