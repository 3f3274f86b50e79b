package barrier

import (
	"path"
	"regexp"
	"strings"

	"github.com/collabsec/ibctl/pkg/ibctl/client"
)

// PrefixGroup returns the substring before the first "-" in name. A name
// without "-" forms its own singleton group.
func PrefixGroup(name string) string {
	if i := strings.Index(name, "-"); i >= 0 {
		return name[:i]
	}
	return name
}

// BlockList computes the block set for seg over the filtered segment list:
// every filtered segment except those matching seg's own name (applied as a
// case-insensitive regex, which also catches seg itself) and except those in
// seg's prefix group (candidate name matching "<prefix>*" case-insensitively).
//
// The segment name is applied as a regex, not an equality check: "sales"
// also drops "presales" from its block set. A name that fails to compile
// falls back to case-insensitive equality.
func BlockList(seg client.Segment, filtered []client.Segment) []string {
	selfRe, selfErr := regexp.Compile("(?i)" + seg.Name)
	prefixPattern := strings.ToLower(PrefixGroup(seg.Name)) + "*"

	blocked := make([]string, 0, len(filtered))
	for _, cand := range filtered {
		if matchesSelf(selfRe, selfErr, seg.Name, cand.Name) {
			continue
		}
		if inPrefixGroup(prefixPattern, cand.Name) {
			continue
		}
		blocked = append(blocked, cand.Name)
	}
	return blocked
}

func matchesSelf(re *regexp.Regexp, compileErr error, selfName, candidate string) bool {
	if compileErr != nil {
		return strings.EqualFold(selfName, candidate)
	}
	return re.MatchString(candidate)
}

func inPrefixGroup(prefixPattern, candidate string) bool {
	matched, err := path.Match(prefixPattern, strings.ToLower(candidate))
	if err != nil {
		return false
	}
	return matched
}
