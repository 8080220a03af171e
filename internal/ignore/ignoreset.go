package ignore

import (
	"strings"

	"github.com/dotweave/dot/internal/domain"
)

// IsIgnored classifies itemPath (an absolute-style, leading-slash,
// slash-separated path relative to the package root) against set.
//
// A pattern containing "/" is a path pattern, matched against itemPath
// directly. A pattern with no "/" is a basename pattern, matched against
// basename and against every Normal parent component of itemPath, so a
// pattern like "\.git" filters an entire .git subtree rather than only a
// top-level entry. The exception: when itemPath consists of a single
// component equal to basename, the parent-component walk is not repeated
// for that same component — the direct basename check already covers it.
func IsIgnored(itemPath, basename string, set *domain.IgnorePatternSet) bool {
	if set == nil {
		return false
	}

	for _, re := range set.Patterns {
		if strings.Contains(re.String(), "/") {
			if re.MatchString(itemPath) {
				return true
			}
			continue
		}

		if re.MatchString(basename) {
			return true
		}

		trimmed := strings.TrimPrefix(itemPath, "/")
		isTopLevelItem := trimmed == basename

		for _, component := range strings.Split(trimmed, "/") {
			if component == "" {
				continue
			}
			if re.MatchString(component) {
				if component == basename && isTopLevelItem {
					continue
				}
				return true
			}
		}
	}

	return false
}
