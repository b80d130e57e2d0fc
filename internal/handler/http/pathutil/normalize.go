// Package pathutil maps request paths to route labels for metrics and traces.
package pathutil

import (
	"regexp"
	"strings"
)

// Unmatched is the label of every path outside the known routes.
const Unmatched = "/:unmatched"

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// knownRoutes are the static routes served by the API.
var knownRoutes = map[string]struct{}{
	"/":            {},
	"/fit":         {},
	"/fit/chart":   {},
	"/terms":       {},
	"/terms/csv":   {},
	"/terms/chart": {},
	"/health":      {},
	"/live":        {},
	"/ready":       {},
	"/metrics":     {},
}

// pathPatterns defines the list of patterns for routes with a variable suffix.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/swagger(/.*)?$`), Template: "/swagger/*"},
}

// NormalizePath normalizes URL paths to prevent metrics label cardinality explosion.
// Known routes are returned unchanged, swagger assets collapse to one label and
// any other path (scanners, typos) becomes Unmatched.
//
// Examples:
//
//	NormalizePath("/terms")                 // "/terms"
//	NormalizePath("/terms/csv?start=300")   // "/terms/csv"
//	NormalizePath("/fit/chart/")            // "/fit/chart"
//	NormalizePath("/swagger/index.html")    // "/swagger/*"
//	NormalizePath("/wp-admin/setup.php")    // "/:unmatched"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownRoutes[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return Unmatched
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath
// can produce.
func GetExpectedCardinality() int {
	return len(knownRoutes) + len(pathPatterns) + 1
}
