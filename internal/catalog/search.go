package catalog

import (
	"strings"

	"github.com/tidwall/match"
)

// Search returns the groups whose fields match pattern against their key or
// label. Matching is case-insensitive and supports '*' and '?' wildcards; a
// pattern without wildcards matches as a substring, so Search(c, "wrap")
// behaves like a case-insensitive Filter over keys and labels.
//
// Like Filter, emptied groups are dropped, ordering is preserved, and the
// input catalog is never mutated. An empty pattern returns c unchanged.
func Search(c Catalog, pattern string) Catalog {
	if pattern == "" {
		return c
	}

	pat := strings.ToLower(pattern)
	if !strings.ContainsAny(pat, "*?") {
		pat = "*" + pat + "*"
	}

	var result Catalog
	for _, g := range c {
		var fields []Field
		for _, f := range g.Fields {
			if matchesField(f, pat) {
				fields = append(fields, f)
			}
		}
		if len(fields) > 0 {
			result = append(result, Group{Heading: g.Heading, Fields: fields})
		}
	}
	return result
}

func matchesField(f Field, pat string) bool {
	if match.Match(strings.ToLower(f.Key), pat) {
		return true
	}
	return f.Label != "" && match.Match(strings.ToLower(f.Label), pat)
}
