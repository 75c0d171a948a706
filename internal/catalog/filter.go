package catalog

import "strings"

// Filter returns the groups whose fields contain query as a case-sensitive
// substring of their key. Groups left with no matching fields are dropped;
// surviving groups and fields keep their original relative order. The input
// catalog is never mutated. An empty query returns c unchanged.
func Filter(c Catalog, query string) Catalog {
	if query == "" {
		return c
	}

	var result Catalog
	for _, g := range c {
		var fields []Field
		for _, f := range g.Fields {
			if strings.Contains(f.Key, query) {
				fields = append(fields, f)
			}
		}
		if len(fields) > 0 {
			result = append(result, Group{Heading: g.Heading, Fields: fields})
		}
	}
	return result
}
