// Package catalog defines the immutable option catalog presented by the
// options editor, along with the pure helpers the rendering layer consumes:
// substring filtering, wildcard search, and default-value resolution for
// tri-state checkbox display.
//
// A catalog is supplied by the host when the editor opens and is never
// mutated by the editor. Filtering and searching return views over the
// original groups; the groups and fields keep their caller-supplied order.
package catalog

// Field describes a single named option within a group.
type Field struct {
	// Key is the option name, unique within its group.
	Key string

	// Label is optional display text. Hosts fall back to Key when empty.
	Label string

	// Defaults is an ordered list of candidate default values. The first
	// element is the value assigned when the field is enabled through a
	// toggle. A nil slice means the field is a plain boolean defaulting
	// to true.
	Defaults []any
}

// DisplayName returns the label when set, otherwise the key.
func (f Field) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// Group is a named, ordered collection of fields shown together.
type Group struct {
	Heading string
	Fields  []Field
}

// Catalog is the full ordered set of groups.
type Catalog []Group

// Field returns the first field registered under key, searching groups in
// order. The second return reports whether the key exists anywhere in the
// catalog.
func (c Catalog) Field(key string) (Field, bool) {
	for _, g := range c {
		for _, f := range g.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return Field{}, false
}

// Keys returns every field key in catalog order.
func (c Catalog) Keys() []string {
	var keys []string
	for _, g := range c {
		for _, f := range g.Fields {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
