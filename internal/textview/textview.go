// Package textview holds the raw textual representation of the options
// being edited.
//
// The text is reconciled with structured state only at mode switches and at
// commit; in between it may be mid-edit and unparseable. Validation happens
// when the store absorbs the text, never here.
package textview

import (
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// View holds the current raw text.
type View struct {
	// Raw is the text as last typed or generated. Not required to be
	// valid JSON at any given moment.
	Raw string
}

// SetRaw replaces the text verbatim.
func (v *View) SetRaw(text string) {
	v.Raw = text
}

// Reformat replaces the text with a pretty-printed document that nests
// values under a single top-level field key, using 2-space indentation.
// Map keys are emitted in sorted order so regenerating from the same state
// produces identical text.
func (v *View) Reformat(field string, values map[string]any) error {
	if values == nil {
		values = map[string]any{}
	}
	doc, err := sjson.Set("{}", escapePath(field), values)
	if err != nil {
		return err
	}
	v.Raw = string(pretty.PrettyOptions([]byte(doc), &pretty.Options{
		Indent:   "  ",
		SortKeys: true,
	}))
	return nil
}

// escapePath quotes sjson path metacharacters so the field key is written
// literally even when it contains dots or wildcards.
func escapePath(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '\\', '|', '#', '@':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}
