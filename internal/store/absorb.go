package store

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// applyAbsorb parses raw relaxed JSON and replaces the state with the
// object found under the action's field key. Any parse or shape failure
// keeps prev.
func applyAbsorb(prev Values, a Absorb) (Values, error) {
	repaired, err := jsonrepair.JSONRepair(a.Raw)
	if err != nil {
		return prev, &ParseError{Err: err}
	}

	doc := gjson.Parse(repaired)
	if !doc.IsObject() {
		return prev, &ShapeError{Got: typeName(doc)}
	}

	field := doc.Get(escapePath(a.Field))
	if !field.Exists() {
		return prev, &ShapeError{Field: a.Field, Got: "missing"}
	}
	if !field.IsObject() {
		return prev, &ShapeError{Field: a.Field, Got: typeName(field)}
	}

	var next Values
	if err := json.Unmarshal([]byte(field.Raw), &next); err != nil {
		return prev, &ParseError{Err: err}
	}
	return next, nil
}

// escapePath quotes gjson path metacharacters so a field key containing
// dots or wildcards is looked up literally.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func typeName(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		return "unknown"
	}
}
