package store

import "reflect"

// Values is the structured configuration state. A key is present exactly
// when the corresponding field is enabled.
type Values map[string]any

// Clone returns a shallow copy. A nil receiver clones to an empty map so
// reducers can treat missing state and empty state the same way.
func (v Values) Clone() Values {
	next := make(Values, len(v))
	for k, val := range v {
		next[k] = val
	}
	return next
}

// Equal reports whether two value maps hold the same keys with deep-equal
// values. Nil and empty maps compare equal.
func (v Values) Equal(other Values) bool {
	if len(v) != len(other) {
		return false
	}
	for k, val := range v {
		o, ok := other[k]
		if !ok || !reflect.DeepEqual(val, o) {
			return false
		}
	}
	return true
}
