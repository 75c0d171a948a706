package catalog

import "reflect"

// IsDefault reports whether value counts as the default for a field.
//
// With a non-nil defaults list (even an empty one) the value must be
// deep-equal to one of its elements. With no defaults list a field is a
// plain boolean and the default enabled value is exactly true.
func IsDefault(value any, defaults []any) bool {
	if defaults != nil {
		for _, d := range defaults {
			if reflect.DeepEqual(value, d) {
				return true
			}
		}
		return false
	}
	b, ok := value.(bool)
	return ok && b
}

// State is the tri-state checkbox rendering of a field.
type State uint8

const (
	// Unchecked means the field is disabled: its key is absent, or the
	// stored value is falsy.
	Unchecked State = iota

	// Checked means the field is enabled with a default value.
	Checked

	// Indeterminate means the field is enabled with a non-default value.
	Indeterminate
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// CheckState derives the rendering state for a field. present reports
// whether the key exists in the current values. A field renders checked iff
// it is present with a truthy value, and indeterminate iff checked while
// holding a non-default value.
func CheckState(value any, present bool, defaults []any) State {
	if !present || !truthy(value) {
		return Unchecked
	}
	if IsDefault(value, defaults) {
		return Checked
	}
	return Indeterminate
}

// truthy mirrors the display rule for enabled fields: false, nil, zero
// numbers, and empty strings render as unchecked even when the key is
// present.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	}
	return true
}
