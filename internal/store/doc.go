// Package store implements the structured-configuration state machine for
// the options editor.
//
// State is a flat key/value map in which a key is present exactly when the
// corresponding option is enabled; disabled options are modeled by absence,
// never by a sentinel value. Transitions are reducer-style: a tagged action
// goes in, a new map comes out, and the input map is never mutated.
//
// # Actions
//
//   - Init: full replacement of the state with externally supplied values
//   - Toggle: enable a field with its first default candidate (or true),
//     or disable it by removing the key
//   - Absorb: fold a raw text document back into structured state
//
// Absorb accepts a relaxed JSON-family grammar (comments, unquoted keys,
// trailing commas) and extracts the object nested under a named top-level
// field, so documents may carry sibling keys the editor does not own. Parse
// and shape failures are non-fatal: the reducer returns the prior state
// unchanged together with the error, and never panics on bad input.
package store
