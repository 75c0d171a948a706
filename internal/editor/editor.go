// Package editor implements the dual-representation options editor core.
//
// An Editor owns the state of one open options dialog: the structured
// key/value state, the raw text view, and the active mode. The two
// representations are reconciled only at explicit boundaries, never
// continuously:
//
//   - switching form -> text regenerates the text from structured state
//   - switching text -> form absorbs the text back into structured state
//   - closing absorbs first when the text view was active, then emits the
//     final values through the commit callback
//
// Absorb failures are non-fatal. The prior structured state is kept, the
// error is logged and retained for inspection, and the mode switch or
// commit proceeds regardless. The commit callback always receives the
// best-known-good values, never an error.
//
// All methods are synchronous and the Editor is owned by exactly one host
// instance; any concurrency discipline belongs to the host's event loop.
package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/optionpane/internal/catalog"
	"github.com/dshills/optionpane/internal/store"
	"github.com/dshills/optionpane/internal/textview"
)

// Change sources reported through the notifier.
const (
	sourceForm   = "form"
	sourceText   = "text"
	sourceHost   = "host"
	sourceCommit = "commit"
)

// defaultField is the top-level key the text view nests values under when
// the host does not configure one.
const defaultField = "config"

// CommitFunc receives the final values when the editor closes.
type CommitFunc func(values store.Values)

// Editor holds the state of one open options editor.
type Editor struct {
	catalog   catalog.Catalog
	jsonField string

	mode   Mode
	values store.Values
	text   textview.View
	query  string

	logger   Logger
	notifier *notifier
	onCommit CommitFunc

	absorbErr error
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the diagnostic logger.
func WithLogger(logger Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithJSONField sets the top-level key the text view nests the editable
// object under. Documents may carry sibling top-level keys; only this one
// is owned by the editor.
func WithJSONField(field string) Option {
	return func(e *Editor) {
		if field != "" {
			e.jsonField = field
		}
	}
}

// WithCommit sets the callback invoked once per Close with the final values.
func WithCommit(fn CommitFunc) Option {
	return func(e *Editor) {
		e.onCommit = fn
	}
}

// New creates an editor over the catalog, starting in form mode with the
// supplied values as the structured state.
func New(cat catalog.Catalog, values store.Values, opts ...Option) *Editor {
	e := &Editor{
		catalog:   cat,
		jsonField: defaultField,
		logger:    NopLogger{},
		notifier:  newNotifier(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.values, _ = store.Apply(nil, store.Init{Values: values})
	return e
}

// Mode returns the active mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Catalog returns the option catalog the editor was opened with.
func (e *Editor) Catalog() catalog.Catalog {
	return e.catalog
}

// Values returns a copy of the current structured state.
func (e *Editor) Values() store.Values {
	return e.values.Clone()
}

// RawText returns the current text-view contents.
func (e *Editor) RawText() string {
	return e.text.Raw
}

// Subscribe registers an observer for state changes and commits.
func (e *Editor) Subscribe(observer Observer) *Subscription {
	return e.notifier.subscribe(observer)
}

// Reinitialize replaces the structured state with values, discarding any
// in-progress form edits. It is a full reset, never a merge. The text view
// is left alone; it is regenerated on the next switch into text mode.
func (e *Editor) Reinitialize(values store.Values) {
	e.values, _ = store.Apply(e.values, store.Init{Values: values})
	e.notifier.notifyReload(sourceHost)
}

// Toggle enables or disables the named field from the form view. Default
// candidates come from the catalog entry for key; a key missing from the
// catalog toggles as a plain boolean.
func (e *Editor) Toggle(key string, checked bool) {
	f, _ := e.catalog.Field(key)
	old, had := e.values[key]

	next, _ := store.Apply(e.values, store.Toggle{
		Key:      key,
		Checked:  checked,
		Defaults: f.Defaults,
	})
	e.values = next

	if checked {
		e.notifier.notifySet(key, old, e.values[key], sourceForm)
	} else if had {
		e.notifier.notifyDelete(key, old, sourceForm)
	}
}

// SetRaw replaces the text-view contents verbatim. No validation happens
// until the text is absorbed at a mode switch or commit.
func (e *Editor) SetRaw(text string) {
	e.text.SetRaw(text)
}

// SetFilter sets the form view's filter query.
func (e *Editor) SetFilter(query string) {
	e.query = query
}

// Filter returns the current filter query.
func (e *Editor) Filter() string {
	return e.query
}

// VisibleGroups returns the catalog narrowed by the current filter query.
// Queries containing '*' or '?' use wildcard search over keys and labels;
// anything else is a case-sensitive substring match over keys.
func (e *Editor) VisibleGroups() catalog.Catalog {
	if strings.ContainsAny(e.query, "*?") {
		return catalog.Search(e.catalog, e.query)
	}
	return catalog.Filter(e.catalog, e.query)
}

// FieldState returns the tri-state checkbox rendering for key.
func (e *Editor) FieldState(key string) catalog.State {
	f, _ := e.catalog.Field(key)
	v, ok := e.values[key]
	return catalog.CheckState(v, ok, f.Defaults)
}

// SwitchMode flips between the form and text views, reconciling state in
// the direction of the switch. Switching into form mode proceeds even when
// the text fails to absorb; the prior structured state is kept.
func (e *Editor) SwitchMode() Mode {
	switch e.mode {
	case ModeForm:
		e.reformat()
		e.mode = ModeText
	case ModeText:
		e.absorb()
		e.mode = ModeForm
	default:
		panic(fmt.Sprintf("editor: invalid mode %d", e.mode))
	}
	e.logger.Debug("mode switched", "mode", e.mode.String())
	return e.mode
}

// Close commits the editor. Text-mode edits are folded in first, then the
// best-known-good values are emitted through the commit callback and
// returned. Errors never travel through the callback.
func (e *Editor) Close() store.Values {
	if e.mode == ModeText {
		e.absorb()
	}
	out := e.values.Clone()
	if e.onCommit != nil {
		e.onCommit(out)
	}
	e.notifier.notifyCommit(out)
	return out
}

// LastAbsorbError returns the most recent non-fatal parse or shape error,
// or nil when the last absorb succeeded. Hosts may surface it; the editor
// itself only logs it.
func (e *Editor) LastAbsorbError() error {
	return e.absorbErr
}

func (e *Editor) reformat() {
	if err := e.text.Reformat(e.jsonField, e.values); err != nil {
		e.logger.Error("reformat failed", "field", e.jsonField, "err", err)
	}
}

func (e *Editor) absorb() {
	next, err := store.Apply(e.values, store.Absorb{
		Raw:   e.text.Raw,
		Field: e.jsonField,
	})
	e.absorbErr = err
	if err != nil {
		e.logger.Error("absorb failed", "field", e.jsonField, "err", err)
		return
	}
	e.values = next
	e.notifier.notifyReload(sourceText)
}
