package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/optionpane/internal/catalog"
	"github.com/dshills/optionpane/internal/store"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		{
			Heading: "Editor",
			Fields: []catalog.Field{
				{Key: "wordWrap", Label: "Wrap long lines", Defaults: []any{"on", "bounded"}},
				{Key: "tabSize", Defaults: []any{float64(4)}},
				{Key: "minimap"},
			},
		},
		{
			Heading: "UI",
			Fields: []catalog.Field{
				{Key: "lineNumbers", Defaults: []any{"relative"}},
			},
		},
	}
}

func TestEditor_StartsInFormMode(t *testing.T) {
	e := New(testCatalog(), nil)

	if e.Mode() != ModeForm {
		t.Errorf("Mode = %v, want form", e.Mode())
	}
	if len(e.Values()) != 0 {
		t.Errorf("Values = %v, want empty", e.Values())
	}
}

func TestEditor_ToggleUsesCatalogDefaults(t *testing.T) {
	e := New(testCatalog(), nil)

	e.Toggle("wordWrap", true)
	if got := e.Values()["wordWrap"]; got != "on" {
		t.Errorf("wordWrap = %v, want first default \"on\"", got)
	}

	e.Toggle("minimap", true)
	if got := e.Values()["minimap"]; got != true {
		t.Errorf("minimap = %v, want true (no default candidates)", got)
	}

	e.Toggle("wordWrap", false)
	if _, ok := e.Values()["wordWrap"]; ok {
		t.Error("wordWrap should be removed after toggling off")
	}
}

func TestEditor_FieldState(t *testing.T) {
	e := New(testCatalog(), store.Values{"wordWrap": "off", "tabSize": float64(4)})

	if got := e.FieldState("wordWrap"); got != catalog.Indeterminate {
		t.Errorf("wordWrap state = %v, want indeterminate (non-default value)", got)
	}
	if got := e.FieldState("tabSize"); got != catalog.Checked {
		t.Errorf("tabSize state = %v, want checked", got)
	}
	if got := e.FieldState("minimap"); got != catalog.Unchecked {
		t.Errorf("minimap state = %v, want unchecked", got)
	}
}

func TestEditor_VisibleGroups(t *testing.T) {
	e := New(testCatalog(), nil)

	if got := e.VisibleGroups(); !reflect.DeepEqual(got, e.Catalog()) {
		t.Error("empty filter should yield the full catalog")
	}

	e.SetFilter("tab")
	got := e.VisibleGroups()
	if len(got) != 1 || got[0].Fields[0].Key != "tabSize" {
		t.Errorf("VisibleGroups = %+v, want tabSize only", got)
	}

	// Wildcard queries use label-aware search.
	e.SetFilter("*wrap*")
	got = e.VisibleGroups()
	if len(got) != 1 || got[0].Fields[0].Key != "wordWrap" {
		t.Errorf("VisibleGroups = %+v, want wordWrap", got)
	}
}

func TestEditor_RoundTrip(t *testing.T) {
	start := store.Values{
		"wordWrap": "on",
		"tabSize":  float64(8),
		"minimap":  true,
	}
	e := New(testCatalog(), start, WithJSONField("cfg"))

	e.SwitchMode() // form -> text
	if e.Mode() != ModeText {
		t.Fatalf("Mode = %v, want text", e.Mode())
	}
	if e.RawText() == "" {
		t.Fatal("text view should be populated on entry to text mode")
	}

	e.SwitchMode() // text -> form, absorbing the generated text
	if e.Mode() != ModeForm {
		t.Fatalf("Mode = %v, want form", e.Mode())
	}
	if err := e.LastAbsorbError(); err != nil {
		t.Fatalf("absorb of generated text failed: %v", err)
	}
	if !e.Values().Equal(start) {
		t.Errorf("round-trip values = %v, want %v", e.Values(), start)
	}
}

func TestEditor_TextEditsAbsorbedOnSwitch(t *testing.T) {
	e := New(testCatalog(), store.Values{"minimap": true}, WithJSONField("cfg"))

	e.SwitchMode() // form -> text
	e.SetRaw(`{"cfg": {"wordWrap": "bounded"}}`)
	e.SwitchMode() // text -> form

	want := store.Values{"wordWrap": "bounded"}
	if !e.Values().Equal(want) {
		t.Errorf("Values = %v, want %v (text replaces state wholesale)", e.Values(), want)
	}
}

func TestEditor_MalformedTextKeptOutOnSwitch(t *testing.T) {
	start := store.Values{"minimap": true}
	e := New(testCatalog(), start, WithJSONField("cfg"))

	e.SwitchMode() // form -> text
	e.SetRaw("{{{ definitely broken")
	mode := e.SwitchMode() // text -> form; switch proceeds regardless

	if mode != ModeForm {
		t.Errorf("Mode = %v, want form even after failed absorb", mode)
	}
	if !e.Values().Equal(start) {
		t.Errorf("Values = %v, want prior state %v", e.Values(), start)
	}
	if e.LastAbsorbError() == nil {
		t.Error("expected LastAbsorbError to report the failure")
	}
}

func TestEditor_CommitFromForm(t *testing.T) {
	var committed store.Values
	e := New(testCatalog(), nil, WithCommit(func(v store.Values) {
		committed = v
	}))

	e.Toggle("wordWrap", true)
	out := e.Close()

	want := store.Values{"wordWrap": "on"}
	if !out.Equal(want) {
		t.Errorf("Close returned %v, want %v", out, want)
	}
	if !committed.Equal(want) {
		t.Errorf("commit callback got %v, want %v", committed, want)
	}
}

func TestEditor_CommitFromText(t *testing.T) {
	var committed store.Values
	e := New(testCatalog(), nil,
		WithJSONField("cfg"),
		WithCommit(func(v store.Values) { committed = v }),
	)

	e.SwitchMode() // form -> text
	e.SetRaw(`{"cfg": {"a": true}}`)
	out := e.Close() // never switched back; unsaved text is folded in

	want := store.Values{"a": true}
	if !out.Equal(want) {
		t.Errorf("Close returned %v, want %v", out, want)
	}
	if !committed.Equal(want) {
		t.Errorf("commit callback got %v, want %v", committed, want)
	}
}

func TestEditor_CommitFromTextWithBadEditsEmitsPrior(t *testing.T) {
	start := store.Values{"minimap": true}
	var committed store.Values
	e := New(testCatalog(), start,
		WithJSONField("cfg"),
		WithCommit(func(v store.Values) { committed = v }),
	)

	e.SwitchMode()
	e.SetRaw("][ nope")
	e.Close()

	if !committed.Equal(start) {
		t.Errorf("commit callback got %v, want best-known-good %v", committed, start)
	}
}

func TestEditor_CommitReturnsCopy(t *testing.T) {
	e := New(testCatalog(), store.Values{"minimap": true})

	out := e.Close()
	out["injected"] = true

	if _, ok := e.Values()["injected"]; ok {
		t.Error("Close should return a copy, not the internal map")
	}
}

func TestEditor_ReinitializeIsFullReset(t *testing.T) {
	e := New(testCatalog(), store.Values{"minimap": true})

	e.Toggle("wordWrap", true)
	e.Reinitialize(store.Values{"tabSize": float64(2)})

	want := store.Values{"tabSize": float64(2)}
	if !e.Values().Equal(want) {
		t.Errorf("Values = %v, want %v (reset, not merge)", e.Values(), want)
	}
}

func TestEditor_ChangeNotifications(t *testing.T) {
	e := New(testCatalog(), nil, WithJSONField("cfg"))

	var changes []Change
	sub := e.Subscribe(func(c Change) {
		changes = append(changes, c)
	})
	defer sub.Unsubscribe()

	e.Toggle("wordWrap", true)
	e.Toggle("wordWrap", false)
	e.Toggle("missing", false) // absent key: no notification
	e.Reinitialize(store.Values{"minimap": true})
	e.Close()

	wantTypes := []ChangeType{ChangeSet, ChangeDelete, ChangeReload, ChangeCommit}
	if len(changes) != len(wantTypes) {
		t.Fatalf("got %d changes (%+v), want %d", len(changes), changes, len(wantTypes))
	}
	for i, want := range wantTypes {
		if changes[i].Type != want {
			t.Errorf("changes[%d].Type = %v, want %v", i, changes[i].Type, want)
		}
	}
	if changes[0].Key != "wordWrap" || changes[0].NewValue != "on" {
		t.Errorf("set change = %+v, want wordWrap=on", changes[0])
	}

	commit, ok := changes[3].NewValue.(store.Values)
	if !ok || !commit.Equal(store.Values{"minimap": true}) {
		t.Errorf("commit change carried %v, want final values", changes[3].NewValue)
	}
}

func TestEditor_UnsubscribedObserverNotCalled(t *testing.T) {
	e := New(testCatalog(), nil)

	called := false
	sub := e.Subscribe(func(Change) { called = true })
	sub.Unsubscribe()

	e.Toggle("minimap", true)
	if called {
		t.Error("unsubscribed observer should not be called")
	}
}

func TestEditor_AbsorbErrorTaxonomy(t *testing.T) {
	e := New(testCatalog(), nil, WithJSONField("cfg"))

	e.SwitchMode()
	e.SetRaw(`{"wrongKey": {"a": 1}}`)
	e.SwitchMode()

	if !errors.Is(e.LastAbsorbError(), store.ErrShape) {
		t.Errorf("LastAbsorbError = %v, want ErrShape", e.LastAbsorbError())
	}

	// A later successful absorb clears the recorded error.
	e.SwitchMode()
	e.SetRaw(`{"cfg": {"a": 1}}`)
	e.SwitchMode()
	if err := e.LastAbsorbError(); err != nil {
		t.Errorf("LastAbsorbError = %v, want nil after success", err)
	}
}
