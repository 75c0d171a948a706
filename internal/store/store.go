package store

import "fmt"

// Action is a tagged state transition applied by Apply. The action set is
// closed; dispatching any other type is a programming error.
type Action interface {
	isAction()
}

// Init replaces the entire state with Values. A nil map means empty state.
// Init is always a full replacement, never a merge.
type Init struct {
	Values Values
}

// Toggle enables or disables a single field. When enabling, the field is
// set to the first default candidate, or to boolean true when no candidates
// exist. When disabling, the key is removed; disabling an absent key is a
// no-op.
type Toggle struct {
	Key      string
	Checked  bool
	Defaults []any
}

// Absorb folds a raw text document back into structured state. Raw is
// parsed leniently and the object under the top-level Field key replaces
// the state wholesale.
type Absorb struct {
	Raw   string
	Field string
}

func (Init) isAction()   {}
func (Toggle) isAction() {}
func (Absorb) isAction() {}

// Apply is the reducer: it returns the next state without mutating prev.
// Absorb failures are non-fatal; the prior state comes back together with
// the error. Unknown action types panic.
func Apply(prev Values, action Action) (Values, error) {
	switch a := action.(type) {
	case Init:
		return applyInit(a), nil
	case Toggle:
		return applyToggle(prev, a), nil
	case Absorb:
		return applyAbsorb(prev, a)
	default:
		panic(fmt.Sprintf("store: unknown action type %T", action))
	}
}

func applyInit(a Init) Values {
	if a.Values == nil {
		return Values{}
	}
	return a.Values.Clone()
}

func applyToggle(prev Values, a Toggle) Values {
	next := prev.Clone()
	if !a.Checked {
		delete(next, a.Key)
		return next
	}
	if len(a.Defaults) > 0 {
		next[a.Key] = a.Defaults[0]
	} else {
		next[a.Key] = true
	}
	return next
}
