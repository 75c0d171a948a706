package editor

import (
	"sync"

	"github.com/dshills/optionpane/internal/store"
)

// ChangeType represents the type of state change.
type ChangeType int

const (
	// ChangeSet indicates a field was enabled or updated by a toggle.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a field was disabled by a toggle.
	ChangeDelete

	// ChangeReload indicates the entire state was replaced, either by a
	// reinitialization or by absorbing the text view.
	ChangeReload

	// ChangeCommit indicates the editor closed and emitted final values.
	ChangeCommit
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	case ChangeCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Change represents a state change event.
type Change struct {
	// Key is the field key for set/delete changes. Empty for reload and
	// commit events.
	Key string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous value (may be nil).
	OldValue any

	// NewValue is the new value. For commit events this is the emitted
	// Values map.
	NewValue any

	// Source identifies which view produced the change.
	Source string
}

// Observer is called when editor state changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// notifier manages change subscriptions. Delivery is synchronous; the
// relative order of observers is not guaranteed.
type notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

func newNotifier() *notifier {
	return &notifier{
		observers: make(map[uint64]Observer),
	}
}

func (n *notifier) subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

func (n *notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

func (n *notifier) notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, o := range n.observers {
		observers = append(observers, o)
	}
	n.mu.RUnlock()

	for _, o := range observers {
		o(change)
	}
}

func (n *notifier) notifySet(key string, oldValue, newValue any, source string) {
	n.notify(Change{
		Key:      key,
		Type:     ChangeSet,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	})
}

func (n *notifier) notifyDelete(key string, oldValue any, source string) {
	n.notify(Change{
		Key:      key,
		Type:     ChangeDelete,
		OldValue: oldValue,
		Source:   source,
	})
}

func (n *notifier) notifyReload(source string) {
	n.notify(Change{
		Type:   ChangeReload,
		Source: source,
	})
}

func (n *notifier) notifyCommit(values store.Values) {
	n.notify(Change{
		Type:     ChangeCommit,
		NewValue: values,
		Source:   sourceCommit,
	})
}
