// Package keybind maps key combinations to ordered lists of actions.
//
// Binding a second action to a key never replaces the first: each key owns
// one KeyBind entry that accumulates members, and triggering the key runs
// every member in registration order.
package keybind

import (
	"errors"
	"fmt"

	"imgmanage/internal/logging"
)

// ErrUnbound is returned when triggering a key that has no entry.
var ErrUnbound = errors.New("key not bound")

// Action is a bindable function. It receives the trigger's call arguments
// followed by the arguments captured at bind time.
type Action func(args ...any) error

type member struct {
	name  string
	fn    Action
	bound []any
}

// KeyBind is a key combination to function(s) association.
type KeyBind struct {
	keys    string
	members []member
}

// Keys returns the key combination of this entry.
func (kb *KeyBind) Keys() string { return kb.keys }

// Len returns the number of bound members.
func (kb *KeyBind) Len() int { return len(kb.members) }

// Names returns the member names in invocation order.
func (kb *KeyBind) Names() []string {
	names := make([]string, len(kb.members))
	for i, m := range kb.members {
		names[i] = m.name
	}
	return names
}

func (kb *KeyBind) bind(name string, fn Action, bound []any) {
	b := make([]any, len(bound))
	copy(b, bound)
	kb.members = append(kb.members, member{name: name, fn: fn, bound: b})
}

// invoke calls every member in order. A failing or panicking member is
// logged and does not stop the ones after it.
func (kb *KeyBind) invoke(log *logging.Logger, args []any) error {
	var errs []error
	for _, m := range kb.members {
		call := make([]any, 0, len(args)+len(m.bound))
		call = append(call, args...)
		call = append(call, m.bound...)
		log.Debug("invoke", "keys", kb.keys, "action", m.name, "args", call)
		if err := safeCall(m.fn, call); err != nil {
			log.Warn("keybind action failed", "keys", kb.keys, "action", m.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %s: %w", kb.keys, m.name, err))
		}
	}
	return errors.Join(errs...)
}

func safeCall(fn Action, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(args...)
}

// Table holds one KeyBind per distinct key combination.
type Table struct {
	log      *logging.Logger
	binds    map[string]*KeyBind
	order    []string
	onCreate func(keys string)
}

// NewTable creates an empty keybind table.
func NewTable(log *logging.Logger) *Table {
	if log == nil {
		log = logging.Nop()
	}
	return &Table{
		log:   log,
		binds: make(map[string]*KeyBind),
	}
}

// OnCreate registers a callback run whenever a new key entry is created,
// so a window can attach the matching shortcut.
func (t *Table) OnCreate(fn func(keys string)) {
	t.onCreate = fn
}

// Register binds fn under keys, capturing bound as trailing arguments.
// An unseen key gets a new entry; a known key gets fn appended to its
// existing members. It reports whether a new entry was created.
func (t *Table) Register(keys, name string, fn Action, bound ...any) bool {
	keys = Normalize(keys)
	if kb, ok := t.binds[keys]; ok {
		t.log.Debug("bind", "keys", keys, "action", name, "bound", bound)
		kb.bind(name, fn, bound)
		return false
	}
	t.log.Debug("bind new", "keys", keys, "action", name, "bound", bound)
	kb := &KeyBind{keys: keys}
	kb.bind(name, fn, bound)
	t.binds[keys] = kb
	t.order = append(t.order, keys)
	if t.onCreate != nil {
		t.onCreate(keys)
	}
	return true
}

// Trigger invokes every member bound to keys, in the order they were
// added, passing args to each. Member failures are joined into the
// returned error.
func (t *Table) Trigger(keys string, args ...any) error {
	keys = Normalize(keys)
	kb, ok := t.binds[keys]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnbound, keys)
	}
	return kb.invoke(t.log, args)
}

// Lookup returns the entry for keys.
func (t *Table) Lookup(keys string) (*KeyBind, bool) {
	kb, ok := t.binds[Normalize(keys)]
	return kb, ok
}

// Keys returns every bound key combination in creation order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of distinct key combinations.
func (t *Table) Len() int { return len(t.binds) }
