package shortcut

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Binding maps one key combination to an action. Modifiers left false
// must be released for the binding to match.
type Binding struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool

	Description string
	// Category groups the binding in help output. Empty means "General".
	Category string
	Action   func()
}

// Combo is the canonical "mod+key" form of the binding.
func (b Binding) Combo() string {
	return combo(b.Key, b.Ctrl, b.Meta, b.Shift, b.Alt)
}

// Matches applies the strict policy: same key ignoring case and all four
// modifier flags equal.
func (b Binding) Matches(ev KeyEvent) bool {
	return strings.EqualFold(normalizeKey(b.Key), normalizeKey(ev.Key)) &&
		b.Ctrl == ev.Ctrl &&
		b.Meta == ev.Meta &&
		b.Shift == ev.Shift &&
		b.Alt == ev.Alt
}

// Dispatcher holds the active binding set of the current UI context.
type Dispatcher struct {
	mu       sync.Mutex
	bindings []Binding
	log      *zerolog.Logger
}

func NewDispatcher(log *zerolog.Logger) *Dispatcher {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Dispatcher{log: log}
}

// Register adds b. A binding already claiming the same combination is
// replaced and a conflict is logged.
func (d *Dispatcher) Register(b Binding) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := b.Combo()
	for i, old := range d.bindings {
		if old.Combo() == c {
			d.log.Warn().Str("combo", c).Str("replaced", old.Description).Str("by", b.Description).Msg("shortcut.conflict")
			d.bindings = append(d.bindings[:i], d.bindings[i+1:]...)
			break
		}
	}
	d.bindings = append(d.bindings, b)
}

// RegisterAll registers bs in order.
func (d *Dispatcher) RegisterAll(bs ...Binding) {
	for _, b := range bs {
		d.Register(b)
	}
}

// Unregister drops every binding for key, whatever its modifiers, and
// reports how many were removed.
func (d *Dispatcher) Unregister(key string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	key = normalizeKey(key)
	kept := d.bindings[:0]
	removed := 0
	for _, b := range d.bindings {
		if strings.EqualFold(normalizeKey(b.Key), key) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(d.bindings); i++ {
		d.bindings[i] = Binding{}
	}
	d.bindings = kept
	return removed
}

// Clear empties the binding set.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindings = nil
}

// Replace swaps in a whole new binding set, as on a context switch.
func (d *Dispatcher) Replace(bs ...Binding) {
	d.Clear()
	d.RegisterAll(bs...)
}

// Resolve returns the binding matching ev. Should several match, the most
// recently registered one wins.
func (d *Dispatcher) Resolve(ev KeyEvent) (Binding, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.bindings) - 1; i >= 0; i-- {
		if d.bindings[i].Matches(ev) {
			return d.bindings[i], true
		}
	}
	return Binding{}, false
}

// Dispatch resolves ev and, on a match, prevents its default handling and
// runs the action once. The action runs without the dispatcher locked, so
// it may switch the binding set.
func (d *Dispatcher) Dispatch(ev *KeyEvent) bool {
	b, ok := d.Resolve(*ev)
	if !ok {
		return false
	}
	ev.PreventDefault()
	d.log.Debug().Str("combo", b.Combo()).Str("action", b.Description).Msg("shortcut.dispatch")
	if b.Action != nil {
		b.Action()
	}
	return true
}

// Bindings returns the active set in registration order.
func (d *Dispatcher) Bindings() []Binding {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Binding, len(d.bindings))
	copy(out, d.bindings)
	return out
}

func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.bindings)
}
