package shortcut

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyEvent is one key press with its modifier state.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the caller does not run its
// own handling for it.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// String renders the event the way bindings are written, e.g. "ctrl+shift+s".
func (e KeyEvent) String() string {
	return combo(e.Key, e.Ctrl, e.Meta, e.Shift, e.Alt)
}

// FromTeaKey converts a Bubble Tea key message. A single upper-case rune is
// reported as the lower-case key with Shift held.
func FromTeaKey(msg tea.KeyMsg) KeyEvent {
	return ParseKey(msg.String())
}

// ParseKey reads a "mod+mod+key" string as produced by tea.KeyMsg.String.
func ParseKey(s string) KeyEvent {
	var ev KeyEvent
	if s == "" {
		return ev
	}

	key := s
	rest := ""
	if strings.HasSuffix(s, "++") {
		key = "+"
		rest = strings.TrimSuffix(s, "++")
	} else if i := strings.LastIndex(s, "+"); i > 0 && i < len(s)-1 {
		key = s[i+1:]
		rest = s[:i]
	}

	if rest != "" {
		for _, mod := range strings.Split(rest, "+") {
			switch strings.ToLower(mod) {
			case "ctrl":
				ev.Ctrl = true
			case "meta", "cmd", "super":
				ev.Meta = true
			case "shift":
				ev.Shift = true
			case "alt", "option":
				ev.Alt = true
			}
		}
	}

	if r, size := utf8.DecodeRuneInString(key); size == len(key) && unicode.IsUpper(r) {
		ev.Shift = true
	}
	ev.Key = normalizeKey(key)
	return ev
}

func normalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(key)
}

func combo(key string, ctrl, meta, shift, alt bool) string {
	var b strings.Builder
	if ctrl {
		b.WriteString("ctrl+")
	}
	if meta {
		b.WriteString("meta+")
	}
	if alt {
		b.WriteString("alt+")
	}
	if shift {
		b.WriteString("shift+")
	}
	b.WriteString(normalizeKey(key))
	return b.String()
}
