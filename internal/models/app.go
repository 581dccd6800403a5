package models

import (
	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/render"
)

// Context is the UI mode that owns the active shortcut set.
type Context int

const (
	ContextSearch Context = iota // typing into the query
	ContextBrowse                // single-key actions on the selection
	ContextHelp                  // shortcut overlay
)

func (c Context) String() string {
	switch c {
	case ContextSearch:
		return "search"
	case ContextBrowse:
		return "browse"
	case ContextHelp:
		return "help"
	}
	return "unknown"
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Query    string   // Current search text
	Results  []string // Icon names matching Query
	Selected int      // Index into Results
	Category string   // Category filter, "" for all
	Context  Context
	// Previous is where the help overlay returns to.
	Previous Context

	Params render.Params // Customization applied to previews and exports
	Format export.Format // Format used by the default copy action

	CopyStates map[string]CopyState // Feedback per consumer id
	Suggested  []string             // Last AI suggestions

	Status string // Status bar text
	Width  int    // Terminal width
	Height int    // Terminal height
}

// Current returns the selected icon name.
func (m *AppModel) Current() (string, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Results) {
		return "", false
	}
	return m.Results[m.Selected], true
}

// SetResults replaces the result list and keeps the selection in range.
func (m *AppModel) SetResults(names []string) {
	m.Results = names
	if m.Selected >= len(names) {
		m.Selected = len(names) - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}

// StateOf returns the feedback for consumer id; Idle if it never ran.
func (m *AppModel) StateOf(id string) CopyState {
	if m.CopyStates == nil {
		return CopyState{}
	}
	return m.CopyStates[id]
}

func (m *AppModel) SetCopyState(id string, s CopyState) {
	if m.CopyStates == nil {
		m.CopyStates = make(map[string]CopyState)
	}
	if s.IsIdle() {
		delete(m.CopyStates, id)
		return
	}
	m.CopyStates[id] = s
}

// AnyInFlight reports whether a spinner should run.
func (m *AppModel) AnyInFlight() bool {
	for _, s := range m.CopyStates {
		if s.IsInFlight() {
			return true
		}
	}
	return false
}

// ConsumerID names the on-screen control that exports in format. Each one
// owns an independent coordinator.
func ConsumerID(format export.Format) string {
	return "preview." + format.String()
}
