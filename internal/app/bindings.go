package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/internal/shortcut"
	"github.com/Rorical/iconx/internal/update"
)

const (
	catCopy       = "Copy Actions"
	catNavigation = "Navigation"
	catCustomize  = "Customize"
	catGeneral    = "General"
)

// bindingsFor returns the full binding set owned by ctx.
func (m *AppModel) bindingsFor(ctx models.Context) []shortcut.Binding {
	switch ctx {
	case models.ContextBrowse:
		return m.browseBindings()
	case models.ContextHelp:
		return m.helpBindings()
	}
	return m.searchBindings()
}

// Search mode leaves printable keys to the query input.
func (m *AppModel) searchBindings() []shortcut.Binding {
	return []shortcut.Binding{
		{Key: "enter", Description: "copy in default format", Category: catCopy, Action: func() { m.copyAs(m.appModel.Format) }},
		{Key: "s", Ctrl: true, Description: "download SVG file", Category: catCopy, Action: func() { m.copyAs(export.DownloadFile) }},
		{Key: "up", Description: "previous row", Category: catNavigation, Action: func() { m.move(-m.columns()) }},
		{Key: "down", Description: "next row", Category: catNavigation, Action: func() { m.move(m.columns()) }},
		{Key: "tab", Description: "browse mode", Category: catNavigation, Action: func() { m.setContext(models.ContextBrowse) }},
		{Key: "esc", Description: "clear search", Category: catNavigation, Action: m.clearQuery},
		{Key: "g", Ctrl: true, Description: "ask AI for icons", Category: catGeneral, Action: m.requestSuggestions},
		{Key: "f1", Description: "shortcuts", Category: catGeneral, Action: func() { m.setContext(models.ContextHelp) }},
		{Key: "c", Ctrl: true, Description: "quit", Category: catGeneral, Action: m.quit},
	}
}

func (m *AppModel) browseBindings() []shortcut.Binding {
	return []shortcut.Binding{
		{Key: "c", Description: "copy SVG markup", Category: catCopy, Action: func() { m.copyAs(export.SVGMarkup) }},
		{Key: "x", Description: "copy component snippet", Category: catCopy, Action: func() { m.copyAs(export.ComponentSnippet) }},
		{Key: "i", Description: "copy import statement", Category: catCopy, Action: func() { m.copyAs(export.ImportStatement) }},
		{Key: "d", Description: "download SVG file", Category: catCopy, Action: func() { m.copyAs(export.DownloadFile) }},
		{Key: "s", Ctrl: true, Description: "download SVG file", Category: catCopy, Action: func() { m.copyAs(export.DownloadFile) }},
		{Key: "enter", Description: "copy in default format", Category: catCopy, Action: func() { m.copyAs(m.appModel.Format) }},

		{Key: "left", Description: "previous icon", Category: catNavigation, Action: func() { m.move(-1) }},
		{Key: "right", Description: "next icon", Category: catNavigation, Action: func() { m.move(1) }},
		{Key: "up", Description: "previous row", Category: catNavigation, Action: func() { m.move(-m.columns()) }},
		{Key: "down", Description: "next row", Category: catNavigation, Action: func() { m.move(m.columns()) }},
		{Key: "h", Description: "previous icon", Category: catNavigation, Action: func() { m.move(-1) }},
		{Key: "l", Description: "next icon", Category: catNavigation, Action: func() { m.move(1) }},
		{Key: "k", Description: "previous row", Category: catNavigation, Action: func() { m.move(-m.columns()) }},
		{Key: "j", Description: "next row", Category: catNavigation, Action: func() { m.move(m.columns()) }},
		{Key: "n", Description: "next category", Category: catNavigation, Action: func() { m.cycleCategory(1) }},
		{Key: "p", Description: "previous category", Category: catNavigation, Action: func() { m.cycleCategory(-1) }},
		{Key: "/", Description: "search", Category: catNavigation, Action: func() { m.setContext(models.ContextSearch) }},
		{Key: "tab", Description: "search", Category: catNavigation, Action: func() { m.setContext(models.ContextSearch) }},
		{Key: "esc", Description: "all categories", Category: catNavigation, Action: func() { m.setCategory("") }},

		{Key: "+", Description: "larger", Category: catCustomize, Action: func() { m.adjust(update.AdjustSize(&m.appModel, update.SizeStep)) }},
		{Key: "=", Description: "larger", Category: catCustomize, Action: func() { m.adjust(update.AdjustSize(&m.appModel, update.SizeStep)) }},
		{Key: "-", Description: "smaller", Category: catCustomize, Action: func() { m.adjust(update.AdjustSize(&m.appModel, -update.SizeStep)) }},
		{Key: "]", Description: "thicker stroke", Category: catCustomize, Action: func() { m.adjust(update.AdjustStroke(&m.appModel, update.StrokeStep)) }},
		{Key: "[", Description: "thinner stroke", Category: catCustomize, Action: func() { m.adjust(update.AdjustStroke(&m.appModel, -update.StrokeStep)) }},
		{Key: "f", Description: "cycle default format", Category: catCustomize, Action: func() {
			update.CycleFormat(&m.appModel)
			m.savePrefs()
		}},

		{Key: "?", Description: "shortcuts", Category: catGeneral, Action: func() { m.setContext(models.ContextHelp) }},
		{Key: "q", Description: "quit", Category: catGeneral, Action: m.quit},
		{Key: "c", Ctrl: true, Description: "quit", Category: catGeneral, Action: m.quit},
	}
}

func (m *AppModel) helpBindings() []shortcut.Binding {
	back := func() { m.setContext(m.appModel.Previous) }
	return []shortcut.Binding{
		{Key: "esc", Description: "close", Category: catGeneral, Action: back},
		{Key: "?", Description: "close", Category: catGeneral, Action: back},
		{Key: "f1", Description: "close", Category: catGeneral, Action: back},
		{Key: "q", Description: "close", Category: catGeneral, Action: back},
		{Key: "c", Ctrl: true, Description: "quit", Category: catGeneral, Action: m.quit},
	}
}

func (m *AppModel) clearQuery() {
	if m.input.Value() == "" {
		m.setContext(models.ContextBrowse)
		return
	}
	m.input.SetValue("")
	m.appModel.Query = ""
	m.searchSeq++
	m.refresh()
}

func (m *AppModel) cycleCategory(dir int) {
	update.CycleCategory(&m.appModel, m.deps.Index.Catalog(), dir)
	m.refresh()
}

func (m *AppModel) setCategory(id string) {
	if m.appModel.Category == id {
		return
	}
	m.appModel.Category = id
	m.appModel.Selected = 0
	m.refresh()
}

func (m *AppModel) adjust(changed bool) {
	if changed {
		m.savePrefs()
	}
}

func (m *AppModel) quit() {
	m.queue(tea.Quit)
}
