package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/iconx/internal/config"
	"github.com/Rorical/iconx/internal/dispatcher"
	"github.com/Rorical/iconx/internal/eventbus"
	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/internal/update"
)

func newTestModel(t *testing.T) (*AppModel, *eventbus.EventBus, *config.Config) {
	t.Helper()
	t.Setenv("ICONX_HOME", t.TempDir())
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	deps, err := BuildDeps(cfg, nil)
	if err != nil {
		t.Fatalf("BuildDeps: %v", err)
	}
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)
	m, err := NewAppModel(deps, dispatcher.NewEventDispatcher(eb))
	if err != nil {
		t.Fatalf("NewAppModel: %v", err)
	}
	return m, eb, cfg
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func nextUIEvent(t *testing.T, eb *eventbus.EventBus) eventbus.UIEvent {
	t.Helper()
	select {
	case ev := <-eb.UIToCore():
		return ev
	case <-time.After(time.Second):
		t.Fatalf("no event sent to core")
	}
	return nil
}

func typeQuery(m *AppModel, q string) {
	for _, r := range q {
		m.Update(runes(string(r)))
	}
	m.Update(update.SearchMsg{Seq: m.searchSeq})
}

func TestTypingSearchesAfterDebounce(t *testing.T) {
	m, _, _ := newTestModel(t)
	typeQuery(m, "heart")

	if m.appModel.Query != "heart" {
		t.Fatalf("Query = %q", m.appModel.Query)
	}
	if name, _ := m.appModel.Current(); name != "Heart" {
		t.Fatalf("first result = %q, results %v", name, m.appModel.Results)
	}

	before := append([]string(nil), m.appModel.Results...)
	m.Update(update.SearchMsg{Seq: m.searchSeq - 1})
	if len(before) != len(m.appModel.Results) {
		t.Fatalf("stale debounce tick re-ran the search")
	}
}

func TestEnterCopiesInDefaultFormat(t *testing.T) {
	m, eb, _ := newTestModel(t)
	typeQuery(m, "heart")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	ev, ok := nextUIEvent(t, eb).(eventbus.CopyRequestEvent)
	if !ok {
		t.Fatalf("expected CopyRequestEvent")
	}
	if ev.Icon != "Heart" || ev.Format != export.SVGMarkup || ev.Consumer != models.ConsumerID(export.SVGMarkup) {
		t.Fatalf("event = %+v", ev)
	}
}

func TestBrowseModeFormatKeys(t *testing.T) {
	m, eb, _ := newTestModel(t)
	typeQuery(m, "heart")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.appModel.Context != models.ContextBrowse {
		t.Fatalf("context = %v", m.appModel.Context)
	}

	m.Update(runes("x"))
	copyEv := nextUIEvent(t, eb).(eventbus.CopyRequestEvent)
	if copyEv.Format != export.ComponentSnippet {
		t.Fatalf("format = %v", copyEv.Format)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if _, ok := nextUIEvent(t, eb).(eventbus.DownloadRequestEvent); !ok {
		t.Fatalf("ctrl+s did not request a download")
	}

	// Browse keys must not leak into the query.
	if m.appModel.Query != "heart" {
		t.Fatalf("Query = %q", m.appModel.Query)
	}
}

func TestSizeChangePersists(t *testing.T) {
	m, _, cfg := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := m.Update(runes("+"))
	if m.appModel.Params.Size != 28 {
		t.Fatalf("Size = %v", m.appModel.Params.Size)
	}
	if cmd == nil {
		t.Fatalf("no save command queued")
	}
	saved, ok := cmd().(update.PrefsSavedMsg)
	if !ok || saved.Err != nil {
		t.Fatalf("save = %+v", saved)
	}

	reloaded, err := config.LoadConfigFrom(cfg.Path())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Preferences.Size != 28 {
		t.Fatalf("persisted size = %v", reloaded.Preferences.Size)
	}
}

func TestOutOfOrderSavesKeepLatestSize(t *testing.T) {
	m, _, cfg := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, first := m.Update(runes("+"))
	_, second := m.Update(runes("+"))
	if first == nil || second == nil {
		t.Fatalf("expected a save command per keypress")
	}

	// The later save finishing first must not be overwritten by the older one.
	if saved := second().(update.PrefsSavedMsg); saved.Err != nil {
		t.Fatalf("second save: %v", saved.Err)
	}
	if saved := first().(update.PrefsSavedMsg); saved.Err != nil {
		t.Fatalf("first save: %v", saved.Err)
	}

	reloaded, err := config.LoadConfigFrom(cfg.Path())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Preferences.Size != 32 {
		t.Fatalf("persisted size = %v, want 32", reloaded.Preferences.Size)
	}
}

func TestHelpContextReplacesBindings(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(runes("?"))
	if m.appModel.Context != models.ContextHelp {
		t.Fatalf("context = %v", m.appModel.Context)
	}

	m.Update(runes("c"))
	if m.appModel.Context != models.ContextHelp {
		t.Fatalf("browse binding fired inside help")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.appModel.Context != models.ContextBrowse {
		t.Fatalf("esc returned to %v", m.appModel.Context)
	}
}

func TestCoreEventUpdatesFeedback(t *testing.T) {
	m, _, _ := newTestModel(t)
	id := models.ConsumerID(export.ImportStatement)
	m.Update(update.CoreEventMsg{Event: eventbus.CopyStateEvent{
		Consumer: id,
		State:    models.CopyState{Phase: models.Failed, IconName: "Nope", LastError: "Nope is not available in the icon library"},
	}})

	if m.appModel.StateOf(id).Phase != models.Failed {
		t.Fatalf("state = %+v", m.appModel.StateOf(id))
	}
	if m.appModel.Status != "Nope is not available in the icon library" {
		t.Fatalf("Status = %q", m.appModel.Status)
	}
}

func TestSuggestWithoutProfile(t *testing.T) {
	m, _, _ := newTestModel(t)
	typeQuery(m, "broken")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if m.appModel.Status != "AI suggestions need a profile: iconx profile add" {
		t.Fatalf("Status = %q", m.appModel.Status)
	}
}

func TestViewRenders(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	typeQuery(m, "heart")
	if out := wrapSafe(m, nil).View(); out == "" {
		t.Fatalf("empty view")
	}
}
