package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/iconx/internal/config"
	"github.com/Rorical/iconx/internal/dispatcher"
	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/internal/render"
	"github.com/Rorical/iconx/internal/shortcut"
	"github.com/Rorical/iconx/internal/update"
	"github.com/Rorical/iconx/ui/components"
	"github.com/Rorical/iconx/ui/styles"
)

const (
	suggestTimeout = 20 * time.Second
	relatedLimit   = 6
)

// AppModel is the Bubble Tea model. Key presses go through the shortcut
// dispatcher first; whatever it does not claim is typed into the query.
type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	keys       *shortcut.Dispatcher
	deps       Deps

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	spinning  bool
	searchSeq int
	shownIcon string
	// prefsGen numbers preference snapshots; prefs drops stale ones.
	prefsGen uint64
	prefs    *config.SnapshotWriter
	// cmds collects commands queued by shortcut actions.
	cmds []tea.Cmd

	previewKey    string
	previewMarkup string
	previewErr    error
}

func NewAppModel(deps Deps, disp *dispatcher.EventDispatcher) (*AppModel, error) {
	params, err := deps.Config.Preferences.Params()
	if err != nil {
		return nil, fmt.Errorf("invalid preferences: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Search icons"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.BusyStyle()

	m := &AppModel{
		appModel: models.AppModel{
			Params:  params,
			Format:  deps.Config.Preferences.Format(),
			Context: models.ContextSearch,
			Status:  "Ready",
		},
		dispatcher: disp,
		keys:       shortcut.NewDispatcher(deps.Log),
		deps:       deps,
		input:      ti,
		spinner:    sp,
		help:       help.New(),
		prefs:      &config.SnapshotWriter{},
	}
	m.setContext(models.ContextSearch)
	update.RunSearch(&m.appModel, deps.Index)
	m.shownIcon, _ = m.appModel.Current()
	return m, nil
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.startSpinner(), m.dispatcher.ListenForUIEvents())
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		update.HandleWindowSizeMsg(&m.appModel, msg)
		m.help.Width = msg.Width
		return m, nil
	case update.SearchMsg:
		if msg.Seq == m.searchSeq {
			update.RunSearch(&m.appModel, m.deps.Index)
			m.selectionChanged()
		}
		return m, nil
	case update.PrefsSavedMsg:
		if msg.Err != nil {
			m.appModel.Status = "Could not save preferences: " + msg.Err.Error()
			m.deps.Log.Warn().Err(msg.Err).Msg("prefs.save_failed")
		}
		return m, nil
	case update.SuggestMsg:
		m.handleSuggestions(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.appModel.AnyInFlight() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.appModel.Context == models.ContextSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	ev := shortcut.FromTeaKey(msg)
	if m.keys.Dispatch(&ev) {
		return m.flush()
	}
	if m.appModel.Context != models.ContextSearch {
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.appModel.Query {
		m.appModel.Query = q
		m.searchSeq++
		return tea.Batch(cmd, update.DebounceSearch(m.searchSeq))
	}
	return cmd
}

func (m *AppModel) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *AppModel) flush() tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	return tea.Batch(cmds...)
}

func (m *AppModel) startSpinner() tea.Cmd {
	if m.spinning || !m.appModel.AnyInFlight() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// setContext swaps the whole binding set for ctx.
func (m *AppModel) setContext(ctx models.Context) {
	if ctx == models.ContextHelp {
		m.appModel.Previous = m.appModel.Context
	}
	m.appModel.Context = ctx
	m.keys.Replace(m.bindingsFor(ctx)...)
	if ctx == models.ContextSearch {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// selectionChanged drops feedback that belonged to the previous icon.
func (m *AppModel) selectionChanged() {
	name, _ := m.appModel.Current()
	if name == m.shownIcon {
		return
	}
	m.shownIcon = name
	for id := range m.appModel.CopyStates {
		if err := m.dispatcher.Release(id); err != nil {
			m.deps.Log.Debug().Err(err).Str("consumer", id).Msg("release.failed")
		}
	}
}

func (m *AppModel) move(delta int) {
	update.MoveSelection(&m.appModel, delta)
	m.selectionChanged()
}

func (m *AppModel) columns() int {
	cols, _ := components.GridLayout(m.appModel.Results, m.gridWidth())
	return cols
}

func (m *AppModel) copyAs(format export.Format) {
	name, ok := m.appModel.Current()
	if !ok {
		m.appModel.Status = "Nothing selected"
		return
	}
	id := models.ConsumerID(format)
	var err error
	if format == export.DownloadFile {
		err = m.dispatcher.RequestDownload(id, name, m.appModel.Params)
	} else {
		err = m.dispatcher.RequestCopy(id, name, format, m.appModel.Params)
	}
	if err != nil {
		m.appModel.Status = "Error sending request: " + err.Error()
	}
}

func (m *AppModel) refresh() {
	update.RunSearch(&m.appModel, m.deps.Index)
	m.selectionChanged()
}

// savePrefs persists the current size, stroke and default format.
func (m *AppModel) savePrefs() {
	cfg := *m.deps.Config
	cfg.Preferences.Size = m.appModel.Params.Size
	cfg.Preferences.StrokeWidth = m.appModel.Params.StrokeWidth
	cfg.Preferences.DefaultFormat = m.appModel.Format.String()
	m.deps.Config.Preferences = cfg.Preferences
	m.prefsGen++
	gen, w := m.prefsGen, m.prefs
	m.queue(func() tea.Msg {
		_, err := w.Write(gen, cfg)
		return update.PrefsSavedMsg{Err: err}
	})
}

func (m *AppModel) requestSuggestions() {
	query := strings.TrimSpace(m.appModel.Query)
	switch {
	case m.deps.Suggester == nil:
		m.appModel.Status = "AI suggestions need a profile: iconx profile add"
		return
	case query == "":
		m.appModel.Status = "Describe the icon you need first"
		return
	}
	m.appModel.Status = "Asking for suggestions"
	s := m.deps.Suggester
	m.queue(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()
		names, err := s.Suggest(ctx, query, 12)
		return update.SuggestMsg{Query: query, Names: names, Err: err}
	})
}

func (m *AppModel) handleSuggestions(msg update.SuggestMsg) {
	if msg.Err != nil {
		m.appModel.Status = "Suggestion failed: " + msg.Err.Error()
		return
	}
	if len(msg.Names) == 0 {
		m.appModel.Status = fmt.Sprintf("No suggestions for %q", msg.Query)
		return
	}
	m.appModel.Suggested = msg.Names
	m.appModel.Category = ""
	m.appModel.Selected = 0
	m.appModel.SetResults(msg.Names)
	m.appModel.Status = fmt.Sprintf("%d suggestions for %q", len(msg.Names), msg.Query)
	m.selectionChanged()
}

func (m *AppModel) gridWidth() int {
	w := m.appModel.Width * 3 / 5
	if w < 20 {
		w = 20
	}
	return w
}

// preview renders the selection through the same emitter path as a copy,
// caching by icon and parameters.
func (m *AppModel) preview() components.Preview {
	name, ok := m.appModel.Current()
	if !ok {
		return components.Preview{}
	}
	p := m.appModel.Params
	key := fmt.Sprintf("%s|%g|%g", name, p.Size, p.StrokeWidth)
	if key != m.previewKey {
		m.previewKey = key
		res, err := m.deps.Emitter.Emit(name, export.SVGMarkup, p)
		m.previewMarkup, m.previewErr = res.Text, err
	}

	var notFound *render.IconNotFoundError
	pv := components.Preview{
		Name:    name,
		Markup:  m.previewMarkup,
		Missing: errors.As(m.previewErr, &notFound),
		Size:    p.Size,
		Stroke:  p.StrokeWidth,
		Default: m.appModel.Format,
		States:  make(map[export.Format]models.CopyState),
		Related: m.deps.Index.Related(name, relatedLimit),
		Spinner: m.spinner.View(),
	}
	if cat, ok := m.deps.Index.Catalog().CategoryOf(name); ok {
		pv.Category = cat.Name
	}
	for _, f := range export.Formats() {
		pv.States[f] = m.appModel.StateOf(models.ConsumerID(f))
	}
	return pv
}

func (m *AppModel) View() string {
	width := m.appModel.Width
	if width == 0 {
		width = 80
	}
	height := m.appModel.Height
	if height == 0 {
		height = 24
	}

	var b strings.Builder
	b.WriteString(m.header(width))
	b.WriteString("\n")

	bodyHeight := height - 6
	if m.appModel.Context == models.ContextHelp {
		b.WriteString(m.helpView())
	} else {
		grid := components.RenderGrid(m.appModel.Results, m.appModel.Selected, m.gridWidth(), bodyHeight)
		panel := components.RenderPreview(m.preview(), width-m.gridWidth()-2, bodyHeight/2)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(m.gridWidth()).Render(grid), panel))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.AnyInFlight(), m.spinner.View(), width))

	return b.String()
}

func (m *AppModel) header(width int) string {
	title := styles.TitleStyle().Render("iconx")
	scope := "all categories"
	if m.appModel.Category != "" {
		if cat, ok := m.deps.Index.Catalog().Category(m.appModel.Category); ok {
			scope = cat.Name
		}
	}
	meta := styles.MutedStyle().Render(fmt.Sprintf("%s · %s", m.appModel.Context, scope))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, meta) + "\n" +
		styles.InputStyle(width).Render(m.input.View())
}

// helpView lists the shortcuts of the context the overlay was opened from.
func (m *AppModel) helpView() string {
	prev := shortcut.NewDispatcher(nil)
	prev.Replace(m.bindingsFor(m.appModel.Previous)...)

	var b strings.Builder
	for i, g := range prev.Groups() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(styles.TitleStyle().Render(g.Category))
		b.WriteString("\n")
		lines := make([]string, 0, len(g.Bindings))
		for _, bd := range g.Bindings {
			h := shortcut.HelpBinding(bd).Help()
			lines = append(lines, fmt.Sprintf("  %-12s %s", h.Key, h.Desc))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	return styles.HelpStyle().Render(b.String())
}
