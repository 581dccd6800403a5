package app

import (
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Rorical/iconx/internal/models"
)

// safeModel keeps a panic in one update from taking the terminal down.
type safeModel struct {
	m   *AppModel
	log *zerolog.Logger
}

func wrapSafe(m *AppModel, log *zerolog.Logger) safeModel {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("where", "tui.update").
				Str("panic", fmt.Sprint(r)).
				Str("stack", string(debug.Stack())).
				Msg("panic.recovered")

			s.m.cmds = nil
			s.m.setContext(models.ContextSearch)
			s.m.appModel.Status = "Unexpected error (see logs)"
			tm = s
			cmd = nil
		}
	}()

	_, c := s.m.Update(msg)
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("where", "tui.view").
				Str("panic", fmt.Sprint(r)).
				Str("stack", string(debug.Stack())).
				Msg("panic.recovered")
			out = "Unexpected error (see logs)"
		}
	}()
	return s.m.View()
}

var _ tea.Model = safeModel{}
