package app

import (
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Rorical/iconx/internal/catalog"
	"github.com/Rorical/iconx/internal/config"
	"github.com/Rorical/iconx/internal/core"
	"github.com/Rorical/iconx/internal/dispatcher"
	"github.com/Rorical/iconx/internal/eventbus"
	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/logger"
	"github.com/Rorical/iconx/internal/render"
	"github.com/Rorical/iconx/internal/search"
	"github.com/Rorical/iconx/internal/sink"
	"github.com/Rorical/iconx/internal/suggest"
)

// Deps are the read-only collaborators the UI works with.
type Deps struct {
	Config     *config.Config
	Index      *search.Index
	Normalizer *render.Normalizer
	Emitter    *export.Emitter
	// Suggester is nil when no AI profile is configured.
	Suggester *suggest.Suggester
	Log       *zerolog.Logger
}

// BuildDeps assembles catalog, index, renderer and emitter from cfg.
func BuildDeps(cfg *config.Config, log *zerolog.Logger) (Deps, error) {
	if log == nil {
		log = logger.L()
	}
	cat := catalog.Load()
	normalizer := render.NewNormalizer(render.Lucide())
	deps := Deps{
		Config:     cfg,
		Index:      search.NewIndex(cat),
		Normalizer: normalizer,
		Emitter:    export.NewEmitter(normalizer, export.WithLibrary(cfg.Preferences.Library)),
		Log:        log,
	}

	s, err := suggest.NewFromConfig(cfg, cat, log)
	switch {
	case err == nil:
		deps.Suggester = s
	case !errors.Is(err, suggest.ErrNotConfigured):
		return Deps{}, err
	}
	return deps, nil
}

// NewSinks returns the clipboard and download collaborators for cfg.
func NewSinks(cfg *config.Config, terminal io.Writer) (*sink.Clipboard, *sink.DirSaver) {
	dir := cfg.Preferences.DownloadDir
	if dir == "" {
		dir = sink.DefaultDownloadDir()
	}
	return sink.NewClipboard(terminal), sink.NewDirSaver(dir)
}

// Application manages the complete application lifecycle
type Application struct {
	deps       Deps
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ExportService
	model      *AppModel
}

func NewApplication(cfg *config.Config) (*Application, error) {
	log := logger.L()

	deps, err := BuildDeps(cfg, log)
	if err != nil {
		return nil, err
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Warn().Str("op", e.Operation).Err(e.Err).Msg("eventbus.error")
	})

	disp := dispatcher.NewEventDispatcher(eb)

	clipboard, saver := NewSinks(cfg, os.Stderr)
	service := core.NewExportService(deps.Emitter, clipboard, saver, eb, log,
		core.WithResetDelays(cfg.Preferences.CopyReset(), cfg.Preferences.ErrorReset()))

	model, err := NewAppModel(deps, disp)
	if err != nil {
		return nil, err
	}

	log.Info().Int("icons", deps.Index.Catalog().Len()).Str("downloads", saver.Dir()).Bool("ai", deps.Suggester != nil).Msg("app.ready")

	return &Application{
		deps:       deps,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(wrapSafe(app.model, app.deps.Log), tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}
