package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Rorical/iconx/internal/eventbus"
	"github.com/Rorical/iconx/internal/models"
)

// ExportService runs copy and download requests coming from the UI and
// pushes every coordinator state change back over the bus.
type ExportService struct {
	hub      *Hub
	eventBus *eventbus.EventBus
	log      *zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewExportService builds the hub so that each coordinator reports to eb.
func NewExportService(emitter Emitter, clipboard ClipboardWriter, saver FileSaver, eb *eventbus.EventBus, log *zerolog.Logger, opts ...CoordinatorOption) *ExportService {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &ExportService{
		eventBus: eb,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	all := append([]CoordinatorOption{WithLogger(log)}, opts...)
	all = append(all, WithNotify(s.pushStateToUI))
	s.hub = NewHub(emitter, clipboard, saver, all...)
	return s
}

// Start runs the event loop in a goroutine.
func (s *ExportService) Start() {
	go s.eventLoop()
}

func (s *ExportService) Stop() {
	s.cancel()
	s.hub.ResetAll()
}

func (s *ExportService) Hub() *Hub {
	return s.hub
}

func (s *ExportService) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *ExportService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.CopyRequestEvent:
		s.hub.Get(e.Consumer).StartCopy(s.ctx, e.Icon, e.Format, e.Params)
	case eventbus.DownloadRequestEvent:
		s.hub.Get(e.Consumer).StartDownload(s.ctx, e.Icon, e.Params)
	case eventbus.ResetRequestEvent:
		s.hub.Release(e.Consumer)
	default:
		s.log.Warn().Msgf("core: unhandled ui event %T", event)
	}
}

// pushStateToUI runs under the coordinator lock; SendToUI never blocks.
// A dropped push leaves the UI showing a stale phase until the next one.
func (s *ExportService) pushStateToUI(id string, state models.CopyState) {
	err := s.eventBus.SendToUI(eventbus.CopyStateEvent{Consumer: id, State: state})
	switch {
	case err == nil:
	case errors.Is(err, eventbus.ErrBusClosed):
		s.log.Debug().Str("consumer", id).Msg("core.push_state_after_close")
	default:
		s.log.Warn().Err(err).Str("consumer", id).Str("phase", state.Phase.String()).Msg("core.push_state_dropped")
	}
}
