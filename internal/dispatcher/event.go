package dispatcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/iconx/internal/eventbus"
	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/render"
	"github.com/Rorical/iconx/internal/update"
)

// EventDispatcher handles routing events between core and UI
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}

// ListenForUIEvents waits for the next core event. Re-issue it after each
// message to keep listening; it yields nil once the bus closes or the
// dispatcher stops.
func (ed *EventDispatcher) ListenForUIEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ed.ctx.Done():
			return nil
		case ev, ok := <-ed.eventBus.CoreToUI():
			if !ok {
				return nil
			}
			return update.CoreEventMsg{Event: ev}
		}
	}
}

// RequestCopy asks core to copy icon for consumer.
func (ed *EventDispatcher) RequestCopy(consumer, icon string, format export.Format, params render.Params) error {
	return ed.eventBus.SendToCore(eventbus.CopyRequestEvent{
		Consumer: consumer,
		Icon:     icon,
		Format:   format,
		Params:   params,
	})
}

func (ed *EventDispatcher) RequestDownload(consumer, icon string, params render.Params) error {
	return ed.eventBus.SendToCore(eventbus.DownloadRequestEvent{
		Consumer: consumer,
		Icon:     icon,
		Params:   params,
	})
}

// Release tells core the consumer is gone.
func (ed *EventDispatcher) Release(consumer string) error {
	return ed.eventBus.SendToCore(eventbus.ResetRequestEvent{Consumer: consumer})
}
