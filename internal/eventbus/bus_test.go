package eventbus

import (
	"errors"
	"testing"
	"time"

	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
)

func TestSendToCoreDelivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	want := CopyRequestEvent{Consumer: "grid", Icon: "Heart", Format: export.ImportStatement}
	if err := eb.SendToCore(want); err != nil {
		t.Fatalf("SendToCore: %v", err)
	}

	got, ok := (<-eb.UIToCore()).(CopyRequestEvent)
	if !ok {
		t.Fatalf("unexpected event type")
	}
	if got.Consumer != want.Consumer || got.Icon != want.Icon || got.Format != want.Format {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSendToUIDelivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	ev := CopyStateEvent{Consumer: "preview", State: models.CopyState{Phase: models.Succeeded, IconName: "Heart"}}
	if err := eb.SendToUI(ev); err != nil {
		t.Fatalf("SendToUI: %v", err)
	}
	got := (<-eb.CoreToUI()).(CopyStateEvent)
	if got.State.Phase != models.Succeeded {
		t.Fatalf("phase = %v", got.State.Phase)
	}
}

func TestFullChannelReportsError(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < cap(eb.uiToCore); i++ {
		if err := eb.SendToCore(ResetRequestEvent{Consumer: "x"}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	if err := eb.SendToCore(ResetRequestEvent{Consumer: "x"}); err == nil {
		t.Fatalf("expected full channel error")
	}
	if len(reported) != 1 || reported[0].Operation != "SendToCore" {
		t.Fatalf("reported = %+v", reported)
	}
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	cb := NewCircuitBreaker(2, 20*time.Millisecond)
	cb.RecordFailure()
	if cb.IsOpen() {
		t.Fatalf("open after one failure")
	}
	cb.RecordFailure()
	if !cb.IsOpen() {
		t.Fatalf("expected open after max failures")
	}
	time.Sleep(30 * time.Millisecond)
	if cb.IsOpen() {
		t.Fatalf("expected half-open after reset timeout")
	}
	cb.RecordSuccess()
	if cb.IsOpen() {
		t.Fatalf("expected closed after success")
	}
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	if err := eb.SendToUI(CopyStateEvent{Consumer: "grid"}); !errors.Is(err, ErrBusClosed) {
		t.Fatalf("SendToUI after close = %v", err)
	}
	if err := eb.SendToCore(ResetRequestEvent{Consumer: "grid"}); !errors.Is(err, ErrBusClosed) {
		t.Fatalf("SendToCore after close = %v", err)
	}
}

func TestStalledUIDoesNotBlockRequests(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	for i := 0; i < cap(eb.coreToUI); i++ {
		if err := eb.SendToUI(CopyStateEvent{Consumer: "x"}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		if err := eb.SendToUI(CopyStateEvent{Consumer: "x"}); err == nil {
			t.Fatalf("expected full channel error")
		}
	}

	toCore, toUI := eb.GetCircuitBreakerState()
	if toUI != CircuitOpen || toCore != CircuitClosed {
		t.Fatalf("breakers = core %v, ui %v", toCore, toUI)
	}
	if err := eb.SendToCore(CopyRequestEvent{Consumer: "grid", Icon: "Heart"}); err != nil {
		t.Fatalf("SendToCore with UI breaker open: %v", err)
	}
}
