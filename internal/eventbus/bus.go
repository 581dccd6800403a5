package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/internal/render"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// CopyRequestEvent - UI asks core to copy an icon in a format
type CopyRequestEvent struct {
	Consumer string
	Icon     string
	Format   export.Format
	Params   render.Params
}

func (e CopyRequestEvent) UIEvent() {}

// DownloadRequestEvent - UI asks core to save an icon as a file
type DownloadRequestEvent struct {
	Consumer string
	Icon     string
	Params   render.Params
}

func (e DownloadRequestEvent) UIEvent() {}

// ResetRequestEvent - UI drops a consumer's feedback (consumer went away)
type ResetRequestEvent struct {
	Consumer string
}

func (e ResetRequestEvent) UIEvent() {}

// CopyStateEvent - Core pushes a consumer's copy state to UI
type CopyStateEvent struct {
	Consumer string
	State    models.CopyState
}

func (e CopyStateEvent) CoreEvent() {}

// ErrBusClosed is returned when sending on a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker implements circuit breaker pattern
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen {
		// Check if we should transition to half-open
		if time.Since(cb.lastFailureTime) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
		}
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount++
	cb.lastFailureTime = time.Now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	uiToCore      chan UIEvent
	coreToUI      chan CoreEvent
	errorCallback func(EventBusError)
	// Each direction trips on its own, so a stalled UI cannot block requests.
	toCoreBreaker *CircuitBreaker
	toUIBreaker   *CircuitBreaker
	mu            sync.RWMutex
	closed        bool
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:      make(chan UIEvent, 100),
		coreToUI:      make(chan CoreEvent, 100),
		toCoreBreaker: NewCircuitBreaker(5, 30*time.Second),
		toUIBreaker:   NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(cb *CircuitBreaker, operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	cb.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrBusClosed
	}

	if eb.toCoreBreaker.IsOpen() {
		err := errors.New("circuit breaker is open")
		eb.reportError(eb.toCoreBreaker, "SendToCore", err)
		return err
	}

	select {
	case eb.uiToCore <- event:
		eb.toCoreBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("UI to Core channel is full")
		eb.reportError(eb.toCoreBreaker, "SendToCore", err)
		return err
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrBusClosed
	}

	if eb.toUIBreaker.IsOpen() {
		err := errors.New("circuit breaker is open")
		eb.reportError(eb.toUIBreaker, "SendToUI", err)
		return err
	}

	select {
	case eb.coreToUI <- event:
		eb.toUIBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("Core to UI channel is full")
		eb.reportError(eb.toUIBreaker, "SendToUI", err)
		return err
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

// GetCircuitBreakerState reports the breakers guarding SendToCore and
// SendToUI.
func (eb *EventBus) GetCircuitBreakerState() (toCore, toUI CircuitBreakerState) {
	return eb.toCoreBreaker.State(), eb.toUIBreaker.State()
}

func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}