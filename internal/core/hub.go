package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rorical/iconx/internal/models"
)

// Hub hands out one Coordinator per consumer id. Coordinators share
// collaborators but no state.
type Hub struct {
	mu           sync.Mutex
	coordinators map[string]*Coordinator

	emitter   Emitter
	clipboard ClipboardWriter
	saver     FileSaver
	opts      []CoordinatorOption
}

func NewHub(emitter Emitter, clipboard ClipboardWriter, saver FileSaver, opts ...CoordinatorOption) *Hub {
	return &Hub{
		coordinators: make(map[string]*Coordinator),
		emitter:      emitter,
		clipboard:    clipboard,
		saver:        saver,
		opts:         opts,
	}
}

// HubOptions builds the options shared by every coordinator of a hub.
func HubOptions(success, failure time.Duration, log *zerolog.Logger, notify func(string, models.CopyState)) []CoordinatorOption {
	return []CoordinatorOption{
		WithResetDelays(success, failure),
		WithLogger(log),
		WithNotify(notify),
	}
}

// Get returns the coordinator for id, creating it on first use.
func (h *Hub) Get(id string) *Coordinator {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.coordinators[id]; ok {
		return c
	}
	c := NewCoordinator(id, h.emitter, h.clipboard, h.saver, h.opts...)
	h.coordinators[id] = c
	return c
}

// Release resets and forgets the coordinator for id, as when its consumer
// goes away.
func (h *Hub) Release(id string) {
	h.mu.Lock()
	c, ok := h.coordinators[id]
	delete(h.coordinators, id)
	h.mu.Unlock()
	if ok {
		c.Reset()
	}
}

// ResetAll returns every coordinator to Idle.
func (h *Hub) ResetAll() {
	h.mu.Lock()
	all := make([]*Coordinator, 0, len(h.coordinators))
	for _, c := range h.coordinators {
		all = append(all, c)
	}
	h.mu.Unlock()
	for _, c := range all {
		c.Reset()
	}
}
