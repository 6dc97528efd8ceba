package services

import (
	"sync"

	"nigraan/internal/models"
)

// DisplayBoard holds the last published display state and raw snapshot.
// The sampler is the only writer; HTTP handlers and the WebSocket hub read
// from it, so serving a request never triggers a fresh OS query.
type DisplayBoard struct {
	mu       sync.RWMutex
	state    models.DisplayState
	snapshot models.Snapshot
	ready    bool
	notify   func(models.DisplayState)
}

func NewDisplayBoard() *DisplayBoard {
	return &DisplayBoard{}
}

// SetNotify registers a callback invoked after every publish. Must be set
// before the sampler starts.
func (b *DisplayBoard) SetNotify(fn func(models.DisplayState)) {
	b.mu.Lock()
	b.notify = fn
	b.mu.Unlock()
}

// Publish replaces the board contents with this tick's results
func (b *DisplayBoard) Publish(state models.DisplayState, snapshot models.Snapshot) {
	b.mu.Lock()
	b.state = state
	b.snapshot = snapshot
	b.ready = true
	notify := b.notify
	b.mu.Unlock()

	if notify != nil {
		notify(state)
	}
}

// State returns the latest display state; ok is false before the first tick
func (b *DisplayBoard) State() (models.DisplayState, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state, b.ready
}

// Snapshot returns the latest raw snapshot; ok is false before the first tick
func (b *DisplayBoard) Snapshot() (models.Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot, b.ready
}
