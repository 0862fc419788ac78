package service

import (
	"sync"

	"github.com/MKhiriev/go-chama-sync/models"
)

// StatusBroadcaster holds the current sync status and fans it out to
// subscribers. Slow subscribers only ever see the latest value.
type StatusBroadcaster struct {
	mu          sync.RWMutex
	current     models.SyncStatus
	subscribers map[chan models.SyncStatus]struct{}
}

func NewStatusBroadcaster() *StatusBroadcaster {
	return &StatusBroadcaster{
		current:     models.StatusIdle(),
		subscribers: make(map[chan models.SyncStatus]struct{}),
	}
}

// Current returns the last published status, Idle before the first pass.
func (b *StatusBroadcaster) Current() models.SyncStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Publish replaces the current status and notifies every subscriber.
func (b *StatusBroadcaster) Publish(status models.SyncStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = status
	for ch := range b.subscribers {
		offer(ch, status)
	}
}

// Subscribe returns a channel receiving the current status immediately and
// every later one. The returned func unsubscribes and closes the channel.
func (b *StatusBroadcaster) Subscribe() (<-chan models.SyncStatus, func()) {
	ch := make(chan models.SyncStatus, 1)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	ch <- b.current
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, ch)
			close(ch)
			b.mu.Unlock()
		})
	}
}

// offer replaces whatever value ch still holds with status. Only Publish
// sends on subscriber channels and it holds the write lock, so the send
// never blocks.
func offer(ch chan models.SyncStatus, status models.SyncStatus) {
	select {
	case <-ch:
	default:
	}
	ch <- status
}
