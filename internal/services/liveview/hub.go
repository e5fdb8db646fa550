// Package liveview turns row-level change notifications into cancellable
// streams of query snapshots.
package liveview

import (
	"sync"

	"go.uber.org/zap"
)

// subscriber is marked stale by every change it matches. A nil match
// accepts all changes. mark must not block.
type subscriber struct {
	match func(Change) bool
	mark  func()
}

// Hub fans published changes out to registered streams.
type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]subscriber)}
}

// Publish marks every subscriber whose filter matches c.
func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if sub.match == nil || sub.match(c) {
			sub.mark()
		}
	}
}

// Resync marks every subscriber stale regardless of filter. Call it when
// changes may have been missed, e.g. after the change feed reconnects.
func (h *Hub) Resync() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		sub.mark()
	}

	zap.L().Info("live views resynced", zap.Int("streams", len(h.subs)))
}

// HandleNotification decodes a raw notification payload and publishes it.
// Undecodable payloads are logged and dropped.
func (h *Hub) HandleNotification(payload string) {
	c, err := DecodeChange(payload)
	if err != nil {
		zap.L().Warn("dropping change notification", zap.String("payload", payload), zap.Error(err))
		return
	}

	h.Publish(c)
}

// Len reports the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

func (h *Hub) subscribe(match func(Change) bool, mark func()) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.subs[id] = subscriber{match: match, mark: mark}

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		delete(h.subs, id)
	}
}
