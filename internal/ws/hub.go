// Package ws is the websocket transport: one broadcast topic per room, a
// hub that owns the topics, and per-connection read/write pumps that feed
// intents to the dispatcher.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/scoula/omok-server/internal/model"
)

// Hub owns the per-room topics and fans events out to them
type Hub struct {
	topics map[model.RoomID]*Topic
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		topics: make(map[model.RoomID]*Topic),
		logger: logger.With(slog.String("component", "ws")),
	}
}

// GetOrCreateTopic returns the topic for a room, creating and starting one
// if it doesn't exist
func (h *Hub) GetOrCreateTopic(roomID model.RoomID) *Topic {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topic, ok := h.topics[roomID]; ok {
		return topic
	}

	topic := NewTopic(roomID, h.logger)
	h.topics[roomID] = topic
	go topic.Run()
	return topic
}

// Topic returns the topic for a room, or nil if it doesn't exist
func (h *Hub) Topic(roomID model.RoomID) *Topic {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.topics[roomID]
}

// RemoveTopic closes and removes a room's topic
func (h *Hub) RemoveTopic(roomID model.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topic, ok := h.topics[roomID]; ok {
		topic.Close()
		delete(h.topics, roomID)
		h.logger.Info("room topic removed", slog.String("room_id", string(roomID)))
	}
}

// CleanupEmptyTopics removes topics with no subscribers
func (h *Hub) CleanupEmptyTopics() {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for id, topic := range h.topics {
		if topic.ClientCount() == 0 {
			topic.Close()
			delete(h.topics, id)
			removed++
		}
	}
	if removed > 0 {
		h.logger.Info("empty topics cleaned up", slog.Int("removed", removed))
	}
}

// Publish serializes an event and broadcasts it to the room's subscribers.
// Events for rooms with no topic are dropped; broadcasts are fire-and-forget.
func (h *Hub) Publish(roomID model.RoomID, event model.Event) {
	topic := h.Topic(roomID)
	if topic == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to serialize event",
			slog.String("room_id", string(roomID)),
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	topic.Broadcast(data)
}
