package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/scoula/omok-server/internal/model"
)

// Topic manages the websocket subscribers of a single room
type Topic struct {
	roomID  model.RoomID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewTopic creates a new Topic for a room
func NewTopic(roomID model.RoomID, logger *slog.Logger) *Topic {
	return &Topic{
		roomID:     roomID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("room_id", string(roomID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the topic's event loop
func (t *Topic) Run() {
	t.logger.Info("room topic started")
	for {
		select {
		case client := <-t.register:
			t.mu.Lock()
			t.clients[client] = true
			clientCount := len(t.clients)
			t.mu.Unlock()
			t.logger.Info("subscriber registered",
				slog.String("session_id", client.sessionID),
				slog.Int("total_subscribers", clientCount))

		case client := <-t.unregister:
			t.mu.Lock()
			if _, ok := t.clients[client]; ok {
				delete(t.clients, client)
				close(client.send)
				clientCount := len(t.clients)
				t.mu.Unlock()
				duration := time.Since(client.connectedAt)
				t.logger.Info("subscriber unregistered",
					slog.String("session_id", client.sessionID),
					slog.Duration("connection_duration", duration),
					slog.Int("total_subscribers", clientCount))
			} else {
				t.mu.Unlock()
			}

		case message := <-t.broadcast:
			t.mu.RLock()
			dropped := 0
			for client := range t.clients {
				select {
				case client.send <- message:
				default:
					dropped++
					t.logger.Warn("event dropped - subscriber buffer full",
						slog.String("session_id", client.sessionID))
				}
			}
			t.mu.RUnlock()
			if dropped > 0 {
				t.logger.Warn("broadcast partial failure", slog.Int("dropped", dropped))
			}

		case <-t.done:
			t.mu.Lock()
			for client := range t.clients {
				close(client.send)
				delete(t.clients, client)
			}
			t.mu.Unlock()
			t.logger.Info("room topic stopped")
			return
		}
	}
}

// Register adds a subscriber to the topic. A no-op after Close: the Run
// loop is gone, so blocking on the channel would hang the caller forever.
func (t *Topic) Register(client *Client) {
	select {
	case t.register <- client:
	case <-t.done:
	}
}

// Unregister removes a subscriber from the topic. A no-op after Close, so
// a connection outliving its room can still tear down cleanly.
func (t *Topic) Unregister(client *Client) {
	select {
	case t.unregister <- client:
	case <-t.done:
	}
}

// Broadcast queues a message for all subscribers, dropping it if the topic
// buffer is full
func (t *Topic) Broadcast(message []byte) {
	select {
	case t.broadcast <- message:
	default:
		t.logger.Warn("broadcast dropped - topic buffer full")
	}
}

// Close shuts down the topic and disconnects its subscribers
func (t *Topic) Close() {
	close(t.done)
}

// ClientCount returns the number of connected subscribers
func (t *Topic) ClientCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.clients)
}
