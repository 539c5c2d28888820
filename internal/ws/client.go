package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/scoula/omok-server/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Ping period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size in bytes
	maxMessageSize = 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// IntentSink consumes the intents and disconnects of one websocket session
type IntentSink interface {
	HandleIntent(ctx context.Context, sessionID string, intent model.Intent)
	HandleDisconnect(ctx context.Context, sessionID string)
}

// Client represents one websocket subscriber of a room topic
type Client struct {
	sessionID   string
	topic       *Topic
	conn        *websocket.Conn
	send        chan []byte
	connectedAt time.Time
}

// ServeWS upgrades the connection and runs the session's pumps. Blocks until
// the connection closes, then reconciles the disconnect with the sink.
func ServeWS(w http.ResponseWriter, r *http.Request, topic *Topic, sink IntentSink, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		sessionID:   uuid.NewString(),
		topic:       topic,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
	topic.Register(client)

	go client.writePump()
	client.readPump(sink, logger)
}

// readPump feeds inbound intents to the sink until the connection drops.
// Malformed frames are logged and skipped, never broadcast.
func (c *Client) readPump(sink IntentSink, logger *slog.Logger) {
	defer func() {
		c.topic.Unregister(c)
		_ = c.conn.Close()
		sink.HandleDisconnect(context.Background(), c.sessionID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error",
					slog.String("session_id", c.sessionID),
					slog.String("error", err.Error()))
			}
			return
		}

		var intent model.Intent
		if err := json.Unmarshal(data, &intent); err != nil {
			logger.Warn("dropping malformed intent",
				slog.String("session_id", c.sessionID),
				slog.String("error", err.Error()))
			continue
		}
		// The connection is already scoped to one room; the path wins over
		// whatever roomId the client wrote
		intent.RoomID = c.topic.roomID

		sink.HandleIntent(context.Background(), c.sessionID, intent)
	}
}

// writePump drains the send channel onto the connection and keeps the peer
// alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Topic closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
