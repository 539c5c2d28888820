package dispatch

import (
	"sync"

	"github.com/scoula/omok-server/internal/model"
)

// binding ties a transport session to the seat it joined as
type binding struct {
	roomID   model.RoomID
	playerID model.PlayerID
}

// SessionBinder remembers which room and player each transport session
// belongs to, so a dropped connection can be reconciled into a leave.
type SessionBinder struct {
	mu       sync.Mutex
	sessions map[string]binding
}

// NewSessionBinder creates an empty SessionBinder
func NewSessionBinder() *SessionBinder {
	return &SessionBinder{
		sessions: make(map[string]binding),
	}
}

// Bind records the seat a session joined as, replacing any prior binding
func (b *SessionBinder) Bind(sessionID string, roomID model.RoomID, playerID model.PlayerID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[sessionID] = binding{roomID: roomID, playerID: playerID}
}

// Unbind removes and returns a session's binding. Safe to call for a session
// that was never bound or is already unbound.
func (b *SessionBinder) Unbind(sessionID string) (model.RoomID, model.PlayerID, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bd, ok := b.sessions[sessionID]
	if !ok {
		return "", "", false
	}
	delete(b.sessions, sessionID)
	return bd.roomID, bd.playerID, true
}
