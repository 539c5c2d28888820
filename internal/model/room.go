package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// MaxPlayers is the seat count of every room
const MaxPlayers = 2

// Room is one game session container: two seats, a board, and the state of
// the game being played in it. A Room is not safe for concurrent use; all
// mutation happens under the owning registry's per-room lock.
type Room struct {
	ID      RoomID   `json:"roomId"`
	Title   string   `json:"title"`
	Players []Player `json:"players"`

	Board       Board    `json:"board"`
	Turn        int      `json:"turn"`
	BlackPlayer PlayerID `json:"blackPlayer,omitempty"`
	Playing     bool     `json:"isPlaying"`
	Ready       int      `json:"ready"`

	// Turn timer bookkeeping. The timer itself runs client-side; timeouts
	// arrive as intents (see dispatch). Start time is wall-clock millis.
	TurnTimerStartTime int64 `json:"turnTimerStartTime"`
	TurnLimit          int64 `json:"turnLimit"`

	CreatedAt time.Time `json:"createdAt"`
}

// GetPlayer returns the seated player with the given ID, or nil
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// HasPlayer reports whether a player with the given ID is seated
func (r *Room) HasPlayer(id PlayerID) bool {
	return r.GetPlayer(id) != nil
}

// Full reports whether both seats are taken
func (r *Room) Full() bool {
	return len(r.Players) >= MaxPlayers
}

// RemovePlayer removes the seated player with the given ID and reports
// whether a removal occurred.
func (r *Room) RemovePlayer(id PlayerID) bool {
	for i := range r.Players {
		if r.Players[i].ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

// InitGame starts a fresh game: clears the board, resets the turn counter,
// assigns black, and arms the first turn's timer.
func (r *Room) InitGame(blackPlayer PlayerID, now time.Time) {
	r.Board.Reset()
	r.Turn = 1
	r.Ready = 0
	r.Playing = true
	r.BlackPlayer = blackPlayer
	r.TurnTimerStartTime = now.UnixMilli()
}

// EndGame terminates the current game (win, surrender, or timeout) and
// returns the room to the ready phase.
func (r *Room) EndGame() {
	r.Playing = false
	r.Ready = 0
}
