package response

import (
	"time"

	"github.com/scoula/omok-server/internal/directory"
	"github.com/scoula/omok-server/internal/model"
)

// Player is the API representation of a seated player
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Room is the full API representation of a room
type Room struct {
	ID                 string      `json:"roomId"`
	Title              string      `json:"title"`
	Players            []Player    `json:"players"`
	Board              model.Board `json:"board"`
	Turn               int         `json:"turn"`
	BlackPlayer        string      `json:"blackPlayer,omitempty"`
	Playing            bool        `json:"isPlaying"`
	Ready              int         `json:"ready"`
	TurnTimerStartTime int64       `json:"turnTimerStartTime"`
	TurnLimit          int64       `json:"turnLimit"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// RoomFromModel converts a model Room to its API representation
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, Player{ID: string(p.ID), Name: p.Name})
	}
	return Room{
		ID:                 string(r.ID),
		Title:              r.Title,
		Players:            players,
		Board:              r.Board,
		Turn:               r.Turn,
		BlackPlayer:        string(r.BlackPlayer),
		Playing:            r.Playing,
		Ready:              r.Ready,
		TurnTimerStartTime: r.TurnTimerStartTime,
		TurnLimit:          r.TurnLimit,
		CreatedAt:          r.CreatedAt,
	}
}

// RoomListing is one entry of the room list
type RoomListing struct {
	ID          string    `json:"roomId"`
	Title       string    `json:"title"`
	PlayerCount int       `json:"playerCount"`
	Playing     bool      `json:"isPlaying"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListingFromInfo converts a directory entry to its API representation
func ListingFromInfo(info directory.Info) RoomListing {
	return RoomListing{
		ID:          string(info.ID),
		Title:       info.Title,
		PlayerCount: info.PlayerCount,
		Playing:     info.Playing,
		CreatedAt:   info.CreatedAt,
	}
}

// RoomList is the response body for listing rooms
type RoomList struct {
	Rooms []RoomListing `json:"rooms"`
}
