package model

// PlayerID uniquely identifies a player for the lifetime of their session
type PlayerID string

// Player represents a game participant. Identity is the ID; Name is
// display-only and never used for equality.
type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}
