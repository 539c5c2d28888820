// Package directory mirrors room metadata for listing surfaces (the lobby
// browser REST endpoint, ops tooling). The registry writes through to a
// directory on every membership change; authoritative game state never
// leaves process memory, so a backend only ever sees these snapshots.
package directory

import (
	"context"
	"time"

	"github.com/scoula/omok-server/internal/model"
)

// Info is the listing-level view of a room
type Info struct {
	ID          model.RoomID `json:"roomId"`
	Title       string       `json:"title"`
	PlayerCount int          `json:"playerCount"`
	Playing     bool         `json:"isPlaying"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Directory defines the interface for room listing backends
type Directory interface {
	Save(ctx context.Context, info Info) error
	Get(ctx context.Context, id model.RoomID) (*Info, error)
	Delete(ctx context.Context, id model.RoomID) error
	List(ctx context.Context) ([]Info, error)
}
