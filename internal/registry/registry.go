// Package registry is the in-memory authoritative store of rooms. It owns
// the per-room exclusive sections: every state-mutating operation against a
// room (join, leave, and anything the dispatcher runs through WithRoom)
// serializes on that room's lock, while operations on different rooms
// proceed independently.
package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/scoula/omok-server/internal/dependencies/clock"
	"github.com/scoula/omok-server/internal/directory"
	"github.com/scoula/omok-server/internal/model"
)

// entry pairs a room with its exclusive section. A destroyed room's entry
// has a nil room: holders of a stale entry pointer must re-check after
// locking, since the destroy may have happened between their map lookup and
// taking the room lock.
type entry struct {
	mu   sync.Mutex
	room *model.Room
}

// Registry manages room lifecycle and lookup
type Registry struct {
	mu     sync.RWMutex
	rooms  map[model.RoomID]*entry
	dir    directory.Directory
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new Registry
func New(dir directory.Directory, clk clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[model.RoomID]*entry),
		dir:    dir,
		clock:  clk,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// CreateRoom allocates a fresh empty room with a unique id
func (g *Registry) CreateRoom(ctx context.Context, title string) *model.Room {
	room := &model.Room{
		ID:        model.RoomID(uuid.NewString()),
		Title:     title,
		Players:   []model.Player{},
		Turn:      1,
		CreatedAt: g.clock.Now(),
	}

	g.mu.Lock()
	g.rooms[room.ID] = &entry{room: room}
	g.mu.Unlock()

	g.mirror(ctx, infoOf(room))

	g.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("title", title),
	)

	return snapshot(room)
}

// JoinRoom seats a player in a room. It fails if the room is absent or both
// seats are taken, and is idempotent for a player already seated.
func (g *Registry) JoinRoom(ctx context.Context, roomID model.RoomID, player model.Player) bool {
	e, ok := g.entry(roomID)
	if !ok {
		return false
	}

	e.mu.Lock()
	if e.room == nil {
		e.mu.Unlock()
		return false
	}
	if e.room.HasPlayer(player.ID) {
		e.mu.Unlock()
		return true
	}
	if e.room.Full() {
		e.mu.Unlock()
		return false
	}
	e.room.Players = append(e.room.Players, player)
	info := infoOf(e.room)
	e.mu.Unlock()

	g.mirror(ctx, info)

	g.logger.Info("player joined room",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(player.ID)),
	)
	return true
}

// LeaveRoom unseats a player and reports whether a removal occurred. Leaving
// always resets readiness and stops any game in progress; a room left empty
// is destroyed.
func (g *Registry) LeaveRoom(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) bool {
	g.mu.Lock()
	e, ok := g.rooms[roomID]
	if !ok {
		g.mu.Unlock()
		return false
	}

	e.mu.Lock()
	removed := e.room.RemovePlayer(playerID)
	e.room.Ready = 0
	empty := len(e.room.Players) == 0
	var info directory.Info
	if empty {
		delete(g.rooms, roomID)
		e.room = nil
	} else {
		e.room.Playing = false
		info = infoOf(e.room)
	}
	e.mu.Unlock()
	g.mu.Unlock()

	if empty {
		if err := g.dir.Delete(ctx, roomID); err != nil {
			g.logger.Warn("directory delete failed",
				slog.String("room_id", string(roomID)),
				slog.String("error", err.Error()),
			)
		}
		g.logger.Info("room destroyed", slog.String("room_id", string(roomID)))
	} else {
		g.mirror(ctx, info)
	}

	return removed
}

// GetRoom returns a snapshot of a room's state, or false if absent. The
// snapshot is safe to read without holding the room lock.
func (g *Registry) GetRoom(roomID model.RoomID) (*model.Room, bool) {
	e, ok := g.entry(roomID)
	if !ok {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.room == nil {
		return nil, false
	}
	return snapshot(e.room), true
}

// ListRooms returns snapshots of all rooms, in unspecified order
func (g *Registry) ListRooms() []*model.Room {
	g.mu.RLock()
	entries := make([]*entry, 0, len(g.rooms))
	for _, e := range g.rooms {
		entries = append(entries, e)
	}
	g.mu.RUnlock()

	rooms := make([]*model.Room, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.room != nil {
			rooms = append(rooms, snapshot(e.room))
		}
		e.mu.Unlock()
	}
	return rooms
}

// WithRoom runs fn against the live room under its exclusive section.
// Returns model.ErrRoomNotFound if the room is absent. Rule engine
// evaluation (including its probe-and-restore) must happen inside fn.
func (g *Registry) WithRoom(roomID model.RoomID, fn func(*model.Room) error) error {
	e, ok := g.entry(roomID)
	if !ok {
		return model.ErrRoomNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.room == nil {
		return model.ErrRoomNotFound
	}
	return fn(e.room)
}

// SyncDirectory re-mirrors a room's listing entry after a state change made
// through WithRoom (e.g. a game starting or ending).
func (g *Registry) SyncDirectory(ctx context.Context, roomID model.RoomID) {
	e, ok := g.entry(roomID)
	if !ok {
		return
	}
	e.mu.Lock()
	if e.room == nil {
		e.mu.Unlock()
		return
	}
	info := infoOf(e.room)
	e.mu.Unlock()
	g.mirror(ctx, info)
}

func (g *Registry) entry(roomID model.RoomID) (*entry, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.rooms[roomID]
	return e, ok
}

// mirror writes a listing entry through to the directory. Directory
// failures are logged, never surfaced: listing is best-effort and the
// in-memory state stays authoritative.
func (g *Registry) mirror(ctx context.Context, info directory.Info) {
	if err := g.dir.Save(ctx, info); err != nil {
		g.logger.Warn("directory save failed",
			slog.String("room_id", string(info.ID)),
			slog.String("error", err.Error()),
		)
	}
}

func infoOf(r *model.Room) directory.Info {
	return directory.Info{
		ID:          r.ID,
		Title:       r.Title,
		PlayerCount: len(r.Players),
		Playing:     r.Playing,
		CreatedAt:   r.CreatedAt,
	}
}

// snapshot copies a room so callers can read it lock-free
func snapshot(r *model.Room) *model.Room {
	cp := *r
	cp.Players = append([]model.Player(nil), r.Players...)
	return &cp
}
