package memory

import (
	"context"
	"sync"

	"github.com/scoula/omok-server/internal/directory"
	"github.com/scoula/omok-server/internal/model"
)

// Store is an in-memory implementation of the directory interface
type Store struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]directory.Info
}

// New creates a new in-memory directory
func New() *Store {
	return &Store{
		rooms: make(map[model.RoomID]directory.Info),
	}
}

// Ensure Store implements the interface
var _ directory.Directory = (*Store)(nil)

func (s *Store) Save(ctx context.Context, info directory.Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[info.ID] = info
	return nil
}

func (s *Store) Get(ctx context.Context, id model.RoomID) (*directory.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return &info, nil
}

func (s *Store) Delete(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

func (s *Store) List(ctx context.Context) ([]directory.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]directory.Info, 0, len(s.rooms))
	for _, info := range s.rooms {
		infos = append(infos, info)
	}
	return infos, nil
}
