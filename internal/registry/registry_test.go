package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/scoula/omok-server/internal/dependencies/mocks"
	"github.com/scoula/omok-server/internal/directory/memory"
	"github.com/scoula/omok-server/internal/model"
	"github.com/scoula/omok-server/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
	dir      *memory.Store
	clock    *mocks.MockClock
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.dir = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.registry = New(s.dir, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RegistrySuite) player(id, name string) model.Player {
	return model.Player{ID: model.PlayerID(id), Name: name}
}

func (s *RegistrySuite) TestCreateRoom() {
	room := s.registry.CreateRoom(s.ctx, "First Room")

	s.NotEmpty(room.ID)
	s.Equal("First Room", room.Title)
	s.Empty(room.Players)
	s.False(room.Playing)
	s.Equal(1, room.Turn)
	s.Equal(s.clock.Now(), room.CreatedAt)

	// Listing entry is mirrored on creation
	info, err := s.dir.Get(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Equal("First Room", info.Title)
	s.Equal(0, info.PlayerCount)
}

func (s *RegistrySuite) TestCreateRoomUniqueIDs() {
	a := s.registry.CreateRoom(s.ctx, "A")
	b := s.registry.CreateRoom(s.ctx, "B")
	s.NotEqual(a.ID, b.ID)
}

func (s *RegistrySuite) TestJoinRoom() {
	room := s.registry.CreateRoom(s.ctx, "Room")

	s.True(s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice")))
	s.True(s.registry.JoinRoom(s.ctx, room.ID, s.player("p2", "Bob")))

	got, ok := s.registry.GetRoom(room.ID)
	s.Require().True(ok)
	s.Len(got.Players, 2)
	s.False(got.Playing)

	info, err := s.dir.Get(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Equal(2, info.PlayerCount)
}

func (s *RegistrySuite) TestJoinRoomFullFails() {
	room := s.registry.CreateRoom(s.ctx, "Room")
	s.True(s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice")))
	s.True(s.registry.JoinRoom(s.ctx, room.ID, s.player("p2", "Bob")))

	s.False(s.registry.JoinRoom(s.ctx, room.ID, s.player("p3", "Carol")))
}

func (s *RegistrySuite) TestJoinRoomIdempotentForSeatedPlayer() {
	room := s.registry.CreateRoom(s.ctx, "Room")
	s.True(s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice")))
	s.True(s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice")))

	got, _ := s.registry.GetRoom(room.ID)
	s.Len(got.Players, 1)
}

func (s *RegistrySuite) TestJoinRoomAbsentFails() {
	s.False(s.registry.JoinRoom(s.ctx, "missing", s.player("p1", "Alice")))
}

func (s *RegistrySuite) TestLeaveRoomResetsGameState() {
	room := s.registry.CreateRoom(s.ctx, "Room")
	s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice"))
	s.registry.JoinRoom(s.ctx, room.ID, s.player("p2", "Bob"))

	err := s.registry.WithRoom(room.ID, func(r *model.Room) error {
		r.InitGame("p1", s.clock.Now())
		return nil
	})
	s.Require().NoError(err)

	s.True(s.registry.LeaveRoom(s.ctx, room.ID, "p2"))

	got, ok := s.registry.GetRoom(room.ID)
	s.Require().True(ok)
	s.False(got.Playing)
	s.Equal(0, got.Ready)
	s.Len(got.Players, 1)
}

func (s *RegistrySuite) TestLeaveRoomLastPlayerDestroysRoom() {
	room := s.registry.CreateRoom(s.ctx, "Room")
	s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice"))

	s.True(s.registry.LeaveRoom(s.ctx, room.ID, "p1"))

	_, ok := s.registry.GetRoom(room.ID)
	s.False(ok)
	_, err := s.dir.Get(s.ctx, room.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistrySuite) TestLeaveRoomNotSeated() {
	room := s.registry.CreateRoom(s.ctx, "Room")
	s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice"))

	s.False(s.registry.LeaveRoom(s.ctx, room.ID, "stranger"))
	_, ok := s.registry.GetRoom(room.ID)
	s.True(ok)
}

func (s *RegistrySuite) TestWithRoomAbsent() {
	err := s.registry.WithRoom("missing", func(r *model.Room) error {
		s.Fail("must not be called")
		return nil
	})
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistrySuite) TestGetRoomReturnsSnapshot() {
	room := s.registry.CreateRoom(s.ctx, "Room")
	s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice"))

	snap, _ := s.registry.GetRoom(room.ID)
	snap.Players[0].Name = "Mutated"
	snap.Turn = 99

	got, _ := s.registry.GetRoom(room.ID)
	s.Equal("Alice", got.Players[0].Name)
	s.Equal(1, got.Turn)
}

func (s *RegistrySuite) TestListRooms() {
	s.registry.CreateRoom(s.ctx, "A")
	s.registry.CreateRoom(s.ctx, "B")

	rooms := s.registry.ListRooms()
	s.Len(rooms, 2)
}

func (s *RegistrySuite) TestDestroyMarksStaleEntryDead() {
	room := s.registry.CreateRoom(s.ctx, "Room")
	s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice"))

	// Hold the entry the way a racing join would, before the destroy
	e, ok := s.registry.entry(room.ID)
	s.Require().True(ok)

	s.True(s.registry.LeaveRoom(s.ctx, room.ID, "p1"))

	e.mu.Lock()
	s.Nil(e.room)
	e.mu.Unlock()

	// Operations through the stale entry observe the room as absent
	s.False(s.registry.JoinRoom(s.ctx, room.ID, s.player("p2", "Bob")))
	s.ErrorIs(s.registry.WithRoom(room.ID, func(r *model.Room) error {
		s.Fail("must not be called")
		return nil
	}), model.ErrRoomNotFound)
}

func (s *RegistrySuite) TestJoinRacingDestroyNeverSeatsIntoDeadRoom() {
	for i := 0; i < 200; i++ {
		room := s.registry.CreateRoom(s.ctx, "Room")
		s.registry.JoinRoom(s.ctx, room.ID, s.player("p1", "Alice"))

		var joined bool
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.registry.LeaveRoom(s.ctx, room.ID, "p1")
		}()
		go func() {
			defer wg.Done()
			joined = s.registry.JoinRoom(s.ctx, room.ID, s.player("p2", "Bob"))
		}()
		wg.Wait()

		got, ok := s.registry.GetRoom(room.ID)
		if joined {
			// A successful join means the room must still be live with Bob
			s.Require().True(ok)
			s.Require().True(got.HasPlayer("p2"))
			s.registry.LeaveRoom(s.ctx, room.ID, "p2")
		} else {
			s.Require().False(ok)
		}
	}
}

func (s *RegistrySuite) TestConcurrentJoinsSeatAtMostTwo() {
	room := s.registry.CreateRoom(s.ctx, "Room")

	var wg sync.WaitGroup
	results := make([]bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p := s.player(string(rune('a'+n)), "Player")
			results[n] = s.registry.JoinRoom(s.ctx, room.ID, p)
		}(i)
	}
	wg.Wait()

	seated := 0
	for _, ok := range results {
		if ok {
			seated++
		}
	}
	s.Equal(2, seated)

	got, _ := s.registry.GetRoom(room.ID)
	s.Len(got.Players, 2)
}
