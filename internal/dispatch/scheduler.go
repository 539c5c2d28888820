package dispatch

import (
	"sync"
	"time"

	"github.com/scoula/omok-server/internal/model"
)

// StartScheduler tracks the single deferred game-start action per room. The
// delay gives subscribers time to finish attaching to the room topic before
// the start broadcast goes out. Scheduling again replaces any pending action;
// cancelling guarantees a pending action will not fire.
type StartScheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[model.RoomID]*time.Timer
	fire   func(model.RoomID)
}

// NewStartScheduler creates a scheduler that invokes fire after delay
func NewStartScheduler(delay time.Duration, fire func(model.RoomID)) *StartScheduler {
	return &StartScheduler{
		delay:  delay,
		timers: make(map[model.RoomID]*time.Timer),
		fire:   fire,
	}
}

// Schedule arms the deferred start for a room, replacing any pending one
func (s *StartScheduler) Schedule(roomID model.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[roomID]; ok {
		t.Stop()
	}
	// The callback captures its own timer so a stale expiry can recognize
	// itself; it reads t under the mutex, after it has been published here
	var t *time.Timer
	t = time.AfterFunc(s.delay, func() {
		s.onFire(roomID, t)
	})
	s.timers[roomID] = t
}

// Cancel disarms a pending start and reports whether one was pending
func (s *StartScheduler) Cancel(roomID model.RoomID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[roomID]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, roomID)
	return true
}

// Shutdown disarms every pending start
func (s *StartScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *StartScheduler) onFire(roomID model.RoomID, t *time.Timer) {
	s.mu.Lock()
	// Only the timer still armed for the room may fire. A Cancel that raced
	// the expiry wins, and a replacement Schedule keeps its own full delay
	// instead of being triggered by the timer it replaced.
	armed := s.timers[roomID] == t
	if armed {
		delete(s.timers, roomID)
	}
	s.mu.Unlock()

	if !armed {
		return
	}
	s.fire(roomID)
}
