package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/scoula/omok-server/internal/model"
)

type SchedulerSuite struct {
	suite.Suite
	mu    sync.Mutex
	fired []model.RoomID
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerSuite))
}

func (s *SchedulerSuite) SetupTest() {
	s.mu.Lock()
	s.fired = nil
	s.mu.Unlock()
}

func (s *SchedulerSuite) record(roomID model.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fired = append(s.fired, roomID)
}

func (s *SchedulerSuite) fireCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fired)
}

func (s *SchedulerSuite) TestFiresAfterDelay() {
	sched := NewStartScheduler(10*time.Millisecond, s.record)
	sched.Schedule("room-1")

	s.Require().Eventually(func() bool {
		return s.fireCount() == 1
	}, time.Second, 2*time.Millisecond)
	s.Equal([]model.RoomID{"room-1"}, s.fired)
}

func (s *SchedulerSuite) TestCancelPreventsFiring() {
	sched := NewStartScheduler(20*time.Millisecond, s.record)
	sched.Schedule("room-1")
	s.True(sched.Cancel("room-1"))

	time.Sleep(60 * time.Millisecond)
	s.Equal(0, s.fireCount())
}

func (s *SchedulerSuite) TestCancelWithoutPendingStart() {
	sched := NewStartScheduler(10*time.Millisecond, s.record)
	s.False(sched.Cancel("room-1"))
}

func (s *SchedulerSuite) TestRescheduleReplacesPendingStart() {
	sched := NewStartScheduler(20*time.Millisecond, s.record)
	sched.Schedule("room-1")
	sched.Schedule("room-1")

	time.Sleep(80 * time.Millisecond)
	s.Equal(1, s.fireCount())
}

func (s *SchedulerSuite) TestIndependentRooms() {
	sched := NewStartScheduler(10*time.Millisecond, s.record)
	sched.Schedule("room-1")
	sched.Schedule("room-2")
	s.True(sched.Cancel("room-1"))

	s.Require().Eventually(func() bool {
		return s.fireCount() == 1
	}, time.Second, 2*time.Millisecond)
	s.Equal([]model.RoomID{"room-2"}, s.fired)
}

func (s *SchedulerSuite) TestStaleExpiryAfterRescheduleDoesNotFire() {
	sched := NewStartScheduler(time.Hour, s.record)
	sched.Schedule("room-1")

	sched.mu.Lock()
	stale := sched.timers["room-1"]
	sched.mu.Unlock()
	stale.Stop()

	// Replace the pending start, then deliver the old timer's expiry the way
	// the runtime would if it had already fired before the replacement
	sched.Schedule("room-1")
	sched.onFire("room-1", stale)

	s.Equal(0, s.fireCount())
	// The replacement is still armed
	s.True(sched.Cancel("room-1"))
}

func (s *SchedulerSuite) TestShutdownDisarmsAll() {
	sched := NewStartScheduler(20*time.Millisecond, s.record)
	sched.Schedule("room-1")
	sched.Schedule("room-2")
	sched.Shutdown()

	time.Sleep(60 * time.Millisecond)
	s.Equal(0, s.fireCount())
}
