package factory

import (
	"sync"
	"time"

	"github.com/scoula/omok-server/internal/dependencies/mocks"
	"github.com/scoula/omok-server/internal/directory/memory"
	"github.com/scoula/omok-server/internal/dispatch"
	"github.com/scoula/omok-server/internal/model"
	"github.com/scoula/omok-server/internal/registry"
	"github.com/scoula/omok-server/internal/testutil"
)

// EventRecorder is a Publisher that captures events for assertions
type EventRecorder struct {
	mu      sync.Mutex
	events  map[model.RoomID][]model.Event
	removed []model.RoomID
}

// NewEventRecorder creates an empty EventRecorder
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{
		events: make(map[model.RoomID][]model.Event),
	}
}

// Ensure EventRecorder implements Publisher
var _ dispatch.Publisher = (*EventRecorder)(nil)

// Publish records the event
func (r *EventRecorder) Publish(roomID model.RoomID, event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[roomID] = append(r.events[roomID], event)
}

// RemoveTopic records the topic removal
func (r *EventRecorder) RemoveTopic(roomID model.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, roomID)
}

// RemovedRooms returns the rooms whose topics were removed so far
func (r *EventRecorder) RemovedRooms() []model.RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.RoomID(nil), r.removed...)
}

// Events returns a copy of the events published to a room so far
func (r *EventRecorder) Events(roomID model.RoomID) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events[roomID]...)
}

// LastEvent returns the most recent event published to a room, if any
func (r *EventRecorder) LastEvent(roomID model.RoomID) (model.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs := r.events[roomID]
	if len(evs) == 0 {
		return model.Event{}, false
	}
	return evs[len(evs)-1], true
}

// TestApp wires the core components against mocks and a recording publisher
type TestApp struct {
	Directory  *memory.Store
	Registry   *registry.Registry
	Dispatcher *dispatch.Dispatcher

	// Mocks and recorders for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Events     *EventRecorder
}

// testStartDelay keeps deferred-start tests fast without firing immediately
const testStartDelay = 5 * time.Millisecond

// NewTestApp creates an app configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	dir := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	recorder := NewEventRecorder()
	logger := testutil.NopLogger()

	reg := registry.New(dir, mockClock, logger)
	dispatcher := dispatch.New(reg, recorder, mockClock, mockRandom, testStartDelay, 30*time.Second, logger)

	return &TestApp{
		Directory:  dir,
		Registry:   reg,
		Dispatcher: dispatcher,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Events:     recorder,
	}
}
