package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/scoula/omok-server/internal/model"
	"github.com/scoula/omok-server/internal/testutil"
)

func newTestClient(topic *Topic, sessionID string) *Client {
	return &Client{
		sessionID:   sessionID,
		topic:       topic,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

func TestTopic_RegisterAndBroadcast(t *testing.T) {
	topic := NewTopic("room-1", testutil.NopLogger())
	go topic.Run()
	defer topic.Close()

	client := newTestClient(topic, "sess-1")
	topic.Register(client)

	// Give the topic time to process registration
	time.Sleep(10 * time.Millisecond)

	if topic.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", topic.ClientCount())
	}

	topic.Broadcast([]byte(`{"type":"READY"}`))

	select {
	case msg := <-client.send:
		if string(msg) != `{"type":"READY"}` {
			t.Errorf("client received %q, want %q", string(msg), `{"type":"READY"}`)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestTopic_Unregister(t *testing.T) {
	topic := NewTopic("room-1", testutil.NopLogger())
	go topic.Run()
	defer topic.Close()

	client := newTestClient(topic, "sess-1")
	topic.Register(client)
	time.Sleep(10 * time.Millisecond)

	topic.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if topic.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", topic.ClientCount())
	}

	// Send channel is closed on unregister
	if _, ok := <-client.send; ok {
		t.Error("client send channel still open after unregister")
	}
}

func TestTopic_BroadcastToMultipleClients(t *testing.T) {
	topic := NewTopic("room-1", testutil.NopLogger())
	go topic.Run()
	defer topic.Close()

	client1 := newTestClient(topic, "sess-1")
	client2 := newTestClient(topic, "sess-2")
	client3 := newTestClient(topic, "sess-3")

	topic.Register(client1)
	topic.Register(client2)
	topic.Register(client3)

	time.Sleep(10 * time.Millisecond)

	if topic.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", topic.ClientCount())
	}

	topic.Broadcast([]byte("event"))

	for i, client := range []*Client{client1, client2, client3} {
		select {
		case msg := <-client.send:
			if string(msg) != "event" {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), "event")
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestTopic_OperationsAfterCloseDoNotBlock(t *testing.T) {
	topic := NewTopic("room-1", testutil.NopLogger())
	go topic.Run()

	client := newTestClient(topic, "sess-1")
	topic.Register(client)
	time.Sleep(10 * time.Millisecond)

	topic.Close()
	time.Sleep(10 * time.Millisecond)

	// A connection outliving its room must still be able to tear down
	done := make(chan struct{})
	go func() {
		topic.Unregister(client)
		topic.Register(newTestClient(topic, "sess-2"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("topic operations blocked after Close")
	}
}

func TestHub_GetOrCreateTopic(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	topic1 := hub.GetOrCreateTopic("room-1")
	if topic1 == nil {
		t.Fatal("GetOrCreateTopic returned nil")
	}

	// Getting again should return the same topic
	topic2 := hub.GetOrCreateTopic("room-1")
	if topic1 != topic2 {
		t.Error("GetOrCreateTopic returned different topic for same room")
	}

	// Different room should return different topic
	topic3 := hub.GetOrCreateTopic("room-2")
	if topic3 == topic1 {
		t.Error("GetOrCreateTopic returned same topic for different room")
	}

	hub.RemoveTopic("room-1")
	hub.RemoveTopic("room-2")
}

func TestHub_Topic(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	if hub.Topic("missing") != nil {
		t.Error("Topic returned non-nil for non-existent room")
	}

	created := hub.GetOrCreateTopic("room-1")
	if hub.Topic("room-1") != created {
		t.Error("Topic returned different topic than GetOrCreateTopic")
	}

	hub.RemoveTopic("room-1")
}

func TestHub_RemoveTopic(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	hub.GetOrCreateTopic("room-1")
	hub.RemoveTopic("room-1")

	if hub.Topic("room-1") != nil {
		t.Error("topic still exists after RemoveTopic")
	}

	// Removing a non-existent topic should not panic
	hub.RemoveTopic("missing")
}

func TestHub_CleanupEmptyTopics(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	hub.GetOrCreateTopic("empty")

	active := hub.GetOrCreateTopic("active")
	client := newTestClient(active, "sess-1")
	active.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.CleanupEmptyTopics()

	if hub.Topic("empty") != nil {
		t.Error("empty topic still exists after cleanup")
	}
	if hub.Topic("active") == nil {
		t.Error("active topic was removed during cleanup")
	}

	hub.RemoveTopic("active")
}

func TestHub_PublishSerializesEvent(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	topic := hub.GetOrCreateTopic("room-1")
	defer hub.RemoveTopic("room-1")

	client := newTestClient(topic, "sess-1")
	topic.Register(client)
	time.Sleep(10 * time.Millisecond)

	index := 112
	turn := 1
	hub.Publish("room-1", model.Event{
		Sender: "p1",
		RoomID: "room-1",
		Type:   model.TypeAction,
		Index:  &index,
		Turn:   &turn,
	})

	select {
	case msg := <-client.send:
		var event model.Event
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("received message is not a valid event: %v", err)
		}
		if event.Type != model.TypeAction {
			t.Errorf("event type = %q, want %q", event.Type, model.TypeAction)
		}
		if event.Index == nil || *event.Index != 112 {
			t.Error("event index not carried through")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive published event")
	}
}

func TestHub_PublishWithoutTopicIsDropped(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	// Must not panic or block
	hub.Publish("missing", model.Event{Type: model.TypeReady})
}
