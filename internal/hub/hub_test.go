package hub

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func recv(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case msg, ok := <-c.Receive():
		require.True(t, ok, "queue closed unexpectedly")
		var ev Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		return ev
	default:
		t.Fatal("no event queued")
		return Event{}
	}
}

func assertEmpty(t *testing.T, c *Client) {
	t.Helper()

	select {
	case msg := <-c.Receive():
		t.Fatalf("unexpected event: %s", msg)
	default:
	}
}

func TestBroadcast(t *testing.T) {
	h := newTestHub()
	roomID := uuid.New()

	a := h.Subscribe(roomID, uuid.New())
	b := h.Subscribe(roomID, uuid.New())
	other := h.Subscribe(uuid.New(), uuid.New())

	h.Broadcast(roomID, Event{Type: "voting_started", Payload: map[string]string{"story_id": "x"}})

	assert.Equal(t, "voting_started", recv(t, a).Type)
	assert.Equal(t, "voting_started", recv(t, b).Type)
	assertEmpty(t, other)
}

func TestBroadcastExcept(t *testing.T) {
	h := newTestHub()
	roomID := uuid.New()
	joiner := uuid.New()

	a := h.Subscribe(roomID, uuid.New())
	self := h.Subscribe(roomID, joiner)

	h.BroadcastExcept(roomID, joiner, Event{Type: "participant_joined"})

	assert.Equal(t, "participant_joined", recv(t, a).Type)
	assertEmpty(t, self)
}

func TestSendTargetsOneParticipant(t *testing.T) {
	h := newTestHub()
	roomID := uuid.New()
	target := uuid.New()

	// Two connections for the same participant both get targeted events.
	t1 := h.Subscribe(roomID, target)
	t2 := h.Subscribe(roomID, target)
	other := h.Subscribe(roomID, uuid.New())

	h.Send(roomID, target, Event{Type: "similar_stories"})

	assert.Equal(t, "similar_stories", recv(t, t1).Type)
	assert.Equal(t, "similar_stories", recv(t, t2).Type)
	assertEmpty(t, other)
}

func TestUnsubscribeClosesQueue(t *testing.T) {
	h := newTestHub()
	roomID := uuid.New()

	c := h.Subscribe(roomID, uuid.New())
	h.Unsubscribe(c)

	_, ok := <-c.Receive()
	assert.False(t, ok)

	// Double unsubscribe must not panic.
	h.Unsubscribe(c)

	assert.Empty(t, h.ConnectedIDs(roomID))
}

func TestKick(t *testing.T) {
	h := newTestHub()
	roomID := uuid.New()
	target := uuid.New()

	t1 := h.Subscribe(roomID, target)
	t2 := h.Subscribe(roomID, target)
	bystander := h.Subscribe(roomID, uuid.New())

	h.Kick(roomID, target)

	_, ok := <-t1.Receive()
	assert.False(t, ok)
	_, ok = <-t2.Receive()
	assert.False(t, ok)

	ids := h.ConnectedIDs(roomID)
	require.Len(t, ids, 1)
	assert.Equal(t, bystander.ParticipantID, ids[0])
}

func TestConnectedIDsDedupes(t *testing.T) {
	h := newTestHub()
	roomID := uuid.New()
	p := uuid.New()

	h.Subscribe(roomID, p)
	h.Subscribe(roomID, p)
	q := h.Subscribe(roomID, uuid.New())

	ids := h.ConnectedIDs(roomID)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, p)
	assert.Contains(t, ids, q.ParticipantID)
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	h := newTestHub()
	roomID := uuid.New()

	slow := h.Subscribe(roomID, uuid.New())

	// Overflow the queue; extra events are dropped, not deadlocked on.
	for i := 0; i < clientBuffer+5; i++ {
		h.Broadcast(roomID, Event{Type: "story_created"})
	}

	drained := 0
	for {
		select {
		case <-slow.Receive():
			drained++
			continue
		default:
		}
		break
	}
	assert.Equal(t, clientBuffer, drained)
}
