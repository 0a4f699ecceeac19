package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event is a single realtime message fanned out to room members.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

const clientBuffer = 16

// Client is one websocket connection's outbound queue. Delivery is
// best-effort: a full queue drops the event rather than blocking the hub.
type Client struct {
	RoomID        uuid.UUID
	ParticipantID uuid.UUID
	send          chan []byte
}

// Receive exposes the outbound queue; it is closed on unsubscribe or kick.
func (c *Client) Receive() <-chan []byte {
	return c.send
}

// Hub tracks which connections are joined to which room and fans domain
// events out to them. It carries no domain state of its own.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Client]struct{}
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		rooms: make(map[uuid.UUID]map[*Client]struct{}),
		log:   log,
	}
}

// Subscribe registers a connection as a member of the room's channel.
func (h *Hub) Subscribe(roomID, participantID uuid.UUID) *Client {
	client := &Client{
		RoomID:        roomID,
		ParticipantID: participantID,
		send:          make(chan []byte, clientBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][client] = struct{}{}
	return client
}

// Unsubscribe removes the connection and closes its queue.
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(client)
}

// Caller holds the lock.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.RoomID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.RoomID)
	}
}

// Broadcast sends the event to every connection in the room.
func (h *Hub) Broadcast(roomID uuid.UUID, event Event) {
	h.fanOut(roomID, event, nil)
}

// BroadcastExcept sends the event to everyone in the room but the given
// participant's connections.
func (h *Hub) BroadcastExcept(roomID, exclude uuid.UUID, event Event) {
	h.fanOut(roomID, event, func(c *Client) bool {
		return c.ParticipantID == exclude
	})
}

// Send targets every connection of a single participant.
func (h *Hub) Send(roomID, participantID uuid.UUID, event Event) {
	h.fanOut(roomID, event, func(c *Client) bool {
		return c.ParticipantID != participantID
	})
}

func (h *Hub) fanOut(roomID uuid.UUID, event Event, skip func(*Client) bool) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to marshal event", slog.String("type", event.Type))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if skip != nil && skip(client) {
			continue
		}
		select {
		case client.send <- payload:
		default:
			h.log.Debug("dropping event for slow client",
				slog.String("type", event.Type),
				slog.String("participant_id", client.ParticipantID.String()),
			)
		}
	}
}

// Kick closes every connection of the participant in the room. The
// websocket side observes the closed queue and tears the socket down.
func (h *Hub) Kick(roomID, participantID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[roomID] {
		if client.ParticipantID == participantID {
			h.remove(client)
		}
	}
}

// ConnectedIDs lists the participants with at least one live connection
// in the room.
func (h *Hub) ConnectedIDs(roomID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(h.rooms[roomID]))
	for client := range h.rooms[roomID] {
		if _, ok := seen[client.ParticipantID]; ok {
			continue
		}
		seen[client.ParticipantID] = struct{}{}
		ids = append(ids, client.ParticipantID)
	}
	return ids
}
