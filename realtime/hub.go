package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"roadguard/metrics"
	"roadguard/utils"

	"go.uber.org/zap"
)

// Envelope is the frame format in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outgoing struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// encodeFrame marshals an event and its payload into one text frame.
func encodeFrame(event string, payload interface{}) ([]byte, error) {
	frame, err := json.Marshal(outgoing{Event: event, Data: payload})
	if err != nil {
		return nil, fmt.Errorf("realtime: failed to encode %s: %w", event, err)
	}
	return frame, nil
}

// Hub tracks connected clients and the rooms they joined. It implements
// notification.Publisher for the local process.
type Hub struct {
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}

	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes disconnects until ctx is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.unregister:
			h.removeClient(c)
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		}
	}
}

// addClient registers c before its pumps start, so its first frames are never
// handled for an unknown client. It refuses once the hub has stopped.
func (h *Hub) addClient(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
		return false
	default:
	}
	h.clients[c] = struct{}{}
	metrics.RealtimeConnections.Inc()
	utils.GetLogger().Debug("realtime client registered", zap.String("clientID", c.ID))
	return true
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	delete(h.clients, c)
	close(c.send)
	metrics.RealtimeConnections.Dec()
	utils.GetLogger().Debug("realtime client unregistered", zap.String("clientID", c.ID))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		h.removeClient(c)
	}
}

// Join subscribes c to room.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	members := h.rooms[room]
	if members == nil {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

// Leave unsubscribes c from room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if members := h.rooms[room]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// Broadcast sends the event to every connected client.
func (h *Hub) Broadcast(_ context.Context, event string, payload interface{}) error {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		return err
	}
	h.deliverAll(event, frame)
	return nil
}

// SendToRoom sends the event to the members of room. An empty room is not an error.
func (h *Hub) SendToRoom(_ context.Context, room, event string, payload interface{}) error {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		return err
	}
	h.deliverRoom(room, event, frame)
	return nil
}

func (h *Hub) deliverAll(event string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	metrics.EventsPublished.WithLabelValues(event, "all").Inc()
	for c := range h.clients {
		h.enqueue(c, event, frame)
	}
}

func (h *Hub) deliverRoom(room, event string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	metrics.EventsPublished.WithLabelValues(event, "room").Inc()
	for c := range h.rooms[room] {
		h.enqueue(c, event, frame)
	}
}

// enqueue never blocks. A client whose queue is full misses the event.
// Callers hold h.mu for reading.
func (h *Hub) enqueue(c *Client, event string, frame []byte) {
	select {
	case c.send <- frame:
	default:
		metrics.EventsDropped.WithLabelValues(event).Inc()
		utils.GetLogger().Warn("realtime client queue full, dropping event",
			zap.String("clientID", c.ID),
			zap.String("event", event),
		)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the number of clients in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
