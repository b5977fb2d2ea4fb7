// Package ws pushes routing events to connected browsers over websockets.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/metrics"
)

// Hub keeps the open connections keyed by user ID. A user may hold
// several connections at once (one per tab or device).
type Hub struct {
	log *slog.Logger

	clients map[uuid.UUID]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.Mutex
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		log:        logger.With("component", "ws_hub"),
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.mu.Unlock()
			metrics.WSConnections.Inc()
			h.log.Debug("client connected", slog.String("user_id", c.userID.String()))

		case c := <-h.unregister:
			h.mu.Lock()
			removed := h.remove(c)
			h.mu.Unlock()
			if removed {
				h.log.Debug("client disconnected", slog.String("user_id", c.userID.String()))
			}

		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, set := range h.clients {
				for c := range set {
					h.remove(c)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove drops c and closes its send channel. Caller holds h.mu.
func (h *Hub) remove(c *Client) bool {
	set, ok := h.clients[c.userID]
	if !ok {
		return false
	}
	if _, ok := set[c]; !ok {
		return false
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	metrics.WSConnections.Dec()
	return true
}

// SendToUsers delivers event to every connection of the given users and
// returns the number of connections reached. A client whose buffer is full is
// disconnected.
func (h *Hub) SendToUsers(userIDs []uuid.UUID, event any) int {
	if len(userIDs) == 0 {
		return 0
	}

	msg, err := json.Marshal(event)
	if err != nil {
		h.log.Error("marshal ws event", slog.String("error", err.Error()))
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		for c := range h.clients[id] {
			select {
			case c.send <- msg:
				sent++
			default:
				h.remove(c)
				metrics.WSDropped.Inc()
				h.log.Warn("dropped slow ws client", slog.String("user_id", id.String()))
			}
		}
	}
	return sent
}

// ClientCount returns the number of open connections for a user.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}
