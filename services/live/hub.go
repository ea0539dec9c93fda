// Package live fans score updates out to every open viewer connection.
package live

import (
	"sync"

	"github.com/goccy/go-json"

	"github.com/webbongda/matchday/pkg/logging"
	"github.com/webbongda/matchday/pkg/metrics"
)

const EventScoreUpdate = "SCORE_UPDATE"

// Message is the envelope of everything the server pushes to viewers.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type ScoreUpdate struct {
	MatchID string `json:"match_id"`
	TeamA   string `json:"team_a"`
	TeamB   string `json:"team_b"`
	ScoreA  int    `json:"score_a"`
	ScoreB  int    `json:"score_b"`
}

// Hub is the set of open viewer connections. All methods are safe for
// concurrent use.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds c to the set and marks it open. It returns false once the
// hub has been closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	c.state.Store(int32(StateOpen))
	metrics.LiveViewers.Inc()
	logging.Debug().Uint64("client_id", c.id).Int("viewers", len(h.clients)).Msg("live viewer connected")
	return true
}

// Unregister removes c. Removing a client that is not registered is a no-op.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

// remove requires h.mu.
func (h *Hub) remove(c *Client) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	close(c.send)
	c.state.Store(int32(StateClosed))
	metrics.LiveViewers.Dec()
	logging.Debug().Uint64("client_id", c.id).Int("viewers", len(h.clients)).Msg("live viewer disconnected")
	return true
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg on every registered client. A client whose queue is
// full is dropped instead of stalling the others.
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logging.Error().Err(err).Str("event", msg.Event).Msg("failed to encode live event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	metrics.LiveBroadcasts.Inc()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.remove(c)
			metrics.LiveDropped.Inc()
			logging.Warn().Uint64("client_id", c.id).Str("event", msg.Event).Msg("dropping slow live viewer")
		}
	}
}

// BroadcastScore announces the current score of a match.
func (h *Hub) BroadcastScore(matchID, teamA, teamB string, scoreA, scoreB int) {
	h.Broadcast(Message{
		Event: EventScoreUpdate,
		Data: ScoreUpdate{
			MatchID: matchID,
			TeamA:   teamA,
			TeamB:   teamB,
			ScoreA:  scoreA,
			ScoreB:  scoreB,
		},
	})
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.remove(c)
	}
}
