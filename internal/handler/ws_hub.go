package handler

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSEvent is the envelope for all WebSocket messages.
type WSEvent struct {
	Type   string `json:"type"`
	GameID int64  `json:"game_id"`
	Data   any    `json:"data"`
}

// ClientMessage is the envelope for messages sent from the client.
type ClientMessage struct {
	Action string `json:"action"` // "subscribe", "unsubscribe" or "follow"
	GameID int64  `json:"game_id"`
}

// WSConn wraps a WebSocket connection with its viewer and subscriptions.
type WSConn struct {
	conn   *websocket.Conn
	viewer string
	send   chan []byte
	// follow is true while the viewer tracks whichever game is active.
	follow bool
}

// Hub manages viewer connections. A connection either follows the active
// game or subscribes to specific game ids.
type Hub struct {
	mu          sync.RWMutex
	connections map[*WSConn]bool
	games       map[int64]map[*WSConn]bool // gameID -> set of connections
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*WSConn]bool),
		games:       make(map[int64]map[*WSConn]bool),
	}
}

// Register adds a connection to the hub. New connections follow the active game.
func (h *Hub) Register(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.follow = true
	h.connections[c] = true
}

// Unregister removes a connection from the hub and all its subscriptions.
func (h *Hub) Unregister(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.connections[c] {
		return
	}
	delete(h.connections, c)
	for gameID, conns := range h.games {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.games, gameID)
		}
	}
	close(c.send)
}

// Subscribe pins a connection to a game. It stops following the active game.
func (h *Hub) Subscribe(c *WSConn, gameID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.games[gameID] == nil {
		h.games[gameID] = make(map[*WSConn]bool)
	}
	h.games[gameID][c] = true
	c.follow = false
}

// Unsubscribe removes a connection from a game channel.
func (h *Hub) Unsubscribe(c *WSConn, gameID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.games[gameID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.games, gameID)
		}
	}
}

// Follow makes a connection track the active game again.
func (h *Hub) Follow(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.follow = true
}

// BroadcastToGame sends an event to the game's subscribers and to every
// follower. A gameID of 0 reaches all connections.
func (h *Hub) BroadcastToGame(gameID int64, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Int64("gameId", gameID).Msg("Failed to marshal WebSocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.connections {
		if gameID != 0 && !c.follow && !h.games[gameID][c] {
			continue
		}
		select {
		case c.send <- data:
		default:
			log.Warn().Str("viewer", c.viewer).Int64("gameId", gameID).Msg("Dropping WebSocket message, buffer full")
		}
	}
}

// ConnectionCount returns the total number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// GameSubscriberCount returns the number of connections subscribed to a game.
func (h *Hub) GameSubscriberCount(gameID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}
