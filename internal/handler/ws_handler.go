package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/sideline/api/internal/auth"
	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/service"
	"github.com/gorilla/websocket"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 4096
	sendBufSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware
	},
}

// SnapshotFunc returns the game a new viewer should see first.
type SnapshotFunc func(ctx context.Context) (*model.Game, error)

// WSHandler handles viewer WebSocket connections.
type WSHandler struct {
	hub      *Hub
	jwtMgr   *auth.JWTManager
	snapshot SnapshotFunc
}

// NewWSHandler creates a WSHandler. snapshot may be nil.
func NewWSHandler(hub *Hub, jwtMgr *auth.JWTManager, snapshot SnapshotFunc) *WSHandler {
	return &WSHandler{hub: hub, jwtMgr: jwtMgr, snapshot: snapshot}
}

// viewerName labels a connection for logs. Viewers are anonymous; an
// optional ?token= names the operator.
func (h *WSHandler) viewerName(r *http.Request) string {
	if tokenStr := r.URL.Query().Get("token"); tokenStr != "" && h.jwtMgr != nil {
		if claims, err := h.jwtMgr.ValidateToken(tokenStr); err == nil {
			return claims.Username
		}
	}
	return r.RemoteAddr
}

// ServeWS handles GET /api/v1/ws and upgrades to WebSocket.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	viewer := h.viewerName(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &WSConn{
		conn:   conn,
		viewer: viewer,
		send:   make(chan []byte, sendBufSize),
	}
	h.hub.Register(client)

	// Send a welcome message so the client can confirm the connection is live.
	welcome, _ := json.Marshal(WSEvent{Type: "connected", Data: map[string]any{}})
	client.send <- welcome

	if h.snapshot != nil {
		if g, err := h.snapshot(r.Context()); err == nil {
			msg, _ := json.Marshal(WSEvent{Type: service.EventGameUpdated, GameID: g.ID, Data: g})
			client.send <- msg
		} else {
			log.Warn().Err(err).Msg("Initial snapshot for viewer failed")
		}
	}

	go h.writePump(client)
	go h.readPump(client)

	log.Info().Str("viewer", viewer).Int("total", h.hub.ConnectionCount()).Msg("WebSocket viewer connected")
}

// readPump reads messages from the WebSocket connection.
func (h *WSHandler) readPump(c *WSConn) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
		log.Info().Str("viewer", c.viewer).Msg("WebSocket viewer disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("viewer", c.viewer).Msg("WebSocket unexpected close")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Action {
		case "subscribe":
			if msg.GameID > 0 {
				h.hub.Subscribe(c, msg.GameID)
			}
		case "unsubscribe":
			if msg.GameID > 0 {
				h.hub.Unsubscribe(c, msg.GameID)
			}
		case "follow":
			h.hub.Follow(c)
		}
	}
}

// writePump writes messages to the WebSocket connection.
func (h *WSHandler) writePump(c *WSConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain queued messages into the same write
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte("\n"))
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
