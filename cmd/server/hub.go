package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/alteredfree/altered-engine-go/internal/game"
	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // demo server, no origin policy
	},
}

// wsMessage is the wire envelope for both directions.
type wsMessage struct {
	Type string `json:"type"`

	PlayerID  string   `json:"player_id,omitempty"`
	CardID    string   `json:"card_id,omitempty"`
	ObjectID  string   `json:"object_id,omitempty"`
	AbilityID string   `json:"ability_id,omitempty"`
	Targets   []string `json:"targets,omitempty"`
	Mode      *int     `json:"mode,omitempty"`
	Axis      string   `json:"axis,omitempty"`
	ReadyOrb  string   `json:"ready_orb_id,omitempty"`
	SpentOrb  string   `json:"exhausted_orb_id,omitempty"`

	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type client struct {
	conn     *websocket.Conn
	send     chan []byte
	playerID string
}

// hub serializes access to a single hosted game and fans state out to every
// connected client, redacted per viewer.
type hub struct {
	mu      sync.Mutex
	game    *game.Game
	logger  *zap.Logger
	clients map[*client]bool
}

func newHub(g *game.Game, logger *zap.Logger) *hub {
	return &hub{
		game:    g,
		logger:  logger,
		clients: make(map[*client]bool),
	}
}

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 256)}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go c.writePump()
	go h.readPump(c)
}

func (h *hub) readPump(c *client) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.sendError(c, "malformed message")
			continue
		}
		h.handle(c, msg)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for raw := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return
		}
	}
}

func (h *hub) handle(c *client, msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := context.Background()
	var err error

	switch msg.Type {
	case "join":
		c.playerID = msg.PlayerID
		h.sendView(c)
		return

	case "view":
		h.sendView(c)
		return

	case "play_card":
		opts := game.PlayOptions{Targets: msg.Targets}
		if msg.Mode != nil {
			opts.HasMode = true
			opts.Mode = *msg.Mode
		}
		if msg.Axis == card.AxisCompanion.String() {
			opts.Axis = card.AxisCompanion
		}
		err = h.game.PlayCard(ctx, c.playerID, msg.CardID, opts)

	case "pass":
		err = h.game.Pass(ctx, c.playerID)

	case "quick_action":
		err = h.game.ActivateAbility(ctx, c.playerID, msg.ObjectID, msg.AbilityID)

	case "convert_mana":
		err = h.game.ConvertMana(ctx, c.playerID, msg.ReadyOrb, msg.SpentOrb)

	default:
		h.sendError(c, "unknown message type "+msg.Type)
		return
	}

	if err != nil {
		h.logger.Info("action rejected",
			zap.String("player", c.playerID),
			zap.String("action", msg.Type),
			zap.Error(err),
		)
		h.sendError(c, err.Error())
	}
	h.broadcastLocked()
}

// sendError delivers an action failure to the one client that caused it.
func (h *hub) sendError(c *client, detail string) {
	raw, err := json.Marshal(wsMessage{Type: "error", Error: detail})
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

func (h *hub) sendView(c *client) {
	raw, err := json.Marshal(wsMessage{Type: "game_state", Data: h.game.View(c.playerID)})
	if err != nil {
		h.logger.Error("view marshal failed", zap.Error(err))
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

// broadcast pushes each client its own redacted view.
func (h *hub) broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked()
}

func (h *hub) broadcastLocked() {
	for c := range h.clients {
		h.sendView(c)
	}
}
