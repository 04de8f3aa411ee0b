package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// client is one subscribed connection. Connections that pass a player_id on
// connect additionally receive the private events addressed to that player.
type client struct {
	conn     *websocket.Conn
	playerID uuid.UUID
	mu       sync.Mutex
}

func (c *client) write(msg interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Hub fans game events out to the connections subscribed to each room.
// The feed is push only; all mutations go through the REST API.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
	log   *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		log:   log,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code"})
		return
	}
	var playerID uuid.UUID
	if raw := c.Query("player_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player_id"})
			return
		}
		playerID = id
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	cl := &client{conn: conn, playerID: playerID}

	h.mu.Lock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*client]struct{})
	}
	h.rooms[roomCode][cl] = struct{}{}
	h.mu.Unlock()

	h.log.WithFields(logrus.Fields{
		"room":   roomCode,
		"player": playerID,
	}).Debug("websocket subscribed")

	defer func() {
		h.mu.Lock()
		delete(h.rooms[roomCode], cl)
		if len(h.rooms[roomCode]) == 0 {
			delete(h.rooms, roomCode)
		}
		h.mu.Unlock()
		_ = conn.Close()
	}()

	// Drain until the peer goes away. Inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends an event to every connection subscribed to the room.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	h.send(roomCode, action, data, func(*client) bool { return true })
}

// BroadcastTo sends an event only to the connections of one player.
func (h *Hub) BroadcastTo(roomCode string, playerID uuid.UUID, action string, data interface{}) {
	h.send(roomCode, action, data, func(cl *client) bool { return cl.playerID == playerID })
}

func (h *Hub) send(roomCode, action string, data interface{}, match func(*client) bool) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomCode]))
	for cl := range h.rooms[roomCode] {
		if match(cl) {
			clients = append(clients, cl)
		}
	}
	h.mu.RUnlock()

	message := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	for _, cl := range clients {
		if err := cl.write(message); err != nil {
			h.log.WithError(err).Debug("dropping dead websocket connection")
			h.mu.Lock()
			if conns, ok := h.rooms[roomCode]; ok {
				delete(conns, cl)
			}
			h.mu.Unlock()
			_ = cl.conn.Close()
		}
	}
}
