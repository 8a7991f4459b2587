package v1

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/trackside/scorekeeper-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

// LiveHandler pushes score events to connected scoreboard clients over
// WebSocket. It implements service.EventPublisher so services stay unaware
// of the transport.
type LiveHandler struct {
	clients      map[*liveClient]bool
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *liveClient
	unregister   chan *liveClient
}

func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients:    make(map[*liveClient]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
	}
}

// Publish serializes the event and fans it out to every connected client.
// A nil LiveHandler is a no-op publisher, which keeps services testable.
func (h *LiveHandler) Publish(event service.Event) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal live event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		zap.L().Warn("live broadcast channel full, dropping event", zap.String("type", event.Type))
	}
}

func (h *LiveHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = true
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case message := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// HandleLive godoc
// @Summary Establish WebSocket connection for live score updates
// @Description Streams session and leaderboard change events as they happen
// @Tags live
// @Produce json
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 500 {object} response.Err
// @Router /live [get]
// @Security BearerAuth
func (h *LiveHandler) HandleLive(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &liveClient{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *liveClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains and discards client messages. The live feed is one-way,
// but reading is required to notice closed connections.
func (c *liveClient) readPump(h *LiveHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket closed unexpectedly", zap.Error(err))
			}
			break
		}
	}
}
