package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cargo-dispatch-service/internal/logx"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type wsClient struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks live websocket connections keyed by party id and implements
// Notifier by pushing events to a recipient's open connections. A recipient
// without an open connection is not an error: the AMQP path still carries
// the event.
type Hub struct {
	logger logx.Logger

	mu      sync.RWMutex
	clients map[string]map[*wsClient]struct{}
}

// NewHub returns an empty Hub.
func NewHub(logger logx.Logger) *Hub {
	return &Hub{logger: logger, clients: make(map[string]map[*wsClient]struct{})}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the peer goes away. The party identifies itself with the user_id query
// parameter.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", logx.Any("err", err))
		return
	}

	c := &wsClient{userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	h.logger.Info("websocket connected", logx.String("user_id", userID))

	go h.writePump(c)
	h.readPump(c)
}

// Notify sends the event to every open connection of the recipient.
// Connections with a full send buffer are dropped rather than blocked on.
func (h *Hub) Notify(_ context.Context, recipientID, event string, payload any) error {
	msg, err := json.Marshal(map[string]any{"event": event, "data": payload})
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[recipientID] {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("websocket send buffer full, dropping event",
				logx.String("user_id", recipientID),
				logx.String("event", event),
			)
		}
	}
	return nil
}

// Connected reports whether the party has at least one open connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*wsClient]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[c.userID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, c.userID)
			}
		}
	}
}

func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Inbound frames are drained and ignored, the push channel is one way.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
