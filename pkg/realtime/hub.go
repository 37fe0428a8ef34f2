// Package realtime pushes bridge events to UI listeners.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBuffer   = 32
	maxInboundSize = 512

	// TenantQueryParam narrows a websocket subscription to one tenant.
	TenantQueryParam = "tenant"
)

// Publisher broadcasts a payload under topic. Delivery is best-effort.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Scoped payloads belong to a single tenant. Payloads that are not Scoped, or
// return an empty key, reach only unscoped listeners.
type Scoped interface {
	TenantKey() string
}

type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type client struct {
	id     string
	tenant string
	conn   *websocket.Conn
	send   chan []byte
}

// wants reports whether an event scoped to tenant should reach the client.
func (c *client) wants(tenant string) bool {
	return c.tenant == "" || c.tenant == tenant
}

// Hub fans events out to connected websocket clients. A client that subscribed
// with ?tenant= only sees that tenant's events. Slow clients miss events
// instead of blocking publishers.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Hub) Publish(_ context.Context, topic string, payload any) error {
	msg, err := json.Marshal(Event{Type: topic, Data: payload, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return err
	}

	var tenant string
	if s, ok := payload.(Scoped); ok {
		tenant = s.TenantKey()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !c.wants(tenant) {
			continue
		}
		select {
		case c.send <- msg:
		default:
			logger.Warnf("Realtime client %s is lagging, dropping %s event", c.id, topic)
		}
	}
	return nil
}

// ClientCount returns the number of connected listeners.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and streams events until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		id:     uuid.NewString(),
		tenant: r.URL.Query().Get(TenantQueryParam),
		conn:   conn,
		send:   make(chan []byte, clientBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	logger.Debugf("Realtime client %s connected (tenant %q)", c.id, c.tenant)

	go h.writePump(c)
	h.readPump(c)
	return nil
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// readPump only services control frames; clients never send data.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
		logger.Debugf("Realtime client %s disconnected", c.id)
	}()

	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
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

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
