package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
)

// Hub fans quote ticks out to websocket subscribers. Quotes flow one
// way, server to client; inbound frames are read only to notice
// disconnects.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Browser clients connect from the SPA origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]bool),
	}
}

// Handle upgrades the request and keeps the connection subscribed
// until the client goes away.
// GET /ws/quotes
func (h *Hub) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.conns[conn] = true
	total := len(h.conns)
	h.mu.Unlock()
	log.Printf("[OK] Quote stream subscriber connected (%d active)", total)

	// Block on the read loop; any error means the peer is gone.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(conn)
	return nil
}

// PublishTicks broadcasts a refreshed quote batch to all subscribers.
// Implements service.TickPublisher.
//
// The scheduler, the manual refresh endpoint and the boot-time refresh
// all call this concurrently, and a websocket connection tolerates only
// one writer at a time, so the whole write loop runs under h.mu.
func (h *Hub) PublishTicks(stocks []*domain.Stock) {
	payload, err := json.Marshal(map[string]any{
		"type":   "quotes",
		"stocks": stocks,
	})
	if err != nil {
		log.Printf("ERROR: Failed to marshal quote batch: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}
