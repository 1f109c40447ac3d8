package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
)

func dialTestHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	e := echo.New()
	e.GET("/ws/quotes", hub.Handle)
	srv := httptest.NewServer(e)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/quotes"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestPublishTicksDeliversBatch(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialTestHub(t, hub)
	defer cleanup()

	stocks := []*domain.Stock{
		{ID: uuid.New(), Symbol: "RELIANCE", CurrentPrice: 2456.75},
		{ID: uuid.New(), Symbol: "GOLD", CurrentPrice: 62500},
	}
	hub.PublishTicks(stocks)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var batch struct {
		Type   string          `json:"type"`
		Stocks []*domain.Stock `json:"stocks"`
	}
	if err := json.Unmarshal(msg, &batch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if batch.Type != "quotes" || len(batch.Stocks) != 2 {
		t.Fatalf("batch = %+v, want 2 quotes", batch)
	}
	if batch.Stocks[0].Symbol != "RELIANCE" {
		t.Errorf("first stock = %s, want RELIANCE", batch.Stocks[0].Symbol)
	}
}

func TestPublishTicksConcurrentCallers(t *testing.T) {
	// The scheduler and the manual refresh endpoint publish from
	// separate goroutines; overlapping publishes to one subscriber must
	// not trip the websocket's single-writer rule.
	hub := NewHub()
	conn, cleanup := dialTestHub(t, hub)
	defer cleanup()

	// Drain on the client side so server writes never back up.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	stocks := []*domain.Stock{{ID: uuid.New(), Symbol: "TCS", CurrentPrice: 3892.50}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				hub.PublishTicks(stocks)
			}
		}()
	}
	wg.Wait()

	conn.Close()
	<-done
}

func TestPublishTicksPrunesDeadConnections(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialTestHub(t, hub)
	defer cleanup()

	stocks := []*domain.Stock{{ID: uuid.New(), Symbol: "INFY", CurrentPrice: 1523.45}}
	hub.PublishTicks(stocks)

	conn.Close()
	// The closed peer surfaces as a write error within a publish or two.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.PublishTicks(stocks)
		hub.mu.Lock()
		remaining := len(hub.conns)
		hub.mu.Unlock()
		if remaining == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("closed connection was never pruned")
}
