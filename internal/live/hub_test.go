package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"wallettally/internal/ledger"
)

func TestHubPublishBalance(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(42, conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// wait for registration
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnCount(42) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("socket never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.PublishBalance(42, ledger.Summary{
		Income:   decimal.RequireFromString("100"),
		Expenses: decimal.RequireFromString("40"),
		Balance:  decimal.RequireFromString("60"),
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev struct {
		Event   string `json:"event"`
		Summary struct {
			Balance string `json:"balance"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Event != "balance" {
		t.Errorf("event = %q; want balance", ev.Event)
	}
	if ev.Summary.Balance != "60" {
		t.Errorf("balance = %q; want 60", ev.Summary.Balance)
	}
}

func TestHubConcurrentPublish(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(42, conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnCount(42) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("socket never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// a burst of mutations from parallel handler goroutines must all
	// arrive as intact frames
	const publishers = 32
	var wg sync.WaitGroup
	wg.Add(publishers)
	for i := 0; i < publishers; i++ {
		go func() {
			defer wg.Done()
			hub.PublishBalance(42, ledger.Summary{
				Balance: decimal.RequireFromString("60"),
			})
		}()
	}
	wg.Wait()

	for i := 0; i < publishers; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		var ev struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("frame %d is not valid JSON: %v", i, err)
		}
		if ev.Event != "balance" {
			t.Fatalf("frame %d: event = %q; want balance", i, ev.Event)
		}
	}

	if hub.ConnCount(42) != 1 {
		t.Fatalf("socket was dropped during the burst: ConnCount = %d", hub.ConnCount(42))
	}
}

func TestHubDeregister(t *testing.T) {
	hub := NewHub()

	// a publish to a user with no sockets must not panic
	hub.PublishBalance(7, ledger.Summary{})

	if hub.ConnCount(7) != 0 {
		t.Fatal("expected no connections")
	}
}
