package observer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/hamlet/game"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub := NewHub(4)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.Clients() == 1 })

	hub.Publish(game.Frame{Tick: 7})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got struct {
		Tick int64 `json:"tick"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tick != 7 {
		t.Errorf("tick = %d, want 7", got.Tick)
	}
}

func TestHubState(t *testing.T) {
	hub := NewHub(1)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status before first frame = %d, want 503", resp.StatusCode)
	}

	hub.Publish(game.Frame{Tick: 3, Paused: true})

	resp, err = http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	var got struct {
		Tick   int64 `json:"tick"`
		Paused bool  `json:"paused"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tick != 3 || !got.Paused {
		t.Errorf("state = %+v, want tick 3 paused", got)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(1)
	slow := hub.register()

	hub.Publish(game.Frame{Tick: 1})
	if hub.Clients() != 1 {
		t.Fatalf("clients = %d after one frame, want 1", hub.Clients())
	}

	// Nobody drains the queue, so the second frame overflows it
	hub.Publish(game.Frame{Tick: 2})
	if hub.Clients() != 0 {
		t.Errorf("clients = %d, want slow client dropped", hub.Clients())
	}

	if _, ok := <-slow.send; !ok {
		t.Fatal("queued frame lost")
	}
	if _, ok := <-slow.send; ok {
		t.Error("send queue still open after drop")
	}

	// Unregistering an already dropped client is a no-op
	hub.unregister(slow)
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	hub := NewHub(2)
	hub.Publish(game.Frame{Tick: 11})

	c := hub.register()
	defer hub.unregister(c)

	select {
	case data := <-c.send:
		if !strings.Contains(string(data), `"tick":11`) {
			t.Errorf("first frame = %s, want tick 11", data)
		}
	default:
		t.Fatal("new client got no frame")
	}
}
