// Package observer streams simulation frames to websocket clients.
//
// The hub is a game.FrameSink. Each frame is encoded once and queued on every
// client's bounded send buffer; a client whose buffer is full is dropped
// rather than allowed to stall the tick loop.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/hamlet/game"
)

const (
	writeWait = 5 * time.Second
	readWait  = 60 * time.Second
)

type client struct {
	id   uint64
	send chan []byte
}

// Hub fans frames out to every connected client.
type Hub struct {
	upgrader   websocket.Upgrader
	sendBuffer int
	nextID     atomic.Uint64

	mu      sync.Mutex
	clients map[uint64]*client
	latest  []byte
}

// NewHub creates a hub that buffers up to sendBuffer frames per client.
func NewHub(sendBuffer int) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sendBuffer: max(1, sendBuffer),
		clients:    make(map[uint64]*client),
	}
}

// Publish encodes f and queues it for every client. It never blocks.
func (h *Hub) Publish(f game.Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		slog.Error("failed to encode frame", "tick", f.Tick, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for id, c := range h.clients {
		select {
		case c.send <- data:
		default:
			slog.Warn("observer too slow, dropping", "client", id)
			h.removeLocked(id)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.clients {
		h.removeLocked(id)
	}
}

func (h *Hub) register() *client {
	c := &client{id: h.nextID.Add(1), send: make(chan []byte, h.sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	if h.latest != nil {
		c.send <- h.latest
	}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c.id)
}

// removeLocked closes the client's queue; its writer then hangs up.
func (h *Hub) removeLocked(id uint64) {
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.send)
	}
}

// Handler serves /ws and /state.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/state", h.ServeState)
	return mux
}

// ServeState writes the latest frame as JSON.
func (h *Hub) ServeState(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	data := h.latest
	h.mu.Unlock()

	if data == nil {
		http.Error(rw, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write(data)
}

// ServeWS upgrades the connection and streams frames until either side hangs up.
func (h *Hub) ServeWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := h.register()
	slog.Debug("observer connected", "client", c.id, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(conn, c)
	}()

	// Clients only listen; reading keeps control frames flowing and notices hang-ups.
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(c)
	<-done
	slog.Debug("observer disconnected", "client", c.id)
}

func (h *Hub) writeLoop(conn *websocket.Conn, c *client) {
	for data := range c.send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Unblock the reader so ServeWS can return
			_ = conn.Close()
			for range c.send {
			}
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
	_ = conn.Close()
}

// Serve runs the hub on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("observer listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
