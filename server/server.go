// Package server streams the gallery's per-viewport state to websocket
// clients. It only reads state; nothing a client sends changes rendering.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"cakegallery/gallery"

	"github.com/gorilla/websocket"
)

// StateMessage is what every client receives on each tick
type StateMessage struct {
	Type      string                  `json:"type"`
	Frame     uint64                  `json:"frame"`
	Time      time.Time               `json:"time"`
	Viewports []gallery.ViewportState `json:"viewports"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // read-only local telemetry
	},
}

// Hub holds the latest published state and the connected clients
type Hub struct {
	interval time.Duration

	stateMu sync.RWMutex
	state   StateMessage

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
}

// NewHub creates a hub that pushes state every interval
func NewHub(interval time.Duration) *Hub {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Hub{
		interval: interval,
		state:    StateMessage{Type: "gallery_state", Viewports: []gallery.ViewportState{}},
		clients:  make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Interval is how often state is pushed to clients
func (h *Hub) Interval() time.Duration {
	return h.interval
}

// Publish replaces the state sent to clients. Called from the render loop.
func (h *Hub) Publish(viewports []gallery.ViewportState) {
	h.stateMu.Lock()
	h.state.Frame++
	h.state.Time = time.Now()
	h.state.Viewports = viewports
	h.stateMu.Unlock()
}

// Latest returns the most recently published state
func (h *Hub) Latest() StateMessage {
	h.stateMu.RLock()
	defer h.stateMu.RUnlock()
	return h.state
}

// Clients returns the number of connected websocket clients
func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Handler returns the HTTP routes: /ws for the stream, /state for a single
// JSON snapshot
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/state", h.handleState)
	return mux
}

func (h *Hub) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Latest()); err != nil {
		log.Println("State encode error:", err)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	h.clientsMu.Lock()
	h.clients[conn] = connMutex
	h.clientsMu.Unlock()
	defer h.remove(conn)

	// Send the current state right away
	connMutex.Lock()
	err = conn.WriteJSON(h.Latest())
	connMutex.Unlock()
	if err != nil {
		return
	}

	// Drain incoming frames until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("WebSocket read error:", err)
			}
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.clientsMu.Lock()
	delete(h.clients, conn)
	h.clientsMu.Unlock()
}

// broadcast sends the latest state to every client, dropping the ones that fail
func (h *Hub) broadcast() {
	msg := h.Latest()

	h.clientsMu.RLock()
	failed := []*websocket.Conn{}
	for client, mutex := range h.clients {
		mutex.Lock()
		client.SetWriteDeadline(time.Now().Add(h.interval * 5))
		err := client.WriteJSON(msg)
		mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			failed = append(failed, client)
		}
	}
	h.clientsMu.RUnlock()

	if len(failed) > 0 {
		h.clientsMu.Lock()
		for _, client := range failed {
			delete(h.clients, client)
		}
		h.clientsMu.Unlock()
	}
}

// Run broadcasts on every tick until ctx is done
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

// Serve listens on addr and streams state until ctx is done
func (h *Hub) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("Telemetry server on http://%s (ws://%s/ws)", ln.Addr(), ln.Addr())

	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
