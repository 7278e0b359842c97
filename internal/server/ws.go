package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local-network deployment, no browser origin to gate on
	},
}

// PresenceNotice is the fan-out unit on the presence socket. Devices
// announce themselves and new drops; the hub relays each notice to every
// other connected device. Notices carry no key material and no coordinates.
type PresenceNotice struct {
	DeviceID  string `json:"device_id"`
	Event     string `json:"event"`
	MessageID string `json:"message_id,omitempty"`
}

// Hub tracks connected presence sockets and relays notices between them.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// HandlePresence upgrades the connection and pumps notices until the peer
// disconnects.
func (h *Hub) HandlePresence(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("presence upgrade failed: %v", err)
		return
	}

	h.add(conn)
	defer h.remove(conn)

	for {
		var notice PresenceNotice
		if err := conn.ReadJSON(&notice); err != nil {
			return
		}
		h.broadcast(conn, notice)
	}
}

// Broadcast relays a notice to every connected peer. Used by the HTTP side
// to announce server-originated events.
func (h *Hub) Broadcast(notice PresenceNotice) {
	h.broadcast(nil, notice)
}

// PeerCount returns the number of connected presence sockets.
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close disconnects every peer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[*websocket.Conn]struct{})
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) broadcast(from *websocket.Conn, notice PresenceNotice) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns {
		if conn == from {
			continue
		}
		if err := conn.WriteJSON(notice); err != nil {
			log.Printf("presence write failed: %v", err)
		}
	}
}
