// cmd/teyitci/ws.go
package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // UI is served from this process
	},
}

// Hub tracks connected websocket clients and pushes refresh notifications
// to them.
type Hub struct {
	mutex   sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub creates a new websocket hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// Handle upgrades the request and keeps the connection registered until the
// client goes away. Clients only listen; inbound frames are discarded.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		AppLogger().Warning("Websocket upgrade failed: %v", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()

	go func() {
		defer func() {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends an event to all connected clients, dropping any that fail
func (h *Hub) Broadcast(event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"type":    event,
		"payload": payload,
	})
	if err != nil {
		AppLogger().Error("Failed to marshal websocket message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
