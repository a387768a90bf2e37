package net

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks open websocket connections so shutdown can close them. It
// never routes data between them: each connection draws on its own canvas.
type Hub struct {
	conns map[string]*websocket.Conn
	mu    sync.RWMutex
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		conns: make(map[string]*websocket.Conn),
		log:   log,
	}
}

func (h *Hub) Add(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = conn
	h.log.Info("client connected", slog.String("id", id), slog.String("remote", conn.RemoteAddr().String()))
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[id]; !ok {
		return
	}
	delete(h.conns, id)
	h.log.Info("client disconnected", slog.String("id", id))
}

// Len is the number of open connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll closes every tracked connection. Their read loops then exit and
// remove themselves.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, conn := range h.conns {
		if err := conn.Close(); err != nil {
			h.log.Warn("close connection", slog.String("id", id), slog.Any("err", err))
		}
	}
}
