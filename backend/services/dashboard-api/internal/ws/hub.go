package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/http/handlers"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Dashboards connect from arbitrary origins; the socket only pushes
	// public station state.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes station list snapshots to connected dashboard sockets.
type Hub struct {
	catalog  handlers.ChargerLister
	interval time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub returns a hub broadcasting every interval.
func NewHub(catalog handlers.ChargerLister, interval time.Duration, logger *zap.Logger) *Hub {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Hub{
		catalog:  catalog,
		interval: interval,
		logger:   logger,
		conns:    make(map[*websocket.Conn]struct{}),
	}
}

// Handler upgrades GET /ws/stations connections.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("dashboard socket connected", zap.String("remote", conn.RemoteAddr().String()))

	// Drain incoming frames so pings and close frames are processed.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Run broadcasts snapshots until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast(ctx)
		}
	}
}

func (h *Hub) broadcast(ctx context.Context) {
	if h.count() == 0 {
		return
	}

	stations, err := h.catalog.ListChargers(ctx)
	if err != nil {
		h.logger.Warn("snapshot fetch for broadcast failed", zap.Error(err))
		return
	}
	payload, err := json.Marshal(stations)
	if err != nil {
		h.logger.Error("snapshot marshal failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Info("dropping dashboard socket", zap.Error(err))
			h.remove(conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
