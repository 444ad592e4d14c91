package ws

import (
	"net/http"
	"sync"
	"time"

	"notification-service/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth of ws callers is handled upstream; accept any origin here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live web-socket connections per user and pushes notification
// snapshots to them. Emission is best-effort: write failures drop the
// connection and are never surfaced to the caller.
type Hub struct {
	mu     sync.Mutex
	conns  map[string]map[*websocket.Conn]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

// Handler upgrades GET /ws/:userId and keeps the connection registered
// until the peer goes away.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return
		}

		h.register(userID, conn)
		h.logger.Info("websocket connected", zap.String("user_id", userID))

		// Drain the connection; we never expect client messages, but the
		// read loop is what detects the close.
		go func() {
			defer func() {
				h.unregister(userID, conn)
				_ = conn.Close()
				h.logger.Info("websocket disconnected", zap.String("user_id", userID))
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

func (h *Hub) register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

func (h *Hub) unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns := h.conns[userID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.conns, userID)
		}
	}
}

// EmitUserNotification sends the notification snapshot to every live
// connection of the user. Connections that fail the write are dropped.
func (h *Hub) EmitUserNotification(userID string, n *models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[userID]
	if len(conns) == 0 {
		return
	}

	for conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(n); err != nil {
			h.logger.Warn("websocket emit failed",
				zap.String("user_id", userID),
				zap.String("notification_id", n.ID),
				zap.Error(err),
			)
			delete(conns, conn)
			_ = conn.Close()
		}
	}
	if len(conns) == 0 {
		delete(h.conns, userID)
	}
}
