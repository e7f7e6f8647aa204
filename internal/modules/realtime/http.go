package realtime

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades GET /game-sessions/{id}/ws and registers
// the connection for the userId given in the query string. The
// connection only becomes part of the session's broadcast set once
// the user goes through the join use case.
type WebSocketHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewWebSocketHandler(service *Service, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{service: service, logger: logger}
}

func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing required query param 'userId'", http.StatusBadRequest)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := NewWebSocketConn(wsConn)
	h.service.RegisterConnection(userID, conn)

	h.logger.Info(
		"websocket connected",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
	)

	go h.readLoop(userID, conn, wsConn)
}

// readLoop drains inbound frames until the peer goes away. Clients
// do not talk to the server over the socket - all mutation happens
// over HTTP - so inbound payloads are discarded.
func (h *WebSocketHandler) readLoop(userID string, conn Conn, wsConn *websocket.Conn) {
	defer func() {
		h.service.UnregisterConnection(userID, conn)
		_ = conn.Close()
		h.logger.Info("websocket disconnected", zap.String("user_id", userID))
	}()

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			return
		}
	}
}
