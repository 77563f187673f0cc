package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20 // 1MB per frame; uploads split into chunks below this
)

// WSHandler bridges websocket connections into the gateway. One goroutine
// reads, one writes; the gateway never touches the socket directly.
type WSHandler struct {
	gw       *Gateway
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewWSHandler(gw *Gateway, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		gw:     gw,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Mobile clients connect from app webviews with no stable
			// origin; token auth is the gate, not the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)

	conn, err := h.gw.Connect(r.Context(), token)
	if err != nil {
		http.Error(w, "authentication failed", http.StatusUnauthorized)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.gw.Disconnect(conn)
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	go h.writePump(ws, conn)
	go h.readPump(ws, conn)
}

// bearerToken pulls the credential from the Authorization header or the
// token query parameter, in that order.
func bearerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func (h *WSHandler) readPump(ws *websocket.Conn, conn *Connection) {
	defer func() {
		h.gw.Disconnect(conn)
		ws.Close()
	}()

	pongWait := h.gw.cfg.PongWait
	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).
					Str("connection_id", conn.ID).
					Msg("websocket read error")
			}
			return
		}
		h.gw.HandleFrame(conn.Context(), conn, raw)
	}
}

func (h *WSHandler) writePump(ws *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(h.gw.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case <-conn.Done():
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-conn.Outbound():
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
