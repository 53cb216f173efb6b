package realtime

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Handler upgrades availability-watch requests to WebSocket.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates the realtime handler.
func NewHandler(hub *Hub, checkOrigin func(r *http.Request) bool) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Watch handles GET /ws/availability?studio_id=...&date=YYYY-MM-DD.
// The connection receives booking events for that studio+date until closed.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	studioID, err := uuid.Parse(q.Get("studio_id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio_id")
		return
	}
	date := q.Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &connection{
		topic: Topic(studioID, date),
		send:  make(chan []byte, sendBuffer),
	}
	h.hub.register <- conn

	go h.writePump(ws, conn)
	go h.readPump(ws, conn)
}

// readPump drains client frames so pong handling works; clients never
// send application data on this endpoint.
func (h *Handler) readPump(ws *websocket.Conn, conn *connection) {
	defer func() {
		h.hub.unregister <- conn
		ws.Close()
	}()

	ws.SetReadLimit(512)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writePump(ws *websocket.Conn, conn *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case data, ok := <-conn.send:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
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
