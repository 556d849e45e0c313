package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/parischit85-sketch/play-sport-pro-sub002/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the club frontend origins once those are
		// configured per deployment.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes the caller to a club's live event room. Clients
// connect to /ws/{clubID} and receive apply, revert and match events.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	if clubID == "" {
		http.Error(w, "Missing clubID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket connection",
			slog.String("club_id", clubID),
			slog.Any("error", err))
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: live.RoomForClub(clubID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
