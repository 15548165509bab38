package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"github.com/gorilla/websocket"
)

// ChatSocketHandler serves the chat over a websocket. Every inbound frame is
// answered independently; nothing is carried between frames.
type ChatSocketHandler struct {
	chat     chatResponder
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewChatSocketHandler creates a websocket chat handler.
// allowedOrigins may contain "*" to accept any origin.
func NewChatSocketHandler(chat chatResponder, allowedOrigins []string, log *slog.Logger) *ChatSocketHandler {
	return &ChatSocketHandler{
		chat: chat,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// ServeHTTP handles GET /api/chat/ws
func (h *ChatSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxChatBodyBytes)

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("websocket read failed", "error", err)
			}
			return
		}

		result := h.chat.Reply(r.Context(), frameText(frame))
		if err := conn.WriteJSON(result); err != nil {
			h.log.Error("failed to write to ws connection", "error", err)
			return
		}
	}
}

// frameText extracts the message from a frame. A JSON object is read as a
// ChatRequest; anything else is the message itself.
func frameText(frame []byte) string {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var req models.ChatRequest
		if err := json.Unmarshal(trimmed, &req); err == nil {
			return req.Text()
		}
	}
	return string(frame)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
