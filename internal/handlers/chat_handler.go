package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-assistant/internal/models"
)

// maxChatBodyBytes caps the size of a chat request body
const maxChatBodyBytes = 64 << 10

// apologyText is returned when a request cannot be read
const apologyText = "Sorry, I had trouble responding. Please try again."

// chatResponder is the interface for answering chat messages
type chatResponder interface {
	Reply(ctx context.Context, message string) models.AgentResult
}

// ChatHandler handles chat requests over plain HTTP
type ChatHandler struct {
	chat chatResponder
	log  *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat chatResponder, log *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chat: chat,
		log:  log,
	}
}

// Chat handles POST /api/chat
// A body that cannot be decoded gets the apology reply and never reaches the agent.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode chat request", "error", err)
		WriteJSON(w, http.StatusBadRequest, apologyResult(), h.log)
		return
	}

	result := h.chat.Reply(r.Context(), req.Text())
	WriteJSON(w, http.StatusOK, result, h.log)
}

func apologyResult() models.AgentResult {
	return models.AgentResult{Text: apologyText}
}
