package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// menuCounter reports how many items are loaded
type menuCounter interface {
	ItemCount() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	menu   menuCounter
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(menu menuCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		menu:   menu,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	MenuItems int       `json:"menu_items"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		MenuItems: h.menu.ItemCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", "error", err)
	}
}
