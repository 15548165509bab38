package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/menu-assistant/internal/agent"
	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"github.com/Lixing-Zhang/menu-assistant/pkg/logger"
)

func testLogger() *slog.Logger {
	return logger.New("error")
}

func TestChatHandler_Chat(t *testing.T) {
	handler := NewChatHandler(newTestChatService(t), testLogger())

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		wantText       string
		wantPrefix     string
		wantNotice     string
		wantActions    int
	}{
		{
			name:           "empty message",
			body:           `{"message": ""}`,
			expectedStatus: http.StatusOK,
			wantText:       "Ask me about menu items",
			wantActions:    3,
		},
		{
			name:           "missing message",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			wantText:       "Ask me about menu items",
			wantActions:    3,
		},
		{
			name:           "greeting",
			body:           `{"message": "hello"}`,
			expectedStatus: http.StatusOK,
			wantText:       "Hello!",
			wantActions:    3,
		},
		{
			name:           "burgers",
			body:           `{"message": "Show me burgers"}`,
			expectedStatus: http.StatusOK,
			wantPrefix:     "Burgers:\nBig Mac — $5.69 — 550 cal\nQuarter Pounder with Cheese — $6.49 — 520 cal",
			wantActions:    3,
		},
		{
			name:           "nutrition",
			body:           `{"message": "How many calories are in a Big Mac?"}`,
			expectedStatus: http.StatusOK,
			wantText:       "Big Mac: 550 calories. Allergens: Wheat, Milk.",
			wantNotice:     "region",
			wantActions:    3,
		},
		{
			name:           "deals",
			body:           `{"message": "What deals are available?"}`,
			expectedStatus: http.StatusOK,
			wantText:       agent.DefaultDealsURL,
			wantNotice:     "Deals vary by location and time.",
			wantActions:    2,
		},
		{
			name:           "no match",
			body:           `{"message": "asdkjhasd"}`,
			expectedStatus: http.StatusOK,
			wantText:       "I can help with",
			wantActions:    3,
		},
		{
			name:           "numeric message",
			body:           `{"message": 42}`,
			expectedStatus: http.StatusOK,
			wantText:       "I can help with",
			wantActions:    3,
		},
		{
			name:           "invalid JSON",
			body:           `invalid json`,
			expectedStatus: http.StatusBadRequest,
			wantText:       apologyText,
		},
		{
			name:           "empty body",
			body:           ``,
			expectedStatus: http.StatusBadRequest,
			wantText:       apologyText,
		},
		{
			name:           "wrong body shape",
			body:           `["hello"]`,
			expectedStatus: http.StatusBadRequest,
			wantText:       apologyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Chat(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			var result models.AgentResult
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if tt.wantText != "" && !strings.Contains(result.Text, tt.wantText) {
				t.Errorf("text = %q, want it to contain %q", result.Text, tt.wantText)
			}
			if tt.wantPrefix != "" && !strings.HasPrefix(result.Text, tt.wantPrefix) {
				t.Errorf("text = %q, want prefix %q", result.Text, tt.wantPrefix)
			}
			if tt.wantNotice != "" && !strings.Contains(result.Notice, tt.wantNotice) {
				t.Errorf("notice = %q, want it to contain %q", result.Notice, tt.wantNotice)
			}
			if len(result.Actions) != tt.wantActions {
				t.Errorf("actions = %d, want %d", len(result.Actions), tt.wantActions)
			}
		})
	}
}

func TestChatHandler_OmitsEmptyFields(t *testing.T) {
	handler := NewChatHandler(newTestChatService(t), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hello"}`))
	w := httptest.NewRecorder()
	handler.Chat(w, req)

	var raw map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if _, ok := raw["notice"]; ok {
		t.Error("notice should be omitted when empty")
	}
	if _, ok := raw["actions"]; !ok {
		t.Error("actions should be present")
	}
}

func TestChatHandler_BodyTooLarge(t *testing.T) {
	handler := NewChatHandler(newTestChatService(t), testLogger())

	body := `{"message": "` + strings.Repeat("a", maxChatBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
