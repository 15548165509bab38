package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/menu-assistant/internal/agent"
	"github.com/Lixing-Zhang/menu-assistant/internal/config"
	"github.com/Lixing-Zhang/menu-assistant/internal/menu"
	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"github.com/Lixing-Zhang/menu-assistant/internal/repository"
	"github.com/Lixing-Zhang/menu-assistant/internal/service"
	"github.com/Lixing-Zhang/menu-assistant/pkg/logger"
	"github.com/gorilla/websocket"
)

func newTestRouter(t *testing.T, apiKeys []string) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"*"}},
		Auth:   config.AuthConfig{APIKeys: apiKeys},
	}
	log := logger.New("error")

	items, err := loadMenu(context.Background(), cfg.Menu)
	if err != nil {
		t.Fatalf("failed to load menu: %v", err)
	}

	repo := repository.NewInMemoryMenuRepository(items)
	chatService, err := service.NewChatService(context.Background(), repo, agent.DefaultLinks(), log)
	if err != nil {
		t.Fatalf("failed to create chat service: %v", err)
	}

	return newRouter(cfg, log, service.NewMenuService(repo), chatService)
}

func TestRouter_Chat(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "Show me burgers"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var result models.AgentResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	items, err := menu.Default()
	if err != nil {
		t.Fatalf("failed to load default menu: %v", err)
	}
	want := "Burgers:\n" + agent.FormatItems(agent.ListByCategory("Burgers", items))
	if result.Text != want {
		t.Errorf("text = %q, want %q", result.Text, want)
	}
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/menu", http.StatusOK},
		{http.MethodGet, "/api/menu?category=Drinks", http.StatusOK},
		{http.MethodGet, "/api/menu/categories", http.StatusOK},
		{http.MethodGet, "/api/menu/big-mac", http.StatusOK},
		{http.MethodGet, "/api/menu/does-not-exist", http.StatusNotFound},
		{http.MethodGet, "/api/chat", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRouter_ChatSocket(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	header := http.Header{"Origin": []string{"http://localhost:3000"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Errorf("handshake status = %d, want 101", resp.StatusCode)
	}

	deadline := time.Now().Add(5 * time.Second)
	if err := conn.SetWriteDeadline(deadline); err != nil {
		t.Fatalf("failed to set write deadline: %v", err)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		t.Fatalf("failed to set read deadline: %v", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"message": "hello"}`)); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}

	var result models.AgentResult
	if err := conn.ReadJSON(&result); err != nil {
		t.Fatalf("failed to read reply: %v", err)
	}
	if !strings.HasPrefix(result.Text, "Hello!") {
		t.Errorf("text = %q, want greeting", result.Text)
	}
	if len(result.Actions) != 3 {
		t.Errorf("got %d actions, want 3", len(result.Actions))
	}
}

func TestRouter_APIKeyRequired(t *testing.T) {
	r := newTestRouter(t, []string{"secret"})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hi"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status without key = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hi"}`))
	req.Header.Set("api_key", "secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status with key = %d, want 200", w.Code)
	}

	// Health stays open
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}
