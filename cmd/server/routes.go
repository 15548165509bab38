package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/menu-assistant/internal/config"
	"github.com/Lixing-Zhang/menu-assistant/internal/handlers"
	"github.com/Lixing-Zhang/menu-assistant/internal/middleware"
	"github.com/Lixing-Zhang/menu-assistant/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// requestTimeout bounds plain HTTP handlers; the websocket route is exempt
const requestTimeout = 60 * time.Second

func newRouter(cfg *config.Config, log *slog.Logger, menuService *service.MenuService, chatService *service.ChatService) http.Handler {
	healthHandler := handlers.NewHealthHandler(menuService, log)
	menuHandler := handlers.NewMenuHandler(menuService, log)
	chatHandler := handlers.NewChatHandler(chatService, log)
	chatSocketHandler := handlers.NewChatSocketHandler(chatService, cfg.Server.AllowedOrigins, log)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.APIKeyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.Auth))

		r.Get("/chat/ws", chatSocketHandler.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(requestTimeout))

			// Chat endpoint
			r.Post("/chat", chatHandler.Chat)

			// Menu endpoints
			r.Get("/menu", menuHandler.ListItems)
			r.Get("/menu/categories", menuHandler.ListCategories)
			r.Get("/menu/{itemId}", menuHandler.GetItem)
		})
	})

	return r
}
