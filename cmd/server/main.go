package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/menu-assistant/internal/agent"
	"github.com/Lixing-Zhang/menu-assistant/internal/config"
	"github.com/Lixing-Zhang/menu-assistant/internal/menu"
	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"github.com/Lixing-Zhang/menu-assistant/internal/repository"
	"github.com/Lixing-Zhang/menu-assistant/internal/service"
	"github.com/Lixing-Zhang/menu-assistant/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting menu assistant server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	items, err := loadMenu(ctx, cfg.Menu)
	if err != nil {
		log.Error("failed to load menu", "error", err)
		os.Exit(1)
	}

	if missing := menu.MissingCategories(items, agent.MenuCategories()); len(missing) > 0 {
		log.Warn("menu has no items for some categories", "categories", missing)
	}

	log.Info("menu loaded successfully",
		"sources", len(cfg.Menu.Sources),
		"total_items", len(items),
	)

	// Initialize repositories
	menuRepo := repository.NewInMemoryMenuRepository(items)

	// Initialize services
	menuService := service.NewMenuService(menuRepo)
	chatService, err := service.NewChatService(ctx, menuRepo, agent.Links{
		StoreLocatorURL: cfg.Links.StoreLocatorURL,
		DealsURL:        cfg.Links.DealsURL,
	}, log)
	if err != nil {
		log.Error("failed to create chat service", "error", err)
		os.Exit(1)
	}

	r := newRouter(cfg, log, menuService, chatService)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// loadMenu reads the configured sources, or the embedded menu when none are set
func loadMenu(ctx context.Context, cfg config.MenuConfig) ([]models.MenuItem, error) {
	if len(cfg.Sources) == 0 {
		return menu.Default()
	}
	return menu.NewLoader().Load(ctx, cfg.Sources)
}
