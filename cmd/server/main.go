package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-smart-tools/internal/config"
	"pdf-smart-tools/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			container.Logger.Error("Failed to release resources", err)
		}
	}()

	cfg := container.Config
	appLogger := container.Logger

	// Handlers
	routes := handler.Routes{
		Tools:   handler.NewToolHandler(container.ToolService, cfg.GetMaxFileSize(), appLogger),
		History: handler.NewHistoryHandler(container.HistoryService, appLogger),
		Auth:    handler.NewAuthHandler(),
		Admin:   handler.NewAdminHandler(container.AdminService, cfg.GetAdminSecret(), appLogger),
	}
	authMiddleware := handler.NewAuthMiddleware(container.AuthService, appLogger)

	// Router
	router := handler.NewRouter(routes, authMiddleware, appLogger, cfg.GetCORSAllowedOrigins())

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		appLogger.Error("Server failed to start", err)
		return
	case <-quit:
	}

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	appLogger.Info("Server exited")
}
