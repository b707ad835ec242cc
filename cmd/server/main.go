package main

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/api/controller"
	"ctchen222/perfect-tic-tac-toe/internal/api/service"
	"ctchen222/perfect-tic-tac-toe/internal/config"
	"ctchen222/perfect-tic-tac-toe/internal/db"
	"ctchen222/perfect-tic-tac-toe/internal/logger"
	"ctchen222/perfect-tic-tac-toe/internal/repository"
	"ctchen222/perfect-tic-tac-toe/internal/server"
	"ctchen222/perfect-tic-tac-toe/internal/telemetry"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}
	logger.Init(os.Stdout, level)

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry, os.Stdout)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	// Game ledger is optional
	var gameController *controller.GameController
	if cfg.Storage.Path != "" {
		pool, err := db.Connect(ctx, cfg.Storage.Path)
		if err != nil {
			log.Fatalf("failed to open game ledger: %v", err)
		}
		defer pool.Close()

		gameRepo := repository.NewGameRepository(pool)
		gameController = controller.NewGameController(service.NewGameService(gameRepo))
	} else {
		slog.Warn("No storage path configured, game ledger routes are disabled")
	}

	boardController := controller.NewBoardController(service.NewBoardService())

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(boardController, gameController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("HTTP server started", "http.addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
