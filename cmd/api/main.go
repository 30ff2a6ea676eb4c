package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jaden827827/Quizz-game/internal/config"
	"github.com/Jaden827827/Quizz-game/internal/handlers"
	"github.com/Jaden827827/Quizz-game/internal/repository"
	"github.com/Jaden827827/Quizz-game/internal/service"
	"github.com/Jaden827827/Quizz-game/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDatabase(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	hub := websocket.NewHub()
	go hub.Run()

	playerRepo := repository.NewPlayerRepository(db)
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	sessionService := service.NewSessionService(playerRepo, userRepo, questionRepo, attemptRepo, hub, cfg.Game.MaxPlayers)
	scoreService := service.NewScoreService(playerRepo, userRepo, questionRepo, attemptRepo)
	questionService := service.NewQuestionService(questionRepo)
	authService := service.NewAuthService(userRepo)
	cleanupService := service.NewCleanupService(playerRepo, hub)

	auth := handlers.NewSessionAuth(cfg.Auth.SessionSecret, cfg.Auth.AdminEmail)
	authHandler := handlers.NewAuthHandler(authService, auth)
	adminHandler := handlers.NewAdminHandler(authService, questionService)
	httpHandler := handlers.NewHTTPHandler(sessionService, scoreService, questionService, authHandler, adminHandler, auth)
	gameHandler := handlers.NewGameHandler(sessionService, hub)
	wsHandler := handlers.NewWebSocketHandler(hub, gameHandler)

	router := gin.Default()
	httpHandler.RegisterRoutes(router)
	wsHandler.RegisterRoutes(router)

	cleanupService.StartCleanupRoutine()

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "address", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
