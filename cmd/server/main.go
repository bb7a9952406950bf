package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quizpractice/backend/internal/api"
	"github.com/quizpractice/backend/internal/app"
	"github.com/quizpractice/backend/internal/infrastructure/config"

	_ "github.com/quizpractice/backend/docs" // generated swagger docs
)

// @title           Quiz Practice API
// @version         1.0
// @description     Practice multiple-choice questions by topic and difficulty, one session at a time.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Dependencies ────────────────────────────────────────────────
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to load question catalog", "error", err)
		os.Exit(1)
	}
	handler := api.NewHandler(a.Sessions, a.Scores, a.Questions, logger)

	// ── Server ──────────────────────────────────────────────────────
	if err := api.Serve(ctx, cfg.ServerAddress, api.NewRouter(handler, logger), cfg.ShutdownTimeout, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
