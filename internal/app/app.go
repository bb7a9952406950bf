// Package app wires configuration, catalog and services together for the
// server and CLI binaries.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/quizpractice/backend/internal/catalog"
	practicesession "github.com/quizpractice/backend/internal/domain/practice_session"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/grader"
	"github.com/quizpractice/backend/internal/infrastructure/config"
	"github.com/quizpractice/backend/internal/service"
	"github.com/quizpractice/backend/internal/store"
)

// App holds every long-lived dependency. The session registry lives
// exactly as long as the App.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Bank      *questionbank.Bank
	Sessions  *service.SessionService
	Scores    *service.ScoreService
	Questions *service.QuestionService
}

// NewLogger builds the slog logger described by cfg.
func NewLogger(cfg config.Log, w io.Writer) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// LoadQuestions reads the catalog from CatalogDSN when set, otherwise from
// CatalogPaths.
func LoadQuestions(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]question.Question, error) {
	if cfg.CatalogDSN != "" {
		cs, err := store.OpenCatalog(ctx, cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		defer cs.Close()

		rows, err := cs.LoadQuestions(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog database: %w", err)
		}
		res, err := catalog.FromRecords("database", rows)
		for _, s := range res.Skipped {
			logger.Warn("skipping invalid question", "entry", s.String())
		}
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded", "source", "database", "questions", len(res.Questions), "skipped", len(res.Skipped))
		return res.Questions, nil
	}
	return catalog.NewLoader(cfg.CatalogWorkers, logger).LoadAll(ctx, cfg.CatalogPaths)
}

// New loads the catalog and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	qs, err := LoadQuestions(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	bank, err := questionbank.NewFromQuestions(qs)
	if err != nil {
		return nil, fmt.Errorf("build question bank: %w", err)
	}
	for _, v := range bank.Validate() {
		logger.Warn("catalog violation", "violation", v.String())
	}
	return Wire(cfg, bank, logger), nil
}

// Wire builds the services around an already loaded bank.
func Wire(cfg *config.Config, bank *questionbank.Bank, logger *slog.Logger) *App {
	g := grader.ExactGrader{}
	sessions := store.NewSessionRegistry()
	limits := practicesession.SessionConfig{
		DefaultQuestions: cfg.Quiz.DefaultQuestions,
		MaxQuestions:     cfg.Quiz.MaxQuestions,
		MaxAnswerLength:  cfg.Quiz.MaxAnswerLength,
	}
	return &App{
		Config:    cfg,
		Logger:    logger,
		Bank:      bank,
		Sessions:  service.NewSessionService(bank, sessions, g, limits, logger),
		Scores:    service.NewScoreService(bank, sessions, g, logger),
		Questions: service.NewQuestionService(bank, g),
	}
}
