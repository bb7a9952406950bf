package app_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizpractice/backend/internal/app"
	"github.com/quizpractice/backend/internal/catalog"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/infrastructure/config"
	"github.com/quizpractice/backend/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddress:   ":0",
		ShutdownTimeout: time.Second,
		CatalogPaths:    []string{filepath.Join("..", "..", "data", "questions.csv")},
		CatalogWorkers:  2,
		Quiz:            config.Quiz{DefaultQuestions: 10, MaxQuestions: 50, MaxAnswerLength: 500},
		Log:             config.Log{Level: "info", Format: "json"},
	}
}

func TestNew_FromCSV(t *testing.T) {
	a, err := app.New(context.Background(), testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Positive(t, a.Bank.Len())
	assert.Contains(t, a.Sessions.Topics(), question.TopicPhysics)
}

func TestNew_FromSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	qs, err := app.LoadQuestions(ctx, cfg, logger)
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	db, err := store.NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.SaveQuestions(ctx, qs))
	require.NoError(t, db.Close())

	cfg.CatalogPaths = nil
	cfg.CatalogDSN = "sqlite://" + dbPath
	a, err := app.New(ctx, cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, len(qs), a.Bank.Len())
}

func TestNew_FromSQLiteSkipsInvalidRows(t *testing.T) {
	ctx := context.Background()
	rows := []question.Question{
		{
			ID:            "phy_1",
			Topic:         question.TopicPhysics,
			Difficulty:    question.DifficultyEasy,
			Text:          "What is the SI unit of force?",
			Options:       [4]string{"Newton", "Joule", "Watt", "Pascal"},
			CorrectAnswer: "Newton",
		},
		{
			ID:            "chem_1",
			Topic:         question.TopicChemistry,
			Difficulty:    question.DifficultyEasy,
			Text:          "Which formula is carbon monoxide?",
			Options:       [4]string{"CO", "Co", "CO2", "C"},
			CorrectAnswer: "CO",
		},
		{
			ID:            "math_1",
			Topic:         question.TopicMath,
			Difficulty:    question.DifficultyEasy,
			Text:          "What is two plus two?",
			Options:       [4]string{"4", "3", "5", "22"},
			CorrectAnswer: "four",
		},
	}

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	db, err := store.NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.SaveQuestions(ctx, rows))
	require.NoError(t, db.Close())

	cfg := testConfig()
	cfg.CatalogPaths = nil
	cfg.CatalogDSN = "sqlite://" + dbPath
	var logs bytes.Buffer
	a, err := app.New(ctx, cfg, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	assert.Equal(t, 1, a.Bank.Len())
	assert.Empty(t, a.Bank.Validate())
	_, err = a.Bank.Get("chem_1")
	assert.Error(t, err)
	assert.Contains(t, logs.String(), "chem_1")
	assert.Contains(t, logs.String(), "math_1")
}

func TestNew_FromSQLiteWithNoValidRows(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	db, err := store.NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.SaveQuestions(ctx, []question.Question{{
		ID:            "bad_1",
		Topic:         "Biology",
		Difficulty:    question.DifficultyEasy,
		Text:          "What is the powerhouse of the cell?",
		Options:       [4]string{"Mitochondria", "Nucleus", "Ribosome", "Golgi"},
		CorrectAnswer: "Mitochondria",
	}}))
	require.NoError(t, db.Close())

	cfg := testConfig()
	cfg.CatalogPaths = nil
	cfg.CatalogDSN = "sqlite://" + dbPath
	_, err = app.New(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, catalog.ErrNoValidQuestions)
}

func TestNew_MissingCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogPaths = []string{filepath.Join(t.TempDir(), "absent.csv")}
	_, err := app.New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	app.NewLogger(config.Log{Level: "warn", Format: "json"}, &buf).Info("hidden")
	assert.Empty(t, buf.String())

	app.NewLogger(config.Log{Level: "debug", Format: "text"}, &buf).Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}
