package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizpractice/backend/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"data/questions.csv"}, cfg.CatalogPaths)
	assert.Empty(t, cfg.CatalogDSN)
	assert.Equal(t, 10, cfg.Quiz.DefaultQuestions)
	assert.Equal(t, 50, cfg.Quiz.MaxQuestions)
	assert.Equal(t, 500, cfg.Quiz.MaxAnswerLength)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "local", cfg.Env)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("CATALOG_PATHS", "a.csv, b.json")
	t.Setenv("QUIZ_MAX_QUESTIONS", "20")
	t.Setenv("QUIZ_DEFAULT_QUESTIONS", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"a.csv", "b.json"}, cfg.CatalogPaths)
	assert.Equal(t, 20, cfg.Quiz.MaxQuestions)
	assert.Equal(t, 5, cfg.Quiz.DefaultQuestions)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QUIZ_MAX_QUESTIONS", "5")
	t.Setenv("QUIZ_DEFAULT_QUESTIONS", "10")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			ServerAddress:   ":8080",
			ShutdownTimeout: time.Second,
			CatalogPaths:    []string{"q.csv"},
			Quiz:            config.Quiz{DefaultQuestions: 10, MaxQuestions: 50, MaxAnswerLength: 500},
			Log:             config.Log{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"no catalog", func(c *config.Config) { c.CatalogPaths = nil }},
		{"zero max", func(c *config.Config) { c.Quiz.MaxQuestions = 0 }},
		{"default above max", func(c *config.Config) { c.Quiz.DefaultQuestions = 51 }},
		{"zero answer length", func(c *config.Config) { c.Quiz.MaxAnswerLength = 0 }},
		{"bad level", func(c *config.Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"no shutdown timeout", func(c *config.Config) { c.ShutdownTimeout = 0 }},
	}

	base := valid()
	require.NoError(t, base.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}

	dsnOnly := valid()
	dsnOnly.CatalogPaths = nil
	dsnOnly.CatalogDSN = "sqlite://catalog.db"
	assert.NoError(t, dsnOnly.Validate())
}
