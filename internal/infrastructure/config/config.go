package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env             string        `mapstructure:"app_env"`
	ServerAddress   string        `mapstructure:"server_address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Catalog sources. CatalogDSN, when set, wins over CatalogPaths.
	CatalogPaths   []string `mapstructure:"catalog_paths"`
	CatalogDSN     string   `mapstructure:"catalog_dsn"`
	CatalogWorkers int      `mapstructure:"catalog_workers"`

	Quiz Quiz `mapstructure:"quiz"`
	Log  Log  `mapstructure:"log"`
}

// Quiz holds session limits.
type Quiz struct {
	DefaultQuestions int `mapstructure:"default_questions"`
	MaxQuestions     int `mapstructure:"max_questions"`
	MaxAnswerLength  int `mapstructure:"max_answer_length"`
}

type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// Load reads .env (if present), then config/config.yaml (if present), then
// the environment. Later sources override earlier ones.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("app_env", "local")
	v.SetDefault("server_address", ":8080")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("catalog_paths", "data/questions.csv")
	v.SetDefault("catalog_dsn", "")
	v.SetDefault("catalog_workers", 4)
	v.SetDefault("quiz.default_questions", 10)
	v.SetDefault("quiz.max_questions", 50)
	v.SetDefault("quiz.max_answer_length", 500)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("app_env", "APP_ENV")
	_ = v.BindEnv("server_address", "SERVER_ADDRESS")
	_ = v.BindEnv("shutdown_timeout", "SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("catalog_paths", "CATALOG_PATHS")
	_ = v.BindEnv("catalog_dsn", "CATALOG_DSN")
	_ = v.BindEnv("catalog_workers", "CATALOG_WORKERS")
	_ = v.BindEnv("quiz.default_questions", "QUIZ_DEFAULT_QUESTIONS")
	_ = v.BindEnv("quiz.max_questions", "QUIZ_MAX_QUESTIONS")
	_ = v.BindEnv("quiz.max_answer_length", "QUIZ_MAX_ANSWER_LENGTH")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.CatalogPaths = splitPaths(v.GetStringSlice("catalog_paths"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitPaths accepts both a YAML list and a comma separated env value.
func splitPaths(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, p := range strings.Split(item, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (c *Config) Validate() error {
	var problems []string
	if c.ServerAddress == "" {
		problems = append(problems, "server_address is required")
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, "shutdown_timeout must be positive")
	}
	if c.CatalogDSN == "" && len(c.CatalogPaths) == 0 {
		problems = append(problems, "either catalog_dsn or catalog_paths is required")
	}
	if c.Quiz.MaxQuestions <= 0 {
		problems = append(problems, "quiz.max_questions must be positive")
	}
	if c.Quiz.DefaultQuestions < 1 || c.Quiz.DefaultQuestions > c.Quiz.MaxQuestions {
		problems = append(problems, fmt.Sprintf("quiz.default_questions must be between 1 and %d", c.Quiz.MaxQuestions))
	}
	if c.Quiz.MaxAnswerLength <= 0 {
		problems = append(problems, "quiz.max_answer_length must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		problems = append(problems, fmt.Sprintf("log.format %q must be json or text", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// SlogLevel parses Level into a slog.Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q is not a valid level", l.Level)
	}
	return level, nil
}
