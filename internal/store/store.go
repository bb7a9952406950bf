package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quizpractice/backend/internal/domain/question"
)

var (
	// ErrEmptyCatalog is returned when a catalog database holds no questions.
	ErrEmptyCatalog = errors.New("catalog database holds no questions")
	// ErrUnsupportedDSN is returned for a DSN whose scheme is neither sqlite nor postgres.
	ErrUnsupportedDSN = errors.New("unsupported catalog dsn")
)

// CatalogStore is a persistent source of questions. Sessions are never
// written here; they live in the in-memory SessionRegistry.
type CatalogStore interface {
	LoadQuestions(ctx context.Context) ([]question.Question, error)
	CountQuestions(ctx context.Context) (int, error)
	Close() error
}

// OpenCatalog opens the catalog database named by dsn. Accepted forms are
// "sqlite://<path>" and "postgres://..." (or "postgresql://...").
func OpenCatalog(ctx context.Context, dsn string) (CatalogStore, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return NewSQLite(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgres(ctx, dsn, PoolConfig{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}
}
