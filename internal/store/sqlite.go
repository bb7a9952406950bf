package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/quizpractice/backend/internal/domain/question"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    text TEXT NOT NULL,
    option1 TEXT NOT NULL,
    option2 TEXT NOT NULL,
    option3 TEXT NOT NULL,
    option4 TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_tag ON questions (topic, difficulty);
`

const selectQuestions = `
SELECT id, topic, difficulty, text, option1, option2, option3, option4, correct_answer
FROM questions
ORDER BY position`

// SQLiteStore keeps a question catalog in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ CatalogStore = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveQuestions replaces the stored catalog with qs in one transaction,
// preserving their order.
func (s *SQLiteStore) SaveQuestions(ctx context.Context, qs []question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions"); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (id, topic, difficulty, text, option1, option2, option3, option4, correct_answer, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, q := range qs {
		_, err := stmt.ExecContext(ctx,
			q.ID, string(q.Topic), string(q.Difficulty), q.Text,
			q.Options[0], q.Options[1], q.Options[2], q.Options[3],
			q.CorrectAnswer, i,
		)
		if err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadQuestions(ctx context.Context) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, selectQuestions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var qs []question.Question
	for rows.Next() {
		var q question.Question
		var topic, difficulty string
		if err := rows.Scan(&q.ID, &topic, &difficulty, &q.Text,
			&q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3],
			&q.CorrectAnswer); err != nil {
			return nil, err
		}
		q.Topic = question.Topic(topic)
		q.Difficulty = question.Difficulty(difficulty)
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, ErrEmptyCatalog
	}
	return qs, nil
}

func (s *SQLiteStore) CountQuestions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n)
	return n, err
}
