// Package catalog turns question files into validated question.Question
// values. Raw rows never leave this package.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quizpractice/backend/internal/domain"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/worker"
)

var (
	// ErrNoValidQuestions is returned when a source yields zero usable questions.
	ErrNoValidQuestions = errors.New("no valid questions found")
	// ErrUnsupportedFormat is returned for files that are neither .csv nor .json.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	// ErrMalformed is returned when a file cannot be parsed at all.
	ErrMalformed = errors.New("malformed catalog")
)

// Skipped describes an entry that was dropped during loading.
type Skipped struct {
	Source  string   `json:"source"`
	Row     int      `json:"row"` // 1-based data row, header excluded
	Reasons []string `json:"reasons"`
}

func (s Skipped) String() string {
	return fmt.Sprintf("%s row %d: %s", s.Source, s.Row, strings.Join(s.Reasons, "; "))
}

// Result is the outcome of loading one source.
type Result struct {
	Source    string
	Questions []question.Question
	Skipped   []Skipped
}

// accept validates q and either keeps it or records why it was dropped.
// Duplicate ids within one source are dropped as well.
func (r *Result) accept(row int, q question.Question, seen map[string]bool) {
	var reasons []string
	for _, v := range q.Validate() {
		reasons = append(reasons, v.Field+": "+v.Reason)
	}
	if q.ID != "" && seen[q.ID] {
		reasons = append(reasons, "id: duplicate id "+q.ID)
	}
	if len(reasons) > 0 {
		r.Skipped = append(r.Skipped, Skipped{Source: r.Source, Row: row, Reasons: reasons})
		return
	}
	seen[q.ID] = true
	r.Questions = append(r.Questions, q)
}

func (r *Result) finish() (Result, error) {
	if len(r.Questions) == 0 {
		return *r, fmt.Errorf("%s: %w", r.Source, ErrNoValidQuestions)
	}
	return *r, nil
}

// FromRecords applies the same row checks the file loaders use to questions
// that came from elsewhere, such as a catalog database. Rows are numbered
// from 1 in the given order.
func FromRecords(source string, qs []question.Question) (Result, error) {
	res := &Result{Source: source}
	seen := make(map[string]bool, len(qs))
	for i, q := range qs {
		res.accept(i+1, q, seen)
	}
	return res.finish()
}

// LoadFile loads a single file, picking the parser from its extension.
func LoadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{Source: path}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f, path)
	case ".json":
		return LoadJSON(f, path)
	default:
		return Result{Source: path}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Loader reads several catalog files concurrently.
type Loader struct {
	workers int
	logger  *slog.Logger
}

func NewLoader(workers int, logger *slog.Logger) *Loader {
	return &Loader{workers: workers, logger: logger}
}

type loadOutcome struct {
	result Result
	err    error
}

// LoadAll loads every path and merges the questions in path order. Any
// failing file fails the whole load, as does an id present in two files.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]question.Question, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no catalog paths given", ErrNoValidQuestions)
	}

	pool := worker.NewPool[loadOutcome](l.workers, len(paths))
	for i, path := range paths {
		path := path
		pool.Submit(strconv.Itoa(i), func() loadOutcome {
			if err := ctx.Err(); err != nil {
				return loadOutcome{result: Result{Source: path}, err: err}
			}
			res, err := LoadFile(path)
			return loadOutcome{result: res, err: err}
		})
	}
	pool.Close()

	outcomes := make([]loadOutcome, len(paths))
	for res := range pool.Results() {
		i, _ := strconv.Atoi(res.JobID)
		outcomes[i] = res.Output
	}

	var all []question.Question
	origin := make(map[string]string)
	for _, out := range outcomes {
		if out.err != nil {
			return nil, out.err
		}
		for _, s := range out.result.Skipped {
			l.logger.Warn("skipping invalid question", "entry", s.String())
		}
		for _, q := range out.result.Questions {
			if prev, dup := origin[q.ID]; dup {
				return nil, fmt.Errorf("%w: %s appears in %s and %s",
					domain.ErrDuplicateID, q.ID, prev, out.result.Source)
			}
			origin[q.ID] = out.result.Source
			all = append(all, q)
		}
		l.logger.Info("catalog loaded",
			"source", out.result.Source,
			"questions", len(out.result.Questions),
			"skipped", len(out.result.Skipped),
		)
	}
	return all, nil
}
