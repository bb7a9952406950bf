package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/id"
)

var requiredColumns = []string{
	"topic", "question", "option1", "option2", "option3", "option4", "answer", "difficulty",
}

// LoadCSV reads rows with the columns in requiredColumns plus an optional
// "id". Rows without an id get a generated one. Invalid rows are skipped
// and reported in Result.Skipped.
func LoadCSV(r io.Reader, source string) (Result, error) {
	res := &Result{Source: source}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return *res, fmt.Errorf("%w: %s is empty", ErrMalformed, source)
	}
	if err != nil {
		return *res, fmt.Errorf("%w: %s: %v", ErrMalformed, source, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return *res, fmt.Errorf("%w: %s: missing required columns %v", ErrMalformed, source, missing)
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	seen := make(map[string]bool)
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return *res, fmt.Errorf("%w: %s: %v", ErrMalformed, source, err)
		}

		qid := field(rec, "id")
		if qid == "" {
			qid = id.GenerateID()
		}
		res.accept(row, question.Question{
			ID:         qid,
			Topic:      question.Topic(field(rec, "topic")),
			Difficulty: question.Difficulty(field(rec, "difficulty")),
			Text:       field(rec, "question"),
			Options: [question.OptionCount]string{
				field(rec, "option1"), field(rec, "option2"), field(rec, "option3"), field(rec, "option4"),
			},
			CorrectAnswer: field(rec, "answer"),
		}, seen)
	}

	return res.finish()
}
