package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/id"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://catalog.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Document is the JSON catalog format read by LoadJSON and written by
// NewDocument.
type Document struct {
	Version    string         `json:"version,omitempty"`
	ExportedAt string         `json:"exported_at,omitempty"`
	Questions  []jsonQuestion `json:"questions"`
}

type jsonQuestion struct {
	ID         string   `json:"id"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
}

// LoadJSON reads a {"questions": [...]} document. The document must satisfy
// the embedded schema as a whole; entries that break question field rules
// are skipped like invalid CSV rows.
func LoadJSON(r io.Reader, source string) (Result, error) {
	res := &Result{Source: source}

	raw, err := io.ReadAll(r)
	if err != nil {
		return *res, fmt.Errorf("read %s: %w", source, err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return *res, fmt.Errorf("%w: %s: invalid JSON: %v", ErrMalformed, source, err)
	}
	schema, err := catalogSchema()
	if err != nil {
		return *res, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return *res, fmt.Errorf("%w: %s: schema validation failed: %v", ErrMalformed, source, err)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return *res, fmt.Errorf("%w: %s: %v", ErrMalformed, source, err)
	}

	seen := make(map[string]bool)
	for i, jq := range doc.Questions {
		qid := strings.TrimSpace(jq.ID)
		if qid == "" {
			qid = id.GenerateID()
		}
		var opts [question.OptionCount]string
		for j := range opts {
			opts[j] = strings.TrimSpace(jq.Options[j])
		}
		res.accept(i+1, question.Question{
			ID:            qid,
			Topic:         question.Topic(strings.TrimSpace(jq.Topic)),
			Difficulty:    question.Difficulty(strings.TrimSpace(jq.Difficulty)),
			Text:          strings.TrimSpace(jq.Question),
			Options:       opts,
			CorrectAnswer: strings.TrimSpace(jq.Answer),
		}, seen)
	}

	return res.finish()
}

// NewDocument converts questions into a document LoadJSON accepts.
func NewDocument(qs []question.Question, exportedAt time.Time) Document {
	doc := Document{
		Version:    "1.0",
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Questions:  make([]jsonQuestion, len(qs)),
	}
	for i, q := range qs {
		doc.Questions[i] = jsonQuestion{
			ID:         q.ID,
			Topic:      string(q.Topic),
			Difficulty: string(q.Difficulty),
			Question:   q.Text,
			Options:    q.Options[:],
			Answer:     q.CorrectAnswer,
		}
	}
	return doc
}

// WriteJSON writes qs as an indented catalog document.
func WriteJSON(w io.Writer, qs []question.Question, exportedAt time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(qs, exportedAt))
}
