// Package selection picks the next question for a session.
package selection

import (
	"github.com/quizpractice/backend/internal/domain"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
)

// Engine enforces the "already asked" exclusion on top of a Bank.
type Engine struct {
	bank *questionbank.Bank
}

func New(bank *questionbank.Bank) *Engine {
	return &Engine{bank: bank}
}

// NextFor returns a random question for (topic, difficulty) that is not in
// exclude. ok is false when the pool is exhausted, which is not an error.
// An error is returned only when topic or difficulty is not in the catalog.
func (e *Engine) NextFor(topic question.Topic, difficulty question.Difficulty, exclude questionbank.IDSet) (question.Question, bool, error) {
	if err := e.CheckCriteria(topic, difficulty); err != nil {
		return question.Question{}, false, err
	}

	q, ok := e.bank.RandomPick(questionbank.Criteria{
		Topic:      topic,
		Difficulty: difficulty,
		Exclude:    exclude,
	})
	return q, ok, nil
}

// Remaining counts eligible questions left for the criteria.
func (e *Engine) Remaining(topic question.Topic, difficulty question.Difficulty, exclude questionbank.IDSet) int {
	return e.bank.Count(questionbank.Criteria{
		Topic:      topic,
		Difficulty: difficulty,
		Exclude:    exclude,
	})
}

// CheckCriteria validates topic and difficulty against what the catalog
// actually holds. Empty values mean "any" and are accepted.
func (e *Engine) CheckCriteria(topic question.Topic, difficulty question.Difficulty) error {
	if topic != "" && !e.bank.HasTopic(topic) {
		return domain.Invalid("topic", topic, "unknown topic %q, available: %v", topic, e.bank.Topics())
	}
	if difficulty != "" && !e.bank.HasDifficulty(difficulty) {
		return domain.Invalid("difficulty", difficulty, "unknown difficulty %q, available: %v", difficulty, e.bank.Difficulties())
	}
	return nil
}
