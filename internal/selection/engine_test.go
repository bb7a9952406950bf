package selection_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizpractice/backend/internal/domain"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/selection"
)

func newEngine(t *testing.T) *selection.Engine {
	t.Helper()
	bank := questionbank.New(questionbank.WithSeed(7))
	for i := 1; i <= 3; i++ {
		require.NoError(t, bank.Add(question.Question{
			ID:            fmt.Sprintf("phy_%d", i),
			Topic:         question.TopicPhysics,
			Difficulty:    question.DifficultyEasy,
			Text:          fmt.Sprintf("Physics question number %d?", i),
			Options:       [4]string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
		}))
	}
	return selection.New(bank)
}

func TestNextFor_DrainsPoolWithoutRepeats(t *testing.T) {
	engine := newEngine(t)
	asked := questionbank.NewIDSet()

	for i := 0; i < 3; i++ {
		q, ok, err := engine.NextFor(question.TopicPhysics, question.DifficultyEasy, asked)
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, asked.Has(q.ID))
		asked.Add(q.ID)
	}

	_, ok, err := engine.NextFor(question.TopicPhysics, question.DifficultyEasy, asked)
	assert.NoError(t, err, "exhaustion is not an error")
	assert.False(t, ok)
	assert.Equal(t, 0, engine.Remaining(question.TopicPhysics, question.DifficultyEasy, asked))
}

func TestNextFor_InvalidCriteria(t *testing.T) {
	engine := newEngine(t)

	_, _, err := engine.NextFor("NotATopic", question.DifficultyEasy, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = engine.NextFor(question.TopicPhysics, question.DifficultyHard, nil)
	assert.ErrorIs(t, err, domain.ErrValidation, "difficulty absent from the catalog")
}
