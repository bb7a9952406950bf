package practicesession_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	practicesession "github.com/quizpractice/backend/internal/domain/practice_session"
)

func TestScore_AccuracyAndGrade(t *testing.T) {
	tests := []struct {
		correct, incorrect int
		accuracy           float64
		grade              string
		perfect            bool
	}{
		{0, 0, 0, "F", false},
		{3, 0, 100, "A", true},
		{9, 1, 90, "A", false},
		{4, 1, 80, "B", false},
		{7, 3, 70, "C", false},
		{3, 2, 60, "D", false},
		{1, 2, 33.333, "F", false},
	}

	for _, tt := range tests {
		s := practicesession.Score{Correct: tt.correct, Incorrect: tt.incorrect}
		assert.InDelta(t, tt.accuracy, s.Accuracy(), 0.001)
		assert.Equal(t, tt.grade, s.Grade())
		assert.Equal(t, tt.perfect, s.IsPerfect())
		assert.Equal(t, tt.correct+tt.incorrect, s.Answered())
	}
}

func TestScore_Record(t *testing.T) {
	var s practicesession.Score
	s.Record(true)
	s.Record(false)
	s.Record(true)
	assert.Equal(t, 2, s.Correct)
	assert.Equal(t, 1, s.Incorrect)
}

func TestQuestionsPerMinute(t *testing.T) {
	s := practicesession.Score{Correct: 3, Incorrect: 1}
	assert.Equal(t, 0.0, s.QuestionsPerMinute(0))
	assert.Equal(t, 2.0, s.QuestionsPerMinute(2*time.Minute))
	assert.Equal(t, 1.33, s.QuestionsPerMinute(3*time.Minute))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 66.7, practicesession.Round(66.6666, 1))
	assert.Equal(t, 33.3, practicesession.Round(33.3333, 1))
	assert.Equal(t, 100.0, practicesession.Round(100, 1))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", practicesession.FormatDuration(45*time.Second))
	assert.Equal(t, "3m 12s", practicesession.FormatDuration(3*time.Minute+12*time.Second))
	assert.Equal(t, "1h 5m", practicesession.FormatDuration(time.Hour+5*time.Minute+30*time.Second))
}
