package practicesession_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizpractice/backend/internal/domain"
	practicesession "github.com/quizpractice/backend/internal/domain/practice_session"
	"github.com/quizpractice/backend/internal/domain/question"
)

func testQuestion(n int) question.Question {
	return question.Question{
		ID:            fmt.Sprintf("q%d", n),
		Topic:         question.TopicMath,
		Difficulty:    question.DifficultyEasy,
		Text:          fmt.Sprintf("What is %d plus %d?", n, n),
		Options:       [4]string{fmt.Sprint(2 * n), "0", "-1", "100000"},
		CorrectAnswer: fmt.Sprint(2 * n),
	}
}

func newStarted(t *testing.T, total int) *practicesession.Session {
	t.Helper()
	s := practicesession.New(question.TopicMath, question.DifficultyEasy, total)
	require.NoError(t, s.Start())
	return s
}

// ask dispenses and answers question n.
func ask(t *testing.T, s *practicesession.Session, n int, correct bool) {
	t.Helper()
	q := testQuestion(n)
	require.NoError(t, s.RecordQuestion(q.ID))
	_, err := s.RecordAnswer(q, "answer", correct)
	require.NoError(t, err)
}

func TestNew_InitialShape(t *testing.T) {
	s := practicesession.New(question.TopicMath, question.DifficultyEasy, 5)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, practicesession.StateCreated, s.State)
	assert.True(t, s.IsActive())
	assert.Len(t, s.ControlFlags, 3)
	assert.Contains(t, s.Checkpoints, practicesession.CheckpointCreated)
	assert.Empty(t, s.QuestionsAsked)
	assert.NotNil(t, s.UserAnswers)

	require.NoError(t, s.Start())
	assert.Equal(t, practicesession.StateInProgress, s.State)
	assert.ErrorIs(t, s.Start(), domain.ErrSession)
}

func TestNew_IDsAreUnique(t *testing.T) {
	a := practicesession.New(question.TopicMath, question.DifficultyEasy, 5)
	b := practicesession.New(question.TopicMath, question.DifficultyEasy, 5)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecordQuestion_Guards(t *testing.T) {
	s := newStarted(t, 2)

	require.NoError(t, s.RecordQuestion("q1"))
	assert.ErrorIs(t, s.RecordQuestion("q2"), domain.ErrSession, "previous question unanswered")

	_, err := s.RecordAnswer(testQuestion(1), "2", true)
	require.NoError(t, err)

	assert.ErrorIs(t, s.RecordQuestion("q1"), domain.ErrSession, "duplicate id")
	require.NoError(t, s.RecordQuestion("q2"))
	_, err = s.RecordAnswer(testQuestion(2), "4", true)
	require.NoError(t, err)

	assert.ErrorIs(t, s.RecordQuestion("q3"), domain.ErrSession, "quota reached")
	assert.Len(t, s.QuestionsAsked, 2)
}

func TestRecordAnswer_OutOfTurn(t *testing.T) {
	s := newStarted(t, 3)

	_, err := s.RecordAnswer(testQuestion(1), "2", true)
	assert.ErrorIs(t, err, domain.ErrValidation, "never dispensed")

	require.NoError(t, s.RecordQuestion("q1"))
	_, err = s.RecordAnswer(testQuestion(9), "18", true)
	assert.ErrorIs(t, err, domain.ErrValidation, "not the pending question")

	_, err = s.RecordAnswer(testQuestion(1), "2", true)
	require.NoError(t, err)

	_, err = s.RecordAnswer(testQuestion(1), "0", false)
	assert.ErrorIs(t, err, domain.ErrValidation, "second answer must not overwrite")
	assert.Equal(t, "2", s.UserAnswers["q1"])
	assert.Equal(t, 1, s.Score.Correct)
	assert.Equal(t, 0, s.Score.Incorrect)
}

func TestRecordAnswer_ReviewEntries(t *testing.T) {
	s := newStarted(t, 3)
	ask(t, s, 1, true)
	ask(t, s, 2, false)
	ask(t, s, 3, true)

	require.Len(t, s.Review, 3)
	for i, entry := range s.Review {
		assert.Equal(t, i+1, entry.QuestionNumber)
		assert.Equal(t, fmt.Sprintf("q%d", i+1), entry.QuestionID)
	}

	incorrect := practicesession.Incorrect(s.Review)
	require.Len(t, incorrect, 1)
	assert.Equal(t, "q2", incorrect[0].QuestionID)
	assert.Equal(t, "4", incorrect[0].CorrectAnswer)
}

func TestReadyToComplete(t *testing.T) {
	s := newStarted(t, 2)
	ask(t, s, 1, true)
	assert.Equal(t, practicesession.StateInProgress, s.State)
	assert.True(t, s.CanContinue())

	require.NoError(t, s.RecordQuestion("q2"))
	assert.Equal(t, practicesession.StateInProgress, s.State, "last question still pending")

	_, err := s.RecordAnswer(testQuestion(2), "4", true)
	require.NoError(t, err)
	assert.Equal(t, practicesession.StateReadyToComplete, s.State)
	assert.True(t, s.ShouldEnd())
	assert.False(t, s.CanContinue())
}

func TestMarkExhausted(t *testing.T) {
	s := newStarted(t, 5)
	ask(t, s, 1, true)

	s.MarkExhausted()
	assert.True(t, s.Exhausted())
	assert.Equal(t, practicesession.StateReadyToComplete, s.State)
	assert.False(t, s.CanContinue())
}

func TestComplete_IsTerminalAndIdempotent(t *testing.T) {
	s := newStarted(t, 3)
	ask(t, s, 1, true)

	assert.True(t, s.Complete())
	assert.False(t, s.IsActive())
	assert.Equal(t, practicesession.StateCompleted, s.State)
	require.NotNil(t, s.EndTime)

	assert.False(t, s.Complete(), "second completion is a no-op")
	assert.ErrorIs(t, s.RecordQuestion("q2"), domain.ErrSession)
	assert.ErrorIs(t, s.CheckDispense(), domain.ErrSession)
	_, err := s.RecordAnswer(testQuestion(2), "4", true)
	assert.ErrorIs(t, err, domain.ErrSession)
}

func TestPauseResumeTerminate(t *testing.T) {
	s := newStarted(t, 3)

	require.NoError(t, s.Pause())
	assert.True(t, s.Paused())
	assert.ErrorIs(t, s.Pause(), domain.ErrSession)
	assert.ErrorIs(t, s.RecordQuestion("q1"), domain.ErrSession)
	assert.False(t, s.CanContinue())

	require.NoError(t, s.Resume())
	assert.ErrorIs(t, s.Resume(), domain.ErrSession)
	require.NoError(t, s.RecordQuestion("q1"))

	require.NoError(t, s.Terminate())
	assert.Equal(t, practicesession.StateForceTerminated, s.State)
	assert.True(t, s.ControlFlags[practicesession.FlagForceTerminated])
	assert.ErrorIs(t, s.Terminate(), domain.ErrSession)
	assert.ErrorIs(t, s.Pause(), domain.ErrSession)
	assert.False(t, s.Complete())
}

func TestNeedsReview(t *testing.T) {
	tests := []struct {
		name    string
		answers []bool
		want    bool
	}{
		{"too few answers", []bool{false, false}, false},
		{"three wrong", []bool{false, false, false}, true},
		{"two of three right", []bool{true, false, true}, false},
		{"window drops old answers", []bool{true, true, true, false, false, true, false, false}, true},
		{"recent recovery", []bool{false, false, false, true, true, true, false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStarted(t, len(tt.answers))
			for i, correct := range tt.answers {
				ask(t, s, i+1, correct)
			}
			before := s.Clone()

			assert.Equal(t, tt.want, s.NeedsReview())
			assert.Equal(t, before, s, "predicate must not mutate the session")
		})
	}
}

func TestProgress(t *testing.T) {
	s := newStarted(t, 4)
	ask(t, s, 1, true)
	require.NoError(t, s.RecordQuestion("q2"))

	p := s.Progress()
	assert.Equal(t, 4, p.TotalQuestions)
	assert.Equal(t, 2, p.QuestionsAsked)
	assert.Equal(t, 1, p.QuestionsAnswered)
	assert.Equal(t, 2, p.RemainingQuestions)
	assert.InDelta(t, 50.0, p.ProgressPercentage, 0.001)
	assert.False(t, p.IsComplete)
}

func TestClone_IsDeep(t *testing.T) {
	s := newStarted(t, 3)
	ask(t, s, 1, true)
	s.Complete()

	c := s.Clone()
	c.QuestionsAsked[0] = "changed"
	c.UserAnswers["q1"] = "changed"
	c.ControlFlags[practicesession.FlagPaused] = true
	*c.EndTime = c.EndTime.Add(time.Hour)

	assert.Equal(t, "q1", s.QuestionsAsked[0])
	assert.Equal(t, "answer", s.UserAnswers["q1"])
	assert.False(t, s.ControlFlags[practicesession.FlagPaused])
	assert.NotEqual(t, *c.EndTime, *s.EndTime)
}
