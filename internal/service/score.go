package service

import (
	"fmt"
	"log/slog"
	"time"

	practicesession "github.com/quizpractice/backend/internal/domain/practice_session"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/grader"
	"github.com/quizpractice/backend/internal/store"
)

// Summary is the end-of-session report. IncorrectBreakdown is nil for a
// perfect score and otherwise lists exactly the incorrect review entries.
type Summary struct {
	SessionID          string                        `json:"session_id"`
	Topic              question.Topic                `json:"topic"`
	Difficulty         question.Difficulty           `json:"difficulty"`
	State              practicesession.State         `json:"state"`
	TotalQuestions     int                           `json:"total_questions"`
	QuestionsAnswered  int                           `json:"questions_answered"`
	Correct            int                           `json:"correct"`
	Incorrect          int                           `json:"incorrect"`
	Accuracy           float64                       `json:"accuracy"`
	IsPerfect          bool                          `json:"is_perfect"`
	Grade              string                        `json:"grade"`
	NeedsReview        bool                          `json:"needs_review"`
	Review             []practicesession.ReviewEntry `json:"review"`
	IncorrectBreakdown []practicesession.ReviewEntry `json:"incorrect_breakdown,omitempty"`
	DurationSeconds    float64                       `json:"duration_seconds"`
	DurationFormatted  string                        `json:"duration_formatted"`
	QuestionsPerMinute float64                       `json:"questions_per_minute"`
	CompletedAt        *time.Time                    `json:"completed_at,omitempty"`
	Recommendations    []string                      `json:"recommendations"`
}

// ScoreService builds summaries and audits running scores.
type ScoreService struct {
	bank     *questionbank.Bank
	sessions *store.SessionRegistry
	grader   grader.Grader
	logger   *slog.Logger
	now      func() time.Time
}

func NewScoreService(bank *questionbank.Bank, sessions *store.SessionRegistry, g grader.Grader, logger *slog.Logger) *ScoreService {
	return &ScoreService{
		bank:     bank,
		sessions: sessions,
		grader:   g,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary reports on a session at any point of its life.
func (s *ScoreService) Summary(sessionID string) (Summary, error) {
	sess, err := s.sessions.Snapshot(sessionID)
	if err != nil {
		return Summary{}, err
	}

	score := sess.Score
	duration := sess.Duration(s.now())
	sum := Summary{
		SessionID:          sess.ID,
		Topic:              sess.Topic,
		Difficulty:         sess.Difficulty,
		State:              sess.State,
		TotalQuestions:     sess.TotalQuestions,
		QuestionsAnswered:  score.Answered(),
		Correct:            score.Correct,
		Incorrect:          score.Incorrect,
		Accuracy:           practicesession.Round(score.Accuracy(), 1),
		IsPerfect:          score.IsPerfect(),
		Grade:              score.Grade(),
		NeedsReview:        sess.NeedsReview(),
		Review:             sess.Review,
		DurationSeconds:    practicesession.Round(duration.Seconds(), 2),
		DurationFormatted:  practicesession.FormatDuration(duration),
		QuestionsPerMinute: score.QuestionsPerMinute(duration),
		CompletedAt:        sess.EndTime,
	}
	if !sum.IsPerfect {
		sum.IncorrectBreakdown = practicesession.Incorrect(sess.Review)
	}
	sum.Recommendations = recommendations(sess.Topic, score, sum.QuestionsPerMinute)

	s.logger.Debug("summary generated",
		"session_id", sess.ID,
		"accuracy", sum.Accuracy,
	)
	return sum, nil
}

func recommendations(topic question.Topic, score practicesession.Score, qpm float64) []string {
	if score.Answered() == 0 {
		return []string{"No answers yet. Start answering to get feedback."}
	}

	var recs []string
	acc := score.Accuracy()
	switch {
	case acc >= 90:
		recs = append(recs, "Excellent performance! Consider trying harder difficulty levels.")
	case acc >= 70:
		recs = append(recs, "Good performance! Review incorrect answers and practice similar questions.")
	case acc >= 50:
		recs = append(recs, "Fair performance. Focus on understanding fundamental concepts.")
	default:
		recs = append(recs, "Keep practicing! Consider reviewing study materials for this topic.")
	}

	switch {
	case qpm > 0 && qpm < 1:
		recs = append(recs, "Try to answer questions more quickly with practice.")
	case qpm > 5:
		recs = append(recs, "Great speed! Make sure you're not rushing through questions.")
	}

	if acc < 60 {
		recs = append(recs, fmt.Sprintf("Consider reviewing %s concepts for better understanding.", topic))
	}
	return recs
}

// ReplayScore recomputes a session's score from scratch by grading every
// recorded answer again against the catalog. It must always agree with the
// incrementally maintained Session.Score.
func (s *ScoreService) ReplayScore(sessionID string) (practicesession.Score, error) {
	sess, err := s.sessions.Snapshot(sessionID)
	if err != nil {
		return practicesession.Score{}, err
	}
	return Replay(sess, s.bank, s.grader)
}

// Replay grades sess.UserAnswers against bank in dispensing order.
func Replay(sess *practicesession.Session, bank *questionbank.Bank, g grader.Grader) (practicesession.Score, error) {
	var score practicesession.Score
	for _, id := range sess.QuestionsAsked {
		answer, answered := sess.UserAnswers[id]
		if !answered {
			continue
		}
		q, err := bank.Get(id)
		if err != nil {
			return practicesession.Score{}, err
		}
		score.Record(g.Grade(q.CorrectAnswer, answer))
	}
	return score, nil
}
