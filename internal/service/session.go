package service

import (
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/quizpractice/backend/internal/domain"
	practicesession "github.com/quizpractice/backend/internal/domain/practice_session"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/grader"
	"github.com/quizpractice/backend/internal/selection"
	"github.com/quizpractice/backend/internal/store"
)

// AnswerResult is what a caller learns after submitting an answer.
type AnswerResult struct {
	Correct         bool                        `json:"correct"`
	CorrectAnswer   string                      `json:"correct_answer"`
	Entry           practicesession.ReviewEntry `json:"review_entry"`
	Score           practicesession.Score       `json:"score"`
	Progress        practicesession.Progress    `json:"progress"`
	SessionComplete bool                        `json:"session_complete"`
	NeedsReview     bool                        `json:"needs_review"`
}

// Stats aggregates every session in the registry.
type Stats struct {
	TotalSessions      int                   `json:"total_sessions"`
	ActiveSessions     int                   `json:"active_sessions"`
	CompletedSessions  int                   `json:"completed_sessions"`
	TerminatedSessions int                   `json:"terminated_sessions"`
	Topics             []question.Topic      `json:"topics"`
	Difficulties       []question.Difficulty `json:"difficulties"`
}

// SessionService drives the practice session lifecycle. Every read-modify-write
// on one session runs under that session's registry lock.
type SessionService struct {
	bank     *questionbank.Bank
	engine   *selection.Engine
	sessions *store.SessionRegistry
	grader   grader.Grader
	cfg      practicesession.SessionConfig
	logger   *slog.Logger
}

func NewSessionService(
	bank *questionbank.Bank,
	sessions *store.SessionRegistry,
	g grader.Grader,
	cfg practicesession.SessionConfig,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		bank:     bank,
		engine:   selection.New(bank),
		sessions: sessions,
		grader:   g,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *SessionService) Config() practicesession.SessionConfig { return s.cfg }

func (s *SessionService) Topics() []question.Topic { return s.bank.Topics() }

func (s *SessionService) Difficulties() []question.Difficulty { return s.bank.Difficulties() }

// Create validates the request and registers a new in-progress session.
// Nothing is registered when validation fails.
func (s *SessionService) Create(topic question.Topic, difficulty question.Difficulty, total int) (*practicesession.Session, error) {
	if topic == "" {
		return nil, domain.Invalid("topic", topic, "topic is required")
	}
	if difficulty == "" {
		return nil, domain.Invalid("difficulty", difficulty, "difficulty is required")
	}
	if err := s.engine.CheckCriteria(topic, difficulty); err != nil {
		return nil, err
	}
	if total <= 0 || total > s.cfg.MaxQuestions {
		return nil, domain.Invalid("total_questions", total,
			"total_questions must be between 1 and %d", s.cfg.MaxQuestions)
	}

	session := practicesession.New(topic, difficulty, total)
	if err := session.Start(); err != nil {
		return nil, err
	}
	if err := s.sessions.Put(session); err != nil {
		return nil, err
	}

	s.logger.Info("session created",
		"session_id", session.ID,
		"topic", topic,
		"difficulty", difficulty,
		"total_questions", total,
	)
	return session.Clone(), nil
}

// NextQuestion dispenses the next question. ok is false when the session
// has no more questions to give, either because the quota was reached or
// because the pool ran dry. If the last dispensed question is still
// unanswered it is returned again and nothing changes. That includes the
// final question of the quota: ok turns false only once it is answered.
func (s *SessionService) NextQuestion(sessionID string) (q question.Question, ok bool, err error) {
	err = s.sessions.WithSession(sessionID, func(sess *practicesession.Session) error {
		if err := sess.CheckDispense(); err != nil {
			return err
		}

		if pending, has := sess.Pending(); has {
			q, err = s.bank.Get(pending)
			ok = err == nil
			return err
		}
		if sess.QuotaReached() || sess.Exhausted() {
			return nil
		}

		next, found, err := s.engine.NextFor(sess.Topic, sess.Difficulty, sess.AskedSet())
		if err != nil {
			return err
		}
		if !found {
			sess.MarkExhausted()
			s.logger.Info("question pool exhausted",
				"session_id", sess.ID,
				"questions_asked", len(sess.QuestionsAsked),
				"total_questions", sess.TotalQuestions,
			)
			return nil
		}
		if err := sess.RecordQuestion(next.ID); err != nil {
			return err
		}

		s.logger.Debug("question dispensed",
			"session_id", sess.ID,
			"question_id", next.ID,
			"number", len(sess.QuestionsAsked),
		)
		q, ok = next, true
		return nil
	})
	return q, ok, err
}

// SubmitAnswer grades and records the answer to the pending question.
func (s *SessionService) SubmitAnswer(sessionID, questionID, answer string) (AnswerResult, error) {
	var res AnswerResult
	err := s.sessions.WithSession(sessionID, func(sess *practicesession.Session) error {
		if err := sess.CheckDispense(); err != nil {
			return err
		}
		if err := s.checkAnswerText(answer); err != nil {
			return err
		}
		if err := sess.CheckAnswerable(questionID); err != nil {
			return err
		}

		q, err := s.bank.Get(questionID)
		if err != nil {
			return err
		}

		answer = strings.TrimSpace(answer)
		correct := s.grader.Grade(q.CorrectAnswer, answer)
		entry, err := sess.RecordAnswer(q, answer, correct)
		if err != nil {
			return err
		}

		res = AnswerResult{
			Correct:         correct,
			CorrectAnswer:   q.CorrectAnswer,
			Entry:           entry,
			Score:           sess.Score,
			Progress:        sess.Progress(),
			SessionComplete: sess.ShouldEnd(),
			NeedsReview:     sess.NeedsReview(),
		}

		s.logger.Debug("answer recorded",
			"session_id", sess.ID,
			"question_id", q.ID,
			"correct", correct,
		)
		return nil
	})
	return res, err
}

func (s *SessionService) checkAnswerText(answer string) error {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return domain.Invalid("answer", answer, "answer must not be empty")
	}
	if n := utf8.RuneCountInString(trimmed); n > s.cfg.MaxAnswerLength {
		return domain.Invalid("answer", n, "answer exceeds %d characters", s.cfg.MaxAnswerLength)
	}
	return nil
}

// Complete ends the session and returns its final score. Completing an
// inactive session returns the score it already has.
func (s *SessionService) Complete(sessionID string) (practicesession.Score, error) {
	var score practicesession.Score
	err := s.sessions.WithSession(sessionID, func(sess *practicesession.Session) error {
		if sess.Complete() {
			s.logger.Info("session completed",
				"session_id", sess.ID,
				"correct", sess.Score.Correct,
				"incorrect", sess.Score.Incorrect,
				"accuracy", practicesession.Round(sess.Score.Accuracy(), 1),
			)
		}
		score = sess.Score
		return nil
	})
	return score, err
}

func (s *SessionService) Pause(sessionID string) error {
	return s.control(sessionID, "session paused", (*practicesession.Session).Pause)
}

func (s *SessionService) Resume(sessionID string) error {
	return s.control(sessionID, "session resumed", (*practicesession.Session).Resume)
}

func (s *SessionService) Terminate(sessionID string) error {
	return s.control(sessionID, "session terminated", (*practicesession.Session).Terminate)
}

func (s *SessionService) control(sessionID, msg string, op func(*practicesession.Session) error) error {
	err := s.sessions.WithSession(sessionID, op)
	if err == nil {
		s.logger.Info(msg, "session_id", sessionID)
	}
	return err
}

func (s *SessionService) CanContinue(sessionID string) (bool, error) {
	return s.predicate(sessionID, (*practicesession.Session).CanContinue)
}

func (s *SessionService) ShouldEnd(sessionID string) (bool, error) {
	return s.predicate(sessionID, (*practicesession.Session).ShouldEnd)
}

func (s *SessionService) NeedsReview(sessionID string) (bool, error) {
	return s.predicate(sessionID, (*practicesession.Session).NeedsReview)
}

func (s *SessionService) predicate(sessionID string, fn func(*practicesession.Session) bool) (bool, error) {
	var v bool
	err := s.sessions.WithSession(sessionID, func(sess *practicesession.Session) error {
		v = fn(sess)
		return nil
	})
	return v, err
}

// Get returns a snapshot of the session.
func (s *SessionService) Get(sessionID string) (*practicesession.Session, error) {
	return s.sessions.Snapshot(sessionID)
}

// Active returns snapshots of sessions that still accept questions or answers.
func (s *SessionService) Active() []*practicesession.Session {
	var active []*practicesession.Session
	for _, sess := range s.sessions.List() {
		if sess.IsActive() {
			active = append(active, sess)
		}
	}
	return active
}

func (s *SessionService) Stats() Stats {
	st := Stats{Topics: []question.Topic{}, Difficulties: []question.Difficulty{}}
	seenTopic := make(map[question.Topic]bool)
	seenDiff := make(map[question.Difficulty]bool)

	for _, sess := range s.sessions.List() {
		st.TotalSessions++
		switch sess.State {
		case practicesession.StateCompleted:
			st.CompletedSessions++
		case practicesession.StateForceTerminated:
			st.TerminatedSessions++
		default:
			st.ActiveSessions++
		}
		if !seenTopic[sess.Topic] {
			seenTopic[sess.Topic] = true
			st.Topics = append(st.Topics, sess.Topic)
		}
		if !seenDiff[sess.Difficulty] {
			seenDiff[sess.Difficulty] = true
			st.Difficulties = append(st.Difficulties, sess.Difficulty)
		}
	}
	return st
}

// IsNotFound reports whether err is one of the not-found kinds.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrQuestionNotFound)
}
