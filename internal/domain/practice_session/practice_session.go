package practicesession

import (
	"time"

	"github.com/quizpractice/backend/internal/domain"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/id"
)

type State string

const (
	StateCreated         State = "created"
	StateInProgress      State = "in_progress"
	StateReadyToComplete State = "ready_to_complete"
	StateCompleted       State = "completed"
	StateForceTerminated State = "force_terminated"
)

// Terminal reports whether no further questions or answers are accepted.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateForceTerminated
}

// ControlFlag is a control signal orthogonal to State.
type ControlFlag string

const (
	FlagPaused          ControlFlag = "paused"
	FlagForceTerminated ControlFlag = "force_terminated"
	FlagPoolExhausted   ControlFlag = "pool_exhausted"
)

// Checkpoint names a lifecycle moment recorded on the session.
type Checkpoint string

const (
	CheckpointCreated       Checkpoint = "created"
	CheckpointFirstQuestion Checkpoint = "first_question"
	CheckpointLastAnswer    Checkpoint = "last_answer"
	CheckpointPaused        Checkpoint = "paused"
	CheckpointResumed       Checkpoint = "resumed"
	CheckpointEnded         Checkpoint = "ended"
)

const (
	// ReviewWindow is how many recent answers feed the needs-review check.
	ReviewWindow = 5
	// MinAnswersForReview is the fewest answers before needs-review can fire.
	MinAnswersForReview = 3
	// ReviewThreshold is the rolling accuracy (percent) below which review is suggested.
	ReviewThreshold = 50.0
)

// Session is one user's run through a bounded number of questions.
// All mutation goes through its methods so the invariants below hold:
// QuestionsAsked has no duplicates and never exceeds TotalQuestions, and
// every key of UserAnswers appears in QuestionsAsked.
type Session struct {
	ID             string
	Topic          question.Topic
	Difficulty     question.Difficulty
	TotalQuestions int
	QuestionsAsked []string
	UserAnswers    map[string]string
	Review         []ReviewEntry
	Score          Score
	State          State
	ControlFlags   map[ControlFlag]bool
	Checkpoints    map[Checkpoint]time.Time
	StartTime      time.Time
	EndTime        *time.Time
}

// New creates a session in the created state with an unguessable id.
func New(topic question.Topic, difficulty question.Difficulty, totalQuestions int) *Session {
	now := time.Now()
	return &Session{
		ID:             id.NewSessionID(),
		Topic:          topic,
		Difficulty:     difficulty,
		TotalQuestions: totalQuestions,
		QuestionsAsked: []string{},
		UserAnswers:    make(map[string]string),
		Review:         []ReviewEntry{},
		State:          StateCreated,
		ControlFlags: map[ControlFlag]bool{
			FlagPaused:          false,
			FlagForceTerminated: false,
			FlagPoolExhausted:   false,
		},
		Checkpoints: map[Checkpoint]time.Time{
			CheckpointCreated: now,
		},
		StartTime: now,
	}
}

func (s *Session) conflict(reason string) error {
	return &domain.SessionError{SessionID: s.ID, Reason: reason}
}

// Start moves a created session into progress.
func (s *Session) Start() error {
	if s.State != StateCreated {
		return s.conflict("cannot start a session in state " + string(s.State))
	}
	s.State = StateInProgress
	return nil
}

func (s *Session) IsActive() bool {
	return !s.State.Terminal()
}

func (s *Session) Paused() bool {
	return s.ControlFlags[FlagPaused]
}

func (s *Session) Exhausted() bool {
	return s.ControlFlags[FlagPoolExhausted]
}

// checkWritable returns a session error if the session cannot take
// questions or answers right now.
func (s *Session) checkWritable() error {
	switch {
	case s.State == StateCompleted:
		return s.conflict("session is completed")
	case s.State == StateForceTerminated:
		return s.conflict("session was terminated")
	case s.Paused():
		return s.conflict("session is paused")
	}
	return nil
}

// CheckDispense reports whether a new question may be requested.
func (s *Session) CheckDispense() error {
	return s.checkWritable()
}

// Pending returns the most recently dispensed question if it is unanswered.
func (s *Session) Pending() (string, bool) {
	if len(s.QuestionsAsked) == 0 {
		return "", false
	}
	last := s.QuestionsAsked[len(s.QuestionsAsked)-1]
	if _, answered := s.UserAnswers[last]; answered {
		return "", false
	}
	return last, true
}

// AskedSet returns the ids dispensed so far as an exclusion set.
func (s *Session) AskedSet() questionbank.IDSet {
	return questionbank.NewIDSet(s.QuestionsAsked...)
}

// QuotaReached reports whether every allotted question was dispensed.
func (s *Session) QuotaReached() bool {
	return len(s.QuestionsAsked) >= s.TotalQuestions
}

// RecordQuestion appends a dispensed question id.
func (s *Session) RecordQuestion(questionID string) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if s.QuotaReached() {
		return s.conflict("question limit reached")
	}
	if _, ok := s.Pending(); ok {
		return s.conflict("previous question is still unanswered")
	}
	for _, asked := range s.QuestionsAsked {
		if asked == questionID {
			return s.conflict("question " + questionID + " was already asked")
		}
	}

	if s.State == StateCreated {
		s.State = StateInProgress
	}
	if len(s.QuestionsAsked) == 0 {
		s.Checkpoints[CheckpointFirstQuestion] = time.Now()
	}
	s.QuestionsAsked = append(s.QuestionsAsked, questionID)
	return nil
}

// CheckAnswerable validates that questionID is the pending question.
func (s *Session) CheckAnswerable(questionID string) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if _, answered := s.UserAnswers[questionID]; answered {
		return domain.Invalid("question_id", questionID, "question %s was already answered", questionID)
	}
	pending, ok := s.Pending()
	if !ok || pending != questionID {
		return domain.Invalid("question_id", questionID, "question %s is not the current question of this session", questionID)
	}
	return nil
}

// RecordAnswer stores the answer for the pending question, appends its
// review entry and updates the running score.
func (s *Session) RecordAnswer(q question.Question, answer string, correct bool) (ReviewEntry, error) {
	if err := s.CheckAnswerable(q.ID); err != nil {
		return ReviewEntry{}, err
	}

	s.UserAnswers[q.ID] = answer
	entry := ReviewEntry{
		QuestionNumber: len(s.Review) + 1,
		QuestionID:     q.ID,
		QuestionText:   q.Text,
		UserAnswer:     answer,
		CorrectAnswer:  q.CorrectAnswer,
		Correct:        correct,
	}
	s.Review = append(s.Review, entry)
	s.Score.Record(correct)
	s.Checkpoints[CheckpointLastAnswer] = time.Now()
	s.refreshReadiness()
	return entry, nil
}

// MarkExhausted records that no eligible question remains.
func (s *Session) MarkExhausted() {
	s.ControlFlags[FlagPoolExhausted] = true
	s.refreshReadiness()
}

func (s *Session) refreshReadiness() {
	if s.State != StateInProgress {
		return
	}
	if _, ok := s.Pending(); ok {
		return
	}
	if s.QuotaReached() || s.Exhausted() {
		s.State = StateReadyToComplete
	}
}

// Complete ends the session. It returns false if the session was already
// inactive, in which case nothing changes.
func (s *Session) Complete() bool {
	if !s.IsActive() {
		return false
	}
	s.end(StateCompleted)
	return true
}

// Terminate force-ends the session from any non-terminal state.
func (s *Session) Terminate() error {
	if !s.IsActive() {
		return s.conflict("session is already " + string(s.State))
	}
	s.ControlFlags[FlagForceTerminated] = true
	s.end(StateForceTerminated)
	return nil
}

func (s *Session) end(state State) {
	now := time.Now()
	s.State = state
	s.ControlFlags[FlagPaused] = false
	s.EndTime = &now
	s.Checkpoints[CheckpointEnded] = now
}

func (s *Session) Pause() error {
	if !s.IsActive() {
		return s.conflict("cannot pause a " + string(s.State) + " session")
	}
	if s.Paused() {
		return s.conflict("session is already paused")
	}
	s.ControlFlags[FlagPaused] = true
	s.Checkpoints[CheckpointPaused] = time.Now()
	return nil
}

func (s *Session) Resume() error {
	if !s.IsActive() {
		return s.conflict("cannot resume a " + string(s.State) + " session")
	}
	if !s.Paused() {
		return s.conflict("session is not paused")
	}
	s.ControlFlags[FlagPaused] = false
	s.Checkpoints[CheckpointResumed] = time.Now()
	return nil
}

// CanContinue reports whether another question can be requested.
func (s *Session) CanContinue() bool {
	return s.IsActive() && !s.Paused() && !s.QuotaReached() && !s.Exhausted()
}

// ShouldEnd reports whether the session has nothing left to do.
func (s *Session) ShouldEnd() bool {
	return !s.IsActive() || s.State == StateReadyToComplete
}

// NeedsReview reports whether recent answers suggest revisiting the topic.
func (s *Session) NeedsReview() bool {
	if len(s.Review) < MinAnswersForReview {
		return false
	}
	window := s.Review
	if len(window) > ReviewWindow {
		window = window[len(window)-ReviewWindow:]
	}
	correct := 0
	for _, r := range window {
		if r.Correct {
			correct++
		}
	}
	return float64(correct)/float64(len(window))*100 < ReviewThreshold
}

// Duration is the elapsed time, frozen once the session ends.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// Progress summarizes how far the session has advanced.
type Progress struct {
	TotalQuestions     int     `json:"total_questions"`
	QuestionsAsked     int     `json:"questions_asked"`
	QuestionsAnswered  int     `json:"questions_answered"`
	RemainingQuestions int     `json:"remaining_questions"`
	ProgressPercentage float64 `json:"progress_percentage"`
	IsComplete         bool    `json:"is_complete"`
}

func (s *Session) Progress() Progress {
	return Progress{
		TotalQuestions:     s.TotalQuestions,
		QuestionsAsked:     len(s.QuestionsAsked),
		QuestionsAnswered:  len(s.UserAnswers),
		RemainingQuestions: s.TotalQuestions - len(s.QuestionsAsked),
		ProgressPercentage: float64(len(s.QuestionsAsked)) / float64(s.TotalQuestions) * 100,
		IsComplete:         s.ShouldEnd(),
	}
}

// Clone returns a deep copy safe to hand out of a lock.
func (s *Session) Clone() *Session {
	c := *s
	c.QuestionsAsked = append([]string(nil), s.QuestionsAsked...)
	c.Review = append([]ReviewEntry(nil), s.Review...)
	c.UserAnswers = make(map[string]string, len(s.UserAnswers))
	for k, v := range s.UserAnswers {
		c.UserAnswers[k] = v
	}
	c.ControlFlags = make(map[ControlFlag]bool, len(s.ControlFlags))
	for k, v := range s.ControlFlags {
		c.ControlFlags[k] = v
	}
	c.Checkpoints = make(map[Checkpoint]time.Time, len(s.Checkpoints))
	for k, v := range s.Checkpoints {
		c.Checkpoints[k] = v
	}
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	return &c
}
