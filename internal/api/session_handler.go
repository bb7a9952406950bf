package api

import (
	"errors"
	"net/http"
	"time"

	practicesession "github.com/quizpractice/backend/internal/domain/practice_session"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Topic          string `json:"topic" example:"Physics"`
	Difficulty     string `json:"difficulty" example:"Easy"`
	TotalQuestions *int   `json:"total_questions,omitempty" example:"5"`
}

func (r *CreateSessionRequest) Validate() error {
	if r.Topic == "" {
		return errors.New("topic is required")
	}
	if r.Difficulty == "" {
		return errors.New("difficulty is required")
	}
	return nil
}

// QuestionPayload is a question as shown to the user. The correct answer is
// never part of it.
type QuestionPayload struct {
	ID         string              `json:"id" example:"physics_1"`
	Topic      question.Topic      `json:"topic" example:"Physics"`
	Difficulty question.Difficulty `json:"difficulty" example:"Easy"`
	Text       string              `json:"question" example:"What is the SI unit of force?"`
	Options    [4]string           `json:"options"`
}

func toQuestionPayload(q question.Question) *QuestionPayload {
	return &QuestionPayload{
		ID:         q.ID,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Text:       q.Text,
		Options:    q.Options,
	}
}

type SessionResponse struct {
	ID             string                                   `json:"session_id"`
	Topic          question.Topic                           `json:"topic"`
	Difficulty     question.Difficulty                      `json:"difficulty"`
	State          practicesession.State                    `json:"state"`
	IsActive       bool                                     `json:"is_active"`
	TotalQuestions int                                      `json:"total_questions"`
	QuestionsAsked []string                                 `json:"questions_asked"`
	Score          practicesession.Score                    `json:"score"`
	Accuracy       float64                                  `json:"accuracy"`
	Progress       practicesession.Progress                 `json:"progress"`
	CanContinue    bool                                     `json:"can_continue"`
	NeedsReview    bool                                     `json:"needs_review"`
	ControlFlags   map[practicesession.ControlFlag]bool     `json:"control_flags"`
	Checkpoints    map[practicesession.Checkpoint]time.Time `json:"checkpoints"`
	StartTime      time.Time                                `json:"start_time"`
	EndTime        *time.Time                               `json:"end_time,omitempty"`
}

func toSessionResponse(s *practicesession.Session) SessionResponse {
	return SessionResponse{
		ID:             s.ID,
		Topic:          s.Topic,
		Difficulty:     s.Difficulty,
		State:          s.State,
		IsActive:       s.IsActive(),
		TotalQuestions: s.TotalQuestions,
		QuestionsAsked: s.QuestionsAsked,
		Score:          s.Score,
		Accuracy:       practicesession.Round(s.Score.Accuracy(), 1),
		Progress:       s.Progress(),
		CanContinue:    s.CanContinue(),
		NeedsReview:    s.NeedsReview(),
		ControlFlags:   s.ControlFlags,
		Checkpoints:    s.Checkpoints,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
	}
}

type SessionListResponse struct {
	Stats          service.Stats     `json:"stats"`
	ActiveSessions []SessionResponse `json:"active_sessions"`
}

type NextQuestionResponse struct {
	SessionID       string           `json:"session_id"`
	SessionComplete bool             `json:"session_complete"`
	QuestionNumber  int              `json:"question_number,omitempty" example:"1"`
	TotalQuestions  int              `json:"total_questions"`
	Question        *QuestionPayload `json:"question,omitempty"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" example:"physics_1"`
	Answer     string `json:"answer" example:"Newton"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return errors.New("question_id is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession starts a practice session.
// @Summary      Create a practice session
// @Description  Starts a session for a topic and difficulty. total_questions defaults to the configured default.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSessionRequest  true  "Session parameters"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	total := h.sessions.Config().DefaultQuestions
	if req.TotalQuestions != nil {
		total = *req.TotalQuestions
	}

	session, err := h.sessions.Create(question.Topic(req.Topic), question.Difficulty(req.Difficulty), total)
	if h.handleError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(session))
}

// listSessions reports session statistics and the active sessions.
// @Summary      Session statistics
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  SessionListResponse
// @Router       /sessions [get]
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	active := h.sessions.Active()
	views := make([]SessionResponse, len(active))
	for i, s := range active {
		views[i] = toSessionResponse(s)
	}
	respondJSON(w, http.StatusOK, SessionListResponse{
		Stats:          h.sessions.Stats(),
		ActiveSessions: views,
	})
}

// getSession returns one session.
// @Summary      Get a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.PathValue("sessionID"))
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// nextQuestion dispenses the next question of a session.
// @Summary      Next question
// @Description  Returns the next unasked question. session_complete is true when the quota is reached or no eligible question is left.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  NextQuestionResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "session completed, terminated or paused"
// @Router       /sessions/{sessionID}/next-question [get]
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	q, ok, err := h.sessions.NextQuestion(sessionID)
	if h.handleError(w, r, err) {
		return
	}
	session, err := h.sessions.Get(sessionID)
	if h.handleError(w, r, err) {
		return
	}

	resp := NextQuestionResponse{
		SessionID:       sessionID,
		SessionComplete: !ok,
		TotalQuestions:  session.TotalQuestions,
	}
	if ok {
		resp.Question = toQuestionPayload(q)
		resp.QuestionNumber = len(session.QuestionsAsked)
	}
	respondJSON(w, http.StatusOK, resp)
}

// submitAnswer records the answer to the current question.
// @Summary      Submit an answer
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      SubmitAnswerRequest  true  "Answer"
// @Success      200        {object}  service.AnswerResult
// @Failure      400        {object}  ErrorResponse  "empty, overlong, repeated or out-of-turn answer"
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.sessions.SubmitAnswer(r.PathValue("sessionID"), req.QuestionID, req.Answer)
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// pauseSession pauses a session.
// @Summary      Pause a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/pause [post]
func (h *Handler) pauseSession(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.sessions.Pause)
}

// resumeSession resumes a paused session.
// @Summary      Resume a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/resume [post]
func (h *Handler) resumeSession(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.sessions.Resume)
}

// terminateSession force-ends a session.
// @Summary      Terminate a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/terminate [post]
func (h *Handler) terminateSession(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.sessions.Terminate)
}

func (h *Handler) control(w http.ResponseWriter, r *http.Request, op func(string) error) {
	sessionID := r.PathValue("sessionID")
	if h.handleError(w, r, op(sessionID)) {
		return
	}
	session, err := h.sessions.Get(sessionID)
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// completeSession ends a session and returns its summary.
// @Summary      Complete a session
// @Description  Idempotent: completing an inactive session returns the existing summary.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.Summary
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/complete [post]
func (h *Handler) completeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if _, err := h.sessions.Complete(sessionID); h.handleError(w, r, err) {
		return
	}
	h.getSummary(w, r)
}

// getSummary reports the score and review log of a session.
// @Summary      Session summary
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.Summary
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/summary [get]
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scores.Summary(r.PathValue("sessionID"))
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
