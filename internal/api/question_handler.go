package api

import (
	"errors"
	"net/http"

	"github.com/quizpractice/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type TopicsResponse struct {
	Topics []question.Topic `json:"topics"`
}

type DifficultiesResponse struct {
	Difficulties []question.Difficulty `json:"difficulties"`
}

type RandomQuestionResponse struct {
	Question  *QuestionPayload `json:"question"`
	Available int              `json:"available" example:"12"`
}

type CheckAnswerRequest struct {
	QuestionID string `json:"question_id" example:"physics_1"`
	Answer     string `json:"answer" example:"Newton"`
}

func (r *CheckAnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return errors.New("question_id is required")
	}
	if r.Answer == "" {
		return errors.New("answer is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listTopics returns the topics present in the catalog.
// @Summary      Available topics
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  TopicsResponse
// @Router       /topics [get]
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, TopicsResponse{Topics: h.sessions.Topics()})
}

// listDifficulties returns the difficulties present in the catalog, easiest first.
// @Summary      Available difficulties
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  DifficultiesResponse
// @Router       /difficulties [get]
func (h *Handler) listDifficulties(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DifficultiesResponse{Difficulties: h.sessions.Difficulties()})
}

// randomQuestion returns one random question outside of any session.
// @Summary      Random question
// @Tags         Catalog
// @Produce      json
// @Param        topic       query     string  false  "Topic filter"
// @Param        difficulty  query     string  false  "Difficulty filter"
// @Success      200         {object}  RandomQuestionResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse  "no question matches"
// @Router       /questions/random [get]
func (h *Handler) randomQuestion(w http.ResponseWriter, r *http.Request) {
	topic := question.Topic(r.URL.Query().Get("topic"))
	difficulty := question.Difficulty(r.URL.Query().Get("difficulty"))

	q, ok, err := h.questions.Random(topic, difficulty)
	if h.handleError(w, r, err) {
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "no question matches the given filters")
		return
	}
	available, err := h.questions.Count(topic, difficulty)
	if h.handleError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, RandomQuestionResponse{
		Question:  toQuestionPayload(q),
		Available: available,
	})
}

// checkAnswer grades an answer without a session.
// @Summary      Check an answer
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        body  body      CheckAnswerRequest  true  "Question and answer"
// @Success      200   {object}  service.CheckResult
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /questions/validate [post]
func (h *Handler) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req CheckAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.questions.Check(req.QuestionID, req.Answer)
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// validateCatalog audits every question in the catalog.
// @Summary      Audit the catalog
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  service.CatalogReport
// @Router       /catalog/validate [get]
func (h *Handler) validateCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.questions.Audit())
}
