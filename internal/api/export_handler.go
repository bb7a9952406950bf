package api

import (
	"net/http"
	"time"

	"github.com/quizpractice/backend/internal/catalog"
	"github.com/quizpractice/backend/internal/domain/question"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// exportCatalog returns the catalog as a JSON document that the loader
// accepts back, answers included.
// @Summary      Export catalog
// @Description  Questions in the JSON catalog format, optionally filtered by topic and difficulty.
// @Tags         Catalog
// @Produce      json
// @Param        topic       query     string  false  "Topic filter"
// @Param        difficulty  query     string  false  "Difficulty filter"
// @Success      200         {object}  catalog.Document
// @Failure      400         {object}  ErrorResponse
// @Router       /catalog/export [get]
func (h *Handler) exportCatalog(w http.ResponseWriter, r *http.Request) {
	topic := question.Topic(r.URL.Query().Get("topic"))
	difficulty := question.Difficulty(r.URL.Query().Get("difficulty"))

	qs, err := h.questions.Export(topic, difficulty)
	if h.handleError(w, r, err) {
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=questions.json")
	respondJSON(w, http.StatusOK, catalog.NewDocument(qs, time.Now()))
}
