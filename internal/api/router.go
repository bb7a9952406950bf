// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Catalog
	mux.HandleFunc("GET /topics", h.listTopics)
	mux.HandleFunc("GET /difficulties", h.listDifficulties)
	mux.HandleFunc("GET /questions/random", h.randomQuestion)
	mux.HandleFunc("POST /questions/validate", h.checkAnswer)
	mux.HandleFunc("GET /catalog/validate", h.validateCatalog)
	mux.HandleFunc("GET /catalog/export", h.exportCatalog)

	// Sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions", h.listSessions)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("GET /sessions/{sessionID}/next-question", h.nextQuestion)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/pause", h.pauseSession)
	mux.HandleFunc("POST /sessions/{sessionID}/resume", h.resumeSession)
	mux.HandleFunc("POST /sessions/{sessionID}/terminate", h.terminateSession)
	mux.HandleFunc("POST /sessions/{sessionID}/complete", h.completeSession)
	mux.HandleFunc("GET /sessions/{sessionID}/summary", h.getSummary)
}

// NewRouter builds the full handler: health, API routes and Swagger UI,
// wrapped in the Logging → CORS → mux chain.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	RegisterRoutes(mux, h)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return Logging(logger)(CORS(mux))
}
