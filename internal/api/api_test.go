package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizpractice/backend/internal/api"
	"github.com/quizpractice/backend/internal/app"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/infrastructure/config"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	var qs []question.Question
	for _, topic := range []question.Topic{question.TopicPhysics, question.TopicMath} {
		for i := 1; i <= 3; i++ {
			id := fmt.Sprintf("%s_Easy_%d", topic, i)
			qs = append(qs, question.Question{
				ID:            id,
				Topic:         topic,
				Difficulty:    question.DifficultyEasy,
				Text:          "Which answer is right for " + id + "?",
				Options:       [4]string{"Right " + id, "Wrong A", "Wrong B", "Wrong C"},
				CorrectAnswer: "Right " + id,
			})
		}
	}
	bank, err := questionbank.NewFromQuestions(qs, questionbank.WithSeed(1))
	require.NoError(t, err)

	cfg := &config.Config{Quiz: config.Quiz{DefaultQuestions: 2, MaxQuestions: 50, MaxAnswerLength: 500}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := app.Wire(cfg, bank, logger)
	h := api.NewHandler(a.Sessions, a.Scores, a.Questions, logger)

	srv := httptest.NewServer(api.NewRouter(h, logger))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func createSession(t *testing.T, srv *httptest.Server, body map[string]any) string {
	t.Helper()
	status, out := do(t, srv, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, status, out)
	return out["session_id"].(string)
}

func TestHealthAndCatalog(t *testing.T) {
	srv := newServer(t)

	status, out := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", out["status"])

	status, out = do(t, srv, http.MethodGet, "/topics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Physics", "Math"}, out["topics"])

	status, out = do(t, srv, http.MethodGet, "/difficulties", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Easy"}, out["difficulties"])

	status, out = do(t, srv, http.MethodGet, "/catalog/validate", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["valid"])
	assert.Equal(t, 6.0, out["total_questions"])
}

func TestExportCatalog(t *testing.T) {
	srv := newServer(t)

	status, out := do(t, srv, http.MethodGet, "/catalog/export?topic=Math", nil)
	require.Equal(t, http.StatusOK, status)
	qs := out["questions"].([]any)
	require.Len(t, qs, 3)
	first := qs[0].(map[string]any)
	assert.Equal(t, "Math", first["topic"])
	assert.Equal(t, "Right Math_Easy_1", first["answer"])
	assert.Equal(t, "1.0", out["version"])

	status, _ = do(t, srv, http.MethodGet, "/catalog/export?difficulty=Legendary", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRandomQuestionHidesAnswer(t *testing.T) {
	srv := newServer(t)

	status, out := do(t, srv, http.MethodGet, "/questions/random?topic=Math", nil)
	require.Equal(t, http.StatusOK, status)
	q := out["question"].(map[string]any)
	assert.Equal(t, "Math", q["topic"])
	assert.NotContains(t, q, "correct_answer")
	assert.Equal(t, 3.0, out["available"])

	status, _ = do(t, srv, http.MethodGet, "/questions/random?topic=Poetry", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCheckAnswer(t *testing.T) {
	srv := newServer(t)

	status, out := do(t, srv, http.MethodPost, "/questions/validate",
		map[string]any{"question_id": "Math_Easy_1", "answer": "right math_easy_1"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["correct"])

	status, _ = do(t, srv, http.MethodPost, "/questions/validate",
		map[string]any{"question_id": "nope", "answer": "x"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, srv, http.MethodPost, "/questions/validate", map[string]any{"question_id": "Math_Easy_1"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateSession_Errors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"unknown topic", map[string]any{"topic": "NotATopic", "difficulty": "Easy", "total_questions": 5}},
		{"missing difficulty", map[string]any{"topic": "Math"}},
		{"zero questions", map[string]any{"topic": "Math", "difficulty": "Easy", "total_questions": 0}},
		{"unknown field", map[string]any{"topic": "Math", "difficulty": "Easy", "extra": 1}},
		{"malformed", `{"topic": `},
		{"empty body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := do(t, srv, http.MethodPost, "/sessions", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, out["error"])
		})
	}

	_, out := do(t, srv, http.MethodGet, "/sessions", nil)
	stats := out["stats"].(map[string]any)
	assert.Equal(t, 0.0, stats["total_sessions"])
}

func TestSessionFlow(t *testing.T) {
	srv := newServer(t)
	id := createSession(t, srv, map[string]any{"topic": "Physics", "difficulty": "Easy"})

	status, out := do(t, srv, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2.0, out["total_questions"], "default question count applies")
	assert.Equal(t, "in_progress", out["state"])

	answers := []bool{true, false}
	for i, correct := range answers {
		status, out = do(t, srv, http.MethodGet, "/sessions/"+id+"/next-question", nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, false, out["session_complete"])
		assert.Equal(t, float64(i+1), out["question_number"])
		q := out["question"].(map[string]any)
		assert.NotContains(t, q, "correct_answer")

		qid := q["id"].(string)
		answer := "Wrong A"
		if correct {
			answer = "Right " + qid
		}
		status, out = do(t, srv, http.MethodPost, "/sessions/"+id+"/answers",
			map[string]any{"question_id": qid, "answer": answer})
		require.Equal(t, http.StatusOK, status, out)
		assert.Equal(t, correct, out["correct"])

		status, _ = do(t, srv, http.MethodPost, "/sessions/"+id+"/answers",
			map[string]any{"question_id": qid, "answer": answer})
		assert.Equal(t, http.StatusBadRequest, status, "second submission is rejected")
	}

	status, out = do(t, srv, http.MethodGet, "/sessions/"+id+"/next-question", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["session_complete"])
	assert.NotContains(t, out, "question")

	status, out = do(t, srv, http.MethodPost, "/sessions/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 50.0, out["accuracy"])
	assert.Equal(t, false, out["is_perfect"])
	assert.Len(t, out["incorrect_breakdown"], 1)
	assert.Len(t, out["review"], 2)

	status, _ = do(t, srv, http.MethodPost, "/sessions/"+id+"/complete", nil)
	assert.Equal(t, http.StatusOK, status, "complete is idempotent")

	status, out = do(t, srv, http.MethodGet, "/sessions/"+id+"/next-question", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, out["error"])
}

func TestPerfectSummaryOmitsBreakdown(t *testing.T) {
	srv := newServer(t)
	id := createSession(t, srv, map[string]any{"topic": "Math", "difficulty": "Easy", "total_questions": 1})

	_, out := do(t, srv, http.MethodGet, "/sessions/"+id+"/next-question", nil)
	qid := out["question"].(map[string]any)["id"].(string)
	status, _ := do(t, srv, http.MethodPost, "/sessions/"+id+"/answers",
		map[string]any{"question_id": qid, "answer": "Right " + qid})
	require.Equal(t, http.StatusOK, status)

	status, out = do(t, srv, http.MethodGet, "/sessions/"+id+"/summary", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["is_perfect"])
	assert.Equal(t, 100.0, out["accuracy"])
	assert.NotContains(t, out, "incorrect_breakdown")
}

func TestExhaustionOverHTTP(t *testing.T) {
	srv := newServer(t)
	id := createSession(t, srv, map[string]any{"topic": "Physics", "difficulty": "Easy", "total_questions": 5})

	for i := 0; i < 3; i++ {
		_, out := do(t, srv, http.MethodGet, "/sessions/"+id+"/next-question", nil)
		qid := out["question"].(map[string]any)["id"].(string)
		status, _ := do(t, srv, http.MethodPost, "/sessions/"+id+"/answers",
			map[string]any{"question_id": qid, "answer": "Right " + qid})
		require.Equal(t, http.StatusOK, status)
	}

	status, out := do(t, srv, http.MethodGet, "/sessions/"+id+"/next-question", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["session_complete"])
}

func TestControlEndpoints(t *testing.T) {
	srv := newServer(t)
	id := createSession(t, srv, map[string]any{"topic": "Math", "difficulty": "Easy", "total_questions": 2})

	status, out := do(t, srv, http.MethodPost, "/sessions/"+id+"/pause", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["control_flags"].(map[string]any)["paused"])

	status, _ = do(t, srv, http.MethodGet, "/sessions/"+id+"/next-question", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, srv, http.MethodPost, "/sessions/"+id+"/resume", nil)
	assert.Equal(t, http.StatusOK, status)

	status, out = do(t, srv, http.MethodPost, "/sessions/"+id+"/terminate", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "force_terminated", out["state"])
	assert.Equal(t, false, out["is_active"])

	status, _ = do(t, srv, http.MethodPost, "/sessions/"+id+"/terminate", nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestUnknownSession(t *testing.T) {
	srv := newServer(t)
	for _, path := range []string{"/sessions/nope", "/sessions/nope/next-question", "/sessions/nope/summary"} {
		status, out := do(t, srv, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.NotEmpty(t, out["error"])
	}
	status, _ := do(t, srv, http.MethodPost, "/sessions/nope/answers", map[string]any{"question_id": "q", "answer": "a"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/sessions", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
