// simulation/simulation.go
package simulation

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/service"
	"github.com/quizpractice/backend/internal/worker"
)

// Policy decides what a simulated user answers.
type Policy func(q question.Question) string

// CorrectRate answers correctly with probability rate, otherwise picks a
// wrong option. rng is guarded internally so one Policy can serve several
// concurrent runs.
func CorrectRate(rate float64, rng *rand.Rand) Policy {
	var mu sync.Mutex
	return func(q question.Question) string {
		mu.Lock()
		defer mu.Unlock()
		if rng.Float64() < rate {
			return q.CorrectAnswer
		}
		wrong := make([]string, 0, question.OptionCount-1)
		for _, opt := range q.Options {
			if opt != q.CorrectAnswer {
				wrong = append(wrong, opt)
			}
		}
		return wrong[rng.Intn(len(wrong))]
	}
}

// Plan describes one simulated session.
type Plan struct {
	Topic          question.Topic
	Difficulty     question.Difficulty
	TotalQuestions int
}

// Result is the outcome of one simulated session. Consistent reports
// whether replaying the answers reproduced the running score.
type Result struct {
	SessionID  string
	Summary    service.Summary
	Consistent bool
	Err        error
}

// Simulator drives sessions end to end through the services.
type Simulator struct {
	sessions *service.SessionService
	scores   *service.ScoreService
}

func New(sessions *service.SessionService, scores *service.ScoreService) *Simulator {
	return &Simulator{sessions: sessions, scores: scores}
}

// Run creates a session, answers until nothing is left, completes it and
// checks the score against a replay.
func (s *Simulator) Run(plan Plan, policy Policy) (Result, error) {
	sess, err := s.sessions.Create(plan.Topic, plan.Difficulty, plan.TotalQuestions)
	if err != nil {
		return Result{}, err
	}

	for {
		q, ok, err := s.sessions.NextQuestion(sess.ID)
		if err != nil {
			return Result{SessionID: sess.ID}, err
		}
		if !ok {
			break
		}
		if _, err := s.sessions.SubmitAnswer(sess.ID, q.ID, policy(q)); err != nil {
			return Result{SessionID: sess.ID}, fmt.Errorf("answer %s: %w", q.ID, err)
		}
	}

	score, err := s.sessions.Complete(sess.ID)
	if err != nil {
		return Result{SessionID: sess.ID}, err
	}
	replayed, err := s.scores.ReplayScore(sess.ID)
	if err != nil {
		return Result{SessionID: sess.ID}, err
	}
	summary, err := s.scores.Summary(sess.ID)
	if err != nil {
		return Result{SessionID: sess.ID}, err
	}

	return Result{
		SessionID:  sess.ID,
		Summary:    summary,
		Consistent: replayed == score,
	}, nil
}

// RunMany runs count sessions of the same plan on a worker pool and returns
// their results in start order. A count below 1 runs nothing.
func (s *Simulator) RunMany(plan Plan, policy Policy, count, workers int) []Result {
	if count < 1 {
		return []Result{}
	}
	pool := worker.NewPool[Result](workers, count)
	for i := 0; i < count; i++ {
		pool.Submit(strconv.Itoa(i), func() Result {
			res, err := s.Run(plan, policy)
			res.Err = err
			return res
		})
	}
	pool.Close()

	results := make([]Result, count)
	for r := range pool.Results() {
		i, _ := strconv.Atoi(r.JobID)
		results[i] = r.Output
	}
	return results
}
