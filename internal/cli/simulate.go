package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/simulation"
)

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		topic       string
		difficulty  string
		count       int
		sessions    int
		workers     int
		correctRate float64
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play scripted sessions and check every score against a replay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if correctRate < 0 || correctRate > 1 {
				return fmt.Errorf("--correct-rate must be between 0 and 1, got %v", correctRate)
			}
			if sessions < 1 {
				return fmt.Errorf("--sessions must be at least 1, got %d", sessions)
			}
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if count == 0 {
				count = a.Sessions.Config().DefaultQuestions
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			sim := simulation.New(a.Sessions, a.Scores)
			plan := simulation.Plan{
				Topic:          question.Topic(topic),
				Difficulty:     question.Difficulty(difficulty),
				TotalQuestions: count,
			}
			results := sim.RunMany(plan, simulation.CorrectRate(correctRate, rand.New(rand.NewSource(seed))), sessions, workers)

			p := opts.printer(cmd.OutOrStdout())
			p.title("Simulated %d sessions of %s (seed %d)", sessions, question.TagOf(plan.Topic, plan.Difficulty), seed)

			var answered, correct, mismatched int
			for _, r := range results {
				if r.Err != nil {
					return r.Err
				}
				s := r.Summary
				answered += s.QuestionsAnswered
				correct += s.Correct
				replay := "replay ok"
				if !r.Consistent {
					replay = "REPLAY MISMATCH"
					mismatched++
				}
				p.line("%s  %d/%d correct (%.1f%%) grade %s  %s", shortID(r.SessionID), s.Correct, s.QuestionsAnswered, s.Accuracy, s.Grade, replay)
			}

			if answered > 0 {
				p.line("Overall %d/%d correct (%.1f%%)", correct, answered, float64(correct)/float64(answered)*100)
			}
			if mismatched > 0 {
				return fmt.Errorf("%d sessions disagree with their replay", mismatched)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&topic, "topic", "t", "", "Topic to simulate (required)")
	f.StringVarP(&difficulty, "difficulty", "d", "", "Difficulty to simulate (required)")
	f.IntVarP(&count, "count", "n", 0, "Questions per session (default from config)")
	f.IntVar(&sessions, "sessions", 1, "Number of sessions to run")
	f.IntVar(&workers, "workers", 4, "Sessions played concurrently")
	f.Float64Var(&correctRate, "correct-rate", 0.7, "Probability of answering correctly")
	f.Int64Var(&seed, "seed", 0, "Random seed; 0 picks one from the clock")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("difficulty")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
