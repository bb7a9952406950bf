package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizpractice/backend/internal/app"
	"github.com/quizpractice/backend/internal/domain"
	"github.com/quizpractice/backend/internal/domain/question"
)

// errInputClosed is returned when stdin ends before a choice is made.
var errInputClosed = errors.New("input closed")

func newPracticeCmd(opts *options) *cobra.Command {
	var (
		topic      string
		difficulty string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Run an interactive practice session",
		Long: `Run a practice session in the terminal.

Answer with the option letter (A-D), its number (1-4) or the option text.
Type q to stop early; the summary still covers every answered question.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			p := opts.printer(cmd.OutOrStdout())
			in := opts.lineReader(cmd, p)

			t := question.Topic(topic)
			if t == "" {
				if t, err = choose(p, in, "Choose a topic", a.Sessions.Topics()); err != nil {
					return err
				}
			}
			d := question.Difficulty(difficulty)
			if d == "" {
				if d, err = choose(p, in, "Choose a difficulty", a.Sessions.Difficulties()); err != nil {
					return err
				}
			}

			n, err := a.Questions.Count(t, d)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("no questions available for %s", question.TagOf(t, d))
			}
			if count == 0 {
				count = min(a.Sessions.Config().DefaultQuestions, n)
			}

			sess, err := a.Sessions.Create(t, d, count)
			if err != nil {
				return err
			}
			return runSession(p, in, a, sess.ID)
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic (Physics, Chemistry, Math); prompted when empty")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "Difficulty (Easy, Medium, Hard); prompted when empty")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of questions (default from config, capped by the pool)")
	return cmd
}

// choose lists items and reads a selection by number or name.
func choose[T ~string](p printer, in lineReader, label string, items []T) (T, error) {
	p.title("%s", label)
	for i, item := range items {
		p.line("  %d) %s", i+1, item)
	}
	for {
		line, ok := in.ReadLine("> ")
		if !ok {
			return "", errInputClosed
		}
		text := strings.TrimSpace(line)
		if i, err := strconv.Atoi(text); err == nil && i >= 1 && i <= len(items) {
			return items[i-1], nil
		}
		for _, item := range items {
			if strings.EqualFold(text, string(item)) {
				return item, nil
			}
		}
		p.hint("Enter a number between 1 and %d.", len(items))
	}
}

// runSession asks questions until the session has nothing left, then
// completes it and prints the summary.
func runSession(p printer, in lineReader, a *app.App, sessionID string) error {
	hinted := false
	for {
		q, ok, err := a.Sessions.NextQuestion(sessionID)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		sess, err := a.Sessions.Get(sessionID)
		if err != nil {
			return err
		}
		renderQuestion(p, len(sess.QuestionsAsked), sess.TotalQuestions, q)

		answer, quit := readAnswer(p, in, q)
		if quit {
			if err := a.Sessions.Terminate(sessionID); err != nil {
				return err
			}
			p.hint("Session stopped early.")
			break
		}

		res, err := a.Sessions.SubmitAnswer(sessionID, q.ID, answer)
		if errors.Is(err, domain.ErrValidation) {
			p.incorrect("%v", err)
			continue
		}
		if err != nil {
			return err
		}
		renderFeedback(p, q, res)
		if res.NeedsReview && !hinted {
			p.hint("Recent answers suggest reviewing %s before going further.", sess.Topic)
			hinted = true
		}
	}

	if _, err := a.Sessions.Complete(sessionID); err != nil {
		return err
	}
	sum, err := a.Scores.Summary(sessionID)
	if err != nil {
		return err
	}
	renderSummary(p, sum)
	return nil
}

// readAnswer reads one non-empty answer. A letter or number selects the
// matching option; anything else is submitted as typed. quit is true when
// the user asks to stop or the input ends.
func readAnswer(p printer, in lineReader, q question.Question) (answer string, quit bool) {
	for {
		line, ok := in.ReadLine("Your answer (A-D, q to quit): ")
		if !ok {
			return "", true
		}
		text := strings.TrimSpace(line)
		switch strings.ToLower(text) {
		case "":
			p.hint("Please enter an answer.")
			continue
		case "q", "quit", "exit":
			return "", true
		}
		if i := optionIndex(text); i >= 0 {
			return q.Options[i], false
		}
		return text, false
	}
}

// optionIndex maps "A".."D" or "1".."4" to an option position, or -1.
func optionIndex(text string) int {
	if len(text) != 1 {
		return -1
	}
	c := strings.ToUpper(text)[0]
	switch {
	case c >= 'A' && c < 'A'+question.OptionCount:
		return int(c - 'A')
	case c >= '1' && c < '1'+question.OptionCount:
		return int(c - '1')
	}
	return -1
}
