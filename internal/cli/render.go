package cli

import (
	"fmt"

	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/service"
)

// optionLetters label the four options in order.
var optionLetters = [question.OptionCount]string{"A", "B", "C", "D"}

func renderQuestion(p printer, number, total int, q question.Question) {
	lines := []string{
		p.label(fmt.Sprintf("Question %d of %d", number, total)) + "  " + p.render(hintStyle, string(q.Tag())),
		"",
		q.Text,
		"",
	}
	for i, opt := range q.Options {
		lines = append(lines, fmt.Sprintf("%s) %s", optionLetters[i], opt))
	}
	p.card(lines...)
}

func renderFeedback(p printer, q question.Question, res service.AnswerResult) {
	switch i := q.OptionIndex(res.CorrectAnswer); {
	case res.Correct:
		p.correct("✓ Correct!")
	case i >= 0:
		p.incorrect("✗ Incorrect. The correct answer is %s) %s", optionLetters[i], res.CorrectAnswer)
	default:
		p.incorrect("✗ Incorrect. The correct answer is %s", res.CorrectAnswer)
	}
	p.hint("Score %d/%d", res.Score.Correct, res.Score.Answered())
}

func renderSummary(p printer, sum service.Summary) {
	p.line("")
	p.title("Session summary: %s / %s", sum.Topic, sum.Difficulty)

	p.card(
		fmt.Sprintf("%s %d/%d correct (%.1f%%)", p.label("Score:"), sum.Correct, sum.QuestionsAnswered, sum.Accuracy),
		fmt.Sprintf("%s %s", p.label("Grade:"), sum.Grade),
		fmt.Sprintf("%s %s", p.label("Time: "), sum.DurationFormatted),
		fmt.Sprintf("%s %.1f questions/min", p.label("Pace: "), sum.QuestionsPerMinute),
	)

	switch {
	case sum.QuestionsAnswered == 0:
	case sum.IsPerfect:
		p.banner("Perfect score!")
	default:
		p.title("Review")
		for _, e := range sum.IncorrectBreakdown {
			p.line("%d. %s", e.QuestionNumber, e.QuestionText)
			p.incorrect("   Your answer:    %s", e.UserAnswer)
			p.correct("   Correct answer: %s", e.CorrectAnswer)
		}
	}

	for _, r := range sum.Recommendations {
		p.hint("• %s", r)
	}
}
