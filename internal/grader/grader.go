package grader

import (
	"github.com/quizpractice/backend/internal/domain/question"
)

// Grader decides whether a user's answer matches the expected one.
// Implementations must be pure: the same inputs always give the same verdict.
type Grader interface {
	Grade(expected, answer string) bool
}

// ExactGrader compares answers after normalization. Option letters are not
// accepted; the answer must be the option text itself.
type ExactGrader struct{}

// Compile-time check: ExactGrader satisfies the Grader interface.
var _ Grader = ExactGrader{}

func (ExactGrader) Grade(expected, answer string) bool {
	return Normalize(expected) == Normalize(answer)
}

// Normalize trims, collapses internal whitespace runs to one space and
// lowercases s. It is the same form question validation checks options in.
func Normalize(s string) string {
	return question.NormalizeAnswer(s)
}

// Func adapts a plain function to the Grader interface (handy in tests).
type Func func(expected, answer string) bool

func (f Func) Grade(expected, answer string) bool { return f(expected, answer) }
