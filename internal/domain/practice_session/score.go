package practicesession

import (
	"fmt"
	"math"
	"time"
)

// Score is the running tally of a session, updated once per answer.
type Score struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

func (s *Score) Record(correct bool) {
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
}

func (s Score) Answered() int {
	return s.Correct + s.Incorrect
}

// Accuracy is the percentage of correct answers, 0 when nothing was answered.
func (s Score) Accuracy() float64 {
	if s.Answered() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered()) * 100
}

// IsPerfect is true when at least one answer was given and none were wrong.
func (s Score) IsPerfect() bool {
	return s.Incorrect == 0 && s.Correct > 0
}

// Grade maps accuracy to a letter: A ≥ 90, B ≥ 80, C ≥ 70, D ≥ 60, else F.
func (s Score) Grade() string {
	acc := s.Accuracy()
	switch {
	case acc >= 90:
		return "A"
	case acc >= 80:
		return "B"
	case acc >= 70:
		return "C"
	case acc >= 60:
		return "D"
	default:
		return "F"
	}
}

// QuestionsPerMinute is the answering pace over d, rounded to two places.
func (s Score) QuestionsPerMinute(d time.Duration) float64 {
	if d < time.Second {
		return 0
	}
	return Round(float64(s.Answered())/d.Minutes(), 2)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FormatDuration renders d as "45s", "3m 12s" or "1h 5m".
func FormatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	default:
		return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
	}
}
