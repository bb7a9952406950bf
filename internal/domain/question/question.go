package question

import (
	"fmt"
	"regexp"
	"strings"
)

type Topic string

const (
	TopicPhysics   Topic = "Physics"
	TopicChemistry Topic = "Chemistry"
	TopicMath      Topic = "Math"
)

// Topics lists the enumerated topics in display order.
var Topics = []Topic{TopicPhysics, TopicChemistry, TopicMath}

func (t Topic) Known() bool {
	for _, k := range Topics {
		if t == k {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the enumerated difficulties in severity order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Rank returns the severity position of d, or -1 for non-standard labels.
func (d Difficulty) Rank() int {
	for i, k := range Difficulties {
		if d == k {
			return i
		}
	}
	return -1
}

func (d Difficulty) Known() bool {
	return d.Rank() >= 0
}

// Tag is the composite "topic-difficulty" key.
type Tag string

func TagOf(t Topic, d Difficulty) Tag {
	return Tag(string(t) + "-" + string(d))
}

const (
	OptionCount       = 4
	MinTextLength     = 10
	MaxQuestionLength = 1000
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Question is an immutable catalog entry.
type Question struct {
	ID            string
	Topic         Topic
	Difficulty    Difficulty
	Text          string
	Options       [OptionCount]string
	CorrectAnswer string
}

func (q Question) Tag() Tag {
	return TagOf(q.Topic, q.Difficulty)
}

// Violation is one broken field rule on a question.
type Violation struct {
	QuestionID string
	Field      string
	Reason     string
}

func (v Violation) String() string {
	if v.QuestionID == "" {
		return fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", v.QuestionID, v.Field, v.Reason)
}

// Validate checks every field rule and returns all violations found.
// An empty result means the question is well formed.
func (q Question) Validate() []Violation {
	var out []Violation
	add := func(field, format string, args ...any) {
		out = append(out, Violation{
			QuestionID: q.ID,
			Field:      field,
			Reason:     fmt.Sprintf(format, args...),
		})
	}

	switch {
	case strings.TrimSpace(q.ID) == "":
		add("id", "cannot be empty")
	case !idPattern.MatchString(q.ID):
		add("id", "must contain only letters, digits and underscores")
	}

	if !q.Topic.Known() {
		add("topic", "unknown topic %q", q.Topic)
	}
	if !q.Difficulty.Known() {
		add("difficulty", "unknown difficulty %q", q.Difficulty)
	}

	text := strings.TrimSpace(q.Text)
	switch {
	case len(text) < MinTextLength:
		add("text", "must be at least %d characters", MinTextLength)
	case len(text) > MaxQuestionLength:
		add("text", "must be at most %d characters", MaxQuestionLength)
	case !strings.HasSuffix(text, "?"):
		add("text", "must end with a question mark")
	}

	// Options must stay distinct under the same normalization used for
	// grading, otherwise two options would grade as the same answer.
	seen := make(map[string]int, OptionCount)
	for i, opt := range q.Options {
		key := NormalizeAnswer(opt)
		if key == "" {
			add(fmt.Sprintf("option%d", i+1), "cannot be empty")
			continue
		}
		if prev, ok := seen[key]; ok {
			add(fmt.Sprintf("option%d", i+1), "duplicates option%d", prev+1)
			continue
		}
		seen[key] = i
	}

	correct := NormalizeAnswer(q.CorrectAnswer)
	if correct == "" {
		add("correct_answer", "cannot be empty")
	} else if _, ok := seen[correct]; !ok {
		add("correct_answer", "%q does not match any option", q.CorrectAnswer)
	}

	return out
}

// OptionIndex returns the 0-based position of the option equal to s after
// NormalizeAnswer, or -1.
func (q Question) OptionIndex(s string) int {
	s = NormalizeAnswer(s)
	for i, opt := range q.Options {
		if NormalizeAnswer(opt) == s {
			return i
		}
	}
	return -1
}

// NormalizeAnswer trims s, collapses internal whitespace runs to one space
// and lowercases it. Option distinctness and grading both compare this form.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
