package questionbank

import "github.com/quizpractice/backend/internal/domain/question"

// Criteria selects questions. An empty Topic or Difficulty matches any value.
type Criteria struct {
	Topic      question.Topic
	Difficulty question.Difficulty
	Exclude    IDSet
}

// IDSet is a set of question ids. The nil set is empty and safe to read.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Len() int {
	return len(s)
}
