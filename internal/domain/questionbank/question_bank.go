package questionbank

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/quizpractice/backend/internal/domain"
	"github.com/quizpractice/backend/internal/domain/question"
)

// Bank is the in-memory question catalog together with its lookup indexes.
// The indexes are rebuilt wholesale after every mutation, so they are always
// a complete projection of the question list when a read takes the lock.
type Bank struct {
	mu           sync.RWMutex
	questions    []*question.Question
	byID         map[string]*question.Question
	byTopic      map[question.Topic][]*question.Question
	byDifficulty map[question.Difficulty][]*question.Question
	byTag        map[question.Tag][]*question.Question

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Bank)

// WithRand makes selection use r. Useful for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(b *Bank) {
		b.rng = r
	}
}

func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// New creates an empty bank.
func New(opts ...Option) *Bank {
	b := &Bank{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.rebuild()
	return b
}

// NewFromQuestions creates a bank holding qs. It fails on duplicate ids.
func NewFromQuestions(qs []question.Question, opts ...Option) (*Bank, error) {
	b := New(opts...)
	if err := b.AddAll(qs); err != nil {
		return nil, err
	}
	return b, nil
}

// Add appends q and refreshes every index.
func (b *Bank) Add(q question.Question) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.byID[q.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, q.ID)
	}

	b.questions = append(b.questions, &q)
	b.rebuild()
	return nil
}

// AddAll adds qs as one batch. Nothing is added if any id collides with the
// bank or with another entry of the batch.
func (b *Bank) AddAll(qs []question.Question) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := make(map[string]struct{}, len(qs))
	for _, q := range qs {
		if _, ok := b.byID[q.ID]; ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, q.ID)
		}
		if _, ok := batch[q.ID]; ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, q.ID)
		}
		batch[q.ID] = struct{}{}
	}

	for i := range qs {
		q := qs[i]
		b.questions = append(b.questions, &q)
	}
	b.rebuild()
	return nil
}

// Remove deletes the question with the given id.
func (b *Bank) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, q := range b.questions {
		if q.ID == id {
			b.questions = append(b.questions[:i:i], b.questions[i+1:]...)
			b.rebuild()
			return nil
		}
	}
	return domain.QuestionNotFound(id)
}

// Clear removes every question.
func (b *Bank) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.questions = nil
	b.rebuild()
}

// rebuild recomputes all four indexes from b.questions. Callers hold mu.
func (b *Bank) rebuild() {
	b.byID = make(map[string]*question.Question, len(b.questions))
	b.byTopic = make(map[question.Topic][]*question.Question)
	b.byDifficulty = make(map[question.Difficulty][]*question.Question)
	b.byTag = make(map[question.Tag][]*question.Question)

	for _, q := range b.questions {
		b.byID[q.ID] = q
		b.byTopic[q.Topic] = append(b.byTopic[q.Topic], q)
		b.byDifficulty[q.Difficulty] = append(b.byDifficulty[q.Difficulty], q)
		b.byTag[q.Tag()] = append(b.byTag[q.Tag()], q)
	}
}

// Get returns the question with the given id.
func (b *Bank) Get(id string) (question.Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	q, ok := b.byID[id]
	if !ok {
		return question.Question{}, domain.QuestionNotFound(id)
	}
	return *q, nil
}

func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}

// All returns a copy of the catalog in insertion order.
func (b *Bank) All() []question.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyOut(b.questions, nil)
}

// candidates picks the most specific index for c. Callers hold mu.
func (b *Bank) candidates(c Criteria) []*question.Question {
	switch {
	case c.Topic != "" && c.Difficulty != "":
		return b.byTag[question.TagOf(c.Topic, c.Difficulty)]
	case c.Topic != "":
		return b.byTopic[c.Topic]
	case c.Difficulty != "":
		return b.byDifficulty[c.Difficulty]
	default:
		return b.questions
	}
}

// Filter returns every question matching c.
func (b *Bank) Filter(c Criteria) []question.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyOut(b.candidates(c), c.Exclude)
}

// Count returns len(Filter(c)) without copying questions.
func (b *Bank) Count(c Criteria) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pool := b.candidates(c)
	if c.Exclude.Len() == 0 {
		return len(pool)
	}
	n := 0
	for _, q := range pool {
		if !c.Exclude.Has(q.ID) {
			n++
		}
	}
	return n
}

// RandomPick returns one uniformly random question matching c. The boolean
// is false when nothing is eligible.
func (b *Bank) RandomPick(c Criteria) (question.Question, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pool := b.candidates(c)
	eligible := pool
	if c.Exclude.Len() > 0 {
		eligible = make([]*question.Question, 0, len(pool))
		for _, q := range pool {
			if !c.Exclude.Has(q.ID) {
				eligible = append(eligible, q)
			}
		}
	}
	if len(eligible) == 0 {
		return question.Question{}, false
	}

	b.rngMu.Lock()
	i := b.rng.Intn(len(eligible))
	b.rngMu.Unlock()

	return *eligible[i], true
}

// Topics returns the distinct topics present, enumerated topics first in
// their declared order, then any other labels alphabetically.
func (b *Bank) Topics() []question.Topic {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]question.Topic, 0, len(b.byTopic))
	for t := range b.byTopic {
		out = append(out, t)
	}
	rank := func(t question.Topic) int {
		for i, k := range question.Topics {
			if t == k {
				return i
			}
		}
		return len(question.Topics)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// Difficulties returns the distinct difficulties present in severity order
// (Easy, Medium, Hard) with non-standard labels appended alphabetically.
func (b *Bank) Difficulties() []question.Difficulty {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]question.Difficulty, 0, len(b.byDifficulty))
	for d := range b.byDifficulty {
		out = append(out, d)
	}
	rank := func(d question.Difficulty) int {
		if r := d.Rank(); r >= 0 {
			return r
		}
		return len(question.Difficulties)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// HasTopic reports whether at least one question carries topic t.
func (b *Bank) HasTopic(t question.Topic) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byTopic[t]) > 0
}

// HasDifficulty reports whether at least one question carries difficulty d.
func (b *Bank) HasDifficulty(d question.Difficulty) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byDifficulty[d]) > 0
}

// Validate audits the whole catalog and returns every violation instead of
// stopping at the first one.
func (b *Bank) Validate() []question.Violation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []question.Violation
	seen := make(map[string]int, len(b.questions))
	for i, q := range b.questions {
		out = append(out, q.Validate()...)
		if prev, ok := seen[q.ID]; ok {
			out = append(out, question.Violation{
				QuestionID: q.ID,
				Field:      "id",
				Reason:     fmt.Sprintf("duplicate of entry %d", prev+1),
			})
			continue
		}
		seen[q.ID] = i
	}
	return out
}

func copyOut(src []*question.Question, exclude IDSet) []question.Question {
	out := make([]question.Question, 0, len(src))
	for _, q := range src {
		if exclude.Has(q.ID) {
			continue
		}
		out = append(out, *q)
	}
	return out
}
