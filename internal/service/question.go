package service

import (
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/grader"
	"github.com/quizpractice/backend/internal/selection"
)

// CheckResult is the outcome of a stateless answer check.
type CheckResult struct {
	QuestionID    string `json:"question_id"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// CatalogReport summarizes a catalog audit.
type CatalogReport struct {
	TotalQuestions int                   `json:"total_questions"`
	Topics         []question.Topic      `json:"topics"`
	Difficulties   []question.Difficulty `json:"difficulties"`
	Valid          bool                  `json:"valid"`
	Violations     []question.Violation  `json:"violations"`
}

// QuestionService serves catalog reads that do not belong to a session.
type QuestionService struct {
	bank   *questionbank.Bank
	engine *selection.Engine
	grader grader.Grader
}

func NewQuestionService(bank *questionbank.Bank, g grader.Grader) *QuestionService {
	return &QuestionService{bank: bank, engine: selection.New(bank), grader: g}
}

// Random picks any question matching the optional criteria.
func (s *QuestionService) Random(topic question.Topic, difficulty question.Difficulty) (question.Question, bool, error) {
	return s.engine.NextFor(topic, difficulty, nil)
}

// Count reports how many questions match the optional criteria.
func (s *QuestionService) Count(topic question.Topic, difficulty question.Difficulty) (int, error) {
	if err := s.engine.CheckCriteria(topic, difficulty); err != nil {
		return 0, err
	}
	return s.engine.Remaining(topic, difficulty, nil), nil
}

// Check grades answer against a catalog question without touching any session.
func (s *QuestionService) Check(questionID, answer string) (CheckResult, error) {
	q, err := s.bank.Get(questionID)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{
		QuestionID:    q.ID,
		Correct:       s.grader.Grade(q.CorrectAnswer, answer),
		CorrectAnswer: q.CorrectAnswer,
	}, nil
}

// Export returns the catalog questions matching the optional criteria, in
// catalog order.
func (s *QuestionService) Export(topic question.Topic, difficulty question.Difficulty) ([]question.Question, error) {
	if err := s.engine.CheckCriteria(topic, difficulty); err != nil {
		return nil, err
	}
	return s.bank.Filter(questionbank.Criteria{Topic: topic, Difficulty: difficulty}), nil
}

// Audit re-checks every question in the catalog.
func (s *QuestionService) Audit() CatalogReport {
	violations := s.bank.Validate()
	if violations == nil {
		violations = []question.Violation{}
	}
	return CatalogReport{
		TotalQuestions: s.bank.Len(),
		Topics:         s.bank.Topics(),
		Difficulties:   s.bank.Difficulties(),
		Valid:          len(violations) == 0,
		Violations:     violations,
	}
}
