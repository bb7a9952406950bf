package practicesession

// SessionConfig holds the limits applied when sessions are created and answered.
type SessionConfig struct {
	DefaultQuestions int // used when a request does not name a count
	MaxQuestions     int // upper bound for total_questions
	MaxAnswerLength  int // in runes
}

// DefaultConfig returns the stock limits.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		DefaultQuestions: 10,
		MaxQuestions:     50,
		MaxAnswerLength:  500,
	}
}
