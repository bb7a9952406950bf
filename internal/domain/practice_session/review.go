package practicesession

// ReviewEntry is the recorded outcome of one answered question.
type ReviewEntry struct {
	QuestionNumber int    `json:"question_number"` // 1-based, in answer order
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Correct        bool   `json:"correct"`
}

// Incorrect returns the entries answered wrongly, in order.
func Incorrect(entries []ReviewEntry) []ReviewEntry {
	var out []ReviewEntry
	for _, e := range entries {
		if !e.Correct {
			out = append(out, e)
		}
	}
	return out
}
