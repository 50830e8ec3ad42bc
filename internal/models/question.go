package models

// Question is a single screening question. Options may be empty for
// free-text questions. CorrectAnswer is compared by exact, case-sensitive
// string match during grading.
//
// Two disjoint pools exist: the global logic catalog and each company's
// custom pool. IDs are unique within a pool but not across pools, so
// resolution always checks the catalog before the company pool.
type Question struct {
	ID            string   `json:"id" yaml:"id"`
	Prompt        string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty" yaml:"correct_answer"`
}

// Redacted returns a copy with the correct answer withheld, safe for
// candidate-facing responses.
func (q Question) Redacted() Question {
	q.CorrectAnswer = ""
	return q
}

// RedactQuestions redacts a whole question list.
func RedactQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Redacted()
	}
	return out
}

// Answer is one submitted answer, keyed by question ID.
type Answer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}
