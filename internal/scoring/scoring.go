// Package scoring reduces a set of submitted answers into a correctness
// count and a percentage score.
package scoring

import (
	"errors"

	"github.com/candidex/screening-engine/internal/models"
)

// ErrNoQuestions guards the degenerate zero-question assessment. The
// sampler never produces one, but the divisor must be checked.
var ErrNoQuestions = errors.New("assessment has no questions")

// Score grades answers against the resolution map byID and the assessment's
// question ID sequence.
//
// An answer whose question ID does not resolve contributes nothing — it is
// neither correct nor an error. A resolvable answer counts as correct when
// it exactly matches the question's correct answer (case-sensitive, no
// trimming). Answers are not cross-checked against questionIDs: an answer
// for a question outside the assessment still scores if it resolves.
// Unanswered questions simply never increment the count.
//
// The percentage divisor is len(questionIDs), the number of questions
// assigned to the assessment.
func Score(questionIDs []string, byID map[string]models.Question, answers []models.Answer) (correct int, pct float64, err error) {
	if len(questionIDs) == 0 {
		return 0, 0, ErrNoQuestions
	}

	for _, ans := range answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			continue
		}
		if ans.Answer == q.CorrectAnswer {
			correct++
		}
	}

	pct = float64(correct) / float64(len(questionIDs)) * 100
	return correct, pct, nil
}
