package scoring

import (
	"errors"
	"testing"

	"github.com/candidex/screening-engine/internal/models"
)

func testResolutionMap() map[string]models.Question {
	return map[string]models.Question{
		"q1": {ID: "q1", Prompt: "sequence", CorrectAnswer: "32"},
		"q2": {ID: "q2", Prompt: "logic", CorrectAnswer: "Cannot be determined"},
		"q3": {ID: "q3", Prompt: "widgets", CorrectAnswer: "5 minutes"},
		"c1": {ID: "c1", Prompt: "custom", CorrectAnswer: "4"},
	}
}

func TestScoreAllCorrect(t *testing.T) {
	byID := testResolutionMap()
	ids := []string{"q1", "q2", "q3"}
	answers := []models.Answer{
		{QuestionID: "q1", Answer: "32"},
		{QuestionID: "q2", Answer: "Cannot be determined"},
		{QuestionID: "q3", Answer: "5 minutes"},
	}

	correct, pct, err := Score(ids, byID, answers)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if correct != 3 {
		t.Errorf("expected 3 correct, got %d", correct)
	}
	if pct != 100.0 {
		t.Errorf("expected score 100.0, got %v", pct)
	}
}

func TestScoreAllWrong(t *testing.T) {
	byID := testResolutionMap()
	ids := []string{"q1", "q2", "q3"}
	answers := []models.Answer{
		{QuestionID: "q1", Answer: "64"},
		{QuestionID: "q2", Answer: "A is larger than C"},
		{QuestionID: "q3", Answer: "100 minutes"},
	}

	correct, pct, err := Score(ids, byID, answers)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if correct != 0 || pct != 0.0 {
		t.Errorf("expected 0 correct / 0.0, got %d / %v", correct, pct)
	}
}

// Mixed catalog and company questions: 2 of 4 correct gives 50.0.
func TestScoreMixedPools(t *testing.T) {
	byID := testResolutionMap()
	ids := []string{"q1", "q2", "q3", "c1"}
	answers := []models.Answer{
		{QuestionID: "q1", Answer: "32"},
		{QuestionID: "q2", Answer: "wrong"},
		{QuestionID: "q3", Answer: "wrong"},
		{QuestionID: "c1", Answer: "4"},
	}

	correct, pct, err := Score(ids, byID, answers)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if correct != 2 {
		t.Errorf("expected 2 correct, got %d", correct)
	}
	if pct != 50.0 {
		t.Errorf("expected score 50.0, got %v", pct)
	}
}

func TestScoreCaseSensitive(t *testing.T) {
	byID := testResolutionMap()
	ids := []string{"q3"}
	answers := []models.Answer{
		{QuestionID: "q3", Answer: "5 Minutes"},
	}

	correct, _, err := Score(ids, byID, answers)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if correct != 0 {
		t.Errorf("comparison must be case-sensitive, got %d correct", correct)
	}
}

func TestScoreUnknownQuestionIgnored(t *testing.T) {
	byID := testResolutionMap()
	ids := []string{"q1", "q2"}
	answers := []models.Answer{
		{QuestionID: "q1", Answer: "32"},
		{QuestionID: "nope", Answer: "whatever"},
	}

	correct, pct, err := Score(ids, byID, answers)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if correct != 1 {
		t.Errorf("expected 1 correct, got %d", correct)
	}
	if pct != 50.0 {
		t.Errorf("expected score 50.0, got %v", pct)
	}
}

func TestScoreUnansweredQuestions(t *testing.T) {
	byID := testResolutionMap()
	ids := []string{"q1", "q2", "q3"}
	answers := []models.Answer{
		{QuestionID: "q1", Answer: "32"},
	}

	correct, pct, err := Score(ids, byID, answers)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if correct != 1 {
		t.Errorf("expected 1 correct, got %d", correct)
	}
	if want := 100.0 / 3; pct != want {
		t.Errorf("expected score %v, got %v", want, pct)
	}
}

// An answer for a resolvable question outside the assigned list still
// counts; grading does not cross-check assignment.
func TestScoreAnswerOutsideAssignedList(t *testing.T) {
	byID := testResolutionMap()
	ids := []string{"q1", "q2"}
	answers := []models.Answer{
		{QuestionID: "c1", Answer: "4"},
	}

	correct, pct, err := Score(ids, byID, answers)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if correct != 1 {
		t.Errorf("expected 1 correct, got %d", correct)
	}
	if pct != 50.0 {
		t.Errorf("expected score 50.0, got %v", pct)
	}
}

func TestScoreNoQuestions(t *testing.T) {
	_, _, err := Score(nil, testResolutionMap(), nil)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}
