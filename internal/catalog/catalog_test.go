package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/candidex/screening-engine/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	if cat.Len() != 5 {
		t.Fatalf("expected 5 built-in questions, got %d", cat.Len())
	}

	q1, ok := cat.Get("q1")
	if !ok {
		t.Fatal("q1 not found in default catalog")
	}
	if q1.CorrectAnswer != "32" {
		t.Errorf("q1 correct answer: expected '32', got '%s'", q1.CorrectAnswer)
	}
	if len(q1.Options) != 4 {
		t.Errorf("q1: expected 4 options, got %d", len(q1.Options))
	}

	if _, ok := cat.Get("q6"); ok {
		t.Error("q6 should not exist in default catalog")
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.Question{
		{ID: "q1", Prompt: "a", CorrectAnswer: "x"},
		{ID: "q1", Prompt: "b", CorrectAnswer: "y"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate question id")
	}
}

func TestNewRejectsIncompleteQuestions(t *testing.T) {
	cases := []models.Question{
		{Prompt: "no id", CorrectAnswer: "x"},
		{ID: "q1", CorrectAnswer: "x"},
		{ID: "q1", Prompt: "no answer"},
	}

	for _, q := range cases {
		if _, err := New([]models.Question{q}); err == nil {
			t.Errorf("expected validation error for question %+v", q)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `questions:
  - id: q1
    question: "What is 1 + 1?"
    options: ["1", "2", "3"]
    correct_answer: "2"
  - id: q2
    question: "Name a prime number below 3."
    options: []
    correct_answer: "2"
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	cat, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cat.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", cat.Len())
	}

	q1, ok := cat.Get("q1")
	if !ok {
		t.Fatal("q1 not found")
	}
	if q1.Prompt != "What is 1 + 1?" {
		t.Errorf("unexpected prompt: %s", q1.Prompt)
	}
	if q1.CorrectAnswer != "2" {
		t.Errorf("unexpected correct answer: %s", q1.CorrectAnswer)
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("questions: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected error for empty catalog file")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
