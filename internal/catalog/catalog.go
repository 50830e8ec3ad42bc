package catalog

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/candidex/screening-engine/internal/models"
)

// Catalog is the fixed pool of generic logic questions. It is immutable
// after construction and injected into the components that need it, so
// there is no process-wide mutable state.
type Catalog struct {
	questions []models.Question
	byID      map[string]models.Question
}

// New builds a catalog from a question list. Question IDs must be unique
// within the catalog.
func New(questions []models.Question) (*Catalog, error) {
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("catalog question with empty id")
		}
		if q.Prompt == "" {
			return nil, fmt.Errorf("catalog question %s: prompt is required", q.ID)
		}
		if q.CorrectAnswer == "" {
			return nil, fmt.Errorf("catalog question %s: correct_answer is required", q.ID)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog question id: %s", q.ID)
		}
		byID[q.ID] = q
	}

	qs := make([]models.Question, len(questions))
	copy(qs, questions)

	return &Catalog{questions: qs, byID: byID}, nil
}

// Questions returns the full question pool in catalog order.
func (c *Catalog) Questions() []models.Question {
	qs := make([]models.Question, len(c.questions))
	copy(qs, c.questions)
	return qs
}

// Get looks up a question by ID.
func (c *Catalog) Get(id string) (models.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Len returns the number of questions in the pool.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// catalogFile is the YAML file shape for a question catalog.
type catalogFile struct {
	Questions []models.Question `yaml:"questions"`
}

// LoadFromFile loads a catalog from a YAML file.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no questions", path)
	}

	cat, err := New(file.Questions)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}

	slog.Info("question catalog loaded", "file", path, "questions", cat.Len())
	return cat, nil
}

// Default returns the built-in logic question bank.
func Default() *Catalog {
	cat, err := New(defaultQuestions)
	if err != nil {
		// The built-in bank is validated by tests; this cannot happen at runtime.
		panic(err)
	}
	return cat
}

var defaultQuestions = []models.Question{
	{
		ID:     "q1",
		Prompt: "What comes next in this sequence: 2, 4, 8, 16, ___?",
		Options: []string{
			"24", "32", "64", "20",
		},
		CorrectAnswer: "32",
	},
	{
		ID:     "q2",
		Prompt: "If A is larger than B, and B is smaller than C, which statement must be true?",
		Options: []string{
			"A is larger than C",
			"A is smaller than C",
			"A and C are equal",
			"The relationship between A and C cannot be determined",
		},
		CorrectAnswer: "The relationship between A and C cannot be determined",
	},
	{
		ID:     "q3",
		Prompt: "If it takes 5 machines 5 minutes to make 5 widgets, how long would it take 100 machines to make 100 widgets?",
		Options: []string{
			"1 minute", "5 minutes", "20 minutes", "100 minutes",
		},
		CorrectAnswer: "5 minutes",
	},
	{
		ID:     "q4",
		Prompt: "If all roses are flowers and some flowers fade quickly, then:",
		Options: []string{
			"All roses fade quickly",
			"Some roses fade quickly",
			"No roses fade quickly",
			"Cannot be determined",
		},
		CorrectAnswer: "Cannot be determined",
	},
	{
		ID:     "q5",
		Prompt: "A clock shows 3:15. What is the angle between the hour and minute hands?",
		Options: []string{
			"7.5 degrees", "22.5 degrees", "37.5 degrees", "45 degrees",
		},
		CorrectAnswer: "7.5 degrees",
	},
}
