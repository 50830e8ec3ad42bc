package storage

import (
	"context"
	"sync"
	"time"

	"github.com/candidex/screening-engine/internal/models"
)

// MemoryRepository is an in-process Repository used by tests and local
// development. It honors the same conditional-transition semantics as the
// Postgres implementation.
type MemoryRepository struct {
	mu          sync.Mutex
	companies   map[int64]*models.Company
	candidates  map[int64]*models.Candidate
	byEmail     map[string]int64
	assessments map[string]*models.Assessment
	nextID      int64
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		companies:   make(map[int64]*models.Company),
		candidates:  make(map[int64]*models.Candidate),
		byEmail:     make(map[string]int64),
		assessments: make(map[string]*models.Assessment),
		nextID:      1,
	}
}

func (r *MemoryRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextID
	r.nextID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Company
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.companies[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) UpsertCandidateByEmail(ctx context.Context, name, email string) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byEmail[email]; ok {
		cp := *r.candidates[id]
		return &cp, nil
	}

	c := &models.Candidate{
		ID:        r.nextID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++
	r.candidates[c.ID] = c
	r.byEmail[email] = c.ID

	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) GetCandidate(ctx context.Context, id int64) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.candidates[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *a
	cp.QuestionIDs = append([]string(nil), a.QuestionIDs...)
	r.assessments[a.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assessments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	cp.QuestionIDs = append([]string(nil), a.QuestionIDs...)
	return &cp, nil
}

func (r *MemoryRepository) CompleteAssessment(ctx context.Context, id string, score float64, completedAt time.Time, timeTaken float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assessments[id]
	if !ok || a.Status != models.AssessmentPending {
		return false, nil
	}

	a.Status = models.AssessmentCompleted
	a.Score = &score
	a.CompletedAt = &completedAt
	a.TimeTaken = &timeTaken
	return true, nil
}

func (r *MemoryRepository) ExpireAssessment(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assessments[id]
	if !ok || a.Status != models.AssessmentPending {
		return false, nil
	}

	a.Status = models.AssessmentExpired
	return true, nil
}

func (r *MemoryRepository) ListAssessmentsByCompany(ctx context.Context, companyID int64) ([]models.CompanyAssessmentRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []models.CompanyAssessmentRow
	for _, a := range r.assessments {
		if a.CompanyID != companyID {
			continue
		}

		row := models.CompanyAssessmentRow{
			AssessmentID: a.ID,
			JobPosition:  a.JobPosition,
			Status:       a.Status,
			Score:        a.Score,
			CreatedAt:    a.CreatedAt,
			CompletedAt:  a.CompletedAt,
			TimeTaken:    a.TimeTaken,
		}
		if c, ok := r.candidates[a.CandidateID]; ok {
			row.CandidateName = c.Name
			row.CandidateEmail = c.Email
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
