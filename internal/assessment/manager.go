// Package assessment implements the assessment lifecycle: question
// sampling at creation, the pending→completed/expired state machine with
// deadline enforcement, and grading on submission.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/candidex/screening-engine/internal/catalog"
	"github.com/candidex/screening-engine/internal/models"
	"github.com/candidex/screening-engine/internal/sampler"
	"github.com/candidex/screening-engine/internal/scoring"
	"github.com/candidex/screening-engine/internal/storage"
)

// Common errors
var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAlreadyFinalized   = errors.New("assessment already completed or expired")
	ErrExpired            = errors.New("assessment has expired")
)

// Config holds the sampling and deadline parameters.
type Config struct {
	CatalogQuestions int           // catalog questions per assessment
	CompanyQuestions int           // company questions per assessment, at most
	ExpiryWindow     time.Duration // deadline relative to creation
}

// Manager drives the assessment lifecycle against the persistence store.
// Expiry is evaluated lazily: an assessment only becomes expired when a
// submit attempt arrives past the deadline, never on plain reads and not
// via any background sweep.
type Manager struct {
	repo    storage.Repository
	catalog *catalog.Catalog
	cfg     Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewManager creates a lifecycle manager. Zero config fields fall back to
// the defaults: 3 catalog questions, up to 2 company questions, 7 days.
func NewManager(repo storage.Repository, cat *catalog.Catalog, cfg Config) *Manager {
	if cfg.CatalogQuestions <= 0 {
		cfg.CatalogQuestions = 3
	}
	if cfg.CompanyQuestions < 0 {
		cfg.CompanyQuestions = 0
	}
	if cfg.ExpiryWindow <= 0 {
		cfg.ExpiryWindow = 7 * 24 * time.Hour
	}

	return &Manager{
		repo:    repo,
		catalog: cat,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create samples a question list for the candidate and persists a new
// pending assessment. The candidate is resolved or created by email; the
// company must exist. The returned questions carry full data including
// correct answers — redaction for candidate display is the caller's job.
func (m *Manager) Create(ctx context.Context, req models.CreateAssessmentRequest) (*models.CreateAssessmentResponse, error) {
	company, err := m.repo.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	candidate, err := m.repo.UpsertCandidateByEmail(ctx, req.Name, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate: %w", err)
	}

	m.mu.Lock()
	questions, err := sampler.Select(m.catalog.Questions(), company.CustomQuestions, m.cfg.CatalogQuestions, m.cfg.CompanyQuestions, m.rng)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	questionIDs := make([]string, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	now := time.Now().UTC()
	a := &models.Assessment{
		ID:          uuid.New().String(),
		CandidateID: candidate.ID,
		CompanyID:   company.ID,
		JobPosition: req.JobPosition,
		QuestionIDs: questionIDs,
		Status:      models.AssessmentPending,
		CreatedAt:   now,
		Expiry:      now.Add(m.cfg.ExpiryWindow),
	}

	if err := m.repo.CreateAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	slog.Info("assessment created",
		"id", a.ID,
		"company", company.ID,
		"candidate", candidate.ID,
		"questions", len(questionIDs),
		"expiry", a.Expiry,
	)

	return &models.CreateAssessmentResponse{
		AssessmentID: a.ID,
		Questions:    questions,
		Expiry:       a.Expiry,
	}, nil
}

// Submit grades a submission. A submit past the deadline transitions the
// assessment to expired and fails with ErrExpired; a submit on an already
// finalized assessment fails with ErrAlreadyFinalized and mutates nothing.
// The terminal transition is conditional in the store, so of two racing
// submitters exactly one gets a score and the other ErrAlreadyFinalized.
func (m *Manager) Submit(ctx context.Context, id string, answers []models.Answer) (*models.SubmitResponse, error) {
	a, err := m.repo.GetAssessment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if a == nil {
		return nil, ErrAssessmentNotFound
	}

	if a.Status != models.AssessmentPending {
		return nil, ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	if a.DeadlinePassed(now) {
		if _, err := m.repo.ExpireAssessment(ctx, a.ID); err != nil {
			return nil, fmt.Errorf("failed to expire assessment: %w", err)
		}
		slog.Info("assessment expired on late submit", "id", a.ID)
		return nil, ErrExpired
	}

	byID, err := m.resolutionMap(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}

	_, pct, err := scoring.Score(a.QuestionIDs, byID, answers)
	if err != nil {
		return nil, err
	}

	timeTaken := now.Sub(a.CreatedAt).Seconds()
	ok, err := m.repo.CompleteAssessment(ctx, a.ID, pct, now, timeTaken)
	if err != nil {
		return nil, fmt.Errorf("failed to complete assessment: %w", err)
	}
	if !ok {
		// Lost the race: someone else finalized between the read and the
		// conditional update.
		return nil, ErrAlreadyFinalized
	}

	slog.Info("assessment completed",
		"id", a.ID,
		"score", pct,
		"time_taken_s", timeTaken,
	)

	return &models.SubmitResponse{
		AssessmentID: a.ID,
		Score:        pct,
		Status:       models.AssessmentCompleted,
	}, nil
}

// Get returns the denormalized read model for an assessment. It never
// mutates status, even when the deadline has passed.
func (m *Manager) Get(ctx context.Context, id string) (*models.AssessmentView, error) {
	a, err := m.repo.GetAssessment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if a == nil {
		return nil, ErrAssessmentNotFound
	}

	candidate, err := m.repo.GetCandidate(ctx, a.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	company, err := m.repo.GetCompany(ctx, a.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	view := &models.AssessmentView{
		AssessmentID: a.ID,
		JobPosition:  a.JobPosition,
		Status:       a.Status,
		Score:        a.Score,
		CreatedAt:    a.CreatedAt,
		CompletedAt:  a.CompletedAt,
		Expiry:       a.Expiry,
	}
	if candidate != nil {
		view.Candidate = models.CandidateRef{Name: candidate.Name, Email: candidate.Email}
	}

	var companyPool []models.Question
	if company != nil {
		view.Company = models.CompanyRef{Name: company.Name}
		companyPool = company.CustomQuestions
	}

	// Resolve each assigned ID, catalog first then the company pool. IDs
	// that no longer resolve are skipped.
	for _, qid := range a.QuestionIDs {
		if q, ok := m.resolve(qid, companyPool); ok {
			view.Questions = append(view.Questions, q)
		}
	}

	return view, nil
}

// ListByCompany returns all assessments for a company with candidate
// details denormalized in.
func (m *Manager) ListByCompany(ctx context.Context, companyID int64) ([]models.CompanyAssessmentRow, error) {
	company, err := m.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	rows, err := m.repo.ListAssessmentsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	return rows, nil
}

// resolve looks a question up in the catalog first, then the company pool.
func (m *Manager) resolve(id string, companyPool []models.Question) (models.Question, bool) {
	if q, ok := m.catalog.Get(id); ok {
		return q, true
	}
	for _, q := range companyPool {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// resolutionMap builds the grading lookup: the whole catalog plus the
// company's pool, with the catalog taking precedence on ID collisions.
func (m *Manager) resolutionMap(ctx context.Context, companyID int64) (map[string]models.Question, error) {
	company, err := m.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	byID := make(map[string]models.Question)
	if company != nil {
		for _, q := range company.CustomQuestions {
			byID[q.ID] = q
		}
	}
	for _, q := range m.catalog.Questions() {
		byID[q.ID] = q
	}
	return byID, nil
}
