package storage

import (
	"context"
	"time"

	"github.com/candidex/screening-engine/internal/models"
)

// Repository defines the interface for screening persistence. Lookups
// return (nil, nil) when the record is absent.
type Repository interface {
	// Companies
	CreateCompany(ctx context.Context, c *models.Company) error
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)

	// Candidates
	UpsertCandidateByEmail(ctx context.Context, name, email string) (*models.Candidate, error)
	GetCandidate(ctx context.Context, id int64) (*models.Candidate, error)

	// Assessments
	CreateAssessment(ctx context.Context, a *models.Assessment) error
	GetAssessment(ctx context.Context, id string) (*models.Assessment, error)
	// CompleteAssessment and ExpireAssessment transition an assessment out
	// of pending conditionally, and report whether the row was still
	// pending. A false return means another caller finalized it first.
	CompleteAssessment(ctx context.Context, id string, score float64, completedAt time.Time, timeTaken float64) (bool, error)
	ExpireAssessment(ctx context.Context, id string) (bool, error)
	ListAssessmentsByCompany(ctx context.Context, companyID int64) ([]models.CompanyAssessmentRow, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
