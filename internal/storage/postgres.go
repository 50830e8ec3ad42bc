package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candidex/screening-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25 // default
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5 // default
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// --- Companies ---

// CreateCompany inserts a new company and fills in its generated ID.
// Custom questions are stored as a JSONB column; the rest of the system
// only ever sees []models.Question.
func (r *PostgresRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	questionsJSON, err := json.Marshal(c.CustomQuestions)
	if err != nil {
		return fmt.Errorf("failed to marshal custom questions: %w", err)
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO companies (name, industry, custom_questions, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err = r.pool.QueryRow(ctx, query,
		c.Name,
		nullString(c.Industry),
		questionsJSON,
		c.CreatedAt,
	).Scan(&c.ID)

	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetCompany retrieves a company by ID
func (r *PostgresRepository) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	query := `
		SELECT id, name, industry, custom_questions, created_at
		FROM companies
		WHERE id = $1
	`

	var c models.Company
	var industry sql.NullString
	var questionsJSON []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&industry,
		&questionsJSON,
		&c.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	c.Industry = industry.String

	if questionsJSON != nil {
		if err := json.Unmarshal(questionsJSON, &c.CustomQuestions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal custom questions: %w", err)
		}
	}

	return &c, nil
}

// ListCompanies returns all companies, newest first
func (r *PostgresRepository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	query := `
		SELECT id, name, industry, custom_questions, created_at
		FROM companies
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company

	for rows.Next() {
		var c models.Company
		var industry sql.NullString
		var questionsJSON []byte

		err := rows.Scan(
			&c.ID,
			&c.Name,
			&industry,
			&questionsJSON,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}

		c.Industry = industry.String

		if questionsJSON != nil {
			if err := json.Unmarshal(questionsJSON, &c.CustomQuestions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal custom questions: %w", err)
			}
		}

		companies = append(companies, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, nil
}

// --- Candidates ---

// UpsertCandidateByEmail resolves or creates a candidate keyed by email in
// a single atomic statement. If a candidate with the email already exists,
// its identity (and stored name) is reused.
func (r *PostgresRepository) UpsertCandidateByEmail(ctx context.Context, name, email string) (*models.Candidate, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing row.
	query := `
		INSERT INTO candidates (name, email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, name, email, created_at
	`

	var c models.Candidate
	err := r.pool.QueryRow(ctx, query, name, email, time.Now().UTC()).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate: %w", err)
	}

	return &c, nil
}

// GetCandidate retrieves a candidate by ID
func (r *PostgresRepository) GetCandidate(ctx context.Context, id int64) (*models.Candidate, error) {
	query := `
		SELECT id, name, email, created_at
		FROM candidates
		WHERE id = $1
	`

	var c models.Candidate
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return &c, nil
}

// --- Assessments ---

// CreateAssessment creates a new assessment record
func (r *PostgresRepository) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	questionIDsJSON, err := json.Marshal(a.QuestionIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal question ids: %w", err)
	}

	query := `
		INSERT INTO assessments (id, candidate_id, company_id, job_position, question_ids, status, score, created_at, completed_at, expiry, time_taken)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		a.ID,
		a.CandidateID,
		a.CompanyID,
		nullString(a.JobPosition),
		questionIDsJSON,
		string(a.Status),
		nullFloat(a.Score),
		a.CreatedAt,
		nullTime(a.CompletedAt),
		a.Expiry,
		nullFloat(a.TimeTaken),
	)

	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	return nil
}

// GetAssessment retrieves an assessment by ID
func (r *PostgresRepository) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	query := `
		SELECT id, candidate_id, company_id, job_position, question_ids, status, score, created_at, completed_at, expiry, time_taken
		FROM assessments
		WHERE id = $1
	`

	a, err := scanAssessment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	return a, nil
}

// CompleteAssessment performs the pending→completed transition. The status
// guard in the WHERE clause makes the transition atomic: of two racing
// submitters, exactly one sees true.
func (r *PostgresRepository) CompleteAssessment(ctx context.Context, id string, score float64, completedAt time.Time, timeTaken float64) (bool, error) {
	query := `
		UPDATE assessments
		SET status = 'completed', score = $2, completed_at = $3, time_taken = $4
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.pool.Exec(ctx, query, id, score, completedAt, timeTaken)
	if err != nil {
		return false, fmt.Errorf("failed to complete assessment: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// ExpireAssessment performs the pending→expired transition, guarded the
// same way as CompleteAssessment.
func (r *PostgresRepository) ExpireAssessment(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE assessments
		SET status = 'expired'
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to expire assessment: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// ListAssessmentsByCompany returns all assessments for a company with the
// candidate name and email denormalized in, newest first.
func (r *PostgresRepository) ListAssessmentsByCompany(ctx context.Context, companyID int64) ([]models.CompanyAssessmentRow, error) {
	query := `
		SELECT a.id, c.name, c.email, a.job_position, a.status, a.score, a.created_at, a.completed_at, a.time_taken
		FROM assessments a
		JOIN candidates c ON c.id = a.candidate_id
		WHERE a.company_id = $1
		ORDER BY a.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var results []models.CompanyAssessmentRow

	for rows.Next() {
		var row models.CompanyAssessmentRow
		var jobPosition sql.NullString
		var statusStr string
		var score, timeTaken sql.NullFloat64
		var completedAt sql.NullTime

		err := rows.Scan(
			&row.AssessmentID,
			&row.CandidateName,
			&row.CandidateEmail,
			&jobPosition,
			&statusStr,
			&score,
			&row.CreatedAt,
			&completedAt,
			&timeTaken,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}

		row.JobPosition = jobPosition.String
		row.Status = models.AssessmentStatus(statusStr)
		if score.Valid {
			row.Score = &score.Float64
		}
		if completedAt.Valid {
			row.CompletedAt = &completedAt.Time
		}
		if timeTaken.Valid {
			row.TimeTaken = &timeTaken.Float64
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}

	return results, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanAssessment
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*models.Assessment, error) {
	var a models.Assessment
	var jobPosition sql.NullString
	var statusStr string
	var score, timeTaken sql.NullFloat64
	var completedAt sql.NullTime
	var questionIDsJSON []byte

	err := row.Scan(
		&a.ID,
		&a.CandidateID,
		&a.CompanyID,
		&jobPosition,
		&questionIDsJSON,
		&statusStr,
		&score,
		&a.CreatedAt,
		&completedAt,
		&a.Expiry,
		&timeTaken,
	)
	if err != nil {
		return nil, err
	}

	a.JobPosition = jobPosition.String
	a.Status = models.AssessmentStatus(statusStr)
	if score.Valid {
		a.Score = &score.Float64
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	if timeTaken.Valid {
		a.TimeTaken = &timeTaken.Float64
	}

	if err := json.Unmarshal(questionIDsJSON, &a.QuestionIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question ids: %w", err)
	}

	return &a, nil
}

// Helper functions for nullable values

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
