package models

import "time"

// AssessmentStatus represents the lifecycle state of an assessment
type AssessmentStatus string

const (
	AssessmentPending   AssessmentStatus = "pending"   // Created, waiting for the candidate
	AssessmentCompleted AssessmentStatus = "completed" // Graded on time
	AssessmentExpired   AssessmentStatus = "expired"   // Submit attempted past the deadline
)

// IsTerminal returns true if the status is a final state. Terminal states
// are absorbing: no transition out of them is possible.
func (s AssessmentStatus) IsTerminal() bool {
	return s == AssessmentCompleted || s == AssessmentExpired
}

// Assessment is one candidate's attempt instance. QuestionIDs is fixed at
// creation and never changes; Score, CompletedAt and TimeTaken are set
// together, exactly once, on the pending→completed transition.
type Assessment struct {
	ID          string           `json:"id"`
	CandidateID int64            `json:"candidate_id"`
	CompanyID   int64            `json:"company_id"`
	JobPosition string           `json:"job_position,omitempty"`
	QuestionIDs []string         `json:"question_ids"`
	Status      AssessmentStatus `json:"status"`
	Score       *float64         `json:"score,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Expiry      time.Time        `json:"expiry"`
	TimeTaken   *float64         `json:"time_taken,omitempty"` // seconds
}

// DeadlinePassed reports whether now is past the expiry deadline. The
// status itself only moves to expired on a late submit attempt.
func (a *Assessment) DeadlinePassed(now time.Time) bool {
	return now.After(a.Expiry)
}

// CreateAssessmentRequest is the body for POST /api/assessments.
type CreateAssessmentRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyID   int64  `json:"company_id"`
	JobPosition string `json:"job_position"`
}

// CreateAssessmentResponse is returned after creating an assessment.
// Questions carry full question data including correct answers; the
// transport layer redacts them before showing the candidate.
type CreateAssessmentResponse struct {
	AssessmentID string     `json:"assessment_id"`
	Questions    []Question `json:"questions"`
	Expiry       time.Time  `json:"expiry"`
}

// SubmitRequest is the body for POST /api/assessments/{id}/submit.
type SubmitRequest struct {
	Answers []Answer `json:"answers"`
}

// SubmitResponse is returned after grading a submission.
type SubmitResponse struct {
	AssessmentID string           `json:"assessment_id"`
	Score        float64          `json:"score"`
	Status       AssessmentStatus `json:"status"`
}

// CandidateRef is the denormalized candidate summary in assessment views.
type CandidateRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CompanyRef is the denormalized company summary in assessment views.
type CompanyRef struct {
	Name string `json:"name"`
}

// AssessmentView is the full denormalized read model for a single
// assessment, with question objects resolved catalog-first.
type AssessmentView struct {
	AssessmentID string           `json:"assessment_id"`
	Candidate    CandidateRef     `json:"candidate"`
	Company      CompanyRef       `json:"company"`
	JobPosition  string           `json:"job_position"`
	Status       AssessmentStatus `json:"status"`
	Score        *float64         `json:"score"`
	CreatedAt    time.Time        `json:"created_at"`
	CompletedAt  *time.Time       `json:"completed_at"`
	Expiry       time.Time        `json:"expiry"`
	Questions    []Question       `json:"questions"`
}

// CompanyAssessmentRow is one row of the per-company assessment listing.
type CompanyAssessmentRow struct {
	AssessmentID   string           `json:"assessment_id"`
	CandidateName  string           `json:"candidate_name"`
	CandidateEmail string           `json:"candidate_email"`
	JobPosition    string           `json:"job_position"`
	Status         AssessmentStatus `json:"status"`
	Score          *float64         `json:"score"`
	CreatedAt      time.Time        `json:"created_at"`
	CompletedAt    *time.Time       `json:"completed_at"`
	TimeTaken      *float64         `json:"time_taken"`
}
