package models

import "time"

// Company is a hiring company. CustomQuestions is the company's private
// question pool; an empty pool is allowed.
type Company struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Industry        string     `json:"industry,omitempty"`
	CustomQuestions []Question `json:"custom_questions,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Candidate is a job candidate, identified by a unique email.
type Candidate struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCompanyRequest is the body for POST /api/companies.
type CreateCompanyRequest struct {
	Name            string     `json:"name"`
	Industry        string     `json:"industry"`
	CustomQuestions []Question `json:"custom_questions"`
}

// CompanySummary is the list-companies row.
type CompanySummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
}
