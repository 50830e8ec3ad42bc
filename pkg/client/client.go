// Package client is a Go SDK for the screening-engine HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a Go SDK for the screening-engine API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new screening-engine client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is an error response from the API
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Question is a screening question. CorrectAnswer is only present in
// company-facing views.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

// Answer is one submitted answer
type Answer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// CreateCompanyRequest creates a hiring company
type CreateCompanyRequest struct {
	Name            string     `json:"name"`
	Industry        string     `json:"industry,omitempty"`
	CustomQuestions []Question `json:"custom_questions,omitempty"`
}

// Company is a company listing row
type Company struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

// CreateAssessmentRequest creates an assessment for a candidate
type CreateAssessmentRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyID   int64  `json:"company_id"`
	JobPosition string `json:"job_position,omitempty"`
}

// CreateAssessmentResponse is returned after creating an assessment
type CreateAssessmentResponse struct {
	AssessmentID string     `json:"assessment_id"`
	Questions    []Question `json:"questions"`
	Expiry       time.Time  `json:"expiry"`
}

// SubmitResponse is the grading result
type SubmitResponse struct {
	AssessmentID string  `json:"assessment_id"`
	Score        float64 `json:"score"`
	Status       string  `json:"status"`
}

// Assessment is the full denormalized assessment view
type Assessment struct {
	AssessmentID string `json:"assessment_id"`
	Candidate    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"candidate"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	JobPosition string     `json:"job_position"`
	Status      string     `json:"status"`
	Score       *float64   `json:"score"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Expiry      time.Time  `json:"expiry"`
	Questions   []Question `json:"questions"`
}

// CompanyAssessment is one row of the per-company assessment listing
type CompanyAssessment struct {
	AssessmentID   string     `json:"assessment_id"`
	CandidateName  string     `json:"candidate_name"`
	CandidateEmail string     `json:"candidate_email"`
	JobPosition    string     `json:"job_position"`
	Status         string     `json:"status"`
	Score          *float64   `json:"score"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	TimeTaken      *float64   `json:"time_taken"`
}

// CreateCompany registers a hiring company and returns its ID
func (c *Client) CreateCompany(ctx context.Context, req CreateCompanyRequest) (int64, error) {
	var result struct {
		ID int64 `json:"id"`
	}
	if err := c.doJSON(ctx, "POST", "/api/companies", req, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// ListCompanies returns all registered companies
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	var result []Company
	if err := c.doJSON(ctx, "GET", "/api/companies", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateAssessment creates an assessment for a candidate. The returned
// questions are redacted (no correct answers).
func (c *Client) CreateAssessment(ctx context.Context, req CreateAssessmentRequest) (*CreateAssessmentResponse, error) {
	var result CreateAssessmentResponse
	if err := c.doJSON(ctx, "POST", "/api/assessments", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitAssessment submits answers and returns the graded score
func (c *Client) SubmitAssessment(ctx context.Context, assessmentID string, answers []Answer) (*SubmitResponse, error) {
	body := struct {
		Answers []Answer `json:"answers"`
	}{Answers: answers}

	var result SubmitResponse
	if err := c.doJSON(ctx, "POST", "/api/assessments/"+assessmentID+"/submit", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAssessment retrieves the full assessment view
func (c *Client) GetAssessment(ctx context.Context, assessmentID string) (*Assessment, error) {
	var result Assessment
	if err := c.doJSON(ctx, "GET", "/api/assessments/"+assessmentID, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCompanyAssessments lists all assessments for a company
func (c *Client) ListCompanyAssessments(ctx context.Context, companyID int64) ([]CompanyAssessment, error) {
	var result []CompanyAssessment
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/api/companies/%d/assessments", companyID), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// doJSON performs a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "unknown"}
		var wrapped struct {
			Error APIError `json:"error"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Error.Code != "" {
			apiErr.Code = wrapped.Error.Code
			apiErr.Message = wrapped.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
