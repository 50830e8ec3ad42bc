package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/candidex/screening-engine/internal/assessment"
	"github.com/candidex/screening-engine/internal/models"
	"github.com/candidex/screening-engine/internal/scoring"
)

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "name and email are required")
		return
	}

	if req.CompanyID == 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "company_id is required")
		return
	}

	resp, err := s.manager.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, assessment.ErrCompanyNotFound) {
			respondError(w, http.StatusNotFound, "company_not_found", "company not found")
			return
		}
		slog.Error("failed to create assessment", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create assessment")
		return
	}

	// Candidate-facing response: withhold the correct answers.
	resp.Questions = models.RedactQuestions(resp.Questions)

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "assessment id is required")
		return
	}

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	resp, err := s.manager.Submit(r.Context(), id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, assessment.ErrAssessmentNotFound):
			respondError(w, http.StatusNotFound, "not_found", "assessment not found")
		case errors.Is(err, assessment.ErrAlreadyFinalized):
			respondError(w, http.StatusBadRequest, "already_finalized", "assessment already completed or expired")
		case errors.Is(err, assessment.ErrExpired):
			respondError(w, http.StatusBadRequest, "expired", "assessment has expired")
		case errors.Is(err, scoring.ErrNoQuestions):
			respondError(w, http.StatusBadRequest, "no_questions", "assessment has no questions")
		default:
			slog.Error("failed to submit assessment", "error", err, "id", id)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to submit assessment")
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "assessment id is required")
		return
	}

	view, err := s.manager.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, assessment.ErrAssessmentNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "assessment not found")
			return
		}
		slog.Error("failed to get assessment", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get assessment")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleListCompanyAssessments(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid company id")
		return
	}

	rows, err := s.manager.ListByCompany(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, assessment.ErrCompanyNotFound) {
			respondError(w, http.StatusNotFound, "company_not_found", "company not found")
			return
		}
		slog.Error("failed to list company assessments", "error", err, "company_id", companyID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list assessments")
		return
	}

	if rows == nil {
		rows = []models.CompanyAssessmentRow{}
	}

	respondJSON(w, http.StatusOK, rows)
}
