package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/candidex/screening-engine/internal/models"
)

// Response helpers

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(errorResponse{Error: apiError{Code: code, Message: message}}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Company handlers

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}

	company := &models.Company{
		Name:            req.Name,
		Industry:        req.Industry,
		CustomQuestions: req.CustomQuestions,
	}

	if err := s.repo.CreateCompany(r.Context(), company); err != nil {
		slog.Error("failed to create company", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create company")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"id": company.ID})
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.repo.ListCompanies(r.Context())
	if err != nil {
		slog.Error("failed to list companies", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list companies")
		return
	}

	summaries := make([]models.CompanySummary, 0, len(companies))
	for _, c := range companies {
		summaries = append(summaries, models.CompanySummary{
			ID:       c.ID,
			Name:     c.Name,
			Industry: c.Industry,
		})
	}

	respondJSON(w, http.StatusOK, summaries)
}

// companyIDParam parses the {id} URL parameter.
func companyIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
