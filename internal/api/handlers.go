package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/terra-clan/extension-portal/internal/enrollment"
	"github.com/terra-clan/extension-portal/internal/health"
	"github.com/terra-clan/extension-portal/internal/models"
	"github.com/terra-clan/extension-portal/internal/portal"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, &apiError{Code: code, Message: message})
}

func writeError(w http.ResponseWriter, status int, e *apiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error:   e,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondServiceError maps service errors onto HTTP statuses. Anything
// unrecognized is logged and reported as "failed to <action>".
func respondServiceError(w http.ResponseWriter, err error, action string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, &apiError{
			Code:    "validation_error",
			Message: verr.Message,
			Field:   verr.Field,
		})
	case errors.Is(err, enrollment.ErrProjectNotFound):
		respondError(w, http.StatusNotFound, "not_found", "project not found")
	case errors.Is(err, enrollment.ErrEnrollmentClosed):
		respondError(w, http.StatusConflict, "enrollment_closed", "project is not open for enrollment")
	case errors.Is(err, enrollment.ErrProjectFull):
		respondError(w, http.StatusConflict, "project_full", "project has no available slots")
	case errors.Is(err, portal.ErrNotLoaded):
		respondError(w, http.StatusServiceUnavailable, "not_ready", "dataset not loaded")
	default:
		slog.Error("failed to "+action, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to "+action)
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
	results := s.registry.CheckAll(r.Context())

	checks := make(map[string]string, len(results))
	for name, err := range results {
		if err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	if !health.Healthy(results) {
		writeError(w, http.StatusServiceUnavailable, &apiError{
			Code:    "not_ready",
			Message: "service not ready",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"checks": checks,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.portal.Stats()
	if err != nil {
		respondServiceError(w, err, "get stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
