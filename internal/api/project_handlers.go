package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/enrollment"
	"github.com/terra-clan/extension-portal/internal/models"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	criteria, err := projectCriteria(r.URL.Query())
	if err != nil {
		respondServiceError(w, err, "list projects")
		return
	}

	result, err := s.portal.Projects(r.Context(), criteria)
	if err != nil {
		respondServiceError(w, err, "list projects")
		return
	}

	respondJSON(w, http.StatusOK, catalog.DescribeProjects(result))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, ok := s.portal.Project(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	respondJSON(w, http.StatusOK, models.NewProjectView(project))
}

func (s *Server) handleGetProjectCertificate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cert, ok, err := s.portal.CertificateForProject(r.Context(), StudentFromContext(r.Context()), id)
	if err != nil {
		respondServiceError(w, err, "get certificate")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "certificate not found")
		return
	}

	respondJSON(w, http.StatusOK, cert)
}

// enrollmentForm is one page of the enrollment form for a project
type enrollmentForm struct {
	Project     models.ProjectView    `json:"project"`
	Step        enrollment.Step       `json:"step"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Progress    []enrollment.Progress `json:"progress"`
	Request     enrollment.Request    `json:"request"`
	Periods     []string              `json:"periods"`
}

func (s *Server) handleEnrollmentForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, ok := s.portal.Project(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	wizard := enrollment.NewWizard()
	if raw := r.URL.Query().Get("step"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !wizard.GoTo(enrollment.Step(n)) {
			respondError(w, http.StatusBadRequest, "validation_error", "step must be between 1 and 3")
			return
		}
	}

	viewer := StudentFromContext(r.Context())
	student, ok := s.portal.Student(viewer)
	if !ok {
		student = models.Student{ID: viewer}
	}

	periods := make([]string, 0, enrollment.MaxPeriod)
	for n := enrollment.MinPeriod; n <= enrollment.MaxPeriod; n++ {
		periods = append(periods, enrollment.PeriodLabel(n))
	}

	step := wizard.Current()
	respondJSON(w, http.StatusOK, enrollmentForm{
		Project:     models.NewProjectView(project),
		Step:        step,
		Title:       step.Title(),
		Description: step.Description(),
		Progress:    wizard.Progress(),
		Request:     enrollment.Prefill(student, project.ID),
		Periods:     periods,
	})
}

// maxEnrollmentBody bounds a submission well above the largest valid one
const maxEnrollmentBody = 64 << 10

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEnrollmentBody)

	var req enrollment.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Submissions are always recorded for the requesting student
	viewer := StudentFromContext(r.Context())
	if id := strings.TrimSpace(req.StudentID); id != "" && id != viewer {
		writeError(w, http.StatusBadRequest, &apiError{
			Code:    "validation_error",
			Message: "studentId does not match the requesting student",
			Field:   "studentId",
		})
		return
	}
	req.StudentID = viewer
	req.ProjectID = chi.URLParam(r, "id")

	receipt, err := s.enrollments.Submit(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "submit enrollment")
		return
	}

	respondJSON(w, http.StatusCreated, receipt)
}
