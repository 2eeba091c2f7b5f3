package api

import (
	"net/http"

	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/models"
)

// Viewer-scoped handlers. Every listing here belongs to the student resolved
// by viewerMiddleware.

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	criteria, err := enrollmentCriteria(r.URL.Query())
	if err != nil {
		respondServiceError(w, err, "list enrollments")
		return
	}

	result, err := s.portal.Enrollments(r.Context(), StudentFromContext(r.Context()), criteria)
	if err != nil {
		respondServiceError(w, err, "list enrollments")
		return
	}

	respondJSON(w, http.StatusOK, catalog.DescribeEnrollments(result))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	summary, err := s.portal.History(r.Context(), StudentFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err, "get history")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleMyProjects(w http.ResponseWriter, r *http.Request) {
	mine, err := s.portal.MyProjects(r.Context(), StudentFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err, "get my projects")
		return
	}
	respondJSON(w, http.StatusOK, mine.Describe())
}

func (s *Server) handleListCertificates(w http.ResponseWriter, r *http.Request) {
	criteria, err := certificateCriteria(r.URL.Query())
	if err != nil {
		respondServiceError(w, err, "list certificates")
		return
	}

	result, err := s.portal.Certificates(r.Context(), StudentFromContext(r.Context()), criteria)
	if err != nil {
		respondServiceError(w, err, "list certificates")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCertificateSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.portal.CertificateSummary(r.Context(), StudentFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err, "get certificate summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := s.portal.Filters(r.Context(), StudentFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err, "get filters")
		return
	}
	respondJSON(w, http.StatusOK, filters)
}

func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	role, err := models.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		respondServiceError(w, err, "get navigation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"role":       role,
		"portalName": models.PortalName(role),
		"title":      models.PageTitle(r.URL.Query().Get("page")),
		"items":      models.Navigation(role),
	})
}
