package catalog

import (
	"github.com/terra-clan/extension-portal/internal/models"
)

// HistorySummary holds the headline figures of a student's participation
type HistorySummary struct {
	TotalHours        int `json:"totalHours"`        // Hours across approved enrollments
	CompletedProjects int `json:"completedProjects"` // Approved enrollments on finished projects
	TotalEnrollments  int `json:"totalEnrollments"`
}

// SummarizeHistory derives the participation figures for a set of enrollments
func SummarizeHistory(enrollments []models.Enrollment, projects []models.Project) HistorySummary {
	return HistorySummary{
		TotalHours:        AggregateHours(enrollments, projects, models.EnrollmentApproved),
		CompletedProjects: CountCompletedProjects(enrollments, projects),
		TotalEnrollments:  len(enrollments),
	}
}

// CertificateSummary holds the headline figures of a certificate listing
type CertificateSummary struct {
	Count       int          `json:"count"`
	TotalHours  int          `json:"totalHours"`
	LatestIssue *models.Date `json:"latestIssue"` // nil when there are no certificates
}

// SummarizeCertificates derives the certificate figures
func SummarizeCertificates(certificates []models.Certificate) CertificateSummary {
	s := CertificateSummary{
		Count:      len(certificates),
		TotalHours: CertificateHours(certificates),
	}
	if latest, ok := LatestIssueDate(certificates); ok {
		s.LatestIssue = &latest
	}
	return s
}

// MyProjects splits a student's enrollments into the approved and pending tabs
type MyProjects struct {
	Approved []models.EnrollmentView `json:"approved"`
	Pending  []models.EnrollmentView `json:"pending"`
}

// BuildMyProjects groups enrollments for the "my projects" page
func BuildMyProjects(enrollments []models.Enrollment, projects []models.Project) MyProjects {
	return MyProjects{
		Approved: EnrollmentsByStatus(enrollments, projects, models.EnrollmentApproved),
		Pending:  EnrollmentsByStatus(enrollments, projects, models.EnrollmentPending),
	}
}
