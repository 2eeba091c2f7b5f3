package catalog

import (
	"github.com/terra-clan/extension-portal/internal/models"
)

// FindCertificateForProject returns the first certificate issued for projectID.
// The boolean is false when none exists.
func FindCertificateForProject(certificates []models.Certificate, projectID string) (models.Certificate, bool) {
	for _, c := range certificates {
		if c.ProjectID == projectID {
			return c, true
		}
	}
	return models.Certificate{}, false
}

// FilterCertificates returns the certificates matching every active criterion,
// in collection order.
func FilterCertificates(certificates []models.Certificate, c CertificateCriteria) Result[models.Certificate] {
	items := make([]models.Certificate, 0, len(certificates))
	for _, cert := range certificates {
		if !containsFold(cert.ProjectName, c.Search) && !containsFold(cert.Coordinator, c.Search) {
			continue
		}
		if !matchesYear(c.Year, cert.CompletionDate) {
			continue
		}
		if !c.StudentName.Matches(cert.StudentName) {
			continue
		}
		items = append(items, cert)
	}

	return Result[models.Certificate]{
		Items:    items,
		Total:    len(certificates),
		Filtered: c.Active(),
	}
}

// CertificateHours sums the hours recorded on the certificates
func CertificateHours(certificates []models.Certificate) int {
	total := 0
	for _, c := range certificates {
		total += c.TotalHours
	}
	return total
}

// LatestIssueDate returns the most recent issue date.
// The boolean is false when there are no dated certificates.
func LatestIssueDate(certificates []models.Certificate) (models.Date, bool) {
	var latest models.Date
	found := false
	for _, c := range certificates {
		if c.IssueDate.IsZero() {
			continue
		}
		if !found || c.IssueDate.After(latest) {
			latest = c.IssueDate
			found = true
		}
	}
	return latest, found
}

// CertificateYears returns the distinct completion years, most recent first
func CertificateYears(certificates []models.Certificate) []int {
	years := make([]int, 0)
	for _, c := range certificates {
		if c.CompletionDate.IsZero() {
			continue
		}
		years = append(years, c.CompletionDate.Year())
	}
	return distinctDesc(years)
}
