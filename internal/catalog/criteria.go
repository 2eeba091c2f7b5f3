package catalog

import (
	"fmt"
	"strings"

	"github.com/terra-clan/extension-portal/internal/models"
)

// ProjectSort selects the ordering of a project listing
type ProjectSort string

const (
	SortNone    ProjectSort = ""           // Keep collection order
	SortByName  ProjectSort = "name"       // Name, A-Z
	SortByStart ProjectSort = "start-date" // Earliest start first
	SortByHours ProjectSort = "hours"      // Most total hours first
)

// ParseProjectSort converts a raw value into a ProjectSort
func ParseProjectSort(raw string) (ProjectSort, error) {
	switch s := ProjectSort(strings.TrimSpace(raw)); s {
	case SortNone, SortByName, SortByStart, SortByHours:
		return s, nil
	}
	return SortNone, models.NewValidationError("sort", fmt.Sprintf("unknown sort %q", raw))
}

// ProjectCriteria filters the project listing
type ProjectCriteria struct {
	Search string                                // Substring of name or description
	Area   models.Selector[string]               // Area slug
	Status models.Selector[models.ProjectStatus] // Exact status
	Course models.Selector[string]               // Course slug
	Sort   ProjectSort
}

// Active reports whether any filtering criterion is set. Sort alone does not count.
func (c ProjectCriteria) Active() bool {
	return c.Search != "" || !c.Area.IsAny() || !c.Status.IsAny() || !c.Course.IsAny()
}

// Key returns a stable cache key for the criteria
func (c ProjectCriteria) Key() string {
	return fmt.Sprintf("search=%q|area%s|status%s|course%s|sort=%s",
		c.Search, c.Area.Key(), c.Status.Key(), c.Course.Key(), c.Sort)
}

// ParseProjectCriteria builds project criteria from raw input values, the
// way they arrive from a query string or a command line
func ParseProjectCriteria(search, area, status, course, sort string) (ProjectCriteria, error) {
	st, err := models.ParseProjectStatus(status)
	if err != nil {
		return ProjectCriteria{}, err
	}
	by, err := ParseProjectSort(sort)
	if err != nil {
		return ProjectCriteria{}, err
	}
	return ProjectCriteria{
		Search: strings.TrimSpace(search),
		Area:   models.ParseSelector(area),
		Status: st,
		Course: models.ParseSelector(course),
		Sort:   by,
	}, nil
}

// EnrollmentCriteria filters the enrollment history
type EnrollmentCriteria struct {
	Search    string                                   // Substring of project name or coordinator
	Status    models.Selector[models.EnrollmentStatus] // Exact status
	Year      models.Selector[int]                     // Calendar year of the enrollment date
	StudentID models.Selector[string]                  // Owner of the enrollment
}

// Active reports whether any criterion is set
func (c EnrollmentCriteria) Active() bool {
	return c.Search != "" || !c.Status.IsAny() || !c.Year.IsAny() || !c.StudentID.IsAny()
}

// Key returns a stable cache key for the criteria
func (c EnrollmentCriteria) Key() string {
	return fmt.Sprintf("search=%q|status%s|year%s|student%s",
		c.Search, c.Status.Key(), c.Year.Key(), c.StudentID.Key())
}

// ParseEnrollmentCriteria builds enrollment criteria from raw input values
func ParseEnrollmentCriteria(search, status, year string) (EnrollmentCriteria, error) {
	st, err := models.ParseEnrollmentStatus(status)
	if err != nil {
		return EnrollmentCriteria{}, err
	}
	y, err := models.ParseYear(year)
	if err != nil {
		return EnrollmentCriteria{}, err
	}
	return EnrollmentCriteria{
		Search: strings.TrimSpace(search),
		Status: st,
		Year:   y,
	}, nil
}

// CertificateCriteria filters the certificate listing
type CertificateCriteria struct {
	Search      string                  // Substring of project name or coordinator
	Year        models.Selector[int]    // Calendar year of the completion date
	StudentName models.Selector[string] // Holder of the certificate
}

// Active reports whether any criterion is set
func (c CertificateCriteria) Active() bool {
	return c.Search != "" || !c.Year.IsAny() || !c.StudentName.IsAny()
}

// Key returns a stable cache key for the criteria
func (c CertificateCriteria) Key() string {
	return fmt.Sprintf("search=%q|year%s|student%s", c.Search, c.Year.Key(), c.StudentName.Key())
}

// ParseCertificateCriteria builds certificate criteria from raw input values
func ParseCertificateCriteria(search, year string) (CertificateCriteria, error) {
	y, err := models.ParseYear(year)
	if err != nil {
		return CertificateCriteria{}, err
	}
	return CertificateCriteria{
		Search: strings.TrimSpace(search),
		Year:   y,
	}, nil
}

// Result is a filtered view over a collection.
// Filtered distinguishes "nothing matched" from "no criteria applied".
type Result[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`    // Size of the unfiltered input
	Filtered bool `json:"filtered"` // Whether any criterion was active
}

// Len returns the number of matching items
func (r Result[T]) Len() int {
	return len(r.Items)
}

// Empty reports whether nothing matched
func (r Result[T]) Empty() bool {
	return len(r.Items) == 0
}

// matchesYear reports whether d falls in the selected year. Undated records
// never match a restricted year.
func matchesYear(year models.Selector[int], d models.Date) bool {
	if year.IsAny() {
		return true
	}
	return !d.IsZero() && year.Matches(d.Year())
}
