package catalog

import (
	"slices"

	"github.com/terra-clan/extension-portal/internal/models"
)

// projectIndex resolves project IDs. The first project with a given ID wins,
// matching FindProjectByID.
type projectIndex map[string]models.Project

func indexProjects(projects []models.Project) projectIndex {
	idx := make(projectIndex, len(projects))
	for _, p := range projects {
		if _, dup := idx[p.ID]; !dup {
			idx[p.ID] = p
		}
	}
	return idx
}

// join pairs each enrollment with its project, skipping dangling references
func (idx projectIndex) join(enrollments []models.Enrollment, keep func(models.Enrollment, models.Project) bool) []models.EnrollmentView {
	out := make([]models.EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		p, ok := idx[e.ProjectID]
		if !ok {
			continue
		}
		if keep != nil && !keep(e, p) {
			continue
		}
		out = append(out, models.EnrollmentView{Enrollment: e, Project: p})
	}
	return out
}

// FilterEnrollments returns the enrollments matching every active criterion,
// joined with their projects. Enrollments whose project cannot be resolved are
// always excluded.
func FilterEnrollments(enrollments []models.Enrollment, projects []models.Project, c EnrollmentCriteria) Result[models.EnrollmentView] {
	idx := indexProjects(projects)
	items := idx.join(enrollments, func(e models.Enrollment, p models.Project) bool {
		if !containsFold(p.Name, c.Search) && !containsFold(p.Coordinator, c.Search) {
			return false
		}
		if !c.Status.Matches(e.Status) {
			return false
		}
		if !matchesYear(c.Year, e.EnrollmentDate) {
			return false
		}
		return c.StudentID.Matches(e.StudentID)
	})

	return Result[models.EnrollmentView]{
		Items:    items,
		Total:    len(enrollments),
		Filtered: c.Active(),
	}
}

// EnrollmentsByStatus returns the enrollments with the given status joined
// with their projects, skipping dangling references.
func EnrollmentsByStatus(enrollments []models.Enrollment, projects []models.Project, status models.EnrollmentStatus) []models.EnrollmentView {
	return indexProjects(projects).join(enrollments, func(e models.Enrollment, _ models.Project) bool {
		return e.Status == status
	})
}

// AggregateHours sums the total hours of the projects behind enrollments with
// the given status. Enrollments with a missing project contribute zero.
func AggregateHours(enrollments []models.Enrollment, projects []models.Project, status models.EnrollmentStatus) int {
	idx := indexProjects(projects)
	total := 0
	for _, e := range enrollments {
		if e.Status != status {
			continue
		}
		total += idx[e.ProjectID].TotalHours
	}
	return total
}

// CountCompletedProjects counts approved enrollments whose project is finished
func CountCompletedProjects(enrollments []models.Enrollment, projects []models.Project) int {
	idx := indexProjects(projects)
	count := 0
	for _, e := range enrollments {
		if e.Status != models.EnrollmentApproved {
			continue
		}
		if p, ok := idx[e.ProjectID]; ok && p.Status == models.ProjectFinished {
			count++
		}
	}
	return count
}

// EnrollmentsForStudent returns the enrollments owned by studentID, in order
func EnrollmentsForStudent(enrollments []models.Enrollment, studentID string) []models.Enrollment {
	out := make([]models.Enrollment, 0)
	for _, e := range enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out
}

// EnrollmentYears returns the distinct enrollment years, most recent first
func EnrollmentYears(enrollments []models.Enrollment) []int {
	years := make([]int, 0)
	for _, e := range enrollments {
		if e.EnrollmentDate.IsZero() {
			continue
		}
		years = append(years, e.EnrollmentDate.Year())
	}
	return distinctDesc(years)
}

func distinctDesc(years []int) []int {
	slices.Sort(years)
	years = slices.Compact(years)
	slices.Reverse(years)
	return years
}
