package catalog

import "github.com/terra-clan/extension-portal/internal/models"

// MapResult converts the items of r with f, keeping Total and Filtered
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	items := make([]U, len(r.Items))
	for i, item := range r.Items {
		items[i] = f(item)
	}
	return Result[U]{Items: items, Total: r.Total, Filtered: r.Filtered}
}

// DescribeProjects attaches display metadata to every project in r
func DescribeProjects(r Result[models.Project]) Result[models.ProjectView] {
	return MapResult(r, models.NewProjectView)
}

// DescribeEnrollments attaches display metadata to every enrollment in r
func DescribeEnrollments(r Result[models.EnrollmentView]) Result[models.EnrollmentDetails] {
	return MapResult(r, models.NewEnrollmentDetails)
}

// MyProjectsDetails is MyProjects with display metadata on every entry
type MyProjectsDetails struct {
	Approved []models.EnrollmentDetails `json:"approved"`
	Pending  []models.EnrollmentDetails `json:"pending"`
}

// Describe attaches display metadata to both tabs
func (m MyProjects) Describe() MyProjectsDetails {
	return MyProjectsDetails{
		Approved: describeAll(m.Approved),
		Pending:  describeAll(m.Pending),
	}
}

func describeAll(views []models.EnrollmentView) []models.EnrollmentDetails {
	out := make([]models.EnrollmentDetails, len(views))
	for i, v := range views {
		out[i] = models.NewEnrollmentDetails(v)
	}
	return out
}
