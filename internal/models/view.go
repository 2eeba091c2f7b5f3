package models

// ProjectView is a project with its display metadata
type ProjectView struct {
	Project
	Display        StatusDescriptor `json:"display"`
	AvailableSlots int              `json:"availableSlots"`
	Open           bool             `json:"open"`
}

// NewProjectView describes p for presentation
func NewProjectView(p Project) ProjectView {
	return ProjectView{
		Project:        p,
		Display:        DescribeProjectStatus(p.Status),
		AvailableSlots: p.AvailableSlots(),
		Open:           p.IsOpen(),
	}
}

// EnrollmentDetails is an enrollment joined with its project, carrying the
// display metadata of both statuses.
type EnrollmentDetails struct {
	EnrollmentView
	Display        StatusDescriptor `json:"display"`
	ProjectDisplay StatusDescriptor `json:"projectDisplay"`
}

// NewEnrollmentDetails describes v for presentation
func NewEnrollmentDetails(v EnrollmentView) EnrollmentDetails {
	return EnrollmentDetails{
		EnrollmentView: v,
		Display:        DescribeEnrollmentStatus(v.Enrollment.Status),
		ProjectDisplay: DescribeProjectStatus(v.Project.Status),
	}
}
