package models

import "time"

// EnrollmentStatus represents the review state of a student's application
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// EnrollmentStatuses lists every enrollment status
var EnrollmentStatuses = []EnrollmentStatus{EnrollmentPending, EnrollmentApproved, EnrollmentRejected}

// IsValid reports whether s is a known enrollment status
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	}
	return false
}

// IsTerminal returns true if the status is a final decision
func (s EnrollmentStatus) IsTerminal() bool {
	return s == EnrollmentApproved || s == EnrollmentRejected
}

// CanTransitionTo reports whether a pending enrollment may move to next.
// Approved and rejected are terminal.
func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	return s == EnrollmentPending && next.IsTerminal()
}

// Enrollment is a student's application record tied to one project
type Enrollment struct {
	ID             string           `json:"id"`
	ProjectID      string           `json:"projectId"`
	StudentID      string           `json:"studentId"`
	Status         EnrollmentStatus `json:"status"`
	EnrollmentDate Date             `json:"enrollmentDate"`
	Motivation     string           `json:"motivation"`
}

// EnrollmentView is an enrollment joined with the project it references
type EnrollmentView struct {
	Enrollment Enrollment `json:"enrollment"`
	Project    Project    `json:"project"`
}

// IsCompleted returns true when the student finished the project:
// the enrollment was approved and the project is finished.
func (v *EnrollmentView) IsCompleted() bool {
	return v.Enrollment.Status == EnrollmentApproved && v.Project.Status == ProjectFinished
}

// IsActive returns true when the student is taking part in a running project
func (v *EnrollmentView) IsActive() bool {
	return v.Enrollment.Status == EnrollmentApproved && v.Project.Status == ProjectInProgress
}

// Submission is an enrollment request as received from a student.
// It is recorded for audit only and never becomes part of the enrollment collection.
type Submission struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	StudentID   string    `json:"studentId,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Course      string    `json:"course"`
	Period      int       `json:"period"`
	Motivation  string    `json:"motivation,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}
