// Package enrollment handles enrollment requests: the three-step form a
// student walks through and the submission that follows it. Submissions are
// acknowledged and audited but never added to the enrollment collection.
package enrollment

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/terra-clan/extension-portal/internal/models"
)

const (
	MinPeriod           = 1
	MaxPeriod           = 10
	MaxMotivationLength = 2000
)

// Request is the data a student fills in to apply for a project
type Request struct {
	ProjectID  string `json:"projectId"`
	StudentID  string `json:"studentId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Course     string `json:"course"`
	Period     int    `json:"period"`
	Motivation string `json:"motivation,omitempty"`
}

// Prefill builds a request for projectID from a student's profile, the way
// the form opens with the student's data already in place.
func Prefill(student models.Student, projectID string) Request {
	return Request{
		ProjectID: projectID,
		StudentID: student.ID,
		Name:      student.Name,
		Email:     student.Email,
		Phone:     student.Phone,
		Course:    student.Course,
		Period:    student.Period,
	}
}

// Normalize trims surrounding whitespace from every text field
func (r *Request) Normalize() {
	r.ProjectID = strings.TrimSpace(r.ProjectID)
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Course = strings.TrimSpace(r.Course)
	r.Motivation = strings.TrimSpace(r.Motivation)
}

// Validate checks the request and returns a *models.ValidationError for the
// first invalid field.
func (r *Request) Validate() error {
	if r.ProjectID == "" {
		return models.NewValidationError("projectId", "project is required")
	}
	if r.Name == "" {
		return models.NewValidationError("name", "name is required")
	}
	if r.Email == "" {
		return models.NewValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return models.NewValidationError("email", fmt.Sprintf("invalid email address %q", r.Email))
	}
	if r.Course == "" {
		return models.NewValidationError("course", "course is required")
	}
	if r.Period < MinPeriod || r.Period > MaxPeriod {
		return models.NewValidationError("period",
			fmt.Sprintf("period must be between %d and %d", MinPeriod, MaxPeriod))
	}
	if utf8.RuneCountInString(r.Motivation) > MaxMotivationLength {
		return models.NewValidationError("motivation",
			fmt.Sprintf("motivation must be at most %d characters", MaxMotivationLength))
	}
	return nil
}

// PeriodLabel renders a period the way the form lists it, e.g. "6º Período"
func PeriodLabel(period int) string {
	return fmt.Sprintf("%dº Período", period)
}
