package models

// ProjectStatus represents the lifecycle state of an extension project
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"        // Accepting enrollments
	ProjectInProgress ProjectStatus = "in-progress" // Running, enrollment closed
	ProjectFinished   ProjectStatus = "finished"    // Completed, certificates issued
)

// ProjectStatuses lists every project status in lifecycle order
var ProjectStatuses = []ProjectStatus{ProjectOpen, ProjectInProgress, ProjectFinished}

// IsValid reports whether s is a known project status
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectOpen, ProjectInProgress, ProjectFinished:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Projects only move forward: open → in-progress → finished.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	switch s {
	case ProjectOpen:
		return next == ProjectInProgress
	case ProjectInProgress:
		return next == ProjectFinished
	}
	return false
}

// Project represents an extension-program activity students can join
type Project struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Area                string        `json:"area"`
	Description         string        `json:"description"`
	TotalHours          int           `json:"totalHours"`
	WeeklyHours         int           `json:"weeklyHours"`
	StartDate           Date          `json:"startDate"`
	EndDate             Date          `json:"endDate"`
	Courses             []string      `json:"courses"`
	Coordinator         string        `json:"coordinator"`
	Status              ProjectStatus `json:"status"`
	MaxParticipants     int           `json:"maxParticipants"`
	CurrentParticipants int           `json:"currentParticipants"`
}

// IsOpen returns true if the project accepts enrollments
func (p *Project) IsOpen() bool {
	return p.Status == ProjectOpen
}

// IsFull returns true when every participant slot is taken.
// Projects with no declared capacity are never full.
func (p *Project) IsFull() bool {
	if p.MaxParticipants <= 0 {
		return false
	}
	return p.CurrentParticipants >= p.MaxParticipants
}

// AvailableSlots returns the number of free participant slots (never negative)
func (p *Project) AvailableSlots() int {
	free := p.MaxParticipants - p.CurrentParticipants
	if free < 0 {
		return 0
	}
	return free
}
