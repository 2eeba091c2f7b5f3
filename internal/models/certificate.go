package models

// Certificate is an issued completion record.
// ProjectName, Coordinator and TotalHours are copied from the project at
// issuance and are not refreshed when the project changes.
type Certificate struct {
	ID             string `json:"id"`
	ProjectID      string `json:"projectId"`
	StudentName    string `json:"studentName"`
	ProjectName    string `json:"projectName"`
	Coordinator    string `json:"coordinator"`
	TotalHours     int    `json:"totalHours"`
	CompletionDate Date   `json:"completionDate"`
	IssueDate      Date   `json:"issueDate"`
}

// Student represents a student profile
type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
	Period int    `json:"period"`
	Phone  string `json:"phone"`
}

// Dataset holds the read-only collections the portal serves
type Dataset struct {
	Projects     []Project     `json:"projects"`
	Enrollments  []Enrollment  `json:"enrollments"`
	Certificates []Certificate `json:"certificates"`
	Students     []Student     `json:"students"`
}

// FindStudent returns the student with the given ID
func (d *Dataset) FindStudent(id string) (Student, bool) {
	for _, s := range d.Students {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}
