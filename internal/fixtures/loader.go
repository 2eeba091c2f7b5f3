package fixtures

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/extension-portal/internal/models"
)

//go:embed data/*.yaml
var defaultData embed.FS

// Loader reads the portal collections from YAML files and holds the last
// successfully loaded dataset.
type Loader struct {
	mu      sync.RWMutex
	dataset models.Dataset
	source  string
}

// NewLoader creates an empty loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadDefaults loads the dataset embedded in the binary
func (l *Loader) LoadDefaults() error {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return fmt.Errorf("failed to open embedded fixtures: %w", err)
	}
	return l.load(sub, "embedded")
}

// LoadFromDir loads the dataset from a directory on disk
func (l *Loader) LoadFromDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("fixtures directory: %w", err)
	}
	return l.load(os.DirFS(dir), dir)
}

// LoadFromFS loads the dataset from an arbitrary filesystem.
// projects.yaml is required; enrollments, certificates and students are optional.
func (l *Loader) LoadFromFS(fsys fs.FS) error {
	return l.load(fsys, "fs")
}

func (l *Loader) load(fsys fs.FS, source string) error {
	slog.Info("loading fixtures", "source", source)

	var pf projectsFile
	found, err := readYAML(fsys, "projects", &pf)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("projects.yaml not found in %s", source)
	}

	var ef enrollmentsFile
	if _, err := readYAML(fsys, "enrollments", &ef); err != nil {
		return err
	}
	var cf certificatesFile
	if _, err := readYAML(fsys, "certificates", &cf); err != nil {
		return err
	}
	var sf studentsFile
	if _, err := readYAML(fsys, "students", &sf); err != nil {
		return err
	}

	ds := models.Dataset{
		Projects:     convertAll("project", pf.Projects, projectRecord.toModel),
		Enrollments:  convertAll("enrollment", ef.Enrollments, enrollmentRecord.toModel),
		Certificates: convertAll("certificate", cf.Certificates, certificateRecord.toModel),
		Students:     convertAll("student", sf.Students, studentRecord.toModel),
	}

	known := make(map[string]bool, len(ds.Projects))
	for _, p := range ds.Projects {
		known[p.ID] = true
	}
	for _, e := range ds.Enrollments {
		if !known[e.ProjectID] {
			slog.Warn("enrollment references unknown project", "enrollment", e.ID, "project", e.ProjectID)
		}
	}

	l.mu.Lock()
	l.dataset = ds
	l.source = source
	l.mu.Unlock()

	slog.Info("fixtures loaded",
		"source", source,
		"projects", len(ds.Projects),
		"enrollments", len(ds.Enrollments),
		"certificates", len(ds.Certificates),
		"students", len(ds.Students))
	return nil
}

// Snapshot returns a copy of the loaded collections
func (l *Loader) Snapshot() models.Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return models.Dataset{
		Projects:     slices.Clone(l.dataset.Projects),
		Enrollments:  slices.Clone(l.dataset.Enrollments),
		Certificates: slices.Clone(l.dataset.Certificates),
		Students:     slices.Clone(l.dataset.Students),
	}
}

// Source describes where the current dataset came from
func (l *Loader) Source() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.source
}

// readYAML decodes <name>.yaml or <name>.yml into out.
// It reports false when neither file exists.
func readYAML(fsys fs.FS, name string, out any) (bool, error) {
	for _, file := range []string{name + ".yaml", name + ".yml"} {
		data, err := fs.ReadFile(fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", file, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return false, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		return true, nil
	}
	return false, nil
}

// keyed is a YAML entry identified by its ID
type keyed interface {
	key() string
}

// convertAll converts records in file order, skipping invalid entries and
// repeated IDs with a warning.
func convertAll[R keyed, T any](kind string, records []R, convert func(R) (T, error)) []T {
	seen := make(map[string]bool, len(records))
	out := make([]T, 0, len(records))
	for i, r := range records {
		id := r.key()
		if id == "" {
			slog.Warn("skipping "+kind+" without id", "index", i)
			continue
		}
		if seen[id] {
			slog.Warn("skipping duplicate "+kind, "id", id)
			continue
		}
		m, err := convert(r)
		if err != nil {
			slog.Warn("skipping invalid "+kind, "id", id, "error", err)
			continue
		}
		seen[id] = true
		out = append(out, m)
	}
	return out
}

// optionalDate parses a date that may be left blank
func optionalDate(field, raw string) (models.Date, error) {
	if raw == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// --- YAML file structs ---

type projectsFile struct {
	Projects []projectRecord `yaml:"projects"`
}

type projectRecord struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	Area                string   `yaml:"area"`
	Description         string   `yaml:"description"`
	TotalHours          int      `yaml:"total_hours"`
	WeeklyHours         int      `yaml:"weekly_hours"`
	StartDate           string   `yaml:"start_date"`
	EndDate             string   `yaml:"end_date"`
	Courses             []string `yaml:"courses"`
	Coordinator         string   `yaml:"coordinator"`
	Status              string   `yaml:"status"`
	MaxParticipants     int      `yaml:"max_participants"`
	CurrentParticipants int      `yaml:"current_participants"`
}

func (r projectRecord) key() string { return r.ID }

func (r projectRecord) toModel() (models.Project, error) {
	status := models.ProjectStatus(r.Status)
	if !status.IsValid() {
		return models.Project{}, fmt.Errorf("unknown status %q", r.Status)
	}
	if r.Name == "" {
		return models.Project{}, fmt.Errorf("name is required")
	}
	start, err := optionalDate("start_date", r.StartDate)
	if err != nil {
		return models.Project{}, err
	}
	end, err := optionalDate("end_date", r.EndDate)
	if err != nil {
		return models.Project{}, err
	}
	courses := r.Courses
	if courses == nil {
		courses = []string{}
	}

	return models.Project{
		ID:                  r.ID,
		Name:                r.Name,
		Area:                r.Area,
		Description:         r.Description,
		TotalHours:          r.TotalHours,
		WeeklyHours:         r.WeeklyHours,
		StartDate:           start,
		EndDate:             end,
		Courses:             courses,
		Coordinator:         r.Coordinator,
		Status:              status,
		MaxParticipants:     r.MaxParticipants,
		CurrentParticipants: r.CurrentParticipants,
	}, nil
}

type enrollmentsFile struct {
	Enrollments []enrollmentRecord `yaml:"enrollments"`
}

type enrollmentRecord struct {
	ID             string `yaml:"id"`
	ProjectID      string `yaml:"project_id"`
	StudentID      string `yaml:"student_id"`
	Status         string `yaml:"status"`
	EnrollmentDate string `yaml:"enrollment_date"`
	Motivation     string `yaml:"motivation"`
}

func (r enrollmentRecord) key() string { return r.ID }

func (r enrollmentRecord) toModel() (models.Enrollment, error) {
	status := models.EnrollmentStatus(r.Status)
	if !status.IsValid() {
		return models.Enrollment{}, fmt.Errorf("unknown status %q", r.Status)
	}
	date, err := optionalDate("enrollment_date", r.EnrollmentDate)
	if err != nil {
		return models.Enrollment{}, err
	}
	return models.Enrollment{
		ID:             r.ID,
		ProjectID:      r.ProjectID,
		StudentID:      r.StudentID,
		Status:         status,
		EnrollmentDate: date,
		Motivation:     r.Motivation,
	}, nil
}

type certificatesFile struct {
	Certificates []certificateRecord `yaml:"certificates"`
}

type certificateRecord struct {
	ID             string `yaml:"id"`
	ProjectID      string `yaml:"project_id"`
	StudentName    string `yaml:"student_name"`
	ProjectName    string `yaml:"project_name"`
	Coordinator    string `yaml:"coordinator"`
	TotalHours     int    `yaml:"total_hours"`
	CompletionDate string `yaml:"completion_date"`
	IssueDate      string `yaml:"issue_date"`
}

func (r certificateRecord) key() string { return r.ID }

func (r certificateRecord) toModel() (models.Certificate, error) {
	completed, err := optionalDate("completion_date", r.CompletionDate)
	if err != nil {
		return models.Certificate{}, err
	}
	issued, err := optionalDate("issue_date", r.IssueDate)
	if err != nil {
		return models.Certificate{}, err
	}
	return models.Certificate{
		ID:             r.ID,
		ProjectID:      r.ProjectID,
		StudentName:    r.StudentName,
		ProjectName:    r.ProjectName,
		Coordinator:    r.Coordinator,
		TotalHours:     r.TotalHours,
		CompletionDate: completed,
		IssueDate:      issued,
	}, nil
}

type studentsFile struct {
	Students []studentRecord `yaml:"students"`
}

type studentRecord struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	Course string `yaml:"course"`
	Period int    `yaml:"period"`
	Phone  string `yaml:"phone"`
}

func (r studentRecord) key() string { return r.ID }

func (r studentRecord) toModel() (models.Student, error) {
	if r.Name == "" {
		return models.Student{}, fmt.Errorf("name is required")
	}
	return models.Student(r), nil
}
