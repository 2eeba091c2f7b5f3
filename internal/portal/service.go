// Package portal serves the catalog queries over an immutable snapshot of the
// portal collections. Every query is scoped to a viewing student where the
// student portal would scope it, and memoized per dataset version.
package portal

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/terra-clan/extension-portal/internal/cache"
	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/models"
)

// ErrNotLoaded is returned by queries issued before the first successful load
var ErrNotLoaded = errors.New("dataset not loaded")

// snapshot is one loaded dataset and its memo
type snapshot struct {
	ds       models.Dataset
	version  string
	memo     *cache.Memo
	loadedAt time.Time
}

// Service answers portal queries
type Service struct {
	source Source
	cache  cache.Cache

	mu      sync.RWMutex
	current *snapshot
}

// NewService creates a service over source. A nil cache disables memoization.
func NewService(source Source, c cache.Cache) *Service {
	return &Service{source: source, cache: c}
}

// Reload reads the source and swaps in the new snapshot. On failure the
// previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return err
	}

	version, err := cache.VersionOf(ds)
	if err != nil {
		return err
	}

	var memo *cache.Memo
	if s.cache != nil {
		memo = cache.NewMemo(s.cache, version)
	}

	s.mu.Lock()
	prev := s.current
	s.current = &snapshot{ds: ds, version: version, memo: memo, loadedAt: time.Now()}
	s.mu.Unlock()

	if prev == nil || prev.version != version {
		slog.Info("dataset loaded",
			"source", s.source.Name(),
			"version", version,
			"projects", len(ds.Projects),
			"enrollments", len(ds.Enrollments),
			"certificates", len(ds.Certificates))
	}
	return nil
}

func (s *Service) snap() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}

// Stats describes the loaded dataset
type Stats struct {
	Source       string    `json:"source"`
	Version      string    `json:"version"`
	LoadedAt     time.Time `json:"loadedAt"`
	Projects     int       `json:"projects"`
	Enrollments  int       `json:"enrollments"`
	Certificates int       `json:"certificates"`
	Students     int       `json:"students"`
}

// Stats returns counts for the loaded dataset
func (s *Service) Stats() (Stats, error) {
	snap, err := s.snap()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Source:       s.source.Name(),
		Version:      snap.version,
		LoadedAt:     snap.loadedAt,
		Projects:     len(snap.ds.Projects),
		Enrollments:  len(snap.ds.Enrollments),
		Certificates: len(snap.ds.Certificates),
		Students:     len(snap.ds.Students),
	}, nil
}

// HealthCheck fails until a dataset has been loaded
func (s *Service) HealthCheck(context.Context) error {
	_, err := s.snap()
	return err
}

// Dataset returns the loaded collections
func (s *Service) Dataset() (models.Dataset, error) {
	snap, err := s.snap()
	if err != nil {
		return models.Dataset{}, err
	}
	return snap.ds, nil
}

// Project looks a project up by ID
func (s *Service) Project(id string) (models.Project, bool) {
	snap, err := s.snap()
	if err != nil {
		return models.Project{}, false
	}
	return catalog.FindProjectByID(snap.ds.Projects, id)
}

// Student looks a student up by ID
func (s *Service) Student(id string) (models.Student, bool) {
	snap, err := s.snap()
	if err != nil {
		return models.Student{}, false
	}
	return snap.ds.FindStudent(id)
}

// Projects lists the projects matching c
func (s *Service) Projects(ctx context.Context, c catalog.ProjectCriteria) (catalog.Result[models.Project], error) {
	snap, err := s.snap()
	if err != nil {
		return catalog.Result[models.Project]{}, err
	}
	return cache.Do(ctx, snap.memo, "projects|"+c.Key(), func() (catalog.Result[models.Project], error) {
		return catalog.FilterProjects(snap.ds.Projects, c), nil
	})
}

// Enrollments lists the viewer's enrollments matching c. Total counts the
// viewer's enrollments only.
func (s *Service) Enrollments(ctx context.Context, studentID string, c catalog.EnrollmentCriteria) (catalog.Result[models.EnrollmentView], error) {
	snap, err := s.snap()
	if err != nil {
		return catalog.Result[models.EnrollmentView]{}, err
	}
	key := "enrollments|" + studentID + "|" + c.Key()
	return cache.Do(ctx, snap.memo, key, func() (catalog.Result[models.EnrollmentView], error) {
		mine := catalog.EnrollmentsForStudent(snap.ds.Enrollments, studentID)
		return catalog.FilterEnrollments(mine, snap.ds.Projects, c), nil
	})
}

// History returns the viewer's participation figures
func (s *Service) History(ctx context.Context, studentID string) (catalog.HistorySummary, error) {
	snap, err := s.snap()
	if err != nil {
		return catalog.HistorySummary{}, err
	}
	return cache.Do(ctx, snap.memo, "history|"+studentID, func() (catalog.HistorySummary, error) {
		mine := catalog.EnrollmentsForStudent(snap.ds.Enrollments, studentID)
		return catalog.SummarizeHistory(mine, snap.ds.Projects), nil
	})
}

// MyProjects returns the viewer's approved and pending projects
func (s *Service) MyProjects(ctx context.Context, studentID string) (catalog.MyProjects, error) {
	snap, err := s.snap()
	if err != nil {
		return catalog.MyProjects{}, err
	}
	return cache.Do(ctx, snap.memo, "my-projects|"+studentID, func() (catalog.MyProjects, error) {
		mine := catalog.EnrollmentsForStudent(snap.ds.Enrollments, studentID)
		return catalog.BuildMyProjects(mine, snap.ds.Projects), nil
	})
}

// certificatesOf returns the certificates issued to the viewer, matched by
// name. An unknown viewer only matches certificates without a holder name.
func certificatesOf(ds *models.Dataset, studentID string) []models.Certificate {
	student, _ := ds.FindStudent(studentID)
	return catalog.FilterCertificates(ds.Certificates, catalog.CertificateCriteria{
		StudentName: models.Only(student.Name),
	}).Items
}

// Certificates lists the viewer's certificates matching c
func (s *Service) Certificates(ctx context.Context, studentID string, c catalog.CertificateCriteria) (catalog.Result[models.Certificate], error) {
	snap, err := s.snap()
	if err != nil {
		return catalog.Result[models.Certificate]{}, err
	}
	key := "certificates|" + studentID + "|" + c.Key()
	return cache.Do(ctx, snap.memo, key, func() (catalog.Result[models.Certificate], error) {
		return catalog.FilterCertificates(certificatesOf(&snap.ds, studentID), c), nil
	})
}

// CertificateSummary returns the viewer's certificate figures
func (s *Service) CertificateSummary(ctx context.Context, studentID string) (catalog.CertificateSummary, error) {
	result, err := s.Certificates(ctx, studentID, catalog.CertificateCriteria{})
	if err != nil {
		return catalog.CertificateSummary{}, err
	}
	return catalog.SummarizeCertificates(result.Items), nil
}

// CertificateForProject returns the viewer's certificate for projectID
func (s *Service) CertificateForProject(ctx context.Context, studentID, projectID string) (models.Certificate, bool, error) {
	result, err := s.Certificates(ctx, studentID, catalog.CertificateCriteria{})
	if err != nil {
		return models.Certificate{}, false, err
	}
	c, ok := catalog.FindCertificateForProject(result.Items, projectID)
	return c, ok, nil
}

// Filters holds the values each listing can be narrowed by
type Filters struct {
	Areas              []catalog.Option          `json:"areas"`
	Courses            []catalog.Option          `json:"courses"`
	ProjectStatuses    []models.StatusDescriptor `json:"projectStatuses"`
	EnrollmentStatuses []models.StatusDescriptor `json:"enrollmentStatuses"`
	EnrollmentYears    []int                     `json:"enrollmentYears"`
	CertificateYears   []int                     `json:"certificateYears"`
	Sorts              []catalog.ProjectSort     `json:"sorts"`
}

// Filters returns the filter options for the viewer
func (s *Service) Filters(ctx context.Context, studentID string) (Filters, error) {
	snap, err := s.snap()
	if err != nil {
		return Filters{}, err
	}
	certs, err := s.Certificates(ctx, studentID, catalog.CertificateCriteria{})
	if err != nil {
		return Filters{}, err
	}
	return Filters{
		Areas:              catalog.Areas(snap.ds.Projects),
		Courses:            catalog.Courses(snap.ds.Projects),
		ProjectStatuses:    models.ProjectStatusOptions(),
		EnrollmentStatuses: models.EnrollmentStatusOptions(),
		EnrollmentYears:    catalog.EnrollmentYears(catalog.EnrollmentsForStudent(snap.ds.Enrollments, studentID)),
		CertificateYears:   catalog.CertificateYears(certs.Items),
		Sorts:              []catalog.ProjectSort{catalog.SortByName, catalog.SortByStart, catalog.SortByHours},
	}, nil
}
