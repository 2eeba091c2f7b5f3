package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/extension-portal/internal/cache"
	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/models"
)

func newLoaded(t *testing.T, c cache.Cache) *Service {
	t.Helper()
	svc := NewService(NewFixtureSource(""), c)
	require.NoError(t, svc.Reload(context.Background()))
	return svc
}

// flakySource succeeds once and fails afterwards
type flakySource struct {
	ds    models.Dataset
	calls int
}

func (s *flakySource) Load(context.Context) (models.Dataset, error) {
	s.calls++
	if s.calls > 1 {
		return models.Dataset{}, errors.New("source unavailable")
	}
	return s.ds, nil
}

func (s *flakySource) Name() string { return "flaky" }

func TestQueriesBeforeLoad(t *testing.T) {
	svc := NewService(StaticSource{}, nil)
	ctx := context.Background()

	_, err := svc.Projects(ctx, catalog.ProjectCriteria{})
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = svc.History(ctx, "1")
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, svc.HealthCheck(ctx), ErrNotLoaded)

	_, ok := svc.Project("1")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	svc := newLoaded(t, nil)

	st, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, "fixtures:embedded", st.Source)
	assert.Len(t, st.Version, 12)
	assert.Equal(t, 8, st.Projects)
	assert.Equal(t, 7, st.Enrollments)
	assert.Equal(t, 4, st.Certificates)
	assert.Equal(t, 2, st.Students)
	assert.NoError(t, svc.HealthCheck(context.Background()))
}

func TestProjects(t *testing.T) {
	svc := newLoaded(t, cache.NewMemoryCache(0, time.Minute))
	ctx := context.Background()

	all, err := svc.Projects(ctx, catalog.ProjectCriteria{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 8)
	assert.False(t, all.Filtered)

	open, err := svc.Projects(ctx, catalog.ProjectCriteria{Status: models.Only(models.ProjectOpen)})
	require.NoError(t, err)
	assert.True(t, open.Filtered)
	assert.Equal(t, 8, open.Total)
	for _, p := range open.Items {
		assert.Equal(t, models.ProjectOpen, p.Status)
	}

	computing, err := svc.Projects(ctx, catalog.ProjectCriteria{Course: models.Only("ciencia-da-computacao")})
	require.NoError(t, err)
	assert.Len(t, computing.Items, 4)
}

func TestProjectsAreMemoized(t *testing.T) {
	mem := cache.NewMemoryCache(0, time.Minute)
	svc := newLoaded(t, mem)
	ctx := context.Background()

	first, err := svc.Projects(ctx, catalog.ProjectCriteria{Search: "escolas"})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Len())

	second, err := svc.Projects(ctx, catalog.ProjectCriteria{Search: "escolas"})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Len())
	require.Len(t, second.Items, len(first.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].ID, second.Items[i].ID)
	}
	assert.Equal(t, first.Total, second.Total)
	assert.True(t, second.Filtered)
}

func TestEnrollmentsAreScopedToViewer(t *testing.T) {
	svc := newLoaded(t, cache.NewMemoryCache(0, time.Minute))
	ctx := context.Background()

	mine, err := svc.Enrollments(ctx, "1", catalog.EnrollmentCriteria{})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 6)
	assert.Equal(t, 6, mine.Total)
	assert.False(t, mine.Filtered)
	for _, v := range mine.Items {
		assert.Equal(t, "1", v.Enrollment.StudentID)
	}

	theirs, err := svc.Enrollments(ctx, "2", catalog.EnrollmentCriteria{})
	require.NoError(t, err)
	require.Len(t, theirs.Items, 1)
	assert.Equal(t, "7", theirs.Items[0].Enrollment.ID)

	approved2023, err := svc.Enrollments(ctx, "1", catalog.EnrollmentCriteria{
		Status: models.Only(models.EnrollmentApproved),
		Year:   models.Only(2023),
	})
	require.NoError(t, err)
	assert.True(t, approved2023.Filtered)
	assert.Len(t, approved2023.Items, 2)
}

func TestHistoryAndMyProjects(t *testing.T) {
	svc := newLoaded(t, nil)
	ctx := context.Background()

	history, err := svc.History(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, catalog.HistorySummary{TotalHours: 270, CompletedProjects: 3, TotalEnrollments: 6}, history)

	mine, err := svc.MyProjects(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, mine.Approved, 4)
	require.Len(t, mine.Pending, 1)
	assert.Equal(t, "1", mine.Pending[0].Project.ID)

	empty, err := svc.History(ctx, "99")
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestCertificatesAreScopedToViewer(t *testing.T) {
	svc := newLoaded(t, cache.NewMemoryCache(0, time.Minute))
	ctx := context.Background()

	mine, err := svc.Certificates(ctx, "1", catalog.CertificateCriteria{})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 3)
	assert.False(t, mine.Filtered)
	for _, c := range mine.Items {
		assert.Equal(t, "Ana Carolina Silva", c.StudentName)
	}

	theirs, err := svc.Certificates(ctx, "2", catalog.CertificateCriteria{})
	require.NoError(t, err)
	assert.Len(t, theirs.Items, 1)

	unknown, err := svc.Certificates(ctx, "99", catalog.CertificateCriteria{})
	require.NoError(t, err)
	assert.Empty(t, unknown.Items)

	in2022, err := svc.Certificates(ctx, "1", catalog.CertificateCriteria{Year: models.Only(2022)})
	require.NoError(t, err)
	assert.True(t, in2022.Filtered)
	require.Len(t, in2022.Items, 1)
	assert.Equal(t, "7", in2022.Items[0].ProjectID)
}

func TestCertificateSummaryAndLookup(t *testing.T) {
	svc := newLoaded(t, nil)
	ctx := context.Background()

	summary, err := svc.CertificateSummary(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 180, summary.TotalHours)
	require.NotNil(t, summary.LatestIssue)
	assert.Equal(t, "2024-01-10", summary.LatestIssue.String())

	cert, ok, err := svc.CertificateForProject(ctx, "1", "4")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 60, cert.TotalHours)

	_, ok, err = svc.CertificateForProject(ctx, "1", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.CertificateForProject(ctx, "99", "2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilters(t *testing.T) {
	svc := newLoaded(t, nil)

	f, err := svc.Filters(context.Background(), "1")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Areas)
	assert.NotEmpty(t, f.Courses)
	assert.Equal(t, []int{2024, 2023, 2022}, f.EnrollmentYears)
	assert.Equal(t, []int{2023, 2022}, f.CertificateYears)
	assert.Len(t, f.ProjectStatuses, 3)
	assert.Len(t, f.EnrollmentStatuses, 3)
	assert.Len(t, f.Sorts, 3)
}

func TestReloadKeepsPreviousSnapshotOnFailure(t *testing.T) {
	src := &flakySource{ds: models.Dataset{
		Projects: []models.Project{{ID: "p1", Name: "Robótica", Status: models.ProjectOpen}},
	}}
	svc := NewService(src, nil)
	ctx := context.Background()

	require.NoError(t, svc.Reload(ctx))
	before, err := svc.Stats()
	require.NoError(t, err)

	assert.Error(t, svc.Reload(ctx))

	after, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	p, ok := svc.Project("p1")
	require.True(t, ok)
	assert.Equal(t, "Robótica", p.Name)
}

func TestReloadChangesVersion(t *testing.T) {
	static := &StaticSource{Dataset: models.Dataset{
		Projects: []models.Project{{ID: "p1", Name: "Robótica", Status: models.ProjectOpen}},
	}}
	svc := NewService(static, cache.NewMemoryCache(0, time.Minute))
	ctx := context.Background()
	require.NoError(t, svc.Reload(ctx))

	first, err := svc.Projects(ctx, catalog.ProjectCriteria{})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	v1, _ := svc.Stats()

	static.Dataset.Projects = append(static.Dataset.Projects, models.Project{ID: "p2", Name: "Horta", Status: models.ProjectOpen})
	require.NoError(t, svc.Reload(ctx))

	second, err := svc.Projects(ctx, catalog.ProjectCriteria{})
	require.NoError(t, err)
	assert.Len(t, second.Items, 2, "stale memo entries must not survive a reload")
	v2, _ := svc.Stats()
	assert.NotEqual(t, v1.Version, v2.Version)
}
