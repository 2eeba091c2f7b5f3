package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/extension-portal/internal/models"
)

func sampleEnrollments() []models.Enrollment {
	return []models.Enrollment{
		{ID: "e1", ProjectID: "p2", StudentID: "s1", Status: models.EnrollmentApproved, EnrollmentDate: models.NewDate(2023, time.July, 20)},
		{ID: "e2", ProjectID: "p1", StudentID: "s1", Status: models.EnrollmentPending, EnrollmentDate: models.NewDate(2024, time.February, 15)},
		{ID: "e3", ProjectID: "p3", StudentID: "s1", Status: models.EnrollmentApproved, EnrollmentDate: models.NewDate(2024, time.January, 30)},
		{ID: "e4", ProjectID: "p4", StudentID: "s2", Status: models.EnrollmentRejected, EnrollmentDate: models.NewDate(2022, time.April, 1)},
		{ID: "e5", ProjectID: "missing", StudentID: "s1", Status: models.EnrollmentApproved, EnrollmentDate: models.NewDate(2024, time.March, 3)},
	}
}

func viewIDs(views []models.EnrollmentView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Enrollment.ID
	}
	return out
}

func TestAggregateHoursSingleFinishedProject(t *testing.T) {
	projects := []models.Project{{ID: "p1", TotalHours: 40, Status: models.ProjectFinished}}
	enrollments := []models.Enrollment{{ID: "e1", ProjectID: "p1", Status: models.EnrollmentApproved}}

	assert.Equal(t, 40, AggregateHours(enrollments, projects, models.EnrollmentApproved))
	assert.Equal(t, 1, CountCompletedProjects(enrollments, projects))
	assert.Equal(t, 0, AggregateHours(enrollments, projects, models.EnrollmentPending))
}

func TestAggregateHoursEmpty(t *testing.T) {
	assert.Equal(t, 0, AggregateHours(nil, sampleProjects(), models.EnrollmentApproved))
	assert.Equal(t, 0, AggregateHours(sampleEnrollments(), nil, models.EnrollmentApproved))
	assert.Equal(t, 0, CountCompletedProjects(nil, nil))
}

func TestMissingProjectIsExcludedAndContributesNothing(t *testing.T) {
	enrollments := []models.Enrollment{{ID: "e1", ProjectID: "missing", Status: models.EnrollmentApproved}}

	result := FilterEnrollments(enrollments, sampleProjects(), EnrollmentCriteria{})

	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 0, AggregateHours(enrollments, sampleProjects(), models.EnrollmentApproved))
	assert.Equal(t, 0, CountCompletedProjects(enrollments, sampleProjects()))
}

func TestAggregateHoursSumsApprovedEnrollments(t *testing.T) {
	// e1 -> p2 (40h) and e3 -> p3 (80h); e5 dangles
	assert.Equal(t, 120, AggregateHours(sampleEnrollments(), sampleProjects(), models.EnrollmentApproved))
	assert.Equal(t, 60, AggregateHours(sampleEnrollments(), sampleProjects(), models.EnrollmentPending))
}

func TestCountCompletedProjectsIsMonotonic(t *testing.T) {
	projects := sampleProjects()
	enrollments := sampleEnrollments()

	prev := 0
	for i := range enrollments {
		got := CountCompletedProjects(enrollments[:i+1], projects)
		assert.GreaterOrEqual(t, got, prev, "adding %s decreased the count", enrollments[i].ID)
		prev = got
	}

	extra := models.Enrollment{ID: "e6", ProjectID: "p4", Status: models.EnrollmentApproved}
	assert.Equal(t, prev+1, CountCompletedProjects(append(enrollments, extra), projects))
}

func TestFilterEnrollments(t *testing.T) {
	year2024, err := models.ParseYear("2024")
	require.NoError(t, err)

	tests := []struct {
		name     string
		criteria EnrollmentCriteria
		want     []string
	}{
		{
			name:     "no criteria keeps every resolvable enrollment",
			criteria: EnrollmentCriteria{},
			want:     []string{"e1", "e2", "e3", "e4"},
		},
		{
			name:     "search by coordinator",
			criteria: EnrollmentCriteria{Search: "joão santos"},
			want:     []string{"e2", "e4"},
		},
		{
			name:     "search by project name",
			criteria: EnrollmentCriteria{Search: "HORTA"},
			want:     []string{"e1"},
		},
		{
			name:     "status",
			criteria: EnrollmentCriteria{Status: models.Only(models.EnrollmentApproved)},
			want:     []string{"e1", "e3"},
		},
		{
			name:     "year",
			criteria: EnrollmentCriteria{Year: year2024},
			want:     []string{"e2", "e3"},
		},
		{
			name:     "student",
			criteria: EnrollmentCriteria{StudentID: models.Only("s2")},
			want:     []string{"e4"},
		},
		{
			name: "combined",
			criteria: EnrollmentCriteria{
				Status:    models.Only(models.EnrollmentApproved),
				Year:      year2024,
				StudentID: models.Only("s1"),
			},
			want: []string{"e3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterEnrollments(sampleEnrollments(), sampleProjects(), tt.criteria)
			assert.Equal(t, tt.want, viewIDs(result.Items))
			assert.Equal(t, 5, result.Total)
		})
	}
}

func TestUndatedEnrollmentsNeverMatchAYear(t *testing.T) {
	enrollments := []models.Enrollment{
		{ID: "undated", ProjectID: "p2", StudentID: "s1", Status: models.EnrollmentPending},
		{ID: "dated", ProjectID: "p2", StudentID: "s1", Status: models.EnrollmentPending, EnrollmentDate: models.NewDate(2024, time.May, 2)},
	}

	all := FilterEnrollments(enrollments, sampleProjects(), EnrollmentCriteria{})
	assert.Equal(t, []string{"undated", "dated"}, viewIDs(all.Items))

	first := FilterEnrollments(enrollments, sampleProjects(), EnrollmentCriteria{Year: models.Only(1)})
	assert.Empty(t, first.Items)
	assert.Equal(t, []int{2024}, EnrollmentYears(enrollments))
}

func TestFilterEnrollmentsJoinsProject(t *testing.T) {
	result := FilterEnrollments(sampleEnrollments(), sampleProjects(), EnrollmentCriteria{Search: "horta"})
	require.Len(t, result.Items, 1)

	view := result.Items[0]
	assert.Equal(t, "p2", view.Project.ID)
	assert.True(t, view.IsCompleted())
	assert.False(t, view.IsActive())
}

func TestEnrollmentsByStatus(t *testing.T) {
	approved := EnrollmentsByStatus(sampleEnrollments(), sampleProjects(), models.EnrollmentApproved)
	assert.Equal(t, []string{"e1", "e3"}, viewIDs(approved))

	pending := EnrollmentsByStatus(sampleEnrollments(), sampleProjects(), models.EnrollmentPending)
	assert.Equal(t, []string{"e2"}, viewIDs(pending))
}

func TestDuplicateProjectIDsResolveToFirst(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Name: "first", TotalHours: 10},
		{ID: "p1", Name: "second", TotalHours: 99},
	}
	enrollments := []models.Enrollment{{ID: "e1", ProjectID: "p1", Status: models.EnrollmentApproved}}

	assert.Equal(t, 10, AggregateHours(enrollments, projects, models.EnrollmentApproved))
	views := EnrollmentsByStatus(enrollments, projects, models.EnrollmentApproved)
	require.Len(t, views, 1)
	assert.Equal(t, "first", views[0].Project.Name)
}

func TestEnrollmentsForStudent(t *testing.T) {
	mine := EnrollmentsForStudent(sampleEnrollments(), "s1")
	require.Len(t, mine, 4)
	assert.Equal(t, "e1", mine[0].ID)

	assert.Empty(t, EnrollmentsForStudent(sampleEnrollments(), "nobody"))
}

func TestEnrollmentYears(t *testing.T) {
	assert.Equal(t, []int{2024, 2023, 2022}, EnrollmentYears(sampleEnrollments()))
	assert.Empty(t, EnrollmentYears(nil))
}

func TestSummarizeHistory(t *testing.T) {
	summary := SummarizeHistory(sampleEnrollments(), sampleProjects())

	assert.Equal(t, HistorySummary{TotalHours: 120, CompletedProjects: 1, TotalEnrollments: 5}, summary)
}

func TestBuildMyProjects(t *testing.T) {
	mine := BuildMyProjects(EnrollmentsForStudent(sampleEnrollments(), "s1"), sampleProjects())

	assert.Equal(t, []string{"e1", "e3"}, viewIDs(mine.Approved))
	assert.Equal(t, []string{"e2"}, viewIDs(mine.Pending))
}
