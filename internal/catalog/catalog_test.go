package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/extension-portal/internal/models"
)

func sampleProjects() []models.Project {
	return []models.Project{
		{
			ID:          "p1",
			Name:        "Robótica nas Escolas",
			Area:        "Educação",
			Description: "Oficinas de robótica para alunos do ensino médio",
			TotalHours:  60,
			StartDate:   models.NewDate(2024, time.March, 1),
			Courses:     []string{"Ciência da Computação", "Engenharia de Software"},
			Coordinator: "Prof. Dr. João Santos",
			Status:      models.ProjectOpen,
		},
		{
			ID:          "p2",
			Name:        "Horta Comunitária",
			Area:        "Meio Ambiente",
			Description: "Cultivo sustentável com a comunidade local",
			TotalHours:  40,
			StartDate:   models.NewDate(2023, time.August, 10),
			Courses:     []string{"Agronomia"},
			Coordinator: "Profa. Maria Oliveira",
			Status:      models.ProjectFinished,
		},
		{
			ID:          "p3",
			Name:        "Apoio Psicológico",
			Area:        "Saúde",
			Description: "Acolhimento e escuta para estudantes",
			TotalHours:  80,
			StartDate:   models.NewDate(2024, time.February, 5),
			Courses:     []string{"Psicologia"},
			Coordinator: "Profa. Ana Lima",
			Status:      models.ProjectInProgress,
		},
		{
			ID:          "p4",
			Name:        "Inclusão Digital",
			Area:        "Educação",
			Description: "Cursos de informática básica para idosos",
			TotalHours:  40,
			StartDate:   models.NewDate(2022, time.May, 2),
			Courses:     []string{"Sistemas de Informação", "Ciência da Computação"},
			Coordinator: "Prof. Dr. João Santos",
			Status:      models.ProjectFinished,
		},
	}
}

func ids(projects []models.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ciência da Computação", "ciencia-da-computacao"},
		{"Engenharia   de\tSoftware", "engenharia-de-software"},
		{"  Meio Ambiente ", "meio-ambiente"},
		{"ÁREA DA SAÚDE", "area-da-saude"},
		{"Educação", "educacao"},
		{"ciencia-da-computacao", "ciencia-da-computacao"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	for _, p := range sampleProjects() {
		for _, s := range append([]string{p.Area, p.Name}, p.Courses...) {
			once := Slugify(s)
			assert.Equal(t, once, Slugify(once), "slug of %q", s)
		}
	}
}

func TestFilterProjectsUnsetCriteriaReturnsEverything(t *testing.T) {
	projects := sampleProjects()

	result := FilterProjects(projects, ProjectCriteria{})

	assert.False(t, result.Filtered)
	assert.Equal(t, len(projects), result.Total)
	if diff := cmp.Diff(projects, result.Items); diff != "" {
		t.Errorf("unfiltered result differs from input (-want +got):\n%s", diff)
	}
}

func TestFilterProjectsSearchMatchesDescriptionSubstring(t *testing.T) {
	for _, p := range sampleProjects() {
		words := strings.Fields(p.Description)
		needle := strings.ToUpper(words[len(words)-1])

		result := FilterProjects([]models.Project{p}, ProjectCriteria{Search: needle})

		require.Len(t, result.Items, 1, "search %q should match %s", needle, p.ID)
		assert.True(t, result.Filtered)
	}
}

func TestFilterProjects(t *testing.T) {
	tests := []struct {
		name     string
		criteria ProjectCriteria
		want     []string
	}{
		{
			name:     "search by name is case-insensitive",
			criteria: ProjectCriteria{Search: "robótica"},
			want:     []string{"p1"},
		},
		{
			name:     "area matches by slug",
			criteria: ProjectCriteria{Area: models.Only("educacao")},
			want:     []string{"p1", "p4"},
		},
		{
			name:     "area display value is slugged too",
			criteria: ProjectCriteria{Area: models.Only("Meio Ambiente")},
			want:     []string{"p2"},
		},
		{
			name:     "status is exact",
			criteria: ProjectCriteria{Status: models.Only(models.ProjectFinished)},
			want:     []string{"p2", "p4"},
		},
		{
			name:     "course slug matches accented course name",
			criteria: ProjectCriteria{Course: models.Only("ciencia-da-computacao")},
			want:     []string{"p1", "p4"},
		},
		{
			name: "criteria combine with AND",
			criteria: ProjectCriteria{
				Area:   models.Only("educacao"),
				Status: models.Only(models.ProjectFinished),
				Course: models.Only("ciencia-da-computacao"),
			},
			want: []string{"p4"},
		},
		{
			name:     "nothing matches",
			criteria: ProjectCriteria{Search: "astronomia"},
			want:     []string{},
		},
		{
			name:     "empty area value only matches empty areas",
			criteria: ProjectCriteria{Area: models.Only("")},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterProjects(sampleProjects(), tt.criteria)
			assert.Equal(t, tt.want, ids(result.Items))
			assert.True(t, result.Filtered)
		})
	}
}

func TestFilterProjectsEmptyResultIsDistinguishable(t *testing.T) {
	none := FilterProjects(sampleProjects(), ProjectCriteria{Search: "astronomia"})
	all := FilterProjects(nil, ProjectCriteria{})

	assert.True(t, none.Empty())
	assert.True(t, none.Filtered)
	assert.True(t, all.Empty())
	assert.False(t, all.Filtered)
	assert.NotNil(t, none.Items)
}

func TestFilterProjectsIsIdempotent(t *testing.T) {
	criteria := []ProjectCriteria{
		{},
		{Search: "a"},
		{Area: models.Only("educacao"), Sort: SortByName},
		{Status: models.Only(models.ProjectOpen)},
		{Course: models.Only("psicologia"), Sort: SortByHours},
	}

	for _, c := range criteria {
		once := FilterProjects(sampleProjects(), c)
		twice := FilterProjects(once.Items, c)
		if diff := cmp.Diff(once.Items, twice.Items); diff != "" {
			t.Errorf("criteria %s not idempotent (-once +twice):\n%s", c.Key(), diff)
		}
	}
}

func TestFilterProjectsDoesNotMutateInput(t *testing.T) {
	projects := sampleProjects()
	before := ids(projects)

	FilterProjects(projects, ProjectCriteria{Sort: SortByHours})

	assert.Equal(t, before, ids(projects))
}

func TestSortProjects(t *testing.T) {
	projects := sampleProjects()

	assert.Equal(t, []string{"p3", "p2", "p4", "p1"}, ids(SortProjects(projects, SortByName)))
	assert.Equal(t, []string{"p4", "p2", "p3", "p1"}, ids(SortProjects(projects, SortByStart)))
	// p2 and p4 tie on hours and keep their order
	assert.Equal(t, []string{"p3", "p1", "p2", "p4"}, ids(SortProjects(projects, SortByHours)))
	assert.Equal(t, ids(projects), ids(SortProjects(projects, SortNone)))
}

func TestFindProjectByID(t *testing.T) {
	p, ok := FindProjectByID(sampleProjects(), "p3")
	require.True(t, ok)
	assert.Equal(t, "Apoio Psicológico", p.Name)

	_, ok = FindProjectByID(sampleProjects(), "missing")
	assert.False(t, ok)

	_, ok = FindProjectByID(nil, "p1")
	assert.False(t, ok)
}

func TestAreasAndCourses(t *testing.T) {
	areas := Areas(sampleProjects())
	assert.Equal(t, []Option{
		{Label: "Educação", Value: "educacao"},
		{Label: "Meio Ambiente", Value: "meio-ambiente"},
		{Label: "Saúde", Value: "saude"},
	}, areas)

	courses := Courses(sampleProjects())
	require.Len(t, courses, 5)
	assert.Equal(t, "ciencia-da-computacao", courses[0].Value)
	assert.Equal(t, "sistemas-de-informacao", courses[4].Value)
}

func TestParseProjectSort(t *testing.T) {
	s, err := ParseProjectSort("hours")
	require.NoError(t, err)
	assert.Equal(t, SortByHours, s)

	_, err = ParseProjectSort("random")
	assert.Error(t, err)
}

func TestCriteriaKeysDistinguishAnyFromLiteralAll(t *testing.T) {
	a := ProjectCriteria{Area: models.Any[string]()}
	b := ProjectCriteria{Area: models.Only("all")}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestParseCriteria(t *testing.T) {
	pc, err := ParseProjectCriteria("  robótica ", "all", "open", "", "name")
	require.NoError(t, err)
	assert.Equal(t, "robótica", pc.Search)
	assert.True(t, pc.Area.IsAny())
	assert.True(t, pc.Course.IsAny())
	assert.Equal(t, models.Only(models.ProjectOpen), pc.Status)
	assert.Equal(t, SortByName, pc.Sort)

	_, err = ParseProjectCriteria("", "", "archived", "", "")
	assert.Error(t, err)
	_, err = ParseProjectCriteria("", "", "", "", "newest")
	assert.Error(t, err)

	ec, err := ParseEnrollmentCriteria("", "approved", "2023")
	require.NoError(t, err)
	assert.Equal(t, models.Only(2023), ec.Year)
	assert.True(t, ec.StudentID.IsAny())

	_, err = ParseEnrollmentCriteria("", "", "twenty")
	assert.Error(t, err)

	cc, err := ParseCertificateCriteria("", "all")
	require.NoError(t, err)
	assert.False(t, cc.Active())
}
