package fixtures

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.LoadDefaults())

	ds := loader.Snapshot()
	assert.Len(t, ds.Projects, 8)
	assert.Len(t, ds.Enrollments, 7)
	assert.Len(t, ds.Certificates, 4)
	assert.Len(t, ds.Students, 2)
	assert.Equal(t, "embedded", loader.Source())

	// File order is preserved
	assert.Equal(t, "1", ds.Projects[0].ID)
	assert.Equal(t, "8", ds.Projects[7].ID)

	student, ok := ds.FindStudent("1")
	require.True(t, ok)
	assert.Equal(t, "Ana Carolina Silva", student.Name)
	assert.Equal(t, "Ciência da Computação", student.Course)

	robotics := ds.Projects[0]
	assert.Equal(t, models.ProjectOpen, robotics.Status)
	assert.Equal(t, "2024-03-01", robotics.StartDate.String())
	assert.Equal(t, 15, robotics.MaxParticipants)
}

func TestDefaultsAreConsistent(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.LoadDefaults())
	ds := loader.Snapshot()

	for _, e := range ds.Enrollments {
		_, ok := catalog.FindProjectByID(ds.Projects, e.ProjectID)
		assert.True(t, ok, "enrollment %s references unknown project %s", e.ID, e.ProjectID)
	}
	for _, c := range ds.Certificates {
		p, ok := catalog.FindProjectByID(ds.Projects, c.ProjectID)
		require.True(t, ok, "certificate %s references unknown project %s", c.ID, c.ProjectID)
		assert.Equal(t, models.ProjectFinished, p.Status, "certificate %s", c.ID)
	}

	// The course filter resolves accented course names by slug
	result := catalog.FilterProjects(ds.Projects, catalog.ProjectCriteria{
		Course: models.Only("ciencia-da-computacao"),
	})
	assert.Equal(t, 4, result.Len())
}

func TestLoadFromDirSkipsInvalidRecords(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.LoadFromDir("testdata"))

	ds := loader.Snapshot()
	require.Len(t, ds.Projects, 2)
	assert.Equal(t, "Projeto Válido", ds.Projects[0].Name)
	assert.Equal(t, "p4", ds.Projects[1].ID)
	assert.Equal(t, []string{"Enfermagem"}, ds.Projects[1].Courses)
	assert.True(t, ds.Projects[1].EndDate.IsZero())

	// Dangling references are kept; invalid statuses are not
	require.Len(t, ds.Enrollments, 2)
	assert.Equal(t, "missing", ds.Enrollments[1].ProjectID)

	assert.Empty(t, ds.Certificates)
	assert.Empty(t, ds.Students)
}

func TestLoadFromDirErrors(t *testing.T) {
	loader := NewLoader()

	assert.Error(t, loader.LoadFromDir("testdata/does-not-exist"))
	assert.Error(t, loader.LoadFromDir("testdata/broken"))
}

func TestLoadFromFSRequiresProjects(t *testing.T) {
	fsys := fstest.MapFS{
		"students.yaml": {Data: []byte("students: []\n")},
	}

	err := NewLoader().LoadFromFS(fsys)
	assert.ErrorContains(t, err, "projects.yaml")
}

func TestLoadFromFSAcceptsYmlExtension(t *testing.T) {
	fsys := fstest.MapFS{
		"projects.yml": {Data: []byte(`projects:
  - id: a
    name: Alfa
    status: open
`)},
	}

	loader := NewLoader()
	require.NoError(t, loader.LoadFromFS(fsys))

	ds := loader.Snapshot()
	require.Len(t, ds.Projects, 1)
	assert.Equal(t, []string{}, ds.Projects[0].Courses)
}

func TestFailedLoadKeepsPreviousDataset(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.LoadDefaults())

	require.Error(t, loader.LoadFromDir("testdata/broken"))

	assert.Len(t, loader.Snapshot().Projects, 8)
	assert.Equal(t, "embedded", loader.Source())
}

func TestSnapshotIsACopy(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.LoadDefaults())

	first := loader.Snapshot()
	first.Projects[0].Name = "changed"

	assert.NotEqual(t, "changed", loader.Snapshot().Projects[0].Name)
}
