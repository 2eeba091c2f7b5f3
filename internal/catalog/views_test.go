package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/extension-portal/internal/models"
)

func TestDescribeProjectsKeepsResultShape(t *testing.T) {
	result := FilterProjects(sampleProjects(), ProjectCriteria{Status: models.Only(models.ProjectOpen)})
	described := DescribeProjects(result)

	assert.Equal(t, result.Total, described.Total)
	assert.True(t, described.Filtered)
	require.Len(t, described.Items, len(result.Items))
	for i, v := range described.Items {
		assert.Equal(t, result.Items[i].ID, v.ID)
		assert.Equal(t, models.DescribeProjectStatus(models.ProjectOpen), v.Display)
	}
}

func TestDescribeEnrollments(t *testing.T) {
	described := DescribeEnrollments(FilterEnrollments(sampleEnrollments(), sampleProjects(), EnrollmentCriteria{}))

	require.Len(t, described.Items, 4)
	for _, v := range described.Items {
		assert.Equal(t, models.DescribeEnrollmentStatus(v.Enrollment.Status), v.Display)
		assert.Equal(t, models.DescribeProjectStatus(v.Project.Status), v.ProjectDisplay)
		assert.NotEmpty(t, v.Display.Description)
	}
}

func TestMyProjectsDescribe(t *testing.T) {
	mine := BuildMyProjects(EnrollmentsForStudent(sampleEnrollments(), "s1"), sampleProjects()).Describe()

	require.Len(t, mine.Approved, 2)
	require.Len(t, mine.Pending, 1)
	assert.Equal(t, "Aprovado", mine.Approved[0].Display.Label)
	assert.Equal(t, "Aguardando", mine.Pending[0].Display.Label)
	assert.Equal(t, "e2", mine.Pending[0].Enrollment.ID)
}
