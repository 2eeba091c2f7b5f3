package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/extension-portal/internal/models"
)

func sampleCertificates() []models.Certificate {
	return []models.Certificate{
		{
			ID:             "c1",
			ProjectID:      "p2",
			StudentName:    "Ana Carolina Silva",
			ProjectName:    "Horta Comunitária",
			Coordinator:    "Profa. Maria Oliveira",
			TotalHours:     40,
			CompletionDate: models.NewDate(2023, time.December, 15),
			IssueDate:      models.NewDate(2024, time.January, 10),
		},
		{
			ID:             "c2",
			ProjectID:      "p4",
			StudentName:    "Ana Carolina Silva",
			ProjectName:    "Inclusão Digital",
			Coordinator:    "Prof. Dr. João Santos",
			TotalHours:     40,
			CompletionDate: models.NewDate(2022, time.November, 30),
			IssueDate:      models.NewDate(2022, time.December, 12),
		},
		{
			ID:             "c3",
			ProjectID:      "p3",
			StudentName:    "Bruno Costa",
			ProjectName:    "Apoio Psicológico",
			Coordinator:    "Profa. Ana Lima",
			TotalHours:     80,
			CompletionDate: models.NewDate(2023, time.June, 1),
			IssueDate:      models.NewDate(2023, time.June, 20),
		},
	}
}

func certIDs(certs []models.Certificate) []string {
	out := make([]string, len(certs))
	for i, c := range certs {
		out[i] = c.ID
	}
	return out
}

func TestFindCertificateForProject(t *testing.T) {
	c, ok := FindCertificateForProject(sampleCertificates(), "p4")
	require.True(t, ok)
	assert.Equal(t, "c2", c.ID)

	_, ok = FindCertificateForProject(sampleCertificates(), "p1")
	assert.False(t, ok)
}

func TestFilterCertificates(t *testing.T) {
	year2023, err := models.ParseYear("2023")
	require.NoError(t, err)

	tests := []struct {
		name     string
		criteria CertificateCriteria
		want     []string
	}{
		{"no criteria", CertificateCriteria{}, []string{"c1", "c2", "c3"}},
		{"search project name", CertificateCriteria{Search: "inclusão"}, []string{"c2"}},
		{"search coordinator", CertificateCriteria{Search: "ana lima"}, []string{"c3"}},
		{"completion year", CertificateCriteria{Year: year2023}, []string{"c1", "c3"}},
		{"holder", CertificateCriteria{StudentName: models.Only("Ana Carolina Silva")}, []string{"c1", "c2"}},
		{"unknown holder", CertificateCriteria{StudentName: models.Only("")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterCertificates(sampleCertificates(), tt.criteria)
			assert.Equal(t, tt.want, certIDs(result.Items))
			assert.Equal(t, tt.criteria.Active(), result.Filtered)
		})
	}
}

func TestUndatedCertificatesNeverMatchAYear(t *testing.T) {
	certs := []models.Certificate{{ID: "undated", ProjectName: "Horta"}}

	assert.Len(t, FilterCertificates(certs, CertificateCriteria{}).Items, 1)
	assert.Empty(t, FilterCertificates(certs, CertificateCriteria{Year: models.Only(1)}).Items)
}

func TestCertificateHours(t *testing.T) {
	assert.Equal(t, 160, CertificateHours(sampleCertificates()))
	assert.Equal(t, 0, CertificateHours(nil))
}

func TestLatestIssueDate(t *testing.T) {
	latest, ok := LatestIssueDate(sampleCertificates())
	require.True(t, ok)
	assert.Equal(t, "2024-01-10", latest.String())

	_, ok = LatestIssueDate(nil)
	assert.False(t, ok)

	_, ok = LatestIssueDate([]models.Certificate{{ID: "undated"}})
	assert.False(t, ok)
}

func TestCertificateYears(t *testing.T) {
	assert.Equal(t, []int{2023, 2022}, CertificateYears(sampleCertificates()))
}

func TestSummarizeCertificates(t *testing.T) {
	summary := SummarizeCertificates(sampleCertificates())
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 160, summary.TotalHours)
	require.NotNil(t, summary.LatestIssue)
	assert.Equal(t, "10/01/2024", summary.LatestIssue.Local())

	empty := SummarizeCertificates(nil)
	assert.Nil(t, empty.LatestIssue)
	assert.Zero(t, empty.Count)
}
