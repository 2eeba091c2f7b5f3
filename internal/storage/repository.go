package storage

import (
	"context"

	"github.com/terra-clan/extension-portal/internal/models"
)

// Repository defines the interface for portal persistence
type Repository interface {
	// Collections
	LoadDataset(ctx context.Context) (models.Dataset, error)
	SeedDataset(ctx context.Context, ds models.Dataset) error

	// Enrollment submissions (audit only)
	RecordSubmission(ctx context.Context, s *models.Submission) error
	ListSubmissions(ctx context.Context, projectID string, limit int) ([]models.Submission, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
