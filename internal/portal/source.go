package portal

import (
	"context"
	"fmt"

	"github.com/terra-clan/extension-portal/internal/fixtures"
	"github.com/terra-clan/extension-portal/internal/models"
	"github.com/terra-clan/extension-portal/internal/storage"
)

// Source supplies the portal collections
type Source interface {
	Load(ctx context.Context) (models.Dataset, error)
	Name() string
}

// FixtureSource reads the collections from YAML fixtures. An empty Dir uses
// the dataset compiled into the binary.
type FixtureSource struct {
	Loader *fixtures.Loader
	Dir    string
}

// NewFixtureSource creates a fixture source over a fresh loader
func NewFixtureSource(dir string) *FixtureSource {
	return &FixtureSource{Loader: fixtures.NewLoader(), Dir: dir}
}

// Load re-reads the fixtures and returns a snapshot
func (s *FixtureSource) Load(_ context.Context) (models.Dataset, error) {
	var err error
	if s.Dir == "" {
		err = s.Loader.LoadDefaults()
	} else {
		err = s.Loader.LoadFromDir(s.Dir)
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load fixtures: %w", err)
	}
	return s.Loader.Snapshot(), nil
}

// Name describes the source
func (s *FixtureSource) Name() string {
	if s.Dir == "" {
		return "fixtures:embedded"
	}
	return "fixtures:" + s.Dir
}

// RepositorySource reads the collections from the database
type RepositorySource struct {
	Repo storage.Repository
}

// Load reads every collection from the repository
func (s *RepositorySource) Load(ctx context.Context) (models.Dataset, error) {
	ds, err := s.Repo.LoadDataset(ctx)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load dataset from database: %w", err)
	}
	return ds, nil
}

// Name describes the source
func (s *RepositorySource) Name() string {
	return "postgres"
}

// StaticSource serves a fixed dataset
type StaticSource struct {
	Dataset models.Dataset
}

// Load returns the fixed dataset
func (s StaticSource) Load(context.Context) (models.Dataset, error) {
	return s.Dataset, nil
}

// Name describes the source
func (s StaticSource) Name() string {
	return "static"
}
