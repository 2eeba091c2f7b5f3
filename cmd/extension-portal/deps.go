package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/terra-clan/extension-portal/internal/cache"
	"github.com/terra-clan/extension-portal/internal/portal"
	"github.com/terra-clan/extension-portal/internal/storage"
)

var errNoDatabase = errors.New("no database configured (set DATABASE_DSN)")

// openRepository connects to PostgreSQL, applying migrations first when
// auto-migration is on
func (a *app) openRepository(ctx context.Context) (*storage.PostgresRepository, error) {
	db := a.cfg.Database
	if !db.Enabled() {
		return nil, errNoDatabase
	}

	if db.AutoMigrate {
		if err := a.migrate(ctx); err != nil {
			return nil, err
		}
	}

	repo, err := storage.NewPostgresRepository(ctx, storage.PostgresConfig{
		DSN:          db.DSN,
		MaxOpenConns: int32(db.MaxOpenConns),
		MaxIdleConns: int32(db.MaxIdleConns),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create database repository: %w", err)
	}
	slog.Info("database connected successfully")
	return repo, nil
}

func (a *app) migrate(ctx context.Context) error {
	fsys, err := storage.MigrationsFS(a.cfg.Database.MigrationsDir)
	if err != nil {
		return err
	}
	slog.Info("running database migrations", "dir", a.cfg.Database.MigrationsDir)
	if err := storage.MigrateFromDSN(ctx, a.cfg.Database.DSN, fsys); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// openCache returns Redis when configured, otherwise a process-local LRU
func (a *app) openCache(ctx context.Context) (cache.Cache, error) {
	rc := a.cfg.Redis
	if !rc.Enabled() {
		return cache.NewMemoryCache(0, rc.TTL), nil
	}

	c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Address:  rc.Address,
		Password: rc.Password,
		DB:       rc.DB,
		TTL:      rc.TTL,
		Prefix:   rc.Prefix,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("redis connected successfully", "address", rc.Address)
	return c, nil
}

// source picks the database when one is configured, the fixtures otherwise
func (a *app) source(repo storage.Repository) portal.Source {
	if repo != nil {
		return &portal.RepositorySource{Repo: repo}
	}
	return portal.NewFixtureSource(a.cfg.Fixtures.Dir)
}

// loadPortal builds a portal service over the fixtures, or the database when
// one is configured, and loads it once. The returned repository is nil
// without a database.
func (a *app) loadPortal(ctx context.Context, c cache.Cache) (*portal.Service, *storage.PostgresRepository, error) {
	var repo *storage.PostgresRepository
	var src portal.Source
	if a.cfg.Database.Enabled() {
		r, err := a.openRepository(ctx)
		if err != nil {
			return nil, nil, err
		}
		repo = r
		src = a.source(r)
	} else {
		src = a.source(nil)
	}

	svc := portal.NewService(src, c)
	if err := svc.Reload(ctx); err != nil {
		if repo != nil {
			repo.Close()
		}
		return nil, nil, err
	}
	return svc, repo, nil
}
