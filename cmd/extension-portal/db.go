package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/terra-clan/extension-portal/internal/portal"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the PostgreSQL data source",
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.Database.Enabled() {
				return errNoDatabase
			}
			return a.migrate(cmd.Context())
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Replace the database collections with the fixtures",
		Long: "Loads the YAML fixtures (FIXTURES_DIR, or the dataset compiled into the binary)\n" +
			"and writes them to the database, replacing every portal collection.\n" +
			"Recorded enrollment submissions are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			src := portal.NewFixtureSource(a.cfg.Fixtures.Dir)
			ds, err := src.Load(ctx)
			if err != nil {
				return err
			}

			repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.SeedDataset(ctx, ds); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}

			slog.Info("database seeded",
				"source", src.Name(),
				"projects", len(ds.Projects),
				"enrollments", len(ds.Enrollments),
				"certificates", len(ds.Certificates),
				"students", len(ds.Students))
			return nil
		},
	}

	cmd.AddCommand(migrate, seed)
	return cmd
}
