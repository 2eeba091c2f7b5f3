package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/terra-clan/extension-portal/internal/cache"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Redis query cache",
	}

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete every cached query result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.Redis.Enabled() {
				return errors.New("no redis configured (set REDIS_ADDRESS)")
			}

			ctx := cmd.Context()
			c, err := a.openCache(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			rc, ok := c.(*cache.RedisCache)
			if !ok {
				return fmt.Errorf("unexpected cache type %T", c)
			}
			n, err := rc.Purge(ctx)
			if err != nil {
				return err
			}

			slog.Info("cache purged", "keys", n)
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d keys\n", n)
			return nil
		},
	}

	cmd.AddCommand(purge)
	return cmd
}
