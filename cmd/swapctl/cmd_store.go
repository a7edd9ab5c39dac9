package main

import (
	"context"
	"time"

	"skillswap/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var timeout time.Duration

// migrateCmd applies the embedded SQL migrations, or the unique indexes
// when the store is MongoDB.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			return c.Migrate(ctx)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the default skill catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			return c.Seed(ctx)
		})
	},
}

func init() {
	migrateCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
	seedCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
}

func withContainer(parent context.Context, fn func(context.Context, *app.Container) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	start := time.Now()
	if err := fn(ctx, c); err != nil {
		return err
	}
	logger.Info("done",
		zap.String("store", cfg.Database.Driver),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
