package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/pg"
	"github.com/axolutions/linkbio-dashboard/pkg/userdata"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations for the users table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := loadSection[AppConfig]("app")
			if err != nil {
				return err
			}
			cfg, err := loadSection[pg.Config]("postgres")
			if err != nil {
				return err
			}
			log := logger.New(
				logger.WithEnvironment(app.Environment(), app.Name),
				logger.WithOutput(os.Stdout),
				logger.WithAttr(logger.Component("migrate")),
			)

			pool, err := pg.Connect(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to postgres: %w", err)
			}
			defer pool.Close()

			if err := pg.Migrate(ctx, pool, userdata.Migrations, cfg, log); err != nil {
				return err
			}
			log.InfoContext(ctx, "migrations applied")
			return nil
		},
	}
}
