package cli

import (
	"context"
	"errors"
	"time"

	"job-match/internal/database/migration"
	dbpostgres "job-match/internal/database/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errDatabaseRequired = errors.New("DB_HOST is not set; this command needs postgres")

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.Database.Enabled() {
				return errDatabaseRequired
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			pool, err := dbpostgres.Connect(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := migration.Runner{FS: migration.Embedded(), Logger: log}.Run(ctx, pool.SQLDB())
			if err != nil {
				return err
			}
			log.Info("migrations complete", zap.Int("applied", applied))
			return nil
		},
	}
}
