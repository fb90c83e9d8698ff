package cli

import (
	"context"
	"fmt"
	"time"

	"job-match/internal/catalog"
	dbpostgres "job-match/internal/database/postgres"
	"job-match/internal/database/seeder"
	"job-match/internal/infrastructure/cache"
	"job-match/internal/metrics"
	"job-match/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const importWorkers = 4

func newImportCommand(opts *rootOptions) *cobra.Command {
	var (
		files  []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a job catalog CSV into postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			jobs, err := catalog.LoadFiles(cmd.Context(), files, importWorkers)
			if err != nil {
				return fmt.Errorf("parse catalog: %w", err)
			}
			log.Info("catalog parsed", zap.Strings("files", files), zap.Int("jobs", len(jobs)))

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d jobs parsed from %d file(s)\n", len(jobs), len(files))
				return nil
			}
			if !cfg.Database.Enabled() {
				return errDatabaseRequired
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			pool, err := dbpostgres.Connect(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			runner := seeder.Runner{Seeders: []seeder.Seeder{seeder.JobCatalogSeeder{Jobs: jobs}}, Logger: log}
			if err := runner.Run(ctx, pool); err != nil {
				return err
			}
			metrics.CatalogImportedJobs.Add(float64(len(jobs)))

			if cfg.Redis.Enabled() {
				rc := cache.NewRedis(ctx, cfg.Redis, log)
				defer func() { _ = rc.Close() }()
				if err := rc.DeleteByPattern(ctx, usecase.RankedJobsAllPattern()); err != nil {
					log.Warn("invalidate ranked jobs", zap.Error(err))
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d jobs imported from %d file(s)\n", len(jobs), len(files))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "catalog CSV export to import; repeat for several files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without writing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
