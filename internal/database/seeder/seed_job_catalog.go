package seeder

import (
	"context"

	"job-match/internal/database"
	"job-match/internal/domain/job"
	"job-match/internal/repository"
)

// JobCatalogSeeder upserts parsed catalog rows into the jobs table.
type JobCatalogSeeder struct {
	Jobs []job.Job
}

func (JobCatalogSeeder) Name() string { return "job_catalog" }

func (s JobCatalogSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "external_id", "title", "company", "location", "employment_type", "required_skills",
	); err != nil {
		return 0, err
	}
	return repository.NewPostgresJobRepository(db).Upsert(ctx, s.Jobs)
}
