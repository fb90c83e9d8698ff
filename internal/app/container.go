package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-match/internal/catalog"
	"job-match/internal/config"
	"job-match/internal/database"
	dbpostgres "job-match/internal/database/postgres"
	"job-match/internal/domain/job"
	"job-match/internal/infrastructure/cache"
	"job-match/internal/pkg/jwt"
	"job-match/internal/repository"
	"job-match/internal/repository/memory"
	"job-match/internal/usecase"

	"go.uber.org/zap"
)

const catalogLoadWorkers = 4

// Container owns the long-lived dependencies. DB is nil when no database host is
// configured and the stores live in memory; Cache is nil when Redis is disabled.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Cache *cache.Redis
	JWT   *jwt.HMACService

	Jobs         repository.JobRepository
	Skills       repository.CandidateSkillRepository
	Applications repository.TrackedApplicationRepository

	JobList         *usecase.JobList
	Matching        *usecase.Matching
	CandidateSkills *usecase.CandidateSkills
	Tracker         *usecase.Tracker
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
	}

	if cfg.Database.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Jobs = repository.NewPostgresJobRepository(db)
		c.Skills = repository.NewPostgresCandidateSkillRepository(db)
		c.Applications = repository.NewPostgresTrackedApplicationRepository(db)
		logger.Info("using postgres storage", zap.String("host", cfg.Database.DBHost), zap.String("db", cfg.Database.DBName))
	} else {
		jobs, err := preloadCatalog(ctx, cfg.Catalog.CSVPath)
		if err != nil {
			return nil, err
		}
		c.Jobs = memory.NewJobCatalog(jobs...)
		c.Skills = memory.NewCandidateSkillStore()
		c.Applications = memory.NewTrackedApplicationStore()
		logger.Info("using in-memory storage", zap.Int("catalog_jobs", len(jobs)))
	}

	var searchCache usecase.SearchCache
	if cfg.Redis.Enabled() {
		c.Cache = cache.NewRedis(ctx, cfg.Redis, logger)
		searchCache = c.Cache
	}

	c.JobList = usecase.NewJobListUsecase(c.Jobs, c.Skills, searchCache, logger)
	c.Matching = usecase.NewMatchingUsecase(c.Jobs, c.Skills, nil, logger)
	c.CandidateSkills = usecase.NewCandidateSkillUsecase(c.Skills, searchCache, logger)
	c.Tracker = usecase.NewTrackerUsecase(c.Applications, cfg.Tracker.StrictTransitions, logger)

	return c, nil
}

// preloadCatalog reads CATALOG_CSV, a comma separated list of exports.
func preloadCatalog(ctx context.Context, paths string) ([]job.Job, error) {
	files := catalog.SplitPaths(paths)
	if len(files) == 0 {
		return nil, nil
	}
	jobs, err := catalog.LoadFiles(ctx, files, catalogLoadWorkers)
	if err != nil {
		return nil, fmt.Errorf("preload catalog: %w", err)
	}
	return jobs, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}
