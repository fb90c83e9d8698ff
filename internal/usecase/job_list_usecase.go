package usecase

import (
	"context"
	"errors"

	"job-match/internal/domain/job"
	"job-match/internal/domain/matching"
	"job-match/internal/domain/turnover"
	"job-match/internal/metrics"
	"job-match/internal/repository"
	"job-match/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type JobListParams struct {
	Search         string
	Location       string
	EmploymentType string
	Limit          int
	Offset         int
}

type JobListItem struct {
	Job          job.Job         `json:"job"`
	Match        matching.Result `json:"match"`
	TurnoverRate int             `json:"turnover_rate"`
}

type JobListPage struct {
	Items  []JobListItem `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type JobListUsecase interface {
	ListRankedJobs(ctx context.Context, userID uuid.UUID, params JobListParams) (JobListPage, bool, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	Stats(ctx context.Context) (job.Stats, error)
}

type JobList struct {
	jobs     repository.JobRepository
	skills   repository.CandidateSkillRepository
	matcher  *matching.Matcher
	ranker   search.Ranker
	turnover turnover.Estimator
	cache    SearchCache
	logger   *zap.Logger
}

type JobListOption func(*JobList)

func WithMatcher(m *matching.Matcher) JobListOption {
	return func(u *JobList) { u.matcher = m }
}

func WithRanker(r search.Ranker) JobListOption {
	return func(u *JobList) { u.ranker = r }
}

func WithTurnoverEstimator(e turnover.Estimator) JobListOption {
	return func(u *JobList) { u.turnover = e }
}

func NewJobListUsecase(jobs repository.JobRepository, skills repository.CandidateSkillRepository, cache SearchCache, logger *zap.Logger, opts ...JobListOption) *JobList {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &JobList{
		jobs:     jobs,
		skills:   skills,
		matcher:  matching.NewMatcher(matching.SubstringEquivalence{}),
		ranker:   search.ScoreRanker{},
		turnover: turnover.HashEstimator{},
		cache:    cache,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ListRankedJobs filters the catalog, scores what is left against the user's skills and
// returns one page ordered by match percentage. The bool reports a cache hit.
func (u *JobList) ListRankedJobs(ctx context.Context, userID uuid.UUID, params JobListParams) (JobListPage, bool, error) {
	if userID == uuid.Nil {
		return JobListPage{}, false, ErrUnauthorized
	}
	if params.Limit == 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit < 0 || params.Limit > maxListLimit || params.Offset < 0 {
		return JobListPage{}, false, ErrInvalidInput
	}

	cacheKey := RankedJobsCacheKey(userID, params)
	if u.cache != nil {
		var cached JobListPage
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Debug("ranked jobs cache hit", zap.String("key", cacheKey))
			metrics.RankedListings.WithLabelValues("hit").Inc()
			return cached, true, nil
		}
	}

	catalog, err := u.jobs.ListAll(ctx)
	if err != nil {
		u.logger.Error("load job catalog", zap.Error(err))
		return JobListPage{}, false, ErrInternal
	}
	skills, err := u.skills.FindSkills(ctx, userID)
	if err != nil {
		u.logger.Error("load candidate skills", zap.Stringer("user_id", userID), zap.Error(err))
		return JobListPage{}, false, ErrInternal
	}

	filtered := u.ranker.Filter(catalog, search.JobFilter{
		SearchTerm:     params.Search,
		Location:       params.Location,
		EmploymentType: params.EmploymentType,
	})

	results := make(map[uuid.UUID]matching.Result, len(filtered))
	scores := make(map[uuid.UUID]float64, len(filtered))
	for _, j := range filtered {
		res := u.matcher.Match(skills, j.RequiredSkills)
		results[j.ID] = res
		scores[j.ID] = res.MatchPercentage
	}
	metrics.MatchComputations.Add(float64(len(filtered)))

	ranked := u.ranker.Rank(filtered, scores)

	page := JobListPage{
		Items:  make([]JobListItem, 0, params.Limit),
		Total:  len(ranked),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for i := params.Offset; i < len(ranked) && i < params.Offset+params.Limit; i++ {
		j := ranked[i]
		page.Items = append(page.Items, JobListItem{
			Job:          j,
			Match:        results[j.ID],
			TurnoverRate: u.turnover.Estimate(j.Company),
		})
	}

	u.logger.Debug("ranked jobs computed",
		zap.Int("catalog", len(catalog)),
		zap.Int("filtered", len(filtered)),
		zap.Int("returned", len(page.Items)),
	)
	metrics.RankedListings.WithLabelValues("miss").Inc()

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, page, 0); err != nil {
			u.logger.Warn("cache ranked jobs", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return page, false, nil
}

func (u *JobList) GetJob(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	if jobID == uuid.Nil {
		return job.Job{}, ErrJobNotFound
	}
	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		u.logger.Error("find job", zap.Stringer("job_id", jobID), zap.Error(err))
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *JobList) Stats(ctx context.Context) (job.Stats, error) {
	st, err := u.jobs.Stats(ctx)
	if err != nil {
		u.logger.Error("job stats", zap.Error(err))
		return job.Stats{}, ErrInternal
	}
	return st, nil
}
