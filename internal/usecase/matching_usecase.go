package usecase

import (
	"context"
	"errors"

	"job-match/internal/domain/matching"
	"job-match/internal/domain/turnover"
	"job-match/internal/metrics"
	"job-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JobMatch struct {
	JobID        uuid.UUID
	JobTitle     string
	Company      string
	TurnoverRate int
	Result       matching.Result
}

type MatchingUsecase interface {
	CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (JobMatch, error)
}

type Matching struct {
	jobs     repository.JobRepository
	skills   repository.CandidateSkillRepository
	matcher  *matching.Matcher
	turnover turnover.Estimator
	logger   *zap.Logger
}

func NewMatchingUsecase(jobs repository.JobRepository, skills repository.CandidateSkillRepository, matcher *matching.Matcher, logger *zap.Logger) *Matching {
	if matcher == nil {
		matcher = matching.NewMatcher(matching.SubstringEquivalence{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{jobs: jobs, skills: skills, matcher: matcher, turnover: turnover.HashEstimator{}, logger: logger}
}

// CalculateMatch scores one job against the user's saved skills. A user without skills
// scores zero rather than failing.
func (u *Matching) CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (JobMatch, error) {
	if userID == uuid.Nil {
		return JobMatch{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return JobMatch{}, ErrJobNotFound
	}

	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobMatch{}, ErrJobNotFound
		}
		u.logger.Error("find job", zap.Stringer("job_id", jobID), zap.Error(err))
		return JobMatch{}, ErrInternal
	}

	skills, err := u.skills.FindSkills(ctx, userID)
	if err != nil {
		u.logger.Error("load candidate skills", zap.Stringer("user_id", userID), zap.Error(err))
		return JobMatch{}, ErrInternal
	}

	metrics.MatchComputations.Inc()
	return JobMatch{
		JobID:        j.ID,
		JobTitle:     j.Title,
		Company:      j.Company,
		TurnoverRate: u.turnover.Estimate(j.Company),
		Result:       u.matcher.Match(skills, j.RequiredSkills),
	}, nil
}
