package usecase

import (
	"context"
	"fmt"
	"unicode/utf8"

	"job-match/internal/domain/job"
	"job-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxCandidateSkills = 200
	maxSkillLength     = 100
)

type CandidateSkillUsecase interface {
	GetSkills(ctx context.Context, userID uuid.UUID) ([]string, error)
	ReplaceSkills(ctx context.Context, userID uuid.UUID, skills []string) ([]string, error)
}

type CandidateSkills struct {
	repo   repository.CandidateSkillRepository
	cache  SearchCache
	logger *zap.Logger
}

func NewCandidateSkillUsecase(repo repository.CandidateSkillRepository, cache SearchCache, logger *zap.Logger) *CandidateSkills {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateSkills{repo: repo, cache: cache, logger: logger}
}

func (u *CandidateSkills) GetSkills(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	skills, err := u.repo.FindSkills(ctx, userID)
	if err != nil {
		u.logger.Error("load candidate skills", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}
	return skills, nil
}

// ReplaceSkills stores the normalized list and drops the user's cached rankings.
func (u *CandidateSkills) ReplaceSkills(ctx context.Context, userID uuid.UUID, skills []string) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	normalized := job.NormalizeSkills(skills)
	if len(normalized) > maxCandidateSkills {
		return nil, fmt.Errorf("%w: at most %d skills", ErrInvalidInput, maxCandidateSkills)
	}
	for _, s := range normalized {
		if utf8.RuneCountInString(s) > maxSkillLength {
			return nil, fmt.Errorf("%w: skill longer than %d characters", ErrInvalidInput, maxSkillLength)
		}
	}

	if err := u.repo.SaveSkills(ctx, userID, normalized); err != nil {
		u.logger.Error("save candidate skills", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, RankedJobsUserPattern(userID)); err != nil {
			u.logger.Warn("invalidate ranked jobs", zap.Stringer("user_id", userID), zap.Error(err))
		}
	}
	return normalized, nil
}
