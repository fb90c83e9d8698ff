package memory

import (
	"context"
	"sync"

	"job-match/internal/repository"

	"github.com/google/uuid"
)

type CandidateSkillStore struct {
	mu     sync.RWMutex
	skills map[uuid.UUID][]string
}

func NewCandidateSkillStore() *CandidateSkillStore {
	return &CandidateSkillStore{skills: make(map[uuid.UUID][]string)}
}

var _ repository.CandidateSkillRepository = (*CandidateSkillStore)(nil)

func (s *CandidateSkillStore) FindSkills(_ context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.skills[userID]))
	copy(out, s.skills[userID])
	return out, nil
}

func (s *CandidateSkillStore) SaveSkills(_ context.Context, userID uuid.UUID, skills []string) error {
	cp := make([]string, len(skills))
	copy(cp, skills)

	s.mu.Lock()
	s.skills[userID] = cp
	s.mu.Unlock()
	return nil
}
