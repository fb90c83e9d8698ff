package memory

import (
	"context"
	"sync"
	"time"

	"job-match/internal/domain/tracker"
	"job-match/internal/repository"

	"github.com/google/uuid"
)

// TrackedApplicationStore keeps records in insertion order behind a mutex.
type TrackedApplicationStore struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]tracker.Application
	now   func() time.Time
}

func NewTrackedApplicationStore() *TrackedApplicationStore {
	return &TrackedApplicationStore{
		byID: make(map[uuid.UUID]tracker.Application),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.TrackedApplicationRepository = (*TrackedApplicationStore)(nil)

func (s *TrackedApplicationStore) Create(_ context.Context, a tracker.Application) (tracker.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	a.CreatedAt = ts
	a.UpdatedAt = ts
	s.byID[a.ID] = a
	s.order = append(s.order, a.ID)
	return a, nil
}

func (s *TrackedApplicationStore) FindByID(_ context.Context, id uuid.UUID) (tracker.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return tracker.Application{}, repository.ErrTrackedApplicationNotFound
	}
	return a, nil
}

func (s *TrackedApplicationStore) ListByUser(_ context.Context, userID uuid.UUID) ([]tracker.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tracker.Application, 0)
	for _, id := range s.order {
		if a := s.byID[id]; a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *TrackedApplicationStore) Update(_ context.Context, id uuid.UUID, mutate repository.MutateFunc) (tracker.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return tracker.Application{}, repository.ErrTrackedApplicationNotFound
	}
	next, err := mutate(current)
	if err != nil {
		return tracker.Application{}, err
	}
	next.ID = current.ID
	next.UserID = current.UserID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	s.byID[id] = next
	return next, nil
}

func (s *TrackedApplicationStore) Delete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok || a.UserID != userID {
		return repository.ErrTrackedApplicationNotFound
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
