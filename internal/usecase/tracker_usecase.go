package usecase

import (
	"context"
	"errors"
	"strings"

	"job-match/internal/domain/tracker"
	"job-match/internal/export"
	"job-match/internal/metrics"
	"job-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateApplicationInput struct {
	Company     string
	Position    string
	Status      string
	DateApplied string
	Notes       string
}

// UpdateApplicationInput is a partial update. Nil fields keep their stored value.
type UpdateApplicationInput struct {
	Company     *string
	Position    *string
	Status      *string
	DateApplied *string
	Notes       *string
}

type StatusCount struct {
	Status tracker.Status
	Count  int
}

type TrackerSummary struct {
	Total    int
	ByStatus []StatusCount
}

type TrackerUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateApplicationInput) (tracker.Application, error)
	Get(ctx context.Context, userID, applicationID uuid.UUID) (tracker.Application, error)
	Update(ctx context.Context, userID, applicationID uuid.UUID, in UpdateApplicationInput) (tracker.Application, error)
	Delete(ctx context.Context, userID, applicationID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]tracker.Application, error)
	Summary(ctx context.Context, userID uuid.UUID) (TrackerSummary, error)
	ExportRows(records []tracker.Application) []export.Row
}

type Tracker struct {
	repo   repository.TrackedApplicationRepository
	strict bool
	logger *zap.Logger
}

func NewTrackerUsecase(repo repository.TrackedApplicationRepository, strictTransitions bool, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{repo: repo, strict: strictTransitions, logger: logger}
}

func (u *Tracker) Create(ctx context.Context, userID uuid.UUID, in CreateApplicationInput) (tracker.Application, error) {
	a, err := u.create(ctx, userID, in)
	metrics.TrackerOperations.WithLabelValues("create", metrics.Result(err)).Inc()
	return a, err
}

func (u *Tracker) create(ctx context.Context, userID uuid.UUID, in CreateApplicationInput) (tracker.Application, error) {
	if userID == uuid.Nil {
		return tracker.Application{}, ErrUnauthorized
	}

	status := tracker.StatusApplied
	if s := strings.TrimSpace(in.Status); s != "" {
		st, err := tracker.ParseStatus(s)
		if err != nil {
			return tracker.Application{}, err
		}
		status = st
	}
	date, err := tracker.ParseDate(in.DateApplied)
	if err != nil {
		return tracker.Application{}, err
	}

	a := tracker.Application{
		ID:          uuid.New(),
		UserID:      userID,
		Company:     strings.TrimSpace(in.Company),
		Position:    strings.TrimSpace(in.Position),
		Status:      status,
		DateApplied: date,
		Notes:       in.Notes,
	}
	if err := a.Validate(); err != nil {
		return tracker.Application{}, err
	}

	created, err := u.repo.Create(ctx, a)
	if err != nil {
		u.logger.Error("create tracked application", zap.Stringer("user_id", userID), zap.Error(err))
		return tracker.Application{}, ErrInternal
	}
	u.logger.Info("tracked application created",
		zap.Stringer("user_id", userID),
		zap.Stringer("application_id", created.ID),
		zap.String("status", string(created.Status)),
	)
	return created, nil
}

func (u *Tracker) Get(ctx context.Context, userID, applicationID uuid.UUID) (tracker.Application, error) {
	if userID == uuid.Nil {
		return tracker.Application{}, ErrUnauthorized
	}
	a, err := u.repo.FindByID(ctx, applicationID)
	if err != nil {
		return tracker.Application{}, u.mapRepoError("find tracked application", applicationID, err)
	}
	if a.UserID != userID {
		return tracker.Application{}, ErrApplicationNotFound
	}
	return a, nil
}

// Update applies in to the stored record inside the repository's atomic section.
// Records owned by another user are reported as not found.
func (u *Tracker) Update(ctx context.Context, userID, applicationID uuid.UUID, in UpdateApplicationInput) (tracker.Application, error) {
	a, err := u.update(ctx, userID, applicationID, in)
	metrics.TrackerOperations.WithLabelValues("update", metrics.Result(err)).Inc()
	return a, err
}

func (u *Tracker) update(ctx context.Context, userID, applicationID uuid.UUID, in UpdateApplicationInput) (tracker.Application, error) {
	if userID == uuid.Nil {
		return tracker.Application{}, ErrUnauthorized
	}
	patch := tracker.Patch{
		Company:     in.Company,
		Position:    in.Position,
		Status:      in.Status,
		DateApplied: in.DateApplied,
		Notes:       in.Notes,
	}
	if patch.Empty() {
		return tracker.Application{}, &tracker.ValidationError{Field: "body", Message: "at least one field is required"}
	}

	var previous tracker.Status
	updated, err := u.repo.Update(ctx, applicationID, func(current tracker.Application) (tracker.Application, error) {
		if current.UserID != userID {
			return tracker.Application{}, ErrApplicationNotFound
		}
		previous = current.Status
		return patch.Apply(current, u.strict)
	})
	if err != nil {
		return tracker.Application{}, u.mapRepoError("update tracked application", applicationID, err)
	}

	if previous != updated.Status {
		u.logger.Info("tracked application status changed",
			zap.Stringer("application_id", updated.ID),
			zap.String("from", string(previous)),
			zap.String("to", string(updated.Status)),
		)
	}
	return updated, nil
}

func (u *Tracker) Delete(ctx context.Context, userID, applicationID uuid.UUID) error {
	err := u.delete(ctx, userID, applicationID)
	metrics.TrackerOperations.WithLabelValues("delete", metrics.Result(err)).Inc()
	return err
}

func (u *Tracker) delete(ctx context.Context, userID, applicationID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.repo.Delete(ctx, applicationID, userID); err != nil {
		return u.mapRepoError("delete tracked application", applicationID, err)
	}
	return nil
}

func (u *Tracker) ListByUser(ctx context.Context, userID uuid.UUID) ([]tracker.Application, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	apps, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Error("list tracked applications", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}
	return apps, nil
}

// Summary counts the user's applications per status. Every status is present, zero or not.
func (u *Tracker) Summary(ctx context.Context, userID uuid.UUID) (TrackerSummary, error) {
	apps, err := u.ListByUser(ctx, userID)
	if err != nil {
		return TrackerSummary{}, err
	}

	counts := make(map[tracker.Status]int, len(tracker.Statuses))
	for _, a := range apps {
		counts[a.Status]++
	}
	sum := TrackerSummary{Total: len(apps), ByStatus: make([]StatusCount, 0, len(tracker.Statuses))}
	for _, st := range tracker.Statuses {
		sum.ByStatus = append(sum.ByStatus, StatusCount{Status: st, Count: counts[st]})
	}
	return sum, nil
}

func (u *Tracker) ExportRows(records []tracker.Application) []export.Row {
	rows := make([]export.Row, 0, len(records))
	for _, a := range records {
		rows = append(rows, export.Row{
			Company:     a.Company,
			Position:    a.Position,
			Status:      string(a.Status),
			DateApplied: tracker.FormatDate(a.DateApplied),
			Notes:       a.Notes,
		})
	}
	return rows
}

func (u *Tracker) mapRepoError(op string, applicationID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, repository.ErrTrackedApplicationNotFound), errors.Is(err, ErrApplicationNotFound):
		return ErrApplicationNotFound
	case errors.Is(err, ErrValidation):
		return err
	default:
		u.logger.Error(op, zap.Stringer("application_id", applicationID), zap.Error(err))
		return ErrInternal
	}
}
