package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusApplied            Status = "Applied"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusInterviewCompleted Status = "Interview Completed"
	StatusOfferReceived      Status = "Offer Received"
	StatusRejected           Status = "Rejected"
	StatusWithdrawn          Status = "Withdrawn"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusApplied,
	StatusInterviewScheduled,
	StatusInterviewCompleted,
	StatusOfferReceived,
	StatusRejected,
	StatusWithdrawn,
}

var suggested = map[Status][]Status{
	StatusApplied:            {StatusInterviewScheduled, StatusRejected, StatusWithdrawn},
	StatusInterviewScheduled: {StatusInterviewCompleted, StatusRejected, StatusWithdrawn},
	StatusInterviewCompleted: {StatusOfferReceived, StatusRejected, StatusWithdrawn},
}

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("application not found")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

type Application struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Company     string
	Position    string
	Status      Status
	DateApplied time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", invalid("status", fmt.Sprintf("unknown status %q", s))
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Next returns the statuses usually reached from s. Offer Received, Rejected and
// Withdrawn have none.
func (s Status) Next() []Status {
	out := make([]Status, len(suggested[s]))
	copy(out, suggested[s])
	return out
}

// CanTransition reports whether to is a suggested successor of from. Keeping the same
// status is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, n := range suggested[from] {
		if n == to {
			return true
		}
	}
	return false
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, invalid("date_applied", "is required")
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalid("date_applied", "must be a calendar date in YYYY-MM-DD format")
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Validate checks the fields every stored application must satisfy.
func (a Application) Validate() error {
	if strings.TrimSpace(a.Company) == "" {
		return invalid("company", "is required")
	}
	if strings.TrimSpace(a.Position) == "" {
		return invalid("position", "is required")
	}
	if !a.Status.Valid() {
		return invalid("status", fmt.Sprintf("unknown status %q", a.Status))
	}
	if a.DateApplied.IsZero() {
		return invalid("date_applied", "is required")
	}
	return nil
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Company     *string
	Position    *string
	Status      *string
	DateApplied *string
	Notes       *string
}

func (p Patch) Empty() bool {
	return p.Company == nil && p.Position == nil && p.Status == nil && p.DateApplied == nil && p.Notes == nil
}

// Apply merges p into a copy of a and validates the result. With strict set, a status
// change must follow a suggested transition.
func (p Patch) Apply(a Application, strict bool) (Application, error) {
	next := a
	if p.Company != nil {
		next.Company = strings.TrimSpace(*p.Company)
	}
	if p.Position != nil {
		next.Position = strings.TrimSpace(*p.Position)
	}
	if p.Status != nil {
		st, err := ParseStatus(strings.TrimSpace(*p.Status))
		if err != nil {
			return Application{}, err
		}
		if strict && !CanTransition(a.Status, st) {
			return Application{}, invalid("status", fmt.Sprintf("cannot move from %q to %q", a.Status, st))
		}
		next.Status = st
	}
	if p.DateApplied != nil {
		d, err := ParseDate(*p.DateApplied)
		if err != nil {
			return Application{}, err
		}
		next.DateApplied = d
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if err := next.Validate(); err != nil {
		return Application{}, err
	}
	return next, nil
}
