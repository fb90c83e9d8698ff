package dto

import (
	"time"

	"job-match/internal/domain/tracker"

	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	DateApplied string `json:"date_applied"`
	Notes       string `json:"notes"`
}

// UpdateApplicationRequest uses pointers so absent keys stay untouched.
type UpdateApplicationRequest struct {
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Status      *string `json:"status"`
	DateApplied *string `json:"date_applied"`
	Notes       *string `json:"notes"`
}

type ApplicationResponse struct {
	ID           uuid.UUID `json:"id"`
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	Status       string    `json:"status"`
	DateApplied  string    `json:"date_applied"`
	Notes        string    `json:"notes"`
	NextStatuses []string  `json:"next_statuses"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type TrackerSummaryResponse struct {
	Total    int                   `json:"total"`
	ByStatus []StatusCountResponse `json:"by_status"`
}

func NewApplicationResponse(a tracker.Application) ApplicationResponse {
	next := a.Status.Next()
	names := make([]string, 0, len(next))
	for _, s := range next {
		names = append(names, string(s))
	}
	return ApplicationResponse{
		ID:           a.ID,
		Company:      a.Company,
		Position:     a.Position,
		Status:       string(a.Status),
		DateApplied:  tracker.FormatDate(a.DateApplied),
		Notes:        a.Notes,
		NextStatuses: names,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
