package usecase

import (
	"errors"

	"job-match/internal/domain/tracker"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
	ErrJobNotFound  = errors.New("job not found")

	// Tracker errors are the domain sentinels so errors.Is works across layers.
	ErrValidation          = tracker.ErrValidation
	ErrApplicationNotFound = tracker.ErrNotFound
)
