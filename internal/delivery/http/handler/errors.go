package handler

import (
	"errors"

	"job-match/internal/delivery/http/middleware"
	"job-match/internal/delivery/http/validation"
	"job-match/internal/domain/tracker"
	"job-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// validationAppError renders schema and domain validation failures as a 400 with per-field data.
func validationAppError(err error) error {
	var schemaErr *validation.Error
	if errors.As(err, &schemaErr) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", schemaErr.Fields, err)
	}

	var domainErr *tracker.ValidationError
	if errors.As(err, &domainErr) {
		data := []validation.FieldError{{Field: domainErr.Field, Message: domainErr.Message}}
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", data, err)
	}

	return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
}

func internalAppError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
