package handler

import (
	"bytes"
	"errors"
	"time"

	"job-match/internal/delivery/http/dto"
	"job-match/internal/delivery/http/middleware"
	"job-match/internal/delivery/http/validation"
	"job-match/internal/export"
	"job-match/internal/pkg/response"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TrackerHandler struct {
	uc  usecase.TrackerUsecase
	now func() time.Time
}

func NewTrackerHandler(uc usecase.TrackerUsecase) *TrackerHandler {
	return &TrackerHandler{uc: uc, now: time.Now}
}

func (h *TrackerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/tracker/applications")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/summary", h.Summary)
	grp.Get("/export", h.Export)
	grp.Get("/:application_id", h.Get)
	grp.Patch("/:application_id", h.Update)
	grp.Delete("/:application_id", h.Delete)
}

func (h *TrackerHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	apps, err := h.uc.ListByUser(c.Context(), userID)
	if err != nil {
		return mapTrackerUsecaseError(err)
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, dto.NewApplicationResponse(a))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *TrackerHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := validation.CreateApplication.Validate(c.Body()); err != nil {
		return validationAppError(err)
	}
	var req dto.CreateApplicationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateApplicationInput{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		DateApplied: req.DateApplied,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapTrackerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewApplicationResponse(created))
}

func (h *TrackerHandler) Get(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := applicationIDParam(c)
	if err != nil {
		return err
	}

	a, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapTrackerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *TrackerHandler) Update(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := applicationIDParam(c)
	if err != nil {
		return err
	}

	if err := validation.UpdateApplication.Validate(c.Body()); err != nil {
		return validationAppError(err)
	}
	var req dto.UpdateApplicationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), userID, id, usecase.UpdateApplicationInput{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		DateApplied: req.DateApplied,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapTrackerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(updated))
}

func (h *TrackerHandler) Delete(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := applicationIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapTrackerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *TrackerHandler) Summary(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	sum, err := h.uc.Summary(c.Context(), userID)
	if err != nil {
		return mapTrackerUsecaseError(err)
	}

	out := dto.TrackerSummaryResponse{
		Total:    sum.Total,
		ByStatus: make([]dto.StatusCountResponse, 0, len(sum.ByStatus)),
	}
	for _, sc := range sum.ByStatus {
		out.ByStatus = append(out.ByStatus, dto.StatusCountResponse{Status: string(sc.Status), Count: sc.Count})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// Export streams the user's applications as a CSV download.
func (h *TrackerHandler) Export(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	apps, err := h.uc.ListByUser(c.Context(), userID)
	if err != nil {
		return mapTrackerUsecaseError(err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, h.uc.ExportRows(apps)); err != nil {
		return internalAppError(err)
	}

	c.Attachment(export.FileName(h.now()))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func applicationIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("application_id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}
	return id, nil
}

func mapTrackerUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return validationAppError(err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return internalAppError(err)
	}
}
