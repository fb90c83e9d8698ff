package handler

import (
	"errors"

	"job-match/internal/delivery/http/dto"
	"job-match/internal/delivery/http/middleware"
	"job-match/internal/delivery/http/validation"
	"job-match/internal/pkg/response"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CandidateSkillHandler struct {
	uc usecase.CandidateSkillUsecase
}

func NewCandidateSkillHandler(uc usecase.CandidateSkillUsecase) *CandidateSkillHandler {
	return &CandidateSkillHandler{uc: uc}
}

func (h *CandidateSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/users/me/skills")
	grp.Get("/", h.List)
	grp.Put("/", h.Replace)
}

func (h *CandidateSkillHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	skills, err := h.uc.GetSkills(c.Context(), userID)
	if err != nil {
		return mapCandidateSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillsResponse{Skills: skills})
}

func (h *CandidateSkillHandler) Replace(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := validation.ReplaceSkills.Validate(c.Body()); err != nil {
		return validationAppError(err)
	}
	var req dto.ReplaceSkillsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	skills, err := h.uc.ReplaceSkills(c.Context(), userID, req.Skills)
	if err != nil {
		return mapCandidateSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillsResponse{Skills: skills})
}

func mapCandidateSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return internalAppError(err)
	}
}
