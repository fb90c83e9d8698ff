package handler

import (
	"errors"
	"strconv"

	"job-match/internal/delivery/http/dto"
	"job-match/internal/delivery/http/middleware"
	"job-match/internal/pkg/response"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	uc usecase.JobListUsecase
}

func NewJobsHandler(uc usecase.JobListUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/", h.HandleListJobs)
	grp.Get("/stats", h.HandleStats)
	grp.Get("/:job_id", h.HandleGetJob)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	page, cached, err := h.uc.ListRankedJobs(c.Context(), userID, usecase.JobListParams{
		Search:         c.Query("search"),
		Location:       c.Query("location"),
		EmploymentType: c.Query("type"),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return mapJobListUsecaseError(err)
	}

	out := make([]dto.RankedJobResponse, 0, len(page.Items))
	for _, it := range page.Items {
		out = append(out, dto.RankedJobResponse{
			JobResponse:  dto.NewJobResponse(it.Job),
			Match:        dto.NewMatchResultResponse(it.Match),
			TurnoverRate: it.TurnoverRate,
		})
	}

	return response.Paginated(c, fiber.StatusOK, response.MessageOK, out, response.Meta{
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
		Cached: cached,
	})
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	j, err := h.uc.GetJob(c.Context(), jobID)
	if err != nil {
		return mapJobListUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleStats(c fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context())
	if err != nil {
		return mapJobListUsecaseError(err)
	}

	types := st.EmploymentTypes
	if types == nil {
		types = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobStatsResponse{
		TotalJobs:       st.TotalJobs,
		TotalCompanies:  st.TotalCompanies,
		EmploymentTypes: types,
	})
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func mapJobListUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return internalAppError(err)
	}
}
