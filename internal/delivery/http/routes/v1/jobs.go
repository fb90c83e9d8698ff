package v1

import (
	"job-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts match before the job detail route so /jobs/:job_id/match is not shadowed.
func RegisterJobs(r fiber.Router, jobsHandler *handler.JobsHandler, matchHandler *handler.MatchHandler) {
	if r == nil {
		return
	}
	if matchHandler != nil {
		matchHandler.RegisterRoutes(r)
	}
	if jobsHandler != nil {
		jobsHandler.RegisterRoutes(r)
	}
}
