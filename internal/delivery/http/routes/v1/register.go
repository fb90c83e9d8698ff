package v1

import (
	"job-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs    *handler.JobsHandler
	Match   *handler.MatchHandler
	Skills  *handler.CandidateSkillHandler
	Tracker *handler.TrackerHandler
}

// Register mounts every v1 route behind auth. A nil auth handler leaves them open.
func Register(r fiber.Router, auth fiber.Handler, h Handlers) {
	if r == nil {
		return
	}

	protected := r
	if auth != nil {
		protected = r.Group("", auth)
	}

	RegisterJobs(protected, h.Jobs, h.Match)
	RegisterUsers(protected, h.Skills)
	RegisterTracker(protected, h.Tracker)
}
