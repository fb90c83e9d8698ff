package v1

import (
	"job-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, skillHandler *handler.CandidateSkillHandler) {
	if r == nil || skillHandler == nil {
		return
	}
	skillHandler.RegisterRoutes(r)
}
