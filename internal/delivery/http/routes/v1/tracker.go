package v1

import (
	"job-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterTracker(r fiber.Router, trackerHandler *handler.TrackerHandler) {
	if r == nil || trackerHandler == nil {
		return
	}
	trackerHandler.RegisterRoutes(r)
}
