package app

import (
	"context"
	"fmt"
	"strings"

	"job-match/internal/config"
	"job-match/internal/delivery/http/handler"
	"job-match/internal/delivery/http/middleware"
	"job-match/internal/delivery/http/routes"
	v1 "job-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New wires the HTTP surface onto an already built container.
func New(c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ErrorHandler: errMw.Handler(),
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(errMw.Middleware())

	checks := map[string]handler.Pinger{}
	if c.DB != nil {
		checks["postgres"] = c.DB
	}
	if c.Cache != nil {
		checks["redis"] = c.Cache
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(checks),
		middleware.NewAuthMiddleware(c.JWT).Middleware(),
		v1.Handlers{
			Jobs:    handler.NewJobsHandler(c.JobList),
			Match:   handler.NewMatchHandler(c.Matching),
			Skills:  handler.NewCandidateSkillHandler(c.CandidateSkills),
			Tracker: handler.NewTrackerHandler(c.Tracker),
		},
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup closes the container.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
