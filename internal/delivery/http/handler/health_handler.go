package handler

import (
	"context"
	"time"

	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is one checked dependency. Only required checks turn the
// endpoint into a 503.
type HealthCheck struct {
	Name     string
	Target   Pinger
	Required bool
}

type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	status := fiber.StatusOK
	out := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if chk.Target == nil {
			continue
		}
		if err := chk.Target.Ping(ctx); err != nil {
			out[chk.Name] = "down"
			if chk.Required {
				status = fiber.StatusServiceUnavailable
			}
			continue
		}
		out[chk.Name] = "up"
	}

	return response.Success(c, status, "", out)
}
