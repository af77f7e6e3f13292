package routes

import (
	"talent-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	match  *handler.MatchHandler
	skill  *handler.SkillHandler
}

func NewRegistry(health *handler.HealthHandler, match *handler.MatchHandler, skill *handler.SkillHandler) *Registry {
	return &Registry{health: health, match: match, skill: skill}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api").Group("/v1")
	if r.health != nil {
		r.health.RegisterRoutes(v1)
	}
	if r.match != nil {
		r.match.RegisterRoutes(v1)
	}
	if r.skill != nil {
		r.skill.RegisterRoutes(v1)
	}
}
