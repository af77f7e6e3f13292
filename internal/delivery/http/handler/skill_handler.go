package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillExtractionUsecase
}

func NewSkillHandler(uc usecase.SkillExtractionUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/skills")
	grp.Post("/extract", h.Extract)
}

func (h *SkillHandler) Extract(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	skills, err := h.uc.Extract(c.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Text is required", nil, err)
		case errors.Is(err, usecase.ErrExtractionUnavailable):
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "Skill extraction is not configured", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExtractSkillsResponse{Skills: skills})
}
