package handlers

import (
	"pocket-balance/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	storage  string
	provider string
}

func NewHealthHandler(storage, provider string) *HealthHandler {
	return &HealthHandler{storage: storage, provider: provider}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:  "ok",
		Storage: h.storage,
		LLM:     h.provider,
	})
}
