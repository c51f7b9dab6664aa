package handlers

import (
	"pocket-balance/internal/dto"
	"pocket-balance/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdviceHandler struct {
	txService     *service.TransactionService
	adviceService *service.AdviceService
}

func NewAdviceHandler(txService *service.TransactionService, adviceService *service.AdviceService) *AdviceHandler {
	return &AdviceHandler{
		txService:     txService,
		adviceService: adviceService,
	}
}

// RequestAdvice godoc
// @Summary Get budget advice
// @Description Asks the configured LLM to assess the current snapshot. Always answers 200;
// @Description degraded is true when fallback advice was returned.
// @Tags advice
// @Produce json
// @Success 200 {object} dto.BudgetAdviceResponse
// @Router /advice [post]
func (h *AdviceHandler) RequestAdvice(c *fiber.Ctx) error {
	snapshot := h.txService.GetFinancialData(c.UserContext())
	result := h.adviceService.RequestAdvice(c.UserContext(), snapshot)
	return c.JSON(dto.NewBudgetAdviceResponse(result))
}
