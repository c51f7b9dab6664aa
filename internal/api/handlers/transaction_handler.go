package handlers

import (
	"errors"

	"pocket-balance/internal/dto"
	"pocket-balance/internal/models"
	"pocket-balance/internal/service"
	"pocket-balance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

func (h *TransactionHandler) requestLogger(c *fiber.Ctx) *zap.Logger {
	return h.logger.With(zap.String("request_id", middleware.RequestID(c)))
}

// GetFinancialData godoc
// @Summary Get the financial snapshot
// @Description Returns every transaction with per-category totals and the remaining balance
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.FinancialDataResponse
// @Router /financial-data [get]
func (h *TransactionHandler) GetFinancialData(c *fiber.Ctx) error {
	snapshot := h.txService.GetFinancialData(c.UserContext())
	return c.JSON(dto.NewFinancialDataResponse(snapshot))
}

// CreateTransaction godoc
// @Summary Add a transaction
// @Description Validates and records a new transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	candidate, err := req.ToModel()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	created, err := h.txService.AddTransaction(c.UserContext(), candidate)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.requestLogger(c).Error("Failed to add transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(*created))
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.txService.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}
		return err
	}

	return c.JSON(dto.NewTransactionResponse(*tx))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes the transaction with the given ID. Unknown IDs are ignored.
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 500 {object} map[string]string
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.txService.DeleteTransaction(c.UserContext(), c.Params("id")); err != nil {
		h.requestLogger(c).Error("Failed to delete transaction", zap.String("id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete transaction",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
