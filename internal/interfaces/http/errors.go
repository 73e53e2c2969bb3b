package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/domain"
)

// respondError mapea errores de dominio a códigos HTTP estables. Los errores
// de validación de DTOs llegan aquí como validator.ValidationErrors.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verrs.Error()})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrSaleNotFound):
		status, code = fiber.StatusNotFound, "SALE_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrInvalidLine):
		status, code = fiber.StatusBadRequest, "INVALID_LINE"
	case errors.Is(err, domain.ErrMissingCustomerForCredit):
		status, code = fiber.StatusBadRequest, "MISSING_CUSTOMER"
	case errors.Is(err, domain.ErrInvalidAmount):
		status, code = fiber.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrOverpayment):
		status, code = fiber.StatusConflict, "OVERPAYMENT"
	case errors.Is(err, domain.ErrAlreadyVoided):
		status, code = fiber.StatusConflict, "ALREADY_VOIDED"
	case errors.Is(err, domain.ErrPartialVoidForbidden):
		status, code = fiber.StatusConflict, "PARTIAL_VOID_FORBIDDEN"
	case errors.Is(err, domain.ErrStockInconsistency):
		status, code = fiber.StatusInternalServerError, "STOCK_INCONSISTENCY"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
