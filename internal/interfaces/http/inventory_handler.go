package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de inventario: entradas por
// lote, lotes vigentes y kardex.
type InventoryHandler struct {
	entryUC *inventory.RegisterEntryUseCase
	queryUC *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(entryUC *inventory.RegisterEntryUseCase, queryUC *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{entryUC: entryUC, queryUC: queryUC}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de inventario (lote fechado)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "Lote y cantidad"
// @Success      201   {object}  nil
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.entryUC.RegisterEntry(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// GetBatches godoc
// @Summary      Lotes de un producto en orden FEFO
// @Tags         inventory
// @Produce      json
// @Param        id   path   string  true  "ID del producto"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/products/{id}/batches [get]
func (h *InventoryHandler) GetBatches(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.queryUC.GetBatches(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovements godoc
// @Summary      Kardex de un producto (más reciente primero)
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) GetMovements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "to debe ser RFC3339"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.queryUC.GetMovements(c.Context(), id, from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
