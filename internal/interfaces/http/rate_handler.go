package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// RateSource expone la tasa de cambio vigente para consulta del operador.
type RateSource interface {
	Current() decimal.Decimal
	Fallback() decimal.Decimal
	FetchedAt() time.Time
}

// RateHandler maneja la consulta de la tasa Bs/USD.
type RateHandler struct {
	source RateSource
}

// NewRateHandler construye el handler.
func NewRateHandler(source RateSource) *RateHandler {
	return &RateHandler{source: source}
}

type rateResponse struct {
	Rate      decimal.Decimal `json:"rate"`
	Fallback  bool            `json:"fallback"`
	FetchedAt string          `json:"fetched_at,omitempty"`
}

// Current godoc
// @Summary      Tasa de cambio Bs/USD vigente
// @Tags         rates
// @Produce      json
// @Success      200  {object}  rateResponse
// @Router       /api/rates/current [get]
func (h *RateHandler) Current(c *fiber.Ctx) error {
	rate := h.source.Current()
	resp := rateResponse{Rate: rate}
	if rate.IsZero() {
		resp.Rate = h.source.Fallback()
		resp.Fallback = true
	} else if at := h.source.FetchedAt(); !at.IsZero() {
		resp.FetchedAt = at.Format(time.RFC3339)
	}
	return c.JSON(resp)
}
