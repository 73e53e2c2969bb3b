package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterEntryRequest body para POST /api/inventory/entries: crea un lote
// fechado y registra la entrada (IN) en el kardex.
type RegisterEntryRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Label     string           `json:"label" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	CreatedBy string           `json:"created_by,omitempty"`
}

// BatchResponse lote en respuestas, en orden FEFO.
type BatchResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Label     string          `json:"label"`
	Quantity  decimal.Decimal `json:"quantity"`
	ExpiresAt string          `json:"expires_at,omitempty"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// MovementResponse entrada de kardex en respuestas.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason"`
	Reference      string          `json:"reference"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
	Date           string          `json:"date"`
}
