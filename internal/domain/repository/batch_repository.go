package repository

import (
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
// Los lotes nunca se eliminan; llegan a cero y permanecen.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	// ListByProduct devuelve los lotes en orden FEFO: vencimiento ascendente,
	// sin vencimiento de último.
	ListByProduct(productID string) ([]entity.Batch, error)
	// ListForUpdate devuelve los lotes en orden FEFO bloqueando las filas
	// (SELECT FOR UPDATE) durante la asignación.
	ListForUpdate(productID string) ([]entity.Batch, error)
	UpdateQuantity(batchID string, quantity decimal.Decimal) error
}
