package inventory

import (
	"context"

	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que lotes, agregado y kardex
// se confirmen o reviertan como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}
