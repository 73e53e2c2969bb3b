package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etiqueta de los lotes de recuperación creados al anular una venta
// cuando el producto ya no tiene ningún lote.
const RecoveryBatchLabel = "REINGRESO-ANULACION"

// Batch representa un lote fechado de un producto.
// ExpiresAt nil = no perecedero; en el orden FEFO los lotes sin vencimiento
// se consumen de último. Los lotes nunca se eliminan: pueden quedar en cero
// y permanecer como registro histórico.
type Batch struct {
	ID        string
	ProductID string
	Label     string
	Quantity  decimal.Decimal // cantidad disponible, >= 0
	ExpiresAt *time.Time
	UnitCost  decimal.Decimal // costo de adquisición
	CreatedAt time.Time
}

// Expired indica si el lote ya venció a la fecha dada.
func (b *Batch) Expired(at time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(at)
}
