package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de inventario y el de ventas: la venta y sus efectos de
// inventario se confirman o revierten como una sola unidad.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// InventoryEngine integra ventas con el motor de asignación. Los métodos
// reciben los repositorios del llamador (misma transacción); si retornan
// error el llamador revierte todo.
type InventoryEngine interface {
	AllocateInTx(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		productID string,
		qty decimal.Decimal,
		reason, reference, createdBy string,
		now time.Time,
	) error
	CreditInTx(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		productID string,
		qty decimal.Decimal,
		reason, reference, createdBy string,
		now time.Time,
	) error
}

// RateProvider abstrae la tasa de cambio Bs/USD. Current devuelve la última
// tasa conocida (cero si nunca hubo una) y Fallback la constante de respaldo.
type RateProvider interface {
	Current() decimal.Decimal
	Fallback() decimal.Decimal
}
