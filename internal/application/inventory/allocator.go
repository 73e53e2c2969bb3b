package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	domaininv "github.com/despensa-solidaria/pos-api/internal/domain/inventory"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// Engine es el motor de asignación: descuenta lotes en orden FEFO al vender y
// los acredita al anular, manteniendo en cada operación las tres superficies
// de estado (lotes, agregado del producto, kardex) dentro de la transacción
// del llamador. Los métodos *InTx reciben los repositorios atados a la tx,
// igual que la integración facturación-inventario del caso de uso de ventas.
type Engine struct{}

// NewEngine construye el motor.
func NewEngine() *Engine {
	return &Engine{}
}

// AllocateInTx descuenta qty unidades del producto en orden FEFO, recalcula
// el agregado como la suma de lotes restantes y registra exactamente un
// movimiento OUT con la foto resultante.
//
// La disponibilidad ya fue validada por el llamador contra el agregado
// cacheado; aquí, con las filas bloqueadas, se revalida contra la suma real
// de lotes: si otra venta concurrente ganó las últimas unidades se retorna
// ErrInsufficientStock y la transacción completa se revierte sin descuento
// parcial. Un faltante que aparezca a mitad del plan pese a la revalidación
// es deriva lotes/agregado y se señala como ErrStockInconsistency.
func (e *Engine) AllocateInTx(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	productID string,
	qty decimal.Decimal,
	reason, reference, createdBy string,
	now time.Time,
) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidLine
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	batches, err := batchRepo.ListForUpdate(productID)
	if err != nil {
		return err
	}
	available := domaininv.TotalQuantity(batches)
	if available.LessThan(qty) {
		return domain.ErrInsufficientStock
	}

	plan, err := domaininv.PlanDeduction(batches, qty)
	if err != nil {
		return err
	}
	if !plan.Fulfilled() {
		return domain.ErrStockInconsistency
	}
	for _, d := range plan.Deductions {
		if err := batchRepo.UpdateQuantity(d.BatchID, d.RemainingAfter); err != nil {
			return err
		}
	}

	// Re-derivación completa, no resta incremental: aplica el plan sobre la
	// lista bloqueada y suma. Cualquier deriva previa del cache se autocorrige.
	newStock := domaininv.TotalQuantity(applyPlan(batches, plan))
	if err := productRepo.UpdateStock(productID, newStock); err != nil {
		return err
	}

	return movRepo.Create(&entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		Type:           entity.MovementTypeOUT,
		Quantity:       qty,
		Reason:         reason,
		Reference:      reference,
		ResultingStock: newStock,
		CreatedAt:      now,
		CreatedBy:      createdBy,
	})
}

// CreditInTx es la inversa exacta de AllocateInTx: devuelve qty unidades al
// lote de vencimiento más lejano (los no perecederos cuentan como los más
// frescos). Si el producto ya no tiene lotes crea uno de recuperación
// etiquetado REINGRESO-ANULACION con el precio de referencia actual como
// costo. Recalcula el agregado y registra un movimiento IN.
func (e *Engine) CreditInTx(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	productID string,
	qty decimal.Decimal,
	reason, reference, createdBy string,
	now time.Time,
) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	batches, err := batchRepo.ListForUpdate(productID)
	if err != nil {
		return err
	}

	target := domaininv.PickRestockBatch(batches)
	if target == nil {
		recovery := &entity.Batch{
			ID:        uuid.New().String(),
			ProductID: productID,
			Label:     entity.RecoveryBatchLabel,
			Quantity:  qty,
			UnitCost:  product.Price,
			CreatedAt: now,
		}
		if err := batchRepo.Create(recovery); err != nil {
			return err
		}
		batches = append(batches, *recovery)
	} else {
		target.Quantity = target.Quantity.Add(qty)
		if err := batchRepo.UpdateQuantity(target.ID, target.Quantity); err != nil {
			return err
		}
	}

	newStock := domaininv.TotalQuantity(batches)
	if err := productRepo.UpdateStock(productID, newStock); err != nil {
		return err
	}

	return movRepo.Create(&entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		Type:           entity.MovementTypeIN,
		Quantity:       qty,
		Reason:         reason,
		Reference:      reference,
		ResultingStock: newStock,
		CreatedAt:      now,
		CreatedBy:      createdBy,
	})
}

// applyPlan refleja los descuentos del plan sobre la copia en memoria de los
// lotes para poder re-sumar el agregado.
func applyPlan(batches []entity.Batch, plan domaininv.Plan) []entity.Batch {
	remaining := make(map[string]decimal.Decimal, len(plan.Deductions))
	for _, d := range plan.Deductions {
		remaining[d.BatchID] = d.RemainingAfter
	}
	out := make([]entity.Batch, len(batches))
	copy(out, batches)
	for i := range out {
		if q, ok := remaining[out[i].ID]; ok {
			out[i].Quantity = q
		}
	}
	return out
}
