package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
)

// Servicio de dominio FEFO (first-expire-first-out): decide de qué lotes se
// descuenta una venta y a qué lote regresa el stock de una anulación. Es
// lógica pura sobre los lotes en memoria; la persistencia y el bloqueo de
// filas son responsabilidad del motor de asignación.

// Deduction es el descuento exacto a aplicar sobre un lote.
type Deduction struct {
	BatchID        string
	Label          string
	Quantity       decimal.Decimal
	RemainingAfter decimal.Decimal
}

// Plan es el resultado de planificar una salida: descuentos por lote en orden
// FEFO y el faltante si los lotes no alcanzan.
type Plan struct {
	Deductions []Deduction
	Shortfall  decimal.Decimal
}

// Fulfilled indica si el plan cubre la cantidad solicitada completa.
func (p Plan) Fulfilled() bool {
	return p.Shortfall.IsZero()
}

// SortFEFO ordena lotes por vencimiento ascendente; sin vencimiento va de
// último ("vence nunca"). Empates se resuelven por fecha de creación y por ID
// para que el orden sea estable entre llamadas.
func SortFEFO(batches []entity.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		switch {
		case a.ExpiresAt == nil && b.ExpiresAt == nil:
			// ambos no perecederos: el más viejo primero
		case a.ExpiresAt == nil:
			return false
		case b.ExpiresAt == nil:
			return true
		case !a.ExpiresAt.Equal(*b.ExpiresAt):
			return a.ExpiresAt.Before(*b.ExpiresAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// PlanDeduction calcula los descuentos por lote para una salida de qty
// unidades en orden FEFO: de cada lote toma min(restante, faltante) hasta
// satisfacer la cantidad o agotar los lotes. No rechaza faltantes: los
// reporta en Shortfall y el llamador decide (la validación de disponibilidad
// ocurre antes, contra el agregado del producto).
func PlanDeduction(batches []entity.Batch, qty decimal.Decimal) (Plan, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return Plan{}, domain.ErrInvalidInput
	}
	ordered := make([]entity.Batch, len(batches))
	copy(ordered, batches)
	SortFEFO(ordered)

	plan := Plan{Shortfall: qty}
	for _, b := range ordered {
		if plan.Shortfall.IsZero() {
			break
		}
		if !b.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(b.Quantity, plan.Shortfall)
		plan.Deductions = append(plan.Deductions, Deduction{
			BatchID:        b.ID,
			Label:          b.Label,
			Quantity:       take,
			RemainingAfter: b.Quantity.Sub(take),
		})
		plan.Shortfall = plan.Shortfall.Sub(take)
	}
	return plan, nil
}

// PickRestockBatch elige el lote que recibe un reingreso por anulación: el de
// vencimiento más lejano, tratando los no perecederos como los más "frescos"
// (nil primero). Devuelve nil si no hay lotes; en ese caso el motor crea un
// lote de recuperación.
func PickRestockBatch(batches []entity.Batch) *entity.Batch {
	var pick *entity.Batch
	for i := range batches {
		b := &batches[i]
		if pick == nil {
			pick = b
			continue
		}
		switch {
		case pick.ExpiresAt == nil:
			// ya tenemos el más fresco posible
		case b.ExpiresAt == nil:
			pick = b
		case b.ExpiresAt.After(*pick.ExpiresAt):
			pick = b
		}
	}
	return pick
}

// TotalQuantity suma las cantidades restantes de los lotes. Es la derivación
// completa con la que se recalcula el agregado del producto tras cada
// mutación (nunca una resta incremental, para que el cache se autocorrija).
func TotalQuantity(batches []entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(b.Quantity)
	}
	return total
}
