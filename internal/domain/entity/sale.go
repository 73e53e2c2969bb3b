package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain"
)

// Estados del ciclo de vida de una venta.
//
//	venta de contado    → PAID
//	venta a crédito     → PENDING
//	PENDING  --abono parcial--> PARCIAL
//	PENDING/PARCIAL --abono total--> PAID
//	PAID/PENDING --anular--> ANULADO (terminal)
//
// PARCIAL no se puede anular (hay dinero cobrado que se desincronizaría del
// ingreso revertido; eso es un ajuste manual, fuera de este motor) y ANULADO
// es terminal. Ningún estado regresa a PENDING ni PARCIAL.
const (
	SaleStatusPaid    = "PAID"
	SaleStatusPending = "PENDING"
	SaleStatusPartial = "PARCIAL"
	SaleStatusVoided  = "ANULADO"
)

// Clases de comprobante.
const (
	InvoiceClassReceipt = "NOTA"   // nota de entrega simple
	InvoiceClassFiscal  = "FISCAL" // factura fiscal
)

// Plazo de crédito por defecto cuando la venta a crédito no indica uno.
const DefaultCreditDays = 15

// Sale es el registro autoritativo de una transacción: totales en ambas
// monedas con la tasa congelada al momento de la venta, desglose de IVA,
// descriptor de pago (texto que puede embeber tokens [CAP:x]), monto cobrado
// y estado. AmountPaid es lo efectivamente cobrado, distinto del total adeudado.
type Sale struct {
	ID                string
	CustomerID        *string // requerido solo en ventas a crédito
	Status            string
	TotalUSD          decimal.Decimal
	TotalBs           decimal.Decimal
	ExchangeRate      decimal.Decimal // Bs por USD, congelada
	TaxableBase       decimal.Decimal // base gravable en USD
	ExemptBase        decimal.Decimal // base exenta en USD (incluye avances)
	TaxRate           decimal.Decimal // alícuota aplicada (ej. 0.16)
	TaxAmount         decimal.Decimal
	PaymentDescriptor string
	AmountPaid        decimal.Decimal
	DueDate           *time.Time // solo crédito
	InvoiceClass      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Remaining devuelve el saldo pendiente de cobro.
func (s *Sale) Remaining() decimal.Decimal {
	return s.TotalUSD.Sub(s.AmountPaid)
}

// CanVoid valida las transiciones prohibidas de anulación.
func (s *Sale) CanVoid() error {
	switch s.Status {
	case SaleStatusVoided:
		return domain.ErrAlreadyVoided
	case SaleStatusPartial:
		return domain.ErrPartialVoidForbidden
	}
	return nil
}

// SettleStatus determina el estado tras un abono: PAID si lo pagado alcanza el
// total dentro de la tolerancia epsilon, PARCIAL en caso contrario.
func SettleStatus(total, paid, epsilon decimal.Decimal) string {
	if paid.GreaterThanOrEqual(total.Sub(epsilon)) {
		return SaleStatusPaid
	}
	return SaleStatusPartial
}
