package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de kardex.
const (
	MovementTypeIN  = "IN"  // entrada (carga inicial, reingreso por anulación)
	MovementTypeOUT = "OUT" // salida (venta)
)

// Motivos estándar. Reason es texto libre; estos son los que emite el propio motor.
const (
	MovementReasonSale    = "VENTA"
	MovementReasonVoid    = "ANULACION"
	MovementReasonSeed    = "CARGA-INICIAL"
	MovementReasonRestock = "REPOSICION"
)

// Movement es una entrada del kardex: registro inmutable de cada cambio de
// inventario. Solo se inserta, nunca se actualiza ni se borra; es la verdad
// de auditoría del sistema. ResultingStock es la foto del agregado del
// producto justo después de aplicar el movimiento.
type Movement struct {
	ID             string
	ProductID      string
	Type           string          // IN | OUT
	Quantity       decimal.Decimal // siempre positiva; el signo lo da Type
	Reason         string
	Reference      string // documento: id de venta, anulación o carga
	ResultingStock decimal.Decimal
	CreatedAt      time.Time
	CreatedBy      string
}

// Signed devuelve la cantidad con signo según el tipo (IN suma, OUT resta).
// Reproducir el agregado es sumar Signed() de todos los movimientos del producto.
func (m *Movement) Signed() decimal.Decimal {
	if m.Type == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
