package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de línea de venta. Reemplaza la detección por subcadena del nombre
// del producto ("AVANCE") con un discriminador explícito.
const (
	LineKindPhysical = "PHYSICAL" // descuenta inventario y genera kardex
	LineKindAdvance  = "ADVANCE"  // avance de efectivo: exento, sin inventario
	LineKindDonation = "DONATION" // donación registrada: exenta, sin inventario
)

// SaleItem es una línea de venta. Congela precio unitario y gravabilidad al
// momento de la venta (nunca el precio vivo del catálogo). Inmutable una vez
// creada. ProductID queda vacío en líneas no físicas.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	Kind        string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal // USD, congelado
	Taxable     bool            // congelado del catálogo
	CreatedAt   time.Time
}

// Subtotal devuelve cantidad × precio unitario congelado.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Physical indica si la línea mueve inventario físico.
func (i *SaleItem) Physical() bool {
	return i.Kind == LineKindPhysical
}
