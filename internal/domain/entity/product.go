package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Price es el precio de referencia en USD; el precio en bolívares se calcula
// con la tasa del día al momento de la venta, nunca se almacena aquí.
// Stock es un agregado cacheado: siempre derivable de la suma de lotes,
// nunca autoritativo (ver BatchRepository).
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal // precio de referencia en USD
	Taxable   bool            // true = grava IVA
	Active    bool
	Stock     decimal.Decimal // cache: Σ cantidad de lotes
	UpdatedAt time.Time
}
