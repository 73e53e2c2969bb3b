package dto

import (
	"github.com/shopspring/decimal"
)

// SaleLineRequest línea del carrito para POST /api/sales.
// Kind discrimina líneas físicas (descuentan inventario) de avances y
// donaciones (exentas, sin inventario). En líneas físicas UnitPrice cero
// significa "usar el precio de catálogo"; en avances UnitPrice es el monto
// entregado y Description puede traer el token [CAP:monto].
type SaleLineRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	Kind        string          `json:"kind" validate:"required,oneof=PHYSICAL ADVANCE DONATION"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
// ExchangeRate en cero = usar la tasa actual del proveedor; un valor explícito
// permite al llamador congelar una tasa ya mostrada al operador.
type CreateSaleRequest struct {
	Lines          []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	PaymentMethods []string          `json:"payment_methods"`
	IsCredit       bool              `json:"is_credit"`
	CreditDays     int               `json:"credit_days" validate:"omitempty,min=1,max=90"`
	CustomerID     string            `json:"customer_id,omitempty"`
	InvoiceClass   string            `json:"invoice_class" validate:"omitempty,oneof=NOTA FISCAL"`
	ExchangeRate   decimal.Decimal   `json:"exchange_rate"`
	RegisteredBy   string            `json:"registered_by,omitempty"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Kind        string          `json:"kind"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Taxable     bool            `json:"taxable"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse cabecera de venta con detalle.
type SaleResponse struct {
	ID                string             `json:"sale_id"`
	Status            string             `json:"status"`
	CustomerID        string             `json:"customer_id,omitempty"`
	TotalUSD          decimal.Decimal    `json:"total_usd"`
	TotalBs           decimal.Decimal    `json:"total_bs"`
	ExchangeRate      decimal.Decimal    `json:"exchange_rate"`
	TaxableBase       decimal.Decimal    `json:"taxable_base"`
	ExemptBase        decimal.Decimal    `json:"exempt_base"`
	TaxRate           decimal.Decimal    `json:"tax_rate"`
	TaxAmount         decimal.Decimal    `json:"tax_amount"`
	PaymentDescriptor string             `json:"payment_descriptor"`
	AmountPaid        decimal.Decimal    `json:"amount_paid"`
	DueDate           string             `json:"due_date,omitempty"`
	InvoiceClass      string             `json:"invoice_class"`
	Date              string             `json:"date"`
	Items             []SaleItemResponse `json:"items,omitempty"`
}

// ApplyPaymentRequest body para POST /api/sales/:id/payments.
type ApplyPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"required"`
	Reference string          `json:"reference,omitempty"`
}

// ApplyPaymentResponse resultado del abono.
type ApplyPaymentResponse struct {
	SaleID    string          `json:"sale_id"`
	Status    string          `json:"status"`
	Remaining decimal.Decimal `json:"remaining"`
}

// VoidSaleRequest body para POST /api/sales/:id/void.
type VoidSaleRequest struct {
	Reason       string `json:"reason" validate:"required"`
	RegisteredBy string `json:"registered_by,omitempty"`
}
