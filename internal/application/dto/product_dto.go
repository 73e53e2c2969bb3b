package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products. El stock inicia en cero:
// entra únicamente por lotes (POST /api/inventory/entries).
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Taxable  bool            `json:"taxable"`
}

// UpdateProductRequest body para PUT /api/products/:id. Stock no es editable:
// solo lo muta el motor de asignación.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Taxable  *bool            `json:"taxable,omitempty"`
	Active   *bool            `json:"active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Taxable  bool            `json:"taxable"`
	Active   bool            `json:"active"`
	Stock    decimal.Decimal `json:"stock"`
}
