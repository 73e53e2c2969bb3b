package repository

import (
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// Stock se recalcula siempre desde los lotes; UpdateStock lo usa únicamente
// el motor de asignación dentro de la misma transacción que tocó los lotes.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar asignaciones concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock decimal.Decimal) error
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
}
