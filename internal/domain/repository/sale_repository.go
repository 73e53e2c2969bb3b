package repository

import (
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// Las líneas son inmutables; de la cabecera solo mutan amount_paid, status y
// payment_descriptor (abonos y anulaciones).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta durante abonos y anulaciones.
	GetForUpdate(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	UpdatePayment(id string, amountPaid decimal.Decimal, status, descriptor string) error
	UpdateStatus(id string, status, descriptor string) error
	List(status string, limit, offset int) ([]*entity.Sale, error)
}
