package repository

import (
	"time"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del kardex.
// Solo inserción y lectura: el kardex no se actualiza ni se borra jamás.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
