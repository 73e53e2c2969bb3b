package repository

import "github.com/despensa-solidaria/pos-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// El directorio completo es un colaborador externo; aquí solo lo necesario
// como llave foránea de ventas a crédito.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByDocument(documentID string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
}
