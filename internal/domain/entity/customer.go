package entity

import "time"

// Customer representa un cliente del directorio (requerido para crédito).
type Customer struct {
	ID         string
	Name       string
	DocumentID string // cédula o RIF
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
