package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con
// pool o tx). Los lotes nunca se borran: llegan a cero y permanecen.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = "id, product_id, label, quantity, expires_at, unit_cost, created_at"

// Orden FEFO: vencimiento ascendente, NULL (no perecedero) de último; empates
// por fecha de creación para que el orden sea estable.
const batchFEFOOrder = " ORDER BY expires_at ASC NULLS LAST, created_at ASC, id ASC"

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_id, label, quantity, expires_at, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.Label, batch.Quantity,
		batch.ExpiresAt, batch.UnitCost, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// ListByProduct devuelve los lotes del producto en orden FEFO.
func (r *BatchRepo) ListByProduct(productID string) ([]entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE product_id = $1` + batchFEFOOrder
	return r.list(query, productID)
}

// ListForUpdate devuelve los lotes en orden FEFO bloqueando las filas
// (SELECT FOR UPDATE) durante la ventana de asignación: dos ventas
// concurrentes sobre las últimas unidades se serializan aquí.
func (r *BatchRepo) ListForUpdate(productID string) ([]entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE product_id = $1` + batchFEFOOrder + ` FOR UPDATE`
	return r.list(query, productID)
}

func (r *BatchRepo) list(query string, args ...any) ([]entity.Batch, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.Label, &b.Quantity, &b.ExpiresAt, &b.UnitCost, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateQuantity fija la cantidad restante de un lote.
func (r *BatchRepo) UpdateQuantity(batchID string, quantity decimal.Decimal) error {
	query := `UPDATE batches SET quantity = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, batchID, quantity)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	return nil
}
