package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool
// o tx). Las líneas son inmutables; de la cabecera solo mutan amount_paid,
// status y payment_descriptor.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, customer_id, status, total_usd, total_bs, exchange_rate,
		taxable_base, exempt_base, tax_rate, tax_amount, payment_descriptor,
		amount_paid, due_date, invoice_class, created_at, updated_at`

// Create persiste la cabecera de la venta con la tasa y totales congelados.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, status, total_usd, total_bs, exchange_rate,
			taxable_base, exempt_base, tax_rate, tax_amount, payment_descriptor,
			amount_paid, due_date, invoice_class, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.Status, sale.TotalUSD, sale.TotalBs, sale.ExchangeRate,
		sale.TaxableBase, sale.ExemptBase, sale.TaxRate, sale.TaxAmount, sale.PaymentDescriptor,
		sale.AmountPaid, sale.DueDate, sale.InvoiceClass, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta (inmutable una vez creada).
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, kind, description, quantity, unit_price, taxable, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	productID := (*string)(nil)
	if item.ProductID != "" {
		productID = &item.ProductID
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, productID, item.Kind, item.Description,
		item.Quantity, item.UnitPrice, item.Taxable, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la venta bloqueando la fila (SELECT FOR UPDATE) para
// serializar abonos y anulaciones concurrentes.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *SaleRepo) scanOne(query string, args ...any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.CustomerID, &s.Status, &s.TotalUSD, &s.TotalBs, &s.ExchangeRate,
		&s.TaxableBase, &s.ExemptBase, &s.TaxRate, &s.TaxAmount, &s.PaymentDescriptor,
		&s.AmountPaid, &s.DueDate, &s.InvoiceClass, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItemsBySaleID obtiene las líneas de una venta.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, kind, description, quantity, unit_price, taxable, created_at
		FROM sale_items WHERE sale_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		var productID *string
		if err := rows.Scan(&item.ID, &item.SaleID, &productID, &item.Kind, &item.Description,
			&item.Quantity, &item.UnitPrice, &item.Taxable, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		if productID != nil {
			item.ProductID = *productID
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdatePayment persiste el resultado de un abono.
func (r *SaleRepo) UpdatePayment(id string, amountPaid decimal.Decimal, status, descriptor string) error {
	query := `
		UPDATE sales SET amount_paid = $2, status = $3, payment_descriptor = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, amountPaid, status, descriptor)
	if err != nil {
		return fmt.Errorf("update sale payment: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la venta (anulación) con el descriptor ya
// anexado.
func (r *SaleRepo) UpdateStatus(id string, status, descriptor string) error {
	query := `
		UPDATE sales SET status = $2, payment_descriptor = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, descriptor)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// List lista ventas de la más reciente a la más antigua, opcionalmente por
// estado.
func (r *SaleRepo) List(status string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.Status, &s.TotalUSD, &s.TotalBs, &s.ExchangeRate,
			&s.TaxableBase, &s.ExemptBase, &s.TaxRate, &s.TaxAmount, &s.PaymentDescriptor,
			&s.AmountPaid, &s.DueDate, &s.InvoiceClass, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
