package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despensa-solidaria/pos-api/internal/application/sales"
	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
)

func TestReceiptRenderer_ContenidoDelTicket(t *testing.T) {
	r := sales.NewReceiptRenderer("Despensa Solidaria")
	due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:                "aabbccdd-0000-0000-0000-000000000000",
		Status:            entity.SaleStatusPending,
		TotalUSD:          decimal.NewFromFloat(11.96),
		TotalBs:           decimal.NewFromFloat(478.4),
		ExchangeRate:      decimal.NewFromInt(40),
		TaxableBase:       decimal.NewFromInt(6),
		ExemptBase:        decimal.NewFromInt(5),
		TaxRate:           decimal.NewFromFloat(0.16),
		TaxAmount:         decimal.NewFromFloat(0.96),
		PaymentDescriptor: "PAGO-MOVIL [CAP:20.00]",
		AmountPaid:        decimal.NewFromInt(2),
		DueDate:           &due,
		InvoiceClass:      entity.InvoiceClassReceipt,
		CreatedAt:         time.Date(2026, 3, 31, 14, 30, 0, 0, time.UTC),
	}
	items := []*entity.SaleItem{
		{Description: "Harina PAN", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(2), Kind: entity.LineKindPhysical},
		{Description: "Café", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5), Kind: entity.LineKindPhysical},
	}

	ticket := r.Render(sale, items)

	assert.Contains(t, ticket, "Despensa Solidaria")
	assert.Contains(t, ticket, "aabbccdd", "el comprobante usa el ID corto")
	assert.Contains(t, ticket, "NOTA")
	assert.Contains(t, ticket, "31/03/2026 14:30")
	assert.Contains(t, ticket, "Harina PAN")
	assert.Contains(t, ticket, "Café")
	assert.Contains(t, ticket, "IVA (16%)")
	assert.Contains(t, ticket, "TOTAL USD")
	assert.Contains(t, ticket, "TOTAL Bs")
	// Formato es-VE: coma decimal.
	assert.Contains(t, ticket, "478,40")
	assert.Contains(t, ticket, "11,96")
	// El descriptor viaja tal cual, token CAP incluido.
	assert.Contains(t, ticket, "PAGO-MOVIL [CAP:20.00]")
	// Venta a crédito: vencimiento y saldo.
	assert.Contains(t, ticket, "Vence: 15/04/2026")
	assert.Contains(t, ticket, "Saldo")
}

func TestReceiptUseCase_VentaInexistente(t *testing.T) {
	s := newMemStore()
	uc := sales.NewReceiptUseCase(&memSaleRepo{s}, sales.NewReceiptRenderer("Despensa"))

	_, err := uc.Receipt(t.Context(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestReceiptUseCase_RenderizaVentaPersistida(t *testing.T) {
	s := newMemStore()
	s.addProduct("harina", 2, true)
	s.addBatch("b1", "harina", 10, nil)
	saleID := sell(t, s, physicalLine("harina", 2))

	uc := sales.NewReceiptUseCase(&memSaleRepo{s}, sales.NewReceiptRenderer("Despensa"))
	ticket, err := uc.Receipt(t.Context(), saleID)
	require.NoError(t, err)
	assert.Contains(t, ticket, "Producto harina")
	assert.Contains(t, ticket, "PAID")
}
