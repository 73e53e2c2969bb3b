package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// ReceiptRenderer produce el ticket de texto plano de una venta: líneas,
// desglose de IVA, totales en ambas monedas con la tasa congelada y el
// descriptor de pago. Los montos se formatean con separadores es-VE
// (1.234,56), que es como los lee el operador de la caja.
type ReceiptRenderer struct {
	printer  *message.Printer
	shopName string
}

// NewReceiptRenderer construye el renderizador.
func NewReceiptRenderer(shopName string) *ReceiptRenderer {
	return &ReceiptRenderer{
		printer:  message.NewPrinter(language.MustParse("es-VE")),
		shopName: shopName,
	}
}

const receiptWidth = 40

// Render genera el ticket.
func (r *ReceiptRenderer) Render(sale *entity.Sale, items []*entity.SaleItem) string {
	var b strings.Builder
	line := strings.Repeat("=", receiptWidth)

	b.WriteString(center(r.shopName) + "\n")
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("Comprobante: %s  (%s)\n", shortID(sale.ID), sale.InvoiceClass))
	b.WriteString("Fecha: " + sale.CreatedAt.Format("02/01/2006 15:04") + "\n")
	b.WriteString(line + "\n")

	for _, item := range items {
		b.WriteString(item.Description + "\n")
		b.WriteString(fmt.Sprintf("  %s x %s = %s\n",
			item.Quantity.String(),
			r.money(item.UnitPrice),
			r.money(item.Subtotal()),
		))
	}

	b.WriteString(line + "\n")
	b.WriteString(r.row("Base gravable USD", sale.TaxableBase))
	b.WriteString(r.row("Base exenta USD", sale.ExemptBase))
	b.WriteString(r.row(fmt.Sprintf("IVA (%s%%)", sale.TaxRate.Mul(decimal.NewFromInt(100)).String()), sale.TaxAmount))
	b.WriteString(r.row("TOTAL USD", sale.TotalUSD))
	b.WriteString(r.row(fmt.Sprintf("TOTAL Bs (tasa %s)", r.money(sale.ExchangeRate)), sale.TotalBs))
	b.WriteString(line + "\n")
	b.WriteString("Pago: " + sale.PaymentDescriptor + "\n")
	b.WriteString("Estado: " + sale.Status + "\n")
	if sale.DueDate != nil {
		b.WriteString("Vence: " + sale.DueDate.Format("02/01/2006") + "\n")
		b.WriteString(r.row("Saldo", sale.Remaining()))
	}
	return b.String()
}

// money formatea un decimal con separadores locales y dos decimales.
func (r *ReceiptRenderer) money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return r.printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

func (r *ReceiptRenderer) row(label string, amount decimal.Decimal) string {
	value := r.money(amount)
	pad := receiptWidth - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + value + "\n"
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ReceiptUseCase arma el ticket de una venta existente.
type ReceiptUseCase struct {
	saleRepo repository.SaleRepository
	renderer *ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, renderer *ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, renderer: renderer}
}

// Receipt devuelve el ticket de texto plano de la venta.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID string) (string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return "", err
	}
	if sale == nil {
		return "", domain.ErrSaleNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return "", err
	}
	return uc.renderer.Render(sale, items), nil
}
