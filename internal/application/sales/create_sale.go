package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	"github.com/despensa-solidaria/pos-api/internal/domain/payment"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// Config parámetros monetarios del motor de liquidación.
type Config struct {
	TaxRate        decimal.Decimal // alícuota IVA, ej. 0.16
	PaymentEpsilon decimal.Decimal // tolerancia de redondeo en cobros, ej. 0.05
}

// CreateSaleUseCase liquida una venta: particiona el carrito, descuenta
// inventario FEFO por cada línea física, calcula IVA y totales en ambas
// monedas con la tasa congelada, arma el descriptor de pago (tokens CAP de
// avances incluidos) y persiste cabecera, líneas y kardex en una sola
// transacción.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	engine       InventoryEngine
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	rates        RateProvider
	cfg          Config
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	engine InventoryEngine,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	rates RateProvider,
	cfg Config,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		engine:       engine,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		rates:        rates,
		cfg:          cfg,
	}
}

// saleLine línea ya validada con precio y gravabilidad congelados.
type saleLine struct {
	productID   string
	kind        string
	description string
	quantity    decimal.Decimal
	unitPrice   decimal.Decimal
	taxable     bool
	capAmount   decimal.Decimal // monto del token CAP (solo avances)
}

// CreateSale valida el carrito, rechaza antes de mutar nada y ejecuta la
// liquidación atómica.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}

	// Crédito sin cliente identificado es falla dura de precondición.
	var customerID *string
	if in.IsCredit {
		if in.CustomerID == "" {
			return nil, domain.ErrMissingCustomerForCredit
		}
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrMissingCustomerForCredit
		}
		customerID = &customer.ID
	} else if in.CustomerID != "" {
		customerID = &in.CustomerID
	}

	lines, err := uc.resolveLines(in.Lines)
	if err != nil {
		return nil, err
	}

	// Tasa congelada: la del request si el operador ya la vio, si no la del
	// proveedor, y la constante de respaldo si nunca hubo una tasa buena.
	rate := in.ExchangeRate
	if !rate.GreaterThan(decimal.Zero) {
		rate = uc.rates.Current()
	}
	if !rate.GreaterThan(decimal.Zero) {
		rate = uc.rates.Fallback()
	}

	now := time.Now()
	saleID := uuid.New().String()

	// Bases y descriptor
	taxableBase, exemptBase := decimal.Zero, decimal.Zero
	desc := payment.Descriptor{Methods: in.PaymentMethods}
	for _, l := range lines {
		subtotal := l.quantity.Mul(l.unitPrice)
		if l.taxable {
			taxableBase = taxableBase.Add(subtotal)
		} else {
			exemptBase = exemptBase.Add(subtotal)
		}
		if l.kind == entity.LineKindAdvance {
			desc.Advances = append(desc.Advances, l.capAmount)
		}
	}
	taxAmount := taxableBase.Mul(uc.cfg.TaxRate)
	totalUSD := taxableBase.Add(exemptBase).Add(taxAmount)
	totalBs := totalUSD.Mul(rate)

	sale := &entity.Sale{
		ID:                saleID,
		CustomerID:        customerID,
		Status:            entity.SaleStatusPaid,
		TotalUSD:          totalUSD,
		TotalBs:           totalBs,
		ExchangeRate:      rate,
		TaxableBase:       taxableBase,
		ExemptBase:        exemptBase,
		TaxRate:           uc.cfg.TaxRate,
		TaxAmount:         taxAmount,
		PaymentDescriptor: desc.String(),
		AmountPaid:        totalUSD,
		InvoiceClass:      in.InvoiceClass,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if sale.InvoiceClass == "" {
		sale.InvoiceClass = entity.InvoiceClassReceipt
	}
	if in.IsCredit {
		days := in.CreditDays
		if days <= 0 {
			days = entity.DefaultCreditDays
		}
		due := now.AddDate(0, 0, days)
		sale.Status = entity.SaleStatusPending
		sale.AmountPaid = decimal.Zero
		sale.DueDate = &due
	}

	items := make([]*entity.SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      saleID,
			ProductID:   l.productID,
			Kind:        l.kind,
			Description: l.description,
			Quantity:    l.quantity,
			UnitPrice:   l.unitPrice,
			Taxable:     l.taxable,
			CreatedAt:   now,
		})
	}

	// Unidad atómica: asignación FEFO por línea física (un OUT por línea,
	// referencia a la venta), cabecera y detalle. Cualquier error revierte
	// inventario, libro y kardex juntos.
	err = uc.txRunner.RunSale(ctx, func(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, l := range lines {
			if l.kind != entity.LineKindPhysical {
				continue
			}
			if err := uc.engine.AllocateInTx(
				batchRepo, productRepo, movRepo,
				l.productID, l.quantity,
				entity.MovementReasonSale, saleID, in.RegisteredBy,
				now,
			); err != nil {
				return err
			}
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items), nil
}

// resolveLines valida cada línea y congela precio y gravabilidad del catálogo.
// Se rechaza todo el carrito antes de cualquier mutación. La disponibilidad
// se pre-valida contra el agregado cacheado; la revalidación definitiva la
// hace el motor con las filas bloqueadas.
func (uc *CreateSaleUseCase) resolveLines(reqs []dto.SaleLineRequest) ([]saleLine, error) {
	lines := make([]saleLine, 0, len(reqs))
	needed := make(map[string]decimal.Decimal)
	for _, r := range reqs {
		if !r.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidLine
		}
		if r.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidLine
		}
		switch r.Kind {
		case entity.LineKindPhysical:
			if r.ProductID == "" {
				return nil, domain.ErrInvalidLine
			}
			product, err := uc.productRepo.GetByID(r.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil || !product.Active {
				return nil, domain.ErrNotFound
			}
			price := r.UnitPrice
			if price.IsZero() {
				price = product.Price
			}
			needed[product.ID] = needed[product.ID].Add(r.Quantity)
			if product.Stock.LessThan(needed[product.ID]) {
				return nil, domain.ErrInsufficientStock
			}
			lines = append(lines, saleLine{
				productID:   product.ID,
				kind:        r.Kind,
				description: product.Name,
				quantity:    r.Quantity,
				unitPrice:   price,
				taxable:     product.Taxable,
			})
		case entity.LineKindAdvance:
			// Los avances nunca gravan IVA. El monto del token CAP sale de
			// la etiqueta si ya lo trae; si no, del monto de la línea.
			if !r.UnitPrice.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidLine
			}
			capAmount, ok := payment.ExtractAdvance(r.Description)
			if !ok {
				capAmount = r.Quantity.Mul(r.UnitPrice)
			}
			lines = append(lines, saleLine{
				kind:        r.Kind,
				description: r.Description,
				quantity:    r.Quantity,
				unitPrice:   r.UnitPrice,
				capAmount:   capAmount,
			})
		case entity.LineKindDonation:
			lines = append(lines, saleLine{
				kind:        r.Kind,
				description: r.Description,
				quantity:    r.Quantity,
				unitPrice:   r.UnitPrice,
			})
		default:
			return nil, domain.ErrInvalidLine
		}
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidLine
	}
	return lines, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:                sale.ID,
		Status:            sale.Status,
		TotalUSD:          sale.TotalUSD,
		TotalBs:           sale.TotalBs,
		ExchangeRate:      sale.ExchangeRate,
		TaxableBase:       sale.TaxableBase,
		ExemptBase:        sale.ExemptBase,
		TaxRate:           sale.TaxRate,
		TaxAmount:         sale.TaxAmount,
		PaymentDescriptor: sale.PaymentDescriptor,
		AmountPaid:        sale.AmountPaid,
		InvoiceClass:      sale.InvoiceClass,
		Date:              sale.CreatedAt.Format(time.RFC3339),
	}
	if sale.CustomerID != nil {
		resp.CustomerID = *sale.CustomerID
	}
	if sale.DueDate != nil {
		resp.DueDate = sale.DueDate.Format("2006-01-02")
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Kind:        item.Kind,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Taxable:     item.Taxable,
			Subtotal:    item.Subtotal(),
		})
	}
	return resp
}

// GetSale obtiene una venta con su detalle.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSales lista ventas, opcionalmente filtradas por estado.
func (uc *CreateSaleUseCase) ListSales(ctx context.Context, status string, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	salesList, err := uc.saleRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(salesList))
	for _, s := range salesList {
		out = append(out, *toSaleResponse(s, nil))
	}
	return out, nil
}
