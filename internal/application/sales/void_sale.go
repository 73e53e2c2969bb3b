package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	"github.com/despensa-solidaria/pos-api/internal/domain/payment"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// VoidSaleUseCase anula una venta como inversa exacta de la liquidación:
// por cada línea física acredita los lotes (reingreso al lote más fresco o
// lote de recuperación), asienta un IN en el kardex por línea y marca la
// venta ANULADO, todo en una transacción. Las líneas de avance y donación se
// rodean igual que en la venta: nunca tocaron inventario.
type VoidSaleUseCase struct {
	txRunner SaleTxRunner
	engine   InventoryEngine
}

// NewVoidSaleUseCase construye el caso de uso.
func NewVoidSaleUseCase(txRunner SaleTxRunner, engine InventoryEngine) *VoidSaleUseCase {
	return &VoidSaleUseCase{txRunner: txRunner, engine: engine}
}

// VoidSale ejecuta la anulación. Guardas de la máquina de estados: una venta
// ANULADO no se anula dos veces y una PARCIAL no se anula nunca por esta vía
// (hay dinero cobrado que se desincronizaría del ingreso revertido; eso es un
// ajuste manual). Ambos rechazos dejan inventario y libro intactos.
func (uc *VoidSaleUseCase) VoidSale(ctx context.Context, saleID string, in dto.VoidSaleRequest) error {
	if err := dto.Validate(in); err != nil {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return uc.txRunner.RunSale(ctx, func(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if err := sale.CanVoid(); err != nil {
			return err
		}

		items, err := saleRepo.GetItemsBySaleID(saleID)
		if err != nil {
			return err
		}
		reference := fmt.Sprintf("ANULACION %s: %s", saleID, in.Reason)
		for _, item := range items {
			if !item.Physical() {
				continue
			}
			if err := uc.engine.CreditInTx(
				batchRepo, productRepo, movRepo,
				item.ProductID, item.Quantity,
				entity.MovementReasonVoid, reference, in.RegisteredBy,
				now,
			); err != nil {
				return err
			}
		}

		// El motivo queda anexado al descriptor para auditoría; nunca se
		// borra ni sobreescribe el contenido previo.
		descriptor := payment.AppendNote(sale.PaymentDescriptor, "ANULADA: "+in.Reason)
		return saleRepo.UpdateStatus(saleID, entity.SaleStatusVoided, descriptor)
	})
}
