package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	domaininv "github.com/despensa-solidaria/pos-api/internal/domain/inventory"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// RegisterEntryUseCase registra entradas de mercancía: crea el lote fechado,
// recalcula el agregado del producto y asienta la entrada (IN) en el kardex,
// todo en una transacción. Es la vía de siembra del inventario: la invariante
// de replay del kardex arranca de estas entradas.
type RegisterEntryUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRegisterEntryUseCase construye el caso de uso.
func NewRegisterEntryUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RegisterEntryUseCase {
	return &RegisterEntryUseCase{txRunner: txRunner, productRepo: productRepo}
}

// RegisterEntry valida y ejecuta la entrada.
func (uc *RegisterEntryUseCase) RegisterEntry(ctx context.Context, in dto.RegisterEntryRequest) error {
	if err := dto.Validate(in); err != nil {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	reason := in.Reason
	if reason == "" {
		reason = entity.MovementReasonSeed
	}
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		unitCost = *in.UnitCost
	}

	return uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		if _, err := productRepo.GetForUpdate(in.ProductID); err != nil {
			return err
		}
		batch := &entity.Batch{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Label:     in.Label,
			Quantity:  in.Quantity,
			ExpiresAt: in.ExpiresAt,
			UnitCost:  unitCost,
			CreatedAt: now,
		}
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		batches, err := batchRepo.ListByProduct(in.ProductID)
		if err != nil {
			return err
		}
		newStock := domaininv.TotalQuantity(batches)
		if err := productRepo.UpdateStock(in.ProductID, newStock); err != nil {
			return err
		}
		return movRepo.Create(&entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			Type:           entity.MovementTypeIN,
			Quantity:       in.Quantity,
			Reason:         reason,
			Reference:      batch.Label,
			ResultingStock: newStock,
			CreatedAt:      now,
			CreatedBy:      in.CreatedBy,
		})
	})
}
