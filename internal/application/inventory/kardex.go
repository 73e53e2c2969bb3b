package inventory

import (
	"context"
	"time"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// QueryUseCase lecturas de inventario para auditoría y reportes: lotes en
// orden FEFO y exportación de kardex por producto.
type QueryUseCase struct {
	batchRepo   repository.BatchRepository
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	batchRepo repository.BatchRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{batchRepo: batchRepo, movRepo: movRepo, productRepo: productRepo}
}

// GetBatches devuelve los lotes del producto en orden FEFO (vencimiento
// ascendente, sin vencimiento de último), incluidos los que quedaron en cero.
func (uc *QueryUseCase) GetBatches(ctx context.Context, productID string) ([]dto.BatchResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp := dto.BatchResponse{
			ID:        b.ID,
			ProductID: b.ProductID,
			Label:     b.Label,
			Quantity:  b.Quantity,
			UnitCost:  b.UnitCost,
		}
		if b.ExpiresAt != nil {
			resp.ExpiresAt = b.ExpiresAt.Format("2006-01-02")
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetMovements exporta el kardex de un producto, opcionalmente acotado por fechas.
func (uc *QueryUseCase) GetMovements(ctx context.Context, productID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	movements, err := uc.movRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			Type:           m.Type,
			Quantity:       m.Quantity,
			Reason:         m.Reason,
			Reference:      m.Reference,
			ResultingStock: m.ResultingStock,
			Date:           m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
