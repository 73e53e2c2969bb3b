package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	"github.com/despensa-solidaria/pos-api/internal/domain/payment"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// ApplyPaymentUseCase registra abonos sobre ventas a crédito contra el libro
// autoritativo de la venta. No toca inventario: solo amount_paid, status y la
// nota de cobro anexada al descriptor (la historia completa de pagos vive en
// ese campo, nunca se sobreescribe).
type ApplyPaymentUseCase struct {
	txRunner SaleTxRunner
	cfg      Config
}

// NewApplyPaymentUseCase construye el caso de uso.
func NewApplyPaymentUseCase(txRunner SaleTxRunner, cfg Config) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{txRunner: txRunner, cfg: cfg}
}

// ApplyPayment aplica un abono. Rechaza montos no positivos y abonos que
// excedan el saldo más la tolerancia epsilon (redondeo flotante de los
// montos capturados a mano). El estado pasa a PAID cuando lo cobrado alcanza
// el total dentro de epsilon, si no a PARCIAL.
func (uc *ApplyPaymentUseCase) ApplyPayment(ctx context.Context, saleID string, in dto.ApplyPaymentRequest) (*dto.ApplyPaymentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	var resp *dto.ApplyPaymentResponse
	err := uc.txRunner.RunSale(ctx, func(
		_ repository.BatchRepository,
		_ repository.ProductRepository,
		_ repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if sale.Status == entity.SaleStatusVoided {
			return domain.ErrAlreadyVoided
		}
		newPaid := sale.AmountPaid.Add(in.Amount)
		if newPaid.GreaterThan(sale.TotalUSD.Add(uc.cfg.PaymentEpsilon)) {
			return domain.ErrOverpayment
		}
		status := entity.SettleStatus(sale.TotalUSD, newPaid, uc.cfg.PaymentEpsilon)

		note := fmt.Sprintf("ABONO %s %s", in.Amount.StringFixed(2), in.Method)
		if in.Reference != "" {
			note += " REF:" + in.Reference
		}
		descriptor := payment.AppendNote(sale.PaymentDescriptor, note)

		if err := saleRepo.UpdatePayment(saleID, newPaid, status, descriptor); err != nil {
			return err
		}

		remaining := sale.TotalUSD.Sub(newPaid)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}
		resp = &dto.ApplyPaymentResponse{SaleID: saleID, Status: status, Remaining: remaining}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
