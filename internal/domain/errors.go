package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Ventas
	ErrInvalidLine              = errors.New("línea de venta inválida")
	ErrMissingCustomerForCredit = errors.New("venta a crédito requiere cliente identificado")
	ErrSaleNotFound             = errors.New("venta no encontrada")
	ErrInvalidAmount            = errors.New("monto de abono inválido")
	ErrOverpayment              = errors.New("el abono excede el saldo de la venta")
	ErrAlreadyVoided            = errors.New("la venta ya está anulada")
	ErrPartialVoidForbidden     = errors.New("no se puede anular una venta con abonos parciales")

	// Inventario
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStockInconsistency = errors.New("inconsistencia entre stock agregado y lotes")
)
