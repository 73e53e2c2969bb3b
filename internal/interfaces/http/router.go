package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despensa-solidaria/pos-api/internal/application/inventory"
	"github.com/despensa-solidaria/pos-api/internal/application/sales"
	"github.com/despensa-solidaria/pos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	RegisterEntry *inventory.RegisterEntryUseCase
	InventoryQ    *inventory.QueryUseCase
	CreateSale    *sales.CreateSaleUseCase
	ApplyPayment  *sales.ApplyPaymentUseCase
	VoidSale      *sales.VoidSaleUseCase
	ReceiptUC     *sales.ReceiptUseCase
	Rates         RateSource
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo + vistas de inventario por producto)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterEntry, deps.InventoryQ)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/batches", inventoryHandler.GetBatches)
	products.Get("/:id/movements", inventoryHandler.GetMovements)

	// Inventory entries (lotes)
	invGroup := api.Group("/inventory")
	invGroup.Post("/entries", inventoryHandler.RegisterEntry)

	// Customers (fiados)
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Sales (liquidación, abonos, anulación, ticket)
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ApplyPayment, deps.VoidSale, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/payments", saleHandler.ApplyPayment)
	salesGroup.Post("/:id/void", saleHandler.Void)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Exchange rate
	rateHandler := NewRateHandler(deps.Rates)
	api.Get("/rates/current", rateHandler.Current)
}
