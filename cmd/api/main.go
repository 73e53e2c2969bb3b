package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/application/inventory"
	"github.com/despensa-solidaria/pos-api/internal/application/sales"
	"github.com/despensa-solidaria/pos-api/internal/application/usecase"
	"github.com/despensa-solidaria/pos-api/internal/infrastructure/postgres"
	"github.com/despensa-solidaria/pos-api/internal/infrastructure/rates"
	httpRouter "github.com/despensa-solidaria/pos-api/internal/interfaces/http"
	"github.com/despensa-solidaria/pos-api/pkg/config"
	"github.com/despensa-solidaria/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var rdb *redis.Client
	if cfg.Rate.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Rate.RedisAddr,
			Password: cfg.Rate.RedisPassword,
			DB:       cfg.Rate.RedisDB,
		})
		defer rdb.Close()
	}

	fallbackRate, err := decimal.NewFromString(cfg.Rate.FallbackRate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Rate.FallbackRate).Msg("RATE_FALLBACK inválida")
	}
	rateProvider := rates.NewBCVProvider(rates.Config{
		SourceURL:       cfg.Rate.SourceURL,
		RefreshInterval: cfg.Rate.RefreshInterval,
		FallbackRate:    fallbackRate,
	}, rdb, log)
	rateProvider.Start(ctx)
	defer rateProvider.Stop()

	taxRate, err := decimal.NewFromString(cfg.Sales.TaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Sales.TaxRate).Msg("SALES_TAX_RATE inválida")
	}
	epsilon, err := decimal.NewFromString(cfg.Sales.PaymentEpsilon)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Sales.PaymentEpsilon).Msg("SALES_PAYMENT_EPSILON inválida")
	}
	salesCfg := sales.Config{TaxRate: taxRate, PaymentEpsilon: epsilon}

	engine := inventory.NewEngine()
	entryUC := inventory.NewRegisterEntryUseCase(txRunner, productRepo)
	inventoryQ := inventory.NewQueryUseCase(batchRepo, movementRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, engine, productRepo, customerRepo, saleRepo, rateProvider, salesCfg)
	applyPaymentUC := sales.NewApplyPaymentUseCase(txRunner, salesCfg)
	voidSaleUC := sales.NewVoidSaleUseCase(txRunner, engine)
	receiptUC := sales.NewReceiptUseCase(saleRepo, sales.NewReceiptRenderer(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		RegisterEntry: entryUC,
		InventoryQ:    inventoryQ,
		CreateSale:    createSaleUC,
		ApplyPayment:  applyPaymentUC,
		VoidSale:      voidSaleUC,
		ReceiptUC:     receiptUC,
		Rates:         rateProvider,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
