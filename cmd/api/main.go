package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/m1ndvortex/jewely-sub003/internal/application/admin"
	"github.com/m1ndvortex/jewely-sub003/internal/application/auth"
	"github.com/m1ndvortex/jewely-sub003/internal/application/crm"
	"github.com/m1ndvortex/jewely-sub003/internal/application/inventory"
	"github.com/m1ndvortex/jewely-sub003/internal/application/pos"
	"github.com/m1ndvortex/jewely-sub003/internal/infrastructure/cache"
	infrapdf "github.com/m1ndvortex/jewely-sub003/internal/infrastructure/pdf"
	"github.com/m1ndvortex/jewely-sub003/internal/infrastructure/postgres"
	httpRouter "github.com/m1ndvortex/jewely-sub003/internal/interfaces/http"
	"github.com/m1ndvortex/jewely-sub003/pkg/config"
	"github.com/m1ndvortex/jewely-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	terminalRepo := postgres.NewTerminalRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Idempotency store is optional: without Redis, retried checkouts are
	// not deduplicated.
	var idempotency pos.IdempotencyStore
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		idempotency = cache.NewIdempotencyStore(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency store enabled")
	}

	saleUC := pos.NewCreateSaleUseCase(txRunner, itemRepo, terminalRepo, customerRepo, saleRepo, idempotency)
	receiptUC := pos.NewReceiptUseCase(
		saleRepo, tenantRepo, branchRepo, customerRepo,
		infrapdf.NewMarotoReceiptGenerator(), cfg.POS.ReceiptFooter,
	)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, branchRepo, movRepo)
	customerUC := crm.NewCustomerUseCase(customerRepo)
	adminUC := admin.NewUseCase(tenantRepo, branchRepo, terminalRepo)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Jewely API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:      saleUC,
		ReceiptUC:   receiptUC,
		InventoryUC: inventoryUC,
		CustomerUC:  customerUC,
		AdminUC:     adminUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
