package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/tu-usuario/erp-multitenant/internal/application/audit"
	"github.com/tu-usuario/erp-multitenant/internal/application/auth"
	"github.com/tu-usuario/erp-multitenant/internal/application/inventory"
	"github.com/tu-usuario/erp-multitenant/internal/application/sales"
	"github.com/tu-usuario/erp-multitenant/internal/application/usecase"
	infrapdf "github.com/tu-usuario/erp-multitenant/internal/infrastructure/pdf"
	"github.com/tu-usuario/erp-multitenant/internal/infrastructure/postgres"
	"github.com/tu-usuario/erp-multitenant/internal/infrastructure/ratelimit"
	httpRouter "github.com/tu-usuario/erp-multitenant/internal/interfaces/http"
	"github.com/tu-usuario/erp-multitenant/pkg/config"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
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

	// Repositorios sobre el pool; TxRunner crea variantes ligadas a tx.
	userRepo := postgres.NewUserRepository(pool)
	superAdminRepo := postgres.NewSuperAdminRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	roleReqRepo := postgres.NewRoleRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Rate limiter del login: Redis si hay REDIS_ADDR (varias réplicas),
	// memoria con barrido periódico si no.
	window := time.Duration(cfg.Auth.RateLimitWindow) * time.Minute
	var loginLimiter ratelimit.Limiter
	var sweeper *cron.Cron
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		loginLimiter = ratelimit.NewRedisLimiter(rdb, cfg.Auth.RateLimitMax, window)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiter sobre Redis")
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(cfg.Auth.RateLimitMax, window)
		sweeper = cron.New()
		if _, err := sweeper.AddFunc("@every 5m", memLimiter.Sweep); err != nil {
			log.Fatal().Err(err).Msg("programar barrido del rate limiter")
		}
		sweeper.Start()
		loginLimiter = memLimiter
		log.Info().Msg("rate limiter en memoria (proceso único)")
	}

	authUC := auth.NewAuthUseCase(userRepo, superAdminRepo, companyRepo, cfg, log)
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	roleReqUC := usecase.NewRoleRequestUseCase(roleReqRepo, userRepo, log)
	productUC := usecase.NewProductUseCase(productRepo, log)
	customerUC := usecase.NewCustomerUseCase(customerRepo, log)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, inventoryRepo, movementRepo, log.Component("inventory"))
	salesUC := sales.NewUseCase(txRunner, inventoryUC, productRepo, customerRepo, invoiceRepo, log.Component("sales"))
	pdfUC := sales.NewPDFUseCase(invoiceRepo, companyRepo, infrapdf.NewMarotoPDFGenerator())
	auditRec := audit.NewRecorder(activityRepo, log.Component("audit"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP Multitenant API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		UserUC:       userUC,
		RoleReqUC:    roleReqUC,
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		InventoryUC:  inventoryUC,
		SalesUC:      salesUC,
		PDFUC:        pdfUC,
		Audit:        auditRec,
		LoginLimiter: loginLimiter,
		JWTSecret:    cfg.JWT.Secret,
		CookieMins:   cfg.JWT.Expiration,
		SecureCookie: cfg.App.IsProduction(),
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

	if sweeper != nil {
		sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
