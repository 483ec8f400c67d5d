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

	"github.com/RoseMODA/rosema-pos-sub001/internal/application/auth"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/catalog"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/crm"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/sales"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
	"github.com/RoseMODA/rosema-pos-sub001/internal/infrastructure/memory"
	"github.com/RoseMODA/rosema-pos-sub001/internal/infrastructure/postgres"
	infraredis "github.com/RoseMODA/rosema-pos-sub001/internal/infrastructure/redis"
	httpRouter "github.com/RoseMODA/rosema-pos-sub001/internal/interfaces/http"
	"github.com/RoseMODA/rosema-pos-sub001/pkg/config"
	"github.com/RoseMODA/rosema-pos-sub001/pkg/logger"
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
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Estacionamiento de ventas: Redis si está configurado, memoria si no
	// (instalación de caja única sin Redis).
	var pendingRepo repository.PendingSaleRepository
	if cfg.Redis.Addr != "" {
		store := infraredis.NewPendingSaleStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := store.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer store.Close()
		pendingRepo = store
		log.Info().Str("addr", cfg.Redis.Addr).Msg("estacionamiento de ventas en Redis")
	} else {
		pendingRepo = memory.NewPendingSaleStore()
		log.Info().Msg("estacionamiento de ventas en memoria")
	}

	customerUC := crm.NewCustomerUseCase(customerRepo)
	productUC := catalog.NewProductUseCase(productRepo)
	commitSaleUC := sales.NewCommitSaleUseCase(txRunner, productRepo, customerUC, log.Component("sales"))
	returnUC := sales.NewReturnUseCase(txRunner, saleRepo, productRepo, log.Component("returns"))
	pendingUC := sales.NewPendingSaleUseCase(pendingRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rosema POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		CommitSale: commitSaleUC,
		ReturnUC:   returnUC,
		PendingUC:  pendingUC,
		CustomerUC: customerUC,
		AuthUC:     authUC,
		SaleRepo:   saleRepo,
		JWTSecret:  cfg.JWT.Secret,
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
