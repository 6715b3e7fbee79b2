package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/retailcrm-bff/internal/application/usecase"
	"github.com/jhoicas/retailcrm-bff/internal/domain/repository"
	"github.com/jhoicas/retailcrm-bff/internal/infrastructure/postgres"
	"github.com/jhoicas/retailcrm-bff/internal/infrastructure/retailcrm"
	httpRouter "github.com/jhoicas/retailcrm-bff/internal/interfaces/http"
	"github.com/jhoicas/retailcrm-bff/pkg/config"
	"github.com/jhoicas/retailcrm-bff/pkg/logger"
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
		Str("crm_site", cfg.CRM.Site).
		Msg("iniciando aplicación")

	// Cliente del CRM: construido una sola vez e inyectado; no hay estado
	// global ni singleton.
	crm := retailcrm.NewClient(cfg.CRM)

	// Esquema espejo opcional: sin DATABASE_URL la aplicación corre solo
	// contra el CRM y los casos de uso reciben repositorios nil.
	var (
		customerShadow repository.CustomerShadow
		orderShadow    repository.OrderShadow
		paymentShadow  repository.PaymentShadow
	)
	if cfg.DB.Enabled() {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		customerShadow = postgres.NewCustomerRepository(pool)
		orderShadow = postgres.NewOrderRepository(pool)
		paymentShadow = postgres.NewPaymentRepository(pool)
		log.Info().Msg("esquema espejo habilitado")
	}

	customerUC := usecase.NewCustomerUseCase(crm, customerShadow, log)
	orderUC := usecase.NewOrderUseCase(crm, orderShadow, log)
	paymentUC := usecase.NewPaymentUseCase(crm, paymentShadow, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		OrderUC:    orderUC,
		PaymentUC:  paymentUC,
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
