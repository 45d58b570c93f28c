package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invoiceless/internal/application/invoicing"
	inframail "github.com/jhoicas/invoiceless/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/invoiceless/internal/infrastructure/pdf"
	infrascheduler "github.com/jhoicas/invoiceless/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/invoiceless/internal/interfaces/http"
	"github.com/jhoicas/invoiceless/pkg/config"
	"github.com/jhoicas/invoiceless/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Fatal().Err(err).Msg("configuración AWS")
	}

	// Colaboradores externos: se construyen una vez aquí y se inyectan en las
	// tuberías — nada de clientes globales.
	renderer := infrapdf.NewMarotoInvoiceRenderer(cfg.PDF.Path)
	composer := inframail.NewGomailComposer()
	sender := inframail.NewSESSender(ses.NewFromConfig(awsCfg), log)
	schedules := infrascheduler.NewEventBridgeManager(
		eventbridge.NewFromConfig(awsCfg),
		infrascheduler.Config{
			RoleARN:   cfg.Scheduler.RoleARN,
			TargetARN: cfg.Scheduler.TargetARN,
		},
		log,
	)

	sendUC := invoicing.NewSendInvoiceUseCase(renderer, composer, sender)
	scheduleUC := invoicing.NewScheduleUseCase(schedules)
	unscheduleUC := invoicing.NewUnscheduleUseCase(schedules)

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
		Title:    "Invoiceless API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SendInvoice: sendUC,
		Schedule:    scheduleUC,
		Unschedule:  unscheduleUC,
		Log:         log,
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
