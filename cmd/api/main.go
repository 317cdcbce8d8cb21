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

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/auth"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
	"github.com/fieldserve/fieldserve-api/internal/infrastructure/memory"
	infranats "github.com/fieldserve/fieldserve-api/internal/infrastructure/nats"
	infrapdf "github.com/fieldserve/fieldserve-api/internal/infrastructure/pdf"
	"github.com/fieldserve/fieldserve-api/internal/infrastructure/postgres"
	"github.com/fieldserve/fieldserve-api/internal/infrastructure/redisrevoker"
	httpRouter "github.com/fieldserve/fieldserve-api/internal/interfaces/http"
	"github.com/fieldserve/fieldserve-api/pkg/config"
	"github.com/fieldserve/fieldserve-api/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	contractorRepo := postgres.NewContractorRepository(pool)
	estimateRepo := postgres.NewEstimateRepository(pool)
	handoffRepo := postgres.NewHandoffRepository(pool)
	pricingRepo := postgres.NewPricingOverrideRepository(pool)

	// Denylist de sesiones: Redis si está configurado, memoria si no.
	var revoker auth.TokenRevoker
	if cfg.Redis.URL != "" {
		r, err := redisrevoker.New(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer r.Close()
		revoker = r
	} else {
		log.Warn().Msg("REDIS_URL vacío: denylist de sesiones en memoria")
		revoker = memory.NewRevoker()
	}

	// Eventos de analítica: NATS si está configurado, descarte si no.
	var recorder analytics.Recorder = analytics.Noop{}
	if cfg.NATS.URL != "" {
		pub, err := infranats.Connect(cfg.NATS.URL, log)
		if err != nil {
			log.Error().Err(err).Msg("conexión a NATS; los eventos se descartan")
		} else {
			defer pub.Close()
			recorder = pub
		}
	}

	authUC := auth.NewAuthUseCase(contractorRepo, revoker, recorder, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, contractorRepo)
	teamUC := usecase.NewTeamUseCase(contractorRepo)
	estimateUC := usecase.NewEstimateUseCase(estimateRepo, recorder)
	pdfUC := usecase.NewEstimatePDFUseCase(
		estimateRepo, companyRepo, handoffRepo, pricingRepo,
		infrapdf.NewMarotoPDFGenerator(),
	)
	handoffUC := usecase.NewHandoffUseCase(
		handoffRepo, estimateRepo, contractorRepo, recorder,
		cfg.Handoff.StrictTransitions,
	)
	pricingUC := usecase.NewPricingUseCase(pricingRepo, estimateRepo, recorder)

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
		Title:    "FieldServe API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		TeamUC:     teamUC,
		EstimateUC: estimateUC,
		PDFUC:      pdfUC,
		HandoffUC:  handoffUC,
		PricingUC:  pricingUC,
		JWTSecret:  cfg.JWT.Secret,
		Revoker:    revoker,
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
