package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appdre "github.com/gestaoviva/dre-api/internal/application/dre"
	"github.com/gestaoviva/dre-api/internal/domain/entity"
	infrapdf "github.com/gestaoviva/dre-api/internal/infrastructure/pdf"
	"github.com/gestaoviva/dre-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestaoviva/dre-api/internal/interfaces/http"
	"github.com/gestaoviva/dre-api/pkg/config"
	"github.com/gestaoviva/dre-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	salesRepo := postgres.NewSalesRepository(pool)
	taxRepo := postgres.NewTaxLedgerRepository(pool)
	payablesRepo := postgres.NewPayablesRepository(pool)
	lookupRepo := postgres.NewLookupRepository(pool)

	channels := []appdre.ChannelSpec{
		{Channel: entity.ChannelVarejo, Companies: cfg.DRE.VarejoCompanies},
		{Channel: entity.ChannelMultimarcas, Companies: cfg.DRE.MultimarcasCompanies, Classification: cfg.DRE.MultimarcasClassification},
		{Channel: entity.ChannelFranquia, Companies: cfg.DRE.FranquiaCompanies},
		{Channel: entity.ChannelRevenda, Companies: cfg.DRE.RevendaCompanies},
	}

	// Progresso da resolução de impostos vai para o log de debug;
	// o motor em si não loga nada.
	onProgress := func(percent int) {
		log.Debug().Int("percent", percent).Msg("resolução de impostos")
	}

	statementUC := appdre.NewStatementUseCase(salesRepo, taxRepo, payablesRepo, lookupRepo, channels, onProgress)
	pdfGenerator := infrapdf.NewMarotoStatementGenerator()
	pdfUC := appdre.NewPDFUseCase(statementUC, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // montagens de período longo demoram
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StatementUC: statementUC,
		PDFUC:       pdfUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
