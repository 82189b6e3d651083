package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"devapi/docs"
	"devapi/internal/config"
	"devapi/internal/database"
	"devapi/internal/database/migration"
	handlers "devapi/internal/http/handler"
	"devapi/internal/http/middleware"
	"devapi/internal/logger"
	"devapi/internal/otel"
	"devapi/internal/repository/postgres"
	"devapi/internal/service"
	"devapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs --parseInternal

// bootstrapLogger is used until the configured logger exists.
func bootstrapLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// @title Developer API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		boot := bootstrapLogger(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	devRepo := postgres.NewDeveloperPostgres(db)
	devSvc := service.NewDeveloperService(devRepo)

	// Snapshot export is only available when object storage is configured.
	var snapSvc service.SnapshotService
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		snapSvc = service.NewSnapshotService(objStore, devRepo, cfg.MinIO.URLExpiry)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, devSvc, snapSvc)
	app.Get("/metrics", handlers.Metrics(reg))

	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Bool("exports_enabled", snapSvc != nil).Msg("server_starting")

	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("failed to start server")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(sctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
