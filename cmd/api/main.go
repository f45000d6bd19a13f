package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dognft/docs"
	"dognft/internal/config"
	"dognft/internal/database"
	"dognft/internal/database/migration"
	handlers "dognft/internal/http/handler"
	"dognft/internal/http/middleware"
	"dognft/internal/logger"
	tracing "dognft/internal/otel"
	"dognft/internal/repository"
	"dognft/internal/repository/postgres"
	"dognft/internal/repository/sqlite"
	"dognft/internal/service"
	"dognft/internal/storage"
)

// @title DogNFT API
// @version 1.0
// @description Create dog-themed NFT records and follow their simulated generation.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, loc); err != nil {
		logger.Error(loc, "server_failed", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, loc *time.Location) error {
	shutdownTracing, err := tracing.Init(ctx, loc)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error(loc, "tracing_shutdown_failed", err, nil)
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Driver, loc, dbHost(cfg.Database)); err != nil {
		return err
	}

	images, err := newImageLocator(cfg)
	if err != nil {
		return err
	}

	nftSvc := service.NewNFTService(newRepository(cfg.Database.Driver, db), images)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "dognft"),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	app := fiber.New(handlers.AppConfig(
		time.Duration(cfg.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.WriteTimeoutSec)*time.Second,
	))

	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, nftSvc, images, loc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info(loc, "server_starting", map[string]any{"addr": addr, "db_driver": cfg.Database.Driver})
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(loc, "server_stopping", nil)
	return app.ShutdownWithTimeout(10 * time.Second)
}

func newRepository(driver string, db *sql.DB) repository.NFTRepository {
	if driver == config.DriverPostgres {
		return postgres.NewNFTPostgres(db)
	}
	return sqlite.NewNFTSQLite(db)
}

// newImageLocator publishes images through MinIO when configured, otherwise under ImageBaseURL.
func newImageLocator(cfg *config.AppConfig) (storage.ImageLocator, error) {
	if cfg.MinIO.Enabled() {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewStatic(cfg.ImageBaseURL), nil
}

func dbHost(c config.DatabaseConfig) string {
	if c.Driver == config.DriverPostgres {
		return c.Host
	}
	return c.SQLitePath
}
