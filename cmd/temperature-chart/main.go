package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	httpapi "github.com/i474232898/temperature-chart/internal/api/http"
	"github.com/i474232898/temperature-chart/internal/chart"
	"github.com/i474232898/temperature-chart/internal/config"
	"github.com/i474232898/temperature-chart/internal/dashboard"
	"github.com/i474232898/temperature-chart/internal/dashboard/sources"
	"github.com/i474232898/temperature-chart/internal/scheduler"
	"github.com/i474232898/temperature-chart/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Shared HTTP client for remote datasets.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	source := sources.New(cfg.DataSource, httpClient)
	service := dashboard.NewService(source, memStore)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout)
	_, err = service.Load(loadCtx)
	cancelLoad()

	if cfg.ChartOutput != "" {
		if err != nil {
			log.Fatalf("failed to load dataset: %v", err)
		}
		if err := writeStaticChart(service, cfg.ChartOutput); err != nil {
			log.Fatalf("failed to write chart: %v", err)
		}
		log.WithField("path", cfg.ChartOutput).Info("chart written")
		return
	}

	// The server still starts without data; a later reload may succeed.
	if err != nil {
		log.Errorf("initial dataset load failed: %v", err)
	}

	// Scheduler that periodically reloads the dataset.
	sched := scheduler.New(cfg.ReloadInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "temperature-chart",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(compress.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		loaded := true
		if _, err := service.Current(); err != nil {
			loaded = false
		}
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "temperature-chart",
			"loaded":  loaded,
			"loads":   service.Loads(),
		})
	})

	// Page and API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}

// writeStaticChart renders every city over the full year to path.
func writeStaticChart(service *dashboard.Service, path string) error {
	var buf bytes.Buffer
	if _, err := service.Render(&buf, chart.AllCities, chart.LastMonth); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
