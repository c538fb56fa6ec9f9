package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/weather-sample-server/internal/api/http"
	"github.com/i474232898/weather-sample-server/internal/audiogen"
	"github.com/i474232898/weather-sample-server/internal/catalog"
	"github.com/i474232898/weather-sample-server/internal/config"
	"github.com/i474232898/weather-sample-server/internal/observability"
	"github.com/i474232898/weather-sample-server/internal/scheduler"
	"github.com/i474232898/weather-sample-server/internal/store"
	"github.com/i474232898/weather-sample-server/internal/weather"
	"github.com/i474232898/weather-sample-server/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Samples must exist before the first request is served.
	gen := audiogen.Runner{Interpreter: cfg.AudioGenInterpreter, Script: cfg.AudioGenPath}
	if err := gen.Run(ctx); err != nil {
		log.Fatalf("failed to generate audio: %v", err)
	}

	// The catalog is loaded once and shared read-only by all handlers.
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	log.Printf("INFO: sets %v", cat.Sets())

	metrics := observability.NewMetrics()

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	provider, err := providers.New(cfg.WeatherMode, httpClient, cfg.WeatherAPIEndpoint, cfg.WeatherAPIKey)
	if err != nil {
		log.Fatalf("failed to configure weather provider: %v", err)
	}
	log.Printf("INFO: weather provider %s", provider.Name())

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	service := weather.NewService(memStore, provider, cfg.ReadingMaxAge, metrics)

	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, cfg.WeatherTimeout, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	handler := httpapi.NewHandler(cat, service, metrics, httpapi.Paths{
		BuildDir:      cfg.BuildDir,
		SoundsPath:    cfg.SoundsPath,
		GeneratedPath: cfg.GeneratedPath,
	}, cfg.WeatherTimeout)
	app := httpapi.NewApp(handler)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s", cfg.Port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
