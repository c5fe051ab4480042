// Command httpd serves the country data API and the offline gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qivook/qivook-engine/internal/api"
	"github.com/qivook/qivook-engine/internal/config"
	"github.com/qivook/qivook-engine/internal/database"
	"github.com/qivook/qivook-engine/internal/loader"
	"github.com/qivook/qivook-engine/internal/logging"
	"github.com/qivook/qivook-engine/internal/offline"
	"github.com/qivook/qivook-engine/internal/processor"
	"github.com/qivook/qivook-engine/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "httpd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting qivook engine",
		logging.String("version", cfg.Service.Version),
		logging.Int("api_port", cfg.Service.Port),
		logging.Int("gateway_port", cfg.Offline.Port))

	provider := telemetry.NewProvider()

	proc := processor.New(logger, processor.WithTelemetry(provider))
	countryLoader := loader.New(cfg.Data.Dir, proc, logger,
		loader.WithTTL(cfg.Data.CacheTTL),
		loader.WithTelemetry(provider))

	db, err := database.NewSQLiteConnection(cfg.Offline.DBPath)
	if err != nil {
		return fmt.Errorf("open queue database: %w", err)
	}
	defer func() { _ = db.Close() }()
	queue := database.NewQueueRepository(db)

	handler := api.NewHandler(countryLoader, cfg.Service.Name, cfg.Service.Version, logger)
	apiServer := api.NewServer(api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, handler, provider.Handler(), logger)

	cache := offline.NewResponseCache(cfg.Offline.CacheRoot, logger)
	gateway, err := offline.New(cfg.Offline.UpstreamURL, cache, queue, logger,
		offline.WithShellDir(cfg.Offline.ShellDir),
		offline.WithClient(&http.Client{Timeout: cfg.Offline.UpstreamTimeout}),
		offline.WithTelemetry(provider))
	if err != nil {
		return fmt.Errorf("init offline gateway: %w", err)
	}
	gateway.Activate()
	gateway.Install(context.Background())

	gatewayServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Offline.Port),
		Handler:     gateway,
		ReadTimeout: 30 * time.Second,
	}

	serverErrors := make(chan error, 2)
	go func() {
		serverErrors <- apiServer.Start()
	}()
	go func() {
		logger.Info("offline gateway listening", logging.String("addr", gatewayServer.Addr))
		if listenErr := gatewayServer.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("offline gateway: %w", listenErr)
			return
		}
		serverErrors <- nil
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			return err
		}
	case sig := <-shutdown:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := gatewayServer.Shutdown(ctx); err != nil {
			logger.Error("offline gateway shutdown failed", logging.Error(err))
		}
		if err := apiServer.Shutdown(ctx); err != nil {
			return err
		}
		logger.Info("servers stopped gracefully")
	}
	return nil
}
