// Command syncd periodically refreshes country data and drains the offline
// write queues against the upstream API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qivook/qivook-engine/internal/config"
	"github.com/qivook/qivook-engine/internal/database"
	"github.com/qivook/qivook-engine/internal/domain"
	"github.com/qivook/qivook-engine/internal/loader"
	"github.com/qivook/qivook-engine/internal/logging"
	"github.com/qivook/qivook-engine/internal/offline"
	"github.com/qivook/qivook-engine/internal/processor"
	"github.com/qivook/qivook-engine/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	once := flag.Bool("once", false, "run a single sync cycle and exit")
	flag.Parse()

	if err := run(*configPath, *once); err != nil {
		fmt.Fprintf(os.Stderr, "syncd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, once bool) error {
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

	logger.Info("starting sync daemon",
		logging.Duration("interval", cfg.Sync.Interval),
		logging.Int("rps", cfg.Sync.RPS))

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

	syncer := offline.NewSyncer(cfg.Offline.UpstreamURL, queue, cfg.Sync.RPS, logger,
		offline.WithSyncTelemetry(provider))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCycle(ctx, cfg, countryLoader, syncer, logger)
	if once {
		return nil
	}

	ticker := time.NewTicker(cfg.Sync.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("sync daemon stopping")
			return nil
		case <-ticker.C:
			runCycle(ctx, cfg, countryLoader, syncer, logger)
		}
	}
}

// runCycle refreshes every configured country and drains both offline
// queues. Failures are logged and retried on the next cycle.
func runCycle(
	ctx context.Context,
	cfg *config.Config,
	countryLoader *loader.Loader,
	syncer *offline.Syncer,
	logger logging.Logger,
) {
	started := time.Now()

	for _, code := range cfg.Data.Countries {
		country := domain.CountryCode(code)
		if !country.IsValid() {
			logger.Warn("skipping unsupported country", logging.String("code", code))
			continue
		}
		data := countryLoader.Get(ctx, country, true)
		logger.Info("country data refreshed",
			logging.String("country", code),
			logging.Int("completeness", data.Profile.Completeness))
	}

	if err := syncer.SyncPriceReports(ctx); err != nil {
		logger.Warn("price report sync failed", logging.Error(err))
	}
	if err := syncer.SyncSupplierReviews(ctx); err != nil {
		logger.Warn("supplier review sync failed", logging.Error(err))
	}

	logger.Info("sync cycle complete", logging.Duration("elapsed", time.Since(started)))
}
