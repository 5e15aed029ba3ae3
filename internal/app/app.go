package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/mselser95/bybit-sniper/internal/execution"
	"github.com/mselser95/bybit-sniper/internal/journal"
	"github.com/mselser95/bybit-sniper/internal/market"
	"github.com/mselser95/bybit-sniper/internal/preflight"
	"github.com/mselser95/bybit-sniper/internal/scheduler"
	"github.com/mselser95/bybit-sniper/internal/sizing"
	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/mselser95/bybit-sniper/pkg/cache"
	"github.com/mselser95/bybit-sniper/pkg/config"
	"github.com/mselser95/bybit-sniper/pkg/healthprobe"
	"github.com/mselser95/bybit-sniper/pkg/httpserver"
	"go.uber.org/zap"
)

// App wires the pipeline together: one client, one run, one order.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	client        *bybit.Client
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server // nil when HTTP_PORT is unset
	catalogCache  cache.Catalog
	preflight     *preflight.Checker
	scheduler     *scheduler.Scheduler
	listingPoller *market.Poller
	priceSampler  *market.Sampler
	sizer         *sizing.Sizer
	submitter     *execution.Submitter
	supervisor    *execution.Supervisor
	journal       journal.Journal
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// New creates a new application instance. The client is constructed once here
// and passed explicitly to every stage; no stage reaches for ambient state.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	client := bybit.NewClient(&bybit.Config{
		BaseURL:   cfg.BybitBaseURL,
		APIKey:    cfg.BybitAPIKey,
		APISecret: cfg.BybitAPISecret,
		Logger:    logger,
	})

	catalogCache, err := cache.NewRistrettoCatalog(&cache.RistrettoConfig{
		NumCounters: 1e5,
		MaxCost:     1e4,
		BufferItems: 64,
		Logger:      logger,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup instrument cache: %w", err)
	}

	healthChecker := healthprobe.New()

	var httpServer *httpserver.Server
	if cfg.HTTPPort != "" {
		httpServer = httpserver.New(&httpserver.Config{
			Port:          cfg.HTTPPort,
			Logger:        logger,
			HealthChecker: healthChecker,
		})
	}

	orderJournal, err := setupJournal(cfg, logger)
	if err != nil {
		cancel()
		catalogCache.Close()
		return nil, fmt.Errorf("setup journal: %w", err)
	}

	return &App{
		cfg:           cfg,
		logger:        logger,
		client:        client,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		catalogCache:  catalogCache,
		preflight:     preflight.New(client, logger),
		scheduler:     scheduler.New(client, logger),
		listingPoller: market.NewPoller(client, cfg.PairCheckInterval, logger),
		priceSampler:  market.NewSampler(client, cfg.PriceCheckInterval, logger),
		sizer:         sizing.New(logger),
		submitter:     execution.NewSubmitter(client, logger),
		supervisor:    execution.NewSupervisor(client, cfg.OrderTimeout, logger),
		journal:       orderJournal,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupJournal(cfg *config.Config, logger *zap.Logger) (journal.Journal, error) {
	if cfg.JournalMode == "postgres" {
		return journal.NewPostgresJournal(&journal.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
	}

	return journal.NewConsoleJournal(logger), nil
}
