package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/access"
	"github.com/openmind-services/helpdesk-dashboard/internal/auth"
	"github.com/openmind-services/helpdesk-dashboard/internal/cache"
	"github.com/openmind-services/helpdesk-dashboard/internal/config"
	"github.com/openmind-services/helpdesk-dashboard/internal/events"
	"github.com/openmind-services/helpdesk-dashboard/internal/graph"
	"github.com/openmind-services/helpdesk-dashboard/internal/observability"
	"github.com/openmind-services/helpdesk-dashboard/internal/resolver"
	"github.com/openmind-services/helpdesk-dashboard/internal/service"
	"github.com/openmind-services/helpdesk-dashboard/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	department, err := selectDepartment(cfg)
	if err != nil {
		logger.Fatal("department selection failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens := auth.NewExpiryCheckedSource(auth.NewStaticTokenSource(cfg.Graph.AccessToken))
	client := graph.NewClient(cfg.Graph, tokens, logger)

	names := cache.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		names = cache.NewRedisCache(cfg.Redis, logger)
	}
	authors := resolver.New(client, names, cfg.Graph.LookupBatchLimit, logger)

	dispatcher := events.NewInMemoryDispatcher()
	syncService := service.NewSyncService(service.SyncDependencies{
		Store:      client,
		Resolver:   authors,
		Dispatcher: dispatcher,
		Logger:     logger,
		Department: department,
	})

	notifications := service.NewNotificationService(dispatcher, consoleNotifier{}, logger)
	notifications.RegisterHandlers()

	poller := worker.NewPoller(syncService, dispatcher, cfg.Poll.Interval(), logger)

	// The presentation contract: after a mutation the engine refreshes its
	// own state. A refresh already in flight will pick the change up anyway.
	dispatcher.Subscribe(events.EventTicketUpdated, func(ctx context.Context, e events.Event) error {
		go func() {
			if err := poller.Refresh(context.Background()); err != nil && err != worker.ErrRefreshInFlight {
				logger.Warn("post-update refresh failed", zap.Error(err))
			}
		}()
		return nil
	})

	// Log a dashboard summary after each completed cycle.
	dispatcher.Subscribe(events.EventTicketsRefreshed, func(ctx context.Context, e events.Event) error {
		end := time.Now()
		start := end.AddDate(0, 0, -30)
		stats := syncService.SummaryStats(start, end, cfg.Stats.TopReasonsSummary)
		logger.Info("dashboard summary",
			zap.String("department", department),
			zap.Int("total", stats.Total),
			zap.Int("resolved", stats.Resolved),
			zap.Int("pending", stats.Pending),
			zap.String("avg_resolution_hours", stats.AvgResolutionHours))
		return nil
	})

	logger.Info("starting ticket polling",
		zap.String("department", department),
		zap.Duration("interval", cfg.Poll.Interval()))
	poller.Start(ctx)

	waitForShutdown(logger)

	poller.Stop()
}

// selectDepartment applies the access directory when a user email is
// configured: unknown users are denied, and a user with exactly one
// department gets it auto-selected.
func selectDepartment(cfg *config.Config) (string, error) {
	mapping, err := cfg.Access.Mapping()
	if err != nil {
		return "", err
	}
	if cfg.App.UserEmail == "" {
		return cfg.App.Department, nil
	}

	directory := access.NewDirectory(mapping)
	departments := directory.DepartmentsForEmail(cfg.App.UserEmail)
	if len(departments) == 0 {
		return "", fmt.Errorf("no department access for %s", cfg.App.UserEmail)
	}
	if cfg.App.Department != "" {
		for _, d := range departments {
			if d == cfg.App.Department {
				return d, nil
			}
		}
		return "", fmt.Errorf("%s has no access to department %q", cfg.App.UserEmail, cfg.App.Department)
	}
	return departments[0], nil
}

// consoleNotifier is the stand-in for the UI toast surface.
type consoleNotifier struct{}

func (consoleNotifier) Notify(message string) {
	fmt.Fprintln(os.Stdout, message)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
