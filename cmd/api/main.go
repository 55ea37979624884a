package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wym_site_backend/internal/events"
	"wym_site_backend/internal/geocode"
	apphttp "wym_site_backend/internal/http"
	"wym_site_backend/internal/http/router"
	"wym_site_backend/internal/places"
	"wym_site_backend/internal/pools"
	"wym_site_backend/internal/scheduler"
	"wym_site_backend/internal/subscribe"
	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	eventBus.Subscribe(events.EventSubscriberRegistered, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if reg, ok := e.(events.SubscriberRegistered); ok {
			log.Info("newsletter subscriber registered", "email", reg.Email, "memberId", reg.MemberID)
		}
		return nil
	}))

	relayQueue, closeQueue := initRelayScheduler(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	geocodeModule := geocode.NewModule(cfg, log)
	poolsModule := pools.NewModule(cfg, log)
	placesModule := places.NewModule(cfg, log)
	subscribeModule := subscribe.NewModule(cfg, val, relayQueue, eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			geocodeModule,
			poolsModule,
			placesModule,
			subscribeModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRelayScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.RelayScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; signup retry queue disabled")
		return nil, nil
	}

	relayClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize relay scheduler client", "error", err)
		return nil, nil
	}

	return relayClient, func() {
		_ = relayClient.Close()
	}
}
