package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wym_site_backend/internal/events"
	"wym_site_backend/internal/scheduler"
	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/mailchimp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting relay worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewInMemoryBus(log)

	worker, err := scheduler.NewWorker(cfg, mailchimp.New(cfg, log), eventBus, log)
	if err != nil {
		log.Error("failed to initialize relay worker", "error", err)
		panic("failed to initialize relay worker: " + err.Error())
	}

	worker.Run(ctx)
}
