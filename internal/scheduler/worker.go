package scheduler

import (
	"context"
	"fmt"

	"wym_site_backend/internal/events"
	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Relayer delivers a signup to the mailing provider. Returning an error
// makes asynq retry the task with backoff.
type Relayer interface {
	Subscribe(ctx context.Context, email, name string) (string, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	relay  Relayer
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, relay Relayer, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		relay:  relay,
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskSubscribeRelay, w.handleSubscribeRelay)

	return w, nil
}

func (w *Worker) handleSubscribeRelay(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSubscribeRelayPayload(task)
	if err != nil {
		return err
	}

	memberID, err := w.relay.Subscribe(ctx, payload.Email, payload.Name)
	if err != nil {
		return err
	}

	if w.bus != nil {
		w.bus.Publish(ctx, events.SubscriberRegistered{
			BaseEvent: events.NewBaseEvent(),
			Email:     payload.Email,
			MemberID:  memberID,
		})
	}

	w.log.Info("subscribe relay delivered", "email", payload.Email)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("relay worker stopped", "error", err)
	}
}
