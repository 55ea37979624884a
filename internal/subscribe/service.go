package subscribe

import (
	"context"
	"errors"

	"wym_site_backend/internal/events"
	"wym_site_backend/internal/scheduler"
	"wym_site_backend/platform/apperr"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/mailchimp"
	"wym_site_backend/platform/validator"
)

// mailer is the slice of the Mailchimp client the service needs.
type mailer interface {
	Enabled() bool
	Subscribe(ctx context.Context, email, name string) (string, error)
}

// Result reports how a signup was handled: delivered synchronously or
// queued for background retry.
type Result struct {
	MemberID string
	Queued   bool
}

// Service relays newsletter signups to the mailing provider. Provider
// rejections surface to the caller; transport failures fall back to the
// retry queue when one is configured.
type Service struct {
	mailer mailer
	val    *validator.Validator
	queue  scheduler.RelayScheduler
	bus    events.Bus
	log    *logger.Logger
}

// NewService creates the signup service. queue may be nil when no Redis
// is configured; transport failures then surface as errors.
func NewService(mailer mailer, val *validator.Validator, queue scheduler.RelayScheduler, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		mailer: mailer,
		val:    val,
		queue:  queue,
		bus:    bus,
		log:    log,
	}
}

func (s *Service) Subscribe(ctx context.Context, email, name string) (Result, error) {
	if err := s.val.Var(email, "required,email"); err != nil {
		return Result{}, apperr.Validation("a valid email is required")
	}
	if !s.mailer.Enabled() {
		return Result{}, apperr.Internal("newsletter provider not configured")
	}

	memberID, err := s.mailer.Subscribe(ctx, email, name)
	if err != nil {
		var apiErr *mailchimp.APIError
		if errors.As(err, &apiErr) {
			// Provider rejected the address; retrying would not help.
			return Result{}, err
		}

		if s.queue != nil {
			if qerr := s.queue.ScheduleSubscribeRelay(ctx, scheduler.SubscribeRelayPayload{Email: email, Name: name}); qerr == nil {
				s.log.Info("signup queued for background relay", "email", email)
				return Result{Queued: true}, nil
			}
		}
		return Result{}, apperr.Wrap(apperr.KindUpstream, "subscription service unavailable", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.SubscriberRegistered{
			BaseEvent: events.NewBaseEvent(),
			Email:     email,
			MemberID:  memberID,
		})
	}

	return Result{MemberID: memberID}, nil
}
