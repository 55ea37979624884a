package subscribe

import (
	"context"
	"errors"
	"sync"
	"testing"

	"wym_site_backend/internal/events"
	"wym_site_backend/internal/scheduler"
	"wym_site_backend/platform/apperr"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/mailchimp"
	"wym_site_backend/platform/validator"
)

type fakeMailer struct {
	enabled  bool
	memberID string
	err      error
	calls    int
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Subscribe(ctx context.Context, email, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.memberID, nil
}

type fakeQueue struct {
	payloads []scheduler.SubscribeRelayPayload
	err      error
}

func (f *fakeQueue) ScheduleSubscribeRelay(ctx context.Context, payload scheduler.SubscribeRelayPayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type capturingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *capturingBus) Publish(ctx context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *capturingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *capturingBus) Subscribe(eventName string, handler events.Handler) {}

func TestSubscribe_InvalidEmailRejectedBeforeProvider(t *testing.T) {
	mailer := &fakeMailer{enabled: true}
	svc := NewService(mailer, validator.New(), nil, nil, logger.New("test"))

	_, err := svc.Subscribe(context.Background(), "not-an-email", "A")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if mailer.calls != 0 {
		t.Fatal("expected provider untouched for invalid email")
	}
}

func TestSubscribe_NotConfiguredIsInternal(t *testing.T) {
	svc := NewService(&fakeMailer{enabled: false}, validator.New(), nil, nil, logger.New("test"))

	_, err := svc.Subscribe(context.Background(), "a@example.com", "A")
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestSubscribe_SuccessPublishesEvent(t *testing.T) {
	bus := &capturingBus{}
	svc := NewService(&fakeMailer{enabled: true, memberID: "abc123"}, validator.New(), nil, bus, logger.New("test"))

	result, err := svc.Subscribe(context.Background(), "a@example.com", "A")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if result.MemberID != "abc123" || result.Queued {
		t.Fatalf("unexpected result %+v", result)
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.events) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.events))
	}
	reg, ok := bus.events[0].(events.SubscriberRegistered)
	if !ok || reg.Email != "a@example.com" || reg.MemberID != "abc123" {
		t.Fatalf("unexpected event %+v", bus.events[0])
	}
}

func TestSubscribe_ProviderRejectionPassesThrough(t *testing.T) {
	apiErr := &mailchimp.APIError{Status: 400, Title: "Member Exists"}
	queue := &fakeQueue{}
	svc := NewService(&fakeMailer{enabled: true, err: apiErr}, validator.New(), queue, nil, logger.New("test"))

	_, err := svc.Subscribe(context.Background(), "a@example.com", "A")
	var got *mailchimp.APIError
	if !errors.As(err, &got) || got.Title != "Member Exists" {
		t.Fatalf("expected provider rejection passed through, got %v", err)
	}
	if len(queue.payloads) != 0 {
		t.Fatal("rejections must not be queued for retry")
	}
}

func TestSubscribe_TransportFailureFallsBackToQueue(t *testing.T) {
	queue := &fakeQueue{}
	svc := NewService(&fakeMailer{enabled: true, err: errors.New("connection reset")}, validator.New(), queue, nil, logger.New("test"))

	result, err := svc.Subscribe(context.Background(), "a@example.com", "A")
	if err != nil {
		t.Fatalf("expected queued fallback, got %v", err)
	}
	if !result.Queued {
		t.Fatalf("expected Queued result, got %+v", result)
	}
	if len(queue.payloads) != 1 || queue.payloads[0].Email != "a@example.com" {
		t.Fatalf("unexpected queue payloads %+v", queue.payloads)
	}
}

func TestSubscribe_TransportFailureWithoutQueueIsUpstream(t *testing.T) {
	svc := NewService(&fakeMailer{enabled: true, err: errors.New("connection reset")}, validator.New(), nil, nil, logger.New("test"))

	_, err := svc.Subscribe(context.Background(), "a@example.com", "A")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
