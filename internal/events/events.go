package events

// Event names published on the bus.
const (
	EventSubscriberRegistered = "subscriber.registered"
)

// SubscriberRegistered is published when a newsletter signup was accepted
// by the mailing provider.
type SubscriberRegistered struct {
	BaseEvent
	Email    string
	MemberID string
}

// EventName returns the event identifier.
func (SubscriberRegistered) EventName() string {
	return EventSubscriberRegistered
}
