// Package notify is the in-process notification stream the
// presentation layer consumes. The engine publishes; it never waits
// on or hears back from subscribers.
package notify

import "github.com/talgya/tradewinds/internal/catalog"

// Kind classifies a notification.
type Kind string

const (
	KindEventStarted       Kind = "event_started"
	KindEventEnded         Kind = "event_ended"
	KindGlobalEventStarted Kind = "global_event_started"
	KindGlobalEventEnded   Kind = "global_event_ended"
	KindReputationChanged  Kind = "reputation_changed"
	KindPriceAlert         Kind = "price_alert"
)

// Notification is one message for the presentation layer.
type Notification struct {
	Kind     Kind               `json:"kind"`
	Location catalog.LocationID `json:"location,omitempty"`
	Item     catalog.ItemID     `json:"item,omitempty"`
	Message  string             `json:"message"`
	Minute   int64              `json:"minute"`
}

// Bus fans notifications out to registered subscribers, in
// subscription order, synchronously.
type Bus struct {
	subs []func(Notification)
}

// NewBus creates an empty bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers a listener for all notifications.
func (b *Bus) Subscribe(fn func(Notification)) {
	if fn != nil {
		b.subs = append(b.subs, fn)
	}
}

// Publish delivers a notification to every subscriber.
func (b *Bus) Publish(n Notification) {
	for _, fn := range b.subs {
		fn(n)
	}
}
