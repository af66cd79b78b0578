package ports

import "context"

// EventHandler processes the event_data portion of a delivered message.
// A returned error signals that processing failed and the message should be
// redelivered; handlers must therefore tolerate duplicates.
type EventHandler func(ctx context.Context, eventData []byte) error

// EventPublisher sends typed events to the bus. A publish failure means the
// event is not guaranteed delivered; there is no internal retry queue.
type EventPublisher interface {
	// Publish wraps payload in the event envelope and sends it with the
	// event type as routing key.
	Publish(ctx context.Context, eventType string, payload any) error

	// Close releases the broker connection. Safe to call multiple times.
	Close() error
}

// EventSubscriber binds handlers to event types and consumes their queues.
type EventSubscriber interface {
	// Subscribe declares the durable queue for eventType, binds it to the
	// exchange and registers handler in the routing table. Consumption does
	// not start until StartListening.
	Subscribe(eventType string, handler EventHandler) error

	// StartListening starts one background consumer loop per subscribed
	// queue and returns. Within a queue, messages are handled one at a time.
	StartListening(ctx context.Context) error

	// Close stops the consumer loops and releases the broker connection.
	// Safe to call multiple times.
	Close() error
}
