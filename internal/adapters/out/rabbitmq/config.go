// Package rabbitmq implements the event bus ports over a RabbitMQ topic
// exchange. Every event type gets its own durable queue named
// <event_type>_queue, bound with the event type as routing key. Delivery is
// at-least-once with manual acknowledgement.
package rabbitmq

import (
	"fmt"

	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
)

// Config holds the broker connection and topology settings shared by the
// publisher and the subscriber.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string

	// Exchange is the topic exchange all events flow through.
	Exchange string

	// DeadLetterExchange receives dropped messages (unroutable handlers,
	// poison payloads). Empty disables dead-lettering: failing redeliveries
	// are then requeued instead of dropped, and only messages without a
	// registered handler are discarded by the broker.
	DeadLetterExchange string
}

// Validate checks that the connection fields are set.
func (c Config) Validate() error {
	if c.Host == "" {
		return errs.NewValueIsRequiredError("host")
	}
	if c.Port == "" {
		return errs.NewValueIsRequiredError("port")
	}
	if c.User == "" {
		return errs.NewValueIsRequiredError("user")
	}
	if c.Password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if c.Exchange == "" {
		return errs.NewValueIsRequiredError("exchange")
	}
	return nil
}

// URL renders the AMQP connection string.
func (c Config) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Password, c.Host, c.Port)
}

// queueName derives the durable queue name for an event type.
func queueName(eventType string) string {
	return eventType + "_queue"
}
