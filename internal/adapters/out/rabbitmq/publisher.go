package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends events to the topic exchange. Messages are persistent JSON
// envelopes routed by event type; delivery to bound queues is fire-and-forget
// from the publisher's point of view.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewPublisher connects to the broker and declares the topic exchange.
func NewPublisher(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, &TransportError{Op: "dial", Cause: err}
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, &TransportError{Op: "open channel", Cause: err}
	}

	if err = declareExchanges(channel, cfg); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		logger:   logger.With("component", "rabbitmq_publisher"),
	}, nil
}

// Publish wraps payload in the event envelope and sends it with eventType as
// the routing key.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrBusClosed
	}
	p.mu.Unlock()

	body, err := encodeEnvelope(eventType, payload)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		eventType, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return &TransportError{Op: "publish " + eventType, Cause: err}
	}

	p.logger.DebugContext(ctx, "Event published", "event_type", eventType)
	return nil
}

// Close releases the channel and connection. Safe to call multiple times.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return &TransportError{Op: "close channel", Cause: err}
	}
	if err := p.conn.Close(); err != nil {
		return &TransportError{Op: "close connection", Cause: err}
	}
	return nil
}

// encodeEnvelope wraps an already-typed payload in the wire envelope.
func encodeEnvelope(eventType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(events.Envelope{
		EventType: eventType,
		EventData: data,
	})
}

// declareExchanges sets up the topic exchange and, when configured, the
// dead-letter fanout with its catch-all queue.
func declareExchanges(channel *amqp.Channel, cfg Config) error {
	err := channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return &TransportError{Op: "declare exchange " + cfg.Exchange, Cause: err}
	}

	if cfg.DeadLetterExchange == "" {
		return nil
	}

	err = channel.ExchangeDeclare(
		cfg.DeadLetterExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return &TransportError{Op: "declare exchange " + cfg.DeadLetterExchange, Cause: err}
	}

	deadQueue, err := channel.QueueDeclare(
		cfg.DeadLetterExchange+"_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return &TransportError{Op: "declare dead-letter queue", Cause: err}
	}

	if err = channel.QueueBind(deadQueue.Name, "", cfg.DeadLetterExchange, false, nil); err != nil {
		return &TransportError{Op: "bind dead-letter queue", Cause: err}
	}

	return nil
}
