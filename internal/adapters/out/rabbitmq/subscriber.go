package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Subscriber consumes the per-event-type queues and dispatches deliveries to
// registered handlers. Acknowledgement policy:
//
//   - handler succeeded: ack
//   - handler failed, first delivery: nack with requeue
//   - handler failed, redelivery: nack without requeue when a dead-letter
//     exchange is configured (poison message lands there); without one the
//     message is requeued so it is never silently lost
//   - no handler for the event type: nack without requeue
//
// Within one queue, messages are processed one at a time in delivery order.
type Subscriber struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     Config
	logger  *slog.Logger

	mu       sync.Mutex
	handlers map[string]ports.EventHandler
	closed   bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewSubscriber connects to the broker and declares the topic exchange.
func NewSubscriber(cfg Config, logger *slog.Logger) (*Subscriber, error) {
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

	// one in-flight message per consumer loop
	if err = channel.Qos(1, 0, false); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, &TransportError{Op: "set qos", Cause: err}
	}

	return &Subscriber{
		conn:     conn,
		channel:  channel,
		cfg:      cfg,
		logger:   logger.With("component", "rabbitmq_subscriber"),
		handlers: make(map[string]ports.EventHandler),
	}, nil
}

// Subscribe declares the durable queue for eventType, binds it to the
// exchange with the event type as routing key, and registers the handler.
func (s *Subscriber) Subscribe(eventType string, handler ports.EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrBusClosed
	}

	var args amqp.Table
	if s.cfg.DeadLetterExchange != "" {
		args = amqp.Table{"x-dead-letter-exchange": s.cfg.DeadLetterExchange}
	}

	queue, err := s.channel.QueueDeclare(
		queueName(eventType),
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		args,
	)
	if err != nil {
		return &TransportError{Op: "declare queue " + queueName(eventType), Cause: err}
	}

	if err = s.channel.QueueBind(queue.Name, eventType, s.cfg.Exchange, false, nil); err != nil {
		return &TransportError{Op: "bind queue " + queue.Name, Cause: err}
	}

	s.handlers[eventType] = handler
	return nil
}

// StartListening starts one consumer loop per subscribed queue and returns.
// The loops stop when ctx is cancelled or the subscriber is closed.
func (s *Subscriber) StartListening(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrBusClosed
	}

	eventTypes := make([]string, 0, len(s.handlers))
	for eventType := range s.handlers {
		eventTypes = append(eventTypes, eventType)
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	for _, eventType := range eventTypes {
		deliveries, err := s.channel.Consume(
			queueName(eventType),
			"",    // consumer tag
			false, // auto-ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return &TransportError{Op: "consume " + queueName(eventType), Cause: err}
		}

		s.wg.Add(1)
		go s.consumeLoop(ctx, eventType, deliveries)
	}

	s.logger.InfoContext(ctx, "Event consumers started", "queues", len(eventTypes))
	return nil
}

func (s *Subscriber) consumeLoop(ctx context.Context, eventType string, deliveries <-chan amqp.Delivery) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			s.handleDelivery(ctx, eventType, delivery)
		}
	}
}

// handleDelivery parses the envelope, dispatches to the registered handler
// and acknowledges according to the outcome.
func (s *Subscriber) handleDelivery(ctx context.Context, queueEventType string, delivery amqp.Delivery) {
	var envelope events.Envelope
	if err := json.Unmarshal(delivery.Body, &envelope); err != nil {
		s.logger.ErrorContext(ctx, "Dropping malformed message",
			"queue", queueName(queueEventType), "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	s.mu.Lock()
	handler, ok := s.handlers[envelope.EventType]
	s.mu.Unlock()
	if !ok {
		err := &NoHandlerError{EventType: envelope.EventType}
		s.logger.WarnContext(ctx, "Dropping message without handler",
			"queue", queueName(queueEventType), "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler(ctx, envelope.EventData); err != nil {
		if delivery.Redelivered && s.cfg.DeadLetterExchange != "" {
			s.logger.ErrorContext(ctx, "Dropping poison message",
				"event_type", envelope.EventType, "error", err)
			_ = delivery.Nack(false, false)
			return
		}
		s.logger.WarnContext(ctx, "Handler failed, requeueing",
			"event_type", envelope.EventType, "error", err)
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}

// Close stops the consumer loops and releases the broker connection. Safe to
// call multiple times.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	if err := s.channel.Close(); err != nil {
		_ = s.conn.Close()
		return &TransportError{Op: "close channel", Cause: err}
	}
	if err := s.conn.Close(); err != nil {
		return &TransportError{Op: "close connection", Cause: err}
	}
	return nil
}
