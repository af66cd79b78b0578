package rabbitmq

import (
	"errors"
	"fmt"
)

// ErrTransport is the sentinel for broker connectivity failures.
var ErrTransport = errors.New("event bus transport error")

// ErrBusClosed is returned by operations on a closed publisher or subscriber.
var ErrBusClosed = errors.New("event bus is closed")

// TransportError wraps a broker operation failure with the operation name.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrTransport, e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// NoHandlerError reports a delivery whose event type has no registered
// handler. The message is dropped (dead-lettered when an exchange is
// configured) rather than requeued, since redelivery cannot produce a
// handler.
type NoHandlerError struct {
	EventType string
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no handler registered for event type %q", e.EventType)
}
