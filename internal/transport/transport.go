// Package transport defines the interface for pluggable message transports.
//
// Each transport implements this interface and hands incoming messages to
// the dispatcher. The dispatcher doesn't care how messages arrive — it only
// works with the Handler contract. Unlike a routing daemon there is no
// outbound send: results always return to the caller that sent the message.
package transport

import (
	"context"

	"github.com/charlavoz/charla/internal/message"
)

// Handler is a function that processes an incoming message and returns a result.
// The dispatcher provides this handler to each transport.
type Handler func(ctx context.Context, msg *message.Message) (*message.TranslationResult, error)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http").
	Name() string

	// Listen starts accepting incoming messages and dispatches them to the
	// handler. It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
