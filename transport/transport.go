// Package transport moves WAAPI calls to an authoring instance.
//
// Two transports are provided, selected by the instance URL scheme:
//
//	ws://, wss://     WAMPTransport: one multiplexed WebSocket session,
//	                  supports calls and topic subscriptions
//	http://, https:// HTTPTransport: one POST per call, no subscriptions
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"waapi-go/codec"
	"waapi-go/message"
)

var (
	// ErrClosed is returned by calls on a transport whose connection is gone.
	ErrClosed = errors.New("waapi transport closed")

	// ErrUnsupportedScheme is returned by Dial for URLs that are neither ws(s) nor http(s).
	ErrUnsupportedScheme = errors.New("unsupported waapi url scheme")
)

// Transport carries calls to one authoring instance.
type Transport interface {
	Call(ctx context.Context, req *message.Request) (*message.Response, error)

	// Err returns a non-nil error once the transport can no longer be used.
	Err() error

	Close() error
}

// Subscriber is implemented by transports that can deliver topic events.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, options map[string]any, handler EventHandler) (*Subscription, error)
	Unsubscribe(ctx context.Context, sub *Subscription) error
}

// EventHandler receives topic events. It runs on the connection's receive
// goroutine, in arrival order, and must not block.
type EventHandler func(ev *message.Event)

// Dialer opens a transport to addr.
type Dialer func(ctx context.Context, addr string) (Transport, error)

// Options configures transports created by Dial.
type Options struct {
	Realm  string
	Codec  codec.Codec
	Logger *zap.Logger
}

// NewDialer returns a Dialer choosing the transport from the URL scheme.
func NewDialer(opts Options) Dialer {
	return func(ctx context.Context, addr string) (Transport, error) {
		return Dial(ctx, addr, opts)
	}
}

// Dial opens a transport to addr, choosing the implementation from the scheme.
func Dial(ctx context.Context, addr string, opts Options) (Transport, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("parse waapi url %q: %w", addr, err)
	}
	switch u.Scheme {
	case "ws", "wss":
		t, err := DialWAMP(ctx, addr, opts)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "http", "https":
		return NewHTTPTransport(addr, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
