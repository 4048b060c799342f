package middleware

import (
	"context"

	"waapi-go/message"
)

// CallFunc performs one WAAPI call. The client's transport invocation and the
// fake server's dispatcher both have this shape.
type CallFunc func(ctx context.Context, req *message.Request) (*message.Response, error)

type Middleware func(next CallFunc) CallFunc

// Chain composes middlewares so the first one is outermost:
// Chain(A, B)(h) == A(B(h)).
func Chain(middlewares ...Middleware) Middleware {
	return func(next CallFunc) CallFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
