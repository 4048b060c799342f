package middleware

import (
	"context"
	"errors"
	"time"

	"waapi-go/message"
)

// ErrTimeout is returned when a call does not complete within the configured timeout.
var ErrTimeout = errors.New("waapi call timed out")

type result struct {
	resp *message.Response
	err  error
}

func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan result, 1)
			go func() {
				resp, err := next(ctx, req)
				done <- result{resp: resp, err: err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return nil, ErrTimeout
				}
				return nil, ctx.Err()
			}
		}
	}
}
