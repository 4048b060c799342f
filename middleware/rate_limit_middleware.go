package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"waapi-go/message"
)

// ErrRateLimited is returned when the token bucket has no token for a call.
var ErrRateLimited = errors.New("waapi call rate limit exceeded")

// RateLimitMiddleware rejects calls beyond r per second with the given burst.
// It does not wait for a token: a rejected call is never sent.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			if !limiter.Allow() {
				return nil, ErrRateLimited
			}
			return next(ctx, req)
		}
	}
}
