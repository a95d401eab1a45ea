package transport

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// Middleware wraps a Caller.
type Middleware func(next nft.Caller) nft.Caller

// Chain applies middlewares so that the first one is outermost.
func Chain(caller nft.Caller, middlewares ...Middleware) nft.Caller {
	for index := len(middlewares) - 1; index >= 0; index-- {
		if middlewares[index] != nil {
			caller = middlewares[index](caller)
		}
	}
	return caller
}

// WithLogging logs every call at debug level and failures at warn level.
// Contract rejections are logged with their code.
func WithLogging(logger zerolog.Logger) Middleware {
	return func(next nft.Caller) nft.Caller {
		return nft.CallerFunc(func(ctx context.Context, request nft.CallRequest) (nft.RawResult, error) {
			started := time.Now()
			result, err := next.Call(ctx, request)

			event := logger.Debug()
			if err != nil {
				event = logger.Warn().Err(err)
				if code, ok := nft.RejectionCode(err); ok {
					event = event.Str("rejection", code)
				}
			}
			event.
				Str("contract", request.Contract).
				Str("method", request.Method).
				Stringer("kind", request.Kind).
				Int("bytes", len(result)).
				Dur("elapsed", time.Since(started)).
				Msg("contract call")
			return result, err
		})
	}
}

// WithRateLimit waits on limiter before each call. A cancelled wait returns
// the context error without calling next.
func WithRateLimit(limiter *rate.Limiter) Middleware {
	return func(next nft.Caller) nft.Caller {
		if limiter == nil {
			return next
		}
		return nft.CallerFunc(func(ctx context.Context, request nft.CallRequest) (nft.RawResult, error) {
			if err := limiter.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				return nil, err
			}
			return next.Call(ctx, request)
		})
	}
}

// NewLimiter builds a limiter from a calls-per-second rate. A non-positive
// rate returns nil, which WithRateLimit treats as unlimited.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
