package transport

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)

// Metrics holds the Prometheus collectors recorded by WithMetrics.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the call collectors and registers them with registerer
// when it is not nil.
func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "nft",
			Name:      "contract_calls_total",
			Help:      "Remote contract calls by method, kind and outcome.",
		}, []string{"method", "kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "nft",
			Name:      "contract_call_duration_seconds",
			Help:      "Latency of remote contract calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "kind"}),
	}

	if registerer != nil {
		for _, collector := range []prometheus.Collector{metrics.calls, metrics.duration} {
			if err := registerer.Register(collector); err != nil {
				return nil, err
			}
		}
	}
	return metrics, nil
}

// WithMetrics records call counts and latency.
func WithMetrics(metrics *Metrics) Middleware {
	return func(next nft.Caller) nft.Caller {
		if metrics == nil {
			return next
		}
		return nft.CallerFunc(func(ctx context.Context, request nft.CallRequest) (nft.RawResult, error) {
			started := time.Now()
			result, err := next.Call(ctx, request)

			kind := request.Kind.String()
			metrics.duration.WithLabelValues(request.Method, kind).Observe(time.Since(started).Seconds())
			metrics.calls.WithLabelValues(request.Method, kind, outcome(err)).Inc()
			return result, err
		})
	}
}

func outcome(err error) string {
	var rejection *nft.Rejection
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &rejection):
		return outcomeRejected
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeError
	}
}
