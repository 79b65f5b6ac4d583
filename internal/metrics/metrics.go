// Package metrics holds the Prometheus collectors shared by the server and
// the finalize workflow.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "splitter"

// Metrics groups the collectors. Use New with a registry in tests and
// Default in binaries.
type Metrics struct {
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec
	Fallbacks   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Collectors already registered with reg are reused.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_total",
			Help:      "Summaries computed locally because the gateway was unavailable, by failed operation.",
		}, []string{"op"}),
	}
	m.RPCRequests = register(reg, m.RPCRequests)
	m.RPCDuration = register(reg, m.RPCDuration)
	m.Fallbacks = register(reg, m.Fallbacks)
	return m
}

var defaultMetrics = New(prometheus.DefaultRegisterer)

// Default returns the collectors registered with the default registry.
func Default() *Metrics { return defaultMetrics }

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
