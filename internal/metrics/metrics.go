// Package metrics exposes prometheus counters for the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type HTTP struct {
	Requests    *prometheus.CounterVec
	RateLimited *prometheus.CounterVec
}

func NewHTTP() *HTTP {
	m := &HTTP{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicely_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicely_rate_limited_total",
			Help: "Requests rejected by admission control, by endpoint.",
		}, []string{"endpoint"}),
	}
	prometheus.MustRegister(m.Requests, m.RateLimited)
	return m
}

var Module = fx.Module("metrics",
	fx.Provide(NewHTTP),
)
