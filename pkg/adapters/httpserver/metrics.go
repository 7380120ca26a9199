package httpserver

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the server's Prometheus collectors. Each Server owns its
// registry so multiple instances can coexist in one process.
type metrics struct {
	registry *prometheus.Registry
	fetches  *prometheus.CounterVec
	saves    *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desceditor",
			Name:      "state_fetches_total",
			Help:      "Session state fetches served, by outcome.",
		}, []string{"outcome"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desceditor",
			Name:      "state_saves_total",
			Help:      "Session save requests handled, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.fetches, m.saves)
	return m
}
