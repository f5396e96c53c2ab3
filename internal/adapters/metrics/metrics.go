// Package metrics exposes the bot's Prometheus collectors and adapts them to the small metric hooks
// the cache, fetcher, cooldown gate and session store accept.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "matchday"

type Metrics struct {
	CacheEvents        *prometheus.CounterVec
	UpstreamRetries    prometheus.Counter
	UpstreamFailures   prometheus.Counter
	CooldownRejections *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
	Transitions        *prometheus.CounterVec
	Commands           *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	return &Metrics{
		CacheEvents: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_events_total",
				Help:      "Cache lookups by cache and outcome",
			},
			[]string{"cache", "event"}, // event=hit/miss/expire
		),
		UpstreamRetries: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_retries_total",
				Help:      "Upstream calls retried after a rate-limit answer",
			},
		),
		UpstreamFailures: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_failures_total",
				Help:      "Upstream fetches that failed for good",
			},
		),
		CooldownRejections: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cooldown_rejections_total",
				Help:      "Commands rejected by the cooldown gate",
			},
			[]string{"class"},
		),
		ActiveSessions: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Navigation sessions currently stored",
			},
		),
		Transitions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "navigation_transitions_total",
				Help:      "Navigation callbacks by action and result",
			},
			[]string{"action", "result"}, // result=ok/rejected/error
		),
		Commands: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands handled by name and result",
			},
			[]string{"command", "result"},
		),
		gatherer: gatherer,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Cache returns the hook a named ttl cache reports to.
func (m *Metrics) Cache(name string) CacheHook {
	return CacheHook{
		hit:    m.CacheEvents.WithLabelValues(name, "hit"),
		miss:   m.CacheEvents.WithLabelValues(name, "miss"),
		expire: m.CacheEvents.WithLabelValues(name, "expire"),
	}
}

type CacheHook struct {
	hit, miss, expire prometheus.Counter
}

func (h CacheHook) Hit()    { h.hit.Inc() }
func (h CacheHook) Miss()   { h.miss.Inc() }
func (h CacheHook) Expire() { h.expire.Inc() }

func (m *Metrics) Retry()   { m.UpstreamRetries.Inc() }
func (m *Metrics) Failure() { m.UpstreamFailures.Inc() }

func (m *Metrics) Rejected(class string) {
	m.CooldownRejections.WithLabelValues(class).Inc()
}

func (m *Metrics) SetActive(n int) {
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) Transition(action, result string) {
	m.Transitions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) Command(command, result string) {
	m.Commands.WithLabelValues(command, result).Inc()
}
