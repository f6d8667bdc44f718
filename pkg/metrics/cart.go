package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutations, persistence failures and open sessions.
type CartMetrics struct {
	mutations       *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
	openSessions    prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations that changed cart contents.",
	}, []string{"op"})
	storageFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_storage_failures_total",
		Help: "Cart load/save failures that were logged and swallowed.",
	}, []string{"op"})
	openSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_sessions_open",
		Help: "Carts currently held by the session registry.",
	})
	reg.MustRegister(mutations, storageFailures, openSessions)
	return &CartMetrics{
		mutations:       mutations,
		storageFailures: storageFailures,
		openSessions:    openSessions,
	}
}

// IncMutation counts a mutation of the named kind.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncStorageFailure counts a swallowed load or save failure.
func (c *CartMetrics) IncStorageFailure(op string) {
	if c == nil || c.storageFailures == nil {
		return
	}
	c.storageFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// SetOpenSessions reports the registry size.
func (c *CartMetrics) SetOpenSessions(n int) {
	if c == nil || c.openSessions == nil {
		return
	}
	c.openSessions.Set(float64(n))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
