package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// ActionMetricsCollector tracks player actions dispatched through the mediator.
// Rule violations (wounded hero, staffed card, ...) count as "rejected" so they
// can be told apart from faults.
type ActionMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	inFlight prometheus.Gauge
}

func NewActionMetricsCollector() *ActionMetricsCollector {
	return &ActionMetricsCollector{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "actions",
				Name:      "duration_seconds",
				Help:      "Time spent handling a player action, including the wait for the engine lock",
				Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"action"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "actions",
				Name:      "total",
				Help:      "Player actions by name and outcome (ok, rejected, error)",
			},
			[]string{"action", "outcome"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "actions",
			Name:      "in_flight",
			Help:      "Player actions currently being handled",
		}),
	}
}

// Register adds the collectors to the global registry
func (c *ActionMetricsCollector) Register() error {
	return register(c.duration, c.total, c.inFlight)
}

// begin marks an action as started and returns the func that records its end
func (c *ActionMetricsCollector) begin(action string) func(err error) {
	c.inFlight.Inc()
	start := time.Now()
	return func(err error) {
		c.inFlight.Dec()
		c.duration.WithLabelValues(action).Observe(time.Since(start).Seconds())
		c.total.WithLabelValues(action, outcome(err)).Inc()
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case shared.IsRejection(err):
		return outcomeRejected
	default:
		return outcomeError
	}
}
