package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
)

// SnapshotSource supplies the board state sampled into gauges
type SnapshotSource interface {
	Snapshot() simulation.Snapshot
}

// SimulationMetricsCollector records tick, card, hero and event metrics
type SimulationMetricsCollector struct {
	source SnapshotSource

	tickDuration    prometheus.Histogram
	ticksTotal      prometheus.Counter
	cardsProcessed  *prometheus.CounterVec
	handlerFailures *prometheus.CounterVec
	combatOutcomes  *prometheus.CounterVec
	eventsTotal     *prometheus.CounterVec
	cardsByStatus   *prometheus.GaugeVec
	heroesByStatus  *prometheus.GaugeVec
	currency        prometheus.Gauge
	stockUnits      *prometheus.GaugeVec

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

var _ simulation.MetricsRecorder = (*SimulationMetricsCollector)(nil)

// NewSimulationMetricsCollector creates a collector. source may be nil, in
// which case gauges are never sampled.
func NewSimulationMetricsCollector(source SnapshotSource) *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		source: source,

		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent inside one dispatcher pass",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Total number of dispatcher passes",
		}),
		cardsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cards_processed_total",
				Help:      "Cards visited by the dispatcher by outcome",
			},
			[]string{"outcome"},
		),
		handlerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "handler_failures_total",
				Help:      "Card handler failures isolated by the dispatcher",
			},
			[]string{"card_type"},
		),
		combatOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "combat_outcomes_total",
				Help:      "Resolved fights by card type and outcome",
			},
			[]string{"card_type", "outcome"},
		),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Published domain events by type",
			},
			[]string{"type"},
		),
		cardsByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cards",
				Help:      "Cards on the board by type and status",
			},
			[]string{"card_type", "status"},
		),
		heroesByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "heroes",
				Help:      "Heroes in the roster by status",
			},
			[]string{"status"},
		),
		currency: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "currency",
			Help:      "Currency held by the player",
		}),
		stockUnits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_units",
				Help:      "Units held per item",
			},
			[]string{"item"},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	return register(
		c.tickDuration,
		c.ticksTotal,
		c.cardsProcessed,
		c.handlerFailures,
		c.combatOutcomes,
		c.eventsTotal,
		c.cardsByStatus,
		c.heroesByStatus,
		c.currency,
		c.stockUnits,
	)
}

// Bind sets the snapshot source when it is built after the collector
func (c *SimulationMetricsCollector) Bind(source SnapshotSource) {
	c.source = source
}

// Start samples the snapshot gauges every interval until Stop
func (c *SimulationMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)
	if c.source == nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.ctx.Done():
				return
			case <-ticker.C:
				c.Sample()
			}
		}
	}()
}

// Stop gracefully stops the sampling loop
func (c *SimulationMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

// Sample refreshes the board gauges from the current snapshot
func (c *SimulationMetricsCollector) Sample() {
	if c.source == nil {
		return
	}
	snap := c.source.Snapshot()

	c.cardsByStatus.Reset()
	for cardType, byStatus := range snap.CardsByTypeAndStatus() {
		for status, n := range byStatus {
			c.cardsByStatus.WithLabelValues(string(cardType), string(status)).Set(float64(n))
		}
	}

	c.heroesByStatus.Reset()
	for _, h := range snap.Heroes {
		c.heroesByStatus.WithLabelValues(string(h.Status)).Inc()
	}

	c.currency.Set(float64(snap.Currency))

	c.stockUnits.Reset()
	for item, n := range snap.Stock {
		c.stockUnits.WithLabelValues(item).Set(float64(n))
	}
}

func (c *SimulationMetricsCollector) RecordTick(duration time.Duration, report simulation.TickReport) {
	c.tickDuration.Observe(duration.Seconds())
	c.ticksTotal.Inc()
	c.cardsProcessed.WithLabelValues("processed").Add(float64(report.Processed))
	c.cardsProcessed.WithLabelValues("skipped").Add(float64(report.Skipped))
	c.cardsProcessed.WithLabelValues("failed").Add(float64(report.Failed))
	c.cardsProcessed.WithLabelValues("removed").Add(float64(report.Removed))
}

func (c *SimulationMetricsCollector) RecordHandlerFailure(cardType string) {
	c.handlerFailures.WithLabelValues(cardType).Inc()
}

func (c *SimulationMetricsCollector) RecordCombatOutcome(cardType string, outcome string) {
	c.combatOutcomes.WithLabelValues(cardType, outcome).Inc()
}

// RecordEvent counts a published event; subscribe it to the bus
func (c *SimulationMetricsCollector) RecordEvent(e events.Event) {
	c.eventsTotal.WithLabelValues(string(e.Type)).Inc()
}
