package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardquest-go/internal/application/game/commands"
	"github.com/andrescamacho/cardquest-go/internal/application/game/queries"
	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
}

type staticSnapshot struct {
	snap simulation.Snapshot
}

func (s staticSnapshot) Snapshot() simulation.Snapshot { return s.snap }

func TestSimulationMetrics_RecordsTicksAndOutcomes(t *testing.T) {
	withRegistry(t)
	c := NewSimulationMetricsCollector(nil)
	require.NoError(t, c.Register())

	c.RecordTick(2*time.Millisecond, simulation.TickReport{Processed: 3, Skipped: 1})
	c.RecordTick(time.Millisecond, simulation.TickReport{Processed: 2, Failed: 1})
	c.RecordHandlerFailure("area")
	c.RecordCombatOutcome("combat", "victory")
	c.RecordEvent(events.Event{Type: events.TaskCompleted})
	c.RecordEvent(events.Event{Type: events.TaskCompleted})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ticksTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.cardsProcessed.WithLabelValues("processed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cardsProcessed.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.handlerFailures.WithLabelValues("area")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.combatOutcomes.WithLabelValues("combat", "victory")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.eventsTotal.WithLabelValues(string(events.TaskCompleted))))
}

func TestSimulationMetrics_SampleSetsGauges(t *testing.T) {
	source := staticSnapshot{snap: simulation.Snapshot{
		Cards: []simulation.CardView{
			{ID: "a", Type: card.TypeProduction, Status: card.StatusActive},
			{ID: "b", Type: card.TypeProduction, Status: card.StatusActive},
			{ID: "c", Type: card.TypeArea, Status: card.StatusPaused},
		},
		Heroes: []simulation.HeroView{
			{ID: "h1", Status: hero.StatusWorking},
			{ID: "h2", Status: hero.StatusWounded},
		},
		Stock:    map[string]int{"oak_log": 7},
		Currency: 12,
	}}
	c := NewSimulationMetricsCollector(source)

	c.Sample()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.cardsByStatus.WithLabelValues("production", "active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cardsByStatus.WithLabelValues("area", "paused")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.heroesByStatus.WithLabelValues("wounded")))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.currency))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.stockUnits.WithLabelValues("oak_log")))
}

func TestSimulationMetrics_RegisterWithoutRegistryIsNoop(t *testing.T) {
	Registry = nil
	assert.NoError(t, NewSimulationMetricsCollector(nil).Register())
	assert.False(t, IsEnabled())
}

func TestPrometheusMiddleware_ClassifiesOutcome(t *testing.T) {
	collector := NewActionMetricsCollector()
	mw := PrometheusMiddleware(collector)

	ok := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return nil, nil }
	rejected := func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return nil, shared.NewHeroWoundedError("ada", "c1")
	}
	broken := func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		assert.Equal(t, 1.0, testutil.ToFloat64(collector.inFlight))
		return nil, errors.New("database is locked")
	}

	_, err := mw(context.Background(), &commands.AssignHeroCommand{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &commands.AssignHeroCommand{}, rejected)
	require.Error(t, err)
	_, err = mw(context.Background(), &commands.AssignHeroCommand{}, broken)
	require.Error(t, err)

	for _, outcome := range []string{"ok", "rejected", "error"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("assign_hero", outcome)), outcome)
	}
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.inFlight))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	called := false
	_, err := PrometheusMiddleware(nil)(context.Background(), &commands.DiscardCardCommand{},
		func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
			called = true
			return nil, nil
		})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestActionName(t *testing.T) {
	assert.Equal(t, "assign_hero", actionName(&commands.AssignHeroCommand{}))
	assert.Equal(t, "claim_area_task", actionName(&commands.ClaimAreaTaskCommand{}))
	assert.Equal(t, "get_snapshot", actionName(&queries.GetSnapshotQuery{}))
	assert.Equal(t, "unknown", actionName(nil))
}

func TestServer_ServesRegistry(t *testing.T) {
	withRegistry(t)
	c := NewSimulationMetricsCollector(nil)
	require.NoError(t, c.Register())
	c.RecordTick(time.Millisecond, simulation.TickReport{})

	srv, err := NewServer("127.0.0.1:0", "/metrics")
	require.NoError(t, err)
	go func() { _ = srv.Serve() }()
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "cardquest_simulation_ticks_total 1")
}

func TestServer_RequiresRegistry(t *testing.T) {
	Registry = nil
	_, err := NewServer("127.0.0.1:0", "/metrics")
	assert.Error(t, err)
}
