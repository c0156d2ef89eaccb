package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardquest-go/internal/adapters/metrics"
	"github.com/andrescamacho/cardquest-go/internal/adapters/stream"
	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/run"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/config"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/pidfile"
	"github.com/andrescamacho/cardquest-go/pkg/utils"
)

// RunOptions bound one simulation run
type RunOptions struct {
	Session  SessionOptions
	MaxTicks int
	Duration time.Duration
	Interval time.Duration
	Lock     bool
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		opts      RunOptions
		noPersist bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation",
		Long: `Load content and a scenario, then tick the simulation until interrupted or a
bound is reached. Runs and their events are recorded in the database unless
--no-persist is given.

Examples:
  cardquest run
  cardquest run --scenario configs/scenarios/starter.yaml --duration 10m
  cardquest run --max-ticks 500 --interval 10ms --seed 7 --no-persist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts.Session.Persist = !noPersist

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := RunSimulation(ctx, cfg, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s %s\n", summary.ID, summary.Status)
			fmt.Fprintf(out, "  Ticks:      %d\n", summary.Ticks)
			fmt.Fprintf(out, "  Simulated:  %s\n", time.Duration(summary.SimulatedMs*float64(time.Millisecond)).Round(time.Millisecond))
			fmt.Fprintf(out, "  Events:     %d\n", summary.EventCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Session.ScenarioPath, "scenario", "", "Scenario file (overrides simulation.scenario_path)")
	cmd.Flags().Int64Var(&opts.Session.Seed, "seed", 0, "RNG seed (overrides scenario and config)")
	cmd.Flags().IntVar(&opts.MaxTicks, "max-ticks", 0, "Stop after this many ticks (0 = unbounded)")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "Stop after this much wall time (0 = unbounded)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Tick interval (overrides simulation.tick_interval)")
	cmd.Flags().BoolVar(&noPersist, "no-persist", false, "Do not record the run or its events")
	cmd.Flags().BoolVar(&opts.Lock, "lock", false, "Hold the daemon PID file while running")

	return cmd
}

// RunSimulation wires a session, applies its scenario and drives it to completion
func RunSimulation(ctx context.Context, cfg *config.Config, opts RunOptions) (*run.Summary, error) {
	if opts.Lock {
		pf := pidfile.New(cfg.Daemon.PIDFile)
		if err := pf.Acquire(); err != nil {
			return nil, err
		}
		defer pf.Release()
	}

	session, err := NewSession(cfg, opts.Session)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	logger := session.Logger

	record := run.NewRun(utils.GenerateRunID(), session.Scenario.Name, session.Seed, shared.NewRealClock())

	interval := cfg.Simulation.TickInterval
	if opts.Interval > 0 {
		interval = opts.Interval
	}
	var repo run.Repository
	if session.Runs != nil {
		repo = session.Runs
	}
	runner := simulation.NewRunner(session.Engine, simulation.RunnerConfig{
		Interval:       interval,
		MaxTicks:       opts.MaxTicks,
		Duration:       opts.Duration,
		StatusInterval: cfg.Simulation.StatusInterval,
	}, record, repo, nil, logger)

	session.Bus.Subscribe(runner.Observe)
	if session.Journal != nil {
		session.Bus.Subscribe(session.Journal.Recorder(record.ID(), func(err error) {
			logger.Log(logging.LevelWarn, "failed to journal event", map[string]interface{}{
				"run_id": record.ID(),
				"error":  err.Error(),
			})
		}))
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdown, err := startServers(runCtx, session)
	if err != nil {
		return nil, err
	}
	defer shutdown()

	if err := session.Engine.ApplyScenario(runCtx, session.Scenario); err != nil {
		return nil, fmt.Errorf("failed to apply scenario %q: %w", session.Scenario.Name, err)
	}

	if err := runner.Run(runCtx); err != nil {
		return nil, err
	}
	return summarize(record), nil
}

// startServers launches the metrics and stream servers the config enables
func startServers(ctx context.Context, session *Session) (func(), error) {
	cfg := session.Config
	logger := session.Logger
	var stops []func(context.Context) error

	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		defer cancel()
		for i := len(stops) - 1; i >= 0; i-- {
			_ = stops[i](sctx)
		}
	}

	if session.SimMetrics != nil {
		srv, err := metrics.NewServer(cfg.Metrics.Address(), cfg.Metrics.Path)
		if err != nil {
			return nil, err
		}
		go serve(logger, "metrics", srv.Serve)
		session.SimMetrics.Start(ctx, cfg.Metrics.SampleInterval)
		stops = append(stops, srv.Shutdown, func(context.Context) error {
			session.SimMetrics.Stop()
			return nil
		})
		logger.Log(logging.LevelInfo, "metrics server listening", map[string]interface{}{"addr": srv.Addr()})
	}

	if cfg.Stream.Enabled {
		hub := stream.NewHub(cfg.Stream.BufferSize, logger)
		hub.AcceptActions(session.Mediator)
		go hub.Run(ctx)
		session.Bus.Subscribe(hub.Publish)

		srv, err := stream.NewServer(cfg.Stream.Address, cfg.Stream.Path, hub)
		if err != nil {
			shutdown()
			return nil, err
		}
		go serve(logger, "stream", srv.Serve)
		stops = append(stops, srv.Shutdown)
		logger.Log(logging.LevelInfo, "event stream listening", map[string]interface{}{"addr": srv.Addr()})
	}

	return shutdown, nil
}

func serve(logger logging.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Log(logging.LevelError, name+" server stopped", map[string]interface{}{"error": err.Error()})
	}
}

func summarize(r *run.Run) *run.Summary {
	s := &run.Summary{
		ID:          r.ID(),
		Scenario:    r.Scenario(),
		Seed:        r.Seed(),
		Status:      string(r.Status()),
		Ticks:       r.Ticks(),
		SimulatedMs: r.SimulatedMs(),
		EventCount:  r.EventCount(),
		StartedAt:   r.StartedAt(),
		EndedAt:     r.EndedAt(),
	}
	if err := r.LastError(); err != nil {
		s.ExitReason = err.Error()
	}
	return s
}
