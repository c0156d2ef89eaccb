package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrescamacho/cardquest-go/internal/adapters/catalog"
	"github.com/andrescamacho/cardquest-go/internal/adapters/metrics"
	"github.com/andrescamacho/cardquest-go/internal/adapters/persistence"
	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
	"github.com/andrescamacho/cardquest-go/internal/application/setup"
	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/inventory"
	"github.com/andrescamacho/cardquest-go/internal/domain/progression"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/config"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/database"
	infralog "github.com/andrescamacho/cardquest-go/internal/infrastructure/logging"
)

// SessionOptions override parts of the configuration for one session
type SessionOptions struct {
	ScenarioPath string
	Seed         int64
	Persist      bool
}

// Session is a fully wired simulation: content, world state, engine,
// command mediator and the optional persistence and metrics adapters
type Session struct {
	Config   *config.Config
	Logger   *infralog.ZapAdapter
	Catalog  *content.Registry
	Scenario simulation.Scenario
	Seed     int64

	Bus      *events.Bus
	Engine   *simulation.Engine
	Mediator mediator.Mediator

	DB      *gorm.DB
	Runs    *persistence.GormRunRepository
	Journal *persistence.GormEventJournal

	SimMetrics    *metrics.SimulationMetricsCollector
	ActionMetrics *metrics.ActionMetricsCollector

	zap *zap.Logger
}

// NewSession wires a session from configuration
func NewSession(cfg *config.Config, opts SessionOptions) (*Session, error) {
	zl, err := infralog.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	s := &Session{Config: cfg, zap: zl, Logger: infralog.NewZapAdapter(zl)}

	if err := s.loadContent(opts); err != nil {
		s.Close()
		return nil, err
	}
	if opts.Persist {
		if err := s.openDatabase(); err != nil {
			s.Close()
			return nil, err
		}
	}
	if cfg.Metrics.Enabled {
		if err := s.initMetrics(); err != nil {
			s.Close()
			return nil, err
		}
	}
	if err := s.buildEngine(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) loadContent(opts SessionOptions) error {
	registry, err := catalog.LoadCatalog(s.Config.Simulation.ContentPath)
	if err != nil {
		return err
	}
	s.Catalog = registry

	scenarioPath := s.Config.Simulation.ScenarioPath
	if opts.ScenarioPath != "" {
		scenarioPath = opts.ScenarioPath
	}
	if scenarioPath != "" {
		sc, err := catalog.LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		s.Scenario = sc
	}

	// Flag beats scenario beats config; zero everywhere picks one from the clock
	switch {
	case opts.Seed != 0:
		s.Seed = opts.Seed
	case s.Scenario.Seed != 0:
		s.Seed = s.Scenario.Seed
	case s.Config.Simulation.Seed != 0:
		s.Seed = s.Config.Simulation.Seed
	default:
		s.Seed = time.Now().UnixNano()
	}
	return nil
}

func (s *Session) openDatabase() error {
	db, err := database.NewConnection(&s.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.DB = db
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	s.Runs = persistence.NewGormRunRepository(db)
	s.Journal = persistence.NewGormEventJournal(db, nil, s.Config.Simulation.JournalDedupWindow)
	return nil
}

func (s *Session) initMetrics() error {
	metrics.InitRegistry()
	s.ActionMetrics = metrics.NewActionMetricsCollector()
	if err := s.ActionMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register action metrics: %w", err)
	}
	return nil
}

func (s *Session) buildEngine() error {
	s.Bus = events.NewBus()
	s.Bus.OnPanic(func(e events.Event, recovered interface{}) {
		s.Logger.Log(logging.LevelError, "event subscriber panicked", map[string]interface{}{
			"type":      string(e.Type),
			"recovered": fmt.Sprint(recovered),
		})
	})

	deps := simulation.Dependencies{
		Catalog:     s.Catalog,
		Stock:       inventory.NewInventory(s.Catalog, s.Config.Simulation.SlotCap),
		Heroes:      hero.NewRegistry(),
		Progression: progression.NewState(),
		Publisher:   s.Bus,
		Logger:      s.Logger,
		Clock:       shared.NewRealClock(),
		Random:      shared.NewSeededRandom(s.Seed),
		Balance:     s.Config.Simulation.ToBalance(),
	}

	if metrics.IsEnabled() {
		s.SimMetrics = metrics.NewSimulationMetricsCollector(nil)
		if err := s.SimMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register simulation metrics: %w", err)
		}
		deps.Metrics = s.SimMetrics
		s.Bus.Subscribe(s.SimMetrics.RecordEvent)
	}

	engine, err := simulation.NewEngine(deps)
	if err != nil {
		return err
	}
	s.Engine = engine
	if s.SimMetrics != nil {
		s.SimMetrics.Bind(engine)
	}

	simulation.NewRetirementOrchestrator(engine, s.Bus, s.Logger)

	var extra []mediator.Middleware
	if s.ActionMetrics != nil {
		extra = append(extra, metrics.PrometheusMiddleware(s.ActionMetrics))
	}
	med, err := setup.NewHandlerRegistry(engine, s.Logger).NewMediator(extra...)
	if err != nil {
		return fmt.Errorf("failed to build mediator: %w", err)
	}
	s.Mediator = med
	return nil
}

// Close releases the database and flushes the logger
func (s *Session) Close() {
	if s.DB != nil {
		_ = database.Close(s.DB)
	}
	if s.zap != nil {
		_ = s.zap.Sync()
	}
}
