package setup

import (
	"reflect"

	gameCommands "github.com/andrescamacho/cardquest-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/cardquest-go/internal/application/game/queries"
	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
)

// HandlerRegistry holds the dependencies player command handlers are built from
type HandlerRegistry struct {
	engine *simulation.Engine
	logger logging.Logger
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry(engine *simulation.Engine, logger logging.Logger) *HandlerRegistry {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &HandlerRegistry{engine: engine, logger: logger}
}

// NewMediator builds a mediator with logging middleware, then any extra
// middleware in order, and every game handler registered
func (r *HandlerRegistry) NewMediator(extra ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	m.Use(LoggingMiddleware(r.logger))
	for _, mw := range extra {
		m.Use(mw)
	}
	if err := r.RegisterGameHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterGameHandlers registers hero and card commands plus the snapshot query
//
// Hero commands share one handler, as do card commands; the handler switches
// on the concrete request type.
func (r *HandlerRegistry) RegisterGameHandlers(m mediator.Mediator) error {
	heroHandler := gameCommands.NewHeroCommandHandler(r.engine)
	for _, cmd := range []mediator.Request{
		&gameCommands.AssignHeroCommand{},
		&gameCommands.UnassignHeroCommand{},
		&gameCommands.RecoverHeroCommand{},
		&gameCommands.RetireHeroCommand{},
		&gameCommands.RecruitHeroCommand{},
		&gameCommands.EquipItemCommand{},
	} {
		if err := m.Register(reflect.TypeOf(cmd), heroHandler); err != nil {
			return err
		}
	}

	cardHandler := gameCommands.NewCardCommandHandler(r.engine)
	for _, cmd := range []mediator.Request{
		&gameCommands.SpawnCardCommand{},
		&gameCommands.ClaimAreaTaskCommand{},
		&gameCommands.DiscoverBiomeCommand{},
		&gameCommands.SelectBiomeCommand{},
		&gameCommands.BindSlotItemCommand{},
		&gameCommands.DiscardCardCommand{},
	} {
		if err := m.Register(reflect.TypeOf(cmd), cardHandler); err != nil {
			return err
		}
	}

	return m.Register(
		reflect.TypeOf(&gameQueries.GetSnapshotQuery{}),
		gameQueries.NewGetSnapshotHandler(r.engine),
	)
}
