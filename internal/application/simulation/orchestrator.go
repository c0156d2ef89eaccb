package simulation

import (
	"context"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
)

// RetirementOrchestrator replaces retired heroes with a recruit card of the
// same class. It reacts to HeroRetired instead of being called by the engine,
// keeping the hero roster free of any dependency on card spawning.
type RetirementOrchestrator struct {
	engine *Engine
	logger logging.Logger
}

// NewRetirementOrchestrator subscribes the orchestrator to bus
func NewRetirementOrchestrator(engine *Engine, bus *events.Bus, logger logging.Logger) *RetirementOrchestrator {
	if logger == nil {
		logger = logging.NoOp()
	}
	o := &RetirementOrchestrator{engine: engine, logger: logger}
	bus.SubscribeType(events.HeroRetired, o.handle)
	return o
}

func (o *RetirementOrchestrator) handle(e events.Event) {
	classID, _ := e.Data["class_id"].(string)
	cardID, err := o.engine.SpawnRecruitCard(context.Background(), classID)
	if err != nil {
		o.logger.Log(logging.LevelError, "failed to spawn replacement recruit", map[string]interface{}{
			"hero_id":  e.HeroID,
			"class_id": classID,
			"error":    err.Error(),
		})
		return
	}
	o.logger.Log(logging.LevelInfo, "replacement recruit spawned", map[string]interface{}{
		"hero_id": e.HeroID,
		"card_id": cardID,
	})
}
