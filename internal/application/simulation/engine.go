package simulation

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/combat"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/inventory"
	"github.com/andrescamacho/cardquest-go/internal/domain/progression"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
	"github.com/andrescamacho/cardquest-go/pkg/utils"
)

// Stock is the inventory contract plus the capacity knobs project effects turn
type Stock interface {
	inventory.Stock
	AddSlotBonus(n int)
	AddMaxStackBonus(n int)
}

// MetricsRecorder receives simulation measurements; nil disables recording
type MetricsRecorder interface {
	RecordTick(duration time.Duration, report TickReport)
	RecordHandlerFailure(cardType string)
	RecordCombatOutcome(cardType string, outcome string)
}

// Dependencies are the collaborators an Engine is built from
type Dependencies struct {
	Catalog     content.Catalog
	Stock       Stock
	Heroes      hero.Roster
	Progression *progression.State
	Publisher   events.Publisher
	Logger      logging.Logger
	Clock       shared.Clock
	Random      shared.Random
	Metrics     MetricsRecorder
	Balance     Balance

	// NewCardID overrides card id generation
	NewCardID func(cardType card.Type, templateID string) string
}

// TickReport summarizes one dispatcher pass
type TickReport struct {
	Processed int
	Skipped   int
	Failed    int
	Removed   int
}

// Engine owns the board and advances every staffed card once per tick.
// Ticks and player actions are serialized by a single mutex; events raised
// while it is held are published after it is released.
type Engine struct {
	mu sync.Mutex

	catalog     content.Catalog
	stock       Stock
	heroes      hero.Roster
	progression *progression.State
	publisher   events.Publisher
	logger      logging.Logger
	clock       shared.Clock
	rng         shared.Random
	metrics     MetricsRecorder
	bal         Balance
	newCardID   func(card.Type, string) string

	board       *card.Board
	assignments *card.AssignmentManager
	resolver    *combat.Resolver
	outbox      []events.Event
}

// NewEngine wires an engine from its collaborators
func NewEngine(deps Dependencies) (*Engine, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("engine requires a catalog")
	}
	if deps.Stock == nil {
		return nil, fmt.Errorf("engine requires a stock")
	}
	if deps.Heroes == nil {
		return nil, fmt.Errorf("engine requires a hero roster")
	}
	if deps.Progression == nil {
		deps.Progression = progression.NewState()
	}
	if deps.Publisher == nil {
		deps.Publisher = &events.Recorder{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}
	if deps.Random == nil {
		deps.Random = shared.NewSeededRandom(time.Now().UnixNano())
	}
	if deps.Balance.WorkCycleMs == 0 {
		deps.Balance = DefaultBalance()
	}
	if deps.NewCardID == nil {
		deps.NewCardID = func(t card.Type, templateID string) string {
			return utils.GenerateCardID(string(t), templateID)
		}
	}

	return &Engine{
		catalog:     deps.Catalog,
		stock:       deps.Stock,
		heroes:      deps.Heroes,
		progression: deps.Progression,
		publisher:   deps.Publisher,
		logger:      deps.Logger,
		clock:       deps.Clock,
		rng:         deps.Random,
		metrics:     deps.Metrics,
		bal:         deps.Balance,
		newCardID:   deps.NewCardID,
		board:       card.NewBoard(),
		assignments: card.NewAssignmentManager(deps.Clock),
		resolver:    combat.NewResolver(deps.Balance.Combat, deps.Random),
	}, nil
}

// Tick advances every staffed card by deltaMs in board order. Zero, negative
// and non-finite deltas are ignored. A card whose handler fails is logged and
// skipped; the rest of the board still advances.
func (e *Engine) Tick(ctx context.Context, deltaMs float64) TickReport {
	if deltaMs <= 0 || math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) {
		return TickReport{}
	}
	if ctx.Err() != nil {
		return TickReport{}
	}

	started := time.Now()
	e.mu.Lock()

	var report TickReport
	for _, c := range e.board.Cards() {
		if !c.HasHero() {
			report.Skipped++
			continue
		}
		if err := e.dispatch(c, deltaMs); err != nil {
			report.Failed++
			e.logger.Log(logging.LevelError, "card tick failed", map[string]interface{}{
				"card_id":   c.ID(),
				"card_type": string(c.Type()),
				"error":     err.Error(),
			})
			if e.metrics != nil {
				e.metrics.RecordHandlerFailure(string(c.Type()))
			}
			continue
		}
		report.Processed++
	}

	for _, removed := range e.board.Sweep() {
		report.Removed++
		if removed.HasHero() {
			e.releaseHero(removed, card.ReleaseComplete)
		}
		e.emit(events.Event{Type: events.CardRemoved, CardID: removed.ID(), Message: removed.Name()})
	}

	pending := e.drainOutbox()
	e.mu.Unlock()

	e.flush(pending)
	if e.metrics != nil {
		e.metrics.RecordTick(time.Since(started), report)
	}
	return report
}

// dispatch routes a card to its state machine, converting a panic into an error
func (e *Engine) dispatch(c *card.Card, deltaMs float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	switch p := c.Payload().(type) {
	case *card.ProductionPayload:
		return e.tickProduction(c, p, deltaMs)
	case *card.ExplorationPayload:
		return e.tickExploration(c, p, deltaMs)
	case *card.AreaPayload:
		return e.tickArea(c, p, deltaMs)
	case *card.CombatPayload:
		return e.tickCombat(c, p, deltaMs)
	case *card.RecruitPayload:
		return nil
	default:
		return fmt.Errorf("unsupported payload %T", p)
	}
}

// emit queues an event for publication once the engine lock is released
func (e *Engine) emit(ev events.Event) {
	ev.ID = utils.GenerateEventID()
	ev.Timestamp = e.clock.Now()
	e.outbox = append(e.outbox, ev)
}

func (e *Engine) notify(c *card.Card, message string) {
	e.emit(events.Event{Type: events.Notification, CardID: c.ID(), HeroID: c.AssignedHeroID(), Message: message})
}

func (e *Engine) drainOutbox() []events.Event {
	pending := e.outbox
	e.outbox = nil
	return pending
}

func (e *Engine) flush(pending []events.Event) {
	for _, ev := range pending {
		e.publisher.Publish(ev)
	}
}

// unlockAndFlush releases the engine lock and publishes queued events
func (e *Engine) unlockAndFlush() {
	pending := e.drainOutbox()
	e.mu.Unlock()
	e.flush(pending)
}

// setStatus changes a card's status and emits a transition event when it moved
func (e *Engine) setStatus(c *card.Card, status card.Status) {
	previous := c.Status()
	if c.SetStatus(status) {
		e.emit(events.Event{
			Type:    events.CardStatusChanged,
			CardID:  c.ID(),
			HeroID:  c.AssignedHeroID(),
			Message: string(status),
			Data:    map[string]interface{}{"from": string(previous), "to": string(status)},
		})
		e.logger.Log(logging.LevelDebug, "card status changed", map[string]interface{}{
			"card_id": c.ID(),
			"from":    string(previous),
			"to":      string(status),
		})
	}
}

// staffingHero resolves the card's assigned hero
func (e *Engine) staffingHero(c *card.Card) (*hero.Hero, error) {
	return e.heroes.Get(c.AssignedHeroID())
}

// releaseHero clears the card's hero and returns it to idle unless wounded
func (e *Engine) releaseHero(c *card.Card, reason string) {
	heroID := c.ClearHero()
	if heroID == "" {
		return
	}
	_ = e.assignments.Release(heroID, reason)
	if h, err := e.heroes.Get(heroID); err == nil && !h.IsWounded() {
		h.SetStatus(hero.StatusIdle)
	}
	e.emit(events.Event{
		Type:    events.HeroUnassigned,
		CardID:  c.ID(),
		HeroID:  heroID,
		Message: reason,
	})
}
