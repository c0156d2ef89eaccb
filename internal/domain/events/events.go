package events

import (
	"sync"
	"time"
)

// Type names a domain event
type Type string

const (
	CardSpawned       Type = "card_spawned"
	CardStatusChanged Type = "card_status_changed"
	CardRemoved       Type = "card_removed"

	HeroAssigned   Type = "hero_assigned"
	HeroUnassigned Type = "hero_unassigned"
	HeroWounded    Type = "hero_wounded"
	HeroRecovered  Type = "hero_recovered"
	HeroRetired    Type = "hero_retired"
	HeroRecruited  Type = "hero_recruited"

	TaskCompleted  Type = "task_completed"
	TaskFailed     Type = "task_failed"
	CycleDiscarded Type = "cycle_discarded"
	ToolBroken     Type = "tool_broken"
	ToolDepleted   Type = "tool_depleted"

	ItemsGranted    Type = "items_granted"
	CurrencyGranted Type = "currency_granted"
	XPGained        Type = "xp_gained"
	LevelUp         Type = "level_up"
	ConsumableUsed  Type = "consumable_used"

	BiomeReady          Type = "biome_ready"
	BiomeDiscovered     Type = "biome_discovered"
	ExplorationComplete Type = "exploration_complete"

	GroupCompleted   Type = "group_completed"
	TaskClaimed      Type = "task_claimed"
	ProjectCompleted Type = "project_completed"
	AreaComplete     Type = "area_complete"

	CombatVictory Type = "combat_victory"
	CombatDefeat  Type = "combat_defeat"

	Notification Type = "notification"
)

// Event is a fire-and-forget record of something the simulation did
type Event struct {
	ID        string
	Type      Type
	CardID    string
	HeroID    string
	ItemID    string
	Amount    int
	Message   string
	Data      map[string]interface{}
	Timestamp time.Time
}

// Publisher accepts events; nothing it returns is consumed
type Publisher interface {
	Publish(e Event)
}

// Handler receives published events
type Handler func(e Event)

// Bus fans events out to subscribers synchronously in subscription order.
// A panicking subscriber is isolated from the others.
type Bus struct {
	mu      sync.RWMutex
	all     []Handler
	byType  map[Type][]Handler
	onPanic func(e Event, recovered interface{})
}

var _ Publisher = (*Bus)(nil)

// NewBus creates a bus with no subscribers
func NewBus() *Bus {
	return &Bus{byType: make(map[Type][]Handler)}
}

// Subscribe registers a handler for every event
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// SubscribeType registers a handler for a single event type
func (b *Bus) SubscribeType(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byType[t] = append(b.byType[t], h)
}

// OnPanic sets a callback invoked when a subscriber panics
func (b *Bus) OnPanic(fn func(e Event, recovered interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onPanic = fn
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.all)+len(b.byType[e.Type]))
	handlers = append(handlers, b.all...)
	handlers = append(handlers, b.byType[e.Type]...)
	onPanic := b.onPanic
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, e, onPanic)
	}
}

func (b *Bus) deliver(h Handler, e Event, onPanic func(Event, interface{})) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(e, r)
		}
	}()
	h(e)
}

// Recorder is a Publisher that keeps every event, for tests and replay
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns recorded events of type t
func (r *Recorder) OfType(t Type) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
