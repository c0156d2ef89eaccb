package card

import (
	"fmt"
	"time"
)

// Type is derived from a card's payload
type Type string

const (
	TypeProduction  Type = "production"
	TypeExploration Type = "exploration"
	TypeArea        Type = "area"
	TypeCombat      Type = "combat"
	TypeRecruit     Type = "recruit"
)

// Status is the coarse state shown for every card type
type Status string

const (
	StatusIdle     Status = "idle"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusComplete Status = "complete"
)

// Card is a unit of assignable, tickable work
type Card struct {
	id               string
	name             string
	status           Status
	assignedHeroID   string
	payload          Payload
	createdAt        time.Time
	removalScheduled bool
}

// NewCard creates an idle, unstaffed card
func NewCard(id, name string, payload Payload, createdAt time.Time) (*Card, error) {
	if id == "" {
		return nil, fmt.Errorf("card id cannot be empty")
	}
	if payload == nil {
		return nil, fmt.Errorf("card %s has no payload", id)
	}
	return &Card{
		id:        id,
		name:      name,
		status:    StatusIdle,
		payload:   payload,
		createdAt: createdAt,
	}, nil
}

// Getters

func (c *Card) ID() string             { return c.id }
func (c *Card) Name() string           { return c.name }
func (c *Card) Type() Type             { return c.payload.Type() }
func (c *Card) Status() Status         { return c.status }
func (c *Card) AssignedHeroID() string { return c.assignedHeroID }
func (c *Card) Payload() Payload       { return c.payload }
func (c *Card) CreatedAt() time.Time   { return c.createdAt }
func (c *Card) HasHero() bool          { return c.assignedHeroID != "" }
func (c *Card) IsComplete() bool       { return c.status == StatusComplete }
func (c *Card) RemovalScheduled() bool { return c.removalScheduled }

// SetStatus moves the card to status and reports whether it changed
func (c *Card) SetStatus(status Status) bool {
	if c.status == status {
		return false
	}
	c.status = status
	return true
}

// SetHero records the staffing hero; the global one-hero-per-card check
// happens in the AssignmentManager before this is called
func (c *Card) SetHero(heroID string) {
	c.assignedHeroID = heroID
}

// ClearHero removes the staffing hero and returns who it was
func (c *Card) ClearHero() string {
	previous := c.assignedHeroID
	c.assignedHeroID = ""
	return previous
}

// ScheduleRemoval marks the card to be dropped from the board at the end of the tick
func (c *Card) ScheduleRemoval() {
	c.removalScheduled = true
}

// Gate returns the name of the player gate the card is waiting on, if any
func (c *Card) Gate() (string, bool) {
	switch p := c.payload.(type) {
	case *ExplorationPayload:
		if p.AwaitingDiscovery {
			return "discovery", true
		}
	case *AreaPayload:
		if p.AwaitingTaskClaim {
			return "task claim", true
		}
	}
	return "", false
}

func (c *Card) String() string {
	return fmt.Sprintf("Card[id=%s, type=%s, status=%s, hero=%s]", c.id, c.Type(), c.status, c.assignedHeroID)
}
