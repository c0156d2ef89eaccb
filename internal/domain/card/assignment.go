package card

import (
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// AssignmentStatus represents the state of a hero assignment
type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentReleased AssignmentStatus = "released"
)

// Release reasons recorded on assignments
const (
	ReleasePlayer    = "player"
	ReleaseGate      = "gate"
	ReleaseDefeat    = "defeat"
	ReleaseComplete  = "complete"
	ReleaseDiscarded = "discarded"
	ReleaseRetired   = "retired"
	ReleaseOrphaned  = "orphaned"
)

// Assignment records a hero holding a card
type Assignment struct {
	heroID        string
	cardID        string
	status        AssignmentStatus
	assignedAt    time.Time
	releasedAt    *time.Time
	releaseReason string
}

func (a *Assignment) HeroID() string           { return a.heroID }
func (a *Assignment) CardID() string           { return a.cardID }
func (a *Assignment) Status() AssignmentStatus { return a.status }
func (a *Assignment) AssignedAt() time.Time    { return a.assignedAt }
func (a *Assignment) ReleasedAt() *time.Time   { return a.releasedAt }
func (a *Assignment) ReleaseReason() string    { return a.releaseReason }
func (a *Assignment) IsActive() bool           { return a.status == AssignmentActive }

func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment[hero=%s, card=%s, status=%s]", a.heroID, a.cardID, a.status)
}

// AssignmentManager is the single check-and-set authority for hero placement.
// A hero holds at most one active assignment and a card holds at most one hero.
type AssignmentManager struct {
	byHero map[string]*Assignment
	byCard map[string]string
	clock  shared.Clock
}

// NewAssignmentManager creates an empty manager
func NewAssignmentManager(clock shared.Clock) *AssignmentManager {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AssignmentManager{
		byHero: make(map[string]*Assignment),
		byCard: make(map[string]string),
		clock:  clock,
	}
}

// Assign places heroID on cardID, rejecting a hero or card that is already taken
func (m *AssignmentManager) Assign(heroID, cardID string) (*Assignment, error) {
	if existing, ok := m.byHero[heroID]; ok && existing.IsActive() {
		return nil, shared.NewHeroAlreadyAssignedError(heroID, existing.cardID)
	}
	if holder, ok := m.byCard[cardID]; ok {
		return nil, shared.NewCardStaffedError(cardID, holder)
	}

	assignment := &Assignment{
		heroID:     heroID,
		cardID:     cardID,
		status:     AssignmentActive,
		assignedAt: m.clock.Now(),
	}
	m.byHero[heroID] = assignment
	m.byCard[cardID] = heroID
	return assignment, nil
}

// Release ends the hero's active assignment
func (m *AssignmentManager) Release(heroID, reason string) error {
	assignment, ok := m.byHero[heroID]
	if !ok || !assignment.IsActive() {
		return fmt.Errorf("hero %s has no active assignment", heroID)
	}
	now := m.clock.Now()
	assignment.status = AssignmentReleased
	assignment.releasedAt = &now
	assignment.releaseReason = reason
	delete(m.byCard, assignment.cardID)
	return nil
}

// CardFor returns the card the hero currently holds
func (m *AssignmentManager) CardFor(heroID string) (string, bool) {
	if assignment, ok := m.byHero[heroID]; ok && assignment.IsActive() {
		return assignment.cardID, true
	}
	return "", false
}

// HeroFor returns the hero currently holding the card
func (m *AssignmentManager) HeroFor(cardID string) (string, bool) {
	heroID, ok := m.byCard[cardID]
	return heroID, ok
}

// Get returns the latest assignment for a hero, active or released
func (m *AssignmentManager) Get(heroID string) (*Assignment, bool) {
	assignment, ok := m.byHero[heroID]
	return assignment, ok
}

// Active returns every active assignment ordered by hero id
func (m *AssignmentManager) Active() []*Assignment {
	out := make([]*Assignment, 0, len(m.byCard))
	for _, assignment := range m.byHero {
		if assignment.IsActive() {
			out = append(out, assignment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].heroID < out[j].heroID })
	return out
}

// ReleaseOrphaned releases assignments whose card is no longer on the board
func (m *AssignmentManager) ReleaseOrphaned(existingCardIDs map[string]bool) int {
	released := 0
	for heroID, assignment := range m.byHero {
		if assignment.IsActive() && !existingCardIDs[assignment.cardID] {
			_ = m.Release(heroID, ReleaseOrphaned)
			released++
		}
	}
	return released
}
