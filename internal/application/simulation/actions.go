package simulation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
	"github.com/andrescamacho/cardquest-go/pkg/utils"
)

// AssignHero staffs a card. Every check runs before anything is mutated, so
// a rejected assignment leaves the hero and the card untouched.
func (e *Engine) AssignHero(ctx context.Context, heroID, cardID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, ok := e.board.Get(cardID)
	if !ok {
		return shared.NewCardNotFoundError(cardID)
	}
	h, err := e.heroes.Get(heroID)
	if err != nil {
		return err
	}
	if c.Type() == card.TypeRecruit {
		return shared.NewCardNotAssignableError(cardID, string(c.Type()))
	}
	if c.IsComplete() || c.RemovalScheduled() {
		return shared.NewCardCompleteError(cardID)
	}
	if gate, gated := c.Gate(); gated {
		return shared.NewCardGatedError(cardID, gate)
	}
	if h.IsWounded() {
		return shared.NewHeroWoundedError(heroID, cardID)
	}
	if _, err := e.assignments.Assign(heroID, cardID); err != nil {
		return err
	}

	c.SetHero(heroID)
	h.SetStatus(activityFor(c))
	e.emit(events.Event{Type: events.HeroAssigned, CardID: cardID, HeroID: heroID, Message: string(c.Type())})
	return nil
}

// activityFor is the hero status implied by staffing c
func activityFor(c *card.Card) hero.Status {
	switch p := c.Payload().(type) {
	case *card.CombatPayload:
		return hero.StatusCombat
	case *card.AreaPayload:
		if p.Phase == card.PhaseQuesting {
			if group := p.CurrentGroup(); group != nil && group.Type == content.GroupCombat {
				return hero.StatusCombat
			}
		}
	}
	return hero.StatusWorking
}

// UnassignHero takes a hero off whatever card it holds
func (e *Engine) UnassignHero(ctx context.Context, heroID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	if _, err := e.heroes.Get(heroID); err != nil {
		return err
	}
	cardID, ok := e.assignments.CardFor(heroID)
	if !ok {
		return shared.NewAssignmentError("hero is not assigned to a card", heroID, "")
	}
	c, ok := e.board.Get(cardID)
	if !ok {
		_ = e.assignments.Release(heroID, card.ReleaseOrphaned)
		return shared.NewCardNotFoundError(cardID)
	}
	e.releaseHero(c, card.ReleasePlayer)
	if c.Status() == card.StatusActive {
		e.setStatus(c, card.StatusIdle)
	}
	return nil
}

// RecoverHero heals a hero to full and clears the wounded status
func (e *Engine) RecoverHero(ctx context.Context, heroID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	h, err := e.heroes.Get(heroID)
	if err != nil {
		return err
	}
	wasWounded := h.IsWounded()
	h.Recover()
	e.emit(events.Event{
		Type:   events.HeroRecovered,
		HeroID: heroID,
		Amount: h.HP().Current,
		Data:   map[string]interface{}{"was_wounded": wasWounded},
	})
	return nil
}

// RetireHero removes a hero from the roster. The HeroRetired event carries
// the class so a subscriber can replace the hero.
func (e *Engine) RetireHero(ctx context.Context, heroID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	h, err := e.heroes.Get(heroID)
	if err != nil {
		return err
	}
	if cardID, ok := e.assignments.CardFor(heroID); ok {
		if c, found := e.board.Get(cardID); found {
			e.releaseHero(c, card.ReleaseRetired)
			if c.Status() == card.StatusActive {
				e.setStatus(c, card.StatusIdle)
			}
		} else {
			_ = e.assignments.Release(heroID, card.ReleaseOrphaned)
		}
	}
	if err := e.heroes.Remove(heroID); err != nil {
		return err
	}
	e.emit(events.Event{
		Type:    events.HeroRetired,
		HeroID:  heroID,
		Message: h.Name(),
		Data:    map[string]interface{}{"class_id": h.ClassID()},
	})
	return nil
}

// Recruit consumes a recruit card and adds a new hero of its class
func (e *Engine) Recruit(ctx context.Context, cardID, name string) (string, error) {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, ok := e.board.Get(cardID)
	if !ok {
		return "", shared.NewCardNotFoundError(cardID)
	}
	p, ok := c.Payload().(*card.RecruitPayload)
	if !ok {
		return "", shared.NewCardStateError(cardID, "not a recruit card")
	}
	classID := p.ClassID
	if classID == "" {
		classID = e.defaultClass()
	}
	class, err := e.catalog.Class(classID)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = displayName(class.Name, class.ID)
	}

	h, err := hero.NewHero(utils.GenerateHeroID(), name, class.ID, class.BaseHP, class.Energy)
	if err != nil {
		return "", err
	}
	if err := e.heroes.Add(h); err != nil {
		return "", err
	}
	e.board.Remove(cardID)
	e.emit(events.Event{Type: events.CardRemoved, CardID: cardID, Message: c.Name()})
	e.emit(events.Event{Type: events.HeroRecruited, CardID: cardID, HeroID: h.ID(), Message: h.Name(), Data: map[string]interface{}{"class_id": class.ID}})
	return h.ID(), nil
}

// defaultClass picks the class used by generic recruit cards
func (e *Engine) defaultClass() string {
	if lister, ok := e.catalog.(interface{ ClassIDs() []string }); ok {
		if ids := lister.ClassIDs(); len(ids) > 0 {
			return ids[0]
		}
	}
	return ""
}

// BindSlotItem binds a concrete item to an open (tagged) input slot of a production card
func (e *Engine) BindSlotItem(ctx context.Context, cardID string, slot int, itemID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, ok := e.board.Get(cardID)
	if !ok {
		return shared.NewCardNotFoundError(cardID)
	}
	p, ok := c.Payload().(*card.ProductionPayload)
	if !ok {
		return shared.NewCardStateError(cardID, "not a production card")
	}
	task, err := e.catalog.Task(p.TaskID)
	if err != nil {
		return err
	}
	if slot < 0 || slot >= len(task.Inputs) {
		return shared.NewInvalidSlotItemError(cardID, slot, itemID, fmt.Sprintf("task has %d input slots", len(task.Inputs)))
	}
	input := task.Inputs[slot]
	if input.ItemID != "" {
		return shared.NewInvalidSlotItemError(cardID, slot, itemID, "slot takes a fixed item")
	}
	item, err := e.catalog.Item(itemID)
	if err != nil {
		return err
	}
	if !item.HasTag(input.Tag) {
		return shared.NewInvalidSlotItemError(cardID, slot, itemID, fmt.Sprintf("item lacks tag %s", input.Tag))
	}
	if input.Tool && !item.IsTool() {
		return shared.NewInvalidSlotItemError(cardID, slot, itemID, "slot requires a tool")
	}

	e.ensureSlots(p, task)
	p.AssignedItems[slot] = itemID
	return nil
}

// EquipItem places an item in a hero's equipment slot; an empty id clears it
func (e *Engine) EquipItem(ctx context.Context, heroID string, slot content.EquipSlot, itemID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	h, err := e.heroes.Get(heroID)
	if err != nil {
		return err
	}
	if itemID != "" {
		item, err := e.catalog.Item(itemID)
		if err != nil {
			return err
		}
		if item.EquipSlot != slot {
			return shared.NewValidationError("slot", fmt.Sprintf("item %s does not fit slot %s", itemID, slot))
		}
	}
	return h.Equip(slot, itemID)
}

// DiscardCard removes a card from the board, releasing its hero
func (e *Engine) DiscardCard(ctx context.Context, cardID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, ok := e.board.Get(cardID)
	if !ok {
		return shared.NewCardNotFoundError(cardID)
	}
	e.releaseHero(c, card.ReleaseDiscarded)
	e.board.Remove(cardID)
	e.emit(events.Event{Type: events.CardRemoved, CardID: cardID, Message: c.Name()})
	return nil
}

// VerifyAssignments checks that board staffing and the assignment lock agree
// and that no hero holds more than one card
func (e *Engine) VerifyAssignments() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	holders := make(map[string]string)
	for _, c := range e.board.Cards() {
		if !c.HasHero() {
			continue
		}
		if other, taken := holders[c.AssignedHeroID()]; taken {
			return fmt.Errorf("hero %s holds cards %s and %s", c.AssignedHeroID(), other, c.ID())
		}
		holders[c.AssignedHeroID()] = c.ID()
		if heroID, ok := e.assignments.HeroFor(c.ID()); !ok || heroID != c.AssignedHeroID() {
			return fmt.Errorf("card %s staffed by %s without a matching assignment", c.ID(), c.AssignedHeroID())
		}
	}
	for _, a := range e.assignments.Active() {
		if holders[a.HeroID()] != a.CardID() {
			return fmt.Errorf("assignment %s not reflected on the board", a)
		}
	}
	return nil
}
