package simulation

import (
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
)

// tickProduction runs the idle -> active -> idle loop with the idle <-> paused resource gate
func (e *Engine) tickProduction(c *card.Card, p *card.ProductionPayload, deltaMs float64) error {
	task, err := e.catalog.Task(p.TaskID)
	if err != nil {
		return err
	}
	h, err := e.staffingHero(c)
	if err != nil {
		return err
	}
	e.ensureSlots(p, task)
	if p.BaseTickTime <= 0 {
		p.BaseTickTime = effectiveTickTime(task, p.Effects)
	}

	switch c.Status() {
	case card.StatusComplete:
		return nil
	case card.StatusPaused:
		if ok, _ := e.productionReady(p, task, h); ok {
			e.setStatus(c, card.StatusIdle)
		}
		return nil
	case card.StatusIdle:
		if ok, _ := e.productionReady(p, task, h); !ok {
			e.setStatus(c, card.StatusPaused)
			return nil
		}
		e.setStatus(c, card.StatusActive)
	}

	p.Progress += deltaMs * e.speedMultiplier(h, task.Skill)
	if p.Progress < p.BaseTickTime {
		return nil
	}
	return e.completeProduction(c, p, task, h)
}

// completeProduction settles one finished cycle
func (e *Engine) completeProduction(c *card.Card, p *card.ProductionPayload, task *content.TaskTemplate, h *hero.Hero) error {
	if ok, reason := e.productionReady(p, task, h); !ok {
		p.Progress = 0
		e.setStatus(c, card.StatusPaused)
		e.emit(events.Event{
			Type:    events.CycleDiscarded,
			CardID:  c.ID(),
			HeroID:  h.ID(),
			Message: fmt.Sprintf("cannot complete %s: %s", task.Name, reason),
		})
		return nil
	}

	h.SpendEnergy(task.EnergyCost)

	toolDepleted := false
	for i, slot := range task.Inputs {
		itemID := p.AssignedItems[i]
		if !slot.Tool {
			e.stock.Remove(itemID, slot.Quantity)
			continue
		}
		result := e.stock.DecrementDurability(itemID)
		if result.Broke {
			e.emit(events.Event{Type: events.ToolBroken, CardID: c.ID(), HeroID: h.ID(), ItemID: itemID, Message: "tool broken"})
		}
		if result.Depleted {
			p.AssignedItems[i] = ""
			toolDepleted = true
			e.emit(events.Event{Type: events.ToolDepleted, CardID: c.ID(), HeroID: h.ID(), ItemID: itemID, Message: "no tools left"})
		}
	}

	failed := p.Effects.FailChance > 0 && e.rng.Float64() < p.Effects.FailChance
	doubleChance := p.Effects.DoubleChance + e.progression.DoubleOutputChance(task.Category)
	doubled := doubleChance > 0 && e.rng.Float64() < doubleChance

	multiplier := 1
	switch {
	case failed:
		multiplier = 0
	case doubled:
		multiplier = 2
	}

	if failed {
		e.emit(events.Event{Type: events.TaskFailed, CardID: c.ID(), HeroID: h.ID(), Message: task.ID})
	} else {
		for _, out := range task.Outputs {
			e.grantItem(c, h.ID(), out.ItemID, out.Quantity*multiplier)
		}
		e.grantCurrency(c, h.ID(), task.Currency*multiplier)
	}

	biomeID := p.SourceBiomeID
	if biomeID == "" {
		biomeID = task.BiomeID
	}
	bonus := e.xpBonus(h, task.Skill, task.Category, biomeID) + p.Effects.XPBonus
	e.grantXP(c, h, task.Skill, scaleXP(task.XP, bonus))

	p.Progress = 0
	if toolDepleted {
		e.setStatus(c, card.StatusPaused)
	} else {
		e.setStatus(c, card.StatusIdle)
	}

	e.emit(events.Event{
		Type:    events.TaskCompleted,
		CardID:  c.ID(),
		HeroID:  h.ID(),
		Message: task.ID,
		Data: map[string]interface{}{
			"doubled": doubled && !failed,
			"failed":  failed,
		},
	})
	e.logger.Log(logging.LevelDebug, "production cycle completed", map[string]interface{}{
		"card_id": c.ID(),
		"task_id": task.ID,
		"doubled": doubled && !failed,
		"failed":  failed,
	})
	return nil
}

// productionReady reports whether the hero has the energy and every input
// slot is bound to enough stock. Open slots are rebound to the first item
// carrying their tag when the current binding runs dry.
func (e *Engine) productionReady(p *card.ProductionPayload, task *content.TaskTemplate, h *hero.Hero) (bool, string) {
	if h.Energy().Current < task.EnergyCost {
		return false, "not enough energy"
	}

	needed := make(map[string]int)
	for i, slot := range task.Inputs {
		quantity := slotQuantity(slot)
		if slot.ItemID != "" {
			p.AssignedItems[i] = slot.ItemID
		} else if !e.bindingUsable(p.AssignedItems[i], slot, quantity+needed[p.AssignedItems[i]]) {
			p.AssignedItems[i] = e.firstTagged(slot.Tag, needed, quantity)
		}

		itemID := p.AssignedItems[i]
		if itemID == "" || !e.stock.Has(itemID, quantity+needed[itemID]) {
			return false, fmt.Sprintf("missing input for slot %d", i)
		}
		needed[itemID] += quantity
	}
	return true, ""
}

func (e *Engine) bindingUsable(itemID string, slot content.InputSlot, quantity int) bool {
	if itemID == "" {
		return false
	}
	item, err := e.catalog.Item(itemID)
	if err != nil || !item.HasTag(slot.Tag) {
		return false
	}
	return e.stock.Has(itemID, quantity)
}

// firstTagged picks the lowest-id item with tag that still covers quantity after earlier slots
func (e *Engine) firstTagged(tag string, claimed map[string]int, quantity int) string {
	for _, itemID := range e.catalog.ItemsWithTag(tag) {
		if e.stock.Has(itemID, quantity+claimed[itemID]) {
			return itemID
		}
	}
	return ""
}

// ensureSlots sizes the binding list to the task's inputs
func (e *Engine) ensureSlots(p *card.ProductionPayload, task *content.TaskTemplate) {
	if len(p.AssignedItems) == len(task.Inputs) {
		return
	}
	bound := make([]string, len(task.Inputs))
	copy(bound, p.AssignedItems)
	p.AssignedItems = bound
}

func (e *Engine) speedMultiplier(h *hero.Hero, skill string) float64 {
	return 1 + float64(h.SkillLevel(skill))*e.bal.SkillSpeedFactor
}

// slotQuantity is the stock a slot needs per cycle; tools only need one unit present
func slotQuantity(slot content.InputSlot) int {
	if slot.Tool {
		return 1
	}
	if slot.Quantity < 1 {
		return 1
	}
	return slot.Quantity
}

func effectiveTickTime(task *content.TaskTemplate, effects content.SourceEffects) float64 {
	multiplier := effects.TickTimeMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	return float64(task.BaseTickTime) * multiplier
}
