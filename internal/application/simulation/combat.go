package simulation

import (
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/combat"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
)

// tickCombat loops fights against one enemy for as long as a hero is assigned
func (e *Engine) tickCombat(c *card.Card, p *card.CombatPayload, deltaMs float64) error {
	h, err := e.staffingHero(c)
	if err != nil {
		return err
	}
	enemy, err := e.catalog.Enemy(p.EnemyID)
	if err != nil {
		return err
	}
	if p.Encounter == nil || p.Encounter.EnemyID != enemy.ID {
		p.Encounter = combat.NewEncounter(enemy)
	}
	e.setStatus(c, card.StatusActive)

	result, style, err := e.fight(c, h, p.Encounter, enemy, deltaMs)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case combat.OutcomeVictory:
		e.recordCombat(c, result.Outcome)
		e.grantLoot(c, h, enemy, style)
		p.Encounter.Reset(enemy)
		e.emit(events.Event{Type: events.CombatVictory, CardID: c.ID(), HeroID: h.ID(), Message: enemy.ID})
	case combat.OutcomeDefeat:
		e.recordCombat(c, result.Outcome)
		p.Encounter.Reset(enemy)
		e.defeatHero(c, h, enemy)
	}
	return nil
}

// fight runs one resolver tick, returning the hero's style. Auto-consumption
// is checked only when the hero's attack window opens.
func (e *Engine) fight(c *card.Card, h *hero.Hero, enc *combat.Encounter, enemy *content.EnemyTemplate, deltaMs float64) (combat.TickResult, content.CombatStyle, error) {
	stats, err := e.heroCombatant(h)
	if err != nil {
		return combat.TickResult{}, "", err
	}
	opts := combat.Options{BeforeAttack: func() bool { return e.autoConsume(c, h) }}
	result := e.resolver.Tick(enc, h, stats, enemy, deltaMs, opts)
	e.reportXP(c, h, result.XP...)
	if result.StarvedBegan {
		e.notify(c, "too tired to attack")
	}
	return result, stats.Style, nil
}

func (e *Engine) heroCombatant(h *hero.Hero) (combat.Combatant, error) {
	var weapon, armor *content.ItemTemplate
	eq := h.Equipment()
	if eq.Weapon != "" {
		item, err := e.catalog.Item(eq.Weapon)
		if err != nil {
			return combat.Combatant{}, err
		}
		weapon = item
	}
	if eq.Armor != "" {
		item, err := e.catalog.Item(eq.Armor)
		if err != nil {
			return combat.Combatant{}, err
		}
		armor = item
	}
	return combat.HeroCombatant(h, weapon, armor), nil
}

// autoConsume eats equipped food when HP is low, or drinks when energy is low.
// It reports whether something was consumed, which uses up the attack window.
func (e *Engine) autoConsume(c *card.Card, h *hero.Hero) bool {
	eq := h.Equipment()
	hp, energy := h.HP(), h.Energy()

	if eq.Food != "" && below(hp, e.bal.AutoConsumeHP) && e.consume(c, h, eq.Food, true) {
		return true
	}
	if eq.Drink != "" && below(energy, e.bal.AutoConsumeEnergy) && e.consume(c, h, eq.Drink, false) {
		return true
	}
	return false
}

func (e *Engine) consume(c *card.Card, h *hero.Hero, itemID string, food bool) bool {
	item, err := e.catalog.Item(itemID)
	if err != nil {
		return false
	}
	restore := item.RestoreEnergy
	if food {
		restore = item.RestoreHP
	}
	if restore <= 0 || !e.stock.Remove(itemID, 1) {
		return false
	}

	var restored int
	if food {
		restored = h.ModifyHP(restore)
	} else {
		restored = h.ModifyEnergy(restore)
	}
	e.emit(events.Event{Type: events.ConsumableUsed, CardID: c.ID(), HeroID: h.ID(), ItemID: itemID, Amount: restored})
	return true
}

func below(v hero.Vital, threshold float64) bool {
	return float64(v.Current) < threshold*float64(v.Max)
}

// defeatHero wounds the hero and takes it off the card
func (e *Engine) defeatHero(c *card.Card, h *hero.Hero, enemy *content.EnemyTemplate) {
	h.Wound()
	e.emit(events.Event{Type: events.HeroWounded, CardID: c.ID(), HeroID: h.ID(), Message: enemy.ID})
	e.emit(events.Event{Type: events.CombatDefeat, CardID: c.ID(), HeroID: h.ID(), Message: enemy.ID})
	e.releaseHero(c, card.ReleaseDefeat)
	e.setStatus(c, card.StatusIdle)
}

func (e *Engine) recordCombat(c *card.Card, outcome combat.Outcome) {
	if e.metrics != nil {
		e.metrics.RecordCombatOutcome(string(c.Type()), string(outcome))
	}
}
