package simulation

import (
	"fmt"
	"math"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/combat"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
)

// CombatCategory scopes progression modifiers that apply to kill experience
const CombatCategory = "combat"

// grantItem stores quantity units and reports what did not fit
func (e *Engine) grantItem(c *card.Card, heroID, itemID string, quantity int) int {
	if quantity <= 0 {
		return 0
	}
	accepted := e.stock.Add(itemID, quantity)
	if accepted > 0 {
		e.emit(events.Event{Type: events.ItemsGranted, CardID: c.ID(), HeroID: heroID, ItemID: itemID, Amount: accepted})
	}
	if accepted < quantity {
		e.emit(events.Event{
			Type:    events.Notification,
			CardID:  c.ID(),
			HeroID:  heroID,
			ItemID:  itemID,
			Amount:  quantity - accepted,
			Message: fmt.Sprintf("inventory full, lost %d %s", quantity-accepted, itemID),
		})
		e.logger.Log(logging.LevelWarn, "inventory full", map[string]interface{}{
			"card_id": c.ID(),
			"item_id": itemID,
			"lost":    quantity - accepted,
		})
	}
	return accepted
}

func (e *Engine) grantCurrency(c *card.Card, heroID string, amount int) {
	if amount <= 0 {
		return
	}
	balance := e.progression.AddCurrency(amount)
	e.emit(events.Event{
		Type:   events.CurrencyGranted,
		CardID: c.ID(),
		HeroID: heroID,
		Amount: amount,
		Data:   map[string]interface{}{"balance": balance},
	})
}

// xpBonus sums the additive XP modifiers that apply to a skill gain
func (e *Engine) xpBonus(h *hero.Hero, skill, category, biomeID string) float64 {
	bonus := e.progression.ProjectBonus(category) + e.progression.XPBonus(category)
	if class, err := e.catalog.Class(h.ClassID()); err == nil {
		bonus += class.BonusFor(skill)
	}
	for _, traitID := range h.TraitIDs() {
		if trait, err := e.catalog.Trait(traitID); err == nil {
			bonus += trait.BonusFor(skill)
		}
	}
	if biomeID != "" {
		if biome, err := e.catalog.Biome(biomeID); err == nil {
			bonus += biome.XPBonus
		}
	}
	return bonus
}

func scaleXP(base int, bonus float64) int {
	if base <= 0 {
		return 0
	}
	return int(math.Round(float64(base) * (1 + bonus)))
}

// grantXP banks experience on h and emits the gain and any level-ups
func (e *Engine) grantXP(c *card.Card, h *hero.Hero, skill string, amount int) {
	if amount <= 0 {
		return
	}
	levels := h.AddXP(skill, amount)
	e.reportXP(c, h, combat.XPGain{Skill: skill, Amount: amount, LevelsUp: levels})
}

// reportXP emits events for experience already applied to the hero
func (e *Engine) reportXP(c *card.Card, h *hero.Hero, gains ...combat.XPGain) {
	cardID := ""
	if c != nil {
		cardID = c.ID()
	}
	for _, gain := range gains {
		if gain.Amount <= 0 {
			continue
		}
		e.emit(events.Event{Type: events.XPGained, CardID: cardID, HeroID: h.ID(), Amount: gain.Amount, Message: gain.Skill})
		if gain.LevelsUp > 0 {
			e.emit(events.Event{
				Type:    events.LevelUp,
				CardID:  cardID,
				HeroID:  h.ID(),
				Amount:  h.SkillLevel(gain.Skill),
				Message: gain.Skill,
			})
		}
	}
}

// grantLoot pays out an enemy kill: kill XP to the style's attack skill, currency and rolled drops
func (e *Engine) grantLoot(c *card.Card, h *hero.Hero, enemy *content.EnemyTemplate, style content.CombatStyle) {
	skill := combat.AttackSkill(style)
	e.grantXP(c, h, skill, scaleXP(enemy.XP, e.xpBonus(h, skill, CombatCategory, "")))
	e.grantCurrency(c, h.ID(), enemy.Currency)

	for _, drop := range enemy.Drops {
		if e.rng.Float64() >= drop.Chance {
			continue
		}
		quantity := drop.Min
		if drop.Max > drop.Min {
			quantity += e.rng.Intn(drop.Max - drop.Min + 1)
		}
		e.grantItem(c, h.ID(), drop.ItemID, quantity)
	}
}
