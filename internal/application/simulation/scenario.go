package simulation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
)

// Scenario is the starting state of a run: heroes, stock and cards, with
// optional initial staffing
type Scenario struct {
	Name           string       `yaml:"name" validate:"required"`
	Seed           int64        `yaml:"seed"`
	Currency       int          `yaml:"currency" validate:"min=0"`
	UnlockedBiomes []string     `yaml:"unlocked_biomes"`
	Heroes         []HeroSetup  `yaml:"heroes" validate:"dive"`
	Stock          []StockSetup `yaml:"stock" validate:"dive"`
	Cards          []CardSetup  `yaml:"cards" validate:"dive"`
}

// HeroSetup seeds one hero
type HeroSetup struct {
	ID        string                       `yaml:"id" validate:"required"`
	Name      string                       `yaml:"name"`
	Class     string                       `yaml:"class" validate:"required"`
	Traits    []string                     `yaml:"traits"`
	Skills    map[string]int               `yaml:"skills"`
	Equipment map[content.EquipSlot]string `yaml:"equipment"`
}

// StockSetup seeds one inventory stack
type StockSetup struct {
	ItemID   string `yaml:"item_id" validate:"required"`
	Quantity int    `yaml:"quantity" validate:"min=1"`
}

// CardSetup spawns one card from a template id, optionally staffed by Hero
type CardSetup struct {
	Type     card.Type `yaml:"type" validate:"required,oneof=production exploration area combat recruit"`
	Template string    `yaml:"template"`
	Hero     string    `yaml:"hero"`
}

// ApplyScenario seeds the roster, stock and board and performs initial assignments
func (e *Engine) ApplyScenario(ctx context.Context, sc Scenario) error {
	if err := e.seedWorld(sc); err != nil {
		return err
	}

	for i, setup := range sc.Cards {
		cardID, err := e.spawnSetup(ctx, setup)
		if err != nil {
			return fmt.Errorf("scenario card %d (%s %s): %w", i, setup.Type, setup.Template, err)
		}
		if setup.Hero == "" {
			continue
		}
		if err := e.AssignHero(ctx, setup.Hero, cardID); err != nil {
			return fmt.Errorf("scenario card %d: assign %s: %w", i, setup.Hero, err)
		}
	}
	return nil
}

func (e *Engine) seedWorld(sc Scenario) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	for _, setup := range sc.Heroes {
		class, err := e.catalog.Class(setup.Class)
		if err != nil {
			return err
		}
		for _, traitID := range setup.Traits {
			if _, err := e.catalog.Trait(traitID); err != nil {
				return err
			}
		}
		h, err := hero.NewHero(setup.ID, displayName(setup.Name, setup.ID), class.ID, class.BaseHP, class.Energy, setup.Traits...)
		if err != nil {
			return err
		}
		for skill, level := range setup.Skills {
			h.SetSkill(skill, level, 0)
		}
		for slot, itemID := range setup.Equipment {
			if _, err := e.catalog.Item(itemID); err != nil {
				return err
			}
			if err := h.Equip(slot, itemID); err != nil {
				return err
			}
		}
		if err := e.heroes.Add(h); err != nil {
			return err
		}
	}

	for _, stack := range sc.Stock {
		if accepted := e.stock.Add(stack.ItemID, stack.Quantity); accepted < stack.Quantity {
			return fmt.Errorf("scenario stock %s: only %d of %d fit", stack.ItemID, accepted, stack.Quantity)
		}
	}
	if sc.Currency > 0 {
		e.progression.AddCurrency(sc.Currency)
	}
	for _, biomeID := range sc.UnlockedBiomes {
		e.progression.UnlockBiome(biomeID)
	}
	return nil
}

func (e *Engine) spawnSetup(ctx context.Context, setup CardSetup) (string, error) {
	switch setup.Type {
	case card.TypeProduction:
		return e.SpawnTaskCard(ctx, setup.Template)
	case card.TypeExploration:
		return e.SpawnExplorationCard(ctx, setup.Template)
	case card.TypeArea:
		return e.SpawnAreaCard(ctx, setup.Template)
	case card.TypeCombat:
		return e.SpawnCombatCard(ctx, setup.Template)
	case card.TypeRecruit:
		return e.SpawnRecruitCard(ctx, setup.Template)
	}
	return "", fmt.Errorf("unknown card type %q", setup.Type)
}
