package simulation

import (
	"context"

	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/combat"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/progress"
)

func (e *Engine) newProductionCard(taskID, sourceBiomeID string) (*card.Card, error) {
	task, err := e.catalog.Task(taskID)
	if err != nil {
		return nil, err
	}
	payload := &card.ProductionPayload{
		TaskID:        task.ID,
		BaseTickTime:  effectiveTickTime(task, task.Effects),
		AssignedItems: make([]string, len(task.Inputs)),
		Effects:       task.Effects,
		SourceBiomeID: sourceBiomeID,
	}
	for i, slot := range task.Inputs {
		payload.AssignedItems[i] = slot.ItemID
	}
	return card.NewCard(e.newCardID(card.TypeProduction, task.ID), displayName(task.Name, task.ID), payload, e.clock.Now())
}

func (e *Engine) newExplorationCard(regionID string) (*card.Card, error) {
	region, err := e.catalog.Region(regionID)
	if err != nil {
		return nil, err
	}
	payload := &card.ExplorationPayload{
		RegionID:      region.ID,
		BiomeProgress: make(map[string]*card.BiomeProgress),
	}
	next, _, err := e.nextBiome(payload, region)
	if err != nil {
		return nil, err
	}
	payload.SelectedBiomeID = next
	return card.NewCard(e.newCardID(card.TypeExploration, region.ID), displayName(region.Name, region.ID), payload, e.clock.Now())
}

// newAreaCard seeds an area from a biome's quest groups and project chain
func (e *Engine) newAreaCard(biomeID string) (*card.Card, error) {
	biome, err := e.catalog.Biome(biomeID)
	if err != nil {
		return nil, err
	}
	payload := &card.AreaPayload{
		BiomeID:      biome.ID,
		Phase:        card.PhaseQuesting,
		ProjectChain: append([]string(nil), biome.ProjectChain...),
	}
	for _, tmpl := range biome.EnemyGroups {
		group := &card.EnemyGroup{
			Type:        tmpl.Type,
			EnemyID:     tmpl.EnemyID,
			UnlocksTask: tmpl.UnlocksTask,
			Rewards:     tmpl.Rewards,
			XPRewards:   tmpl.XPRewards,
		}
		if tmpl.Type == content.GroupCollection {
			group.Requirements = progress.Requirements(tmpl.Requirements)
		} else {
			group.Total = tmpl.Count
			if group.Total < 1 {
				group.Total = 1
			}
			group.Remaining = group.Total
		}
		payload.EnemyGroups = append(payload.EnemyGroups, group)
	}

	c, err := card.NewCard(e.newCardID(card.TypeArea, biome.ID), displayName(biome.Name, biome.ID), payload, e.clock.Now())
	if err != nil {
		return nil, err
	}
	if len(payload.EnemyGroups) == 0 {
		e.enterProjects(c, payload)
	}
	return c, nil
}

func (e *Engine) newCombatCard(enemyID string) (*card.Card, error) {
	enemy, err := e.catalog.Enemy(enemyID)
	if err != nil {
		return nil, err
	}
	payload := &card.CombatPayload{EnemyID: enemy.ID, Encounter: combat.NewEncounter(enemy)}
	return card.NewCard(e.newCardID(card.TypeCombat, enemy.ID), displayName(enemy.Name, enemy.ID), payload, e.clock.Now())
}

func (e *Engine) newRecruitCard(classID string) (*card.Card, error) {
	name := "Recruit"
	if classID != "" {
		class, err := e.catalog.Class(classID)
		if err != nil {
			return nil, err
		}
		name = "Recruit " + displayName(class.Name, class.ID)
	}
	return card.NewCard(e.newCardID(card.TypeRecruit, classID), name, &card.RecruitPayload{ClassID: classID}, e.clock.Now())
}

// place puts a freshly built card at the end of the board
func (e *Engine) place(c *card.Card) {
	e.board.Add(c)
	e.emit(events.Event{
		Type:    events.CardSpawned,
		CardID:  c.ID(),
		Message: c.Name(),
		Data:    map[string]interface{}{"card_type": string(c.Type())},
	})
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// SpawnTaskCard instantiates a production card from a task template
func (e *Engine) SpawnTaskCard(ctx context.Context, taskID string) (string, error) {
	return e.spawn(func() (*card.Card, error) { return e.newProductionCard(taskID, "") })
}

// SpawnCombatCard instantiates a standalone combat card against an enemy
func (e *Engine) SpawnCombatCard(ctx context.Context, enemyID string) (string, error) {
	return e.spawn(func() (*card.Card, error) { return e.newCombatCard(enemyID) })
}

// SpawnExplorationCard instantiates an exploration card for a region
func (e *Engine) SpawnExplorationCard(ctx context.Context, regionID string) (string, error) {
	return e.spawn(func() (*card.Card, error) { return e.newExplorationCard(regionID) })
}

// SpawnAreaCard instantiates an area card directly from a biome
func (e *Engine) SpawnAreaCard(ctx context.Context, biomeID string) (string, error) {
	return e.spawn(func() (*card.Card, error) { return e.newAreaCard(biomeID) })
}

// SpawnRecruitCard places a recruit voucher for a class ("" for any)
func (e *Engine) SpawnRecruitCard(ctx context.Context, classID string) (string, error) {
	return e.spawn(func() (*card.Card, error) { return e.newRecruitCard(classID) })
}

func (e *Engine) spawn(build func() (*card.Card, error)) (string, error) {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, err := build()
	if err != nil {
		return "", err
	}
	e.place(c)
	return c.ID(), nil
}

// AddCard places a prebuilt card on the board
func (e *Engine) AddCard(c *card.Card) {
	e.mu.Lock()
	defer e.unlockAndFlush()
	e.place(c)
}
