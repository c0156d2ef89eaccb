package simulation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/combat"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/progress"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// tickArea advances the quest line, then the project chain
func (e *Engine) tickArea(c *card.Card, p *card.AreaPayload, deltaMs float64) error {
	if p.AwaitingTaskClaim || p.Phase == card.PhaseComplete || c.IsComplete() {
		return nil
	}
	h, err := e.staffingHero(c)
	if err != nil {
		return err
	}

	switch p.Phase {
	case card.PhaseQuesting:
		return e.tickQuest(c, p, h, deltaMs)
	case card.PhaseProjects:
		return e.tickProjects(c, p, h, deltaMs)
	}
	return fmt.Errorf("unknown area phase %q", p.Phase)
}

func (e *Engine) tickQuest(c *card.Card, p *card.AreaPayload, h *hero.Hero, deltaMs float64) error {
	group := p.CurrentGroup()
	if group == nil {
		e.enterProjects(c, p)
		return nil
	}

	if group.Type == content.GroupCollection {
		if p.GroupProgress == nil {
			p.GroupProgress = progress.InitProgress(group.Requirements)
		}
		if e.advanceCycle(c, h, &p.CycleProgress, p.GroupProgress, group.Requirements, deltaMs) {
			p.GroupProgress = nil
			e.completeGroup(c, p, h)
		}
		return nil
	}

	enemy, err := e.catalog.Enemy(group.EnemyID)
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
		group.Remaining--
		e.emit(events.Event{
			Type:    events.CombatVictory,
			CardID:  c.ID(),
			HeroID:  h.ID(),
			Message: enemy.ID,
			Amount:  group.Remaining,
		})
		if group.Remaining <= 0 {
			group.Remaining = 0
			p.Encounter = nil
			e.completeGroup(c, p, h)
			return nil
		}
		p.Encounter.Reset(enemy)
	case combat.OutcomeDefeat:
		e.recordCombat(c, result.Outcome)
		p.Encounter.ZeroTimers()
		e.defeatHero(c, h, enemy)
	}
	return nil
}

// completeGroup raises the task-claim gate for the current group
func (e *Engine) completeGroup(c *card.Card, p *card.AreaPayload, h *hero.Hero) {
	group := p.CurrentGroup()
	p.AwaitingTaskClaim = true
	p.PendingTaskClaim = &card.TaskClaim{
		GroupIndex:  p.CurrentGroupIndex,
		UnlocksTask: group.UnlocksTask,
		Rewards:     group.Rewards,
		XPRewards:   group.XPRewards,
	}
	p.CycleProgress = 0
	e.releaseHero(c, card.ReleaseGate)
	e.setStatus(c, card.StatusIdle)
	e.emit(events.Event{
		Type:    events.GroupCompleted,
		CardID:  c.ID(),
		HeroID:  h.ID(),
		Amount:  p.CurrentGroupIndex,
		Message: p.BiomeID,
	})
}

func (e *Engine) enterProjects(c *card.Card, p *card.AreaPayload) {
	p.Phase = card.PhaseProjects
	p.CurrentProjectIndex = 0
	p.ProjectProgress = nil
	p.CycleProgress = 0
	if p.CurrentProject() == "" {
		e.completeArea(c, p)
	}
}

func (e *Engine) tickProjects(c *card.Card, p *card.AreaPayload, h *hero.Hero, deltaMs float64) error {
	projectID := p.CurrentProject()
	if projectID == "" {
		e.completeArea(c, p)
		return nil
	}
	project, err := e.catalog.Project(projectID)
	if err != nil {
		return err
	}
	if p.ProjectProgress == nil {
		p.ProjectProgress = progress.InitProgress(project.Cost)
	}
	if !e.advanceCycle(c, h, &p.CycleProgress, p.ProjectProgress, project.Cost, deltaMs) {
		return nil
	}

	if err := e.applyEffect(c, project.Effect); err != nil {
		e.notify(c, fmt.Sprintf("project %s effect failed: %v", project.ID, err))
	}
	if project.XPBonus > 0 {
		e.progression.AddProjectBonus(project.Category, project.XPBonus)
	}
	p.CompletedProjects = append(p.CompletedProjects, project.ID)
	p.CurrentProjectIndex++
	p.ProjectProgress = nil
	p.CycleProgress = 0
	e.emit(events.Event{
		Type:    events.ProjectCompleted,
		CardID:  c.ID(),
		HeroID:  h.ID(),
		Message: project.ID,
		Data:    map[string]interface{}{"effect": string(project.Effect.Type)},
	})

	if p.CurrentProject() == "" {
		e.completeArea(c, p)
	}
	return nil
}

// completeArea is terminal; the card stays on the board but never ticks again
func (e *Engine) completeArea(c *card.Card, p *card.AreaPayload) {
	p.Phase = card.PhaseComplete
	e.releaseHero(c, card.ReleaseComplete)
	e.setStatus(c, card.StatusComplete)
	e.emit(events.Event{Type: events.AreaComplete, CardID: c.ID(), Message: p.BiomeID})
}

// applyEffect performs a project's single completion effect
func (e *Engine) applyEffect(c *card.Card, effect content.ProjectEffect) error {
	switch effect.Type {
	case content.EffectRecruit:
		count := effect.Amount
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			recruit, err := e.newRecruitCard(effect.Target)
			if err != nil {
				return err
			}
			e.place(recruit)
		}
	case content.EffectInventorySlots:
		e.stock.AddSlotBonus(effect.Amount)
	case content.EffectMaxStack:
		e.stock.AddMaxStackBonus(effect.Amount)
	case content.EffectDoubleOutput:
		e.progression.AddDoubleOutput(effect.Category, effect.Value)
	case content.EffectXPBonus:
		e.progression.AddXPBonus(effect.Category, effect.Value)
	case content.EffectUnlockBiome:
		e.progression.UnlockBiome(effect.Target)
		e.notify(c, fmt.Sprintf("biome %s unlocked", effect.Target))
	case content.EffectExploreRegion:
		exploration, err := e.newExplorationCard(effect.Target)
		if err != nil {
			return err
		}
		e.place(exploration)
	default:
		return fmt.Errorf("unknown project effect %q", effect.Type)
	}
	return nil
}

// ClaimAreaTask resolves an area card's task-claim gate. The unlocked task
// card is spawned, item rewards are stored, XP rewards go to every hero and
// the quest moves to the next group. It returns the spawned task card id, if any.
func (e *Engine) ClaimAreaTask(ctx context.Context, cardID string) (string, error) {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, ok := e.board.Get(cardID)
	if !ok {
		return "", shared.NewCardNotFoundError(cardID)
	}
	p, ok := c.Payload().(*card.AreaPayload)
	if !ok {
		return "", shared.NewCardStateError(cardID, "not an area card")
	}
	if !p.AwaitingTaskClaim || p.PendingTaskClaim == nil {
		return "", shared.NewCardStateError(cardID, "no task is waiting to be claimed")
	}
	claim := p.PendingTaskClaim

	var task *card.Card
	if claim.UnlocksTask != "" {
		spawned, err := e.newProductionCard(claim.UnlocksTask, p.BiomeID)
		if err != nil {
			return "", err
		}
		task = spawned
	}

	if task != nil {
		e.place(task)
	}
	for _, reward := range claim.Rewards {
		e.grantItem(c, "", reward.ItemID, reward.Quantity)
	}
	for _, reward := range claim.XPRewards {
		for _, h := range e.heroes.All() {
			e.grantXP(c, h, reward.Skill, reward.Amount)
		}
	}

	p.AwaitingTaskClaim = false
	p.PendingTaskClaim = nil
	p.CurrentGroupIndex++
	p.GroupProgress = nil
	p.Encounter = nil
	p.CycleProgress = 0

	spawnedID := ""
	if task != nil {
		spawnedID = task.ID()
	}
	e.emit(events.Event{
		Type:    events.TaskClaimed,
		CardID:  c.ID(),
		Message: claim.UnlocksTask,
		Amount:  claim.GroupIndex,
		Data:    map[string]interface{}{"task_card_id": spawnedID},
	})

	if p.CurrentGroup() == nil {
		e.enterProjects(c, p)
	}
	return spawnedID, nil
}
