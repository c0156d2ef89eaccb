package simulation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/progress"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// tickExploration works through the selected biome's exploration cost
func (e *Engine) tickExploration(c *card.Card, p *card.ExplorationPayload, deltaMs float64) error {
	if p.AwaitingDiscovery || c.IsComplete() {
		return nil
	}
	h, err := e.staffingHero(c)
	if err != nil {
		return err
	}
	region, err := e.catalog.Region(p.RegionID)
	if err != nil {
		return err
	}

	if p.SelectedBiomeID == "" {
		next, _, err := e.nextBiome(p, region)
		if err != nil {
			return err
		}
		if next == "" {
			e.setStatus(c, card.StatusPaused)
			return nil
		}
		p.SelectedBiomeID = next
	}

	bp, err := e.biomeProgress(p, region)
	if err != nil {
		return err
	}
	if !e.advanceCycle(c, h, &p.CycleProgress, bp.Input, bp.Requirements, deltaMs) {
		return nil
	}

	biomeID := p.SelectedBiomeID
	p.AwaitingDiscovery = true
	p.PendingDiscovery = biomeID
	p.CycleProgress = 0
	e.releaseHero(c, card.ReleaseGate)
	e.setStatus(c, card.StatusIdle)
	e.emit(events.Event{Type: events.BiomeReady, CardID: c.ID(), HeroID: h.ID(), Message: biomeID})
	return nil
}

// biomeProgress lazily builds the scaled requirement set for the selected biome
func (e *Engine) biomeProgress(p *card.ExplorationPayload, region *content.RegionTemplate) (*card.BiomeProgress, error) {
	if p.BiomeProgress == nil {
		p.BiomeProgress = make(map[string]*card.BiomeProgress)
	}
	if bp, ok := p.BiomeProgress[p.SelectedBiomeID]; ok {
		return bp, nil
	}

	biome, err := e.catalog.Biome(p.SelectedBiomeID)
	if err != nil {
		return nil, err
	}
	factor := (1 + e.bal.ExplorationScaling*float64(e.progression.Explorations())) * regionMultiplier(region)
	reqs := progress.ApplyMultiplier(biome.ExploreCost, factor)
	bp := &card.BiomeProgress{Input: progress.InitProgress(reqs), Requirements: reqs}
	p.BiomeProgress[p.SelectedBiomeID] = bp
	return bp, nil
}

// nextBiome returns the first unexplored, unlocked biome of the region and
// whether locked biomes are still waiting
func (e *Engine) nextBiome(p *card.ExplorationPayload, region *content.RegionTemplate) (string, bool, error) {
	lockedRemaining := false
	for _, biomeID := range region.Biomes {
		if p.IsExplored(biomeID) {
			continue
		}
		biome, err := e.catalog.Biome(biomeID)
		if err != nil {
			return "", false, err
		}
		if biome.Locked && !e.progression.IsUnlocked(biomeID) {
			lockedRemaining = true
			continue
		}
		return biomeID, lockedRemaining, nil
	}
	return "", lockedRemaining, nil
}

func regionMultiplier(region *content.RegionTemplate) float64 {
	if region.CostMultiplier <= 0 {
		return 1
	}
	return region.CostMultiplier
}

// Discover resolves an exploration card's discovery gate: the pending biome
// becomes explored, an area card is spawned for it and the card moves on to
// the next biome or finishes. It returns the new area card id.
func (e *Engine) Discover(ctx context.Context, cardID string) (string, error) {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, p, err := e.explorationCard(cardID)
	if err != nil {
		return "", err
	}
	if !p.AwaitingDiscovery {
		return "", shared.NewCardStateError(cardID, "no biome is awaiting discovery")
	}
	region, err := e.catalog.Region(p.RegionID)
	if err != nil {
		return "", err
	}
	biomeID := p.PendingDiscovery
	area, err := e.newAreaCard(biomeID)
	if err != nil {
		return "", err
	}

	p.ExploredBiomes = append(p.ExploredBiomes, biomeID)
	delete(p.BiomeProgress, biomeID)
	explorations := e.progression.RecordExploration()
	p.AwaitingDiscovery = false
	p.PendingDiscovery = ""
	p.SelectedBiomeID = ""
	p.CycleProgress = 0

	e.place(area)
	e.emit(events.Event{
		Type:    events.BiomeDiscovered,
		CardID:  c.ID(),
		Message: biomeID,
		Amount:  explorations,
		Data:    map[string]interface{}{"area_card_id": area.ID()},
	})

	next, lockedRemaining, err := e.nextBiome(p, region)
	if err != nil {
		return area.ID(), err
	}
	switch {
	case next != "":
		p.SelectedBiomeID = next
		e.setStatus(c, card.StatusIdle)
	case lockedRemaining:
		e.setStatus(c, card.StatusPaused)
	default:
		e.setStatus(c, card.StatusComplete)
		c.ScheduleRemoval()
		e.emit(events.Event{Type: events.ExplorationComplete, CardID: c.ID(), Message: p.RegionID})
	}
	return area.ID(), nil
}

// SelectBiome points an exploration card at a specific unexplored biome
func (e *Engine) SelectBiome(ctx context.Context, cardID, biomeID string) error {
	e.mu.Lock()
	defer e.unlockAndFlush()

	c, p, err := e.explorationCard(cardID)
	if err != nil {
		return err
	}
	if gate, gated := c.Gate(); gated {
		return shared.NewCardGatedError(cardID, gate)
	}
	region, err := e.catalog.Region(p.RegionID)
	if err != nil {
		return err
	}
	if !containsString(region.Biomes, biomeID) {
		return shared.NewValidationError("biome_id", fmt.Sprintf("biome %s is not part of region %s", biomeID, region.ID))
	}
	if p.IsExplored(biomeID) {
		return shared.NewValidationError("biome_id", fmt.Sprintf("biome %s is already explored", biomeID))
	}
	biome, err := e.catalog.Biome(biomeID)
	if err != nil {
		return err
	}
	if biome.Locked && !e.progression.IsUnlocked(biomeID) {
		return shared.NewValidationError("biome_id", fmt.Sprintf("biome %s is locked", biomeID))
	}

	if p.SelectedBiomeID != biomeID {
		p.SelectedBiomeID = biomeID
		p.CycleProgress = 0
	}
	if c.Status() == card.StatusPaused {
		e.setStatus(c, card.StatusIdle)
	}
	return nil
}

func (e *Engine) explorationCard(cardID string) (*card.Card, *card.ExplorationPayload, error) {
	c, ok := e.board.Get(cardID)
	if !ok {
		return nil, nil, shared.NewCardNotFoundError(cardID)
	}
	p, ok := c.Payload().(*card.ExplorationPayload)
	if !ok {
		return nil, nil, shared.NewCardStateError(cardID, "not an exploration card")
	}
	return c, p, nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
