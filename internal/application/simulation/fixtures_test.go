package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/inventory"
	"github.com/andrescamacho/cardquest-go/internal/domain/progression"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// testDefinitions is a small world: a meadow with one wolf pack and a camp
// project, a locked cave, and a few production tasks
func testDefinitions() content.Definitions {
	return content.Definitions{
		Items: []content.ItemTemplate{
			{ID: "oak_log", Name: "Oak Log", Tags: []string{"log"}},
			{ID: "pine_log", Name: "Pine Log", Tags: []string{"log"}},
			{ID: "plank", Name: "Plank"},
			{ID: "stone", Name: "Stone"},
			{ID: "fiber", Name: "Fiber"},
			{ID: "hatchet", Name: "Hatchet", Tags: []string{"axe"}, Durability: 1},
			{ID: "steel_axe", Name: "Steel Axe", Tags: []string{"axe"}, Durability: 3},
			{ID: "bread", Name: "Bread", EquipSlot: content.SlotFood, RestoreHP: 10},
			{ID: "tea", Name: "Tea", EquipSlot: content.SlotDrink, RestoreEnergy: 5},
			{ID: "sword", Name: "Sword", EquipSlot: content.SlotWeapon, Style: content.StyleMelee, StrengthBonus: 4},
			{ID: "pelt", Name: "Pelt"},
			{ID: "arrow", Name: "Arrow", MaxStack: 10},
		},
		Enemies: []content.EnemyTemplate{
			{ID: "wolf", Name: "Wolf", HP: 1, AttackSpeed: 3000, Style: content.StyleMelee, XP: 10, Currency: 2},
			{ID: "bear", Name: "Bear", HP: 10, AttackSpeed: 2400, Style: content.StyleMelee, Strength: 40},
			{ID: "boar", Name: "Boar", HP: 1, AttackSpeed: 3000, Style: content.StyleMelee,
				Drops: []content.Drop{{ItemID: "pelt", Chance: 0.5, Min: 1, Max: 3}}},
		},
		Biomes: []content.BiomeTemplate{
			{
				ID: "meadow", Name: "Meadow", Region: "vale",
				ExploreCost: map[string]int{"stone": 2},
				EnemyGroups: []content.EnemyGroupTemplate{
					{Type: content.GroupCombat, EnemyID: "wolf", Count: 2, UnlocksTask: "gather_fiber",
						Rewards:   []content.ItemReward{{ItemID: "pelt", Quantity: 1}},
						XPRewards: []content.XPReward{{Skill: "survival", Amount: 5}}},
					{Type: content.GroupCollection, Requirements: map[string]int{"stone": 1}},
				},
				ProjectChain: []string{"camp"},
				XPBonus:      0.5,
			},
			{ID: "cave", Name: "Cave", Region: "vale", Locked: true, ExploreCost: map[string]int{"stone": 1}},
			{
				ID: "den", Name: "Den", Region: "wilds",
				ExploreCost: map[string]int{"stone": 1},
				EnemyGroups: []content.EnemyGroupTemplate{{Type: content.GroupCombat, EnemyID: "bear", Count: 1}},
			},
		},
		Regions: []content.RegionTemplate{
			{ID: "vale", Name: "Vale", Biomes: []string{"meadow", "cave"}},
			{ID: "wilds", Name: "Wilds", Biomes: []string{"den"}, CostMultiplier: 2},
		},
		Projects: []content.ProjectTemplate{
			{ID: "camp", Name: "Camp", Cost: map[string]int{"plank": 1},
				Effect: content.ProjectEffect{Type: content.EffectUnlockBiome, Target: "cave"}},
		},
		Tasks: []content.TaskTemplate{
			{ID: "saw_planks", Name: "Saw Planks", Skill: "carpentry", Category: "crafting", BaseTickTime: 10000,
				EnergyCost: 1, XP: 10,
				Inputs:  []content.InputSlot{{ItemID: "oak_log", Quantity: 2}},
				Outputs: []content.ItemReward{{ItemID: "plank", Quantity: 1}}},
			{ID: "chop", Name: "Chop", Skill: "woodcutting", Category: "gathering", BaseTickTime: 1000, XP: 4,
				Inputs:  []content.InputSlot{{Tag: "axe", Quantity: 1, Tool: true}},
				Outputs: []content.ItemReward{{ItemID: "oak_log", Quantity: 1}}},
			{ID: "burn_logs", Name: "Burn Logs", Skill: "firemaking", BaseTickTime: 1000, XP: 1,
				Inputs: []content.InputSlot{{Tag: "log", Quantity: 1}}},
			{ID: "gather_fiber", Name: "Gather Fiber", Skill: "survival", BaseTickTime: 1000, XP: 2,
				Outputs: []content.ItemReward{{ItemID: "fiber", Quantity: 1}}},
		},
		Classes: []content.ClassTemplate{
			{ID: "warrior", Name: "Warrior", BaseHP: 20, Energy: 20},
			{ID: "squire", Name: "Squire", BaseHP: 1, Energy: 20},
			{ID: "crafter", Name: "Crafter", BaseHP: 10, Energy: 10, XPBonus: map[string]float64{"carpentry": 0.5}},
		},
		Traits: []content.TraitTemplate{
			{ID: "diligent", Name: "Diligent", XPBonus: map[string]float64{content.AnySkill: 0.1}},
		},
	}
}

const fixtureSlotCap = 20

type fixture struct {
	t        *testing.T
	ctx      context.Context
	catalog  *content.Registry
	stock    *inventory.Inventory
	heroes   *hero.Registry
	progress *progression.State
	bus      *events.Bus
	recorder *events.Recorder
	logs     *logging.Capture
	clock    *shared.MockClock
	engine   *simulation.Engine
}

func newFixture(t *testing.T, rng shared.Random) *fixture {
	t.Helper()
	return newFixtureWith(t, rng, testDefinitions())
}

// newWorkshopFixture adds a biome whose only content is a single project with effect
func newWorkshopFixture(t *testing.T, effect content.ProjectEffect) *fixture {
	t.Helper()
	defs := testDefinitions()
	defs.Projects = append(defs.Projects, content.ProjectTemplate{
		ID: "build", Name: "Build", Cost: map[string]int{"plank": 1}, Effect: effect,
	})
	defs.Biomes = append(defs.Biomes, content.BiomeTemplate{
		ID: "workshop", Name: "Workshop", Region: "wilds",
		ExploreCost:  map[string]int{"stone": 1},
		ProjectChain: []string{"build"},
	})
	return newFixtureWith(t, nil, defs)
}

func newFixtureWith(t *testing.T, rng shared.Random, defs content.Definitions) *fixture {
	t.Helper()
	catalog, err := content.NewRegistry(defs)
	require.NoError(t, err)

	if rng == nil {
		rng = shared.NewSequenceRandom()
	}
	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		catalog:  catalog,
		stock:    inventory.NewInventory(catalog, fixtureSlotCap),
		heroes:   hero.NewRegistry(),
		progress: progression.NewState(),
		bus:      events.NewBus(),
		recorder: &events.Recorder{},
		logs:     &logging.Capture{},
		clock:    shared.NewMockClock(time.Time{}),
	}
	f.bus.Subscribe(f.recorder.Publish)
	f.engine, err = simulation.NewEngine(simulation.Dependencies{
		Catalog:     catalog,
		Stock:       f.stock,
		Heroes:      f.heroes,
		Progression: f.progress,
		Publisher:   f.bus,
		Logger:      f.logs,
		Clock:       f.clock,
		Random:      rng,
		Balance:     simulation.DefaultBalance(),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) addHero(id, classID string) *hero.Hero {
	f.t.Helper()
	class, err := f.catalog.Class(classID)
	require.NoError(f.t, err)
	h, err := hero.NewHero(id, id, classID, class.BaseHP, class.Energy)
	require.NoError(f.t, err)
	require.NoError(f.t, f.heroes.Add(h))
	return h
}

func (f *fixture) stockUp(itemID string, n int) {
	f.t.Helper()
	require.Equal(f.t, n, f.stock.Add(itemID, n))
}

func (f *fixture) spawn(cardType card.Type, templateID string) *card.Card {
	f.t.Helper()
	var (
		id  string
		err error
	)
	switch cardType {
	case card.TypeProduction:
		id, err = f.engine.SpawnTaskCard(f.ctx, templateID)
	case card.TypeExploration:
		id, err = f.engine.SpawnExplorationCard(f.ctx, templateID)
	case card.TypeArea:
		id, err = f.engine.SpawnAreaCard(f.ctx, templateID)
	case card.TypeCombat:
		id, err = f.engine.SpawnCombatCard(f.ctx, templateID)
	case card.TypeRecruit:
		id, err = f.engine.SpawnRecruitCard(f.ctx, templateID)
	}
	require.NoError(f.t, err)
	c, ok := f.engine.LiveCard(id)
	require.True(f.t, ok)
	return c
}

func (f *fixture) assign(heroID string, c *card.Card) {
	f.t.Helper()
	require.NoError(f.t, f.engine.AssignHero(f.ctx, heroID, c.ID()))
}

// tickN advances the engine n times by deltaMs
func (f *fixture) tickN(n int, deltaMs float64) {
	for i := 0; i < n; i++ {
		f.engine.Tick(f.ctx, deltaMs)
	}
}
