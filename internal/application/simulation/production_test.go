package simulation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

func TestProduction_CompletesExactlyOncePerBaseTickTime(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	f.stockUp("oak_log", 4)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)
	p := c.Payload().(*card.ProductionPayload)

	// Act
	f.tickN(10, 1000)

	// Assert
	assert.Equal(t, 1, f.stock.Count("plank"))
	assert.Equal(t, 2, f.stock.Count("oak_log"))
	assert.Equal(t, card.StatusIdle, c.Status())
	assert.Zero(t, p.Progress)
	assert.Equal(t, "ada", c.AssignedHeroID())
	assert.Equal(t, 19, ada.Energy().Current)
	assert.Len(t, f.recorder.OfType(events.TaskCompleted), 1)
}

func TestProduction_LoopsWhileHeroStaysAssigned(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")
	f.stockUp("oak_log", 6)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)

	// Act - three cycles plus the idle -> active transitions
	f.tickN(32, 1000)

	// Assert
	assert.Equal(t, 3, f.stock.Count("plank"))
	assert.Equal(t, 0, f.stock.Count("oak_log"))
	assert.Len(t, f.recorder.OfType(events.TaskCompleted), 3)
}

func TestProduction_PausesWithoutInputsAndNeverConsumes(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")
	f.stockUp("oak_log", 1)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)

	// Act
	f.tickN(20, 1000)

	// Assert
	assert.Equal(t, card.StatusPaused, c.Status())
	assert.Zero(t, c.Payload().(*card.ProductionPayload).Progress)
	assert.Equal(t, 1, f.stock.Count("oak_log"))
	assert.Equal(t, 0, f.stock.Count("plank"))
}

func TestProduction_ResumesWhenInputsReturn(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)
	f.engine.Tick(f.ctx, 1000)
	require.Equal(t, card.StatusPaused, c.Status())

	// Act
	f.stockUp("oak_log", 2)
	f.engine.Tick(f.ctx, 1000)

	// Assert - paused only returns to idle; progress starts on the next tick
	assert.Equal(t, card.StatusIdle, c.Status())
	assert.Zero(t, c.Payload().(*card.ProductionPayload).Progress)

	f.engine.Tick(f.ctx, 1000)
	assert.Equal(t, card.StatusActive, c.Status())
	assert.Equal(t, 1000.0, c.Payload().(*card.ProductionPayload).Progress)
}

func TestProduction_DiscardsCycleWhenInputsVanishMidCycle(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	f.stockUp("oak_log", 2)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)
	f.tickN(5, 1000)
	require.True(t, f.stock.Remove("oak_log", 1))

	// Act
	f.tickN(5, 1000)

	// Assert
	assert.Equal(t, card.StatusPaused, c.Status())
	assert.Zero(t, c.Payload().(*card.ProductionPayload).Progress)
	assert.Equal(t, 1, f.stock.Count("oak_log"))
	assert.Equal(t, 0, f.stock.Count("plank"))
	assert.Equal(t, 20, ada.Energy().Current)
	assert.Len(t, f.recorder.OfType(events.CycleDiscarded), 1)
}

func TestProduction_PausesWithoutEnergy(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	ada.ModifyEnergy(-20)
	f.stockUp("oak_log", 2)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)

	// Act
	f.engine.Tick(f.ctx, 1000)

	// Assert
	assert.Equal(t, card.StatusPaused, c.Status())
}

func TestProduction_LastToolDepletesAndClearsSlot(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")
	f.stockUp("hatchet", 1)
	c := f.spawn(card.TypeProduction, "chop")
	f.assign("ada", c)
	p := c.Payload().(*card.ProductionPayload)

	// Act
	f.engine.Tick(f.ctx, 1000)

	// Assert
	assert.Equal(t, 0, f.stock.Count("hatchet"))
	assert.Equal(t, "", p.AssignedItems[0])
	assert.Equal(t, card.StatusPaused, c.Status())
	assert.Equal(t, 1, f.stock.Count("oak_log"))
	assert.Len(t, f.recorder.OfType(events.ToolBroken), 1)
	assert.Len(t, f.recorder.OfType(events.ToolDepleted), 1)
}

func TestProduction_ToolWearsAcrossCycles(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")
	f.stockUp("steel_axe", 2)
	c := f.spawn(card.TypeProduction, "chop")
	f.assign("ada", c)

	// Act - each cycle takes one tick from idle
	f.tickN(3, 1000)

	// Assert
	assert.Equal(t, 1, f.stock.Count("steel_axe"))
	current, max := f.stock.Durability("steel_axe")
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, max)
	assert.Equal(t, card.StatusIdle, c.Status())
	assert.Equal(t, 3, f.stock.Count("oak_log"))
	assert.Len(t, f.recorder.OfType(events.ToolBroken), 1)
	assert.Empty(t, f.recorder.OfType(events.ToolDepleted))
}

func TestProduction_OpenSlotBindsFirstTaggedItem(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")
	f.stockUp("pine_log", 1)
	c := f.spawn(card.TypeProduction, "burn_logs")
	f.assign("ada", c)

	// Act
	f.engine.Tick(f.ctx, 1000)

	// Assert
	assert.Equal(t, 0, f.stock.Count("pine_log"))
	assert.Equal(t, "pine_log", c.Payload().(*card.ProductionPayload).AssignedItems[0])
}

func TestProduction_PlayerBindingIsRespected(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")
	f.stockUp("oak_log", 1)
	f.stockUp("pine_log", 1)
	c := f.spawn(card.TypeProduction, "burn_logs")
	require.NoError(t, f.engine.BindSlotItem(f.ctx, c.ID(), 0, "pine_log"))
	f.assign("ada", c)

	// Act
	f.engine.Tick(f.ctx, 1000)

	// Assert
	assert.Equal(t, 1, f.stock.Count("oak_log"))
	assert.Equal(t, 0, f.stock.Count("pine_log"))
}

func TestBindSlotItem_RejectsInvalidItems(t *testing.T) {
	f := newFixture(t, nil)
	saw := f.spawn(card.TypeProduction, "saw_planks")
	burn := f.spawn(card.TypeProduction, "burn_logs")
	chop := f.spawn(card.TypeProduction, "chop")

	tests := []struct {
		name   string
		cardID string
		slot   int
		itemID string
	}{
		{"fixed slot", saw.ID(), 0, "pine_log"},
		{"slot out of range", burn.ID(), 3, "oak_log"},
		{"missing tag", burn.ID(), 0, "stone"},
		{"tool slot needs tool", chop.ID(), 0, "oak_log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.engine.BindSlotItem(f.ctx, tt.cardID, tt.slot, tt.itemID)

			var slotErr *shared.InvalidSlotItemError
			assert.True(t, errors.As(err, &slotErr), "got %v", err)
		})
	}
}

func TestProduction_SkillLevelSpeedsUpProgress(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	ada.SetSkill("carpentry", 100, 0)
	f.stockUp("oak_log", 2)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)

	// Act - 1.5x speed: 6 ticks reach 9000ms, the 7th crosses 10000ms
	f.tickN(6, 1000)
	planksAfterSix := f.stock.Count("plank")
	f.engine.Tick(f.ctx, 1000)

	// Assert
	assert.Equal(t, 0, planksAfterSix)
	assert.Equal(t, 1, f.stock.Count("plank"))
}

func TestProduction_XPStacksClassAndTraitBonuses(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	crafter, err := hero.NewHero("cid", "Cid", "crafter", 10, 10, "diligent")
	require.NoError(t, err)
	require.NoError(t, f.heroes.Add(crafter))
	f.stockUp("oak_log", 2)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("cid", c)

	// Act
	f.tickN(10, 1000)

	// Assert - 10 base x (1 + 0.5 class + 0.1 trait)
	assert.Equal(t, 16, crafter.Skill("carpentry").XP)
}

func TestProduction_DoubleOutputModifier(t *testing.T) {
	// Arrange
	f := newFixture(t, shared.NewSequenceRandom(0.1))
	f.progress.AddDoubleOutput("crafting", 0.5)
	f.addHero("ada", "warrior")
	f.stockUp("oak_log", 2)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)

	// Act
	f.tickN(10, 1000)

	// Assert
	assert.Equal(t, 2, f.stock.Count("plank"))
	completed := f.recorder.OfType(events.TaskCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, true, completed[0].Data["doubled"])
}

func TestProduction_FailChanceSuppressesOutputButConsumesInputs(t *testing.T) {
	// Arrange
	f := newFixture(t, shared.NewSequenceRandom(0.1))
	f.addHero("ada", "warrior")
	f.stockUp("oak_log", 2)
	c := f.spawn(card.TypeProduction, "saw_planks")
	c.Payload().(*card.ProductionPayload).Effects.FailChance = 0.5
	f.assign("ada", c)

	// Act
	f.tickN(10, 1000)

	// Assert
	assert.Equal(t, 0, f.stock.Count("plank"))
	assert.Equal(t, 0, f.stock.Count("oak_log"))
	assert.Len(t, f.recorder.OfType(events.TaskFailed), 1)
	assert.Equal(t, card.StatusIdle, c.Status())
}
