package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

func TestAssignHero_OneHeroPerCard(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	f.addHero("bo", "warrior")
	first := f.spawn(card.TypeProduction, "saw_planks")
	second := f.spawn(card.TypeProduction, "chop")
	f.assign("ada", first)

	// Act
	errHeroBusy := f.engine.AssignHero(f.ctx, "ada", second.ID())
	errCardBusy := f.engine.AssignHero(f.ctx, "bo", first.ID())

	// Assert
	var already *shared.HeroAlreadyAssignedError
	require.ErrorAs(t, errHeroBusy, &already)
	assert.Equal(t, first.ID(), already.CardID)
	var staffed *shared.CardStaffedError
	assert.ErrorAs(t, errCardBusy, &staffed)

	assert.False(t, second.HasHero())
	assert.Equal(t, "ada", first.AssignedHeroID())
	assert.Equal(t, hero.StatusWorking, ada.Status())
	assert.NoError(t, f.engine.VerifyAssignments())
}

func TestAssignHero_RejectsWithoutMutation(t *testing.T) {
	f := newFixture(t, nil)
	sam := f.addHero("sam", "squire")
	sam.Wound()
	f.addHero("ada", "warrior")
	recruit := f.spawn(card.TypeRecruit, "warrior")
	task := f.spawn(card.TypeProduction, "chop")

	tests := []struct {
		name   string
		heroID string
		cardID string
		target interface{}
	}{
		{"unknown card", "ada", "missing", new(*shared.CardNotFoundError)},
		{"unknown hero", "nobody", task.ID(), new(*shared.HeroNotFoundError)},
		{"recruit card", "ada", recruit.ID(), new(*shared.CardNotAssignableError)},
		{"wounded hero", "sam", task.ID(), new(*shared.HeroWoundedError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.engine.AssignHero(f.ctx, tt.heroID, tt.cardID)

			assert.ErrorAs(t, err, tt.target)
			assert.False(t, task.HasHero())
		})
	}
	assert.Equal(t, hero.StatusWounded, sam.Status())
	assert.Empty(t, f.recorder.OfType(events.HeroAssigned))
}

func TestUnassignHero_ReturnsHeroToIdle(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	f.stockUp("oak_log", 2)
	c := f.spawn(card.TypeProduction, "saw_planks")
	f.assign("ada", c)
	f.engine.Tick(f.ctx, 1000)

	// Act
	err := f.engine.UnassignHero(f.ctx, "ada")

	// Assert
	require.NoError(t, err)
	assert.False(t, c.HasHero())
	assert.Equal(t, hero.StatusIdle, ada.Status())
	assert.Equal(t, card.StatusIdle, c.Status())
	assert.Equal(t, 1000.0, c.Payload().(*card.ProductionPayload).Progress, "progress survives a hero swap")

	var notAssigned *shared.AssignmentError
	assert.ErrorAs(t, f.engine.UnassignHero(f.ctx, "ada"), &notAssigned)
}

func TestRecoverHero_AllowsReassignment(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	sam := f.addHero("sam", "squire")
	c := f.spawn(card.TypeCombat, "bear")
	f.assign("sam", c)
	f.engine.Tick(f.ctx, 2400)
	require.Equal(t, hero.StatusWounded, sam.Status())

	// Act
	require.NoError(t, f.engine.RecoverHero(f.ctx, "sam"))

	// Assert
	assert.Equal(t, hero.StatusIdle, sam.Status())
	assert.Equal(t, sam.HP().Max, sam.HP().Current)
	assert.NoError(t, f.engine.AssignHero(f.ctx, "sam", c.ID()))
	assert.Len(t, f.recorder.OfType(events.HeroRecovered), 1)
}

func TestRetireHero_OrchestratorSpawnsReplacementRecruit(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	simulation.NewRetirementOrchestrator(f.engine, f.bus, f.logs)
	f.addHero("ada", "warrior")
	c := f.spawn(card.TypeCombat, "wolf")
	f.assign("ada", c)

	// Act
	err := f.engine.RetireHero(f.ctx, "ada")

	// Assert
	require.NoError(t, err)
	assert.False(t, c.HasHero())
	_, err = f.heroes.Get("ada")
	assert.Error(t, err)

	var recruit *card.Card
	for _, candidate := range f.engine.LiveCards() {
		if candidate.Type() == card.TypeRecruit {
			recruit = candidate
		}
	}
	require.NotNil(t, recruit)
	assert.Equal(t, "warrior", recruit.Payload().(*card.RecruitPayload).ClassID)
	assert.NoError(t, f.engine.VerifyAssignments())
}

func TestRecruit_ConsumesCardAndAddsHero(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	c := f.spawn(card.TypeRecruit, "crafter")

	// Act
	heroID, err := f.engine.Recruit(f.ctx, c.ID(), "Cid")

	// Assert
	require.NoError(t, err)
	h, err := f.heroes.Get(heroID)
	require.NoError(t, err)
	assert.Equal(t, "Cid", h.Name())
	assert.Equal(t, "crafter", h.ClassID())
	assert.Equal(t, 10, h.HP().Max)
	_, stillThere := f.engine.LiveCard(c.ID())
	assert.False(t, stillThere)
	assert.Len(t, f.recorder.OfType(events.HeroRecruited), 1)
}

func TestRecruit_GenericCardUsesFirstClass(t *testing.T) {
	f := newFixture(t, nil)
	c := f.spawn(card.TypeRecruit, "")

	heroID, err := f.engine.Recruit(f.ctx, c.ID(), "")

	require.NoError(t, err)
	h, _ := f.heroes.Get(heroID)
	assert.Equal(t, "crafter", h.ClassID())
}

func TestDiscardCard_ReleasesHero(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	c := f.spawn(card.TypeCombat, "wolf")
	f.assign("ada", c)

	// Act
	err := f.engine.DiscardCard(f.ctx, c.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, hero.StatusIdle, ada.Status())
	_, ok := f.engine.LiveCard(c.ID())
	assert.False(t, ok)
	assert.NoError(t, f.engine.AssignHero(f.ctx, "ada", f.spawn(card.TypeCombat, "wolf").ID()))
}

func TestApplyScenario_SeedsWorldAndAssigns(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	sc := simulation.Scenario{
		Name:     "starter",
		Currency: 5,
		Heroes: []simulation.HeroSetup{
			{ID: "ada", Name: "Ada", Class: "warrior", Skills: map[string]int{"carpentry": 3},
				Equipment: map[content.EquipSlot]string{content.SlotWeapon: "sword"}},
			{ID: "bo", Class: "crafter", Traits: []string{"diligent"}},
		},
		Stock: []simulation.StockSetup{{ItemID: "oak_log", Quantity: 4}},
		Cards: []simulation.CardSetup{
			{Type: card.TypeProduction, Template: "saw_planks", Hero: "bo"},
			{Type: card.TypeExploration, Template: "vale"},
			{Type: card.TypeCombat, Template: "wolf", Hero: "ada"},
		},
	}

	// Act
	err := f.engine.ApplyScenario(f.ctx, sc)

	// Assert
	require.NoError(t, err)
	snap := f.engine.Snapshot()
	assert.Len(t, snap.Cards, 3)
	assert.Len(t, snap.Heroes, 2)
	assert.Equal(t, 4, snap.Stock["oak_log"])
	assert.Equal(t, 5, snap.Currency)

	ada, _ := f.heroes.Get("ada")
	assert.Equal(t, 3, ada.SkillLevel("carpentry"))
	assert.Equal(t, "sword", ada.Equipment().Weapon)
	assert.Equal(t, hero.StatusCombat, ada.Status())
	assert.Equal(t, 1, snap.CardsByTypeAndStatus()[card.TypeExploration][card.StatusIdle])
}

func TestApplyScenario_RejectsUnknownTemplates(t *testing.T) {
	f := newFixture(t, nil)

	err := f.engine.ApplyScenario(f.ctx, simulation.Scenario{
		Name:  "broken",
		Cards: []simulation.CardSetup{{Type: card.TypeCombat, Template: "dragon"}},
	})

	var missing *shared.TemplateNotFoundError
	assert.ErrorAs(t, err, &missing)
}
