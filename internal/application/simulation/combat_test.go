package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

func TestCombatCard_VictoryResetsForNextEncounter(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	c := f.spawn(card.TypeCombat, "wolf")
	f.assign("ada", c)
	p := c.Payload().(*card.CombatPayload)

	// Act
	f.tickN(3, 2400)

	// Assert
	assert.Len(t, f.recorder.OfType(events.CombatVictory), 3)
	assert.Equal(t, 1, p.Encounter.EnemyHP.Current)
	assert.Zero(t, p.Encounter.HeroTickProgress)
	assert.Equal(t, 6, f.progress.Currency())
	assert.Equal(t, "ada", c.AssignedHeroID())
	assert.Equal(t, hero.StatusCombat, ada.Status())
	assert.Equal(t, card.StatusActive, c.Status())
	// 4 per attack plus 10 per kill
	assert.Equal(t, 3*(4+10), ada.Skill(content.SkillAttack).XP)
}

func TestCombatCard_DefeatWoundsAndResets(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	sam := f.addHero("sam", "squire")
	c := f.spawn(card.TypeCombat, "bear")
	f.assign("sam", c)
	p := c.Payload().(*card.CombatPayload)

	// Act
	f.engine.Tick(f.ctx, 2400)

	// Assert
	assert.Equal(t, hero.StatusWounded, sam.Status())
	assert.False(t, c.HasHero())
	assert.Equal(t, card.StatusIdle, c.Status())
	assert.Equal(t, p.Encounter.EnemyHP.Max, p.Encounter.EnemyHP.Current)
	assert.Zero(t, p.Encounter.EnemyTickProgress)
	assert.Len(t, f.recorder.OfType(events.CombatDefeat), 1)
	assert.NoError(t, f.engine.VerifyAssignments())
}

func TestCombatCard_EatsFoodInsteadOfAttacking(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	ada.ModifyHP(-15)
	require.NoError(t, f.engine.EquipItem(f.ctx, "ada", content.SlotFood, "bread"))
	f.stockUp("bread", 2)
	c := f.spawn(card.TypeCombat, "wolf")
	f.assign("ada", c)
	p := c.Payload().(*card.CombatPayload)

	// Act
	f.engine.Tick(f.ctx, 2400)

	// Assert
	assert.Equal(t, 15, ada.HP().Current)
	assert.Equal(t, 1, f.stock.Count("bread"))
	assert.Equal(t, 1, p.Encounter.EnemyHP.Current, "hero skipped its action")
	assert.Zero(t, p.Encounter.HeroTickProgress)
	assert.Equal(t, 2400.0, p.Encounter.EnemyTickProgress)
	assert.Len(t, f.recorder.OfType(events.ConsumableUsed), 1)

	// Act - HP is back above the threshold, so the next window is an attack
	f.engine.Tick(f.ctx, 2400)

	// Assert
	assert.Len(t, f.recorder.OfType(events.CombatVictory), 1)
}

func TestCombatCard_DrinksWhenEnergyLow(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	ada.ModifyEnergy(-18)
	require.NoError(t, f.engine.EquipItem(f.ctx, "ada", content.SlotDrink, "tea"))
	f.stockUp("tea", 1)
	c := f.spawn(card.TypeCombat, "wolf")
	f.assign("ada", c)
	p := c.Payload().(*card.CombatPayload)

	// Act
	f.engine.Tick(f.ctx, 2400)

	// Assert
	assert.Equal(t, 7, ada.Energy().Current)
	assert.Equal(t, 0, f.stock.Count("tea"))
	assert.Zero(t, p.Encounter.HeroTickProgress)
	assert.Equal(t, 1, p.Encounter.EnemyHP.Current)
}

// newTortoiseFixture adds a weak food item and an enemy too slow to strike
// during the test
func newTortoiseFixture(t *testing.T) *fixture {
	t.Helper()
	defs := testDefinitions()
	defs.Items = append(defs.Items, content.ItemTemplate{ID: "crumb", Name: "Crumb", EquipSlot: content.SlotFood, RestoreHP: 1})
	defs.Enemies = append(defs.Enemies, content.EnemyTemplate{ID: "tortoise", Name: "Tortoise", HP: 50, AttackSpeed: 600000, Style: content.StyleMelee})
	return newFixtureWith(t, nil, defs)
}

func TestCombatCard_AutoConsumeWaitsForAttackWindow(t *testing.T) {
	// Arrange
	f := newTortoiseFixture(t)
	ada := f.addHero("ada", "warrior")
	ada.ModifyHP(-19)
	require.NoError(t, f.engine.EquipItem(f.ctx, "ada", content.SlotFood, "crumb"))
	f.stockUp("crumb", 20)
	c := f.spawn(card.TypeCombat, "tortoise")
	f.assign("ada", c)
	p := c.Payload().(*card.CombatPayload)

	// Act - 1000ms is short of the 2400ms melee window
	f.tickN(10, 100)

	// Assert
	assert.Equal(t, 20, f.stock.Count("crumb"))
	assert.Empty(t, f.recorder.OfType(events.ConsumableUsed))
	assert.InDelta(t, 1000.0, p.Encounter.HeroTickProgress, 1e-9)

	// Act - the window opens on the 24th tick
	f.tickN(14, 100)

	// Assert - eating uses up the window
	assert.Equal(t, 19, f.stock.Count("crumb"))
	assert.Equal(t, 2, ada.HP().Current)
	assert.Zero(t, p.Encounter.HeroTickProgress)
	assert.Equal(t, 50, p.Encounter.EnemyHP.Current)

	// Act - one more window
	f.tickN(24, 100)

	// Assert
	assert.Equal(t, 18, f.stock.Count("crumb"))
	assert.Equal(t, 3, ada.HP().Current)
	assert.Len(t, f.recorder.OfType(events.ConsumableUsed), 2)
}

func TestCombatCard_TiredNoticeSentOncePerStarvedSpell(t *testing.T) {
	// Arrange
	f := newTortoiseFixture(t)
	ada := f.addHero("ada", "warrior")
	ada.ModifyEnergy(-20)
	c := f.spawn(card.TypeCombat, "tortoise")
	f.assign("ada", c)

	// Act
	f.tickN(40, 100)

	// Assert
	notices := f.recorder.OfType(events.Notification)
	require.Len(t, notices, 1)
	assert.Equal(t, "too tired to attack", notices[0].Message)

	// Act - an attack ends the spell; the next empty window starts another
	ada.ModifyEnergy(1)
	f.tickN(1, 100)
	f.tickN(24, 100)

	// Assert
	assert.Len(t, f.recorder.OfType(events.Notification), 2)
}

func TestCombatCard_StarvedHeroRetriesNextTick(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	ada := f.addHero("ada", "warrior")
	ada.ModifyEnergy(-20)
	c := f.spawn(card.TypeCombat, "wolf")
	f.assign("ada", c)
	p := c.Payload().(*card.CombatPayload)

	// Act
	f.engine.Tick(f.ctx, 2400)

	// Assert - the timer is kept so the attack fires as soon as energy returns
	assert.Equal(t, 2400.0, p.Encounter.HeroTickProgress)
	assert.Equal(t, 1, p.Encounter.EnemyHP.Current)

	ada.ModifyEnergy(5)
	f.engine.Tick(f.ctx, 1)
	assert.Len(t, f.recorder.OfType(events.CombatVictory), 1)
}

func TestCombatCard_RollsDropTable(t *testing.T) {
	// Arrange - every roll is 0: the hit lands and the 50% drop succeeds at its minimum
	f := newFixture(t, shared.NewSequenceRandom(0))
	f.addHero("ada", "warrior")
	c := f.spawn(card.TypeCombat, "boar")
	f.assign("ada", c)

	// Act
	f.engine.Tick(f.ctx, 2400)

	// Assert
	assert.Equal(t, 1, f.stock.Count("pelt"))
}

func TestCombatCard_WeaponAddsStrength(t *testing.T) {
	// Arrange - rolls alternate hit, max damage
	f := newFixture(t, shared.NewSequenceRandom(0, 0.99))
	ada := f.addHero("ada", "warrior")
	require.NoError(t, f.engine.EquipItem(f.ctx, "ada", content.SlotWeapon, "sword"))
	c := f.spawn(card.TypeCombat, "bear")
	f.assign("ada", c)
	p := c.Payload().(*card.CombatPayload)

	// Act
	f.engine.Tick(f.ctx, 2399)
	f.engine.Tick(f.ctx, 1)

	// Assert - hero max hit 2 + 4 x 0.25 = 3; the bear answers with its own max hit of 12
	assert.Equal(t, 10-3, p.Encounter.EnemyHP.Current)
	assert.Equal(t, 20-12, ada.HP().Current)
}

func TestEquipItem_RejectsWrongSlot(t *testing.T) {
	f := newFixture(t, nil)
	f.addHero("ada", "warrior")

	var validation *shared.ValidationError
	assert.ErrorAs(t, f.engine.EquipItem(f.ctx, "ada", content.SlotFood, "sword"), &validation)
	assert.NoError(t, f.engine.EquipItem(f.ctx, "ada", content.SlotFood, ""))
}
