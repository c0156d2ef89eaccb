package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/inventory"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

type items map[string]*content.ItemTemplate

func (m items) Item(id string) (*content.ItemTemplate, error) {
	if t, ok := m[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("item", id)
}

func testItems() items {
	return items{
		"oak_log":  {ID: "oak_log", Tags: []string{"log"}},
		"pine_log": {ID: "pine_log", Tags: []string{"log"}},
		"stone":    {ID: "stone"},
		"arrow":    {ID: "arrow", MaxStack: 10},
		"hatchet":  {ID: "hatchet", Tags: []string{"axe"}, Durability: 2},
	}
}

func TestAdd_RejectsUnknownItems(t *testing.T) {
	inv := inventory.NewInventory(testItems(), 0)

	assert.Zero(t, inv.Add("dragon_scale", 3))
	assert.Zero(t, inv.Add("stone", 0))
	assert.Equal(t, 5, inv.Add("stone", 5))
	assert.True(t, inv.Has("stone", 5))
}

func TestAdd_RespectsSlotCap(t *testing.T) {
	// Arrange
	inv := inventory.NewInventory(testItems(), 2)
	inv.Add("stone", 1)
	inv.Add("oak_log", 1)

	// Act
	rejected := inv.Add("pine_log", 1)
	topUp := inv.Add("stone", 4)
	inv.AddSlotBonus(1)
	afterBonus := inv.Add("pine_log", 1)

	// Assert
	assert.Zero(t, rejected)
	assert.Equal(t, 4, topUp)
	assert.Equal(t, 1, afterBonus)
	assert.Equal(t, 3, inv.SlotCap())
}

func TestAdd_RespectsMaxStack(t *testing.T) {
	inv := inventory.NewInventory(testItems(), 0)

	assert.Equal(t, 10, inv.Add("arrow", 15))
	assert.Zero(t, inv.Add("arrow", 1))

	inv.AddMaxStackBonus(5)
	assert.Equal(t, 5, inv.Add("arrow", 20))
	assert.Equal(t, 15, inv.Count("arrow"))
}

func TestRemove_AllOrNothing(t *testing.T) {
	inv := inventory.NewInventory(testItems(), 1)
	inv.Add("stone", 3)

	assert.False(t, inv.Remove("stone", 4))
	assert.Equal(t, 3, inv.Count("stone"))
	assert.True(t, inv.Remove("stone", 3))
	assert.Zero(t, inv.Count("stone"))

	// the emptied stack frees its slot
	assert.Equal(t, 1, inv.Add("oak_log", 1))
}

func TestDecrementDurability(t *testing.T) {
	// Arrange
	inv := inventory.NewInventory(testItems(), 0)
	inv.Add("hatchet", 2)

	// Act & Assert - two uses per unit
	assert.Equal(t, inventory.DurabilityResult{}, inv.DecrementDurability("hatchet"))
	current, max := inv.Durability("hatchet")
	assert.Equal(t, 1, current)
	assert.Equal(t, 2, max)

	assert.Equal(t, inventory.DurabilityResult{Broke: true}, inv.DecrementDurability("hatchet"))
	assert.Equal(t, 1, inv.Count("hatchet"))
	current, _ = inv.Durability("hatchet")
	assert.Equal(t, 2, current)

	inv.DecrementDurability("hatchet")
	assert.Equal(t, inventory.DurabilityResult{Broke: true, Depleted: true}, inv.DecrementDurability("hatchet"))
	assert.Zero(t, inv.Count("hatchet"))
	assert.Equal(t, inventory.DurabilityResult{Depleted: true}, inv.DecrementDurability("hatchet"))
}

func TestDecrementDurability_IgnoresNonTools(t *testing.T) {
	inv := inventory.NewInventory(testItems(), 0)
	inv.Add("stone", 1)

	assert.Equal(t, inventory.DurabilityResult{}, inv.DecrementDurability("stone"))
	assert.Equal(t, 1, inv.Count("stone"))
}

func TestFirstWithTag_PicksLowestID(t *testing.T) {
	inv := inventory.NewInventory(testItems(), 0)
	inv.Add("pine_log", 1)
	inv.Add("oak_log", 1)

	id, ok := inv.FirstWithTag("log")
	assert.True(t, ok)
	assert.Equal(t, "oak_log", id)

	inv.Remove("oak_log", 1)
	id, _ = inv.FirstWithTag("log")
	assert.Equal(t, "pine_log", id)

	_, ok = inv.FirstWithTag("axe")
	assert.False(t, ok)
}

func TestSnapshot(t *testing.T) {
	inv := inventory.NewInventory(testItems(), 0)
	inv.Add("stone", 2)
	inv.Add("arrow", 3)

	snap := inv.Snapshot()
	snap["stone"] = 99

	assert.Equal(t, map[string]int{"stone": 2, "arrow": 3}, inv.Snapshot())
	assert.Equal(t, []string{"arrow", "stone"}, inv.ItemIDs())
}
