package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

func baseDefinitions() content.Definitions {
	return content.Definitions{
		Items: []content.ItemTemplate{
			{ID: "pine_log", Tags: []string{"log"}},
			{ID: "oak_log", Tags: []string{"log"}},
			{ID: "plank"},
		},
		Enemies: []content.EnemyTemplate{{ID: "wolf", HP: 3, AttackSpeed: 2000}},
		Biomes: []content.BiomeTemplate{{
			ID: "meadow", Region: "vale",
			ExploreCost: map[string]int{content.TagKey("log"): 2},
			EnemyGroups: []content.EnemyGroupTemplate{{Type: content.GroupCombat, EnemyID: "wolf", Count: 1}},
		}},
		Regions: []content.RegionTemplate{{ID: "vale", Biomes: []string{"meadow"}}},
		Tasks: []content.TaskTemplate{{
			ID: "saw", BaseTickTime: 1000,
			Inputs:  []content.InputSlot{{Tag: "log", Quantity: 1}},
			Outputs: []content.ItemReward{{ItemID: "plank", Quantity: 1}},
		}},
		Classes: []content.ClassTemplate{
			{ID: "warrior", BaseHP: 10, Energy: 10, XPBonus: map[string]float64{"attack": 0.2, content.AnySkill: 0.1}},
			{ID: "archer", BaseHP: 8, Energy: 12},
		},
	}
}

func TestNewRegistry_IndexesAndDefaults(t *testing.T) {
	// Act
	r, err := content.NewRegistry(baseDefinitions())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"oak_log", "pine_log"}, r.ItemsWithTag("log"))
	assert.Empty(t, r.ItemsWithTag("ore"))
	assert.Equal(t, []string{"archer", "warrior"}, r.ClassIDs())

	region, err := r.Region("vale")
	require.NoError(t, err)
	assert.Equal(t, 1.0, region.CostMultiplier)

	task, err := r.Task("saw")
	require.NoError(t, err)
	assert.Equal(t, 1.0, task.Effects.TickTimeMultiplier)

	assert.Equal(t, 3, r.Counts()["items"])
}

func TestNewRegistry_RejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *content.Definitions)
	}{
		{"duplicate item", func(d *content.Definitions) { d.Items = append(d.Items, content.ItemTemplate{ID: "plank"}) }},
		{"unknown region", func(d *content.Definitions) { d.Biomes[0].Region = "nowhere" }},
		{"unknown enemy", func(d *content.Definitions) { d.Biomes[0].EnemyGroups[0].EnemyID = "dragon" }},
		{"untagged cost", func(d *content.Definitions) { d.Biomes[0].ExploreCost = map[string]int{content.TagKey("ore"): 1} }},
		{"unknown region biome", func(d *content.Definitions) { d.Regions[0].Biomes = append(d.Regions[0].Biomes, "moon") }},
		{"unknown output", func(d *content.Definitions) { d.Tasks[0].Outputs[0].ItemID = "gold" }},
		{"unknown project", func(d *content.Definitions) { d.Biomes[0].ProjectChain = []string{"tower"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := baseDefinitions()
			tt.mutate(&defs)

			_, err := content.NewRegistry(defs)

			var validation *shared.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestRegistry_MissingTemplates(t *testing.T) {
	r, err := content.NewRegistry(baseDefinitions())
	require.NoError(t, err)

	_, err = r.Enemy("dragon")

	var missing *shared.TemplateNotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "dragon", missing.ID)
}

func TestBonusFor_IncludesWildcard(t *testing.T) {
	r, _ := content.NewRegistry(baseDefinitions())
	warrior, _ := r.Class("warrior")

	assert.InDelta(t, 0.3, warrior.BonusFor("attack"), 1e-9)
	assert.InDelta(t, 0.1, warrior.BonusFor("fishing"), 1e-9)
}

func TestTagKey_RoundTrip(t *testing.T) {
	tag, ok := content.TagOf(content.TagKey("log"))
	assert.True(t, ok)
	assert.Equal(t, "log", tag)

	_, ok = content.TagOf("oak_log")
	assert.False(t, ok)
}
