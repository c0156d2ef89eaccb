package content

// CombatStyle selects the skill pair a fighter uses and its place in the style triangle
type CombatStyle string

const (
	StyleMelee  CombatStyle = "melee"
	StyleRanged CombatStyle = "ranged"
	StyleMagic  CombatStyle = "magic"
)

// EquipSlot identifies where an item is worn or carried by a hero
type EquipSlot string

const (
	SlotWeapon EquipSlot = "weapon"
	SlotArmor  EquipSlot = "armor"
	SlotFood   EquipSlot = "food"
	SlotDrink  EquipSlot = "drink"
)

// Skill identifiers used by the simulation itself. Task templates may name any other skill.
const (
	SkillAttack   = "attack"
	SkillStrength = "strength"
	SkillDefence  = "defence"
	SkillRanged   = "ranged"
	SkillMagic    = "magic"
)

// ItemTemplate describes a stackable item
type ItemTemplate struct {
	ID       string   `yaml:"id" validate:"required"`
	Name     string   `yaml:"name"`
	Tags     []string `yaml:"tags"`
	Category string   `yaml:"category"`

	// MaxStack caps units per inventory slot; 0 means unlimited
	MaxStack int `yaml:"max_stack" validate:"min=0"`

	// Durability is the number of uses per unit; 0 means the item is not a tool
	Durability int `yaml:"durability" validate:"min=0"`

	EquipSlot     EquipSlot `yaml:"equip_slot" validate:"omitempty,oneof=weapon armor food drink"`
	RestoreHP     int       `yaml:"restore_hp" validate:"min=0"`
	RestoreEnergy int       `yaml:"restore_energy" validate:"min=0"`

	Style          CombatStyle `yaml:"style" validate:"omitempty,oneof=melee ranged magic"`
	AttackBonus    int         `yaml:"attack_bonus"`
	StrengthBonus  int         `yaml:"strength_bonus"`
	DefenceBonus   int         `yaml:"defence_bonus"`
	TickSpeedBonus int         `yaml:"tick_speed_bonus" validate:"min=0"`
}

// HasTag reports whether the item carries the given tag
func (t *ItemTemplate) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// IsTool reports whether the item wears down with use
func (t *ItemTemplate) IsTool() bool {
	return t.Durability > 0
}

// Drop is one line of an enemy drop table
type Drop struct {
	ItemID string  `yaml:"item_id" validate:"required"`
	Chance float64 `yaml:"chance" validate:"gt=0,lte=1"`
	Min    int     `yaml:"min" validate:"min=1"`
	Max    int     `yaml:"max" validate:"gtefield=Min"`
}

// EnemyTemplate describes a foe fought by combat cards and area combat groups
type EnemyTemplate struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name"`
	HP   int    `yaml:"hp" validate:"min=1"`

	// AttackSpeed is the interval between enemy actions in milliseconds
	AttackSpeed int `yaml:"attack_speed" validate:"min=1"`

	Style    CombatStyle `yaml:"style" validate:"required,oneof=melee ranged magic"`
	Attack   int         `yaml:"attack" validate:"min=0"`
	Strength int         `yaml:"strength" validate:"min=0"`
	Defence  int         `yaml:"defence" validate:"min=0"`

	XP       int    `yaml:"xp" validate:"min=0"`
	Currency int    `yaml:"currency" validate:"min=0"`
	Drops    []Drop `yaml:"drops" validate:"dive"`
}

// ItemReward grants a fixed quantity of an item
type ItemReward struct {
	ItemID   string `yaml:"item_id" validate:"required"`
	Quantity int    `yaml:"quantity" validate:"min=1"`
}

// XPReward grants skill experience
type XPReward struct {
	Skill  string `yaml:"skill" validate:"required"`
	Amount int    `yaml:"amount" validate:"min=1"`
}

// GroupType selects how an area enemy group is cleared
type GroupType string

const (
	GroupCombat     GroupType = "combat"
	GroupCollection GroupType = "collection"
)

// EnemyGroupTemplate is one step of an area's quest line
type EnemyGroupTemplate struct {
	Type         GroupType      `yaml:"type" validate:"required,oneof=combat collection"`
	EnemyID      string         `yaml:"enemy_id" validate:"required_if=Type combat"`
	Count        int            `yaml:"count" validate:"min=0"`
	Requirements map[string]int `yaml:"requirements" validate:"required_if=Type collection"`
	UnlocksTask  string         `yaml:"unlocks_task"`
	Rewards      []ItemReward   `yaml:"rewards" validate:"dive"`
	XPRewards    []XPReward     `yaml:"xp_rewards" validate:"dive"`
}

// BiomeTemplate describes an explorable biome and the area it seeds once discovered
type BiomeTemplate struct {
	ID     string `yaml:"id" validate:"required"`
	Name   string `yaml:"name"`
	Region string `yaml:"region" validate:"required"`

	// Locked biomes must be unlocked by a project before exploration can select them
	Locked bool `yaml:"locked"`

	ExploreCost  map[string]int       `yaml:"explore_cost" validate:"required,min=1"`
	EnemyGroups  []EnemyGroupTemplate `yaml:"enemy_groups" validate:"dive"`
	ProjectChain []string             `yaml:"project_chain"`

	// XPBonus is added to the XP multiplier of tasks sourced from this biome
	XPBonus float64 `yaml:"xp_bonus" validate:"min=0"`
}

// RegionTemplate groups biomes under one exploration card
type RegionTemplate struct {
	ID             string   `yaml:"id" validate:"required"`
	Name           string   `yaml:"name"`
	Biomes         []string `yaml:"biomes" validate:"required,min=1"`
	CostMultiplier float64  `yaml:"cost_multiplier" validate:"min=0"`
}

// EffectType is the closed set of project completion effects
type EffectType string

const (
	EffectRecruit        EffectType = "recruit"
	EffectInventorySlots EffectType = "inventory_slots"
	EffectMaxStack       EffectType = "max_stack"
	EffectDoubleOutput   EffectType = "double_output"
	EffectXPBonus        EffectType = "xp_bonus"
	EffectUnlockBiome    EffectType = "unlock_biome"
	EffectExploreRegion  EffectType = "explore_region"
)

// ProjectEffect is applied once when a project completes.
// Amount counts cards, slots or stack units; Value is a chance or bonus fraction;
// Category scopes chance and bonus effects (empty means global); Target names a biome, region or class.
type ProjectEffect struct {
	Type     EffectType `yaml:"type" validate:"required,oneof=recruit inventory_slots max_stack double_output xp_bonus unlock_biome explore_region"`
	Amount   int        `yaml:"amount" validate:"min=0"`
	Value    float64    `yaml:"value" validate:"min=0"`
	Category string     `yaml:"category"`
	Target   string     `yaml:"target"`
}

// ProjectTemplate is a build step in an area's project chain
type ProjectTemplate struct {
	ID     string         `yaml:"id" validate:"required"`
	Name   string         `yaml:"name"`
	Cost   map[string]int `yaml:"cost" validate:"required,min=1"`
	Effect ProjectEffect  `yaml:"effect"`

	// XPBonus is added to the XP multiplier of tasks in Category once built; an empty Category applies to every task
	Category string  `yaml:"category"`
	XPBonus  float64 `yaml:"xp_bonus" validate:"min=0"`
}

// InputSlot is one input of a production task. A fixed slot names ItemID; an
// open slot names Tag and is filled by any item carrying it.
type InputSlot struct {
	ItemID   string `yaml:"item_id" validate:"required_without=Tag"`
	Tag      string `yaml:"tag" validate:"required_without=ItemID"`
	Quantity int    `yaml:"quantity" validate:"min=1"`
	Tool     bool   `yaml:"tool"`
}

// SourceEffects are optional modifiers carried by a task from whatever spawned it
type SourceEffects struct {
	XPBonus            float64 `yaml:"xp_bonus" validate:"min=0"`
	DoubleChance       float64 `yaml:"double_chance" validate:"min=0,max=1"`
	FailChance         float64 `yaml:"fail_chance" validate:"min=0,max=1"`
	TickTimeMultiplier float64 `yaml:"tick_time_multiplier" validate:"min=0"`
}

// TaskTemplate describes a repeatable production task
type TaskTemplate struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name"`
	Skill    string `yaml:"skill" validate:"required"`
	Category string `yaml:"category"`
	BiomeID  string `yaml:"biome_id"`

	// BaseTickTime is the cycle length in milliseconds before source modifiers
	BaseTickTime int `yaml:"base_tick_time" validate:"min=1"`
	EnergyCost   int `yaml:"energy_cost" validate:"min=0"`

	Inputs   []InputSlot   `yaml:"inputs" validate:"dive"`
	Outputs  []ItemReward  `yaml:"outputs" validate:"dive"`
	Currency int           `yaml:"currency" validate:"min=0"`
	XP       int           `yaml:"xp" validate:"min=0"`
	Effects  SourceEffects `yaml:"effects"`
}

// ClassTemplate describes a hero class; XPBonus maps a skill, or "*" for all skills, to an additive bonus
type ClassTemplate struct {
	ID      string             `yaml:"id" validate:"required"`
	Name    string             `yaml:"name"`
	XPBonus map[string]float64 `yaml:"xp_bonus"`
	BaseHP  int                `yaml:"base_hp" validate:"min=1"`
	Energy  int                `yaml:"energy" validate:"min=1"`
}

// TraitTemplate describes a hero trait
type TraitTemplate struct {
	ID      string             `yaml:"id" validate:"required"`
	Name    string             `yaml:"name"`
	XPBonus map[string]float64 `yaml:"xp_bonus"`
}

// AnySkill is the XP bonus key that applies to every skill
const AnySkill = "*"

// BonusFor returns the class bonus for a skill, including the wildcard entry
func (c *ClassTemplate) BonusFor(skill string) float64 {
	return c.XPBonus[skill] + c.XPBonus[AnySkill]
}

// BonusFor returns the trait bonus for a skill, including the wildcard entry
func (t *TraitTemplate) BonusFor(skill string) float64 {
	return t.XPBonus[skill] + t.XPBonus[AnySkill]
}
