package config

import (
	"reflect"
	"time"

	"github.com/spf13/viper"

	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
	"github.com/andrescamacho/cardquest-go/internal/domain/combat"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
)

// SimulationConfig holds the driver cadence, content sources and tuning
type SimulationConfig struct {
	// Wall time between ticks
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// How often the runner logs a status line
	StatusInterval time.Duration `mapstructure:"status_interval"`

	// Content catalog YAML (items, enemies, biomes, tasks...)
	ContentPath string `mapstructure:"content_path" validate:"required"`

	// Optional scenario YAML seeding heroes, stock and cards
	ScenarioPath string `mapstructure:"scenario_path"`

	// RNG seed; 0 picks one from the clock
	Seed int64 `mapstructure:"seed"`

	// Distinct item limit of the inventory; 0 means unlimited
	SlotCap int `mapstructure:"slot_cap" validate:"min=0"`

	// Events with the same fingerprint inside this window are journaled once
	JournalDedupWindow time.Duration `mapstructure:"journal_dedup_window"`

	Balance BalanceConfig `mapstructure:"balance"`
}

// BalanceConfig is the tunable constants block
type BalanceConfig struct {
	WorkCycleMs        float64 `mapstructure:"work_cycle_ms" validate:"gt=0"`
	CycleEnergyCost    int     `mapstructure:"cycle_energy_cost" validate:"min=0"`
	SkillSpeedFactor   float64 `mapstructure:"skill_speed_factor" validate:"min=0"`
	ExplorationScaling float64 `mapstructure:"exploration_scaling" validate:"min=0"`
	AutoConsumeHP      float64 `mapstructure:"auto_consume_hp" validate:"min=0,max=1"`
	AutoConsumeEnergy  float64 `mapstructure:"auto_consume_energy" validate:"min=0,max=1"`

	Combat CombatBalanceConfig `mapstructure:"combat"`
}

// CombatBalanceConfig tunes the combat resolver
type CombatBalanceConfig struct {
	AdvantageMultiplier    float64 `mapstructure:"advantage_multiplier" validate:"gt=0"`
	DisadvantageMultiplier float64 `mapstructure:"disadvantage_multiplier" validate:"gt=0"`
	BaseMaxHit             float64 `mapstructure:"base_max_hit" validate:"gt=0"`
	MaxHitPerStrength      float64 `mapstructure:"max_hit_per_strength" validate:"min=0"`
	MeleeIntervalMs        int     `mapstructure:"melee_interval_ms" validate:"min=1"`
	RangedIntervalMs       int     `mapstructure:"ranged_interval_ms" validate:"min=1"`
	MagicIntervalMs        int     `mapstructure:"magic_interval_ms" validate:"min=1"`
	MinIntervalMs          int     `mapstructure:"min_interval_ms" validate:"min=1"`
	AttackEnergyCost       int     `mapstructure:"attack_energy_cost" validate:"min=0"`
	XPPerAction            int     `mapstructure:"xp_per_action" validate:"min=0"`
}

// ToBalance maps the configured constants onto the engine's tuning struct
func (c SimulationConfig) ToBalance() simulation.Balance {
	b := c.Balance
	return simulation.Balance{
		WorkCycleMs:        b.WorkCycleMs,
		CycleEnergyCost:    b.CycleEnergyCost,
		SkillSpeedFactor:   b.SkillSpeedFactor,
		ExplorationScaling: b.ExplorationScaling,
		AutoConsumeHP:      b.AutoConsumeHP,
		AutoConsumeEnergy:  b.AutoConsumeEnergy,
		Combat: combat.Balance{
			AdvantageMultiplier:    b.Combat.AdvantageMultiplier,
			DisadvantageMultiplier: b.Combat.DisadvantageMultiplier,
			BaseMaxHit:             b.Combat.BaseMaxHit,
			MaxHitPerStrength:      b.Combat.MaxHitPerStrength,
			StyleInterval: map[content.CombatStyle]int{
				content.StyleMelee:  b.Combat.MeleeIntervalMs,
				content.StyleRanged: b.Combat.RangedIntervalMs,
				content.StyleMagic:  b.Combat.MagicIntervalMs,
			},
			MinInterval:      b.Combat.MinIntervalMs,
			AttackEnergyCost: b.Combat.AttackEnergyCost,
			XPPerAction:      b.Combat.XPPerAction,
		},
	}
}

// DefaultBalanceConfig mirrors simulation.DefaultBalance as configuration
func DefaultBalanceConfig() BalanceConfig {
	def := simulation.DefaultBalance()
	return BalanceConfig{
		WorkCycleMs:        def.WorkCycleMs,
		CycleEnergyCost:    def.CycleEnergyCost,
		SkillSpeedFactor:   def.SkillSpeedFactor,
		ExplorationScaling: def.ExplorationScaling,
		AutoConsumeHP:      def.AutoConsumeHP,
		AutoConsumeEnergy:  def.AutoConsumeEnergy,
		Combat: CombatBalanceConfig{
			AdvantageMultiplier:    def.Combat.AdvantageMultiplier,
			DisadvantageMultiplier: def.Combat.DisadvantageMultiplier,
			BaseMaxHit:             def.Combat.BaseMaxHit,
			MaxHitPerStrength:      def.Combat.MaxHitPerStrength,
			MeleeIntervalMs:        def.Combat.StyleInterval[content.StyleMelee],
			RangedIntervalMs:       def.Combat.StyleInterval[content.StyleRanged],
			MagicIntervalMs:        def.Combat.StyleInterval[content.StyleMagic],
			MinIntervalMs:          def.Combat.MinInterval,
			AttackEnergyCost:       def.Combat.AttackEnergyCost,
			XPPerAction:            def.Combat.XPPerAction,
		},
	}
}

// registerBalanceDefaults hands every balance key to viper as a default so
// that an explicit zero in the file or environment survives Unmarshal
func registerBalanceDefaults(v *viper.Viper) {
	setStructDefaults(v, reflect.ValueOf(DefaultBalanceConfig()), "simulation.balance")
}

func setStructDefaults(v *viper.Viper, val reflect.Value, prefix string) {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		key = prefix + "." + key
		if val.Field(i).Kind() == reflect.Struct {
			setStructDefaults(v, val.Field(i), key)
			continue
		}
		v.SetDefault(key, val.Field(i).Interface())
	}
}
