package combat

import (
	"math"

	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// Balance holds the tunable combat constants
type Balance struct {
	AdvantageMultiplier    float64
	DisadvantageMultiplier float64

	// Max hit is BaseMaxHit + (strength level + strength bonus) * MaxHitPerStrength
	BaseMaxHit        float64
	MaxHitPerStrength float64

	// StyleInterval is the hero action interval in milliseconds per style
	StyleInterval map[content.CombatStyle]int
	MinInterval   int

	AttackEnergyCost int
	XPPerAction      int
}

// DefaultBalance returns the stock combat tuning
func DefaultBalance() Balance {
	return Balance{
		AdvantageMultiplier:    1.25,
		DisadvantageMultiplier: 0.75,
		BaseMaxHit:             2,
		MaxHitPerStrength:      0.25,
		StyleInterval: map[content.CombatStyle]int{
			content.StyleMelee:  2400,
			content.StyleRanged: 3000,
			content.StyleMagic:  3000,
		},
		MinInterval:      600,
		AttackEnergyCost: 1,
		XPPerAction:      4,
	}
}

// Combatant is the flattened stat line of one side
type Combatant struct {
	Style          content.CombatStyle
	Accuracy       int
	Strength       int
	Defence        int
	TickSpeedBonus int
}

// HitChance returns the percent chance that an attack lands
func HitChance(attackerSkill, defenderSkill int) float64 {
	chance := 50 + float64(attackerSkill-defenderSkill)*2
	return math.Max(5, math.Min(95, chance))
}

// RollHit rolls an attack against the clamped hit chance
func RollHit(attackerSkill, defenderSkill int, rng shared.Random) bool {
	return rng.Float64()*100 < HitChance(attackerSkill, defenderSkill)
}

// Matchup returns +1 when attacker beats defender in the style triangle,
// -1 when defender beats attacker and 0 otherwise
func Matchup(attacker, defender content.CombatStyle) int {
	beats := map[content.CombatStyle]content.CombatStyle{
		content.StyleMelee:  content.StyleMagic,
		content.StyleMagic:  content.StyleRanged,
		content.StyleRanged: content.StyleMelee,
	}
	switch {
	case attacker == defender:
		return 0
	case beats[attacker] == defender:
		return 1
	case beats[defender] == attacker:
		return -1
	}
	return 0
}

// MaxHit returns the highest damage a strength value can roll before the triangle multiplier
func (b Balance) MaxHit(strength int) int {
	hit := int(b.BaseMaxHit + float64(strength)*b.MaxHitPerStrength)
	if hit < 1 {
		hit = 1
	}
	return hit
}

// ComputeDamage rolls damage for a landed hit
func ComputeDamage(attacker, defender Combatant, bal Balance, rng shared.Random) int {
	roll := 1 + rng.Intn(bal.MaxHit(attacker.Strength))
	multiplier := 1.0
	switch Matchup(attacker.Style, defender.Style) {
	case 1:
		multiplier = bal.AdvantageMultiplier
	case -1:
		multiplier = bal.DisadvantageMultiplier
	}
	damage := int(math.Round(float64(roll) * multiplier))
	if damage < 1 {
		damage = 1
	}
	return damage
}

// AttackSkill is the skill trained and used for accuracy by a style
func AttackSkill(style content.CombatStyle) string {
	switch style {
	case content.StyleRanged:
		return content.SkillRanged
	case content.StyleMagic:
		return content.SkillMagic
	}
	return content.SkillAttack
}

// PowerSkill is the skill used for max hit by a style
func PowerSkill(style content.CombatStyle) string {
	switch style {
	case content.StyleRanged:
		return content.SkillRanged
	case content.StyleMagic:
		return content.SkillMagic
	}
	return content.SkillStrength
}

// HeroCombatant derives a hero's stat line from skills and equipped gear; weapon and armor may be nil
func HeroCombatant(h *hero.Hero, weapon, armor *content.ItemTemplate) Combatant {
	style := content.StyleMelee
	if weapon != nil && weapon.Style != "" {
		style = weapon.Style
	}
	c := Combatant{
		Style:    style,
		Accuracy: h.SkillLevel(AttackSkill(style)),
		Strength: h.SkillLevel(PowerSkill(style)),
		Defence:  h.SkillLevel(content.SkillDefence),
	}
	for _, item := range []*content.ItemTemplate{weapon, armor} {
		if item == nil {
			continue
		}
		c.Accuracy += item.AttackBonus
		c.Strength += item.StrengthBonus
		c.Defence += item.DefenceBonus
		c.TickSpeedBonus += item.TickSpeedBonus
	}
	return c
}

// EnemyCombatant flattens an enemy template
func EnemyCombatant(enemy *content.EnemyTemplate) Combatant {
	return Combatant{
		Style:    enemy.Style,
		Accuracy: enemy.Attack,
		Strength: enemy.Strength,
		Defence:  enemy.Defence,
	}
}

// HeroInterval returns the hero action interval for a stat line in milliseconds
func (b Balance) HeroInterval(c Combatant) float64 {
	base, ok := b.StyleInterval[c.Style]
	if !ok {
		base = b.StyleInterval[content.StyleMelee]
	}
	interval := base - c.TickSpeedBonus
	if interval < b.MinInterval {
		interval = b.MinInterval
	}
	return float64(interval)
}
