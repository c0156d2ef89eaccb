package combat

import (
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// HP is the enemy's health within an encounter
type HP struct {
	Current int
	Max     int
}

// Encounter is the live state of one hero-versus-enemy fight. Each side
// accumulates elapsed milliseconds toward its own next action.
type Encounter struct {
	EnemyID           string
	EnemyHP           HP
	HeroTickProgress  float64
	EnemyTickProgress float64

	LastHeroHit     bool
	LastHeroDamage  int
	LastEnemyHit    bool
	LastEnemyDamage int

	// HeroStarved is set while the hero's window is open but it cannot pay
	// the attack's energy cost
	HeroStarved bool
}

// NewEncounter starts a fresh fight against enemy
func NewEncounter(enemy *content.EnemyTemplate) *Encounter {
	e := &Encounter{}
	e.Reset(enemy)
	return e
}

// Reset restores full enemy HP and zeroes both timers
func (e *Encounter) Reset(enemy *content.EnemyTemplate) {
	*e = Encounter{
		EnemyID: enemy.ID,
		EnemyHP: HP{Current: enemy.HP, Max: enemy.HP},
	}
}

// ZeroTimers clears both action timers but keeps enemy HP
func (e *Encounter) ZeroTimers() {
	e.HeroTickProgress = 0
	e.EnemyTickProgress = 0
}

// Outcome is the result of a combat tick
type Outcome string

const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

// Options adjust a single resolver tick
type Options struct {
	// BeforeAttack runs once the hero's window is open, before energy is
	// spent. Returning true uses up the window without an attack.
	BeforeAttack func() bool
}

// XPGain is experience awarded during a tick
type XPGain struct {
	Skill    string
	Amount   int
	LevelsUp int
}

// TickResult reports everything that happened during a tick
type TickResult struct {
	Outcome      Outcome
	HeroActed    bool
	HeroSkipped  bool
	HeroStarved  bool
	StarvedBegan bool
	EnemyActed   bool
	XP           []XPGain
}

// Resolver runs the shared combat tick used by combat and area cards
type Resolver struct {
	bal Balance
	rng shared.Random
}

// NewResolver creates a resolver with the given tuning and randomness
func NewResolver(bal Balance, rng shared.Random) *Resolver {
	return &Resolver{bal: bal, rng: rng}
}

// Balance returns the resolver's tuning
func (r *Resolver) Balance() Balance {
	return r.bal
}

// Tick advances enc by deltaMs. The hero acts first when its timer is due,
// then the enemy. Victory and defeat end the tick immediately. On defeat the
// enemy's HP is put back to its value before this tick's hero phase.
func (r *Resolver) Tick(enc *Encounter, h *hero.Hero, heroStats Combatant, enemy *content.EnemyTemplate, deltaMs float64, opts Options) TickResult {
	result := TickResult{Outcome: OutcomeOngoing}
	enemyStats := EnemyCombatant(enemy)
	hpBeforeHeroPhase := enc.EnemyHP.Current

	enc.HeroTickProgress += deltaMs
	if enc.HeroTickProgress >= r.bal.HeroInterval(heroStats) {
		switch {
		case opts.BeforeAttack != nil && opts.BeforeAttack():
			enc.HeroTickProgress = 0
			enc.HeroStarved = false
			result.HeroSkipped = true
		case h.SpendEnergy(r.bal.AttackEnergyCost):
			enc.HeroTickProgress = 0
			enc.HeroStarved = false
			result.HeroActed = true
			enc.LastHeroHit = RollHit(heroStats.Accuracy, enemyStats.Defence, r.rng)
			enc.LastHeroDamage = 0
			if enc.LastHeroHit {
				enc.LastHeroDamage = ComputeDamage(heroStats, enemyStats, r.bal, r.rng)
				enc.EnemyHP.Current -= enc.LastHeroDamage
				if enc.EnemyHP.Current < 0 {
					enc.EnemyHP.Current = 0
				}
			}
			result.XP = append(result.XP, r.grant(h, AttackSkill(heroStats.Style)))
			if enc.EnemyHP.Current <= 0 {
				result.Outcome = OutcomeVictory
				return result
			}
		default:
			result.HeroStarved = true
			result.StarvedBegan = !enc.HeroStarved
			enc.HeroStarved = true
		}
	}

	enc.EnemyTickProgress += deltaMs
	if enc.EnemyTickProgress >= float64(enemy.AttackSpeed) {
		enc.EnemyTickProgress = 0
		result.EnemyActed = true
		enc.LastEnemyHit = RollHit(enemyStats.Accuracy, heroStats.Defence, r.rng)
		enc.LastEnemyDamage = 0
		if enc.LastEnemyHit {
			enc.LastEnemyDamage = ComputeDamage(enemyStats, heroStats, r.bal, r.rng)
			h.ModifyHP(-enc.LastEnemyDamage)
		}
		result.XP = append(result.XP, r.grant(h, content.SkillDefence))
		if h.HP().Current <= 0 {
			enc.EnemyHP.Current = hpBeforeHeroPhase
			result.Outcome = OutcomeDefeat
			return result
		}
	}

	return result
}

func (r *Resolver) grant(h *hero.Hero, skill string) XPGain {
	return XPGain{
		Skill:    skill,
		Amount:   r.bal.XPPerAction,
		LevelsUp: h.AddXP(skill, r.bal.XPPerAction),
	}
}
