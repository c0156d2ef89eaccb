package simulation

import "github.com/andrescamacho/cardquest-go/internal/domain/combat"

// Balance holds the tuning constants of the card state machines
type Balance struct {
	// WorkCycleMs is the real-time length of one gradual consumption cycle
	WorkCycleMs float64
	// CycleEnergyCost is spent at the start of every work cycle
	CycleEnergyCost int

	// SkillSpeedFactor is the production speed gained per skill level
	SkillSpeedFactor float64
	// ExplorationScaling is the cost growth per prior exploration
	ExplorationScaling float64

	// AutoConsumeHP and AutoConsumeEnergy are fractions of max below which
	// equipped food or drink is eaten before the hero acts
	AutoConsumeHP     float64
	AutoConsumeEnergy float64

	Combat combat.Balance
}

// DefaultBalance returns the stock tuning
func DefaultBalance() Balance {
	return Balance{
		WorkCycleMs:        3000,
		CycleEnergyCost:    1,
		SkillSpeedFactor:   0.005,
		ExplorationScaling: 0.2,
		AutoConsumeHP:      0.5,
		AutoConsumeEnergy:  0.25,
		Combat:             combat.DefaultBalance(),
	}
}
