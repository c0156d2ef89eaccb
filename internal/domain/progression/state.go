package progression

import "sort"

// State holds the global counters and modifiers that outlive any single card
type State struct {
	explorations   int
	unlockedBiomes map[string]bool
	doubleOutput   map[string]float64
	xpBonus        map[string]float64
	builtBonus     map[string]float64
	currency       int
}

// Global is the category key for modifiers that apply everywhere
const Global = ""

// NewState creates a fresh progression state
func NewState() *State {
	return &State{
		unlockedBiomes: make(map[string]bool),
		doubleOutput:   make(map[string]float64),
		xpBonus:        make(map[string]float64),
		builtBonus:     make(map[string]float64),
	}
}

// Explorations is the number of biomes discovered so far
func (s *State) Explorations() int { return s.explorations }

// RecordExploration bumps the exploration counter that scales future costs
func (s *State) RecordExploration() int {
	s.explorations++
	return s.explorations
}

// UnlockBiome makes a locked biome selectable by exploration
func (s *State) UnlockBiome(biomeID string) {
	s.unlockedBiomes[biomeID] = true
}

// IsUnlocked reports whether a locked biome has been unlocked
func (s *State) IsUnlocked(biomeID string) bool {
	return s.unlockedBiomes[biomeID]
}

// UnlockedBiomes returns unlocked biome ids, sorted
func (s *State) UnlockedBiomes() []string {
	out := make([]string, 0, len(s.unlockedBiomes))
	for id := range s.unlockedBiomes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AddDoubleOutput raises the chance that a task in category doubles its output
func (s *State) AddDoubleOutput(category string, chance float64) {
	s.doubleOutput[category] += chance
}

// DoubleOutputChance returns global plus category-scoped double chance
func (s *State) DoubleOutputChance(category string) float64 {
	chance := s.doubleOutput[Global]
	if category != Global {
		chance += s.doubleOutput[category]
	}
	return chance
}

// AddXPBonus raises the XP multiplier for tasks in category
func (s *State) AddXPBonus(category string, bonus float64) {
	s.xpBonus[category] += bonus
}

// XPBonus returns global plus category-scoped XP bonus
func (s *State) XPBonus(category string) float64 {
	bonus := s.xpBonus[Global]
	if category != Global {
		bonus += s.xpBonus[category]
	}
	return bonus
}

// AddProjectBonus records the passive XP bonus a built project gives its category
func (s *State) AddProjectBonus(category string, bonus float64) {
	s.builtBonus[category] += bonus
}

// ProjectBonus returns the summed passive bonus from built projects
func (s *State) ProjectBonus(category string) float64 {
	bonus := s.builtBonus[Global]
	if category != Global {
		bonus += s.builtBonus[category]
	}
	return bonus
}

// Currency is the player's coin balance
func (s *State) Currency() int { return s.currency }

// AddCurrency changes the coin balance
func (s *State) AddCurrency(amount int) int {
	s.currency += amount
	return s.currency
}
