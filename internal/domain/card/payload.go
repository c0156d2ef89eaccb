package card

import (
	"github.com/andrescamacho/cardquest-go/internal/domain/combat"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/progress"
)

// Payload is the closed set of type-specific card state
type Payload interface {
	Type() Type
	isPayload()
}

// ProductionPayload drives a repeatable task
type ProductionPayload struct {
	TaskID string
	// Progress is elapsed work time in milliseconds
	Progress float64
	// BaseTickTime is the effective cycle duration including source modifiers
	BaseTickTime float64
	// AssignedItems holds the concrete item bound to each input slot, "" when unbound
	AssignedItems []string
	Effects       content.SourceEffects
	// SourceBiomeID is the biome whose area unlocked the task, "" for starter tasks
	SourceBiomeID string
}

// BiomeProgress is the lazily created consumption state for one biome
type BiomeProgress struct {
	Input        progress.Ledger
	Requirements progress.Requirements
}

// ExplorationPayload walks a region's biomes one at a time
type ExplorationPayload struct {
	RegionID          string
	SelectedBiomeID   string
	ExploredBiomes    []string
	BiomeProgress     map[string]*BiomeProgress
	CycleProgress     float64
	AwaitingDiscovery bool
	PendingDiscovery  string
}

// IsExplored reports whether biomeID was already discovered by this card
func (p *ExplorationPayload) IsExplored(biomeID string) bool {
	for _, id := range p.ExploredBiomes {
		if id == biomeID {
			return true
		}
	}
	return false
}

// AreaPhase is the top-level stage of an area card
type AreaPhase string

const (
	PhaseQuesting AreaPhase = "questing"
	PhaseProjects AreaPhase = "projects"
	PhaseComplete AreaPhase = "complete"
)

// EnemyGroup is one quest step of an area
type EnemyGroup struct {
	Type         content.GroupType
	EnemyID      string
	Total        int
	Remaining    int
	UnlocksTask  string
	Rewards      []content.ItemReward
	XPRewards    []content.XPReward
	Requirements progress.Requirements
}

// TaskClaim is the reward waiting behind the task-claim gate
type TaskClaim struct {
	GroupIndex  int
	UnlocksTask string
	Rewards     []content.ItemReward
	XPRewards   []content.XPReward
}

// AreaPayload runs a quest line followed by a project chain
type AreaPayload struct {
	BiomeID           string
	Phase             AreaPhase
	EnemyGroups       []*EnemyGroup
	CurrentGroupIndex int
	AwaitingTaskClaim bool
	PendingTaskClaim  *TaskClaim

	// Encounter is the live fight for a combat group
	Encounter *combat.Encounter
	// GroupProgress is the consumption state for a collection group
	GroupProgress progress.Ledger

	ProjectChain        []string
	CurrentProjectIndex int
	ProjectProgress     progress.Ledger
	CompletedProjects   []string

	CycleProgress float64
}

// CurrentGroup returns the active quest group or nil when questing is over
func (p *AreaPayload) CurrentGroup() *EnemyGroup {
	if p.CurrentGroupIndex < 0 || p.CurrentGroupIndex >= len(p.EnemyGroups) {
		return nil
	}
	return p.EnemyGroups[p.CurrentGroupIndex]
}

// CurrentProject returns the active project id or "" when the chain is exhausted
func (p *AreaPayload) CurrentProject() string {
	if p.CurrentProjectIndex < 0 || p.CurrentProjectIndex >= len(p.ProjectChain) {
		return ""
	}
	return p.ProjectChain[p.CurrentProjectIndex]
}

// CombatPayload is a repeating fight against one enemy
type CombatPayload struct {
	EnemyID   string
	Encounter *combat.Encounter
}

// RecruitPayload is a one-shot voucher for a new hero; it is never ticked
type RecruitPayload struct {
	ClassID string
}

func (*ProductionPayload) Type() Type  { return TypeProduction }
func (*ExplorationPayload) Type() Type { return TypeExploration }
func (*AreaPayload) Type() Type        { return TypeArea }
func (*CombatPayload) Type() Type      { return TypeCombat }
func (*RecruitPayload) Type() Type     { return TypeRecruit }

func (*ProductionPayload) isPayload()  {}
func (*ExplorationPayload) isPayload() {}
func (*AreaPayload) isPayload()        {}
func (*CombatPayload) isPayload()      {}
func (*RecruitPayload) isPayload()     {}
