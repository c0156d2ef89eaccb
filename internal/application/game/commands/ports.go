package commands

import (
	"context"

	"github.com/andrescamacho/cardquest-go/internal/domain/content"
)

// Game is the slice of the simulation engine that player commands mutate
type Game interface {
	AssignHero(ctx context.Context, heroID, cardID string) error
	UnassignHero(ctx context.Context, heroID string) error
	RecoverHero(ctx context.Context, heroID string) error
	RetireHero(ctx context.Context, heroID string) error
	Recruit(ctx context.Context, cardID, name string) (string, error)
	EquipItem(ctx context.Context, heroID string, slot content.EquipSlot, itemID string) error

	ClaimAreaTask(ctx context.Context, cardID string) (string, error)
	Discover(ctx context.Context, cardID string) (string, error)
	SelectBiome(ctx context.Context, cardID, biomeID string) error
	BindSlotItem(ctx context.Context, cardID string, slot int, itemID string) error
	DiscardCard(ctx context.Context, cardID string) error

	SpawnTaskCard(ctx context.Context, taskID string) (string, error)
	SpawnCombatCard(ctx context.Context, enemyID string) (string, error)
	SpawnExplorationCard(ctx context.Context, regionID string) (string, error)
	SpawnAreaCard(ctx context.Context, biomeID string) (string, error)
	SpawnRecruitCard(ctx context.Context, classID string) (string, error)
}
