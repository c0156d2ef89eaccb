package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// AssignHeroCommand staffs a card with a hero
type AssignHeroCommand struct {
	HeroID string
	CardID string
}

// UnassignHeroCommand takes a hero off its card
type UnassignHeroCommand struct {
	HeroID string
}

// RecoverHeroCommand heals a hero and clears the wounded status
type RecoverHeroCommand struct {
	HeroID string
}

// RetireHeroCommand removes a hero from the roster
type RetireHeroCommand struct {
	HeroID string
}

// RecruitHeroCommand turns a recruit card into a hero
type RecruitHeroCommand struct {
	CardID string
	Name   string
}

type RecruitHeroResponse struct {
	HeroID string
}

// EquipItemCommand fills or clears one equipment slot
type EquipItemCommand struct {
	HeroID string
	Slot   content.EquipSlot
	ItemID string
}

// HeroResponse reports the hero a command acted on
type HeroResponse struct {
	HeroID string
	Status string
}

// HeroCommandHandler handles every hero-roster command
type HeroCommandHandler struct {
	game Game
}

// NewHeroCommandHandler creates a handler bound to the engine
func NewHeroCommandHandler(game Game) *HeroCommandHandler {
	return &HeroCommandHandler{game: game}
}

// Handle dispatches on the concrete command type
func (h *HeroCommandHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *AssignHeroCommand:
		if err := requireIDs(cmd.HeroID, cmd.CardID); err != nil {
			return nil, err
		}
		if err := h.game.AssignHero(ctx, cmd.HeroID, cmd.CardID); err != nil {
			return nil, err
		}
		return &HeroResponse{HeroID: cmd.HeroID, Status: "assigned"}, nil

	case *UnassignHeroCommand:
		if err := requireIDs(cmd.HeroID); err != nil {
			return nil, err
		}
		if err := h.game.UnassignHero(ctx, cmd.HeroID); err != nil {
			return nil, err
		}
		return &HeroResponse{HeroID: cmd.HeroID, Status: "unassigned"}, nil

	case *RecoverHeroCommand:
		if err := h.game.RecoverHero(ctx, cmd.HeroID); err != nil {
			return nil, err
		}
		return &HeroResponse{HeroID: cmd.HeroID, Status: "recovered"}, nil

	case *RetireHeroCommand:
		if err := h.game.RetireHero(ctx, cmd.HeroID); err != nil {
			return nil, err
		}
		return &HeroResponse{HeroID: cmd.HeroID, Status: "retired"}, nil

	case *RecruitHeroCommand:
		if err := requireIDs(cmd.CardID); err != nil {
			return nil, err
		}
		heroID, err := h.game.Recruit(ctx, cmd.CardID, cmd.Name)
		if err != nil {
			return nil, err
		}
		return &RecruitHeroResponse{HeroID: heroID}, nil

	case *EquipItemCommand:
		if err := h.game.EquipItem(ctx, cmd.HeroID, cmd.Slot, cmd.ItemID); err != nil {
			return nil, err
		}
		return &HeroResponse{HeroID: cmd.HeroID, Status: "equipped"}, nil
	}
	return nil, fmt.Errorf("invalid request type %T", request)
}

func requireIDs(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			return shared.NewValidationError("id", "identifier cannot be empty")
		}
	}
	return nil
}
