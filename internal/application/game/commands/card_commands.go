package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
)

// SpawnCardCommand instantiates a card from a template id. For production
// cards the template is a task, for combat an enemy, for exploration a
// region, for area a biome and for recruit a class (empty for generic).
type SpawnCardCommand struct {
	Type     card.Type
	Template string
}

// ClaimAreaTaskCommand hands out the task unlocked by a cleared enemy group
type ClaimAreaTaskCommand struct {
	CardID string
}

// DiscoverBiomeCommand turns a paid-off exploration into an area card
type DiscoverBiomeCommand struct {
	CardID string
}

// SelectBiomeCommand points an exploration card at a specific biome
type SelectBiomeCommand struct {
	CardID  string
	BiomeID string
}

// BindSlotItemCommand picks the concrete item an open input slot consumes
type BindSlotItemCommand struct {
	CardID string
	Slot   int
	ItemID string
}

// DiscardCardCommand removes a card from the board
type DiscardCardCommand struct {
	CardID string
}

// CardResponse carries the card created or affected by a command
type CardResponse struct {
	CardID string
	Status string
}

// CardCommandHandler handles board commands
type CardCommandHandler struct {
	game Game
}

// NewCardCommandHandler creates a handler bound to the engine
func NewCardCommandHandler(game Game) *CardCommandHandler {
	return &CardCommandHandler{game: game}
}

// Handle dispatches on the concrete command type
func (h *CardCommandHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *SpawnCardCommand:
		cardID, err := h.spawn(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return &CardResponse{CardID: cardID, Status: "spawned"}, nil

	case *ClaimAreaTaskCommand:
		if err := requireIDs(cmd.CardID); err != nil {
			return nil, err
		}
		taskCardID, err := h.game.ClaimAreaTask(ctx, cmd.CardID)
		if err != nil {
			return nil, err
		}
		return &CardResponse{CardID: taskCardID, Status: "claimed"}, nil

	case *DiscoverBiomeCommand:
		if err := requireIDs(cmd.CardID); err != nil {
			return nil, err
		}
		areaID, err := h.game.Discover(ctx, cmd.CardID)
		if err != nil {
			return nil, err
		}
		return &CardResponse{CardID: areaID, Status: "discovered"}, nil

	case *SelectBiomeCommand:
		if err := requireIDs(cmd.CardID, cmd.BiomeID); err != nil {
			return nil, err
		}
		if err := h.game.SelectBiome(ctx, cmd.CardID, cmd.BiomeID); err != nil {
			return nil, err
		}
		return &CardResponse{CardID: cmd.CardID, Status: "selected"}, nil

	case *BindSlotItemCommand:
		if err := requireIDs(cmd.CardID, cmd.ItemID); err != nil {
			return nil, err
		}
		if err := h.game.BindSlotItem(ctx, cmd.CardID, cmd.Slot, cmd.ItemID); err != nil {
			return nil, err
		}
		return &CardResponse{CardID: cmd.CardID, Status: "bound"}, nil

	case *DiscardCardCommand:
		if err := requireIDs(cmd.CardID); err != nil {
			return nil, err
		}
		if err := h.game.DiscardCard(ctx, cmd.CardID); err != nil {
			return nil, err
		}
		return &CardResponse{CardID: cmd.CardID, Status: "discarded"}, nil
	}
	return nil, fmt.Errorf("invalid request type %T", request)
}

func (h *CardCommandHandler) spawn(ctx context.Context, cmd *SpawnCardCommand) (string, error) {
	switch cmd.Type {
	case card.TypeProduction:
		return h.game.SpawnTaskCard(ctx, cmd.Template)
	case card.TypeCombat:
		return h.game.SpawnCombatCard(ctx, cmd.Template)
	case card.TypeExploration:
		return h.game.SpawnExplorationCard(ctx, cmd.Template)
	case card.TypeArea:
		return h.game.SpawnAreaCard(ctx, cmd.Template)
	case card.TypeRecruit:
		return h.game.SpawnRecruitCard(ctx, cmd.Template)
	}
	return "", fmt.Errorf("unknown card type %q", cmd.Type)
}
