package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrescamacho/cardquest-go/internal/application/game/commands"
	"github.com/andrescamacho/cardquest-go/internal/application/game/queries"
	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/content"
)

// Dispatcher sends a player command; mediator.Mediator satisfies it
type Dispatcher interface {
	Send(ctx context.Context, request mediator.Request) (mediator.Response, error)
}

// PlayerAction is an inbound command frame from a client
type PlayerAction struct {
	RequestID string `json:"request_id,omitempty"`
	Action    string `json:"action"`
	HeroID    string `json:"hero_id,omitempty"`
	CardID    string `json:"card_id,omitempty"`
	CardType  string `json:"card_type,omitempty"`
	Template  string `json:"template,omitempty"`
	BiomeID   string `json:"biome_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
	Slot      string `json:"slot,omitempty"`
	SlotIndex int    `json:"slot_index,omitempty"`
	Name      string `json:"name,omitempty"`
}

// ActionResult answers one PlayerAction on the sender's connection only
type ActionResult struct {
	Type      string      `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	OK        bool        `json:"ok"`
	Error     string      `json:"error,omitempty"`
	Result    interface{} `json:"result,omitempty"`
}

const actionTimeout = 5 * time.Second

// toCommand maps an action name onto its game command
func (a PlayerAction) toCommand() (mediator.Request, error) {
	switch a.Action {
	case "assign_hero":
		return &commands.AssignHeroCommand{HeroID: a.HeroID, CardID: a.CardID}, nil
	case "unassign_hero":
		return &commands.UnassignHeroCommand{HeroID: a.HeroID}, nil
	case "recover_hero":
		return &commands.RecoverHeroCommand{HeroID: a.HeroID}, nil
	case "retire_hero":
		return &commands.RetireHeroCommand{HeroID: a.HeroID}, nil
	case "recruit_hero":
		return &commands.RecruitHeroCommand{CardID: a.CardID, Name: a.Name}, nil
	case "equip_item":
		return &commands.EquipItemCommand{HeroID: a.HeroID, Slot: content.EquipSlot(a.Slot), ItemID: a.ItemID}, nil
	case "spawn_card":
		return &commands.SpawnCardCommand{Type: card.Type(a.CardType), Template: a.Template}, nil
	case "claim_area_task":
		return &commands.ClaimAreaTaskCommand{CardID: a.CardID}, nil
	case "discover_biome":
		return &commands.DiscoverBiomeCommand{CardID: a.CardID}, nil
	case "select_biome":
		return &commands.SelectBiomeCommand{CardID: a.CardID, BiomeID: a.BiomeID}, nil
	case "bind_slot_item":
		return &commands.BindSlotItemCommand{CardID: a.CardID, Slot: a.SlotIndex, ItemID: a.ItemID}, nil
	case "discard_card":
		return &commands.DiscardCardCommand{CardID: a.CardID}, nil
	case "snapshot":
		return &queries.GetSnapshotQuery{}, nil
	}
	return nil, fmt.Errorf("unknown action %q", a.Action)
}

// handleAction decodes, dispatches and encodes the reply for one frame
func (h *Hub) handleAction(raw []byte) []byte {
	var action PlayerAction
	result := ActionResult{Type: "action_result"}

	if err := json.Unmarshal(raw, &action); err != nil {
		result.Error = "malformed action: " + err.Error()
		return mustEncode(result)
	}
	result.RequestID = action.RequestID

	if h.dispatcher == nil {
		result.Error = "actions are not accepted on this stream"
		return mustEncode(result)
	}

	request, err := action.toCommand()
	if err != nil {
		result.Error = err.Error()
		return mustEncode(result)
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()
	response, err := h.dispatcher.Send(ctx, request)
	if err != nil {
		result.Error = err.Error()
		return mustEncode(result)
	}

	result.OK = true
	result.Result = response
	return mustEncode(result)
}

func mustEncode(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"action_result","ok":false,"error":"failed to encode reply"}`)
	}
	return raw
}
