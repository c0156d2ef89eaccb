package inventory

import (
	"sort"

	"github.com/andrescamacho/cardquest-go/internal/domain/content"
)

// Stock is the mutable item pool shared by every card
type Stock interface {
	Count(itemID string) int
	Has(itemID string, n int) bool

	// Add stores up to n units and returns how many were accepted
	Add(itemID string, n int) int

	// Remove takes n units or nothing at all
	Remove(itemID string, n int) bool

	// Durability returns the remaining uses of the top unit and the per-unit maximum
	Durability(itemID string) (current, max int)

	// DecrementDurability spends one use of the top unit of a tool stack
	DecrementDurability(itemID string) DurabilityResult

	// FirstWithTag returns an in-stock item carrying tag, choosing the lowest id
	FirstWithTag(tag string) (string, bool)
}

// DurabilityResult reports what a single tool use did to the stack
type DurabilityResult struct {
	// Broke is true when the top unit reached zero and was consumed
	Broke bool
	// Depleted is true when no units of the item remain
	Depleted bool
}

// ItemLookup resolves item templates
type ItemLookup interface {
	Item(id string) (*content.ItemTemplate, error)
}

type stack struct {
	quantity   int
	durability int
}

// Inventory is the single global item pool. It is not synchronized; the
// simulation engine serializes access.
type Inventory struct {
	items         ItemLookup
	stacks        map[string]*stack
	slotCap       int
	slotBonus     int
	maxStackBonus int
}

var _ Stock = (*Inventory)(nil)

// NewInventory creates an empty inventory. slotCap limits distinct items; 0 means unlimited.
func NewInventory(items ItemLookup, slotCap int) *Inventory {
	return &Inventory{
		items:   items,
		stacks:  make(map[string]*stack),
		slotCap: slotCap,
	}
}

func (inv *Inventory) Count(itemID string) int {
	if s, ok := inv.stacks[itemID]; ok {
		return s.quantity
	}
	return 0
}

func (inv *Inventory) Has(itemID string, n int) bool {
	return inv.Count(itemID) >= n
}

func (inv *Inventory) Add(itemID string, n int) int {
	if n <= 0 {
		return 0
	}
	tmpl, err := inv.items.Item(itemID)
	if err != nil {
		return 0
	}

	s, exists := inv.stacks[itemID]
	if !exists {
		if limit := inv.SlotCap(); limit > 0 && len(inv.stacks) >= limit {
			return 0
		}
		s = &stack{durability: tmpl.Durability}
	}

	accepted := n
	if tmpl.MaxStack > 0 {
		room := tmpl.MaxStack + inv.maxStackBonus - s.quantity
		if room < accepted {
			accepted = room
		}
	}
	if accepted <= 0 {
		return 0
	}

	s.quantity += accepted
	inv.stacks[itemID] = s
	return accepted
}

func (inv *Inventory) Remove(itemID string, n int) bool {
	s, ok := inv.stacks[itemID]
	if !ok || n <= 0 || s.quantity < n {
		return false
	}
	s.quantity -= n
	if s.quantity == 0 {
		delete(inv.stacks, itemID)
	}
	return true
}

func (inv *Inventory) Durability(itemID string) (int, int) {
	tmpl, err := inv.items.Item(itemID)
	if err != nil {
		return 0, 0
	}
	s, ok := inv.stacks[itemID]
	if !ok {
		return 0, tmpl.Durability
	}
	return s.durability, tmpl.Durability
}

func (inv *Inventory) DecrementDurability(itemID string) DurabilityResult {
	s, ok := inv.stacks[itemID]
	if !ok {
		return DurabilityResult{Depleted: true}
	}
	tmpl, err := inv.items.Item(itemID)
	if err != nil || tmpl.Durability == 0 {
		return DurabilityResult{}
	}

	s.durability--
	if s.durability > 0 {
		return DurabilityResult{}
	}

	s.quantity--
	if s.quantity == 0 {
		delete(inv.stacks, itemID)
		return DurabilityResult{Broke: true, Depleted: true}
	}
	s.durability = tmpl.Durability
	return DurabilityResult{Broke: true}
}

func (inv *Inventory) FirstWithTag(tag string) (string, bool) {
	for _, id := range inv.ItemIDs() {
		tmpl, err := inv.items.Item(id)
		if err != nil {
			continue
		}
		if tmpl.HasTag(tag) {
			return id, true
		}
	}
	return "", false
}

// ItemIDs returns the ids of every item in stock, sorted
func (inv *Inventory) ItemIDs() []string {
	ids := make([]string, 0, len(inv.stacks))
	for id := range inv.stacks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SlotCap returns the effective distinct-item limit; 0 means unlimited
func (inv *Inventory) SlotCap() int {
	if inv.slotCap == 0 {
		return 0
	}
	return inv.slotCap + inv.slotBonus
}

// AddSlotBonus raises the distinct-item limit
func (inv *Inventory) AddSlotBonus(n int) {
	inv.slotBonus += n
}

// AddMaxStackBonus raises the per-stack limit of every capped item
func (inv *Inventory) AddMaxStackBonus(n int) {
	inv.maxStackBonus += n
}

// Snapshot copies current quantities keyed by item id
func (inv *Inventory) Snapshot() map[string]int {
	out := make(map[string]int, len(inv.stacks))
	for id, s := range inv.stacks {
		out[id] = s.quantity
	}
	return out
}
