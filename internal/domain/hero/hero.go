package hero

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/cardquest-go/internal/domain/content"
)

// Status represents what a hero is currently doing
type Status string

const (
	StatusIdle    Status = "idle"
	StatusWorking Status = "working"
	StatusCombat  Status = "combat"
	StatusWounded Status = "wounded"
)

// Vital is a clamped resource such as HP or energy
type Vital struct {
	Current int
	Max     int
}

// Skill tracks a level and the experience banked toward the next one
type Skill struct {
	Level int
	XP    int
}

// Equipment holds the item ids worn or carried in each slot
type Equipment struct {
	Weapon string
	Armor  string
	Food   string
	Drink  string
}

// Get returns the item id equipped in slot
func (e Equipment) Get(slot content.EquipSlot) string {
	switch slot {
	case content.SlotWeapon:
		return e.Weapon
	case content.SlotArmor:
		return e.Armor
	case content.SlotFood:
		return e.Food
	case content.SlotDrink:
		return e.Drink
	}
	return ""
}

// Hero is a unit of labour that can be assigned to one card at a time
type Hero struct {
	id        string
	name      string
	classID   string
	traitIDs  []string
	hp        Vital
	energy    Vital
	status    Status
	skills    map[string]*Skill
	equipment Equipment
}

// NewHero creates an idle hero at full HP and energy
func NewHero(id, name, classID string, maxHP, maxEnergy int, traitIDs ...string) (*Hero, error) {
	if id == "" {
		return nil, fmt.Errorf("hero id cannot be empty")
	}
	if maxHP <= 0 {
		return nil, fmt.Errorf("hero %s max hp must be positive", id)
	}
	if maxEnergy < 0 {
		return nil, fmt.Errorf("hero %s max energy cannot be negative", id)
	}
	return &Hero{
		id:       id,
		name:     name,
		classID:  classID,
		traitIDs: append([]string(nil), traitIDs...),
		hp:       Vital{Current: maxHP, Max: maxHP},
		energy:   Vital{Current: maxEnergy, Max: maxEnergy},
		status:   StatusIdle,
		skills:   make(map[string]*Skill),
	}, nil
}

// Getters

func (h *Hero) ID() string           { return h.id }
func (h *Hero) Name() string         { return h.name }
func (h *Hero) ClassID() string      { return h.classID }
func (h *Hero) TraitIDs() []string   { return append([]string(nil), h.traitIDs...) }
func (h *Hero) HP() Vital            { return h.hp }
func (h *Hero) Energy() Vital        { return h.energy }
func (h *Hero) Status() Status       { return h.status }
func (h *Hero) Equipment() Equipment { return h.equipment }
func (h *Hero) IsWounded() bool      { return h.status == StatusWounded }

// SetStatus records what the hero is doing
func (h *Hero) SetStatus(status Status) {
	h.status = status
}

// ModifyHP adds delta to HP clamped to [0,max] and returns the applied change
func (h *Hero) ModifyHP(delta int) int {
	return h.hp.modify(delta)
}

// ModifyEnergy adds delta to energy clamped to [0,max] and returns the applied change
func (h *Hero) ModifyEnergy(delta int) int {
	return h.energy.modify(delta)
}

// SpendEnergy removes cost energy only if all of it is available
func (h *Hero) SpendEnergy(cost int) bool {
	if cost <= 0 {
		return true
	}
	if h.energy.Current < cost {
		return false
	}
	h.energy.Current -= cost
	return true
}

func (v *Vital) modify(delta int) int {
	before := v.Current
	v.Current += delta
	if v.Current < 0 {
		v.Current = 0
	}
	if v.Current > v.Max {
		v.Current = v.Max
	}
	return v.Current - before
}

// Skill returns a copy of the named skill; unknown skills are level 0
func (h *Hero) Skill(name string) Skill {
	if s, ok := h.skills[name]; ok {
		return *s
	}
	return Skill{}
}

// SkillLevel returns the level of the named skill
func (h *Hero) SkillLevel(name string) int {
	return h.Skill(name).Level
}

// SkillNames returns every skill the hero has trained, sorted
func (h *Hero) SkillNames() []string {
	names := make([]string, 0, len(h.skills))
	for name := range h.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetSkill overwrites a skill, used when seeding heroes
func (h *Hero) SetSkill(name string, level, xp int) {
	h.skills[name] = &Skill{Level: level, XP: xp}
}

// AddXP banks experience and returns the number of levels gained
func (h *Hero) AddXP(skill string, amount int) int {
	if amount <= 0 {
		return 0
	}
	s, ok := h.skills[skill]
	if !ok {
		s = &Skill{}
		h.skills[skill] = s
	}
	s.XP += amount
	gained := 0
	for s.XP >= XPToNextLevel(s.Level) {
		s.XP -= XPToNextLevel(s.Level)
		s.Level++
		gained++
	}
	return gained
}

// XPToNextLevel is the experience needed to advance from level to level+1
func XPToNextLevel(level int) int {
	return 100 * (level + 1)
}

// Equip places itemID in slot; an empty id clears the slot
func (h *Hero) Equip(slot content.EquipSlot, itemID string) error {
	switch slot {
	case content.SlotWeapon:
		h.equipment.Weapon = itemID
	case content.SlotArmor:
		h.equipment.Armor = itemID
	case content.SlotFood:
		h.equipment.Food = itemID
	case content.SlotDrink:
		h.equipment.Drink = itemID
	default:
		return fmt.Errorf("unknown equipment slot %q", slot)
	}
	return nil
}

// Wound drops the hero to the wounded state
func (h *Hero) Wound() {
	h.status = StatusWounded
}

// Recover restores HP to max and returns a wounded hero to idle
func (h *Hero) Recover() {
	h.hp.Current = h.hp.Max
	if h.status == StatusWounded {
		h.status = StatusIdle
	}
}
