package simulation

import (
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
)

// CardView is a read-only projection of a card
type CardView struct {
	ID       string
	Name     string
	Type     card.Type
	Status   card.Status
	HeroID   string
	Gate     string
	Progress float64
	Required float64
}

// HeroView is a read-only projection of a hero
type HeroView struct {
	ID     string
	Name   string
	Class  string
	Status hero.Status
	HP     hero.Vital
	Energy hero.Vital
	CardID string
}

// Snapshot is a consistent view of the whole simulation
type Snapshot struct {
	Cards        []CardView
	Heroes       []HeroView
	Stock        map[string]int
	Currency     int
	Explorations int
}

// CardsByTypeAndStatus counts cards per type and status
func (s Snapshot) CardsByTypeAndStatus() map[card.Type]map[card.Status]int {
	out := make(map[card.Type]map[card.Status]int)
	for _, c := range s.Cards {
		if out[c.Type] == nil {
			out[c.Type] = make(map[card.Status]int)
		}
		out[c.Type][c.Status]++
	}
	return out
}

// Snapshot captures the board, roster and stock under the engine lock
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Currency:     e.progression.Currency(),
		Explorations: e.progression.Explorations(),
	}
	for _, c := range e.board.Cards() {
		snap.Cards = append(snap.Cards, e.cardView(c))
	}
	for _, h := range e.heroes.All() {
		cardID, _ := e.assignments.CardFor(h.ID())
		snap.Heroes = append(snap.Heroes, HeroView{
			ID:     h.ID(),
			Name:   h.Name(),
			Class:  h.ClassID(),
			Status: h.Status(),
			HP:     h.HP(),
			Energy: h.Energy(),
			CardID: cardID,
		})
	}
	if lister, ok := e.stock.(interface{ Snapshot() map[string]int }); ok {
		snap.Stock = lister.Snapshot()
	}
	return snap
}

func (e *Engine) cardView(c *card.Card) CardView {
	view := CardView{
		ID:     c.ID(),
		Name:   c.Name(),
		Type:   c.Type(),
		Status: c.Status(),
		HeroID: c.AssignedHeroID(),
	}
	view.Gate, _ = c.Gate()

	switch p := c.Payload().(type) {
	case *card.ProductionPayload:
		view.Progress, view.Required = p.Progress, p.BaseTickTime
	case *card.ExplorationPayload:
		if bp, ok := p.BiomeProgress[p.SelectedBiomeID]; ok {
			current, required := bp.Input.Totals()
			view.Progress, view.Required = float64(current), float64(required)
		}
	case *card.AreaPayload:
		switch {
		case p.Encounter != nil:
			view.Progress = float64(p.Encounter.EnemyHP.Max - p.Encounter.EnemyHP.Current)
			view.Required = float64(p.Encounter.EnemyHP.Max)
		case p.GroupProgress != nil:
			current, required := p.GroupProgress.Totals()
			view.Progress, view.Required = float64(current), float64(required)
		case p.ProjectProgress != nil:
			current, required := p.ProjectProgress.Totals()
			view.Progress, view.Required = float64(current), float64(required)
		}
	case *card.CombatPayload:
		if p.Encounter != nil {
			view.Progress = float64(p.Encounter.EnemyHP.Max - p.Encounter.EnemyHP.Current)
			view.Required = float64(p.Encounter.EnemyHP.Max)
		}
	}
	return view
}

// Card returns a projection of the card with id, taken under the engine lock
func (e *Engine) Card(id string) (CardView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.board.Get(id)
	if !ok {
		return CardView{}, false
	}
	return e.cardView(c), true
}

// Cards returns projections of every card in board order
func (e *Engine) Cards() []CardView {
	e.mu.Lock()
	defer e.mu.Unlock()
	cards := e.board.Cards()
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, e.cardView(c))
	}
	return views
}

// Balance returns the engine's tuning
func (e *Engine) Balance() Balance {
	return e.bal
}
