package simulation

import "github.com/andrescamacho/cardquest-go/internal/domain/card"

// LiveCard exposes the engine's own card so tests can inspect payloads
// between ticks.
func (e *Engine) LiveCard(id string) (*card.Card, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Get(id)
}

func (e *Engine) LiveCards() []*card.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Cards()
}
