package card

// Board is the ordered list of live cards. Order governs tick iteration and
// therefore which card wins contended stock.
type Board struct {
	cards []*Card
	index map[string]*Card
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{index: make(map[string]*Card)}
}

// Add appends a card to the end of the board
func (b *Board) Add(c *Card) {
	b.cards = append(b.cards, c)
	b.index[c.ID()] = c
}

// Get looks up a card by id
func (b *Board) Get(id string) (*Card, bool) {
	c, ok := b.index[id]
	return c, ok
}

// Cards returns a snapshot of the board order
func (b *Board) Cards() []*Card {
	out := make([]*Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// Len returns the number of cards on the board
func (b *Board) Len() int {
	return len(b.cards)
}

// Remove drops a card and reports whether it was present
func (b *Board) Remove(id string) bool {
	if _, ok := b.index[id]; !ok {
		return false
	}
	delete(b.index, id)
	for i, c := range b.cards {
		if c.ID() == id {
			b.cards = append(b.cards[:i], b.cards[i+1:]...)
			break
		}
	}
	return true
}

// Sweep removes every card scheduled for removal and returns them
func (b *Board) Sweep() []*Card {
	var removed []*Card
	kept := b.cards[:0]
	for _, c := range b.cards {
		if c.RemovalScheduled() {
			removed = append(removed, c)
			delete(b.index, c.ID())
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(b.cards); i++ {
		b.cards[i] = nil
	}
	b.cards = kept
	return removed
}

// IDs returns the set of card ids on the board
func (b *Board) IDs() map[string]bool {
	out := make(map[string]bool, len(b.cards))
	for _, c := range b.cards {
		out[c.ID()] = true
	}
	return out
}
