package hero

import (
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// Roster is the hero registry consumed by the simulation
type Roster interface {
	Get(id string) (*Hero, error)
	All() []*Hero
	Add(h *Hero) error
	Remove(id string) error
}

// Registry is the in-memory Roster. Iteration follows insertion order.
type Registry struct {
	heroes map[string]*Hero
	order  []string
}

var _ Roster = (*Registry)(nil)

// NewRegistry creates an empty roster
func NewRegistry() *Registry {
	return &Registry{heroes: make(map[string]*Hero)}
}

func (r *Registry) Get(id string) (*Hero, error) {
	if h, ok := r.heroes[id]; ok {
		return h, nil
	}
	return nil, shared.NewHeroNotFoundError(id)
}

func (r *Registry) All() []*Hero {
	out := make([]*Hero, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.heroes[id])
	}
	return out
}

func (r *Registry) Add(h *Hero) error {
	if _, exists := r.heroes[h.ID()]; exists {
		return fmt.Errorf("hero %s already exists", h.ID())
	}
	r.heroes[h.ID()] = h
	r.order = append(r.order, h.ID())
	return nil
}

func (r *Registry) Remove(id string) error {
	if _, ok := r.heroes[id]; !ok {
		return shared.NewHeroNotFoundError(id)
	}
	delete(r.heroes, id)
	for i, candidate := range r.order {
		if candidate == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
