package content

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// Catalog is the read-only content lookup consumed by the simulation
type Catalog interface {
	Item(id string) (*ItemTemplate, error)
	Enemy(id string) (*EnemyTemplate, error)
	Biome(id string) (*BiomeTemplate, error)
	Region(id string) (*RegionTemplate, error)
	Project(id string) (*ProjectTemplate, error)
	Task(id string) (*TaskTemplate, error)
	Class(id string) (*ClassTemplate, error)
	Trait(id string) (*TraitTemplate, error)

	// ItemsWithTag returns the ids of every item carrying tag, sorted
	ItemsWithTag(tag string) []string
}

// Definitions is the flat content document a Registry is built from
type Definitions struct {
	Items    []ItemTemplate    `yaml:"items" validate:"dive"`
	Enemies  []EnemyTemplate   `yaml:"enemies" validate:"dive"`
	Biomes   []BiomeTemplate   `yaml:"biomes" validate:"dive"`
	Regions  []RegionTemplate  `yaml:"regions" validate:"dive"`
	Projects []ProjectTemplate `yaml:"projects" validate:"dive"`
	Tasks    []TaskTemplate    `yaml:"tasks" validate:"dive"`
	Classes  []ClassTemplate   `yaml:"classes" validate:"dive"`
	Traits   []TraitTemplate   `yaml:"traits" validate:"dive"`
}

// Registry is the in-memory Catalog
type Registry struct {
	items    map[string]*ItemTemplate
	enemies  map[string]*EnemyTemplate
	biomes   map[string]*BiomeTemplate
	regions  map[string]*RegionTemplate
	projects map[string]*ProjectTemplate
	tasks    map[string]*TaskTemplate
	classes  map[string]*ClassTemplate
	traits   map[string]*TraitTemplate
	tagIndex map[string][]string
}

var _ Catalog = (*Registry)(nil)

// NewRegistry indexes the definitions and checks that every cross reference resolves
func NewRegistry(defs Definitions) (*Registry, error) {
	r := &Registry{
		items:    make(map[string]*ItemTemplate),
		enemies:  make(map[string]*EnemyTemplate),
		biomes:   make(map[string]*BiomeTemplate),
		regions:  make(map[string]*RegionTemplate),
		projects: make(map[string]*ProjectTemplate),
		tasks:    make(map[string]*TaskTemplate),
		classes:  make(map[string]*ClassTemplate),
		traits:   make(map[string]*TraitTemplate),
		tagIndex: make(map[string][]string),
	}

	for i := range defs.Items {
		item := &defs.Items[i]
		if _, dup := r.items[item.ID]; dup {
			return nil, shared.NewValidationError("items", fmt.Sprintf("duplicate item id %q", item.ID))
		}
		r.items[item.ID] = item
		for _, tag := range item.Tags {
			r.tagIndex[tag] = append(r.tagIndex[tag], item.ID)
		}
	}
	for tag := range r.tagIndex {
		sort.Strings(r.tagIndex[tag])
	}
	for i := range defs.Enemies {
		r.enemies[defs.Enemies[i].ID] = &defs.Enemies[i]
	}
	for i := range defs.Biomes {
		r.biomes[defs.Biomes[i].ID] = &defs.Biomes[i]
	}
	for i := range defs.Regions {
		region := &defs.Regions[i]
		if region.CostMultiplier == 0 {
			region.CostMultiplier = 1
		}
		r.regions[region.ID] = region
	}
	for i := range defs.Projects {
		r.projects[defs.Projects[i].ID] = &defs.Projects[i]
	}
	for i := range defs.Tasks {
		task := &defs.Tasks[i]
		if task.Effects.TickTimeMultiplier == 0 {
			task.Effects.TickTimeMultiplier = 1
		}
		r.tasks[task.ID] = task
	}
	for i := range defs.Classes {
		r.classes[defs.Classes[i].ID] = &defs.Classes[i]
	}
	for i := range defs.Traits {
		r.traits[defs.Traits[i].ID] = &defs.Traits[i]
	}

	if err := r.checkReferences(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) checkReferences() error {
	requireItems := func(owner string, reqs map[string]int) error {
		for key := range reqs {
			if tag, ok := TagOf(key); ok {
				if len(r.tagIndex[tag]) == 0 {
					return shared.NewValidationError(owner, fmt.Sprintf("no item carries tag %q", tag))
				}
				continue
			}
			if _, ok := r.items[key]; !ok {
				return shared.NewValidationError(owner, fmt.Sprintf("unknown item %q", key))
			}
		}
		return nil
	}

	for id, enemy := range r.enemies {
		for _, drop := range enemy.Drops {
			if _, ok := r.items[drop.ItemID]; !ok {
				return shared.NewValidationError("enemy "+id, fmt.Sprintf("unknown drop item %q", drop.ItemID))
			}
		}
	}
	for id, biome := range r.biomes {
		if _, ok := r.regions[biome.Region]; !ok {
			return shared.NewValidationError("biome "+id, fmt.Sprintf("unknown region %q", biome.Region))
		}
		if err := requireItems("biome "+id, biome.ExploreCost); err != nil {
			return err
		}
		for _, group := range biome.EnemyGroups {
			if group.Type == GroupCombat {
				if _, ok := r.enemies[group.EnemyID]; !ok {
					return shared.NewValidationError("biome "+id, fmt.Sprintf("unknown enemy %q", group.EnemyID))
				}
			}
			if err := requireItems("biome "+id, group.Requirements); err != nil {
				return err
			}
			if group.UnlocksTask != "" {
				if _, ok := r.tasks[group.UnlocksTask]; !ok {
					return shared.NewValidationError("biome "+id, fmt.Sprintf("unknown task %q", group.UnlocksTask))
				}
			}
		}
		for _, projectID := range biome.ProjectChain {
			if _, ok := r.projects[projectID]; !ok {
				return shared.NewValidationError("biome "+id, fmt.Sprintf("unknown project %q", projectID))
			}
		}
	}
	for id, region := range r.regions {
		for _, biomeID := range region.Biomes {
			if _, ok := r.biomes[biomeID]; !ok {
				return shared.NewValidationError("region "+id, fmt.Sprintf("unknown biome %q", biomeID))
			}
		}
	}
	for id, project := range r.projects {
		if err := requireItems("project "+id, project.Cost); err != nil {
			return err
		}
	}
	for id, task := range r.tasks {
		for _, slot := range task.Inputs {
			if slot.ItemID != "" {
				if _, ok := r.items[slot.ItemID]; !ok {
					return shared.NewValidationError("task "+id, fmt.Sprintf("unknown input item %q", slot.ItemID))
				}
			}
		}
		for _, out := range task.Outputs {
			if _, ok := r.items[out.ItemID]; !ok {
				return shared.NewValidationError("task "+id, fmt.Sprintf("unknown output item %q", out.ItemID))
			}
		}
	}
	return nil
}

func (r *Registry) Item(id string) (*ItemTemplate, error) {
	if t, ok := r.items[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("item", id)
}

func (r *Registry) Enemy(id string) (*EnemyTemplate, error) {
	if t, ok := r.enemies[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("enemy", id)
}

func (r *Registry) Biome(id string) (*BiomeTemplate, error) {
	if t, ok := r.biomes[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("biome", id)
}

func (r *Registry) Region(id string) (*RegionTemplate, error) {
	if t, ok := r.regions[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("region", id)
}

func (r *Registry) Project(id string) (*ProjectTemplate, error) {
	if t, ok := r.projects[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("project", id)
}

func (r *Registry) Task(id string) (*TaskTemplate, error) {
	if t, ok := r.tasks[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("task", id)
}

func (r *Registry) Class(id string) (*ClassTemplate, error) {
	if t, ok := r.classes[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("class", id)
}

func (r *Registry) Trait(id string) (*TraitTemplate, error) {
	if t, ok := r.traits[id]; ok {
		return t, nil
	}
	return nil, shared.NewTemplateNotFoundError("trait", id)
}

func (r *Registry) ItemsWithTag(tag string) []string {
	ids := r.tagIndex[tag]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// ClassIDs returns every class id, sorted
func (r *Registry) ClassIDs() []string {
	ids := make([]string, 0, len(r.classes))
	for id := range r.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Counts reports how many templates of each kind are registered
func (r *Registry) Counts() map[string]int {
	return map[string]int{
		"items":    len(r.items),
		"enemies":  len(r.enemies),
		"biomes":   len(r.biomes),
		"regions":  len(r.regions),
		"projects": len(r.projects),
		"tasks":    len(r.tasks),
		"classes":  len(r.classes),
		"traits":   len(r.traits),
	}
}
