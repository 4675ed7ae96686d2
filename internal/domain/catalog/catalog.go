package catalog

import (
	"errors"
	"fmt"
	"strings"

	"wildcraft/internal/domain/world"
)

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrUnknownItem    = errors.New("unknown item")
	ErrUnknownRecipe  = errors.New("unknown recipe")
)

// UnknownIDError carries the closest known id when one is near enough to be a typo.
type UnknownIDError struct {
	Kind       error
	ID         string
	Suggestion string
}

func (e *UnknownIDError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v %q (did you mean %q?)", e.Kind, e.ID, e.Suggestion)
	}
	return fmt.Sprintf("%v %q", e.Kind, e.ID)
}

func (e *UnknownIDError) Unwrap() error {
	return e.Kind
}

// Catalog is read-only once built; lookups are safe from any goroutine.
type Catalog struct {
	items       map[string]Item
	itemOrder   []string
	resources   []Resource
	resourceIdx map[string]int
	recipes     []Recipe
	recipeIdx   map[string]int
}

func New(items []Item, resources []Resource, recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		items:       make(map[string]Item, len(items)),
		resourceIdx: make(map[string]int, len(resources)),
		recipeIdx:   make(map[string]int, len(recipes)),
	}
	for _, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrInvalidCatalog, item.ID)
		}
		if err := validateEffects(item.ID, item.Effects); err != nil {
			return nil, err
		}
		c.items[item.ID] = item
		c.itemOrder = append(c.itemOrder, item.ID)
	}
	for _, res := range resources {
		res.ID = strings.TrimSpace(res.ID)
		if res.ID == "" {
			return nil, fmt.Errorf("%w: resource with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.resourceIdx[res.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate resource %q", ErrInvalidCatalog, res.ID)
		}
		if res.RespawnSeconds < 0 {
			return nil, fmt.Errorf("%w: resource %q has negative respawn", ErrInvalidCatalog, res.ID)
		}
		for _, b := range res.Biomes {
			if !b.Valid() {
				return nil, fmt.Errorf("%w: resource %q has unknown biome %q", ErrInvalidCatalog, res.ID, b)
			}
		}
		if err := validateEffects(res.ID, res.Effects); err != nil {
			return nil, err
		}
		c.resourceIdx[res.ID] = len(c.resources)
		c.resources = append(c.resources, res)
	}
	for _, r := range recipes {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("%w: recipe with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.recipeIdx[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate recipe %q", ErrInvalidCatalog, r.ID)
		}
		for _, in := range r.Ingredients {
			if in.Quantity < 0 {
				return nil, fmt.Errorf("%w: recipe %q has negative ingredient %q", ErrInvalidCatalog, r.ID, in.ItemID)
			}
		}
		r.ResultQuantity = r.Yield()
		c.recipeIdx[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}
	return c, nil
}

func validateEffects(id string, effects []Effect) error {
	for _, e := range effects {
		if !e.Stat.Valid() {
			return fmt.Errorf("%w: %q has unknown effect stat %q", ErrInvalidCatalog, id, e.Stat)
		}
	}
	return nil
}

func (c *Catalog) Item(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// LookupItem resolves an item definition, falling back to resource templates.
func (c *Catalog) LookupItem(id string) (Item, error) {
	if item, ok := c.items[id]; ok {
		return item, nil
	}
	if res, ok := c.Resource(id); ok {
		return res.Item, nil
	}
	return Item{}, &UnknownIDError{Kind: ErrUnknownItem, ID: id, Suggestion: closest(id, c.itemOrder)}
}

func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Catalog) Resource(id string) (Resource, bool) {
	i, ok := c.resourceIdx[id]
	if !ok {
		return Resource{}, false
	}
	return c.resources[i], true
}

func (c *Catalog) Resources() []Resource {
	return append([]Resource(nil), c.resources...)
}

// ResourcesFor returns the resources eligible to spawn in the biome, in catalog order.
func (c *Catalog) ResourcesFor(b world.Biome) []Resource {
	out := make([]Resource, 0, len(c.resources))
	for _, r := range c.resources {
		if r.FoundIn(b) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) Recipe(id string) (Recipe, error) {
	i, ok := c.recipeIdx[id]
	if !ok {
		ids := make([]string, 0, len(c.recipes))
		for _, r := range c.recipes {
			ids = append(ids, r.ID)
		}
		return Recipe{}, &UnknownIDError{Kind: ErrUnknownRecipe, ID: id, Suggestion: closest(id, ids)}
	}
	return c.recipes[i], nil
}

func (c *Catalog) Recipes() []Recipe {
	return append([]Recipe(nil), c.recipes...)
}

func (c *Catalog) InitialRecipeIDs() []string {
	out := make([]string, 0, len(c.recipes))
	for _, r := range c.recipes {
		if r.InitiallyDiscovered {
			out = append(out, r.ID)
		}
	}
	return out
}

func (c *Catalog) Empty() bool {
	return len(c.resources) == 0 && len(c.items) == 0
}
