package catalog

import "wildcraft/internal/domain/world"

type StatKind string

const (
	StatHealth StatKind = "health"
	StatHunger StatKind = "hunger"
	StatThirst StatKind = "thirst"
)

func (k StatKind) Valid() bool {
	switch k {
	case StatHealth, StatHunger, StatThirst:
		return true
	default:
		return false
	}
}

type Effect struct {
	Stat  StatKind `json:"stat" yaml:"stat"`
	Delta float64  `json:"delta" yaml:"delta"`
}

type ItemCategory string

const (
	CategoryResource ItemCategory = "resource"
	CategoryFood     ItemCategory = "food"
	CategoryDrink    ItemCategory = "drink"
	CategoryMedicine ItemCategory = "medicine"
	CategoryTool     ItemCategory = "tool"
	CategoryWeapon   ItemCategory = "weapon"
	CategoryShelter  ItemCategory = "shelter"
)

type Item struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Category    ItemCategory `json:"category" yaml:"category"`
	Description string       `json:"description" yaml:"description"`
	Icon        string       `json:"icon" yaml:"icon"`
	Effects     []Effect     `json:"effects,omitempty" yaml:"effects,omitempty"`
}

func (i Item) Consumable() bool {
	return len(i.Effects) > 0
}

type Resource struct {
	Item           `yaml:",inline"`
	RespawnSeconds int           `json:"respawn_seconds" yaml:"respawn_seconds"`
	Biomes         []world.Biome `json:"biomes" yaml:"biomes"`
}

func (r Resource) FoundIn(b world.Biome) bool {
	for _, candidate := range r.Biomes {
		if candidate == b {
			return true
		}
	}
	return false
}

type RecipeCategory string

const (
	RecipeTool    RecipeCategory = "tool"
	RecipeWeapon  RecipeCategory = "weapon"
	RecipeShelter RecipeCategory = "shelter"
	RecipeFood    RecipeCategory = "food"
	RecipeUtility RecipeCategory = "utility"
)

// Ingredient with Quantity 0 gates the recipe on presence without consuming it.
type Ingredient struct {
	ItemID   string `json:"item_id" yaml:"item_id"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

type Recipe struct {
	ID                  string         `json:"id" yaml:"id"`
	Name                string         `json:"name" yaml:"name"`
	Ingredients         []Ingredient   `json:"ingredients" yaml:"ingredients"`
	ResultItemID        string         `json:"result_item_id" yaml:"result"`
	ResultQuantity      int            `json:"result_quantity" yaml:"result_quantity,omitempty"`
	Category            RecipeCategory `json:"category" yaml:"category"`
	InitiallyDiscovered bool           `json:"initially_discovered" yaml:"initially_discovered"`
	Prerequisites       []string       `json:"discovery_prerequisites" yaml:"required_for_discovery"`
	Description         string         `json:"description" yaml:"description"`
}

func (r Recipe) Yield() int {
	if r.ResultQuantity < 1 {
		return 1
	}
	return r.ResultQuantity
}
