package survival

import (
	"errors"
	"fmt"
	"strings"

	"wildcraft/internal/domain/catalog"
)

var (
	ErrInsufficientIngredients = errors.New("insufficient ingredients")
	ErrUnknownResultItem       = errors.New("recipe result item not in catalog")
	ErrRecipeNotDiscovered     = errors.New("recipe not discovered")
)

type Shortfall struct {
	ItemID   string `json:"item_id"`
	Required int    `json:"required"`
	Held     int    `json:"held"`
}

type InsufficientIngredientsError struct {
	RecipeID string
	Missing  []Shortfall
}

func (e *InsufficientIngredientsError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s %d/%d", m.ItemID, m.Held, m.Required))
	}
	return fmt.Sprintf("%v for %s: %s", ErrInsufficientIngredients, e.RecipeID, strings.Join(parts, ", "))
}

func (e *InsufficientIngredientsError) Unwrap() error {
	return ErrInsufficientIngredients
}

// needed is the held quantity an ingredient demands. Zero-quantity
// ingredients are stations: they must be held but are never consumed.
func needed(in catalog.Ingredient) int {
	if in.Quantity <= 0 {
		return 1
	}
	return in.Quantity
}

// Shortfalls lists every ingredient the inventory cannot cover.
func Shortfalls(inv *Inventory, r catalog.Recipe) []Shortfall {
	var out []Shortfall
	for _, in := range r.Ingredients {
		held := inv.Query(in.ItemID)
		if held < needed(in) {
			out = append(out, Shortfall{ItemID: in.ItemID, Required: needed(in), Held: held})
		}
	}
	return out
}

func CanAfford(inv *Inventory, r catalog.Recipe) bool {
	return len(Shortfalls(inv, r)) == 0
}

type CraftResult struct {
	RecipeID   string         `json:"recipe_id"`
	Produced   ItemStack      `json:"produced"`
	Consumed   map[string]int `json:"consumed"`
	Discovered []string       `json:"discovered,omitempty"`
}

// Craft consumes the recipe's ingredients and adds its result as one step.
// Every check runs before the first mutation, so a failed craft leaves the
// state untouched.
func (p *PlayerState) Craft(cat *catalog.Catalog, recipeID string) (CraftResult, error) {
	r, err := cat.Recipe(recipeID)
	if err != nil {
		return CraftResult{}, err
	}
	if !p.Discovered.Has(r.ID) {
		return CraftResult{}, fmt.Errorf("%w: %s", ErrRecipeNotDiscovered, r.ID)
	}
	if missing := Shortfalls(&p.Inventory, r); len(missing) > 0 {
		return CraftResult{}, &InsufficientIngredientsError{RecipeID: r.ID, Missing: missing}
	}
	item, err := cat.LookupItem(r.ResultItemID)
	if err != nil {
		return CraftResult{}, fmt.Errorf("%w: recipe %s yields %q", ErrUnknownResultItem, r.ID, r.ResultItemID)
	}

	consumed := make(map[string]int, len(r.Ingredients))
	for _, in := range r.Ingredients {
		if in.Quantity <= 0 {
			continue
		}
		consumed[in.ItemID] += p.Inventory.Remove(in.ItemID, in.Quantity)
	}
	produced := StackOf(item, r.Yield())
	discovered := p.AddItem(cat, produced)
	return CraftResult{RecipeID: r.ID, Produced: produced, Consumed: consumed, Discovered: discovered}, nil
}
