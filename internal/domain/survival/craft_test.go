package survival

import (
	"errors"
	"testing"

	"wildcraft/internal/domain/catalog"
)

func give(t *testing.T, cat *catalog.Catalog, p *PlayerState, id string, qty int) []string {
	t.Helper()
	item, err := cat.LookupItem(id)
	if err != nil {
		t.Fatalf("lookup %s: %v", id, err)
	}
	return p.AddItem(cat, StackOf(item, qty))
}

func TestCraftFreshGameLacksIngredients(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)

	_, err := p.Craft(cat, "stone_axe")
	if !errors.Is(err, ErrInsufficientIngredients) {
		t.Fatalf("expected ErrInsufficientIngredients, got %v", err)
	}
	var short *InsufficientIngredientsError
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientIngredientsError, got %T", err)
	}
	if len(short.Missing) != 3 {
		t.Fatalf("missing count mismatch: got=%d want=3", len(short.Missing))
	}
	if p.Inventory.Len() != 0 {
		t.Fatalf("failed craft mutated inventory: %+v", p.Inventory.Stacks())
	}
}

func TestCraftConsumesIngredientsAndAddsResult(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	give(t, cat, &p, "wooden_stick", 1)
	give(t, cat, &p, "stone", 2)
	give(t, cat, &p, "vine", 1)

	res, err := p.Craft(cat, "stone_axe")
	if err != nil {
		t.Fatalf("craft: %v", err)
	}
	for _, id := range []string{"wooden_stick", "stone", "vine"} {
		if got := p.Inventory.Query(id); got != 0 {
			t.Fatalf("%s left over: got=%d want=0", id, got)
		}
	}
	if got := p.Inventory.Query("stone_axe"); got != 1 {
		t.Fatalf("stone_axe mismatch: got=%d want=1", got)
	}
	if res.Produced.ID != "stone_axe" || res.Consumed["stone"] != 2 {
		t.Fatalf("unexpected craft result: %+v", res)
	}
	if len(res.Discovered) != 1 || res.Discovered[0] != "fishing_rod" {
		t.Fatalf("expected fishing_rod discovery, got %v", res.Discovered)
	}
}

func TestCraftPartialShortfallDoesNotMutate(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	give(t, cat, &p, "wooden_stick", 3)
	give(t, cat, &p, "stone", 4)
	before := p.Clone()

	_, err := p.Craft(cat, "campfire")
	var short *InsufficientIngredientsError
	if !errors.As(err, &short) {
		t.Fatalf("expected shortfall, got %v", err)
	}
	if len(short.Missing) != 1 || short.Missing[0] != (Shortfall{ItemID: "stone", Required: 5, Held: 4}) {
		t.Fatalf("unexpected shortfall: %+v", short.Missing)
	}
	if p.Inventory.Query("stone") != before.Inventory.Query("stone") || p.Inventory.Query("wooden_stick") != 3 {
		t.Fatalf("inventory mutated by failed craft")
	}
}

func TestCraftStationIngredientMustBeHeldButIsKept(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	give(t, cat, &p, "fish", 1)
	p.Discovered["cooked_fish"] = struct{}{}

	_, err := p.Craft(cat, "cooked_fish")
	var short *InsufficientIngredientsError
	if !errors.As(err, &short) || short.Missing[0].ItemID != "campfire" {
		t.Fatalf("expected campfire shortfall, got %v", err)
	}

	give(t, cat, &p, "campfire", 1)
	if _, err := p.Craft(cat, "cooked_fish"); err != nil {
		t.Fatalf("craft cooked_fish: %v", err)
	}
	if got := p.Inventory.Query("campfire"); got != 1 {
		t.Fatalf("campfire should not be consumed: got=%d want=1", got)
	}
	if got := p.Inventory.Query("fish"); got != 0 {
		t.Fatalf("fish mismatch: got=%d want=0", got)
	}
	if got := p.Inventory.Query("cooked_fish"); got != 1 {
		t.Fatalf("cooked_fish mismatch: got=%d want=1", got)
	}
}

func TestCraftRequiresDiscovery(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	give(t, cat, &p, "leaf", 10)
	give(t, cat, &p, "vine", 2)
	delete(p.Discovered, "leaf_bed")

	if _, err := p.Craft(cat, "leaf_bed"); !errors.Is(err, ErrRecipeNotDiscovered) {
		t.Fatalf("expected ErrRecipeNotDiscovered, got %v", err)
	}
}

func TestCraftUnknownRecipe(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	if _, err := p.Craft(cat, "stone_ax"); !errors.Is(err, catalog.ErrUnknownRecipe) {
		t.Fatalf("expected ErrUnknownRecipe, got %v", err)
	}
}

func TestCraftUnknownResultAbortsWithoutCommit(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Item{{ID: "twig"}},
		nil,
		[]catalog.Recipe{{ID: "ghost", ResultItemID: "phantom", InitiallyDiscovered: true,
			Ingredients: []catalog.Ingredient{{ItemID: "twig", Quantity: 2}}}},
	)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	p := NewPlayerState(cat)
	give(t, cat, &p, "twig", 2)

	if _, err := p.Craft(cat, "ghost"); !errors.Is(err, ErrUnknownResultItem) {
		t.Fatalf("expected ErrUnknownResultItem, got %v", err)
	}
	if got := p.Inventory.Query("twig"); got != 2 {
		t.Fatalf("ingredients consumed by aborted craft: got=%d want=2", got)
	}
}

func TestCraftYieldUsesResultQuantity(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Item{{ID: "plank"}, {ID: "log"}},
		nil,
		[]catalog.Recipe{{ID: "planks", ResultItemID: "plank", ResultQuantity: 4, InitiallyDiscovered: true,
			Ingredients: []catalog.Ingredient{{ItemID: "log", Quantity: 1}}}},
	)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	p := NewPlayerState(cat)
	give(t, cat, &p, "log", 1)
	if _, err := p.Craft(cat, "planks"); err != nil {
		t.Fatalf("craft: %v", err)
	}
	if got := p.Inventory.Query("plank"); got != 4 {
		t.Fatalf("plank mismatch: got=%d want=4", got)
	}
}
