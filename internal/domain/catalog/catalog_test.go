package catalog

import (
	"errors"
	"testing"

	"wildcraft/internal/domain/world"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()
	if got := len(c.Items()); got != 20 {
		t.Fatalf("item count mismatch: got=%d want=20", got)
	}
	if got := len(c.Resources()); got != 9 {
		t.Fatalf("resource count mismatch: got=%d want=9", got)
	}
	if got := len(c.Recipes()); got != 11 {
		t.Fatalf("recipe count mismatch: got=%d want=11", got)
	}
	initial := c.InitialRecipeIDs()
	want := []string{"stone_axe", "stone_pickaxe", "stone_spear", "campfire", "leaf_bed"}
	if len(initial) != len(want) {
		t.Fatalf("initial recipes mismatch: got=%v want=%v", initial, want)
	}
	for i := range want {
		if initial[i] != want[i] {
			t.Fatalf("initial recipe[%d] mismatch: got=%s want=%s", i, initial[i], want[i])
		}
	}
}

func TestDefaultRecipesResolveToItems(t *testing.T) {
	c := Default()
	for _, r := range c.Recipes() {
		if _, ok := c.Item(r.ResultItemID); !ok {
			t.Fatalf("recipe %s result %s missing from items", r.ID, r.ResultItemID)
		}
		if r.ResultQuantity < 1 {
			t.Fatalf("recipe %s yield not normalized: %d", r.ID, r.ResultQuantity)
		}
		for _, in := range r.Ingredients {
			if _, err := c.LookupItem(in.ItemID); err != nil {
				t.Fatalf("recipe %s ingredient %s: %v", r.ID, in.ItemID, err)
			}
		}
	}
}

func TestResourcesForBiome(t *testing.T) {
	c := Default()
	cases := map[world.Biome][]string{
		world.BiomeForest:   {"wooden_stick", "leaf", "vine", "berry", "mushroom", "raw_meat", "medicinal_herbs"},
		world.BiomeMountain: {"stone"},
		world.BiomeBeach:    {"stone", "fish"},
		world.BiomePlains:   {"wooden_stick", "leaf", "berry", "raw_meat", "medicinal_herbs"},
		world.BiomeRiver:    {"stone", "fish"},
	}
	for biome, want := range cases {
		got := c.ResourcesFor(biome)
		if len(got) != len(want) {
			t.Fatalf("%s resource count mismatch: got=%d want=%d", biome, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("%s resource[%d] mismatch: got=%s want=%s", biome, i, got[i].ID, want[i])
			}
		}
	}
}

func TestRecipeLookupSuggestsClosestID(t *testing.T) {
	c := Default()
	_, err := c.Recipe("stone_axxe")
	if !errors.Is(err, ErrUnknownRecipe) {
		t.Fatalf("expected ErrUnknownRecipe, got %v", err)
	}
	var unknown *UnknownIDError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownIDError, got %T", err)
	}
	if unknown.Suggestion != "stone_axe" {
		t.Fatalf("suggestion mismatch: got=%q want=%q", unknown.Suggestion, "stone_axe")
	}

	_, err = c.Recipe("spaceship")
	if !errors.As(err, &unknown) || unknown.Suggestion != "" {
		t.Fatalf("expected no suggestion for distant id, got %v", err)
	}
}

func TestLookupItemFallsBackToResources(t *testing.T) {
	c, err := New(nil, []Resource{{Item: Item{ID: "flint", Name: "Flint"}, Biomes: []world.Biome{world.BiomeBeach}}}, nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	item, err := c.LookupItem("flint")
	if err != nil {
		t.Fatalf("lookup flint: %v", err)
	}
	if item.Name != "Flint" {
		t.Fatalf("name mismatch: got=%s want=Flint", item.Name)
	}
	if _, err := c.LookupItem("obsidian"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestNewRejectsInvalidDefinitions(t *testing.T) {
	cases := []struct {
		name      string
		items     []Item
		resources []Resource
		recipes   []Recipe
	}{
		{name: "empty item id", items: []Item{{ID: " "}}},
		{name: "duplicate item", items: []Item{{ID: "a"}, {ID: "a"}}},
		{name: "bad effect stat", items: []Item{{ID: "a", Effects: []Effect{{Stat: "mana", Delta: 1}}}}},
		{name: "negative respawn", resources: []Resource{{Item: Item{ID: "r"}, RespawnSeconds: -1}}},
		{name: "unknown biome", resources: []Resource{{Item: Item{ID: "r"}, Biomes: []world.Biome{"swamp"}}}},
		{name: "duplicate recipe", recipes: []Recipe{{ID: "x"}, {ID: "x"}}},
		{name: "negative ingredient", recipes: []Recipe{{ID: "x", Ingredients: []Ingredient{{ItemID: "a", Quantity: -2}}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.items, tc.resources, tc.recipes); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestRecipeYieldDefaultsToOne(t *testing.T) {
	c, err := New(nil, nil, []Recipe{{ID: "x", ResultItemID: "x"}})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	r, err := c.Recipe("x")
	if err != nil {
		t.Fatalf("recipe lookup: %v", err)
	}
	if r.ResultQuantity != 1 {
		t.Fatalf("yield mismatch: got=%d want=1", r.ResultQuantity)
	}
}
