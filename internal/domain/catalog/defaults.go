package catalog

import "wildcraft/internal/domain/world"

func fx(stat StatKind, delta float64) Effect {
	return Effect{Stat: stat, Delta: delta}
}

var defaultItems = []Item{
	{ID: "wooden_stick", Name: "Wooden Stick", Category: CategoryResource, Icon: "🪵", Description: "A simple wooden stick. Useful for crafting basic tools."},
	{ID: "stone", Name: "Stone", Category: CategoryResource, Icon: "🪨", Description: "A common stone. Can be used for crafting tools and weapons."},
	{ID: "leaf", Name: "Leaf", Category: CategoryResource, Icon: "🍃", Description: "A green leaf. Can be used for crafting and as a basic water collector."},
	{ID: "vine", Name: "Vine", Category: CategoryResource, Icon: "🌿", Description: "A flexible vine. Useful for binding items together."},
	{ID: "berry", Name: "Berry", Category: CategoryFood, Icon: "🍒", Description: "A small, sweet berry. Restores a small amount of hunger.",
		Effects: []Effect{fx(StatHunger, 10)}},
	{ID: "mushroom", Name: "Mushroom", Category: CategoryFood, Icon: "🍄", Description: "A forest mushroom. Restores hunger but may not be safe to eat raw.",
		Effects: []Effect{fx(StatHunger, 15), fx(StatHealth, -5)}},
	{ID: "water_flask", Name: "Water Flask", Category: CategoryDrink, Icon: "💧", Description: "A container of fresh water. Restores thirst.",
		Effects: []Effect{fx(StatThirst, 30)}},
	{ID: "cooked_meat", Name: "Cooked Meat", Category: CategoryFood, Icon: "🍖", Description: "A piece of cooked meat. Greatly restores hunger.",
		Effects: []Effect{fx(StatHunger, 40)}},
	{ID: "raw_meat", Name: "Raw Meat", Category: CategoryFood, Icon: "🥩", Description: "A piece of raw meat. Not safe to eat without cooking.",
		Effects: []Effect{fx(StatHunger, 20), fx(StatHealth, -20)}},
	{ID: "stone_axe", Name: "Stone Axe", Category: CategoryTool, Icon: "🪓", Description: "A crude axe made from stone and wood. Useful for chopping trees."},
	{ID: "stone_pickaxe", Name: "Stone Pickaxe", Category: CategoryTool, Icon: "⛏️", Description: "A crude pickaxe made from stone and wood. Useful for mining rocks."},
	{ID: "stone_spear", Name: "Stone Spear", Category: CategoryWeapon, Icon: "🔱", Description: "A primitive spear with a stone tip. Useful for hunting."},
	{ID: "campfire", Name: "Campfire", Category: CategoryShelter, Icon: "🔥", Description: "A basic campfire. Provides warmth and allows cooking food."},
	{ID: "leaf_bed", Name: "Leaf Bed", Category: CategoryShelter, Icon: "🍂", Description: "A simple bed made of leaves. Allows you to rest and recover health."},
	{ID: "wooden_shelter", Name: "Wooden Shelter", Category: CategoryShelter, Icon: "🏠", Description: "A basic wooden shelter. Provides protection from the elements."},
	{ID: "medicinal_herbs", Name: "Medicinal Herbs", Category: CategoryMedicine, Icon: "🌱", Description: "Herbs with healing properties. Restores health when consumed.",
		Effects: []Effect{fx(StatHealth, 25)}},
	{ID: "fishing_rod", Name: "Fishing Rod", Category: CategoryTool, Icon: "🎣", Description: "A simple fishing rod. Allows you to catch fish from water sources."},
	{ID: "fish", Name: "Fish", Category: CategoryFood, Icon: "🐟", Description: "A fresh fish. Can be eaten raw but better when cooked.",
		Effects: []Effect{fx(StatHunger, 15), fx(StatHealth, -10)}},
	{ID: "cooked_fish", Name: "Cooked Fish", Category: CategoryFood, Icon: "🍳", Description: "A well-cooked fish. Restores a significant amount of hunger.",
		Effects: []Effect{fx(StatHunger, 35)}},
	{ID: "torch", Name: "Torch", Category: CategoryTool, Icon: "🔦", Description: "A hand-held torch. Provides light during the night."},
}

func resource(itemID string, respawnSeconds int, biomes ...world.Biome) Resource {
	for _, item := range defaultItems {
		if item.ID == itemID {
			return Resource{Item: item, RespawnSeconds: respawnSeconds, Biomes: biomes}
		}
	}
	panic("catalog: resource without item definition: " + itemID)
}

var defaultResources = []Resource{
	resource("wooden_stick", 60, world.BiomeForest, world.BiomePlains),
	resource("stone", 120, world.BiomeMountain, world.BiomeRiver, world.BiomeBeach),
	resource("leaf", 30, world.BiomeForest, world.BiomePlains),
	resource("vine", 90, world.BiomeForest),
	resource("berry", 60, world.BiomeForest, world.BiomePlains),
	resource("mushroom", 45, world.BiomeForest),
	resource("raw_meat", 300, world.BiomeForest, world.BiomePlains),
	resource("medicinal_herbs", 180, world.BiomeForest, world.BiomePlains),
	resource("fish", 150, world.BiomeRiver, world.BiomeBeach),
}

func in(itemID string, qty int) Ingredient {
	return Ingredient{ItemID: itemID, Quantity: qty}
}

var defaultRecipes = []Recipe{
	{ID: "stone_axe", Name: "Stone Axe", ResultItemID: "stone_axe", Category: RecipeTool, InitiallyDiscovered: true,
		Ingredients: []Ingredient{in("wooden_stick", 1), in("stone", 2), in("vine", 1)},
		Description: "A crude axe made from stone and wood. Useful for chopping trees."},
	{ID: "stone_pickaxe", Name: "Stone Pickaxe", ResultItemID: "stone_pickaxe", Category: RecipeTool, InitiallyDiscovered: true,
		Ingredients: []Ingredient{in("wooden_stick", 1), in("stone", 3), in("vine", 1)},
		Description: "A crude pickaxe made from stone and wood. Useful for mining rocks."},
	{ID: "stone_spear", Name: "Stone Spear", ResultItemID: "stone_spear", Category: RecipeWeapon, InitiallyDiscovered: true,
		Ingredients: []Ingredient{in("wooden_stick", 2), in("stone", 1), in("vine", 1)},
		Description: "A primitive spear with a stone tip. Useful for hunting."},
	{ID: "campfire", Name: "Campfire", ResultItemID: "campfire", Category: RecipeShelter, InitiallyDiscovered: true,
		Ingredients: []Ingredient{in("wooden_stick", 3), in("stone", 5)},
		Description: "A basic campfire. Provides warmth and allows cooking food."},
	{ID: "leaf_bed", Name: "Leaf Bed", ResultItemID: "leaf_bed", Category: RecipeShelter, InitiallyDiscovered: true,
		Ingredients: []Ingredient{in("leaf", 10), in("vine", 2)},
		Description: "A simple bed made of leaves. Allows you to rest and recover health."},
	{ID: "wooden_shelter", Name: "Wooden Shelter", ResultItemID: "wooden_shelter", Category: RecipeShelter,
		Ingredients:   []Ingredient{in("wooden_stick", 10), in("vine", 5), in("leaf", 15)},
		Prerequisites: []string{"leaf_bed", "campfire"},
		Description:   "A basic wooden shelter. Provides protection from the elements."},
	{ID: "fishing_rod", Name: "Fishing Rod", ResultItemID: "fishing_rod", Category: RecipeTool,
		Ingredients:   []Ingredient{in("wooden_stick", 2), in("vine", 3)},
		Prerequisites: []string{"stone_axe"},
		Description:   "A simple fishing rod. Allows you to catch fish from water sources."},
	{ID: "cooked_fish", Name: "Cooked Fish", ResultItemID: "cooked_fish", Category: RecipeFood,
		Ingredients:   []Ingredient{in("fish", 1), in("campfire", 0)},
		Prerequisites: []string{"fish", "campfire"},
		Description:   "A well-cooked fish. Restores a significant amount of hunger."},
	{ID: "cooked_meat", Name: "Cooked Meat", ResultItemID: "cooked_meat", Category: RecipeFood,
		Ingredients:   []Ingredient{in("raw_meat", 1), in("campfire", 0)},
		Prerequisites: []string{"raw_meat", "campfire"},
		Description:   "A piece of cooked meat. Greatly restores hunger."},
	{ID: "torch", Name: "Torch", ResultItemID: "torch", Category: RecipeTool,
		Ingredients:   []Ingredient{in("wooden_stick", 1), in("vine", 1), in("campfire", 0)},
		Prerequisites: []string{"campfire", "wooden_stick"},
		Description:   "A hand-held torch. Provides light during the night."},
	{ID: "water_flask", Name: "Water Flask", ResultItemID: "water_flask", ResultQuantity: 1, Category: RecipeUtility,
		Ingredients:   []Ingredient{in("leaf", 5), in("vine", 2)},
		Prerequisites: []string{"leaf"},
		Description:   "A container of fresh water. Restores thirst."},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultItems, defaultResources, defaultRecipes)
	if err != nil {
		panic(err)
	}
	return c
}
