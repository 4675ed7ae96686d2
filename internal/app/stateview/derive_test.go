package stateview

import (
	"testing"

	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

func has(effects []string, want string) bool {
	for _, e := range effects {
		if e == want {
			return true
		}
	}
	return false
}

func TestStatusEffects_FreshPlayerHasNone(t *testing.T) {
	p := survival.NewPlayerState(catalog.Default())
	if got := StatusEffects(p); len(got) != 0 {
		t.Fatalf("expected no effects, got %v", got)
	}
}

func TestStatusEffects_LowVitals(t *testing.T) {
	p := survival.NewPlayerState(catalog.Default())
	p.Vitals = survival.Vitals{Health: 10, Hunger: 0, Thirst: 12}

	got := StatusEffects(p)
	for _, want := range []string{EffectStarving, EffectThirsty, EffectCritical} {
		if !has(got, want) {
			t.Fatalf("expected %s in %v", want, got)
		}
	}
	if has(got, EffectHungry) || has(got, EffectDehydrated) {
		t.Fatalf("unexpected effects: %v", got)
	}
}

func TestStatusEffects_InDarkRequiresNightWithoutTorch(t *testing.T) {
	p := survival.NewPlayerState(catalog.Default())
	p.Hour = 22
	if !has(StatusEffects(p), EffectInDark) {
		t.Fatalf("expected IN_DARK at night without a torch")
	}

	p.Inventory.Add(survival.ItemStack{ID: "torch", Quantity: 1})
	if has(StatusEffects(p), EffectInDark) {
		t.Fatalf("did not expect IN_DARK while holding a torch")
	}
}

func TestStatusEffects_Storm(t *testing.T) {
	p := survival.NewPlayerState(catalog.Default())
	p.Weather = world.WeatherStorm
	if !has(StatusEffects(p), EffectStorm) {
		t.Fatalf("expected storm effect")
	}
}

func TestCurrentTile(t *testing.T) {
	w := world.GameWorld{Sections: []world.Section{{
		Biome: world.BiomeForest,
		Tiles: [][]world.Tile{{{Coord: world.Point{}, Terrain: world.TerrainTree}}},
	}}}
	tile, ok := CurrentTile(&w, world.Point{})
	if !ok || tile.Terrain != world.TerrainTree {
		t.Fatalf("unexpected tile: ok=%v tile=%+v", ok, tile)
	}
	if _, ok := CurrentTile(&w, world.Point{X: 3}); ok {
		t.Fatalf("expected miss outside grid")
	}
}
