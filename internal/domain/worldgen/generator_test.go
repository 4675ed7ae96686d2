package worldgen

import (
	"testing"

	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/world"
)

func TestGenerateProducesFiveBiomeSections(t *testing.T) {
	cat := catalog.Default()
	w := Seeded(42).Generate(cat)

	if len(w.Sections) != 5 {
		t.Fatalf("section count mismatch: got=%d want=5", len(w.Sections))
	}
	if w.CurrentSection != 0 {
		t.Fatalf("current section mismatch: got=%d want=0", w.CurrentSection)
	}
	for i, biome := range world.Biomes() {
		s := w.Sections[i]
		if s.Biome != biome {
			t.Fatalf("section %d biome mismatch: got=%s want=%s", i, s.Biome, biome)
		}
		if len(s.Tiles) != world.SectionSize {
			t.Fatalf("section %d rows mismatch: got=%d want=%d", i, len(s.Tiles), world.SectionSize)
		}
		allowed := map[world.Terrain]bool{}
		for _, tr := range biome.Terrains() {
			allowed[tr] = true
		}
		for y, row := range s.Tiles {
			if len(row) != world.SectionSize {
				t.Fatalf("section %d row %d width mismatch: got=%d", i, y, len(row))
			}
			for x, tile := range row {
				if tile.Coord != (world.Point{X: x, Y: y}) {
					t.Fatalf("tile coord mismatch: got=%+v want=(%d,%d)", tile.Coord, x, y)
				}
				if !allowed[tile.Terrain] {
					t.Fatalf("terrain %s not valid for %s", tile.Terrain, biome)
				}
				seen := map[string]bool{}
				for _, inst := range tile.Resources {
					res, ok := cat.Resource(inst.ResourceID)
					if !ok {
						t.Fatalf("unknown resource on tile: %s", inst.ResourceID)
					}
					if !res.FoundIn(biome) {
						t.Fatalf("resource %s placed outside its biomes in %s", inst.ResourceID, biome)
					}
					if inst.Quantity != 1 {
						t.Fatalf("instance quantity mismatch: got=%d want=1", inst.Quantity)
					}
					if seen[inst.ID] {
						t.Fatalf("duplicate instance id on tile: %s", inst.ID)
					}
					seen[inst.ID] = true
				}
			}
		}
	}
}

func TestGenerateIsReproducibleForSeed(t *testing.T) {
	cat := catalog.Default()
	a := Seeded(7).Generate(cat)
	b := Seeded(7).Generate(cat)
	for i := range a.Sections {
		for y := range a.Sections[i].Tiles {
			for x := range a.Sections[i].Tiles[y] {
				ta, tb := a.Sections[i].Tiles[y][x], b.Sections[i].Tiles[y][x]
				if ta.Terrain != tb.Terrain || len(ta.Resources) != len(tb.Resources) {
					t.Fatalf("tile (%d,%d,%d) differs between runs", i, x, y)
				}
			}
		}
	}
}

func TestSpawnChanceBounds(t *testing.T) {
	cat := catalog.Default()

	g := Seeded(1)
	g.SpawnChance = 1
	full := g.Generate(cat)
	forest := full.Sections[0].Tiles[3][4]
	if got, want := len(forest.Resources), len(cat.ResourcesFor(world.BiomeForest)); got != want {
		t.Fatalf("full spawn mismatch: got=%d want=%d", got, want)
	}

	g.SpawnChance = 0
	empty := g.Generate(cat)
	for _, s := range empty.Sections {
		for _, row := range s.Tiles {
			for _, tile := range row {
				if len(tile.Resources) != 0 {
					t.Fatalf("expected no resources with zero chance, got %d", len(tile.Resources))
				}
			}
		}
	}
}

func TestGenerateRoughlyMatchesSpawnChance(t *testing.T) {
	cat := catalog.Default()
	w := Seeded(2024).Generate(cat)
	placed, slots := 0, 0
	for _, s := range w.Sections {
		pool := len(cat.ResourcesFor(s.Biome))
		for _, row := range s.Tiles {
			for _, tile := range row {
				placed += len(tile.Resources)
				slots += pool
			}
		}
	}
	ratio := float64(placed) / float64(slots)
	if ratio < 0.2 || ratio > 0.4 {
		t.Fatalf("spawn ratio out of range: got=%.3f", ratio)
	}
}
