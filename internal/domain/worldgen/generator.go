package worldgen

import (
	"math/rand/v2"

	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/world"
)

// SpawnChance is the independent probability of each eligible resource appearing on a tile.
const SpawnChance = 0.3

type Generator struct {
	Rand        *rand.Rand
	SectionSize int
	SpawnChance float64
}

func New(r *rand.Rand) Generator {
	return Generator{Rand: r, SectionSize: world.SectionSize, SpawnChance: SpawnChance}
}

// Seeded returns a generator whose output is reproducible for the given seed.
func Seeded(seed uint64) Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate builds one section per biome in world.Biomes order and starts the player in the first.
func (g Generator) Generate(cat *catalog.Catalog) world.GameWorld {
	size := g.SectionSize
	if size <= 0 {
		size = world.SectionSize
	}
	biomes := world.Biomes()
	out := world.GameWorld{Sections: make([]world.Section, 0, len(biomes))}
	for i, biome := range biomes {
		out.Sections = append(out.Sections, g.section(cat, i, biome, size))
	}
	return out
}

func (g Generator) section(cat *catalog.Catalog, index int, biome world.Biome, size int) world.Section {
	pool := cat.ResourcesFor(biome)
	terrains := biome.Terrains()
	tiles := make([][]world.Tile, size)
	for y := 0; y < size; y++ {
		row := make([]world.Tile, size)
		for x := 0; x < size; x++ {
			p := world.Point{X: x, Y: y}
			row[x] = world.Tile{
				Coord:     p,
				Terrain:   terrains[g.intN(len(terrains))],
				Resources: g.stock(pool, index, p),
			}
		}
		tiles[y] = row
	}
	return world.Section{Biome: biome, Tiles: tiles}
}

func (g Generator) stock(pool []catalog.Resource, section int, p world.Point) []world.ResourceInstance {
	var out []world.ResourceInstance
	for _, res := range pool {
		if g.float() >= g.chance() {
			continue
		}
		out = append(out, Spawn(res, section, p))
	}
	return out
}

// Spawn creates a fresh quantity-1 instance of res for the tile at p.
func Spawn(res catalog.Resource, section int, p world.Point) world.ResourceInstance {
	return world.ResourceInstance{
		ID:         world.InstanceID(section, p, res.ID),
		ResourceID: res.ID,
		Name:       res.Name,
		Icon:       res.Icon,
		Quantity:   1,
	}
}

func (g Generator) chance() float64 {
	if g.SpawnChance <= 0 {
		return 0
	}
	return g.SpawnChance
}

func (g Generator) float() float64 {
	if g.Rand == nil {
		return rand.Float64()
	}
	return g.Rand.Float64()
}

func (g Generator) intN(n int) int {
	if g.Rand == nil {
		return rand.IntN(n)
	}
	return g.Rand.IntN(n)
}
