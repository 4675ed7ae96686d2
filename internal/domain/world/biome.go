package world

import "strings"

type Biome string

const (
	BiomeForest   Biome = "forest"
	BiomeMountain Biome = "mountain"
	BiomeBeach    Biome = "beach"
	BiomePlains   Biome = "plains"
	BiomeRiver    Biome = "river"
)

// Biomes returns the fixed section order of every generated world.
func Biomes() []Biome {
	return []Biome{BiomeForest, BiomeMountain, BiomeBeach, BiomePlains, BiomeRiver}
}

func ParseBiome(raw string) (Biome, bool) {
	b := Biome(strings.ToLower(strings.TrimSpace(raw)))
	return b, b.Valid()
}

func (b Biome) Valid() bool {
	switch b {
	case BiomeForest, BiomeMountain, BiomeBeach, BiomePlains, BiomeRiver:
		return true
	default:
		return false
	}
}

type Terrain string

const (
	TerrainTree         Terrain = "tree"
	TerrainBush         Terrain = "bush"
	TerrainGrass        Terrain = "grass"
	TerrainRocks        Terrain = "rocks"
	TerrainCliff        Terrain = "cliff"
	TerrainCave         Terrain = "cave"
	TerrainSnow         Terrain = "snow"
	TerrainSand         Terrain = "sand"
	TerrainShallowWater Terrain = "shallow_water"
	TerrainPalmTree     Terrain = "palm_tree"
	TerrainTallGrass    Terrain = "tall_grass"
	TerrainFlowerField  Terrain = "flower_field"
	TerrainSmallPond    Terrain = "small_pond"
	TerrainWater        Terrain = "water"
	TerrainRiverbank    Terrain = "riverbank"
	TerrainReeds        Terrain = "reeds"
)

// Terrains lists the terrain kinds a tile of the biome may take.
func (b Biome) Terrains() []Terrain {
	switch b {
	case BiomeForest:
		return []Terrain{TerrainTree, TerrainBush, TerrainGrass, TerrainRocks}
	case BiomeMountain:
		return []Terrain{TerrainRocks, TerrainCliff, TerrainCave, TerrainSnow}
	case BiomeBeach:
		return []Terrain{TerrainSand, TerrainShallowWater, TerrainPalmTree, TerrainRocks}
	case BiomePlains:
		return []Terrain{TerrainGrass, TerrainTallGrass, TerrainFlowerField, TerrainSmallPond}
	case BiomeRiver:
		return []Terrain{TerrainWater, TerrainRiverbank, TerrainShallowWater, TerrainReeds}
	default:
		return []Terrain{TerrainGrass}
	}
}
