// Package yamlfile loads a game catalog from a YAML document.
//
// Resources reference an item by id instead of repeating its definition:
//
//	items:
//	  - {id: stone, name: Stone, category: resource}
//	resources:
//	  - {item: stone, respawn_seconds: 120, biomes: [mountain]}
//	recipes:
//	  - id: campfire
//	    result: campfire
//	    ingredients: [{item_id: stone, quantity: 5}]
package yamlfile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/world"
)

type document struct {
	Items     []catalog.Item   `yaml:"items"`
	Resources []resourceEntry  `yaml:"resources"`
	Recipes   []catalog.Recipe `yaml:"recipes"`
}

type resourceEntry struct {
	Item           string        `yaml:"item"`
	RespawnSeconds int           `yaml:"respawn_seconds"`
	Biomes         []world.Biome `yaml:"biomes"`
}

func Load(path string) (*catalog.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

func Parse(raw []byte) (*catalog.Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrInvalidCatalog, err)
	}

	byID := make(map[string]catalog.Item, len(doc.Items))
	for _, item := range doc.Items {
		byID[item.ID] = item
	}
	resources := make([]catalog.Resource, 0, len(doc.Resources))
	for _, entry := range doc.Resources {
		item, ok := byID[entry.Item]
		if !ok {
			return nil, fmt.Errorf("%w: resource references unknown item %q", catalog.ErrInvalidCatalog, entry.Item)
		}
		resources = append(resources, catalog.Resource{
			Item:           item,
			RespawnSeconds: entry.RespawnSeconds,
			Biomes:         entry.Biomes,
		})
	}
	return catalog.New(doc.Items, resources, doc.Recipes)
}
