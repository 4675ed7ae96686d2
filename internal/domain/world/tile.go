package world

import "fmt"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ResourceInstance is a live copy of a catalog resource sitting on a tile.
type ResourceInstance struct {
	ID         string `json:"id"`
	ResourceID string `json:"resource_id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Quantity   int    `json:"quantity"`
}

type Tile struct {
	Coord     Point              `json:"coord"`
	Terrain   Terrain            `json:"terrain"`
	Resources []ResourceInstance `json:"resources"`
}

func (t *Tile) FindResource(instanceID string) (ResourceInstance, bool) {
	for _, r := range t.Resources {
		if r.ID == instanceID {
			return r, true
		}
	}
	return ResourceInstance{}, false
}

// TakeResource detaches the instance from the tile.
func (t *Tile) TakeResource(instanceID string) (ResourceInstance, bool) {
	for i, r := range t.Resources {
		if r.ID != instanceID {
			continue
		}
		t.Resources = append(t.Resources[:i:i], t.Resources[i+1:]...)
		return r, true
	}
	return ResourceInstance{}, false
}

func (t *Tile) PutResource(r ResourceInstance) {
	if r.Quantity <= 0 {
		r.Quantity = 1
	}
	t.Resources = append(t.Resources, r)
}

// InstanceID names the slot a resource occupies; a respawned instance reuses it.
func InstanceID(section int, p Point, resourceID string) string {
	return fmt.Sprintf("s%d-%d-%d-%s", section, p.X, p.Y, resourceID)
}
