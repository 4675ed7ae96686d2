package stateview

import "wildcraft/internal/domain/world"

// CurrentTile returns a copy of the tile the player stands on in the active section.
func CurrentTile(w *world.GameWorld, pos world.Point) (world.Tile, bool) {
	sec := w.Current()
	if sec == nil {
		return world.Tile{}, false
	}
	tile := sec.Tile(pos)
	if tile == nil {
		return world.Tile{}, false
	}
	return tile.Clone(), true
}
