package world

import "errors"

const SectionSize = 10

var ErrInvalidSection = errors.New("invalid world section")

type Section struct {
	Biome Biome    `json:"biome"`
	Tiles [][]Tile `json:"tiles"`
}

func (s *Section) Size() int {
	return len(s.Tiles)
}

func (s *Section) Contains(p Point) bool {
	if p.Y < 0 || p.Y >= len(s.Tiles) {
		return false
	}
	return p.X >= 0 && p.X < len(s.Tiles[p.Y])
}

// Tile returns the tile at p, or nil when p is outside the grid.
func (s *Section) Tile(p Point) *Tile {
	if !s.Contains(p) {
		return nil
	}
	return &s.Tiles[p.Y][p.X]
}

type GameWorld struct {
	Sections       []Section `json:"sections"`
	CurrentSection int       `json:"current_section"`
}

func (w *GameWorld) Section(index int) (*Section, error) {
	if w == nil || index < 0 || index >= len(w.Sections) {
		return nil, ErrInvalidSection
	}
	return &w.Sections[index], nil
}

func (w *GameWorld) Current() *Section {
	s, err := w.Section(w.CurrentSection)
	if err != nil {
		return nil
	}
	return s
}

// Clone deep-copies the world so a snapshot can leave the writer goroutine.
func (w *GameWorld) Clone() GameWorld {
	out := GameWorld{CurrentSection: w.CurrentSection, Sections: make([]Section, len(w.Sections))}
	for i, s := range w.Sections {
		rows := make([][]Tile, len(s.Tiles))
		for y, row := range s.Tiles {
			rows[y] = make([]Tile, len(row))
			for x, tile := range row {
				rows[y][x] = tile.Clone()
			}
		}
		out.Sections[i] = Section{Biome: s.Biome, Tiles: rows}
	}
	return out
}

func (t Tile) Clone() Tile {
	res := make([]ResourceInstance, len(t.Resources))
	copy(res, t.Resources)
	t.Resources = res
	return t
}
