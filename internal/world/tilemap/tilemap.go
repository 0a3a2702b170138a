// Package tilemap builds and queries the fixed tile grid the player walks on.
package tilemap

import (
	"fmt"
)

// Config describes the grid to generate.
type Config struct {
	Width      int // Width in tiles
	Height     int // Height in tiles
	TileSize   int // Cell size in world units (pixels)
	WallIndex  int // Tile index used for the border
	FloorIndex int // Tile index used for the interior
}

// Map is a generated tile grid. It is not modified after Generate returns.
type Map struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]int // Tile indices [y][x]

	collides map[int]bool
}

// Generate fills a Width x Height grid with the wall index on the one-tile
// border and the floor index everywhere else, and registers the wall index
// as colliding.
func Generate(cfg Config) (*Map, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid map dimensions: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size: %d", cfg.TileSize)
	}

	tiles := make([][]int, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		row := make([]int, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			if x == 0 || y == 0 || x == cfg.Width-1 || y == cfg.Height-1 {
				row[x] = cfg.WallIndex
			} else {
				row[x] = cfg.FloorIndex
			}
		}
		tiles[y] = row
	}

	m := &Map{
		Width:    cfg.Width,
		Height:   cfg.Height,
		TileSize: cfg.TileSize,
		Tiles:    tiles,
	}
	m.SetCollision(cfg.WallIndex)
	return m, nil
}

// SetCollision marks tile indices as solid for the physics collider.
func (m *Map) SetCollision(indices ...int) {
	if m.collides == nil {
		m.collides = make(map[int]bool)
	}
	for _, idx := range indices {
		m.collides[idx] = true
	}
}

// Collides reports whether a tile index was registered as solid.
func (m *Map) Collides(index int) bool {
	return m.collides[index]
}

// GetTileAt returns the tile index at the given grid coordinates
func (m *Map) GetTileAt(x, y int) (int, error) {
	if !m.InBounds(x, y) {
		return 0, fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	return m.Tiles[y][x], nil
}

// InBounds reports whether (x, y) is a cell of the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsSolid returns whether the tile at the given coordinates blocks movement.
// Cells outside the grid are solid.
func (m *Map) IsSolid(x, y int) bool {
	idx, err := m.GetTileAt(x, y)
	if err != nil {
		return true
	}
	return m.Collides(idx)
}

// WidthInPixels returns the map width in world units.
func (m *Map) WidthInPixels() int {
	return m.Width * m.TileSize
}

// HeightInPixels returns the map height in world units.
func (m *Map) HeightInPixels() int {
	return m.Height * m.TileSize
}

// Center returns the world position of the middle of the map.
func (m *Map) Center() (x, y float64) {
	return float64(m.WidthInPixels()) / 2, float64(m.HeightInPixels()) / 2
}

// WorldToTile converts a world position to the grid cell containing it.
func (m *Map) WorldToTile(wx, wy float64) (x, y int) {
	ts := float64(m.TileSize)
	return floorDiv(wx, ts), floorDiv(wy, ts)
}

func floorDiv(v, size float64) int {
	q := int(v / size)
	if v < 0 && float64(q)*size != v {
		q--
	}
	return q
}
