package tilemap

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when an operation needs a tile that is not there.
var ErrNotFound = errors.New("tile not found")

// Point is an integer grid coordinate.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a grid extent in cells.
type Size struct {
	W int
	H int
}

// Contains reports whether p lies in [0,W) x [0,H).
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.X < s.W && p.Y >= 0 && p.Y < s.H
}

// Tile is the content of one cell.
type Tile struct {
	Pos   Point
	ID    string
	Layer int
}

// Grid is a sparse store of tiles keyed by position. Tiles live in a dense
// slice; index maps a position to its slot. Removal swaps the last tile into
// the freed slot.
//
// Only one tile may occupy a position. Edits that should be undoable must go
// through history.History rather than calling the mutators directly.
type Grid struct {
	tiles []Tile
	index map[Point]int
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{index: make(map[Point]int)}
}

// FindTileAt returns a copy of the tile at p.
func (g *Grid) FindTileAt(p Point) (Tile, bool) {
	if g == nil {
		return Tile{}, false
	}
	idx, ok := g.index[p]
	if !ok {
		return Tile{}, false
	}
	return g.tiles[idx], true
}

// Add inserts t. Callers check FindTileAt first; if the position is already
// taken the existing tile is replaced so the grid never holds duplicates.
func (g *Grid) Add(t Tile) {
	if g == nil {
		return
	}
	if g.index == nil {
		g.index = make(map[Point]int)
	}
	if idx, ok := g.index[t.Pos]; ok {
		g.tiles[idx] = t
		return
	}
	g.tiles = append(g.tiles, t)
	g.index[t.Pos] = len(g.tiles) - 1
}

// SetIdentifier changes the id of the tile at p in place.
func (g *Grid) SetIdentifier(p Point, id string) error {
	if g == nil {
		return fmt.Errorf("set identifier at %v: %w", p, ErrNotFound)
	}
	idx, ok := g.index[p]
	if !ok {
		return fmt.Errorf("set identifier at %v: %w", p, ErrNotFound)
	}
	g.tiles[idx].ID = id
	return nil
}

// RemoveAt deletes the tile at p and reports whether one was there.
func (g *Grid) RemoveAt(p Point) bool {
	if g == nil {
		return false
	}
	idx, ok := g.index[p]
	if !ok {
		return false
	}
	last := len(g.tiles) - 1
	if idx != last {
		moved := g.tiles[last]
		g.tiles[idx] = moved
		g.index[moved.Pos] = idx
	}
	g.tiles = g.tiles[:last]
	delete(g.index, p)
	return true
}

// CalculateGridSize returns the smallest [0,W) x [0,H) rectangle anchored at
// the origin that covers every stored position. It is recomputed on each call.
func (g *Grid) CalculateGridSize() Size {
	maxX, maxY := -1, -1
	if g != nil {
		for _, t := range g.tiles {
			if t.Pos.X > maxX {
				maxX = t.Pos.X
			}
			if t.Pos.Y > maxY {
				maxY = t.Pos.Y
			}
		}
	}
	return Size{W: maxX + 1, H: maxY + 1}
}

// Len returns the number of stored tiles.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.tiles)
}

// Tiles returns a copy of all tiles ordered by row, then column.
func (g *Grid) Tiles() []Tile {
	if g == nil {
		return nil
	}
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Y != out[j].Pos.Y {
			return out[i].Pos.Y < out[j].Pos.Y
		}
		return out[i].Pos.X < out[j].Pos.X
	})
	return out
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := New()
	if g == nil {
		return c
	}
	c.tiles = make([]Tile, len(g.tiles))
	copy(c.tiles, g.tiles)
	for p, idx := range g.index {
		c.index[p] = idx
	}
	return c
}
