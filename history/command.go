package history

import (
	"fmt"

	"github.com/milk9111/tileedit/tilemap"
)

// Kind identifies a command variant.
type Kind int

const (
	KindAdd Kind = iota
	KindRemove
	KindModify
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindModify:
		return "modify"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Command is one recorded edit. Forward replays it, Inverse reverts it.
type Command interface {
	Forward(g *tilemap.Grid)
	Inverse(g *tilemap.Grid)
	Kind() Kind
	Position() tilemap.Point
	String() string
}

// AddTile records a tile placed on an empty cell.
type AddTile struct {
	Pos   tilemap.Point
	ID    string
	Layer int
}

func (c AddTile) Forward(g *tilemap.Grid) {
	g.Add(tilemap.Tile{Pos: c.Pos, ID: c.ID, Layer: c.Layer})
}

// Inverse removes whatever sits at the position, not a specific tile value.
func (c AddTile) Inverse(g *tilemap.Grid) {
	g.RemoveAt(c.Pos)
}

func (c AddTile) Kind() Kind              { return KindAdd }
func (c AddTile) Position() tilemap.Point { return c.Pos }

func (c AddTile) String() string {
	return fmt.Sprintf("add %q at %v", c.ID, c.Pos)
}

// RemoveTile records an erased tile. Layer is kept so the tile comes back
// on the layer it was erased from.
type RemoveTile struct {
	Pos      tilemap.Point
	Previous string
	Layer    int
}

func (c RemoveTile) Forward(g *tilemap.Grid) {
	g.RemoveAt(c.Pos)
}

func (c RemoveTile) Inverse(g *tilemap.Grid) {
	g.Add(tilemap.Tile{Pos: c.Pos, ID: c.Previous, Layer: c.Layer})
}

func (c RemoveTile) Kind() Kind              { return KindRemove }
func (c RemoveTile) Position() tilemap.Point { return c.Pos }

func (c RemoveTile) String() string {
	return fmt.Sprintf("remove %q at %v", c.Previous, c.Pos)
}

// ModifyTile records an id change on an existing tile.
type ModifyTile struct {
	Pos      tilemap.Point
	Previous string
	New      string
}

func (c ModifyTile) Forward(g *tilemap.Grid) {
	setIfPresent(g, c.Pos, c.New)
}

func (c ModifyTile) Inverse(g *tilemap.Grid) {
	setIfPresent(g, c.Pos, c.Previous)
}

func (c ModifyTile) Kind() Kind              { return KindModify }
func (c ModifyTile) Position() tilemap.Point { return c.Pos }

func (c ModifyTile) String() string {
	return fmt.Sprintf("modify %q -> %q at %v", c.Previous, c.New, c.Pos)
}

// setIfPresent leaves the grid alone when the cell is empty.
func setIfPresent(g *tilemap.Grid, p tilemap.Point, id string) {
	if _, ok := g.FindTileAt(p); !ok {
		return
	}
	_ = g.SetIdentifier(p, id)
}
