// Package history provides undoable tile editing on top of tilemap.Grid.
//
// Every edit is a Command that knows how to apply itself to a grid and how
// to reverse itself:
//   - AddTile: a tile was placed on an empty cell
//   - RemoveTile: a tile was erased
//   - ModifyTile: an existing tile got a different id
//
// Commands are plain values holding positions and ids, never pointers into
// the grid, so they stay valid after the tile they describe is gone.
//
// # History
//
// History owns two bounded stacks and is the only thing that should mutate
// the grid it is bound to:
//
//	h := history.New(grid) // keeps DefaultMaxHistory entries
//
//	h.Apply(history.Paint, tilemap.Point{X: 2, Y: 2}, "wall", tilemap.Size{W: 5, H: 5})
//	h.Undo()
//	h.Redo()
//
// Applying a new edit clears the redo stack. When the undo stack grows past
// its limit the oldest entry is dropped for good.
//
// History is not safe for concurrent use; the host editor delivers input
// events one at a time.
package history
