package history

import (
	"github.com/rs/zerolog/log"

	"github.com/milk9111/tileedit/tilemap"
)

// DefaultMaxHistory is the undo depth used when none is configured.
const DefaultMaxHistory = 50

// Intent is what the user is trying to do at a grid position.
type Intent int

const (
	Paint Intent = iota
	Erase
)

func (i Intent) String() string {
	switch i {
	case Paint:
		return "paint"
	case Erase:
		return "erase"
	default:
		return "unknown"
	}
}

// Option configures a History.
type Option func(*History)

// WithMaxHistory sets the undo depth. Values <= 0 fall back to DefaultMaxHistory.
func WithMaxHistory(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxHistory = n
		}
	}
}

// WithRedundantPaint makes painting a tile with the id it already has record
// a ModifyTile entry instead of being ignored.
func WithRedundantPaint(record bool) Option {
	return func(h *History) {
		h.redundantPaint = record
	}
}

// History applies edits to a grid and keeps bounded undo and redo stacks.
type History struct {
	grid           *tilemap.Grid
	undo           stack
	redo           stack
	maxHistory     int
	redundantPaint bool
}

// New creates a history bound to grid with empty stacks.
func New(grid *tilemap.Grid, opts ...Option) *History {
	h := &History{
		grid:       grid,
		undo:       newStack(),
		redo:       newStack(),
		maxHistory: DefaultMaxHistory,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Grid returns the grid edits are applied to.
func (h *History) Grid() *tilemap.Grid {
	return h.grid
}

// SetGrid binds the history to g. Switching to a different grid empties both
// stacks; rebinding the same grid keeps them.
func (h *History) SetGrid(g *tilemap.Grid) {
	if g == h.grid {
		return
	}
	h.grid = g
	h.Clear()
}

// Apply performs a paint or erase at pos and records it. It returns false
// when nothing changed: paint outside gridSize, paint with an empty id,
// erase on an empty cell, or a repaint with the same id (unless
// WithRedundantPaint is set). Erase is not bounds checked.
func (h *History) Apply(intent Intent, pos tilemap.Point, tileID string, gridSize tilemap.Size) bool {
	if h.grid == nil {
		return false
	}

	var cmd Command
	switch intent {
	case Paint:
		if !gridSize.Contains(pos) {
			log.Debug().Stringer("pos", pos).Int("w", gridSize.W).Int("h", gridSize.H).Msg("history: paint out of bounds")
			return false
		}
		if tileID == "" {
			return false
		}
		existing, ok := h.grid.FindTileAt(pos)
		switch {
		case !ok:
			cmd = AddTile{Pos: pos, ID: tileID}
		case existing.ID != tileID || h.redundantPaint:
			cmd = ModifyTile{Pos: pos, Previous: existing.ID, New: tileID}
		default:
			return false
		}
	case Erase:
		existing, ok := h.grid.FindTileAt(pos)
		if !ok {
			return false
		}
		cmd = RemoveTile{Pos: pos, Previous: existing.ID, Layer: existing.Layer}
	default:
		return false
	}

	cmd.Forward(h.grid)
	h.record(cmd)
	return true
}

// record pushes cmd, trims the oldest entries past the limit and clears redo.
func (h *History) record(cmd Command) {
	h.undo.push(cmd)
	for h.undo.len() > h.maxHistory {
		evicted, _ := h.undo.dropOldest()
		log.Debug().Stringer("cmd", evicted).Msg("history: evicted oldest entry")
	}
	h.redo.clear()
	log.Debug().Stringer("cmd", cmd).Int("undo", h.undo.len()).Msg("history: recorded")
}

// Undo reverts the most recent edit. It returns false when there is nothing
// to undo.
func (h *History) Undo() bool {
	if h.grid == nil {
		return false
	}
	cmd, ok := h.undo.pop()
	if !ok {
		log.Info().Msg("history: nothing to undo")
		return false
	}
	h.redo.push(cmd)
	cmd.Inverse(h.grid)
	log.Debug().Stringer("cmd", cmd).Int("undo", h.undo.len()).Int("redo", h.redo.len()).Msg("history: undo")
	return true
}

// Redo reapplies the most recently undone edit. It returns false when there
// is nothing to redo.
func (h *History) Redo() bool {
	if h.grid == nil {
		return false
	}
	cmd, ok := h.redo.pop()
	if !ok {
		log.Info().Msg("history: nothing to redo")
		return false
	}
	h.undo.push(cmd)
	cmd.Forward(h.grid)
	log.Debug().Stringer("cmd", cmd).Int("undo", h.undo.len()).Int("redo", h.redo.len()).Msg("history: redo")
	return true
}

// Clear empties both stacks without touching the grid.
func (h *History) Clear() {
	h.undo.clear()
	h.redo.clear()
}

func (h *History) UndoCount() int { return h.undo.len() }
func (h *History) RedoCount() int { return h.redo.len() }
func (h *History) CanUndo() bool  { return h.undo.len() > 0 }
func (h *History) CanRedo() bool  { return h.redo.len() > 0 }

// MaxHistory returns the undo depth limit.
func (h *History) MaxHistory() int { return h.maxHistory }

// SetMaxHistory changes the undo depth, dropping the oldest entries if the
// stack is now too deep. Values <= 0 are ignored.
func (h *History) SetMaxHistory(n int) {
	if n <= 0 {
		return
	}
	h.maxHistory = n
	for h.undo.len() > h.maxHistory {
		h.undo.dropOldest()
	}
}

// SetRedundantPaint toggles WithRedundantPaint on a live history.
func (h *History) SetRedundantPaint(record bool) { h.redundantPaint = record }

// LastUndo returns the command Undo would revert.
func (h *History) LastUndo() (Command, bool) { return h.undo.peek() }

// LastRedo returns the command Redo would reapply.
func (h *History) LastRedo() (Command, bool) { return h.redo.peek() }

// UndoEntries returns the undo stack oldest first.
func (h *History) UndoEntries() []Command { return h.undo.commands() }
