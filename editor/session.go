package editor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/milk9111/tileedit/config"
	"github.com/milk9111/tileedit/history"
	"github.com/milk9111/tileedit/levels"
	"github.com/milk9111/tileedit/tilemap"
)

var (
	ErrUnknownTile = errors.New("tile not in palette")
	ErrNoLevel     = errors.New("no level open")
)

// Mode is the active tool.
type Mode int

const (
	ModePaint Mode = iota
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModePaint:
		return "PAINTING"
	case ModeErase:
		return "ERASING"
	default:
		return "SELECT"
	}
}

// Session is the host side of the editor: it holds the tool state and the
// open level, and turns pointer and key input into history calls. The tool
// state is passed to the history on every call rather than shared with it.
type Session struct {
	cfg      *config.Config
	level    *levels.Level
	hist     *history.History
	mode     Mode
	selected string
}

// NewSession creates a session with no level open. A nil cfg uses the
// embedded defaults.
func NewSession(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	hist := history.New(nil,
		history.WithMaxHistory(cfg.MaxHistory),
		history.WithRedundantPaint(cfg.RecordRedundantPaint),
	)
	return &Session{cfg: cfg, hist: hist, mode: ModePaint}
}

// Open makes lvl the edited level. Undo and redo history start over.
func (s *Session) Open(lvl *levels.Level) {
	s.level = lvl
	var grid *tilemap.Grid
	if lvl != nil {
		grid = lvl.Grid
	}
	s.hist.SetGrid(grid)
	if lvl != nil {
		log.Info().Str("level", lvl.Name).Int("tiles", lvl.Grid.Len()).Msg("editor: opened level")
	}
}

func (s *Session) Level() *levels.Level      { return s.level }
func (s *Session) History() *history.History { return s.hist }
func (s *Session) Config() *config.Config    { return s.cfg }
func (s *Session) Mode() Mode                { return s.mode }
func (s *Session) Selected() string          { return s.selected }

// SelectTile picks the tile to paint with and switches to paint mode.
func (s *Session) SelectTile(id string) error {
	if !s.cfg.Palette.Has(id) {
		return fmt.Errorf("select %q: %w", id, ErrUnknownTile)
	}
	s.selected = id
	s.mode = ModePaint
	return nil
}

// SetMode switches tools. Erasing drops the current selection.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	if m == ModeErase {
		s.selected = ""
	}
}

// PointerDown handles a click on cell p and reports whether the level changed.
func (s *Session) PointerDown(p tilemap.Point) bool {
	return s.edit(p)
}

// PointerDrag handles the pointer moving onto cell p with the button held.
func (s *Session) PointerDrag(p tilemap.Point) bool {
	return s.edit(p)
}

func (s *Session) edit(p tilemap.Point) bool {
	if s.level == nil {
		return false
	}
	switch s.mode {
	case ModePaint:
		if s.selected == "" {
			return false
		}
		return s.hist.Apply(history.Paint, p, s.selected, s.level.Bounds())
	case ModeErase:
		return s.hist.Apply(history.Erase, p, "", s.level.Bounds())
	}
	return false
}

// Paint paints id at p whatever the active tool is. The selection is left
// unchanged.
func (s *Session) Paint(p tilemap.Point, id string) (bool, error) {
	if s.level == nil {
		return false, ErrNoLevel
	}
	if !s.cfg.Palette.Has(id) {
		return false, fmt.Errorf("paint %q: %w", id, ErrUnknownTile)
	}
	return s.hist.Apply(history.Paint, p, id, s.level.Bounds()), nil
}

// Erase erases the tile at p whatever the active tool is.
func (s *Session) Erase(p tilemap.Point) (bool, error) {
	if s.level == nil {
		return false, ErrNoLevel
	}
	return s.hist.Apply(history.Erase, p, "", s.level.Bounds()), nil
}

func (s *Session) Undo() bool { return s.hist.Undo() }
func (s *Session) Redo() bool { return s.hist.Redo() }

// HandleKey applies the editor hotkeys: p paint, e erase, 1-9 palette slot,
// Ctrl+Z undo, Ctrl+Y redo. It reports whether the key was consumed.
func (s *Session) HandleKey(key rune, ctrl bool) bool {
	if ctrl {
		switch key {
		case 'z', 'Z':
			s.Undo()
			return true
		case 'y', 'Y':
			s.Redo()
			return true
		}
		return false
	}

	switch {
	case key == 'p' || key == 'P':
		s.SetMode(ModePaint)
		return true
	case key == 'e' || key == 'E':
		s.SetMode(ModeErase)
		return true
	case key >= '1' && key <= '9':
		idx := int(key - '1')
		if idx >= len(s.cfg.Palette) {
			return false
		}
		return s.SelectTile(s.cfg.Palette[idx].ID) == nil
	}
	return false
}

// ApplyConfig swaps in a reloaded config without losing history. A selected
// tile that left the palette is deselected.
func (s *Session) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
	s.hist.SetMaxHistory(cfg.MaxHistory)
	s.hist.SetRedundantPaint(cfg.RecordRedundantPaint)
	if s.selected != "" && !cfg.Palette.Has(s.selected) {
		log.Warn().Str("tile", s.selected).Msg("editor: selected tile removed from palette")
		s.selected = ""
	}
}

// Save writes the open level to path.
func (s *Session) Save(path string) error {
	if s.level == nil {
		return ErrNoLevel
	}
	if err := s.level.Save(path); err != nil {
		return err
	}
	log.Info().Str("level", s.level.Name).Str("path", path).Msg("editor: level saved")
	return nil
}
