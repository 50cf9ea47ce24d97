package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/tileedit/tilemap"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a level asset: a name, an optional declared canvas size and the
// tiles placed on it.
type Level struct {
	Name   string
	Width  int
	Height int
	Grid   *tilemap.Grid
}

type levelFile struct {
	Name   string     `json:"name"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
	Tiles  []tileInfo `json:"tiles"`
}

type tileInfo struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	TileID string `json:"tile_id"`
	Layer  int    `json:"layer,omitempty"`
}

// New creates an empty level. Width and height declare the paintable area
// before any tile exists; zero means "derive from content".
func New(name string, width, height int) *Level {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Level{Name: name, Width: width, Height: height, Grid: tilemap.New()}
}

// Bounds is the paintable area: the declared size grown to cover every tile.
func (l *Level) Bounds() tilemap.Size {
	if l == nil {
		return tilemap.Size{}
	}
	s := l.Grid.CalculateGridSize()
	s.W = max(s.W, l.Width)
	s.H = max(s.H, l.Height)
	return s
}

// Load reads a level from a JSON file at path.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	lvl, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return lvl, nil
}

// LoadLevelFromFS loads one of the embedded sample levels. The .json suffix
// is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read level: %w", err)
	}
	lvl, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("levels: unmarshal level %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	return lvl, nil
}

// Names lists the embedded sample levels without extension.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Save writes the level as indented JSON, creating parent directories.
func (l *Level) Save(path string) error {
	if l == nil {
		return errors.New("levels: save nil level")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}

	lf := levelFile{Name: l.Name, Width: l.Width, Height: l.Height, Tiles: []tileInfo{}}
	for _, t := range l.Grid.Tiles() {
		lf.Tiles = append(lf.Tiles, tileInfo{X: t.Pos.X, Y: t.Pos.Y, TileID: t.ID, Layer: t.Layer})
	}

	b, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("levels: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	return nil
}

func decode(b []byte) (*Level, error) {
	var lf levelFile
	if err := json.Unmarshal(b, &lf); err != nil {
		return nil, err
	}
	if lf.Width < 0 || lf.Height < 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lf.Width, lf.Height)
	}

	lvl := New(lf.Name, lf.Width, lf.Height)
	for i, ti := range lf.Tiles {
		if ti.TileID == "" {
			return nil, fmt.Errorf("tile %d at (%d,%d): empty tile_id", i, ti.X, ti.Y)
		}
		p := tilemap.Point{X: ti.X, Y: ti.Y}
		if _, dup := lvl.Grid.FindTileAt(p); dup {
			return nil, fmt.Errorf("tile %d: duplicate position %v", i, p)
		}
		lvl.Grid.Add(tilemap.Tile{Pos: p, ID: ti.TileID, Layer: ti.Layer})
	}
	return lvl, nil
}
