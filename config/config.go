package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tileedit/history"
)

//go:embed default.yaml
var defaultYAML []byte

// TileSpec is one palette entry.
type TileSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Palette is the ordered list of tiles the user can paint with.
type Palette []TileSpec

// Has reports whether id is in the palette.
func (p Palette) Has(id string) bool {
	for _, t := range p {
		if t.ID == id {
			return true
		}
	}
	return false
}

// IDs returns the tile ids in palette order.
func (p Palette) IDs() []string {
	ids := make([]string, 0, len(p))
	for _, t := range p {
		ids = append(ids, t.ID)
	}
	return ids
}

// Config holds editor settings.
type Config struct {
	MaxHistory           int     `yaml:"max_history"`
	RecordRedundantPaint bool    `yaml:"record_redundant_paint"`
	LogLevel             string  `yaml:"log_level"`
	Palette              Palette `yaml:"palette"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return cfg
}

// Parse decodes YAML and fills anything missing or invalid from defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.validate()
	return &cfg, nil
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	if c.MaxHistory <= 0 {
		c.MaxHistory = history.DefaultMaxHistory
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		c.LogLevel = "info"
	}

	seen := make(map[string]bool, len(c.Palette))
	clean := c.Palette[:0]
	for _, t := range c.Palette {
		t.ID = strings.TrimSpace(t.ID)
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		if t.Name == "" {
			t.Name = t.ID
		}
		clean = append(clean, t)
	}
	c.Palette = clean
	if len(c.Palette) == 0 {
		c.Palette = Palette{
			{ID: "ground", Name: "Ground Tile"},
			{ID: "wall", Name: "Wall Tile"},
			{ID: "coin", Name: "Coin"},
		}
	}
}
