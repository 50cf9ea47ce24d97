package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxHistory != 50 {
		t.Fatalf("MaxHistory = %d, want 50", cfg.MaxHistory)
	}
	if cfg.RecordRedundantPaint {
		t.Fatal("redundant paint should be off by default")
	}
	if got := cfg.Palette.IDs(); !reflect.DeepEqual(got, []string{"ground", "wall", "coin"}) {
		t.Fatalf("default palette = %v", got)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		max     int
		level   string
		palette []string
		record  bool
	}{
		{
			name:    "override",
			yaml:    "max_history: 10\nrecord_redundant_paint: true\nlog_level: DEBUG\npalette:\n  - id: lava\n  - id: water\n    name: Water\n",
			max:     10,
			level:   "debug",
			palette: []string{"lava", "water"},
			record:  true,
		},
		{
			name:    "invalid_values_reset",
			yaml:    "max_history: -4\nlog_level: loud\n",
			max:     50,
			level:   "info",
			palette: []string{"ground", "wall", "coin"},
		},
		{
			name:    "palette_dedup",
			yaml:    "palette:\n  - id: wall\n  - id: ' '\n  - id: wall\n  - id: coin\n",
			max:     50,
			level:   "info",
			palette: []string{"wall", "coin"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Parse([]byte(c.yaml))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cfg.MaxHistory != c.max {
				t.Errorf("MaxHistory = %d, want %d", cfg.MaxHistory, c.max)
			}
			if cfg.LogLevel != c.level {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, c.level)
			}
			if got := cfg.Palette.IDs(); !reflect.DeepEqual(got, c.palette) {
				t.Errorf("palette = %v, want %v", got, c.palette)
			}
			if cfg.RecordRedundantPaint != c.record {
				t.Errorf("RecordRedundantPaint = %v, want %v", cfg.RecordRedundantPaint, c.record)
			}
		})
	}
}

func TestParseNameDefaultsToID(t *testing.T) {
	cfg, err := Parse([]byte("palette:\n  - id: lava\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Palette[0].Name != "lava" {
		t.Fatalf("expected name to default to id, got %q", cfg.Palette[0].Name)
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse([]byte("max_history: [1, 2")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.MaxHistory != 50 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	path := filepath.Join(dir, "editor.yaml")
	if err := os.WriteFile(path, []byte("max_history: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxHistory != 7 {
		t.Fatalf("MaxHistory = %d, want 7", cfg.MaxHistory)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("palette: {"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestPaletteHas(t *testing.T) {
	p := Palette{{ID: "wall"}, {ID: "coin"}}
	if !p.Has("wall") || p.Has("ground") || p.Has("") {
		t.Fatal("Has returned wrong result")
	}
}

func TestIsWatchedFile(t *testing.T) {
	cases := map[string]bool{
		"editor.yaml":  true,
		"EDITOR.YML":   true,
		"level.json":   true,
		"brush.tengo":  true,
		"notes.txt":    false,
		"editor.yaml~": false,
		"no_extension": false,
	}
	for path, want := range cases {
		if got := IsWatchedFile(path); got != want {
			t.Errorf("IsWatchedFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "editor.yaml")
	if err := os.WriteFile(path, []byte("max_history: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "editor.yaml" {
			t.Fatalf("unexpected event path %q", got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a watch event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
