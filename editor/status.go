package editor

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/milk9111/tileedit/tilemap"
)

// Status is what the host shows next to the canvas after every edit.
type Status struct {
	Level     string
	Mode      Mode
	Selected  string
	Tiles     int
	Size      tilemap.Size
	UndoCount int
	RedoCount int
}

func (s Status) String() string {
	selected := s.Selected
	if selected == "" {
		selected = "None"
	}
	return fmt.Sprintf("Level: %s | Mode: %s | Selected: %s | Tiles: %d | Grid: %dx%d | Undo: %d | Redo: %d",
		s.Level, s.Mode, selected, s.Tiles, s.Size.W, s.Size.H, s.UndoCount, s.RedoCount)
}

// Status reports the current tool, level and history counters. Size is the
// grid size computed from the tiles, not the declared canvas.
func (s *Session) Status() Status {
	st := Status{
		Mode:      s.mode,
		Selected:  s.selected,
		UndoCount: s.hist.UndoCount(),
		RedoCount: s.hist.RedoCount(),
	}
	if s.level != nil {
		st.Level = s.level.Name
		st.Tiles = s.level.Grid.Len()
		st.Size = s.level.Grid.CalculateGridSize()
	}
	return st
}

// Dump renders the open level as text, one rune per cell with '.' for empty
// cells, followed by a legend. Row 0 is printed first. Tiles at negative
// coordinates are not shown.
func (s *Session) Dump() string {
	if s.level == nil {
		return ""
	}
	bounds := s.level.Bounds()
	tiles := s.level.Grid.Tiles()

	ids := make([]string, 0)
	seen := map[string]bool{}
	for _, t := range tiles {
		if !seen[t.ID] {
			seen[t.ID] = true
			ids = append(ids, t.ID)
		}
	}
	sort.Strings(ids)
	sym := symbols(ids)

	rows := make([][]rune, bounds.H)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(".", bounds.W))
	}
	for _, t := range tiles {
		if !bounds.Contains(t.Pos) {
			continue
		}
		rows[t.Pos.Y][t.Pos.X] = sym[t.ID]
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	if len(ids) > 0 {
		legend := make([]string, 0, len(ids))
		for _, id := range ids {
			legend = append(legend, fmt.Sprintf("%c=%s", sym[id], id))
		}
		b.WriteString(strings.Join(legend, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// symbols gives each id a distinct rune, preferring letters from the id.
func symbols(ids []string) map[string]rune {
	used := map[rune]bool{'.': true}
	out := make(map[string]rune, len(ids))
	for _, id := range ids {
		r := '?'
		for _, c := range strings.ToLower(id) {
			if unicode.IsLetter(c) || unicode.IsDigit(c) {
				if !used[c] {
					r = c
					break
				}
			}
		}
		if r == '?' {
			for _, c := range strings.ToUpper(id) + "0123456789" {
				if !used[c] && (unicode.IsLetter(c) || unicode.IsDigit(c)) {
					r = c
					break
				}
			}
		}
		used[r] = true
		out[id] = r
	}
	return out
}
