// Package script runs tengo brush scripts against an editor session.
//
// A script sees these globals:
//
//	paint(x, y [, id])  paint id, or the selected tile, at (x, y)
//	erase(x, y)         erase the tile at (x, y)
//	select(id)          select a palette tile and switch to painting
//	mode(name)          "paint" or "erase"
//	undo(), redo()
//	tile_at(x, y)       tile id at (x, y) or undefined
//	size()              [w, h] of the level canvas
//	status()            map of the session status
//
// Every paint and erase goes through the session history, so one script run
// can be undone a step at a time.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/tileedit/editor"
	"github.com/milk9111/tileedit/tilemap"
)

// Run compiles src and runs it against s.
func Run(ctx context.Context, s *editor.Session, src []byte) error {
	if s == nil {
		return errors.New("script: nil session")
	}

	sc := tengo.NewScript(src)
	for name, fn := range builtins(s) {
		if err := sc.Add(name, fn); err != nil {
			return fmt.Errorf("script: add %s: %w", name, err)
		}
	}
	sc.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := sc.Compile()
	if err != nil {
		return fmt.Errorf("script: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	log.Debug().Int("undo", s.History().UndoCount()).Msg("script: finished")
	return nil
}

// RunFile reads path and runs it.
func RunFile(ctx context.Context, s *editor.Session, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	log.Info().Str("path", path).Msg("script: running")
	return Run(ctx, s, src)
}

func builtins(s *editor.Session) map[string]*tengo.UserFunction {
	fns := map[string]*tengo.UserFunction{}

	fns["paint"] = &tengo.UserFunction{Name: "paint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 && len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		p, err := pointArg(args, "paint")
		if err != nil {
			return nil, err
		}
		id := s.Selected()
		if len(args) == 3 {
			id = objectAsString(args[2])
		}
		if id == "" {
			return tengo.FalseValue, nil
		}
		changed, err := s.Paint(p, id)
		if err != nil {
			return nil, err
		}
		return boolObject(changed), nil
	}}

	fns["erase"] = &tengo.UserFunction{Name: "erase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		p, err := pointArg(args, "erase")
		if err != nil {
			return nil, err
		}
		changed, err := s.Erase(p)
		if err != nil {
			return nil, err
		}
		return boolObject(changed), nil
	}}

	fns["select"] = &tengo.UserFunction{Name: "select", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if err := s.SelectTile(objectAsString(args[0])); err != nil {
			return nil, err
		}
		return tengo.TrueValue, nil
	}}

	fns["mode"] = &tengo.UserFunction{Name: "mode", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		switch strings.ToLower(objectAsString(args[0])) {
		case "paint":
			s.SetMode(editor.ModePaint)
		case "erase":
			s.SetMode(editor.ModeErase)
		default:
			return nil, fmt.Errorf("mode: unknown mode %q", objectAsString(args[0]))
		}
		return tengo.TrueValue, nil
	}}

	fns["undo"] = &tengo.UserFunction{Name: "undo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.Undo()), nil
	}}

	fns["redo"] = &tengo.UserFunction{Name: "redo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.Redo()), nil
	}}

	fns["tile_at"] = &tengo.UserFunction{Name: "tile_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		p, err := pointArg(args, "tile_at")
		if err != nil {
			return nil, err
		}
		if s.Level() == nil {
			return tengo.UndefinedValue, nil
		}
		tile, ok := s.Level().Grid.FindTileAt(p)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.String{Value: tile.ID}, nil
	}}

	fns["size"] = &tengo.UserFunction{Name: "size", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var b tilemap.Size
		if s.Level() != nil {
			b = s.Level().Bounds()
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(b.W)}, &tengo.Int{Value: int64(b.H)}}}, nil
	}}

	fns["status"] = &tengo.UserFunction{Name: "status", Value: func(args ...tengo.Object) (tengo.Object, error) {
		st := s.Status()
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"level":    &tengo.String{Value: st.Level},
			"mode":     &tengo.String{Value: st.Mode.String()},
			"selected": &tengo.String{Value: st.Selected},
			"tiles":    &tengo.Int{Value: int64(st.Tiles)},
			"width":    &tengo.Int{Value: int64(st.Size.W)},
			"height":   &tengo.Int{Value: int64(st.Size.H)},
			"undo":     &tengo.Int{Value: int64(st.UndoCount)},
			"redo":     &tengo.Int{Value: int64(st.RedoCount)},
		}}, nil
	}}

	return fns
}

func pointArg(args []tengo.Object, fn string) (tilemap.Point, error) {
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return tilemap.Point{}, tengo.ErrInvalidArgumentType{Name: fn + " x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return tilemap.Point{}, tengo.ErrInvalidArgumentType{Name: fn + " y", Expected: "int", Found: args[1].TypeName()}
	}
	return tilemap.Point{X: x, Y: y}, nil
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
